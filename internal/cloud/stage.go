package cloud

import (
	"context"
	"time"

	"github.com/msto63/cicero/internal/pipeline"
)

// Stage runs the cloud rewrite as the final pipeline step. It only runs
// when the request asks for it, the provider is configured with an API key
// and the document type is cloud-enabled. Failures roll back in the engine
// and the local result stands.
type Stage struct {
	provider      Provider
	timeout       time.Duration
	enabledByType map[string]bool
	hasAPIKey     bool
}

// NewStage creates the cloud rewrite stage. provider may be nil when cloud
// rewriting is not configured; the stage then never runs.
func NewStage(provider Provider, timeout time.Duration, enabledByType map[string]bool, hasAPIKey bool) *Stage {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Stage{
		provider:      provider,
		timeout:       timeout,
		enabledByType: enabledByType,
		hasAPIKey:     hasAPIKey,
	}
}

func (s *Stage) Name(_ *pipeline.Context) string { return "cloud_rewrite" }

func (s *Stage) Enabled(pc *pipeline.Context) bool {
	if !pc.Options.UseCloud || s.provider == nil || !s.hasAPIKey {
		return false
	}
	return s.enabledByType[string(pc.DocumentType.Canonical())]
}

// Run marks the cloud intent before calling out, so a failed rewrite still
// reports that cloud enhancement was attempted
func (s *Stage) Run(ctx context.Context, pc *pipeline.Context) error {
	pc.CloudEnhanced = true
	pc.CloudProvider = s.provider.Name()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	enhanced, err := s.provider.Enhance(ctx, pc.Text, pc.DocumentType, "")
	if err != nil {
		return err
	}
	pc.Text = enhanced
	return nil
}
