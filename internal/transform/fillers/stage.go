package fillers

import (
	"context"
	"strings"

	"github.com/msto63/cicero/internal/pipeline"
)

// Stage wraps the remover for the pipeline, gated by configuration
type Stage struct {
	remover *Remover
}

func NewStage() *Stage {
	return &Stage{remover: NewRemover()}
}

func (s *Stage) Name(_ *pipeline.Context) string { return "filler_removal" }

func (s *Stage) Enabled(pc *pipeline.Context) bool {
	return pc.Options.RemoveFillers
}

func (s *Stage) Run(_ context.Context, pc *pipeline.Context) error {
	cleaned, removed := s.remover.Remove(pc.Text)
	pc.Text = cleaned
	if len(removed) > 0 {
		if pc.Metadata == nil {
			pc.Metadata = make(map[string]string)
		}
		pc.Metadata["removed_fillers"] = strings.Join(removed, ",")
	}
	return nil
}
