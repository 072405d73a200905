package corrections

import (
	"context"

	"github.com/msto63/cicero/internal/pipeline"
)

// Stage wraps the excisor for the pipeline. It always runs.
type Stage struct {
	excisor *Excisor
}

func NewStage() *Stage {
	return &Stage{excisor: NewExcisor()}
}

func (s *Stage) Name(_ *pipeline.Context) string { return "self_correction" }

func (s *Stage) Enabled(_ *pipeline.Context) bool { return true }

func (s *Stage) Run(_ context.Context, pc *pipeline.Context) error {
	pc.Text = s.excisor.Process(pc.Text)
	return nil
}
