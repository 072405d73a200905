package learning

import (
	"context"

	"github.com/msto63/cicero/internal/pipeline"
)

// Stage applies learned patterns inside the pipeline, gated by
// configuration. A store failure rolls the text back in the engine and the
// pipeline continues.
type Stage struct {
	store Store
}

func NewStage(store Store) *Stage {
	return &Stage{store: store}
}

func (s *Stage) Name(_ *pipeline.Context) string { return "learned_patterns" }

func (s *Stage) Enabled(pc *pipeline.Context) bool {
	return pc.Options.ApplyLearning && s.store != nil
}

func (s *Stage) Run(ctx context.Context, pc *pipeline.Context) error {
	rewritten, count, err := s.store.ApplyLearned(ctx, pc.Text, pc.DocumentType)
	if err != nil {
		return err
	}
	if count > 0 {
		pc.LearnedApplied += count
		pc.Text = rewritten
	}
	return nil
}
