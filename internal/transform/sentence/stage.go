package sentence

import (
	"context"

	"github.com/msto63/cicero/internal/pipeline"
)

// Stage wraps the analyzer for the pipeline. It runs when either
// auto-punctuation or auto-capitalization is enabled.
type Stage struct {
	analyzer *Analyzer
}

func NewStage() *Stage {
	return &Stage{analyzer: NewAnalyzer()}
}

func (s *Stage) Name(_ *pipeline.Context) string { return "punctuation_capitalization" }

func (s *Stage) Enabled(pc *pipeline.Context) bool {
	return pc.Options.AutoPunctuate || pc.Options.AutoCapitalize
}

func (s *Stage) Run(_ context.Context, pc *pipeline.Context) error {
	pc.Text = s.analyzer.Process(pc.Text, pc.Options.AutoPunctuate, pc.Options.AutoCapitalize)
	return nil
}
