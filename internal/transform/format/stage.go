package format

import (
	"context"
	"strings"

	"github.com/msto63/cicero/internal/pipeline"
)

// Stage wraps the applier for the pipeline. It always runs; the document
// type picks the branch.
type Stage struct {
	applier *Applier
}

func NewStage() *Stage {
	return &Stage{applier: NewApplier()}
}

func (s *Stage) Name(pc *pipeline.Context) string {
	return "format_" + string(pc.DocumentType.Canonical())
}

func (s *Stage) Enabled(_ *pipeline.Context) bool { return true }

func (s *Stage) Run(_ context.Context, pc *pipeline.Context) error {
	formatted, changes := s.applier.Apply(pc.Text, pc.DocumentType, pc.Recipient, pc.Metadata)
	pc.Text = formatted
	if len(changes) > 0 {
		if pc.Metadata == nil {
			pc.Metadata = make(map[string]string)
		}
		pc.Metadata["format_changes"] = strings.Join(changes, ",")
	}
	return nil
}
