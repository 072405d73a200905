// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     normalize
// Description: Baseline text normalization applied before every pipeline run
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package normalize

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/msto63/cicero/internal/pipeline"
)

var spaceRuns = regexp.MustCompile(`[ \t]+`)

// Normalize trims, composes Unicode to NFC, collapses space runs and
// converts CRLF/CR line endings to LF
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = norm.NFC.String(text)
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Stage wraps Normalize for the pipeline. It always runs.
type Stage struct{}

func NewStage() *Stage {
	return &Stage{}
}

func (s *Stage) Name(_ *pipeline.Context) string { return "normalize" }

func (s *Stage) Enabled(_ *pipeline.Context) bool { return true }

func (s *Stage) Run(_ context.Context, pc *pipeline.Context) error {
	pc.Text = Normalize(pc.Text)
	return nil
}
