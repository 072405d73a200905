// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     pipeline
// Description: Staged text enhancement engine with non-fatal degradation
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/cicero/internal/doctype"
	"github.com/msto63/cicero/pkg/core/logging"
)

// Options are the caller-facing switches that decide which optional stages
// run. They mirror the user preference surface.
type Options struct {
	RemoveFillers  bool
	AutoPunctuate  bool
	AutoCapitalize bool
	ApplyLearning  bool
	UseCloud       bool
}

// Context carries one enhancement request through the stages. Each stage
// reads and rewrites Text in place; everything else is bookkeeping.
type Context struct {
	RequestID    string
	Text         string
	DocumentType doctype.DocumentType
	Recipient    string
	Metadata     map[string]string
	Options      Options

	AppliedRules   []string
	LearnedApplied int
	CloudEnhanced  bool
	CloudProvider  string
	StartTime      time.Time
}

// NewContext prepares a request context with a fresh request id
func NewContext(text string, dt doctype.DocumentType, opts Options) *Context {
	return &Context{
		RequestID:    uuid.NewString(),
		Text:         text,
		DocumentType: dt,
		Options:      opts,
		StartTime:    time.Now(),
	}
}

// Stage is one step of the enhancement pipeline. Enabled decides whether
// the stage runs for this request; Run rewrites the context text. A failed
// stage leaves the text from the previous stage in place. Name takes the
// request context because some tags depend on it, like the per-type
// formatting tag.
type Stage interface {
	Name(pc *Context) string
	Enabled(pc *Context) bool
	Run(ctx context.Context, pc *Context) error
}

// Result is the final enhanced-text record
type Result struct {
	ID             string               `json:"id"`
	OriginalText   string               `json:"original_text"`
	EnhancedText   string               `json:"enhanced_text"`
	DocumentType   doctype.DocumentType `json:"document_type"`
	AppliedRules   []string             `json:"applied_rules"`
	LearnedApplied int                  `json:"learned_patterns_applied"`
	CloudEnhanced  bool                 `json:"cloud_enhanced"`
	CloudProvider  string               `json:"cloud_provider,omitempty"`
	ProcessingTime time.Duration        `json:"processing_time"`
	Timestamp      time.Time            `json:"timestamp"`
}

// Engine runs a fixed, ordered list of stages
type Engine struct {
	stages []Stage
	log    *logging.Logger
}

// NewEngine creates an engine. Stage order is the execution order and is
// never re-sorted.
func NewEngine(log *logging.Logger, stages ...Stage) *Engine {
	return &Engine{stages: stages, log: log}
}

// Run executes the stages in order. Stage errors are logged and the stage
// degrades to a pass-through; the pipeline itself never fails. Every stage
// that executes appends its tag to the applied rules, in execution order.
func (e *Engine) Run(ctx context.Context, pc *Context) *Result {
	original := pc.Text

	for _, stage := range e.stages {
		if !stage.Enabled(pc) {
			continue
		}
		textBefore := pc.Text
		if err := stage.Run(ctx, pc); err != nil {
			e.log.Warn("pipeline stage failed, continuing with previous text",
				"request_id", pc.RequestID,
				"stage", stage.Name(pc),
				"error", err.Error())
			pc.Text = textBefore
		}
		// Non-empty input must yield non-empty output. A stage that strips
		// everything degrades to a pass-through, like a failed one.
		if strings.TrimSpace(pc.Text) == "" && strings.TrimSpace(textBefore) != "" {
			e.log.Warn("pipeline stage produced empty text, continuing with previous text",
				"request_id", pc.RequestID,
				"stage", stage.Name(pc))
			pc.Text = textBefore
		}
		pc.AppliedRules = append(pc.AppliedRules, stage.Name(pc))
	}

	return &Result{
		ID:             pc.RequestID,
		OriginalText:   original,
		EnhancedText:   pc.Text,
		DocumentType:   pc.DocumentType,
		AppliedRules:   pc.AppliedRules,
		LearnedApplied: pc.LearnedApplied,
		CloudEnhanced:  pc.CloudEnhanced,
		CloudProvider:  pc.CloudProvider,
		ProcessingTime: time.Since(pc.StartTime),
		Timestamp:      time.Now(),
	}
}
