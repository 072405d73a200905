// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     enhance
// Description: Enhancement orchestrator tying voice commands, classification
//              and the staged pipeline together
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package enhance

import (
	"context"
	"strings"

	"github.com/msto63/cicero/internal/classify"
	"github.com/msto63/cicero/internal/cloud"
	"github.com/msto63/cicero/internal/doctype"
	"github.com/msto63/cicero/internal/learning"
	"github.com/msto63/cicero/internal/pipeline"
	"github.com/msto63/cicero/internal/transform/corrections"
	"github.com/msto63/cicero/internal/transform/fillers"
	"github.com/msto63/cicero/internal/transform/format"
	"github.com/msto63/cicero/internal/transform/normalize"
	"github.com/msto63/cicero/internal/transform/sentence"
	"github.com/msto63/cicero/internal/voicecmd"
	"github.com/msto63/cicero/pkg/core/config"
	cerrors "github.com/msto63/cicero/pkg/core/errors"
	"github.com/msto63/cicero/pkg/core/logging"
)

// Classifier resolves a document type when the caller does not know it
type Classifier interface {
	Classify(ctx context.Context, text string) (classify.Result, error)
}

// Request is one enhancement call
type Request struct {
	Text         string
	DocumentType doctype.DocumentType
	Recipient    string
	Metadata     map[string]string
	Options      pipeline.Options
}

// Service runs the enhancement flow: voice-command override, classification
// when the type is unknown, then the staged pipeline
type Service struct {
	engine     *pipeline.Engine
	classifier Classifier
	logger     *logging.Logger
}

// NewService creates the orchestrator. classifier may be nil; unknown text
// then stays unknown.
func NewService(engine *pipeline.Engine, classifier Classifier) *Service {
	return &Service{
		engine:     engine,
		classifier: classifier,
		logger:     logging.New("cicero-enhance"),
	}
}

// BuildEngine assembles the pipeline in its fixed stage order. store and
// provider may be nil; the corresponding stages then never run.
func BuildEngine(cfg *config.Config, store learning.Store, provider cloud.Provider, log *logging.Logger) *pipeline.Engine {
	return pipeline.NewEngine(log,
		normalize.NewStage(),
		corrections.NewStage(),
		fillers.NewStage(),
		sentence.NewStage(),
		format.NewStage(),
		learning.NewStage(store),
		cloud.NewStage(provider, cfg.Cloud.Timeout.Duration, cfg.Cloud.EnabledByType, cfg.Cloud.APIKey != ""),
	)
}

// OptionsFromConfig derives the default per-request options from the user
// preference surface
func OptionsFromConfig(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		RemoveFillers:  cfg.Pipeline.RemoveFillersEnabled(),
		AutoPunctuate:  cfg.Pipeline.AutoPunctuateEnabled(),
		AutoCapitalize: cfg.Pipeline.AutoCapitalizeEnabled(),
		ApplyLearning:  cfg.Learning.Enabled,
		UseCloud:       cfg.Cloud.Enabled,
	}
}

// Enhance runs one request through the pipeline. It fails only on empty
// input; every downstream stage degrades instead of aborting.
func (s *Service) Enhance(ctx context.Context, req Request) (*pipeline.Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, cerrors.New(cerrors.CodeEmptyText, "cannot enhance empty text")
	}

	text := req.Text
	dt := req.DocumentType
	if dt == "" {
		dt = doctype.Unknown
	}
	recipient := req.Recipient

	metadata := make(map[string]string, len(req.Metadata))
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	// An explicit voice command overrides classification entirely
	if inst := voicecmd.Parse(text); inst != nil {
		text = inst.Content
		dt = inst.DocumentType
		if inst.Recipient != "" {
			recipient = inst.Recipient
		}
		for k, v := range inst.Metadata {
			metadata[k] = v
		}
		s.logger.Debug("Voice command matched",
			"instruction", inst.Instruction,
			"document_type", dt.String())
	}

	if dt == doctype.Unknown && s.classifier != nil {
		res, err := s.classifier.Classify(ctx, text)
		if err != nil {
			s.logger.Warn("Classification failed, continuing with unknown type", "error", err)
		} else {
			dt = res.Category
		}
	}

	pc := pipeline.NewContext(text, dt, req.Options)
	pc.Recipient = recipient
	if len(metadata) > 0 {
		pc.Metadata = metadata
	}

	return s.engine.Run(ctx, pc), nil
}
