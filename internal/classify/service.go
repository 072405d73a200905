// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     classify
// Description: Document-type classification service
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package classify

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/cicero/internal/classify/features"
	"github.com/msto63/cicero/internal/classify/store"
	"github.com/msto63/cicero/internal/classify/voter"
	"github.com/msto63/cicero/internal/doctype"
	cerrors "github.com/msto63/cicero/pkg/core/errors"
	"github.com/msto63/cicero/pkg/core/logging"
)

// sampleLength bounds the text sample kept in classification results
const sampleLength = 100

// Predictor is the statistical model boundary: it returns a raw category
// label for a text. Unrecognized labels are mapped to message by the
// service, not treated as failures.
type Predictor interface {
	Predict(text string) (string, error)
}

// ResultLogger is the fire-and-forget logging boundary. Errors from the
// sink never surface to classify callers.
type ResultLogger interface {
	Log(ctx context.Context, result Result, fullText string, f features.TextFeatures) error
}

// Result is the outcome of a single classify call
type Result struct {
	ID         string                `json:"id"`
	Category   doctype.DocumentType  `json:"category"`
	Timestamp  time.Time             `json:"timestamp"`
	TextSample string                `json:"text_sample"`
	Features   features.TextFeatures `json:"features"`
}

// logRequest is the message sent to the background logging task
type logRequest struct {
	result   Result
	fullText string
	features features.TextFeatures
}

// Service orchestrates feature extraction, the statistical model, and the
// dominant-characteristic voter
type Service struct {
	predictor Predictor
	sink      ResultLogger
	logger    *logging.Logger

	logCh chan logRequest
	done  chan struct{}
}

// NewService creates a classification service. sink may be nil, in which
// case results are not persisted.
func NewService(predictor Predictor, sink ResultLogger) *Service {
	s := &Service{
		predictor: predictor,
		sink:      sink,
		logger:    logging.New("cicero-classify"),
		logCh:     make(chan logRequest, 256),
		done:      make(chan struct{}),
	}
	go s.drainLog()
	return s
}

// Classify determines the document type of a text.
// Fails with CodeEmptyText when the trimmed input is empty and with
// CodeModelNotLoaded when the model resource is unavailable.
func (s *Service) Classify(ctx context.Context, text string) (Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{}, cerrors.New(cerrors.CodeEmptyText, "cannot classify empty text")
	}

	f := features.Extract(trimmed)

	label, err := s.predictor.Predict(trimmed)
	if err != nil {
		return Result{}, err
	}

	baseline := doctype.Parse(label).Canonical()
	if !baseline.IsKnown() {
		// Explicit, logged fallback for labels outside the closed set
		s.logger.Warn("Model returned unrecognized label, defaulting to message",
			"label", label)
		baseline = doctype.Message
	}

	category := voter.Decide(trimmed, f, baseline)

	result := Result{
		ID:         uuid.NewString(),
		Category:   category,
		Timestamp:  time.Now(),
		TextSample: sample(trimmed),
		Features:   f,
	}

	// Fire-and-forget: never block the caller, drop on full buffer
	select {
	case s.logCh <- logRequest{result: result, fullText: trimmed, features: f}:
	default:
		s.logger.Debug("Classification log buffer full, dropping entry", "id", result.ID)
	}

	return result, nil
}

// drainLog is the background task that owns sink failure handling
func (s *Service) drainLog() {
	for {
		select {
		case req := <-s.logCh:
			if s.sink == nil {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.sink.Log(ctx, req.result, req.fullText, req.features); err != nil {
				s.logger.Warn("Classification logging failed", "error", err, "id", req.result.ID)
			}
			cancel()
		case <-s.done:
			return
		}
	}
}

// Close stops the background logging task
func (s *Service) Close() {
	close(s.done)
}

// sample returns the first 100 characters of the text
func sample(text string) string {
	runes := []rune(text)
	if len(runes) <= sampleLength {
		return text
	}
	return string(runes[:sampleLength])
}

// StoreSink adapts a ClassificationStore to the ResultLogger boundary
type StoreSink struct {
	store store.ClassificationStore
}

// NewStoreSink creates a ResultLogger backed by a classification store
func NewStoreSink(st store.ClassificationStore) *StoreSink {
	return &StoreSink{store: st}
}

// Log persists the classification result
func (s *StoreSink) Log(ctx context.Context, result Result, fullText string, f features.TextFeatures) error {
	return s.store.Record(ctx, &store.Entry{
		ID:         result.ID,
		Timestamp:  result.Timestamp,
		Category:   result.Category.String(),
		TextSample: result.TextSample,
		Features:   f,
	})
}
