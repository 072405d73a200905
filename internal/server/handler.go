// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     server
// Description: REST handlers for enhancement, classification and patterns
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/msto63/cicero/internal/doctype"
	"github.com/msto63/cicero/internal/enhance"
	"github.com/msto63/cicero/internal/learning"
	"github.com/msto63/cicero/internal/pipeline"
	"github.com/msto63/cicero/internal/voicecmd"
	"github.com/msto63/cicero/pkg/core/errors"
	"github.com/msto63/cicero/pkg/core/health"
	"github.com/msto63/cicero/pkg/core/logging"
)

// EnhanceRequest is the REST request body for /v1/enhance. Option fields
// are pointers so an absent field falls back to the configured default.
type EnhanceRequest struct {
	Text         string            `json:"text"`
	DocumentType string            `json:"document_type,omitempty"`
	Recipient    string            `json:"recipient,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`

	RemoveFillers  *bool `json:"remove_fillers,omitempty"`
	AutoPunctuate  *bool `json:"auto_punctuate,omitempty"`
	AutoCapitalize *bool `json:"auto_capitalize,omitempty"`
	ApplyLearning  *bool `json:"apply_learning,omitempty"`
	UseCloud       *bool `json:"use_cloud,omitempty"`
}

// ClassifyRequest is the REST request body for /v1/classify
type ClassifyRequest struct {
	Text string `json:"text"`
}

// VoiceCommandRequest is the REST request body for /v1/voice-command
type VoiceCommandRequest struct {
	Text string `json:"text"`
}

// VoiceCommandResponse reports whether an instruction matched
type VoiceCommandResponse struct {
	Matched     bool                 `json:"matched"`
	Instruction *voicecmd.Instruction `json:"instruction,omitempty"`
}

// errorBody is the JSON error envelope
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Handler implements the REST endpoints
type Handler struct {
	service    *enhance.Service
	classifier enhance.Classifier
	patterns   learning.Store
	health     *health.Registry
	defaults   pipeline.Options
	threshold  float64
	logger     *logging.Logger
}

// NewHandler creates the REST handler
func NewHandler(svc *enhance.Service, classifier enhance.Classifier, patterns learning.Store, defaults pipeline.Options, threshold float64) *Handler {
	if threshold == 0 {
		threshold = 0.85
	}
	return &Handler{
		service:    svc,
		classifier: classifier,
		patterns:   patterns,
		defaults:   defaults,
		threshold:  threshold,
		logger:     logging.New("cicero-handler"),
	}
}

// Enhance handles POST /v1/enhance
func (h *Handler) Enhance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, errors.CodeInvalidInput, "use POST")
		return
	}

	var req EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "invalid JSON body")
		return
	}

	result, err := h.service.Enhance(r.Context(), enhance.Request{
		Text:         req.Text,
		DocumentType: doctype.Parse(req.DocumentType),
		Recipient:    req.Recipient,
		Metadata:     req.Metadata,
		Options:      h.optionsFor(req),
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// Classify handles POST /v1/classify
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, errors.CodeInvalidInput, "use POST")
		return
	}
	if h.classifier == nil {
		h.writeError(w, http.StatusServiceUnavailable, errors.CodeModelNotLoaded, "classifier not configured")
		return
	}

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "invalid JSON body")
		return
	}

	result, err := h.classifier.Classify(r.Context(), req.Text)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// VoiceCommand handles POST /v1/voice-command
func (h *Handler) VoiceCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, errors.CodeInvalidInput, "use POST")
		return
	}

	var req VoiceCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "invalid JSON body")
		return
	}

	inst := voicecmd.Parse(req.Text)
	h.writeJSON(w, http.StatusOK, VoiceCommandResponse{
		Matched:     inst != nil,
		Instruction: inst,
	})
}

// SimilarPatterns handles GET /v1/patterns/similar
func (h *Handler) SimilarPatterns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, errors.CodeInvalidInput, "use GET")
		return
	}
	if h.patterns == nil {
		h.writeError(w, http.StatusServiceUnavailable, errors.CodeStorage, "learning store not configured")
		return
	}

	text := r.URL.Query().Get("text")
	if text == "" {
		h.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "text query parameter is required")
		return
	}
	dt := doctype.Parse(r.URL.Query().Get("document_type"))
	threshold := h.threshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			h.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "threshold must be a number in [0,1]")
			return
		}
		threshold = v
	}

	matches, err := h.patterns.FindSimilar(r.Context(), text, dt, threshold)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if matches == nil {
		matches = []learning.Pattern{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"patterns": matches,
		"total":    len(matches),
	})
}

// Health handles GET /v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.health.Check(r.Context())
	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, report)
}

// optionsFor merges explicit request overrides onto the configured defaults
func (h *Handler) optionsFor(req EnhanceRequest) pipeline.Options {
	return mergeOptions(h.defaults, req)
}

func mergeOptions(defaults pipeline.Options, req EnhanceRequest) pipeline.Options {
	opts := defaults
	if req.RemoveFillers != nil {
		opts.RemoveFillers = *req.RemoveFillers
	}
	if req.AutoPunctuate != nil {
		opts.AutoPunctuate = *req.AutoPunctuate
	}
	if req.AutoCapitalize != nil {
		opts.AutoCapitalize = *req.AutoCapitalize
	}
	if req.ApplyLearning != nil {
		opts.ApplyLearning = *req.ApplyLearning
	}
	if req.UseCloud != nil {
		opts.UseCloud = *req.UseCloud
	}
	return opts
}

// writeServiceError maps typed service errors onto HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeEmptyText, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeModelNotLoaded:
		status = http.StatusServiceUnavailable
	}
	h.writeError(w, status, code, err.Error())
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code errors.Code, message string) {
	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = message
	h.writeJSON(w, status, body)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
