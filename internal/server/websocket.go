// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     server
// Description: Websocket streaming of pipeline stage events
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msto63/cicero/internal/doctype"
	"github.com/msto63/cicero/internal/enhance"
	"github.com/msto63/cicero/internal/pipeline"
	"github.com/msto63/cicero/pkg/core/errors"
	"github.com/msto63/cicero/pkg/core/logging"
)

// Websocket upgrader with permissive settings for local use
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamMessage is an incoming websocket message
type StreamMessage struct {
	Type    string          `json:"type"` // "enhance", "ping"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StreamResponse is an outgoing websocket message
type StreamResponse struct {
	Type    string      `json:"type"` // "stage", "result", "error", "pong"
	Payload interface{} `json:"payload,omitempty"`
}

// StageEvent reports one executed pipeline stage
type StageEvent struct {
	RequestID string `json:"request_id"`
	Stage     string `json:"stage"`
	Index     int    `json:"index"`
}

// StreamErrorPayload is the websocket error envelope
type StreamErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StreamHandler streams stage events for enhancement requests
type StreamHandler struct {
	service  *enhance.Service
	defaults pipeline.Options
	logger   *logging.Logger
}

// NewStreamHandler creates the websocket handler
func NewStreamHandler(svc *enhance.Service, defaults pipeline.Options) *StreamHandler {
	return &StreamHandler{
		service:  svc,
		defaults: defaults,
		logger:   logging.New("cicero-stream"),
	}
}

// ServeHTTP upgrades the connection and serves enhancement requests
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.logger.Info("Websocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

	for {
		var msg StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("Websocket read error", "error", err)
			} else {
				h.logger.Info("Websocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(120 * time.Second))

		switch msg.Type {
		case "ping":
			h.send(conn, StreamResponse{Type: "pong"})

		case "enhance":
			var req EnhanceRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				h.sendError(conn, errors.CodeInvalidInput, "invalid enhance payload")
				continue
			}
			h.handleEnhance(r, conn, req)

		default:
			h.sendError(conn, errors.CodeInvalidInput, "unknown message type: "+msg.Type)
		}
	}
}

// handleEnhance runs one request and emits one stage event per executed
// stage, then the final result
func (h *StreamHandler) handleEnhance(r *http.Request, conn *websocket.Conn, req EnhanceRequest) {
	result, err := h.service.Enhance(r.Context(), enhance.Request{
		Text:         req.Text,
		DocumentType: doctype.Parse(req.DocumentType),
		Recipient:    req.Recipient,
		Metadata:     req.Metadata,
		Options:      mergeOptions(h.defaults, req),
	})
	if err != nil {
		h.sendError(conn, errors.CodeOf(err), err.Error())
		return
	}

	for i, stage := range result.AppliedRules {
		h.send(conn, StreamResponse{
			Type: "stage",
			Payload: StageEvent{
				RequestID: result.ID,
				Stage:     stage,
				Index:     i,
			},
		})
	}
	h.send(conn, StreamResponse{Type: "result", Payload: result})
}

func (h *StreamHandler) send(conn *websocket.Conn, resp StreamResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Error("Websocket send error", "error", err)
	}
}

func (h *StreamHandler) sendError(conn *websocket.Conn, code errors.Code, message string) {
	h.send(conn, StreamResponse{
		Type: "error",
		Payload: StreamErrorPayload{
			Code:    string(code),
			Message: message,
		},
	})
}
