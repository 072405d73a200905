// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     cloud
// Description: Claude rewrite provider implementation
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/msto63/cicero/internal/doctype"
	cerrors "github.com/msto63/cicero/pkg/core/errors"
)

// ClaudeProvider talks to the Anthropic messages API
type ClaudeProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// ClaudeConfig holds Claude provider configuration
type ClaudeConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewClaudeProvider creates a Claude provider
func NewClaudeProvider(cfg ClaudeConfig) (*ClaudeProvider, error) {
	if cfg.APIKey == "" {
		return nil, cerrors.New(cerrors.CodeConfig, "Claude API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "claude-3-5-haiku-20241022"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ClaudeProvider{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name returns the configuration key of this provider
func (p *ClaudeProvider) Name() string {
	return "claude"
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type claudeMessage struct {
	Role    string          `json:"role"`
	Content []claudeContent `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	Messages  []claudeMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
}

type claudeResponse struct {
	Content    []claudeContent `json:"content"`
	Model      string          `json:"model"`
	StopReason string          `json:"stop_reason"`
}

// Enhance rewrites text via the messages endpoint
func (p *ClaudeProvider) Enhance(ctx context.Context, text string, dt doctype.DocumentType, systemPrompt string) (string, error) {
	if systemPrompt == "" {
		systemPrompt = systemPromptFor(dt)
	}

	reqBody := claudeRequest{
		Model:     p.model,
		MaxTokens: defaultMaxTokens,
		System:    systemPrompt,
		Messages: []claudeMessage{
			{Role: "user", Content: []claudeContent{{Type: "text", Text: text}}},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", cerrors.Wrap(err, cerrors.CodeCloudRewrite, "marshaling Claude request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", cerrors.Wrap(err, cerrors.CodeCloudRewrite, "creating Claude request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", cerrors.Wrap(err, cerrors.CodeCloudRewrite, "Claude request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", cerrors.Newf(cerrors.CodeCloudRewrite, "Claude API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var claudeResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&claudeResp); err != nil {
		return "", cerrors.Wrap(err, cerrors.CodeCloudRewrite, "decoding Claude response")
	}

	var out strings.Builder
	for _, c := range claudeResp.Content {
		if c.Type == "text" {
			out.WriteString(c.Text)
		}
	}
	result := strings.TrimSpace(out.String())
	if result == "" {
		return "", cerrors.New(cerrors.CodeCloudRewrite, "Claude returned an empty rewrite")
	}
	return result, nil
}
