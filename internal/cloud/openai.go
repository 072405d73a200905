// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     cloud
// Description: OpenAI rewrite provider implementation
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

// OpenAIProvider talks to the OpenAI chat completions API
type OpenAIProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// OpenAIConfig holds OpenAI provider configuration
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewOpenAIProvider creates an OpenAI provider
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, cerrors.New(cerrors.CodeConfig, "OpenAI API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAIProvider{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name returns the configuration key of this provider
func (p *OpenAIProvider) Name() string {
	return "openai"
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Model string `json:"model"`
}

// Enhance rewrites text via the chat completions endpoint
func (p *OpenAIProvider) Enhance(ctx context.Context, text string, dt doctype.DocumentType, systemPrompt string) (string, error) {
	if systemPrompt == "" {
		systemPrompt = systemPromptFor(dt)
	}

	reqBody := openAIRequest{
		Model:     p.model,
		MaxTokens: defaultMaxTokens,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", cerrors.Wrap(err, cerrors.CodeCloudRewrite, "marshaling OpenAI request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", cerrors.Wrap(err, cerrors.CodeCloudRewrite, "creating OpenAI request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", cerrors.Wrap(err, cerrors.CodeCloudRewrite, "OpenAI request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", cerrors.Newf(cerrors.CodeCloudRewrite, "OpenAI API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var openAIResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", cerrors.Wrap(err, cerrors.CodeCloudRewrite, "decoding OpenAI response")
	}

	if len(openAIResp.Choices) == 0 {
		return "", cerrors.New(cerrors.CodeCloudRewrite, "OpenAI returned no choices")
	}
	result := strings.TrimSpace(openAIResp.Choices[0].Message.Content)
	if result == "" {
		return "", cerrors.New(cerrors.CodeCloudRewrite, "OpenAI returned an empty rewrite")
	}
	return result, nil
}
