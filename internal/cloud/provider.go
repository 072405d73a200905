// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     cloud
// Description: Pluggable cloud rewrite providers for enhanced dictation
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package cloud

import (
	"context"

	"github.com/msto63/cicero/internal/doctype"
)

// Provider rewrites text through an external LLM API. Implementations are
// selected by configuration key and must honor context cancellation.
type Provider interface {
	Name() string
	Enhance(ctx context.Context, text string, dt doctype.DocumentType, systemPrompt string) (string, error)
}

const defaultMaxTokens = 1024

// systemPromptFor returns the rewrite instruction for a document type.
// Providers receive it verbatim as their system prompt.
func systemPromptFor(dt doctype.DocumentType) string {
	base := "You are a dictation cleanup assistant. Rewrite the user's dictated text " +
		"so it reads naturally. Keep the meaning, fix grammar, do not add new content. " +
		"Reply with the rewritten text only."

	switch dt.Canonical() {
	case doctype.Email:
		return base + " The text is an email; keep greeting and closing intact."
	case doctype.Message:
		return base + " The text is a short chat message; keep it casual and brief."
	case doctype.Document:
		return base + " The text is part of a document; keep a neutral written register."
	case doctype.Social:
		return base + " The text is a social media post; keep it punchy."
	case doctype.Code:
		return base + " The text is a code comment; keep technical terms exactly as dictated."
	default:
		return base
	}
}
