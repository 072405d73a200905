// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     voicecmd
// Description: Explicit voice-command prefix and instruction parsing
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package voicecmd

import (
	"strings"

	"github.com/msto63/cicero/internal/doctype"
)

// Instruction is an explicit, prefix-triggered directive that overrides
// automatic classification and formatting
type Instruction struct {
	Prefix       string               `json:"prefix"`
	Instruction  string               `json:"instruction"`
	Content      string               `json:"content"`
	DocumentType doctype.DocumentType `json:"document_type"`
	Recipient    string               `json:"recipient,omitempty"`
	Metadata     map[string]string    `json:"metadata,omitempty"`
}

// commandPrefixes are the spelling variants speech engines produce for the
// wake word. First match wins; table order matters.
var commandPrefixes = []string{
	"bv",
	"b v",
	"bee vee",
}

// instructionPattern maps a spoken phrase to a target document type.
// Ordered by priority: more specific phrases must precede their generic
// substrings ("write an email to" before "email").
type instructionPattern struct {
	phrase           string
	documentType     doctype.DocumentType
	extractRecipient bool
	metadata         map[string]string
}

var instructionPatterns = []instructionPattern{
	{"write an email to", doctype.Email, true, nil},
	{"send an email to", doctype.Email, true, nil},
	{"write an email", doctype.Email, false, nil},
	{"email to", doctype.Email, true, nil},
	{"email", doctype.Email, false, nil},
	{"send a message to", doctype.Message, true, nil},
	{"write a message to", doctype.Message, true, nil},
	{"message to", doctype.Message, true, nil},
	{"message", doctype.Message, false, nil},
	{"text", doctype.Message, false, nil},
	{"make a bullet list", doctype.Document, false, map[string]string{"format": "bullet_points"}},
	{"bullet points", doctype.Document, false, map[string]string{"format": "bullet_points"}},
	{"todo list", doctype.Document, false, map[string]string{"format": "todo_list"}},
	{"to do list", doctype.Document, false, map[string]string{"format": "todo_list"}},
	{"write a memo", doctype.Document, false, map[string]string{"format": "memo"}},
	{"memo", doctype.Document, false, map[string]string{"format": "memo"}},
	{"write a document", doctype.Document, false, nil},
	{"document", doctype.Document, false, nil},
	{"write a tweet", doctype.Social, false, map[string]string{"format": "tweet", "limit": "280"}},
	{"tweet", doctype.Social, false, map[string]string{"format": "tweet", "limit": "280"}},
	{"linkedin post", doctype.Social, false, map[string]string{"format": "linkedin"}},
	{"social post", doctype.Social, false, nil},
	{"post", doctype.Social, false, nil},
	{"code comment", doctype.Code, false, nil},
	{"comment", doctype.Code, false, nil},
	{"search for", doctype.Search, false, nil},
	{"search", doctype.Search, false, nil},
}

// Parse scans for a command prefix and instruction pattern. It returns nil
// when no prefix matches, or a prefix matches but no instruction pattern
// matches the remainder — the text then flows through normal
// classification.
func Parse(text string) *Instruction {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	for _, prefix := range commandPrefixes {
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		remainder := strings.TrimLeft(trimmed[len(prefix):], ", ")
		if remainder == "" {
			continue
		}
		return parseInstruction(prefix, remainder)
	}
	return nil
}

// parseInstruction matches the remainder against the ordered pattern table
func parseInstruction(prefix, remainder string) *Instruction {
	lower := strings.ToLower(remainder)

	for _, pattern := range instructionPatterns {
		if !strings.HasPrefix(lower, pattern.phrase) {
			continue
		}

		rest := strings.TrimSpace(remainder[len(pattern.phrase):])

		inst := &Instruction{
			Prefix:       prefix,
			Instruction:  pattern.phrase,
			Content:      rest,
			DocumentType: pattern.documentType,
		}
		if pattern.metadata != nil {
			inst.Metadata = make(map[string]string, len(pattern.metadata))
			for k, v := range pattern.metadata {
				inst.Metadata[k] = v
			}
		}

		if pattern.extractRecipient {
			recipient, content, ok := splitRecipient(rest)
			if ok {
				inst.Recipient = recipient
				inst.Content = content
			}
		}
		return inst
	}
	return nil
}

// splitRecipient splits "Sam. Thanks for everything" into recipient and
// content at the first sentence terminator. If no terminator exists, or
// either side would be empty, no recipient is extracted.
func splitRecipient(text string) (recipient, content string, ok bool) {
	idx := strings.IndexAny(text, ".!")
	if idx < 0 {
		return "", "", false
	}
	recipient = strings.TrimSpace(text[:idx])
	content = strings.TrimSpace(text[idx+1:])
	if recipient == "" || content == "" {
		return "", "", false
	}
	return recipient, content, true
}
