// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     voter
// Description: Dominant-characteristic voting over classifier predictions
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package voter

import (
	"sort"
	"strings"

	"github.com/msto63/cicero/internal/classify/features"
	"github.com/msto63/cicero/internal/doctype"
)

// Vote weights. Empirically tuned; any rebalancing is a behavior change
// that needs new test fixtures, not a refactor.
const (
	weightGreetingFormal    = 3
	weightSignature         = 3
	weightGreetingAlone     = 1
	weightShortIncomplete   = 3
	weightVeryShort         = 2
	weightLongFormal        = 3
	weightManySentences     = 2
	weightCasualShort       = 2
	weightExclamations      = 2
	weightHashtagMention    = 3
	weightLowPunctuation    = 1
)

// Decide applies the dominant-characteristic rules and returns the final
// category. If no category strictly dominates, the baseline prediction is
// returned unchanged.
func Decide(text string, f features.TextFeatures, baseline doctype.DocumentType) doctype.DocumentType {
	scores := map[doctype.DocumentType]int{
		doctype.Email:    0,
		doctype.Message:  0,
		doctype.Document: 0,
		doctype.Social:   0,
		doctype.Code:     0,
		doctype.Search:   0,
	}

	lower := strings.ToLower(text)

	// Email signals
	if f.HasGreeting && f.FormalityScore > 0.6 {
		scores[doctype.Email] += weightGreetingFormal
	}
	if f.HasSignature {
		scores[doctype.Email] += weightSignature
	}
	if f.HasGreeting {
		scores[doctype.Email] += weightGreetingAlone
	}

	// Code signals: the technical term count votes with its own magnitude
	if f.TechnicalTermCount > 0 {
		scores[doctype.Code] += f.TechnicalTermCount
	}

	// Search signals
	if f.WordCount <= 10 && !f.HasCompleteSentences {
		scores[doctype.Search] += weightShortIncomplete
	}
	if f.WordCount <= 4 {
		scores[doctype.Search] += weightVeryShort
	}
	if f.PunctuationDensity < 0.01 && f.WordCount <= 10 {
		scores[doctype.Search] += weightLowPunctuation
	}

	// Document signals
	if f.WordCount > 50 && f.FormalityScore > 0.5 {
		scores[doctype.Document] += weightLongFormal
	}
	if f.SentenceCount >= 4 {
		scores[doctype.Document] += weightManySentences
	}

	// Message signals
	if f.WordCount <= 25 && f.FormalityScore < 0.4 && f.HasCompleteSentences {
		scores[doctype.Message] += weightCasualShort
	}

	// Social signals
	if strings.Contains(text, "!!") || strings.Contains(lower, "#") || strings.Contains(lower, "@") {
		scores[doctype.Social] += weightExclamations
	}
	if strings.Contains(lower, "hashtag") {
		scores[doctype.Social] += weightHashtagMention
	}

	ranked := make([]doctype.DocumentType, 0, len(scores))
	for category := range scores {
		ranked = append(ranked, category)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		// Stable order for equal scores so ties are deterministic
		return ranked[i] < ranked[j]
	})

	// Tie-break: only a strictly dominant top score overrides the baseline.
	// A tie (including all-zero) returns the baseline unchanged.
	if scores[ranked[0]] > scores[ranked[1]] {
		return ranked[0]
	}
	return baseline
}
