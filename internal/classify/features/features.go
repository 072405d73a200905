// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     features
// Description: Deterministic text feature extraction for classification
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package features

import (
	"strings"
	"unicode"
)

// TextFeatures holds the numeric and boolean signals derived from a text.
// Values are clamped at construction; invalid inputs are coerced, never
// rejected.
type TextFeatures struct {
	SentenceCount         int     `json:"sentence_count"`
	WordCount             int     `json:"word_count"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
	HasCompleteSentences  bool    `json:"has_complete_sentences"`
	FormalityScore        float64 `json:"formality_score"`
	TechnicalTermCount    int     `json:"technical_term_count"`
	PunctuationDensity    float64 `json:"punctuation_density"`
	HasGreeting           bool    `json:"has_greeting"`
	HasSignature          bool    `json:"has_signature"`
}

// New clamps raw values into a valid TextFeatures
func New(sentenceCount, wordCount int, avgSentenceLength float64, complete bool,
	formality float64, technicalTerms int, punctDensity float64, greeting, signature bool) TextFeatures {
	if sentenceCount < 1 {
		sentenceCount = 1
	}
	if wordCount < 0 {
		wordCount = 0
	}
	if avgSentenceLength < 0 {
		avgSentenceLength = 0
	}
	if technicalTerms < 0 {
		technicalTerms = 0
	}
	return TextFeatures{
		SentenceCount:         sentenceCount,
		WordCount:             wordCount,
		AverageSentenceLength: avgSentenceLength,
		HasCompleteSentences:  complete,
		FormalityScore:        clamp01(formality),
		TechnicalTermCount:    technicalTerms,
		PunctuationDensity:    clamp01(punctDensity),
		HasGreeting:           greeting,
		HasSignature:          signature,
	}
}

var greetingWords = []string{
	"hi", "hello", "hey", "dear", "greetings", "morning", "afternoon", "evening", "howdy",
}

var signaturePhrases = []string{
	"best regards", "kind regards", "warm regards", "sincerely", "yours truly",
	"best wishes", "cheers,", "thanks,", "thank you,", "regards,", "best,",
}

var technicalVocabulary = []string{
	"function", "variable", "database", "server", "api", "endpoint", "bug",
	"deploy", "compile", "debug", "algorithm", "array", "string", "boolean",
	"integer", "class", "method", "query", "repository", "commit", "merge",
	"branch", "null", "exception", "runtime", "syntax", "refactor",
}

var codePunctuationPatterns = []string{
	"()", "{}", "[]", "=>", "->", "==", "!=", "&&", "||",
}

var formalWords = []string{
	"therefore", "however", "furthermore", "regarding", "accordingly",
	"nevertheless", "consequently", "moreover", "respectively", "pursuant",
	"hereby", "sincerely", "appreciate", "kindly", "request", "confirm",
}

// Extract derives TextFeatures from raw text. Pure function, no side
// effects, deterministic.
func Extract(text string) TextFeatures {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	sentences := SplitSentences(trimmed)
	sentenceCount := len(sentences)
	if sentenceCount < 1 && trimmed != "" {
		sentenceCount = 1
	}

	tokens := strings.Fields(trimmed)
	wordCount := len(tokens)

	avgLen := 0.0
	if sentenceCount > 0 {
		avgLen = float64(wordCount) / float64(sentenceCount)
	}

	complete := endsInTerminal(trimmed)

	return New(
		sentenceCount,
		wordCount,
		avgLen,
		complete,
		formalityScore(trimmed, tokens, complete),
		technicalTermCount(lower),
		punctuationDensity(trimmed),
		hasGreeting(tokens),
		hasSignature(lower),
	)
}

// SplitSentences splits text on sentence-terminating punctuation runs,
// returning the non-empty trimmed segments. A trailing unterminated
// segment counts as a sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Swallow the rest of the terminator run
			for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
				i++
				current.WriteRune(runes[i])
			}
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func endsInTerminal(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	last := t[len(t)-1]
	return last == '.' || last == '!' || last == '?'
}

func punctuationDensity(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	total := 0
	punct := 0
	for _, r := range text {
		total++
		if unicode.IsPunct(r) {
			punct++
		}
	}
	return clamp01(float64(punct) / float64(total))
}

// hasGreeting checks the first 5 whitespace-split tokens against the
// greeting word set
func hasGreeting(tokens []string) bool {
	limit := 5
	if len(tokens) < limit {
		limit = len(tokens)
	}
	for i := 0; i < limit; i++ {
		word := strings.ToLower(strings.Trim(tokens[i], ",.!?;:"))
		for _, g := range greetingWords {
			if word == g {
				return true
			}
		}
	}
	return false
}

// hasSignature checks for signature phrases anywhere in the lower-cased
// text (substring, not tokenized)
func hasSignature(lower string) bool {
	for _, phrase := range signaturePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// technicalTermCount sums word-boundary vocabulary matches and one point
// per distinct code-punctuation pattern present
func technicalTermCount(lower string) int {
	count := 0
	words := splitWords(lower)
	for _, w := range words {
		for _, term := range technicalVocabulary {
			if w == term {
				count++
			}
		}
	}
	for _, pattern := range codePunctuationPatterns {
		if strings.Contains(lower, pattern) {
			count++
		}
	}
	return count
}

func formalityScore(text string, tokens []string, complete bool) float64 {
	score := 0.0

	if len(tokens) > 0 {
		matches := 0
		for _, w := range splitWords(strings.ToLower(text)) {
			for _, formal := range formalWords {
				if w == formal {
					matches++
				}
			}
		}
		score = float64(matches) / float64(len(tokens)) * 10
	}

	if complete {
		score += 0.2
	}
	if strings.Contains(text, "!!") || strings.Contains(text, "...") {
		score -= 0.2
	}
	for _, tok := range tokens {
		if isShouting(tok) {
			score -= 0.1
		}
	}

	return clamp01(score)
}

// isShouting reports whether a token is an all-caps alphabetic word of
// length > 1 with at least one letter
func isShouting(tok string) bool {
	runes := []rune(tok)
	if len(runes) <= 1 {
		return false
	}
	hasLetter := false
	for _, r := range runes {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// splitWords splits on any non-letter, non-digit rune
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
