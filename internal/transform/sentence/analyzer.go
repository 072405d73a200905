// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     sentence
// Description: Per-sentence type detection, punctuation and capitalization
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package sentence

import (
	"strings"
	"unicode"
)

// Type classifies a single sentence
type Type string

const (
	Statement   Type = "statement"
	Question    Type = "question"
	Exclamation Type = "exclamation"
	Command     Type = "command"
)

// questionStarters are WH-words that open a direct question
var questionStarters = map[string]bool{
	"what": true, "when": true, "where": true, "who": true, "whom": true,
	"whose": true, "why": true, "which": true, "how": true,
}

// auxiliaries open an inverted-order question when followed by a pronoun
var auxiliaries = map[string]bool{
	"is": true, "are": true, "was": true, "were": true, "am": true,
	"do": true, "does": true, "did": true,
	"can": true, "could": true, "will": true, "would": true,
	"shall": true, "should": true, "may": true, "might": true, "must": true,
	"have": true, "has": true, "had": true,
}

var invertedFollowers = map[string]bool{
	"i": true, "you": true, "he": true, "she": true, "it": true,
	"we": true, "they": true, "there": true,
}

// commandVerbs open an imperative when at least one more token follows.
// Auxiliaries are deliberately absent so inverted questions stay questions.
var commandVerbs = map[string]bool{
	"send": true, "make": true, "create": true, "add": true, "remove": true,
	"delete": true, "open": true, "close": true, "start": true, "stop": true,
	"call": true, "write": true, "check": true, "find": true, "set": true,
	"put": true, "take": true, "turn": true, "tell": true, "show": true,
	"give": true, "bring": true, "go": true, "please": true,
}

var exclamationWords = map[string]bool{
	"wow": true, "amazing": true, "awesome": true, "great": true,
	"fantastic": true, "incredible": true, "unbelievable": true,
	"excellent": true, "perfect": true, "terrible": true, "awful": true,
	"horrible": true, "outstanding": true, "brilliant": true,
}

var tagSuffixes = []string{
	"isn't it", "isn't that", "aren't they", "aren't you",
	"don't you", "don't they", "doesn't it", "didn't you",
	"won't you", "can't you", "wouldn't it", "shouldn't we",
}

// Analyzer detects sentence types and applies punctuation and
// capitalization sentence by sentence
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// DetectType classifies one sentence. The rule order is fixed: question
// starter, command verb, inverted auxiliary, tag suffix, WH plus auxiliary
// anywhere, exclamation word last.
func (a *Analyzer) DetectType(s string) Type {
	clean := strings.TrimRight(strings.TrimSpace(s), ".!?,;:")
	lower := strings.ToLower(clean)
	words := strings.Fields(lower)
	if len(words) == 0 {
		return Statement
	}

	first := strings.Trim(words[0], ",;:")
	if questionStarters[first] {
		return Question
	}
	if commandVerbs[first] && len(words) >= 2 {
		return Command
	}
	if auxiliaries[first] && len(words) >= 2 && invertedFollowers[strings.Trim(words[1], ",;:")] {
		return Question
	}
	for _, tag := range tagSuffixes {
		if strings.HasSuffix(lower, tag) {
			return Question
		}
	}
	for i := 0; i < len(words)-1; i++ {
		if questionStarters[words[i]] && auxiliaries[words[i+1]] {
			return Question
		}
	}
	if exclamationWords[strings.Trim(words[len(words)-1], ",;:")] {
		return Exclamation
	}
	return Statement
}

// Process splits text into sentences and treats each one independently, so
// a question buried after a statement still gets its question mark.
// Sentences are rejoined with a single space.
func (a *Analyzer) Process(text string, punctuate, capitalize bool) string {
	parts := split(text)
	if len(parts) == 0 {
		return text
	}

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		s := strings.TrimSpace(part)
		if s == "" {
			continue
		}
		if punctuate {
			stripped := strings.TrimRight(s, ".!?,;: ")
			if stripped == "" {
				continue
			}
			switch a.DetectType(stripped) {
			case Question:
				s = stripped + "?"
			case Exclamation:
				s = stripped + "!"
			default:
				s = stripped + "."
			}
		}
		if capitalize {
			s = capitalizeFirst(s)
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return text
	}
	return strings.Join(out, " ")
}

// split cuts text at runs of sentence terminators, keeping the terminators
// attached to their sentence. A trailing unterminated segment is its own
// sentence.
func split(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
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

func capitalizeFirst(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) {
			if unicode.IsUpper(r) {
				return s
			}
			return s[:i] + string(unicode.ToUpper(r)) + s[i+len(string(r)):]
		}
		if !unicode.IsSpace(r) && r != '"' && r != '\'' {
			return s
		}
	}
	return s
}
