// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     fillers
// Description: Context-aware removal of speech filler words
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package fillers

import (
	"regexp"
	"strings"
)

// contextWindow is the number of characters inspected around a match when
// checking protected phrases
const contextWindow = 20

// fillerEntry pairs a filler with the phrases that protect it. Protected
// phrases are legitimate uses the remover must not touch.
type fillerEntry struct {
	word      string
	protected []string
}

// fillerTable is processed in declared order; later entries act on the
// already-partially-cleaned text, so the order is part of the behavior.
var fillerTable = []fillerEntry{
	{"um", nil},
	{"uhm", nil},
	{"uh", nil},
	{"er", nil},
	{"ah", nil},
	{"you know", []string{"do you know", "did you know", "you know what", "as you know", "if you know"}},
	{"like", []string{
		"would like", "would not like", "wouldn't like", "looks like", "look like",
		"looked like", "feels like", "feel like", "felt like", "sounds like",
		"sound like", "sounded like", "seems like", "seem like", "something like",
		"anything like", "nothing like", "just like", "much like", "is like",
		"was like", "be like", "really like", "i like", "we like", "they like",
	}},
	{"basically", nil},
	{"literally", []string{"quite literally", "taken literally"}},
	{"sort of", []string{"some sort of", "this sort of", "that sort of", "a sort of"}},
	{"kind of", []string{"some kind of", "this kind of", "that kind of", "a kind of", "one kind of", "what kind of"}},
	{"i guess", nil},
	{"you see", nil},
	{"anyway", nil},
}

var (
	multiSpaceRe   = regexp.MustCompile(`[ \t]{2,}`)
	spaceBeforeRe  = regexp.MustCompile(` ([,.!?;:])`)
	fillerPatterns = buildPatterns()
)

func buildPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(fillerTable))
	for i, entry := range fillerTable {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(entry.word) + `\b`)
	}
	return patterns
}

// Remover deletes filler words unless their context protects them
type Remover struct{}

// NewRemover creates a filler remover with the default table
func NewRemover() *Remover {
	return &Remover{}
}

// Remove returns the cleaned text and the fillers that were removed, in
// the order they were processed
func (r *Remover) Remove(text string) (string, []string) {
	removed := make([]string, 0, 4)

	for i, entry := range fillerTable {
		matches := fillerPatterns[i].FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}

		// Record removable matches in document order first, then delete
		// back-to-front so earlier deletions cannot shift later offsets.
		removable := make([][]int, 0, len(matches))
		for _, m := range matches {
			if isProtected(text, m[0], m[1], entry.protected) {
				continue
			}
			removable = append(removable, m)
			removed = append(removed, text[m[0]:m[1]])
		}
		for j := len(removable) - 1; j >= 0; j-- {
			m := removable[j]
			text = text[:m[0]] + text[m[1]:]
		}
	}

	return cleanup(text), removed
}

// isProtected checks a small window around the match against the
// per-filler protected-phrase table
func isProtected(text string, start, end int, protected []string) bool {
	if len(protected) == 0 {
		return false
	}
	winStart := start - contextWindow
	if winStart < 0 {
		winStart = 0
	}
	winEnd := end + contextWindow
	if winEnd > len(text) {
		winEnd = len(text)
	}
	window := strings.ToLower(text[winStart:winEnd])
	for _, phrase := range protected {
		if strings.Contains(window, phrase) {
			return true
		}
	}
	return false
}

// cleanup collapses space runs and removes spaces left dangling before
// punctuation
func cleanup(text string) string {
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = spaceBeforeRe.ReplaceAllString(text, "$1")
	// A removed leading filler can leave its comma behind
	text = strings.TrimLeft(text, ", ")
	return strings.TrimSpace(text)
}
