// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     corrections
// Description: Removal of mid-utterance speech self-corrections
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package corrections

import (
	"sort"
	"strings"
	"unicode"
)

// correctionMarkers are the phrases a speaker uses to retract what was
// just said. The list is re-sorted by descending length before each run
// so longer markers are never pre-empted by their shorter substrings.
var correctionMarkers = []string{
	"oh no",
	"actually",
	"i mean",
	"i meant",
	"wait",
	"no wait",
	"scratch that",
	"correction",
	"make that",
	"let me rephrase",
	"let me rephrase that",
	"strike that",
}

// clauseBoundaries are fallback cut anchors when no sentence or comma
// boundary precedes a marker. Surrounding spaces are part of the match.
var clauseBoundaries = []string{
	" and ", " but ", " or ", " so ", " because ", " since ", " while ", " when ",
}

// Excisor removes speech self-corrections from text
type Excisor struct {
	markers []string
}

// NewExcisor creates an excisor with the default marker table
func NewExcisor() *Excisor {
	return &Excisor{markers: correctionMarkers}
}

// Process removes self-corrections. Each marker in the length-sorted
// table is excised once, feeding its output into the next marker.
func (e *Excisor) Process(text string) string {
	markers := make([]string, len(e.markers))
	copy(markers, e.markers)
	sort.Slice(markers, func(i, j int) bool {
		if len(markers[i]) != len(markers[j]) {
			return len(markers[i]) > len(markers[j])
		}
		return markers[i] < markers[j]
	})

	result := text
	for _, marker := range markers {
		result = excise(result, marker)
	}
	return result
}

// excise removes the first occurrence of marker plus the retracted clause
// before it, keeping text up to the last boundary and joining it with the
// corrected continuation
func excise(text, marker string) string {
	lower := strings.ToLower(text)
	// Lower-casing that changes byte length would shift every offset below
	if len(lower) != len(text) {
		lower = text
	}
	idx := strings.Index(lower, marker)
	if idx < 0 {
		return text
	}

	before := text[:idx]
	prefix := strings.TrimSpace(before[:cutPoint(before)])

	after := text[idx+len(marker):]
	after = strings.TrimLeft(after, " \t,")

	if prefix == "" {
		return after
	}
	if after == "" {
		return prefix
	}
	if !endsInTerminal(prefix) {
		prefix = strings.TrimRight(prefix, ",;")
		prefix += "."
	}
	return prefix + " " + after
}

// cutPoint computes how much of the text preceding a marker survives,
// using the boundary priority chain: sentence end, then comma, then
// clause-boundary phrase, then nothing.
func cutPoint(before string) int {
	trimmed := strings.TrimRight(before, " \t")
	if endsInTerminal(trimmed) {
		return len(before)
	}
	if pos := lastSentenceBoundary(before); pos >= 0 {
		return pos
	}
	if idx := strings.LastIndex(before, ","); idx >= 0 {
		return idx + 1
	}
	lower := strings.ToLower(before)
	best := -1
	for _, boundary := range clauseBoundaries {
		if idx := strings.LastIndex(lower, boundary); idx >= 0 && idx+len(boundary) > best {
			best = idx + len(boundary)
		}
	}
	if best >= 0 {
		return best
	}
	return 0
}

// lastSentenceBoundary finds the position just after the last terminal
// punctuation that is followed by whitespace and a capital letter
func lastSentenceBoundary(text string) int {
	runes := []rune(text)
	pos := -1
	byteOffset := 0
	offsets := make([]int, len(runes))
	for i, r := range runes {
		offsets[i] = byteOffset
		byteOffset += len(string(r))
	}
	for i := 0; i < len(runes)-2; i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		j := i + 1
		if !unicode.IsSpace(runes[j]) {
			continue
		}
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j < len(runes) && unicode.IsUpper(runes[j]) {
			pos = offsets[i] + len(string(runes[i]))
		}
	}
	return pos
}

func endsInTerminal(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	last := t[len(t)-1]
	return last == '.' || last == '!' || last == '?'
}
