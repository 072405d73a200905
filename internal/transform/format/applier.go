// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     format
// Description: Document-type specific text formatting
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package format

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/msto63/cicero/internal/doctype"
)

const (
	// emailClosingThreshold is the minimum text length before a closing
	// line is appended
	emailClosingThreshold = 50
	// documentParagraphThreshold triggers paragraph grouping for plain
	// documents
	documentParagraphThreshold = 200
	// sentencesPerParagraph bounds paragraph size in emails and documents
	sentencesPerParagraph = 3

	tweetDefaultLimit  = 280
	linkedinWordLimit  = 150
	socialAutoWordCap  = 40
	socialAutoWordHigh = 100
	searchWordLimit    = 10
)

var greetingWords = map[string]bool{
	"hi": true, "hello": true, "hey": true, "dear": true,
	"greetings": true, "morning": true, "afternoon": true, "evening": true,
}

var closingPhrases = []string{
	"regards", "sincerely", "best wishes", "thank you", "thanks",
	"cheers", "yours truly", "talk soon",
}

// questionCues and questionOpeners are a closed table. Extending it is a
// behavior change, not a refactor.
var questionCues = []string{"can you", "could you"}

var questionOpeners = map[string]bool{
	"what": true, "when": true, "where": true, "how": true,
}

// searchStopWords are stripped from search queries. Order is irrelevant
// here, membership is all that matters.
var searchStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "for": true, "to": true, "of": true,
	"in": true, "on": true, "at": true, "with": true, "and": true, "or": true,
	"is": true, "are": true, "was": true, "were": true, "me": true, "my": true,
	"please": true, "some": true, "about": true,
}

// Applier formats text according to its document type
type Applier struct{}

func NewApplier() *Applier {
	return &Applier{}
}

// Apply dispatches on the canonical document type and returns the formatted
// text together with the ordered list of changes that were made
func (a *Applier) Apply(text string, dt doctype.DocumentType, recipient string, metadata map[string]string) (string, []string) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	switch dt.Canonical() {
	case doctype.Email:
		return a.formatEmail(text, recipient)
	case doctype.Message:
		return a.formatMessage(text, recipient)
	case doctype.Document:
		return a.formatDocument(text, metadata)
	case doctype.Social:
		return a.formatSocial(text, metadata)
	case doctype.Code:
		return a.formatPlain(text)
	case doctype.Search:
		return a.formatSearch(text)
	default:
		return a.formatPlain(text)
	}
}

func (a *Applier) formatEmail(text, recipient string) (string, []string) {
	var changes []string

	if capped := capitalizeNamesAfterGreetings(text); capped != text {
		text = capped
		changes = append(changes, "capitalized_names")
	}

	sentences := splitSentences(text)
	for i := range sentences {
		sentences[i] = ensureTerminal(capitalizeFirst(sentences[i]))
	}
	changes = append(changes, "sentence_punctuation")

	// Paragraphs of up to three sentences keep dictated emails readable
	var paragraphs []string
	for i := 0; i < len(sentences); i += sentencesPerParagraph {
		end := i + sentencesPerParagraph
		if end > len(sentences) {
			end = len(sentences)
		}
		paragraphs = append(paragraphs, strings.Join(sentences[i:end], " "))
	}
	body := strings.Join(paragraphs, "\n\n")
	if len(paragraphs) > 1 {
		changes = append(changes, "paragraph_grouping")
	}

	if !hasGreeting(text) {
		greeting := "Hi,"
		if recipient != "" {
			greeting = "Hi " + recipient + ","
		}
		body = greeting + "\n\n" + body
		changes = append(changes, "greeting_added")
	}

	if len(text) > emailClosingThreshold && !hasClosing(text) {
		body += "\n\nBest regards"
		changes = append(changes, "closing_added")
	}

	return body, changes
}

func (a *Applier) formatMessage(text, recipient string) (string, []string) {
	var changes []string

	if recipient != "" && !hasGreeting(text) {
		text = "Hi " + recipient + ", " + text
		changes = append(changes, "greeting_added")
	}

	text = capitalizeFirst(text)
	changes = append(changes, "capitalized")

	if !strings.HasSuffix(text, "?") && !strings.HasSuffix(text, "!") {
		trimmed := strings.TrimRight(text, ".")
		if isQuestionLike(trimmed) {
			text = trimmed + "?"
		} else {
			text = trimmed + "."
		}
		changes = append(changes, "terminal_punctuation")
	}

	return text, changes
}

func (a *Applier) formatDocument(text string, metadata map[string]string) (string, []string) {
	switch metadata["format"] {
	case "bullet_points":
		return bulletize(text, "• "), []string{"bullet_points"}
	case "todo_list":
		return bulletize(text, "☐ "), []string{"todo_list"}
	case "memo":
		return "MEMO\n\n" + ensureTerminal(capitalizeFirst(text)), []string{"memo_header"}
	}

	var changes []string
	sentences := splitSentences(text)
	for i := range sentences {
		sentences[i] = ensureTerminal(capitalizeFirst(sentences[i]))
	}
	changes = append(changes, "sentence_punctuation")

	if len(text) > documentParagraphThreshold {
		var paragraphs []string
		for i := 0; i < len(sentences); i += sentencesPerParagraph {
			end := i + sentencesPerParagraph
			if end > len(sentences) {
				end = len(sentences)
			}
			paragraphs = append(paragraphs, strings.Join(sentences[i:end], " "))
		}
		changes = append(changes, "paragraph_grouping")
		return strings.Join(paragraphs, "\n\n"), changes
	}

	return strings.Join(sentences, " "), changes
}

func (a *Applier) formatSocial(text string, metadata map[string]string) (string, []string) {
	var changes []string
	text = capitalizeFirst(text)

	switch metadata["format"] {
	case "tweet":
		limit := tweetDefaultLimit
		if v, err := strconv.Atoi(metadata["limit"]); err == nil && v > 3 {
			limit = v
		}
		if len(text) > limit {
			text = strings.TrimSpace(text[:limit-3]) + "..."
			changes = append(changes, "truncated_tweet")
		}
	case "linkedin":
		words := strings.Fields(text)
		if len(words) > linkedinWordLimit {
			text = strings.Join(words[:linkedinWordLimit], " ") + "..."
			changes = append(changes, "truncated_linkedin")
		}
	default:
		// Auto-classified social text. Anything above the upper bound is
		// assumed misclassified and left alone.
		words := strings.Fields(text)
		if len(words) > socialAutoWordCap && len(words) < socialAutoWordHigh {
			text = strings.Join(words[:socialAutoWordCap], " ") + "..."
			changes = append(changes, "truncated")
		}
	}

	if !strings.HasSuffix(text, "...") {
		text = ensureTerminal(text)
	}
	return text, changes
}

func (a *Applier) formatPlain(text string) (string, []string) {
	formatted := ensureTerminal(capitalizeFirst(text))
	changes := []string{"capitalized"}
	if formatted != capitalizeFirst(text) {
		changes = append(changes, "terminal_punctuation")
	}
	return formatted, changes
}

func (a *Applier) formatSearch(text string) (string, []string) {
	changes := []string{"lowercased"}
	lower := strings.ToLower(text)

	words := strings.Fields(lower)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,!?")
		if w == "" || searchStopWords[w] {
			continue
		}
		kept = append(kept, w)
	}
	// An all-stopword query must keep its words; stripping them all would
	// leave nothing to search for
	if len(kept) == 0 {
		return strings.TrimSpace(lower), changes
	}
	if len(kept) < len(words) {
		changes = append(changes, "stop_words_removed")
	}
	if len(kept) > searchWordLimit {
		kept = kept[:searchWordLimit]
		changes = append(changes, "truncated")
	}
	return strings.Join(kept, " "), changes
}

// bulletize turns each sentence into one prefixed line
func bulletize(text, prefix string) string {
	sentences := splitSentences(text)
	lines := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimRight(strings.TrimSpace(s), ".")
		if s == "" {
			continue
		}
		lines = append(lines, prefix+capitalizeFirst(s))
	}
	if len(lines) == 0 {
		return text
	}
	return strings.Join(lines, "\n")
}

// capitalizeNamesAfterGreetings upper-cases the word directly following a
// greeting word, which in dictated text is almost always a name
func capitalizeNamesAfterGreetings(text string) string {
	words := strings.Split(text, " ")
	for i := 0; i < len(words)-1; i++ {
		if greetingWords[strings.ToLower(strings.Trim(words[i], ",.!?"))] {
			words[i+1] = capitalizeFirst(words[i+1])
		}
	}
	return strings.Join(words, " ")
}

func hasGreeting(text string) bool {
	tokens := strings.Fields(strings.ToLower(text))
	limit := 3
	if len(tokens) < limit {
		limit = len(tokens)
	}
	for _, tok := range tokens[:limit] {
		if greetingWords[strings.Trim(tok, ",.!?")] {
			return true
		}
	}
	return false
}

func hasClosing(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range closingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func isQuestionLike(text string) bool {
	lower := strings.ToLower(text)
	for _, cue := range questionCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	fields := strings.Fields(lower)
	return len(fields) > 0 && questionOpeners[fields[0]]
}

func splitSentences(text string) []string {
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

func ensureTerminal(s string) string {
	trimmed := strings.TrimRight(s, " ")
	if trimmed == "" {
		return s
	}
	last := trimmed[len(trimmed)-1]
	if last == '.' || last == '!' || last == '?' {
		return trimmed
	}
	return trimmed + "."
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
