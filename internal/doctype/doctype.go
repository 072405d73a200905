// Package doctype defines the closed set of target writing contexts that
// classification and formatting operate on.
package doctype

import "strings"

// DocumentType is the target writing style/context for a dictated text
type DocumentType string

const (
	Email    DocumentType = "email"
	Message  DocumentType = "message"
	Document DocumentType = "document"
	Social   DocumentType = "social"
	Code     DocumentType = "code"
	Search   DocumentType = "search"
	// SearchQuery is a historical duplicate of Search; consumers treat the
	// two as equivalent via Canonical.
	SearchQuery DocumentType = "searchQuery"
	Unknown     DocumentType = "unknown"
)

// Known lists the six categories the voter and model score over
var Known = []DocumentType{Email, Message, Document, Social, Code, Search}

// Parse maps a label to a DocumentType, returning Unknown for anything
// outside the closed set
func Parse(label string) DocumentType {
	switch strings.TrimSpace(strings.ToLower(label)) {
	case "email":
		return Email
	case "message":
		return Message
	case "document":
		return Document
	case "social":
		return Social
	case "code":
		return Code
	case "search":
		return Search
	case "searchquery", "search_query":
		return SearchQuery
	default:
		return Unknown
	}
}

// Canonical collapses the historical SearchQuery variant onto Search
func (d DocumentType) Canonical() DocumentType {
	if d == SearchQuery {
		return Search
	}
	return d
}

// IsKnown reports whether the type is one of the six scored categories
func (d DocumentType) IsKnown() bool {
	c := d.Canonical()
	for _, k := range Known {
		if c == k {
			return true
		}
	}
	return false
}

// String returns the type label
func (d DocumentType) String() string {
	return string(d)
}
