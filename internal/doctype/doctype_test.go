package doctype

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		label    string
		expected DocumentType
	}{
		{"email", Email},
		{"Email", Email},
		{" message ", Message},
		{"document", Document},
		{"social", Social},
		{"code", Code},
		{"search", Search},
		{"searchQuery", SearchQuery},
		{"search_query", SearchQuery},
		{"chat", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Parse(tt.label); got != tt.expected {
			t.Errorf("Parse(%q) = %s, want %s", tt.label, got, tt.expected)
		}
	}
}

func TestCanonicalCollapsesSearchQuery(t *testing.T) {
	if SearchQuery.Canonical() != Search {
		t.Error("searchQuery should canonicalize to search")
	}
	if Search.Canonical() != Search {
		t.Error("search should canonicalize to itself")
	}
	if Email.Canonical() != Email {
		t.Error("email should canonicalize to itself")
	}
}

func TestIsKnown(t *testing.T) {
	for _, d := range Known {
		if !d.IsKnown() {
			t.Errorf("%s should be known", d)
		}
	}
	if !SearchQuery.IsKnown() {
		t.Error("searchQuery should be known via canonicalization")
	}
	if Unknown.IsKnown() {
		t.Error("unknown should not be known")
	}
}
