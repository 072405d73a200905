package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/msto63/cicero/internal/classify/features"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "classifications.db")})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry := &Entry{
		ID:         "c-1",
		Timestamp:  time.Now(),
		Category:   "email",
		TextSample: "dear team, please find attached",
		Features:   features.Extract("dear team, please find attached"),
	}
	if err := s.Record(ctx, entry); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := s.Query(ctx, Filter{Category: "email"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Category != "email" {
		t.Errorf("expected category email, got %s", entries[0].Category)
	}
	if entries[0].TextSample != entry.TextSample {
		t.Errorf("text sample mismatch: %q", entries[0].TextSample)
	}
	if !entries[0].Features.HasGreeting {
		t.Error("feature snapshot should survive the round trip")
	}
}

func TestQueryFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	for i, cat := range []string{"email", "search", "email"} {
		err := s.Record(ctx, &Entry{
			ID:         string(rune('a' + i)),
			Timestamp:  now.Add(time.Duration(i) * time.Minute),
			Category:   cat,
			TextSample: "sample",
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	emails, err := s.Query(ctx, Filter{Category: "email"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(emails) != 2 {
		t.Errorf("expected 2 email entries, got %d", len(emails))
	}

	limited, err := s.Query(ctx, Filter{Limit: 1})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 limited entry, got %d", len(limited))
	}
}

func TestCountAndPrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old := &Entry{ID: "old", Timestamp: time.Now().Add(-48 * time.Hour), Category: "search", TextSample: "x"}
	fresh := &Entry{ID: "fresh", Timestamp: time.Now(), Category: "search", TextSample: "y"}
	for _, e := range []*Entry{old, fresh} {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	deleted, err := s.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 pruned entry, got %d", deleted)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 remaining entry, got %d", count)
	}
}
