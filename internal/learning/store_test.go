package learning

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/msto63/cicero/internal/doctype"
	"github.com/msto63/cicero/internal/pipeline"
)

func newStore(t *testing.T, minFrequency int) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "patterns.db"), minFrequency)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestApplyBelowFrequencyThresholdIsNoOp(t *testing.T) {
	s := newStore(t, 2)
	ctx := context.Background()

	if err := s.Record(ctx, "jon", "John", doctype.Email); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, count, err := s.ApplyLearned(ctx, "tell jon about it", doctype.Email)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got != "tell jon about it" || count != 0 {
		t.Errorf("single-use pattern must not apply yet, got %q (count %d)", got, count)
	}
}

func TestApplyAfterFrequencyThreshold(t *testing.T) {
	s := newStore(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.Record(ctx, "jon", "John", doctype.Email); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, count, err := s.ApplyLearned(ctx, "Tell Jon about it", doctype.Email)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got != "Tell John about it" {
		t.Errorf("expected case-insensitive replacement, got %q", got)
	}
	if count != 1 {
		t.Errorf("expected one applied pattern, got %d", count)
	}
}

func TestLongerOriginalAppliedFirst(t *testing.T) {
	s := newStore(t, 1)
	ctx := context.Background()

	if err := s.Record(ctx, "new york", "New York", doctype.Message); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record(ctx, "york", "York", doctype.Message); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, count, err := s.ApplyLearned(ctx, "i love new york", doctype.Message)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got != "i love New York" {
		t.Errorf("longer pattern must win, got %q", got)
	}
	if count != 1 {
		t.Errorf("only the longer pattern matched, expected count 1, got %d", count)
	}
}

func TestPatternsScopedByDocumentType(t *testing.T) {
	s := newStore(t, 1)
	ctx := context.Background()

	if err := s.Record(ctx, "asap", "as soon as possible", doctype.Email); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, count, err := s.ApplyLearned(ctx, "need it asap", doctype.Message)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got != "need it asap" || count != 0 {
		t.Errorf("email pattern must not leak into messages, got %q (count %d)", got, count)
	}
}

func TestApplyCountsDistinctPatterns(t *testing.T) {
	s := newStore(t, 1)
	ctx := context.Background()

	if err := s.Record(ctx, "jon", "John", doctype.Email); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record(ctx, "asap", "as soon as possible", doctype.Email); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, count, err := s.ApplyLearned(ctx, "tell jon i need it asap", doctype.Email)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got != "tell John i need it as soon as possible" {
		t.Errorf("unexpected rewrite %q", got)
	}
	if count != 2 {
		t.Errorf("expected two applied patterns, got %d", count)
	}
}

func TestFindSimilar(t *testing.T) {
	s := newStore(t, 1)
	ctx := context.Background()

	if err := s.Record(ctx, "kubernetes cluster", "Kubernetes cluster", doctype.Document); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record(ctx, "quarterly report", "Quarterly Report", doctype.Document); err != nil {
		t.Fatalf("record: %v", err)
	}

	matches, err := s.FindSimilar(ctx, "kubernetes clusters", doctype.Document, 0.9)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one close match, got %d", len(matches))
	}
	if matches[0].Original != "kubernetes cluster" {
		t.Errorf("unexpected match %q", matches[0].Original)
	}
	if matches[0].Similarity < 0.9 {
		t.Errorf("similarity below threshold: %f", matches[0].Similarity)
	}
}

func TestRecordBumpsFrequency(t *testing.T) {
	s := newStore(t, 1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Record(ctx, "teh", "the", doctype.Document); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	matches, err := s.FindSimilar(ctx, "teh", doctype.Document, 0.99)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches) != 1 || matches[0].Frequency != 3 {
		t.Fatalf("expected frequency 3, got %+v", matches)
	}
}

func TestStageRecordsAppliedCount(t *testing.T) {
	s := newStore(t, 1)
	ctx := context.Background()

	if err := s.Record(ctx, "jon", "John", doctype.Email); err != nil {
		t.Fatalf("record: %v", err)
	}

	stage := NewStage(s)
	pc := &pipeline.Context{
		Text:         "ping jon",
		DocumentType: doctype.Email,
		Options:      pipeline.Options{ApplyLearning: true},
	}
	if err := stage.Run(ctx, pc); err != nil {
		t.Fatalf("run: %v", err)
	}
	if pc.Text != "ping John" {
		t.Errorf("unexpected rewrite %q", pc.Text)
	}
	if pc.LearnedApplied != 1 {
		t.Errorf("expected applied count 1, got %d", pc.LearnedApplied)
	}
}

func TestRecordRejectsEmptyInput(t *testing.T) {
	s := newStore(t, 1)

	if err := s.Record(context.Background(), " ", "x", doctype.Email); err == nil {
		t.Error("expected an error for empty original")
	}
}
