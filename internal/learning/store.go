// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     learning
// Description: Persistent user correction patterns applied to new dictations
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package learning

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/antzucaro/matchr"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/cicero/internal/doctype"
	cerrors "github.com/msto63/cicero/pkg/core/errors"
)

// Pattern is one learned correction
type Pattern struct {
	ID           int64                `json:"id"`
	Original     string               `json:"original"`
	Replacement  string               `json:"replacement"`
	DocumentType doctype.DocumentType `json:"document_type"`
	Frequency    int                  `json:"frequency"`
	LastUsed     time.Time            `json:"last_used"`
	Similarity   float64              `json:"similarity,omitempty"`
}

// Store persists correction patterns and applies them to text
type Store interface {
	ApplyLearned(ctx context.Context, text string, dt doctype.DocumentType) (string, int, error)
	Record(ctx context.Context, original, replacement string, dt doctype.DocumentType) error
	FindSimilar(ctx context.Context, text string, dt doctype.DocumentType, threshold float64) ([]Pattern, error)
	Close() error
}

// SQLiteStore keeps patterns in a WAL-mode SQLite database
type SQLiteStore struct {
	db           *sql.DB
	minFrequency int
}

const patternSchema = `
CREATE TABLE IF NOT EXISTS patterns (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	original      TEXT NOT NULL,
	replacement   TEXT NOT NULL,
	document_type TEXT NOT NULL,
	frequency     INTEGER NOT NULL DEFAULT 1,
	last_used     TIMESTAMP NOT NULL,
	UNIQUE(original, document_type)
);
CREATE INDEX IF NOT EXISTS idx_patterns_type ON patterns(document_type);
`

// NewSQLiteStore opens or creates the pattern database. Patterns are only
// applied once their frequency reaches minFrequency.
func NewSQLiteStore(path string, minFrequency int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, cerrors.Wrap(err, cerrors.CodeStorage, "opening pattern database")
	}
	if _, err := db.Exec(patternSchema); err != nil {
		db.Close()
		return nil, cerrors.Wrap(err, cerrors.CodeStorage, "creating pattern schema")
	}
	if minFrequency < 1 {
		minFrequency = 1
	}
	return &SQLiteStore{db: db, minFrequency: minFrequency}, nil
}

// ApplyLearned replaces every established pattern in the text, longest
// original first so overlapping patterns cannot clobber each other.
// Matching is case-insensitive. The count of distinct patterns that
// matched is returned alongside the rewritten text.
func (s *SQLiteStore) ApplyLearned(ctx context.Context, text string, dt doctype.DocumentType) (string, int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT original, replacement FROM patterns
		 WHERE document_type = ? AND frequency >= ?
		 ORDER BY LENGTH(original) DESC, original ASC`,
		string(dt.Canonical()), s.minFrequency)
	if err != nil {
		return text, 0, cerrors.Wrap(err, cerrors.CodeLearningApply, "querying patterns")
	}
	defer rows.Close()

	type pair struct{ original, replacement string }
	var patterns []pair
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.original, &p.replacement); err != nil {
			return text, 0, cerrors.Wrap(err, cerrors.CodeLearningApply, "scanning pattern")
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return text, 0, cerrors.Wrap(err, cerrors.CodeLearningApply, "reading patterns")
	}

	var applied []string
	for _, p := range patterns {
		replaced := replaceAllFold(text, p.original, p.replacement)
		if replaced != text {
			text = replaced
			applied = append(applied, p.original)
		}
	}

	now := time.Now().UTC()
	for _, original := range applied {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE patterns SET last_used = ? WHERE original = ? AND document_type = ?`,
			now, original, string(dt.Canonical())); err != nil {
			return text, 0, cerrors.Wrap(err, cerrors.CodeLearningApply, "updating pattern usage")
		}
	}
	return text, len(applied), nil
}

// Record stores a correction, bumping the frequency when the same original
// was already corrected for this document type
func (s *SQLiteStore) Record(ctx context.Context, original, replacement string, dt doctype.DocumentType) error {
	original = strings.TrimSpace(original)
	replacement = strings.TrimSpace(replacement)
	if original == "" || replacement == "" {
		return cerrors.New(cerrors.CodeInvalidInput, "original and replacement must be non-empty")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO patterns (original, replacement, document_type, frequency, last_used)
		 VALUES (?, ?, ?, 1, ?)
		 ON CONFLICT(original, document_type) DO UPDATE SET
			replacement = excluded.replacement,
			frequency = frequency + 1,
			last_used = excluded.last_used`,
		original, replacement, string(dt.Canonical()), time.Now().UTC())
	if err != nil {
		return cerrors.Wrap(err, cerrors.CodeStorage, "recording pattern")
	}
	return nil
}

// FindSimilar returns patterns whose original scores at or above the
// Jaro-Winkler threshold against the given text, best match first
func (s *SQLiteStore) FindSimilar(ctx context.Context, text string, dt doctype.DocumentType, threshold float64) ([]Pattern, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original, replacement, document_type, frequency, last_used
		 FROM patterns WHERE document_type = ?`,
		string(dt.Canonical()))
	if err != nil {
		return nil, cerrors.Wrap(err, cerrors.CodeStorage, "querying patterns")
	}
	defer rows.Close()

	lowerText := strings.ToLower(text)
	var matches []Pattern
	for rows.Next() {
		var p Pattern
		var dtStr string
		if err := rows.Scan(&p.ID, &p.Original, &p.Replacement, &dtStr, &p.Frequency, &p.LastUsed); err != nil {
			return nil, cerrors.Wrap(err, cerrors.CodeStorage, "scanning pattern")
		}
		p.DocumentType = doctype.DocumentType(dtStr)
		p.Similarity = matchr.JaroWinkler(lowerText, strings.ToLower(p.Original), false)
		if p.Similarity >= threshold {
			matches = append(matches, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, cerrors.Wrap(err, cerrors.CodeStorage, "reading patterns")
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Original < matches[j].Original
	})
	return matches, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// replaceAllFold is a case-insensitive ReplaceAll. When lower-casing shifts
// byte offsets the case-sensitive variant is used instead.
func replaceAllFold(text, old, new string) string {
	if old == "" {
		return text
	}
	lowerText := strings.ToLower(text)
	lowerOld := strings.ToLower(old)
	if len(lowerText) != len(text) || len(lowerOld) != len(old) {
		return strings.ReplaceAll(text, old, new)
	}

	var b strings.Builder
	start := 0
	for {
		idx := strings.Index(lowerText[start:], lowerOld)
		if idx < 0 {
			b.WriteString(text[start:])
			return b.String()
		}
		idx += start
		b.WriteString(text[start:idx])
		b.WriteString(new)
		start = idx + len(lowerOld)
	}
}
