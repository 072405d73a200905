// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     store
// Description: SQLite persistence for classification results
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/cicero/internal/classify/features"
)

// Entry represents a single persisted classification result
type Entry struct {
	ID         string                `json:"id"`
	Timestamp  time.Time             `json:"timestamp"`
	Category   string                `json:"category"`
	TextSample string                `json:"text_sample"`
	Features   features.TextFeatures `json:"features"`
}

// Filter defines criteria for querying classification entries
type Filter struct {
	Category  string
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// ClassificationStore defines the interface for classification persistence
type ClassificationStore interface {
	Record(ctx context.Context, entry *Entry) error
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Count(ctx context.Context) (int64, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteStore implements ClassificationStore using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// NewSQLiteStore creates a new SQLite-backed classification store
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS classifications (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		category TEXT NOT NULL,
		text_sample TEXT NOT NULL,
		features TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_classifications_timestamp ON classifications(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_classifications_category ON classifications(category);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record persists a classification entry
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	featuresJSON, err := json.Marshal(entry.Features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO classifications (id, timestamp, category, text_sample, features)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.Category, entry.TextSample, string(featuresJSON))
	if err != nil {
		return fmt.Errorf("failed to insert classification: %w", err)
	}
	return nil
}

// Query retrieves classification entries matching the filter
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	query := `SELECT id, timestamp, category, text_sample, features FROM classifications WHERE 1=1`
	var args []interface{}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if !filter.StartTime.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.StartTime)
	}
	if !filter.EndTime.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.EndTime)
	}

	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifications: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var featuresJSON string
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Category, &entry.TextSample, &featuresJSON); err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}
		if featuresJSON != "" {
			if err := json.Unmarshal([]byte(featuresJSON), &entry.Features); err != nil {
				// Corrupt feature snapshots do not invalidate the entry
				entry.Features = features.TextFeatures{}
			}
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// Count returns the total number of stored entries
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM classifications`).Scan(&count)
	return count, err
}

// Prune removes entries older than the given duration and returns the
// number of deleted rows
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := s.db.ExecContext(ctx, `DELETE FROM classifications WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune classifications: %w", err)
	}
	return result.RowsAffected()
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
