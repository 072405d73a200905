// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     model
// Description: Lazily loaded statistical document-type model
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package model

import (
	"math"
	"os"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"

	cerrors "github.com/msto63/cicero/pkg/core/errors"
	"github.com/msto63/cicero/pkg/core/logging"
)

// modelFile is the on-disk YAML shape: per-category token frequencies
type modelFile struct {
	Version    int                       `yaml:"version"`
	Categories map[string]map[string]int `yaml:"categories"`
}

// categoryStats holds precomputed per-category statistics
type categoryStats struct {
	tokenCounts map[string]int
	totalTokens int
	prior       float64
}

// Model is a word-frequency scorer over document-type categories.
// Loading is lazy, cached for the process lifetime, and safe under
// concurrent first use: many readers once loaded, a single double-checked
// writer during the first load.
type Model struct {
	path   string
	logger *logging.Logger

	mu     sync.RWMutex
	stats  map[string]*categoryStats
	vocab  int
	loaded bool
}

// New creates a model backed by the YAML resource at path. The resource
// is not touched until the first Predict call.
func New(path string) *Model {
	return &Model{
		path:   path,
		logger: logging.New("cicero-model"),
	}
}

// Loaded reports whether the model resource has been read
func (m *Model) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Predict returns the best-scoring category label for the text.
// Fails with CodeModelNotLoaded if the resource cannot be located or
// parsed on first load; there is no automatic retry beyond the next call.
func (m *Model) Predict(text string) (string, error) {
	if err := m.ensureLoaded(); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return "message", nil
	}

	best := ""
	bestScore := math.Inf(-1)
	for category, stats := range m.stats {
		score := math.Log(stats.prior)
		for _, tok := range tokens {
			// Laplace smoothing keeps unseen tokens from zeroing a category
			count := stats.tokenCounts[tok]
			score += math.Log(float64(count+1) / float64(stats.totalTokens+m.vocab))
		}
		if score > bestScore || (score == bestScore && category < best) {
			best = category
			bestScore = score
		}
	}
	return best, nil
}

// ensureLoaded performs the double-checked lazy load
func (m *Model) ensureLoaded() error {
	m.mu.RLock()
	loaded := m.loaded
	m.mu.RUnlock()
	if loaded {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded {
		return nil
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return cerrors.Wrap(err, cerrors.CodeModelNotLoaded, "model resource not found").
			WithDetail("path", m.path)
	}

	var file modelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cerrors.Wrap(err, cerrors.CodeModelNotLoaded, "model resource not parseable").
			WithDetail("path", m.path)
	}
	if len(file.Categories) == 0 {
		return cerrors.New(cerrors.CodeModelNotLoaded, "model resource has no categories").
			WithDetail("path", m.path)
	}

	stats := make(map[string]*categoryStats, len(file.Categories))
	vocab := make(map[string]struct{})
	grandTotal := 0
	for category, counts := range file.Categories {
		total := 0
		for tok, n := range counts {
			total += n
			vocab[tok] = struct{}{}
		}
		stats[category] = &categoryStats{tokenCounts: counts, totalTokens: total}
		grandTotal += total
	}
	for _, s := range stats {
		if grandTotal > 0 {
			s.prior = float64(s.totalTokens) / float64(grandTotal)
		}
		if s.prior == 0 {
			s.prior = 1.0 / float64(len(stats))
		}
	}

	m.stats = stats
	m.vocab = len(vocab)
	m.loaded = true
	m.logger.Info("Model loaded",
		"path", m.path,
		"categories", len(stats),
		"vocabulary", m.vocab)

	return nil
}

// tokenize lower-cases and splits on non-alphanumeric runes
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
