package model

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	cerrors "github.com/msto63/cicero/pkg/core/errors"
)

const testModel = `
version: 1
categories:
  email:
    meeting: 12
    regards: 20
    attached: 8
    sincerely: 10
  search:
    best: 15
    near: 10
    cheap: 8
    how: 12
  code:
    function: 20
    variable: 15
    bug: 10
    compile: 8
`

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doctype.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write model: %v", err)
	}
	return path
}

func TestPredict(t *testing.T) {
	m := New(writeModel(t, testModel))

	tests := []struct {
		text     string
		expected string
	}{
		{"please see attached, kind regards", "email"},
		{"best cheap hotel near airport", "search"},
		{"the function has a compile bug", "code"},
	}

	for _, tt := range tests {
		got, err := m.Predict(tt.text)
		if err != nil {
			t.Fatalf("Predict(%q) failed: %v", tt.text, err)
		}
		if got != tt.expected {
			t.Errorf("Predict(%q) = %s, want %s", tt.text, got, tt.expected)
		}
	}
}

func TestLazyLoading(t *testing.T) {
	m := New(writeModel(t, testModel))

	if m.Loaded() {
		t.Error("model should not be loaded before first Predict")
	}
	if _, err := m.Predict("hello"); err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if !m.Loaded() {
		t.Error("model should be loaded after first Predict")
	}
}

func TestMissingResource(t *testing.T) {
	m := New("/nonexistent/doctype.yaml")

	_, err := m.Predict("hello")
	if err == nil {
		t.Fatal("expected error for missing model resource")
	}
	if !cerrors.HasCode(err, cerrors.CodeModelNotLoaded) {
		t.Errorf("expected MODEL_NOT_LOADED, got %v", err)
	}
}

func TestCorruptResource(t *testing.T) {
	m := New(writeModel(t, "categories: [not, a, map]"))

	_, err := m.Predict("hello")
	if err == nil {
		t.Fatal("expected error for corrupt model resource")
	}
	if !cerrors.HasCode(err, cerrors.CodeModelNotLoaded) {
		t.Errorf("expected MODEL_NOT_LOADED, got %v", err)
	}
}

func TestEmptyCategories(t *testing.T) {
	m := New(writeModel(t, "version: 1\ncategories: {}\n"))

	if _, err := m.Predict("hello"); !cerrors.HasCode(err, cerrors.CodeModelNotLoaded) {
		t.Errorf("expected MODEL_NOT_LOADED for empty categories, got %v", err)
	}
}

func TestConcurrentFirstUse(t *testing.T) {
	m := New(writeModel(t, testModel))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Predict("function bug"); err != nil {
				t.Errorf("concurrent Predict failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if !m.Loaded() {
		t.Error("model should be loaded after concurrent use")
	}
}
