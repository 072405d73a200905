package enhance

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/msto63/cicero/internal/classify"
	"github.com/msto63/cicero/internal/doctype"
	"github.com/msto63/cicero/internal/pipeline"
	"github.com/msto63/cicero/pkg/core/config"
	cerrors "github.com/msto63/cicero/pkg/core/errors"
	"github.com/msto63/cicero/pkg/core/logging"
)

func testLogger() *logging.Logger {
	return logging.NewWithConfig("test", logging.Config{
		Level:  logging.LevelError,
		Output: io.Discard,
	})
}

type fakeClassifier struct {
	category doctype.DocumentType
	err      error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (classify.Result, error) {
	if f.err != nil {
		return classify.Result{}, f.err
	}
	return classify.Result{Category: f.category}, nil
}

type failingProvider struct{}

func (failingProvider) Name() string { return "claude" }
func (failingProvider) Enhance(_ context.Context, _ string, _ doctype.DocumentType, _ string) (string, error) {
	return "", errors.New("provider down")
}

func TestEmptyInputFails(t *testing.T) {
	s := NewService(BuildEngine(config.Default(), nil, nil, testLogger()), nil)

	_, err := s.Enhance(context.Background(), Request{Text: "   "})
	if !cerrors.HasCode(err, cerrors.CodeEmptyText) {
		t.Errorf("expected EmptyText error, got %v", err)
	}
}

func TestAllOptionalStagesDisabledYieldsNormalizedText(t *testing.T) {
	s := NewService(BuildEngine(config.Default(), nil, nil, testLogger()), nil)

	result, err := s.Enhance(context.Background(), Request{
		Text:         "  Already   clean text.  ",
		DocumentType: doctype.Code,
		Options:      pipeline.Options{},
	})
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if result.EnhancedText != "Already clean text." {
		t.Errorf("expected normalized-only text, got %q", result.EnhancedText)
	}
}

func TestVoiceCommandOverridesClassification(t *testing.T) {
	cfg := config.Default()
	s := NewService(BuildEngine(cfg, nil, nil, testLogger()), &fakeClassifier{category: doctype.Social})

	result, err := s.Enhance(context.Background(), Request{
		Text:    "BV, write an email to Sam. Thanks for everything",
		Options: OptionsFromConfig(cfg),
	})
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if result.DocumentType != doctype.Email {
		t.Errorf("voice command must set the type, got %s", result.DocumentType)
	}
	if !strings.Contains(result.EnhancedText, "Hi Sam,") {
		t.Errorf("recipient from the command should drive the greeting, got %q", result.EnhancedText)
	}
	if !containsRule(result.AppliedRules, "format_email") {
		t.Errorf("expected format_email in %v", result.AppliedRules)
	}
}

func TestUnknownTypeIsClassified(t *testing.T) {
	cfg := config.Default()
	s := NewService(BuildEngine(cfg, nil, nil, testLogger()), &fakeClassifier{category: doctype.Document})

	result, err := s.Enhance(context.Background(), Request{
		Text:    "the minutes from the meeting follow below",
		Options: OptionsFromConfig(cfg),
	})
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if result.DocumentType != doctype.Document {
		t.Errorf("expected classified type document, got %s", result.DocumentType)
	}
}

func TestClassifierFailureContinuesWithUnknown(t *testing.T) {
	cfg := config.Default()
	s := NewService(BuildEngine(cfg, nil, nil, testLogger()), &fakeClassifier{err: errors.New("model gone")})

	result, err := s.Enhance(context.Background(), Request{
		Text:    "some text without a home",
		Options: OptionsFromConfig(cfg),
	})
	if err != nil {
		t.Fatalf("classifier failure must not abort: %v", err)
	}
	if result.DocumentType != doctype.Unknown {
		t.Errorf("expected unknown, got %s", result.DocumentType)
	}
	if result.EnhancedText == "" {
		t.Error("enhanced text must never be empty for non-empty input")
	}
}

func TestCloudFailureNeverPropagates(t *testing.T) {
	cfg := config.Default()
	cfg.Cloud.APIKey = "test-key"
	s := NewService(BuildEngine(cfg, nil, failingProvider{}, testLogger()), nil)

	opts := OptionsFromConfig(cfg)
	opts.UseCloud = true

	result, err := s.Enhance(context.Background(), Request{
		Text:         "please review the draft when you can",
		DocumentType: doctype.Email,
		Options:      opts,
	})
	if err != nil {
		t.Fatalf("cloud failure must not cross the orchestrator boundary: %v", err)
	}
	if !result.CloudEnhanced {
		t.Error("cloud intent must be reported even when the rewrite failed")
	}
	if result.EnhancedText == "" {
		t.Error("pre-cloud text must be kept on failure")
	}
	if !containsRule(result.AppliedRules, "cloud_rewrite") {
		t.Errorf("expected cloud_rewrite in %v", result.AppliedRules)
	}
}

func containsRule(rules []string, want string) bool {
	for _, r := range rules {
		if r == want {
			return true
		}
	}
	return false
}
