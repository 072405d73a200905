package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msto63/cicero/internal/doctype"
	"github.com/msto63/cicero/internal/pipeline"
	cerrors "github.com/msto63/cicero/pkg/core/errors"
)

func TestClaudeEnhance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		var req claudeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.System == "" {
			t.Error("expected a system prompt")
		}
		json.NewEncoder(w).Encode(claudeResponse{
			Content: []claudeContent{{Type: "text", Text: "Polished text."}},
		})
	}))
	defer server.Close()

	p, err := NewClaudeProvider(ClaudeConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("creating provider: %v", err)
	}

	got, err := p.Enhance(context.Background(), "raw text", doctype.Email, "")
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if got != "Polished text." {
		t.Errorf("unexpected rewrite %q", got)
	}
}

func TestClaudeAPIErrorIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	p, err := NewClaudeProvider(ClaudeConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("creating provider: %v", err)
	}

	_, err = p.Enhance(context.Background(), "raw text", doctype.Email, "")
	if !cerrors.HasCode(err, cerrors.CodeCloudRewrite) {
		t.Errorf("expected CloudRewrite error code, got %v", err)
	}
}

func TestOpenAIEnhance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		json.NewEncoder(w).Encode(openAIResponse{
			Choices: []struct {
				Message      openAIMessage `json:"message"`
				FinishReason string        `json:"finish_reason"`
			}{
				{Message: openAIMessage{Role: "assistant", Content: "Polished text."}},
			},
		})
	}))
	defer server.Close()

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("creating provider: %v", err)
	}

	got, err := p.Enhance(context.Background(), "raw text", doctype.Message, "")
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if got != "Polished text." {
		t.Errorf("unexpected rewrite %q", got)
	}
}

func TestNewProviderUnknownName(t *testing.T) {
	_, err := NewProvider(Config{Provider: "gemini", APIKey: "x"})
	if !cerrors.HasCode(err, cerrors.CodeUnsupportedProvider) {
		t.Errorf("expected UnsupportedProvider error code, got %v", err)
	}
}

func TestProviderRequiresAPIKey(t *testing.T) {
	if _, err := NewClaudeProvider(ClaudeConfig{}); err == nil {
		t.Error("expected error for missing Claude key")
	}
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Error("expected error for missing OpenAI key")
	}
}

type errorProvider struct{}

func (errorProvider) Name() string { return "claude" }
func (errorProvider) Enhance(_ context.Context, _ string, _ doctype.DocumentType, _ string) (string, error) {
	return "", errors.New("always fails")
}

func TestStageGating(t *testing.T) {
	enabled := map[string]bool{"email": true}
	stage := NewStage(errorProvider{}, time.Second, enabled, true)

	pc := pipeline.NewContext("text", doctype.Email, pipeline.Options{UseCloud: true})
	if !stage.Enabled(pc) {
		t.Error("stage should be enabled for cloud-enabled email")
	}

	pc = pipeline.NewContext("text", doctype.Code, pipeline.Options{UseCloud: true})
	if stage.Enabled(pc) {
		t.Error("stage must respect per-type enablement")
	}

	pc = pipeline.NewContext("text", doctype.Email, pipeline.Options{UseCloud: false})
	if stage.Enabled(pc) {
		t.Error("stage must respect the global switch")
	}

	noKey := NewStage(errorProvider{}, time.Second, enabled, false)
	pc = pipeline.NewContext("text", doctype.Email, pipeline.Options{UseCloud: true})
	if noKey.Enabled(pc) {
		t.Error("stage must not run without an API key")
	}
}

func TestStageFailureKeepsIntent(t *testing.T) {
	stage := NewStage(errorProvider{}, time.Second, map[string]bool{"email": true}, true)
	pc := pipeline.NewContext("local text", doctype.Email, pipeline.Options{UseCloud: true})

	err := stage.Run(context.Background(), pc)
	if err == nil {
		t.Fatal("expected the provider error to surface to the engine")
	}
	if !pc.CloudEnhanced {
		t.Error("cloud intent must be recorded even on failure")
	}
	if pc.CloudProvider != "claude" {
		t.Errorf("expected provider name recorded, got %q", pc.CloudProvider)
	}
}
