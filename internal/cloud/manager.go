package cloud

import (
	"time"

	cerrors "github.com/msto63/cicero/pkg/core/errors"
)

// Config selects and configures a rewrite provider
type Config struct {
	Provider      string
	APIKey        string
	Timeout       time.Duration
	ClaudeBaseURL string
	ClaudeModel   string
	OpenAIBaseURL string
	OpenAIModel   string
}

// NewProvider builds the provider named in the configuration. An unknown
// name is an UnsupportedProvider error.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "claude":
		return NewClaudeProvider(ClaudeConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.ClaudeBaseURL,
			Model:   cfg.ClaudeModel,
			Timeout: cfg.Timeout,
		})
	case "openai":
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, cerrors.Newf(cerrors.CodeUnsupportedProvider, "unknown cloud provider: %q", cfg.Provider)
	}
}
