// Package config loads the agent's runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	BashOutputLossy    = "lossy"
	BashOutputCombined = "combined"

	DefaultOpenAIModel    = "anthropic/claude-haiku-4.5"
	DefaultAnthropicModel = "claude-haiku-4-5"
)

// ErrMissingCredential is returned by Validate when the selected provider has no API key.
var ErrMissingCredential = errors.New("missing API credential")

// Config holds everything the agent reads from its environment.
type Config struct {
	APIKey  string `env:"OPENROUTER_API_KEY"`
	BaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`

	Provider         string `env:"AGT_PROVIDER" envDefault:"openai"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL"`

	Model       string        `env:"AGT_MODEL"`
	MaxTokens   int           `env:"AGT_MAX_TOKENS" envDefault:"1024"`
	MaxRounds   int           `env:"AGT_MAX_ROUNDS" envDefault:"0"`
	ToolTimeout time.Duration `env:"AGT_TOOL_TIMEOUT" envDefault:"2m"`
	BashOutput  string        `env:"AGT_BASH_OUTPUT" envDefault:"lossy"`
	WorkDir     string        `env:"AGT_WORKDIR"`
	TokenBudget int           `env:"AGT_TOKEN_BUDGET" envDefault:"0"`

	Observe         bool   `env:"AGT_OBSERVE_JSON"`
	PersistPayloads bool   `env:"AGT_PERSIST_API_PAYLOADS"`
	TelemetryDir    string `env:"AGT_TELEMETRY_DIR" envDefault:".agent"`
	LogLevel        string `env:"AGT_LOG_LEVEL" envDefault:"warn"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadFrom reads the configuration from vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the selected provider is known and has a credential.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.APIKey == "" {
			return fmt.Errorf("%w: OPENROUTER_API_KEY is not set", ErrMissingCredential)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrMissingCredential)
		}
	default:
		return fmt.Errorf("config: unknown provider %q (want %s or %s)", c.Provider, ProviderOpenAI, ProviderAnthropic)
	}

	switch c.BashOutput {
	case BashOutputLossy, BashOutputCombined:
	default:
		return fmt.Errorf("config: unknown AGT_BASH_OUTPUT %q (want %s or %s)", c.BashOutput, BashOutputLossy, BashOutputCombined)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("config: AGT_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.MaxRounds < 0 || c.TokenBudget < 0 || c.ToolTimeout < 0 {
		return errors.New("config: AGT_MAX_ROUNDS, AGT_TOKEN_BUDGET and AGT_TOOL_TIMEOUT must not be negative")
	}
	return nil
}

// Credential returns the API key of the selected provider.
func (c Config) Credential() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.APIKey
}

// EffectiveModel returns Model, or the provider's default when unset.
func (c Config) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderAnthropic {
		return DefaultAnthropicModel
	}
	return DefaultOpenAIModel
}

// SlogLevel parses LogLevel, falling back to warn for unrecognized values.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
