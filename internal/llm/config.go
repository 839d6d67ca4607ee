package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects and configures an LLM provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter",
	// "mock", or "" for none.
	Provider string `yaml:"provider"`

	Anthropic  ProviderConfig `yaml:"anthropic"`
	OpenAI     ProviderConfig `yaml:"openai"`
	Gemini     ProviderConfig `yaml:"gemini"`
	OpenRouter ProviderConfig `yaml:"openrouter"`

	Retry RetryConfig `yaml:"retry"`

	// RequestsPerMinute caps outgoing requests. Zero disables the limit.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration `yaml:"timeout"`
}

// ProviderConfig holds the credentials and model of one provider.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// RetryConfig controls exponential backoff on transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns the defaults. No provider is selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		RequestsPerMinute: 20,
		Timeout:           30 * time.Second,
	}
}

// ApplyEnv overrides c with SPELLZ_* environment variables.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Provider, "SPELLZ_LLM_PROVIDER")
	for name, pc := range map[string]*ProviderConfig{
		"ANTHROPIC":  &c.Anthropic,
		"OPENAI":     &c.OpenAI,
		"GEMINI":     &c.Gemini,
		"OPENROUTER": &c.OpenRouter,
	} {
		set(&pc.APIKey, "SPELLZ_"+name+"_API_KEY")
		set(&pc.Model, "SPELLZ_"+name+"_MODEL")
		set(&pc.BaseURL, "SPELLZ_"+name+"_BASE_URL")
	}
}

// Discover selects the first provider whose conventional API key variable
// is set (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY,
// OPENROUTER_API_KEY). It does nothing when a provider is already chosen.
func (c *Config) Discover() bool {
	if c.Provider != "" {
		return true
	}
	for _, p := range []struct {
		name string
		env  string
		dst  *ProviderConfig
	}{
		{"gemini", "GEMINI_API_KEY", &c.Gemini},
		{"openai", "OPENAI_API_KEY", &c.OpenAI},
		{"anthropic", "ANTHROPIC_API_KEY", &c.Anthropic},
		{"openrouter", "OPENROUTER_API_KEY", &c.OpenRouter},
	} {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.name
			p.dst.APIKey = k
			return true
		}
	}
	return false
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Validate checks that the selected provider can be built.
func (c Config) Validate() error {
	var pc ProviderConfig
	switch c.Provider {
	case "", "mock":
		return nil
	case "anthropic":
		pc = c.Anthropic
	case "openai":
		pc = c.OpenAI
	case "gemini":
		pc = c.Gemini
	case "openrouter":
		pc = c.OpenRouter
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("%s API key is required (set SPELLZ_%s_API_KEY)", c.Provider, strings.ToUpper(c.Provider))
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must not be negative, got %d", c.RequestsPerMinute)
	}
	return nil
}
