package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsScriptedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"words":["cow"]}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
	)
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"words":["hen"]}`)})

	resp, err := mock.Generate(context.Background(), Request{Messages: UserPrompt("first")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"words":["cow"]}` {
		t.Fatalf("unexpected content %s", resp.Content)
	}
	if resp.Usage.InputTokens != 10 || resp.StopReason != "end" || resp.Model != "mock" {
		t.Fatalf("unexpected response metadata: %+v", resp)
	}

	resp, err = mock.Generate(context.Background(), Request{Messages: UserPrompt("second")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"words":["hen"]}` {
		t.Fatalf("unexpected content %s", resp.Content)
	}

	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
	if mock.Calls[1].Messages[0].Content != "second" {
		t.Fatalf("second call not recorded: %+v", mock.Calls[1])
	}
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %v", err)
	}
}

func TestMockProvider_ScriptedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: time.Second}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %v", err)
	}
}

func TestMockWords(t *testing.T) {
	resp, err := NewMockProvider(MockWords("owl", "bat")).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"words":["owl","bat"]}` {
		t.Fatalf("unexpected content %s", resp.Content)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	ctx = WithPurpose(ctx, "word-list")
	if p := PurposeFrom(ctx); p != "word-list" {
		t.Fatalf("expected 'word-list', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	key := ProviderConfig{APIKey: "sk-test"}
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"no provider", Config{}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: key}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: key}, false},
		{"gemini with key", Config{Provider: "gemini", Gemini: key}, false},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: key}, false},
		{"negative rate", Config{Provider: "openai", OpenAI: key, RequestsPerMinute: -1}, true},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("SPELLZ_LLM_PROVIDER", "openrouter")
	t.Setenv("SPELLZ_OPENROUTER_API_KEY", "or-key")
	t.Setenv("SPELLZ_OPENROUTER_MODEL", "meta/llama")
	t.Setenv("SPELLZ_ANTHROPIC_BASE_URL", "http://localhost:1")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Provider != "openrouter" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.OpenRouter.APIKey != "or-key" || cfg.OpenRouter.Model != "meta/llama" {
		t.Errorf("OpenRouter = %+v", cfg.OpenRouter)
	}
	if cfg.OpenRouter.BaseURL != defaultOpenRouterBaseURL {
		t.Errorf("OpenRouter base URL overwritten: %q", cfg.OpenRouter.BaseURL)
	}
	if cfg.Anthropic.BaseURL != "http://localhost:1" {
		t.Errorf("Anthropic base URL = %q", cfg.Anthropic.BaseURL)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Errorf("Anthropic model default lost: %q", cfg.Anthropic.Model)
	}
}

func TestConfig_Discover(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg := DefaultConfig()
	if cfg.Discover() {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	if !cfg.Discover() {
		t.Fatal("expected a provider")
	}
	if cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "a-key" {
		t.Fatalf("discovered %q with %+v", cfg.Provider, cfg.Anthropic)
	}

	explicit := Config{Provider: "mock"}
	if !explicit.Discover() || explicit.Provider != "mock" {
		t.Fatalf("explicit provider replaced: %q", explicit.Provider)
	}
}

func TestNewProvider(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{}, nil, nil); err == nil {
		t.Fatal("expected error without a provider")
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "openai"}, nil, nil); err == nil {
		t.Fatal("expected error without a key")
	}

	cfg := DefaultConfig()
	cfg.Provider = "openai"
	cfg.OpenAI.APIKey = "sk-test"
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Fatalf("expected retry decorator outermost, got %T", p)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}

func TestModelCost(t *testing.T) {
	c, ok := LookupCost("gpt-4o-mini")
	if !ok {
		t.Fatal("expected a price for gpt-4o-mini")
	}
	got := c.Cost(Usage{InputTokens: 1_000_000, OutputTokens: 1_000_000})
	if got < 0.749 || got > 0.751 {
		t.Fatalf("Cost = %v, want 0.75", got)
	}
	if _, ok := LookupCost("no-such-model"); ok {
		t.Fatal("unexpected price for unknown model")
	}
}
