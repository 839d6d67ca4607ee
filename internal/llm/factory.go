package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/spellz/internal/store"
)

// NewProvider builds the provider selected by cfg and wraps it as
// caller → retry → rate limit → logging → provider, so every attempt is
// both spaced out and logged. events may be nil.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	case "":
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, cfg.Provider, logger, events)
	p = WithRateLimit(p, cfg.RequestsPerMinute)
	return WithRetry(p, cfg.Retry), nil
}
