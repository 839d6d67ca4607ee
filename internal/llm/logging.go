package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/spellz/internal/store"
)

// LoggingProvider logs every request and, when an event repo is set,
// records it in the store.
type LoggingProvider struct {
	inner    Provider
	provider string
	logger   *zap.Logger
	events   store.EventRepo
}

// WithLogging wraps p. events may be nil.
func WithLogging(p Provider, provider string, logger *zap.Logger, events store.EventRepo) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: provider, logger: logger, events: events}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}

	fields := []zap.Field{
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", data.Purpose),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Info("llm request", fields...)
	}

	if l.events != nil {
		// Recording is best-effort; the request result stands either way.
		if recErr := l.events.AppendLLMRequest(ctx, data); recErr != nil {
			l.logger.Warn("record llm request", zap.Error(recErr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }
