package extract

import (
	"context"
	"log/slog"
)

// FallbackClient wraps a primary LLM client with a cheaper fallback model.
// When the primary fails on a quota signal, the same prompt is retried once
// against the fallback before the error is surfaced.
type FallbackClient struct {
	primary  LLMClient
	fallback LLMClient
	logger   *slog.Logger
}

// NewFallbackClient creates a quota-aware fallback client. A nil fallback
// leaves only the primary in play.
func NewFallbackClient(primary, fallback LLMClient, logger *slog.Logger) *FallbackClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackClient{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Generate sends the prompt to the primary model, switching to the fallback
// model when the primary reports quota exhaustion.
func (c *FallbackClient) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := c.primary.Generate(ctx, prompt)
	if err == nil {
		return out, nil
	}

	if c.fallback == nil || !isQuotaError(err) {
		return "", err
	}

	c.logger.Warn("primary model quota exhausted, using fallback model",
		"error", err.Error(),
	)

	out, fallbackErr := c.fallback.Generate(ctx, prompt)
	if fallbackErr != nil {
		c.logger.Error("fallback model also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return "", fallbackErr
	}
	return out, nil
}
