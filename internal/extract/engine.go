package extract

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/leadpipe/leadpipe/internal/schema"
	"github.com/leadpipe/leadpipe/pkg/logging"
	"github.com/leadpipe/leadpipe/pkg/retry"
)

// maxMessageLen bounds the inbound message in characters; chat transports
// cap messages around this size and anything longer only dilutes the prompt.
const maxMessageLen = 4000

// Engine turns raw message text into a validated LeadRecord.
type Engine struct {
	client  LLMClient
	limiter *rate.Limiter
	policy  retry.Policy
	timeout time.Duration
	logger  *logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRateLimit caps outbound model calls at rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(e *Engine) {
		if rps > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithTimeout bounds each individual model call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithPolicy overrides the retry policy; the retryable predicate is always
// the engine's transient classifier.
func WithPolicy(p retry.Policy) Option {
	return func(e *Engine) {
		p.Retryable = isTransient
		e.policy = p
	}
}

// NewEngine creates an extraction engine around an LLM client.
func NewEngine(client LLMClient, logger *logging.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	e := &Engine{
		client:  client,
		policy:  retry.Default(isTransient),
		timeout: 30 * time.Second,
		logger:  logger.Component("extract"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract sends the message to the model and returns exactly one fully
// validated LeadRecord, or a typed Error. Empty input fails immediately
// without any outbound call.
func (e *Engine) Extract(ctx context.Context, message string) (*schema.LeadRecord, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return nil, &Error{Kind: KindEmptyInput}
	}
	if utf8.RuneCountInString(text) > maxMessageLen {
		text = string([]rune(text)[:maxMessageLen])
	}

	prompt := BuildPrompt(text)

	var response string
	err := e.policy.Do(ctx, func(ctx context.Context) error {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		out, err := e.client.Generate(callCtx, prompt)
		if err != nil {
			return err
		}
		response = out
		return nil
	})
	if err != nil {
		if isClientRejection(err) {
			e.logger.Error("model backend rejected request", "error", err)
			return nil, &Error{Kind: KindBackendRejected, Err: err}
		}
		e.logger.Error("model call failed after retries", "error", err)
		return nil, &Error{Kind: KindExhaustedRetries, Err: err}
	}

	raw, err := parseLeadObject(response)
	if err != nil {
		e.logger.Warn("model response was not parseable JSON", "error", err)
		return nil, &Error{Kind: KindValidation, Err: err}
	}

	rec, err := schema.Validate(raw)
	if err != nil {
		e.logger.Warn("extracted mapping failed validation", "error", err)
		return nil, &Error{Kind: KindValidation, Err: err}
	}

	e.logger.Info("lead extracted", "name", rec.DisplayName(), "object_type", rec.ObjectType)
	return rec, nil
}
