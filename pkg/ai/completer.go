// Package ai provides the text-completion backends used by the comment extractors.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/comment-analytics/pkg/config"
	"github.com/johnquangdev/comment-analytics/pkg/jobcontext"
)

// ErrEmptyResponse is returned when a provider answers with no text
var ErrEmptyResponse = errors.New("empty response from inference provider")

// Completer sends a single prompt and returns the raw model text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NewCompleter builds the completer for the configured provider
func NewCompleter(ctx context.Context, cfg *config.InferenceConfig) (Completer, error) {
	if cfg == nil {
		return nil, errors.New("inference config is nil")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case config.ProviderOpenAI, config.ProviderAnthropic:
		return NewLanguageModelCompleter(cfg)
	case config.ProviderGemini:
		return NewGeminiCompleter(ctx, cfg)
	case config.ProviderGroq:
		return NewGroqClient(cfg), nil
	}
	return nil, fmt.Errorf("unsupported inference provider %q", cfg.Provider)
}

type retryingCompleter struct {
	next   Completer
	window time.Duration
}

// WithRetry retries transient failures of next with exponential backoff
// until window elapses or ctx is done
func WithRetry(next Completer, window time.Duration) Completer {
	if window <= 0 {
		return next
	}
	return &retryingCompleter{next: next, window: window}
}

func (r *retryingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = r.window

	var text string
	operation := func() error {
		out, err := r.next.Complete(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil || !jobcontext.IsRetryableError(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		text = out
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return text, nil
}
