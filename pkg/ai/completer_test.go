package ai

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/comment-analytics/pkg/config"
)

func TestWithRetry_RetriesTransientErrors(t *testing.T) {
	calls := 0
	flaky := CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls < 3 {
			return "", &StatusError{StatusCode: http.StatusServiceUnavailable}
		}
		return "ok", nil
	})

	out, err := WithRetry(flaky, 10*time.Second).Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	bad := CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", &StatusError{StatusCode: http.StatusBadRequest, Body: "bad prompt"}
	})

	_, err := WithRetry(bad, 10*time.Second).Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var statusErr *StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestWithRetry_ZeroWindowIsPassthrough(t *testing.T) {
	inner := CompleterFunc(func(ctx context.Context, prompt string) (string, error) { return prompt, nil })
	c := WithRetry(inner, 0)
	out, err := c.Complete(context.Background(), "echo")
	require.NoError(t, err)
	assert.Equal(t, "echo", out)
}

func TestNewCompleter_Providers(t *testing.T) {
	ctx := context.Background()

	c, err := NewCompleter(ctx, &config.InferenceConfig{Provider: config.ProviderGroq, APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &GroqClient{}, c)

	c, err = NewCompleter(ctx, &config.InferenceConfig{Provider: "OpenAI", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &LanguageModelCompleter{}, c)

	c, err = NewCompleter(ctx, &config.InferenceConfig{Provider: config.ProviderAnthropic, APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &LanguageModelCompleter{}, c)

	_, err = NewCompleter(ctx, &config.InferenceConfig{Provider: config.ProviderOpenAI})
	assert.Error(t, err)

	_, err = NewCompleter(ctx, &config.InferenceConfig{Provider: "bard", APIKey: "k"})
	assert.Error(t, err)
}

func TestNormalizeOpenAIBaseURL(t *testing.T) {
	assert.Equal(t, "", normalizeOpenAIBaseURL(""))
	assert.Equal(t, "https://proxy.local/v1", normalizeOpenAIBaseURL("https://proxy.local"))
	assert.Equal(t, "https://proxy.local/v1", normalizeOpenAIBaseURL("https://proxy.local/v1/"))
	assert.Equal(t, "https://proxy.local/api/v1", normalizeOpenAIBaseURL("https://proxy.local/api"))
}
