package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/johnquangdev/comment-analytics/pkg/config"
)

const (
	defaultGroqBaseURL = "https://api.groq.com"
	defaultGroqModel   = "llama-3.1-70b-versatile"
	groqChatPath       = "/openai/v1/chat/completions"
)

// GroqClient is a minimal OpenAI-compatible chat client for the Groq API
type GroqClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.InferenceConfig) *GroqClient {
	g := &GroqClient{
		baseURL: defaultGroqBaseURL,
		model:   defaultGroqModel,
		client:  &http.Client{},
	}

	if cfg != nil {
		g.apiKey = cfg.APIKey
		g.temperature = cfg.Temperature
		g.maxTokens = cfg.MaxTokens
		if cfg.BaseURL != "" {
			g.baseURL = cfg.BaseURL
		}
		if cfg.Model != "" && !strings.HasPrefix(cfg.Model, "gpt-") {
			g.model = cfg.Model
		}
	}
	if g.apiKey == "" {
		g.apiKey = os.Getenv("GROQ_API_KEY")
	}
	if cfg == nil || cfg.BaseURL == "" {
		if base := os.Getenv("GROQ_API_URL"); base != "" {
			g.baseURL = base
		}
	}
	g.baseURL = strings.TrimRight(g.baseURL, "/")
	return g
}

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// StatusError reports a non-2xx answer from the API
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("groq returned status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth another attempt (429 or 5xx)
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Complete sends prompt as a single user message and returns the assistant content
func (g *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+groqChatPath, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return cr.Choices[0].Message.Content, nil
}
