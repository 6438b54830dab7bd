package ai

import (
	"context"
	"errors"
	neturl "net/url"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"

	"github.com/johnquangdev/comment-analytics/pkg/config"
)

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
)

// LanguageModelCompleter runs prompts through a jetify language model
// (OpenAI or Anthropic)
type LanguageModelCompleter struct {
	model     jetapi.LanguageModel
	maxTokens int
}

// NewLanguageModelCompleter builds the OpenAI or Anthropic backed completer
func NewLanguageModelCompleter(cfg *config.InferenceConfig) (*LanguageModelCompleter, error) {
	model, err := buildLanguageModel(cfg)
	if err != nil {
		return nil, err
	}
	return &LanguageModelCompleter{model: model, maxTokens: cfg.MaxTokens}, nil
}

// Complete sends prompt as a single user message
func (c *LanguageModelCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []jetapi.Message{
		&jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)},
	}
	opts := []jetai.GenerateOption{jetai.WithModel(c.model)}
	if c.maxTokens > 0 {
		opts = append(opts, jetai.WithMaxOutputTokens(c.maxTokens))
	}

	resp, err := jetai.GenerateText(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	return extractText(resp)
}

func extractText(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func buildLanguageModel(cfg *config.InferenceConfig) (jetapi.LanguageModel, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("inference api key is empty")
	}

	modelID := strings.TrimSpace(cfg.Model)
	endpoint := strings.TrimSpace(cfg.BaseURL)

	if strings.EqualFold(cfg.Provider, config.ProviderAnthropic) {
		if modelID == "" {
			modelID = defaultAnthropicModel
		}
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}
		client := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client)), nil
	}

	if modelID == "" {
		modelID = defaultOpenAIModel
	}
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}
	client := openaiclient.NewClient(opts...)
	return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client)), nil
}

// normalizeOpenAIBaseURL makes sure a custom endpoint ends in /v1
func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
