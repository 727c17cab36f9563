package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/nara0/nara/internal/log"
	"github.com/nara0/nara/internal/session"
)

// OpenAI serves hosted OpenAI and any OpenAI-compatible endpoint behind a
// custom base URL (vLLM, LocalAI, gateway proxies).
type OpenAI struct {
	client openai.Client
	cfg    Config
	logger log.Logger
}

func newOpenAI(cfg Config, logger log.Logger) (*OpenAI, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, &ConfigError{Err: ErrMissingAPIKey}
	}

	// Self-hosted compatible endpoints accept any key; the SDK still
	// requires one to be set.
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		logger.Info("using openai-compatible endpoint", "base_url", cfg.BaseURL)
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Generate implements Provider.
func (p *OpenAI) Generate(ctx context.Context, messages []session.Message) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.cfg.Model),
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(p.cfg.Temperature),
		MaxTokens:   openai.Int(int64(p.cfg.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateWithContext implements Provider.
func (p *OpenAI) GenerateWithContext(ctx context.Context, query, docContext, systemPrompt string) (string, error) {
	return p.Generate(ctx, contextMessages(query, docContext, systemPrompt))
}

// ModelInfo implements Provider.
func (p *OpenAI) ModelInfo() ModelInfo {
	return ModelInfo{
		Provider:    KindOpenAI,
		Model:       p.cfg.Model,
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
	}
}

func toOpenAIMessages(messages []session.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case session.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case session.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
