package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/nara0/nara/internal/log"
	"github.com/nara0/nara/internal/session"
)

const defaultOllamaHost = "http://localhost:11434"

// Ollama serves chat through a local Ollama server.
type Ollama struct {
	client *api.Client
	cfg    Config
	logger log.Logger
}

func newOllama(cfg Config, logger log.Logger) (*Ollama, error) {
	host := cfg.BaseURL
	if host == "" {
		host = defaultOllamaHost
	}

	parsed, err := url.Parse(host)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("invalid ollama url %q: %w", host, err)}
	}

	return &Ollama{
		client: api.NewClient(parsed, http.DefaultClient),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Generate implements Provider. The request is non-streaming: the callback
// still fires per chunk for some server versions, so content is accumulated.
func (p *Ollama) Generate(ctx context.Context, messages []session.Message) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    p.cfg.Model,
		Messages: toOllamaMessages(messages),
		Stream:   &stream,
		Options: map[string]any{
			"temperature": p.cfg.Temperature,
			"num_predict": p.cfg.MaxTokens,
		},
	}

	var sb strings.Builder
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return sb.String(), nil
}

// GenerateWithContext implements Provider.
func (p *Ollama) GenerateWithContext(ctx context.Context, query, docContext, systemPrompt string) (string, error) {
	return p.Generate(ctx, contextMessages(query, docContext, systemPrompt))
}

// ModelInfo implements Provider.
func (p *Ollama) ModelInfo() ModelInfo {
	return ModelInfo{
		Provider:    KindOllama,
		Model:       p.cfg.Model,
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
	}
}

func toOllamaMessages(messages []session.Message) []api.Message {
	out := make([]api.Message, 0, len(messages))
	for _, msg := range messages {
		out = append(out, api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return out
}
