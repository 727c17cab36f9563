// Package llm provides the model-provider abstraction for nara.
//
// A Provider turns a conversation into a single assistant response. Three
// provider kinds are supported: hosted OpenAI-compatible endpoints, a local
// Ollama server, and the Donmi knowledge-base API with its own request
// format. The kind is a closed set validated at construction; an unknown
// kind is a configuration error, never a silent fallback.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/nara0/nara/internal/log"
	"github.com/nara0/nara/internal/session"
)

// Kind identifies a provider implementation.
type Kind string

// Supported provider kinds.
const (
	KindOpenAI Kind = "openai"
	KindOllama Kind = "ollama"
	KindDonmi  Kind = "donmi"
)

// Valid reports whether k is a supported provider kind.
func (k Kind) Valid() bool {
	switch k {
	case KindOpenAI, KindOllama, KindDonmi:
		return true
	}
	return false
}

// ParseKind converts a configuration string to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", &ConfigError{Err: fmt.Errorf("%w: %q", ErrUnknownProvider, s)}
	}
	return k, nil
}

// Config carries everything needed to construct a provider. Callers pass it
// explicitly; providers never read configuration from globals.
type Config struct {
	Kind        Kind
	Model       string
	Temperature float64
	MaxTokens   int

	// APIKey authenticates hosted endpoints and the Donmi API.
	APIKey string

	// BaseURL points OpenAI-compatible traffic at a self-hosted gateway, or
	// names the Ollama server. Empty means the provider default.
	BaseURL string

	// APIURL is the full Donmi endpoint URL.
	APIURL string

	// Timeout bounds a single request attempt. Zero means 60s.
	Timeout time.Duration

	// Citation and ResponseMode are passed through to the Donmi API.
	Citation     bool
	ResponseMode string

	// SystemPrompt overrides the default persona used for grounded answers.
	SystemPrompt string
}

func (c Config) withDefaults() Config {
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 2000
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	if c.ResponseMode == "" {
		c.ResponseMode = "blocking"
	}
	if c.Model == "" {
		switch c.Kind {
		case KindOllama:
			c.Model = "llama3.1:latest"
		default:
			c.Model = "gpt-3.5-turbo"
		}
	}
	return c
}

// ModelInfo describes the active model for display and logging.
type ModelInfo struct {
	Provider    Kind
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider generates assistant responses.
//
// Generate receives the full ordered conversation and returns the assistant's
// reply. GenerateWithContext builds a grounded prompt from retrieved document
// context before generating; systemPrompt may be empty to use the default
// persona.
type Provider interface {
	Generate(ctx context.Context, messages []session.Message) (string, error)
	GenerateWithContext(ctx context.Context, query, docContext, systemPrompt string) (string, error)
	ModelInfo() ModelInfo
}

// New constructs the provider named by cfg.Kind. Configuration is validated
// here: a misconfigured provider fails at startup, not on the first request.
func New(cfg Config, logger log.Logger) (Provider, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	cfg = cfg.withDefaults()

	switch cfg.Kind {
	case KindOpenAI:
		return newOpenAI(cfg, logger)
	case KindOllama:
		return newOllama(cfg, logger)
	case KindDonmi:
		return newDonmi(cfg, logger)
	default:
		return nil, &ConfigError{Err: fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Kind)}
	}
}
