package knowledge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

// Embedder turns text into a vector. Implemented by OllamaEmbedder in
// production and by fakes in tests.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OllamaEmbedder generates embeddings through a local Ollama server.
type OllamaEmbedder struct {
	client *api.Client
	model  string
}

// NewOllamaEmbedder connects to the Ollama server at host (empty means
// http://localhost:11434) using the given embedding model.
func NewOllamaEmbedder(host, model string) (*OllamaEmbedder, error) {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}

	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", host, err)
	}

	return &OllamaEmbedder{
		client: api.NewClient(parsed, http.DefaultClient),
		model:  model,
	}, nil
}

// Embed implements Embedder.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model: e.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("ollama embed: empty embedding for %d chars of input", len(text))
	}
	return resp.Embeddings[0], nil
}

// Model returns the embedding model name.
func (e *OllamaEmbedder) Model() string { return e.model }
