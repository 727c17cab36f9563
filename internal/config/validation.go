package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidProvider indicates the LLM provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidTemperature indicates the temperature is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates max tokens is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidTimeout indicates the request timeout is out of range.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidTopK indicates the retrieval result count is out of range.
	ErrInvalidTopK = errors.New("invalid top_k")

	// ErrInvalidThreshold indicates the similarity threshold is out of range.
	ErrInvalidThreshold = errors.New("invalid similarity threshold")

	// ErrInvalidChunking indicates the chunk size/overlap pair is unusable.
	ErrInvalidChunking = errors.New("invalid chunking")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidDatabaseURL indicates DATABASE_URL could not be used.
	ErrInvalidDatabaseURL = errors.New("invalid DATABASE_URL")

	// ErrInvalidLanguage indicates the UI language is not supported.
	ErrInvalidLanguage = errors.New("invalid language")
)

// supportedProviders is the closed set of provider names.
var supportedProviders = map[string]bool{
	"openai": true,
	"ollama": true,
	"donmi":  true,
}

// Validate fails fast on out-of-range values. Provider-specific required
// fields (API key, endpoint URL) are checked by the provider constructor.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if !supportedProviders[c.Provider] {
		return fmt.Errorf("%w: %q (supported: openai, ollama, donmi)", ErrInvalidProvider, c.Provider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: %v (must be 0-2)", ErrInvalidTemperature, c.Temperature)
	}
	if c.MaxTokens <= 0 || c.MaxTokens > 128000 {
		return fmt.Errorf("%w: %d (must be 1-128000)", ErrInvalidMaxTokens, c.MaxTokens)
	}
	if c.Timeout <= 0 || c.Timeout > 600 {
		return fmt.Errorf("%w: %d (must be 1-600 seconds)", ErrInvalidTimeout, c.Timeout)
	}
	if c.TopK <= 0 || c.TopK > 100 {
		return fmt.Errorf("%w: %d (must be 1-100)", ErrInvalidTopK, c.TopK)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: %v (must be 0-1)", ErrInvalidThreshold, c.SimilarityThreshold)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size %d (must be positive)", ErrInvalidChunking, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap %d (must be 0 to chunk_size-1)", ErrInvalidChunking, c.ChunkOverlap)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPostgresPort, c.PostgresPort)
	}
	if c.Language != "th" && c.Language != "en" {
		return fmt.Errorf("%w: %q (supported: th, en)", ErrInvalidLanguage, c.Language)
	}

	return nil
}
