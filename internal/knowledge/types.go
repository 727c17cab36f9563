package knowledge

import "time"

// Document is one indexed chunk of knowledge.
type Document struct {
	ID        string            // Unique identifier
	Content   string            // Chunk text content
	Metadata  map[string]string // Optional metadata (source, file_path, etc.)
	CreatedAt time.Time         // Creation timestamp
}

// Result is a single search result with its similarity score.
type Result struct {
	Document   Document
	Similarity float32 // Cosine similarity score (0-1)
}

// Source returns the document's origin name, or "Unknown" when the indexer
// did not record one.
func (d Document) Source() string {
	if s, ok := d.Metadata["source"]; ok && s != "" {
		return s
	}
	return "Unknown"
}

// SearchOption configures search behavior using the functional options
// pattern.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK      int
	threshold float32
	timeout   time.Duration
}

// WithTopK sets the maximum number of results to return. Default is 5.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		if k > 0 {
			c.topK = k
		}
	}
}

// WithThreshold drops results whose similarity falls below min.
// Default is 0 (keep everything the database returns).
func WithThreshold(min float32) SearchOption {
	return func(c *searchConfig) {
		c.threshold = min
	}
}

// WithTimeout bounds the whole search including embedding generation.
// Default is 10s.
func WithTimeout(d time.Duration) SearchOption {
	return func(c *searchConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{
		topK:    5,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
