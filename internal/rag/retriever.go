// Package rag connects the knowledge store to the chat workflow: it indexes
// document files into chunks and retrieves formatted context for grounded
// answers.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/nara0/nara/internal/knowledge"
	"github.com/nara0/nara/internal/log"
)

// NoContextSentinel is the context string used when retrieval finds nothing.
// The generation prompt still runs; the persona tells the model to admit it
// does not know.
const NoContextSentinel = "ไม่มีข้อมูลที่เกี่ยวข้อง"

// SearchStore is the slice of the knowledge store the retriever needs.
type SearchStore interface {
	Search(ctx context.Context, query string, opts ...knowledge.SearchOption) ([]knowledge.Result, error)
}

// RetrieverConfig tunes retrieval.
type RetrieverConfig struct {
	TopK      int     // Maximum results per query. Zero means 5.
	Threshold float32 // Minimum similarity. Zero keeps everything.
}

// Retriever fetches and formats relevant document chunks for a query.
type Retriever struct {
	store  SearchStore
	cfg    RetrieverConfig
	logger log.Logger
}

// NewRetriever builds a retriever over the given store.
func NewRetriever(store SearchStore, cfg RetrieverConfig, logger log.Logger) *Retriever {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Retriever{store: store, cfg: cfg, logger: logger}
}

// Retrieve returns the most relevant chunks for query, best first.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]knowledge.Result, error) {
	results, err := r.store.Search(ctx, query,
		knowledge.WithTopK(r.cfg.TopK),
		knowledge.WithThreshold(r.cfg.Threshold),
	)
	if err != nil {
		return nil, fmt.Errorf("retrieve documents: %w", err)
	}

	r.logger.Debug("retrieved documents", "query_length", len(query), "count", len(results))
	return results, nil
}

// RetrieveAndFormat retrieves chunks and renders them as one context string.
func (r *Retriever) RetrieveAndFormat(ctx context.Context, query string) (string, error) {
	results, err := r.Retrieve(ctx, query)
	if err != nil {
		return "", err
	}
	return FormatContext(results), nil
}

// Sources returns the distinct source names of the chunks relevant to query,
// in retrieval order.
func (r *Retriever) Sources(ctx context.Context, query string) ([]string, error) {
	results, err := r.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var sources []string
	for _, res := range results {
		src := res.Document.Source()
		if !seen[src] {
			seen[src] = true
			sources = append(sources, src)
		}
	}
	return sources, nil
}

// FormatContext renders results as numbered, source-attributed blocks:
//
//	[เอกสาร 1 - price.txt]
//	ราคาสินค้า 100 บาท
//
// Blocks are joined by blank lines. Empty input yields NoContextSentinel.
func FormatContext(results []knowledge.Result) string {
	if len(results) == 0 {
		return NoContextSentinel
	}

	parts := make([]string, 0, len(results))
	for i, res := range results {
		parts = append(parts, fmt.Sprintf("[เอกสาร %d - %s]\n%s",
			i+1, res.Document.Source(), res.Document.Content))
	}
	return strings.Join(parts, "\n\n")
}
