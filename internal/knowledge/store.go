// Package knowledge stores document chunks with vector embeddings in
// PostgreSQL and serves similarity search over them.
package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pgvector/pgvector-go"

	"github.com/nara0/nara/internal/log"
)

// Store manages knowledge documents with vector search. Content is embedded
// on write through the configured Embedder and searched with pgvector cosine
// similarity.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	queries  Querier
	embedder Embedder
	logger   log.Logger
}

// New creates a Store over the given querier and embedder.
func New(querier Querier, embedder Embedder, logger log.Logger) *Store {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{
		queries:  querier,
		embedder: embedder,
		logger:   logger,
	}
}

// Add embeds and upserts one document.
func (s *Store) Add(ctx context.Context, doc Document) error {
	if doc.ID == "" {
		return errors.New("document ID is required")
	}

	vec, err := s.embedder.Embed(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("embed document %q: %w", doc.ID, err)
	}
	embedding := pgvector.NewVector(vec)

	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata for %q: %w", doc.ID, err)
	}

	err = s.queries.UpsertDocument(ctx, UpsertDocumentParams{
		ID:        doc.ID,
		Content:   doc.Content,
		Embedding: &embedding,
		Metadata:  metadataJSON,
		CreatedAt: pgtype.Timestamptz{Time: doc.CreatedAt, Valid: !doc.CreatedAt.IsZero()},
	})
	if err != nil {
		return err
	}

	s.logger.Debug("added document", "id", doc.ID, "content_length", len(doc.Content))
	return nil
}

// AddBatch adds documents one by one, stopping at the first failure.
func (s *Store) AddBatch(ctx context.Context, docs []Document) error {
	for _, doc := range docs {
		if err := s.Add(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// Search embeds the query and returns the most similar documents, best
// first. Results below the configured similarity threshold are dropped.
func (s *Store) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)

	queryCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	vec, err := s.embedder.Embed(queryCtx, query)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("query embedding timeout: %w", err)
		}
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryEmbedding := pgvector.NewVector(vec)

	rows, err := s.queries.SearchDocuments(queryCtx, SearchDocumentsParams{
		QueryEmbedding: &queryEmbedding,
		ResultLimit:    cfg.topK,
	})
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		if row.Similarity < cfg.threshold {
			continue
		}

		var metadata map[string]string
		if len(row.Metadata) > 0 {
			if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
				s.logger.Warn("skipping document with bad metadata", "id", row.ID, "error", err)
				continue
			}
		}

		results = append(results, Result{
			Document: Document{
				ID:        row.ID,
				Content:   row.Content,
				Metadata:  metadata,
				CreatedAt: row.CreatedAt.Time,
			},
			Similarity: row.Similarity,
		})
	}

	s.logger.Debug("search complete",
		"query_length", len(query),
		"results", len(results),
		"top_k", cfg.topK,
	)
	return results, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.queries.CountDocuments(ctx)
}

// Delete removes one document by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.queries.DeleteDocument(ctx, id)
}

// DeleteSource removes every chunk indexed from the named source file.
func (s *Store) DeleteSource(ctx context.Context, source string) error {
	return s.queries.DeleteDocumentsBySource(ctx, source)
}
