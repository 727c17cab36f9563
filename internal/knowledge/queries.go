package knowledge

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pgvector/pgvector-go"
)

// Querier defines the database operations Store needs. The interface lives
// with its consumer so tests can supply fakes and the pgx implementation
// stays swappable.
type Querier interface {
	UpsertDocument(ctx context.Context, arg UpsertDocumentParams) error
	SearchDocuments(ctx context.Context, arg SearchDocumentsParams) ([]SearchDocumentsRow, error)
	CountDocuments(ctx context.Context) (int64, error)
	DeleteDocument(ctx context.Context, id string) error
	DeleteDocumentsBySource(ctx context.Context, source string) error
}

// UpsertDocumentParams carries one document row.
type UpsertDocumentParams struct {
	ID        string
	Content   string
	Embedding *pgvector.Vector
	Metadata  []byte
	CreatedAt pgtype.Timestamptz
}

// SearchDocumentsParams carries a vector search request.
type SearchDocumentsParams struct {
	QueryEmbedding *pgvector.Vector
	ResultLimit    int
}

// SearchDocumentsRow is one vector search hit.
type SearchDocumentsRow struct {
	ID         string
	Content    string
	Metadata   []byte
	CreatedAt  pgtype.Timestamptz
	Similarity float32
}

// DBTX matches both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries is the pgx implementation of Querier.
type Queries struct {
	db DBTX
}

// NewQueries wraps a pgx pool or transaction.
func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

const upsertDocument = `
INSERT INTO documents (id, content, embedding, metadata, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
    content = EXCLUDED.content,
    embedding = EXCLUDED.embedding,
    metadata = EXCLUDED.metadata
`

// UpsertDocument implements Querier.
func (q *Queries) UpsertDocument(ctx context.Context, arg UpsertDocumentParams) error {
	_, err := q.db.Exec(ctx, upsertDocument,
		arg.ID, arg.Content, arg.Embedding, arg.Metadata, arg.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert document %q: %w", arg.ID, err)
	}
	return nil
}

// Cosine distance, so similarity = 1 - distance.
const searchDocuments = `
SELECT id, content, metadata, created_at,
       1 - (embedding <=> $1) AS similarity
FROM documents
ORDER BY embedding <=> $1
LIMIT $2
`

// SearchDocuments implements Querier.
func (q *Queries) SearchDocuments(ctx context.Context, arg SearchDocumentsParams) ([]SearchDocumentsRow, error) {
	rows, err := q.db.Query(ctx, searchDocuments, arg.QueryEmbedding, arg.ResultLimit)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()

	var out []SearchDocumentsRow
	for rows.Next() {
		var r SearchDocumentsRow
		if err := rows.Scan(&r.ID, &r.Content, &r.Metadata, &r.CreatedAt, &r.Similarity); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}
	return out, nil
}

// CountDocuments implements Querier.
func (q *Queries) CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM documents`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

// DeleteDocument implements Querier.
func (q *Queries) DeleteDocument(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document %q: %w", id, err)
	}
	return nil
}

// DeleteDocumentsBySource implements Querier. Used by reindexing to drop a
// file's stale chunks before inserting fresh ones.
func (q *Queries) DeleteDocumentsBySource(ctx context.Context, source string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM documents WHERE metadata->>'source' = $1`, source)
	if err != nil {
		return fmt.Errorf("delete documents from %q: %w", source, err)
	}
	return nil
}
