package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

// fakeEmbedder returns a fixed vector, or an error if set.
type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

// fakeQuerier records calls and serves canned rows.
type fakeQuerier struct {
	upserts    []UpsertDocumentParams
	searchRows []SearchDocumentsRow
	searchArg  SearchDocumentsParams
	searchErr  error
	count      int64
	deleted    []string
}

func (f *fakeQuerier) UpsertDocument(ctx context.Context, arg UpsertDocumentParams) error {
	f.upserts = append(f.upserts, arg)
	return nil
}

func (f *fakeQuerier) SearchDocuments(ctx context.Context, arg SearchDocumentsParams) ([]SearchDocumentsRow, error) {
	f.searchArg = arg
	return f.searchRows, f.searchErr
}

func (f *fakeQuerier) CountDocuments(ctx context.Context) (int64, error) {
	return f.count, nil
}

func (f *fakeQuerier) DeleteDocument(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeQuerier) DeleteDocumentsBySource(ctx context.Context, source string) error {
	f.deleted = append(f.deleted, "source:"+source)
	return nil
}

func searchRow(t *testing.T, id, content, source string, similarity float32) SearchDocumentsRow {
	t.Helper()
	meta, err := json.Marshal(map[string]string{"source": source})
	if err != nil {
		t.Fatal(err)
	}
	return SearchDocumentsRow{
		ID:         id,
		Content:    content,
		Metadata:   meta,
		CreatedAt:  pgtype.Timestamptz{},
		Similarity: similarity,
	}
}

func TestStore_Add(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{}
	store := New(q, &fakeEmbedder{vec: []float32{0.1, 0.2}}, nil)

	doc := Document{
		ID:       "doc-1",
		Content:  "ราคาสินค้า 100 บาท",
		Metadata: map[string]string{"source": "price.txt"},
	}
	if err := store.Add(context.Background(), doc); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if len(q.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(q.upserts))
	}
	got := q.upserts[0]
	if got.ID != "doc-1" || got.Content != doc.Content {
		t.Errorf("upsert = %+v", got)
	}
	if got.Embedding == nil {
		t.Error("embedding not set")
	}

	var meta map[string]string
	if err := json.Unmarshal(got.Metadata, &meta); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta["source"] != "price.txt" {
		t.Errorf("metadata = %v", meta)
	}
}

func TestStore_Add_RequiresID(t *testing.T) {
	t.Parallel()

	store := New(&fakeQuerier{}, &fakeEmbedder{vec: []float32{1}}, nil)
	if err := store.Add(context.Background(), Document{Content: "x"}); err == nil {
		t.Fatal("expected error for missing ID")
	}
}

func TestStore_Add_EmbedderFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("model not loaded")
	store := New(&fakeQuerier{}, &fakeEmbedder{err: wantErr}, nil)

	err := store.Add(context.Background(), Document{ID: "d", Content: "x"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped embedder error", err)
	}
}

func TestStore_Search(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{
		searchRows: []SearchDocumentsRow{
			searchRow(t, "a", "เนื้อหา ก", "a.txt", 0.9),
			searchRow(t, "b", "เนื้อหา ข", "b.txt", 0.5),
		},
	}
	store := New(q, &fakeEmbedder{vec: []float32{0.3}}, nil)

	results, err := store.Search(context.Background(), "ค้นหา", WithTopK(3))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if q.searchArg.ResultLimit != 3 {
		t.Errorf("limit = %d, want 3", q.searchArg.ResultLimit)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Document.ID != "a" || results[0].Similarity != 0.9 {
		t.Errorf("first result = %+v", results[0])
	}
	if got := results[0].Document.Source(); got != "a.txt" {
		t.Errorf("source = %q, want a.txt", got)
	}
}

func TestStore_Search_ThresholdFilters(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{
		searchRows: []SearchDocumentsRow{
			searchRow(t, "a", "x", "a.txt", 0.9),
			searchRow(t, "b", "y", "b.txt", 0.4),
		},
	}
	store := New(q, &fakeEmbedder{vec: []float32{0.3}}, nil)

	results, err := store.Search(context.Background(), "q", WithThreshold(0.7))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "a" {
		t.Errorf("results = %+v, want only a", results)
	}
}

func TestStore_Search_QueryError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("relation does not exist")
	store := New(&fakeQuerier{searchErr: wantErr}, &fakeEmbedder{vec: []float32{1}}, nil)

	_, err := store.Search(context.Background(), "q")
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want query error", err)
	}
}

func TestDocument_Source(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"with source", Document{Metadata: map[string]string{"source": "a.txt"}}, "a.txt"},
		{"empty source", Document{Metadata: map[string]string{"source": ""}}, "Unknown"},
		{"nil metadata", Document{}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.doc.Source(); got != tt.want {
				t.Errorf("Source() = %q, want %q", got, tt.want)
			}
		})
	}
}
