package rag

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nara0/nara/internal/knowledge"
)

type fakeIndexStore struct {
	added   []knowledge.Document
	cleared []string
}

func (f *fakeIndexStore) Add(ctx context.Context, doc knowledge.Document) error {
	f.added = append(f.added, doc)
	return nil
}

func (f *fakeIndexStore) DeleteSource(ctx context.Context, source string) error {
	f.cleared = append(f.cleared, source)
	return nil
}

func TestIndexer_IndexFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("เนื้อหาเอกสารทดสอบ"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := &fakeIndexStore{}
	ix := NewIndexer(store, Splitter{}, nil)

	n, err := ix.IndexFile(context.Background(), path)
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}
	if n != 1 {
		t.Fatalf("chunks = %d, want 1", n)
	}

	if len(store.cleared) != 1 || store.cleared[0] != "notes.txt" {
		t.Errorf("cleared = %v, want [notes.txt]", store.cleared)
	}

	doc := store.added[0]
	if doc.ID != "notes.txt#0" {
		t.Errorf("ID = %q", doc.ID)
	}
	if doc.Metadata["source"] != "notes.txt" {
		t.Errorf("source = %q", doc.Metadata["source"])
	}
	if doc.Metadata["file_path"] != path {
		t.Errorf("file_path = %q", doc.Metadata["file_path"])
	}
}

func TestIndexer_SkipsUnsupportedTypes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	if err := os.WriteFile(path, []byte("binary"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := &fakeIndexStore{}
	ix := NewIndexer(store, Splitter{}, nil)

	n, err := ix.IndexFile(context.Background(), path)
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}
	if n != 0 || len(store.added) != 0 {
		t.Errorf("indexed %d chunks from unsupported file", n)
	}
}

func TestIndexer_IndexDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{
		"a.txt":        "เอกสาร ก",
		"b.md":         "# เอกสาร ข",
		"sub/c.txt":    "เอกสาร ค",
		"ignored.json": `{"not": "indexed"}`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	store := &fakeIndexStore{}
	ix := NewIndexer(store, Splitter{}, nil)

	n, err := ix.IndexDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("IndexDirectory: %v", err)
	}
	if n != 3 {
		t.Errorf("chunks = %d, want 3", n)
	}
	if len(store.added) != 3 {
		t.Errorf("added = %d documents, want 3", len(store.added))
	}
}

func TestIndexer_IndexDirectory_MissingRoot(t *testing.T) {
	t.Parallel()

	ix := NewIndexer(&fakeIndexStore{}, Splitter{}, nil)
	if _, err := ix.IndexDirectory(context.Background(), "/no/such/dir"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestIndexer_IndexText(t *testing.T) {
	t.Parallel()

	store := &fakeIndexStore{}
	ix := NewIndexer(store, Splitter{}, nil)

	n, err := ix.IndexText(context.Background(), "ข้อความดิบ", "")
	if err != nil {
		t.Fatalf("IndexText: %v", err)
	}
	if n != 1 {
		t.Fatalf("chunks = %d, want 1", n)
	}
	if store.added[0].Metadata["source"] != "text_input" {
		t.Errorf("source = %q, want text_input", store.added[0].Metadata["source"])
	}
}
