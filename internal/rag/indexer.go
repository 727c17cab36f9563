package rag

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nara0/nara/internal/knowledge"
	"github.com/nara0/nara/internal/log"
)

// supportedExtensions lists the plain-text formats the indexer reads.
var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// IndexStore is the slice of the knowledge store the indexer needs.
type IndexStore interface {
	Add(ctx context.Context, doc knowledge.Document) error
	DeleteSource(ctx context.Context, source string) error
}

// Indexer loads document files, splits them into chunks, and writes the
// chunks to the knowledge store.
type Indexer struct {
	store    IndexStore
	splitter Splitter
	logger   log.Logger
}

// NewIndexer builds an indexer over the given store.
func NewIndexer(store IndexStore, splitter Splitter, logger log.Logger) *Indexer {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Indexer{store: store, splitter: splitter, logger: logger}
}

// IndexFile reads one file, replaces its previously indexed chunks, and
// returns the number of chunks written. Unsupported file types are skipped
// with a zero count, not an error.
func (ix *Indexer) IndexFile(ctx context.Context, path string) (int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		ix.logger.Warn("skipping unsupported file type", "path", path, "ext", ext)
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	source := filepath.Base(path)
	chunks := ix.splitter.Split(string(data))
	if len(chunks) == 0 {
		ix.logger.Warn("file produced no chunks", "path", path)
		return 0, nil
	}

	// Stale chunks from a previous indexing run would otherwise survive
	// when the file shrinks.
	if err := ix.store.DeleteSource(ctx, source); err != nil {
		return 0, fmt.Errorf("clear previous chunks of %s: %w", source, err)
	}

	now := time.Now()
	for i, chunk := range chunks {
		doc := knowledge.Document{
			ID:      fmt.Sprintf("%s#%d", source, i),
			Content: chunk,
			Metadata: map[string]string{
				"source":    source,
				"file_path": path,
			},
			CreatedAt: now,
		}
		if err := ix.store.Add(ctx, doc); err != nil {
			return 0, fmt.Errorf("index chunk %d of %s: %w", i, source, err)
		}
	}

	ix.logger.Info("indexed file", "path", path, "chunks", len(chunks))
	return len(chunks), nil
}

// IndexDirectory walks root recursively and indexes every supported file.
// It returns the total number of chunks written.
func (ix *Indexer) IndexDirectory(ctx context.Context, root string) (int, error) {
	info, err := os.Stat(root)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", root)
	}

	total := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		n, err := ix.IndexFile(ctx, path)
		if err != nil {
			return err
		}
		total += n
		return nil
	})
	if err != nil {
		return total, fmt.Errorf("walk %s: %w", root, err)
	}

	ix.logger.Info("indexed directory", "root", root, "chunks", total)
	return total, nil
}

// IndexText indexes raw text under the given source name.
func (ix *Indexer) IndexText(ctx context.Context, text, source string) (int, error) {
	if source == "" {
		source = "text_input"
	}

	chunks := ix.splitter.Split(text)
	if len(chunks) == 0 {
		return 0, nil
	}

	if err := ix.store.DeleteSource(ctx, source); err != nil {
		return 0, fmt.Errorf("clear previous chunks of %s: %w", source, err)
	}

	now := time.Now()
	for i, chunk := range chunks {
		doc := knowledge.Document{
			ID:        fmt.Sprintf("%s#%d", source, i),
			Content:   chunk,
			Metadata:  map[string]string{"source": source},
			CreatedAt: now,
		}
		if err := ix.store.Add(ctx, doc); err != nil {
			return 0, fmt.Errorf("index chunk %d of %s: %w", i, source, err)
		}
	}
	return len(chunks), nil
}
