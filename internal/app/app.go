// Package app wires configuration into the running assistant: provider,
// knowledge store, retriever, workflow, and voice tools.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nara0/nara/internal/audio"
	"github.com/nara0/nara/internal/chat"
	"github.com/nara0/nara/internal/config"
	"github.com/nara0/nara/internal/database"
	"github.com/nara0/nara/internal/knowledge"
	"github.com/nara0/nara/internal/llm"
	"github.com/nara0/nara/internal/log"
	"github.com/nara0/nara/internal/rag"
)

// App holds the assembled application. Store and Indexer are nil when the
// database is unreachable; chat still works, degraded to direct answers.
type App struct {
	Config   *config.Config
	Logger   log.Logger
	Provider llm.Provider
	Workflow *chat.Workflow
	Store    *knowledge.Store
	Indexer  *rag.Indexer

	Speaker     audio.Speaker
	Transcriber audio.Transcriber

	pool *pgxpool.Pool
}

// New assembles the application from cfg. The LLM provider is required; the
// knowledge store is best-effort.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), JSON: cfg.LogJSON})

	kind, err := llm.ParseKind(cfg.Provider)
	if err != nil {
		return nil, err
	}

	provider, err := llm.New(llm.Config{
		Kind:         kind,
		Model:        cfg.ModelName,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		APIURL:       cfg.APIURL,
		Timeout:      cfg.RequestTimeout(),
		Citation:     cfg.Citation,
		ResponseMode: cfg.ResponseMode,
		SystemPrompt: cfg.SystemPrompt,
	}, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Provider: provider,
	}

	// Knowledge store. Failure to reach the database leaves retrieval off
	// rather than killing the assistant.
	var retriever chat.Retriever
	if pool, err := a.connectStore(ctx, cfg, logger); err != nil {
		logger.Warn("knowledge store unavailable, answering without documents", "error", err)
	} else {
		a.pool = pool
		retriever = rag.NewRetriever(a.Store, rag.RetrieverConfig{
			TopK:      cfg.TopK,
			Threshold: float32(cfg.SimilarityThreshold),
		}, logger)
	}

	workflow, err := chat.New(chat.Config{
		Generator:    provider,
		Retriever:    retriever,
		Keywords:     cfg.RAGKeywords,
		SystemPrompt: cfg.SystemPrompt,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	a.Workflow = workflow

	if cfg.VoiceEnabled {
		a.Speaker = audio.NewCommandSpeaker(logger, cfg.TTSCommand, "-v", cfg.VoiceLanguage)
		a.Transcriber = audio.NewCommandTranscriber(logger, cfg.STTCommand)
	}

	return a, nil
}

func (a *App) connectStore(ctx context.Context, cfg *config.Config, logger log.Logger) (*pgxpool.Pool, error) {
	connString := cfg.ConnString()

	if err := database.Migrate(connString); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	pool, err := database.Connect(ctx, connString)
	if err != nil {
		return nil, err
	}

	embedder, err := knowledge.NewOllamaEmbedder(cfg.OllamaHost, cfg.EmbedderModel)
	if err != nil {
		pool.Close()
		return nil, err
	}

	a.Store = knowledge.New(knowledge.NewQueries(pool), embedder, logger)
	a.Indexer = rag.NewIndexer(a.Store, rag.Splitter{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	}, logger)
	return pool, nil
}

// DocumentCount reports the number of indexed chunks, zero when the store
// is unavailable.
func (a *App) DocumentCount(ctx context.Context) int64 {
	if a.Store == nil {
		return 0
	}
	n, err := a.Store.Count(ctx)
	if err != nil {
		a.Logger.Warn("counting documents failed", "error", err)
		return 0
	}
	return n
}

// HasStore reports whether document retrieval is available.
func (a *App) HasStore() bool { return a.Store != nil }

// Close releases the database pool.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
