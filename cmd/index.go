package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nara0/nara/internal/app"
	"github.com/nara0/nara/internal/config"
	"github.com/nara0/nara/internal/i18n"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index documents into the knowledge store",
	Long: `Index loads .txt and .md files into the knowledge store so chat can
answer from them. With no argument it indexes the configured documents
directory; with a path it indexes that file or directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	i18n.Init(cfg.Language)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Indexer == nil {
		return errors.New(i18n.T("error.rag.unavailable"))
	}

	target := cfg.DocumentsDir
	if len(args) == 1 {
		target = args[0]
	}

	fmt.Println(infoStyle.Render(i18n.T("index.loading")))

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	var n int
	if info.IsDir() {
		n, err = a.Indexer.IndexDirectory(ctx, target)
	} else {
		n, err = a.Indexer.IndexFile(ctx, target)
	}
	if err != nil {
		return fmt.Errorf("index %s: %w", target, err)
	}

	if n == 0 {
		fmt.Println(infoStyle.Render(i18n.T("index.empty")))
		return nil
	}
	fmt.Println(infoStyle.Render(i18n.Sprintf("index.done", n)))
	return nil
}
