package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nara0/nara/internal/app"
	"github.com/nara0/nara/internal/chat"
	"github.com/nara0/nara/internal/config"
	"github.com/nara0/nara/internal/i18n"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	query := strings.Join(args, " ")
	res := a.Workflow.Run(ctx, query, nil, chat.ModeText)

	fmt.Println(res.Response)

	// The answer text already explains the failure; the exit code reports it.
	return res.Err
}
