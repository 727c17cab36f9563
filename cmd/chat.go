package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nara0/nara/internal/app"
	"github.com/nara0/nara/internal/audio"
	"github.com/nara0/nara/internal/chat"
	"github.com/nara0/nara/internal/config"
	"github.com/nara0/nara/internal/i18n"
	"github.com/nara0/nara/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat loop",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	i18n.Init(cfg.Language)

	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(i18n.Sprintf("error.config", err)))
		return err
	}
	defer a.Close()

	fmt.Println(titleStyle.Render(i18n.T("welcome.title")))
	fmt.Println(i18n.T("welcome.body"))
	fmt.Println()

	loop := &chatLoop{
		app:  a,
		sess: session.NewSession("Chat Session"),
		mode: chat.ModeText,
	}
	if cfg.VoiceEnabled {
		loop.mode = chat.ModeVoice
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		input, ok := loop.readInput(ctx, scanner)
		if !ok {
			fmt.Println("\n" + i18n.T("goodbye"))
			break
		}
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Println(i18n.T("goodbye"))
			break
		}

		if strings.HasPrefix(input, "/") {
			loop.handleCommand(ctx, input)
			continue
		}

		loop.turn(ctx, input)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

type chatLoop struct {
	app  *app.App
	sess *session.Session
	mode chat.Mode
}

// readInput fetches the next query: spoken in voice mode when a transcriber
// works, typed otherwise. ok is false on EOF.
func (l *chatLoop) readInput(ctx context.Context, scanner *bufio.Scanner) (input string, ok bool) {
	if l.mode == chat.ModeVoice && l.app.Transcriber != nil {
		fmt.Println(infoStyle.Render(i18n.T("chat.listening")))
		transcript, err := l.app.Transcriber.Transcribe(ctx)
		if err == nil && transcript != "" {
			fmt.Println(i18n.T("chat.prompt") + transcript)
			return transcript, true
		}
		if err != nil && !errors.Is(err, audio.ErrVoiceUnavailable) {
			fmt.Fprintln(os.Stderr, errorStyle.Render(i18n.Sprintf("error.stt", err)))
		}
		// Fall back to the keyboard.
	}

	fmt.Print(i18n.T("chat.prompt"))
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// turn runs one workflow turn and renders the result.
func (l *chatLoop) turn(ctx context.Context, input string) {
	fmt.Println(infoStyle.Render(i18n.T("chat.thinking")))

	res := l.app.Workflow.Run(ctx, input, l.sess.Messages, l.mode)

	label := assistantStyle.Render(i18n.T("chat.assistant") + ":")
	if res.UseRAG {
		label += " " + ragBadgeStyle.Render(i18n.T("chat.rag.used"))
	}
	fmt.Println(label)
	fmt.Println(res.Response)
	fmt.Println()

	// Failed turns keep the history as it was.
	if res.Err == nil {
		l.sess.Replace(res.Messages)
	}

	if l.mode == chat.ModeVoice && l.app.Speaker != nil && res.Err == nil {
		if err := l.app.Speaker.Speak(ctx, res.Response); err != nil && !errors.Is(err, audio.ErrVoiceUnavailable) {
			fmt.Fprintln(os.Stderr, errorStyle.Render(i18n.Sprintf("error.tts", err)))
		}
	}
}

func (l *chatLoop) handleCommand(ctx context.Context, input string) {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/help":
		printHelp()

	case "/stats":
		l.printStats(ctx)

	case "/clear":
		l.sess.Clear()
		fmt.Println(infoStyle.Render(i18n.T("chat.cleared")))

	case "/mode":
		l.switchMode(fields[1:])

	case "/reload":
		l.reload(ctx)

	default:
		fmt.Println(errorStyle.Render(i18n.Sprintf("error.unknown.command", fields[0])))
	}
}

func printHelp() {
	fmt.Println(i18n.T("help.title"))
	for _, key := range []string{
		"help.help", "help.stats", "help.mode",
		"help.reload", "help.clear", "help.exit",
	} {
		fmt.Println("  " + i18n.T(key))
	}
}

func (l *chatLoop) printStats(ctx context.Context) {
	info := l.app.Provider.ModelInfo()

	fmt.Println(titleStyle.Render(i18n.T("stats.title")))
	fmt.Printf("  %s: %s\n", i18n.T("stats.provider"), info.Provider)
	fmt.Printf("  %s: %s\n", i18n.T("stats.model"), info.Model)
	fmt.Printf("  %s: %d\n", i18n.T("stats.documents"), l.app.DocumentCount(ctx))
	fmt.Printf("  %s: %d\n", i18n.T("stats.history"), l.sess.Len())
	fmt.Printf("  %s: %s\n", i18n.T("stats.mode"), l.mode)
}

func (l *chatLoop) switchMode(args []string) {
	if len(args) != 1 {
		fmt.Println(errorStyle.Render(i18n.T("mode.invalid")))
		return
	}

	switch chat.Mode(args[0]) {
	case chat.ModeText:
		l.mode = chat.ModeText
		fmt.Println(infoStyle.Render(i18n.T("mode.changed.text")))
	case chat.ModeVoice:
		if l.app.Speaker == nil && l.app.Transcriber == nil {
			fmt.Println(errorStyle.Render(i18n.T("mode.voice.unavailable")))
			return
		}
		l.mode = chat.ModeVoice
		fmt.Println(infoStyle.Render(i18n.T("mode.changed.voice")))
	default:
		fmt.Println(errorStyle.Render(i18n.T("mode.invalid")))
	}
}

func (l *chatLoop) reload(ctx context.Context) {
	if l.app.Indexer == nil {
		fmt.Println(errorStyle.Render(i18n.T("error.rag.unavailable")))
		return
	}

	fmt.Println(infoStyle.Render(i18n.T("index.loading")))
	n, err := l.app.Indexer.IndexDirectory(ctx, l.app.Config.DocumentsDir)
	if err != nil {
		fmt.Println(errorStyle.Render(i18n.Sprintf("index.error", err)))
		return
	}
	if n == 0 {
		fmt.Println(infoStyle.Render(i18n.T("index.empty")))
		return
	}
	fmt.Println(infoStyle.Render(i18n.Sprintf("index.done", n)))
}
