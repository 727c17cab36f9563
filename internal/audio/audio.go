// Package audio provides voice-mode support: speaking responses aloud and
// transcribing spoken queries. Both sides shell out to external tools so the
// binary stays free of platform audio bindings; deployments pick the tools
// in configuration.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nara0/nara/internal/log"
)

// ErrVoiceUnavailable is returned when no speech tool is configured.
var ErrVoiceUnavailable = errors.New("voice support is not configured")

// Speaker speaks text aloud.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Transcriber records one utterance and returns its transcript.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// CommandSpeaker runs an external text-to-speech command, passing the text
// as the final argument. espeak-ng and macOS say both fit this shape.
type CommandSpeaker struct {
	command string
	args    []string
	logger  log.Logger
}

// NewCommandSpeaker builds a speaker around the given command line.
func NewCommandSpeaker(logger log.Logger, command string, args ...string) *CommandSpeaker {
	if logger == nil {
		logger = log.NewNop()
	}
	return &CommandSpeaker{command: command, args: args, logger: logger}
}

// Speak implements Speaker.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	if s.command == "" {
		return ErrVoiceUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, s.command, append(append([]string{}, s.args...), text)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.command, err, bytes.TrimSpace(out))
	}

	s.logger.Debug("spoke response", "chars", len(text))
	return nil
}

// CommandTranscriber runs an external speech-to-text command that records
// one utterance and prints the transcript to stdout.
type CommandTranscriber struct {
	command string
	args    []string
	logger  log.Logger
}

// NewCommandTranscriber builds a transcriber around the given command line.
func NewCommandTranscriber(logger log.Logger, command string, args ...string) *CommandTranscriber {
	if logger == nil {
		logger = log.NewNop()
	}
	return &CommandTranscriber{command: command, args: args, logger: logger}
}

// Transcribe implements Transcriber.
func (t *CommandTranscriber) Transcribe(ctx context.Context) (string, error) {
	if t.command == "" {
		return "", ErrVoiceUnavailable
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.command, t.args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", t.command, err, bytes.TrimSpace(stderr.Bytes()))
	}

	transcript := strings.TrimSpace(stdout.String())
	t.logger.Debug("transcribed utterance", "chars", len(transcript))
	return transcript, nil
}
