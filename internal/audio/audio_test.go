package audio

import (
	"context"
	"errors"
	"testing"
)

func TestCommandSpeaker_Speak(t *testing.T) {
	t.Parallel()

	// true(1) accepts any argument and exits 0.
	s := NewCommandSpeaker(nil, "true")
	if err := s.Speak(context.Background(), "สวัสดี"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
}

func TestCommandSpeaker_EmptyTextIsNoop(t *testing.T) {
	t.Parallel()

	s := NewCommandSpeaker(nil, "/no/such/binary")
	if err := s.Speak(context.Background(), "   "); err != nil {
		t.Fatalf("Speak on empty text: %v", err)
	}
}

func TestCommandSpeaker_Unconfigured(t *testing.T) {
	t.Parallel()

	s := NewCommandSpeaker(nil, "")
	if err := s.Speak(context.Background(), "x"); !errors.Is(err, ErrVoiceUnavailable) {
		t.Fatalf("err = %v, want ErrVoiceUnavailable", err)
	}
}

func TestCommandSpeaker_CommandFailure(t *testing.T) {
	t.Parallel()

	s := NewCommandSpeaker(nil, "false")
	if err := s.Speak(context.Background(), "x"); err == nil {
		t.Fatal("expected error from failing command")
	}
}

func TestCommandTranscriber_Transcribe(t *testing.T) {
	t.Parallel()

	tr := NewCommandTranscriber(nil, "echo", "ราคาเท่าไหร่")
	got, err := tr.Transcribe(context.Background())
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "ราคาเท่าไหร่" {
		t.Errorf("transcript = %q", got)
	}
}

func TestCommandTranscriber_Unconfigured(t *testing.T) {
	t.Parallel()

	tr := NewCommandTranscriber(nil, "")
	if _, err := tr.Transcribe(context.Background()); !errors.Is(err, ErrVoiceUnavailable) {
		t.Fatalf("err = %v, want ErrVoiceUnavailable", err)
	}
}
