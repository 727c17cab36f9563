package llm

import (
	"errors"
	"testing"
	"time"

	"github.com/nara0/nara/internal/log"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"openai", KindOpenAI, false},
		{"ollama", KindOllama, false},
		{"donmi", KindDonmi, false},
		{"llama", "", true},
		{"custom", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownProvider) {
					t.Fatalf("err = %v, want ErrUnknownProvider", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_UnknownKindFails(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Kind: "llama"}, log.NewNop())
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("err = %v, want ErrUnknownProvider", err)
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	got := Config{Kind: KindDonmi}.withDefaults()

	if got.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", got.Temperature)
	}
	if got.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", got.MaxTokens)
	}
	if got.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", got.Timeout)
	}
	if got.ResponseMode != "blocking" {
		t.Errorf("ResponseMode = %q, want blocking", got.ResponseMode)
	}

	if m := (Config{Kind: KindOllama}).withDefaults().Model; m != "llama3.1:latest" {
		t.Errorf("ollama default model = %q", m)
	}
	if m := (Config{Kind: KindOpenAI}).withDefaults().Model; m != "gpt-3.5-turbo" {
		t.Errorf("openai default model = %q", m)
	}
}

func TestNew_ProvidersConstructAndReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want Kind
	}{
		{"openai", Config{Kind: KindOpenAI, APIKey: "k", Model: "gpt-4o-mini"}, KindOpenAI},
		{"openai compatible without key", Config{Kind: KindOpenAI, BaseURL: "http://localhost:8000/v1"}, KindOpenAI},
		{"ollama", Config{Kind: KindOllama, BaseURL: "http://localhost:11434"}, KindOllama},
		{"donmi", Config{Kind: KindDonmi, APIURL: "http://example.com/api", APIKey: "k"}, KindDonmi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := New(tt.cfg, log.NewNop())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			info := p.ModelInfo()
			if info.Provider != tt.want {
				t.Errorf("Provider = %q, want %q", info.Provider, tt.want)
			}
			if info.Model == "" {
				t.Error("Model is empty, want default applied")
			}
		})
	}
}

func TestUserMessage_NilError(t *testing.T) {
	t.Parallel()

	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q, want empty", got)
	}
}

func TestUserMessage_GenericError(t *testing.T) {
	t.Parallel()

	got := UserMessage(errors.New("boom"))
	want := "ขออภัย เกิดข้อผิดพลาด: boom"
	if got != want {
		t.Errorf("UserMessage = %q, want %q", got, want)
	}
}
