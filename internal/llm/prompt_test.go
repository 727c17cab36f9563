package llm

import (
	"strings"
	"testing"

	"github.com/nara0/nara/internal/session"
)

func TestFlatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		messages []session.Message
		want     string
	}{
		{
			name:     "empty",
			messages: nil,
			want:     "",
		},
		{
			name:     "single user",
			messages: []session.Message{session.User("hello")},
			want:     "User: hello",
		},
		{
			name: "full conversation keeps order and labels",
			messages: []session.Message{
				session.System("be brief"),
				session.User("hi"),
				session.Assistant("hello"),
				session.User("bye"),
			},
			want: "System: be brief\n\nUser: hi\n\nAssistant: hello\n\nUser: bye",
		},
		{
			name: "unknown role passes content through unlabeled",
			messages: []session.Message{
				{Role: "tool", Content: "raw output"},
				session.User("q"),
			},
			want: "raw output\n\nUser: q",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := flatten(tt.messages); got != tt.want {
				t.Errorf("flatten() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextMessages(t *testing.T) {
	t.Parallel()

	msgs := contextMessages("ราคาเท่าไหร่", "[เอกสาร 1 - price.txt]\n100 บาท", "")

	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].Role != session.RoleSystem || msgs[0].Content != defaultSystemPrompt {
		t.Errorf("system message = %+v, want default persona", msgs[0])
	}
	if msgs[1].Role != session.RoleUser {
		t.Errorf("second role = %q, want user", msgs[1].Role)
	}
	for _, want := range []string{
		"Context:\n[เอกสาร 1 - price.txt]\n100 บาท",
		"คำถาม: ราคาเท่าไหร่",
		"กรุณาตอบคำถามโดยอ้างอิงจาก context ด้านบน",
	} {
		if !strings.Contains(msgs[1].Content, want) {
			t.Errorf("user message missing %q:\n%s", want, msgs[1].Content)
		}
	}
}

func TestContextMessages_CustomSystemPrompt(t *testing.T) {
	t.Parallel()

	msgs := contextMessages("q", "ctx", "answer in english")
	if msgs[0].Content != "answer in english" {
		t.Errorf("system prompt = %q, want override", msgs[0].Content)
	}
}
