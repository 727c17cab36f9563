package llm

import (
	"fmt"
	"strings"

	"github.com/nara0/nara/internal/session"
)

// defaultSystemPrompt is the persona used for grounded answers when the
// caller does not supply one.
const defaultSystemPrompt = "คุณคือ AI Assistant ที่ชาญฉลาดและเป็นมิตร " +
	"ให้ตอบคำถามโดยใช้ข้อมูลจาก context ที่ให้มา " +
	"ถ้าไม่มีข้อมูลใน context ให้บอกตามตรงว่าไม่ทราบ " +
	"ตอบเป็นภาษาไทยที่เป็นธรรมชาติและเข้าใจง่าย"

// contextTemplate lays out retrieved document context ahead of the question.
const contextTemplate = "Context:\n%s\n\nคำถาม: %s\n\nกรุณาตอบคำถามโดยอ้างอิงจาก context ด้านบน"

// flatten renders a conversation as a single labeled prompt string for APIs
// that take free text instead of structured messages. Messages keep their
// original order; an unrecognized role contributes its content unlabeled.
func flatten(messages []session.Message) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case session.RoleSystem:
			parts = append(parts, "System: "+msg.Content)
		case session.RoleUser:
			parts = append(parts, "User: "+msg.Content)
		case session.RoleAssistant:
			parts = append(parts, "Assistant: "+msg.Content)
		default:
			parts = append(parts, msg.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// contextMessages builds the two-message grounded prompt: persona system
// message plus a user message embedding the retrieved context and question.
func contextMessages(query, docContext, systemPrompt string) []session.Message {
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}
	return []session.Message{
		session.System(systemPrompt),
		session.User(fmt.Sprintf(contextTemplate, docContext, query)),
	}
}
