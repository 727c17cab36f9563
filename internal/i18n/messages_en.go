package i18n

// loadEnglishMessages populates the English message catalog.
func loadEnglishMessages() {
	en := messages[LangEN]

	// Welcome / goodbye
	en["welcome.title"] = "Nara - RAG chatbot"
	en["welcome.body"] = "Welcome! Type a question to start chatting, or /help for the command list"
	en["goodbye"] = "Thanks for using Nara. See you next time"

	// Chat loop
	en["chat.prompt"] = "you> "
	en["chat.assistant"] = "Nara"
	en["chat.thinking"] = "thinking..."
	en["chat.listening"] = "listening... (go ahead)"
	en["chat.rag.used"] = "answered from documents"
	en["chat.cleared"] = "conversation history cleared"

	// Modes
	en["mode.changed.text"] = "switched to text mode"
	en["mode.changed.voice"] = "switched to voice mode"
	en["mode.invalid"] = "invalid mode, use 'text' or 'voice'"
	en["mode.voice.unavailable"] = "voice features are not available"

	// Help
	en["help.title"] = "Available commands:"
	en["help.help"] = "/help - show this help"
	en["help.stats"] = "/stats - show system statistics"
	en["help.mode"] = "/mode text|voice - switch conversation mode"
	en["help.reload"] = "/reload - reindex the document directory"
	en["help.clear"] = "/clear - clear conversation history"
	en["help.exit"] = "exit or quit - leave the program"

	// Stats
	en["stats.title"] = "System statistics"
	en["stats.provider"] = "LLM provider"
	en["stats.model"] = "Model"
	en["stats.documents"] = "Documents"
	en["stats.history"] = "Conversation length"
	en["stats.mode"] = "Mode"

	// Indexing
	en["index.loading"] = "loading documents..."
	en["index.done"] = "loaded %d chunks"
	en["index.empty"] = "no documents found in the directory"
	en["index.error"] = "failed to load documents: %v"

	// Errors
	en["error.generic"] = "error: %v"
	en["error.config"] = "failed to load configuration: %v"
	en["error.unknown.command"] = "unknown command: %s"
	en["error.stt"] = "could not transcribe speech: %v"
	en["error.tts"] = "could not speak the response: %v"
	en["error.rag.unavailable"] = "document search is not available"
}
