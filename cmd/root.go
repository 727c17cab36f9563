// Package cmd implements the nara command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nara",
	Short: "Nara - RAG chatbot for Thai document Q&A",
	Long: `Nara is a retrieval-augmented chatbot. It answers questions from
indexed documents when the query asks for them, and chats directly
otherwise.

Running nara without arguments starts the interactive chat loop.`,
	RunE: runChat,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
