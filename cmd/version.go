package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by the build via -ldflags.
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nara version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nara %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
