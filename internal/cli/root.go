// Package cli implements the quizctl command line.
package cli

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "quizctl",
	Short: "Practice image quiz sessions from the terminal",
	Long: `quizctl plays image quiz sessions against a running quiz server and
inspects how session queues are drawn.`,
	SilenceUsage: true,
	Version:      version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
