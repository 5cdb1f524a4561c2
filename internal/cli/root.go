// Package cli provides the command-line interface for chatwrapped.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatwrapped/internal/cli/commands"
	"github.com/ccollicutt/chatwrapped/pkg/detector"
)

// Exit codes.
const (
	exitOK           = 0
	exitError        = 2 // Configuration or runtime error
	exitUnrecognized = 3 // Chat format not recognized
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	// An optional .env supplies CHATWRAPPED_* overrides
	_ = godotenv.Load()

	err := NewRootCommand().Execute()
	if err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, detector.ErrUnrecognizedFormat):
		return exitUnrecognized
	default:
		return exitError
	}
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatwrapped",
		Short: "Year-in-review statistics for WhatsApp chat exports",
		Long: `chatwrapped turns a WhatsApp chat export into a "wrapped" style summary.

It reads the transcript produced by "Export chat" on iOS or Android and reports:
  - Messages, media and words per participant
  - The most used word and emoji
  - The busiest day and time of day
  - The average response time between participants

Only the export file is read; nothing leaves your machine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
