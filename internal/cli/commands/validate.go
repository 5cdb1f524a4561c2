package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatwrapped/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a chatwrapped configuration file without running analysis.

Checks:
  - YAML syntax
  - Log level and output format values
  - Worker and sample size ranges
  - Timezone name
  - Extra noise phrases are not empty

CHATWRAPPED_* environment overrides are applied before validation.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(commandContext(cmd), configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Timezone:      %s\n", cfg.Location())
	fmt.Fprintf(w, "  Log level:     %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "  Sample size:   %d\n", cfg.Detection.SampleSize)
	fmt.Fprintf(w, "  Workers:       %d\n", cfg.Parsing.Workers)
	fmt.Fprintf(w, "  Output:        %s (color: %t)\n", cfg.Output.Format, cfg.Output.Color)

	if len(cfg.Noise.ExtraNotices) > 0 || len(cfg.Noise.ExtraMedia) > 0 {
		fmt.Fprintf(w, "\nExtra noise phrases:\n")
		for _, p := range cfg.Noise.ExtraNotices {
			fmt.Fprintf(w, "  - [notice] %s\n", p)
		}
		for _, p := range cfg.Noise.ExtraMedia {
			fmt.Fprintf(w, "  - [media]  %s\n", p)
		}
	}

	return nil
}
