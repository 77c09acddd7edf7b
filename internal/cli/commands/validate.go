package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cssfilt/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a cssfilt configuration file without running anything.

Checks:
  - YAML syntax
  - Validator option values (profile, medium, warning level, language)
  - Webhook URLs and triggers
  - Validator jar existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Java:     %s\n", cfg.Java)
	fmt.Printf("  Jar:      %s\n", cfg.Jar)
	fmt.Printf("  Profile:  %s\n", cfg.Validator.Profile)
	fmt.Printf("  Medium:   %s\n", cfg.Validator.Medium)
	fmt.Printf("  Warning:  %s\n", cfg.Validator.Warning)
	fmt.Printf("  Lang:     %s\n", cfg.Validator.Lang)
	fmt.Printf("  Webhooks: %d\n", len(cfg.Webhooks))

	// Check if the jar exists (warning only)
	if _, err := os.Stat(cfg.Jar); err != nil {
		fmt.Printf("\nWarning: validator jar not found at %s\n", cfg.Jar)
	}

	return nil
}
