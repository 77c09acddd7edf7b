// Package cli provides the command-line interface for cssfilt.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cssfilt/internal/cli/commands"
	"cssfilt/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	// Check if the first argument might be a plugin command
	if len(os.Args) > 1 {
		potentialCommand := os.Args[1]
		// Skip flags (start with -)
		if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
			if !isBuiltinCommand(rootCmd, potentialCommand) {
				if pluginPath, err := plugins.FindPlugin(potentialCommand); err == nil {
					// Plugin found - execute it with remaining args
					return plugins.Execute(pluginPath, os.Args[2:])
				}
				// Plugin not found - will fall through to Cobra which will show error
			}
		}
	}

	if err := rootCmd.Execute(); err != nil {
		// Check if this was an unknown command that could be a plugin
		if len(os.Args) > 1 {
			potentialCommand := os.Args[1]
			if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
				if !isBuiltinCommand(rootCmd, potentialCommand) {
					_, _ = fmt.Fprintln(os.Stderr, plugins.FormatNotFoundError(potentialCommand))
					return 2
				}
			}
		}
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Malformed input, configuration, or runtime error
	}
	return commands.ExitCode
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// Also check for special commands like help and completion
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cssfilt",
		Short: "Editor-friendly output for the W3C CSS validator",
		Long: `cssfilt rewrites the W3C CSS validator's text output into single-line
path:line: message form that editors can jump to, and turns the result
into a process exit status.

Exit codes:
  0 - no validation errors (warnings do not affect this)
  1 - validation errors found
  2 - validator output malformed, or configuration/runtime error

PLUGINS:
  cssfilt supports plugins for extended functionality. Plugins are
  standalone binaries named cssfilt-<command> that are automatically
  discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the cssfilt binary
    2. ~/.cssfilt/plugins/
    3. Anywhere in PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewFilterCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
