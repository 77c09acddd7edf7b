package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"cssfilt/pkg/config"
	"cssfilt/pkg/filter"
	"cssfilt/pkg/report"
	"cssfilt/pkg/scanner"
	"cssfilt/pkg/webhook"
)

// CheckOptions holds command-line options for the check command.
type CheckOptions struct {
	Config  string
	Webhook WebhookOptions
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check <css-file>",
		Short: "Run the W3C CSS validator and filter its output",
		Long: `Validate a CSS file with the W3C CSS validator and re-emit its findings
in editor-friendly form.

The file path is resolved to an absolute file: URI and passed to the
validator jar with a fixed option set (text output, configured profile,
medium, warning level, and language). The validator's stdout is streamed
through the filter; its stderr passes through untouched.

The validator location is taken from the config file if given, otherwise
from the CSSFILT_JAVA and CSSFILT_JAR environment variables, otherwise
from built-in defaults.

Exit codes:
  0 - no validation errors (warnings do not affect this)
  1 - validation errors found
  2 - validator output malformed, or configuration/runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file")
	addWebhookFlags(cmd, &opts.Webhook)

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cssFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadOrDefault(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(cssFile); err != nil {
		return fmt.Errorf("css file: %w", err)
	}

	abs, err := filepath.Abs(cssFile)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", cssFile, err)
	}
	uri := "file:" + abs

	started := time.Now()

	// #nosec G204 -- java binary and jar come from the user's own config
	validator := exec.CommandContext(ctx, cfg.Java, cfg.Args(uri)...)
	validator.Stderr = os.Stderr

	stdout, err := validator.StdoutPipe()
	if err != nil {
		return fmt.Errorf("piping validator output: %w", err)
	}

	if err := validator.Start(); err != nil {
		return fmt.Errorf("starting css validator: %w", err)
	}

	res, ferr := filter.Run(ctx, scanner.New(stdout), report.New(os.Stdout))
	if ferr != nil {
		// The stream is already known to be unusable; reap the process
		// and surface the grammar violation.
		_ = validator.Process.Kill()
		_ = validator.Wait()
		return ferr
	}

	if err := validator.Wait(); err != nil {
		return fmt.Errorf("css validator: %w", err)
	}

	sendWebhooks(ctx, cfg, &opts.Webhook, webhook.NewReport(res, cssFile, started))

	if res.ErrorsFound {
		ExitCode = 1
	}

	return nil
}
