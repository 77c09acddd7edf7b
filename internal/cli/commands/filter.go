package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cssfilt/pkg/filter"
	"cssfilt/pkg/report"
	"cssfilt/pkg/scanner"
	"cssfilt/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// FilterOptions holds command-line options for the filter command.
type FilterOptions struct {
	Config  string
	Webhook WebhookOptions
}

// NewFilterCommand creates the filter command.
func NewFilterCommand() *cobra.Command {
	opts := &FilterOptions{}

	cmd := &cobra.Command{
		Use:   "filter [capture-file]",
		Short: "Filter W3C CSS validator text output",
		Long: `Read W3C CSS validator text output from a capture file or stdin and
re-emit it in editor-friendly form:

  Found 2 error(s)
  index.css:6: Parse error (invalid or unsupported).
  index.css:13: Property -text-decoration doesn't exist.

Paths are rendered relative to the current directory. The input must be
produced by the validator's -output text mode; anything else aborts with
a malformed-output error (try 'cssfilt detect' on the capture).

Exit codes:
  0 - no validation errors (warnings do not affect this)
  1 - validation errors found
  2 - validator output malformed, or runtime error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (for webhooks)")
	addWebhookFlags(cmd, &opts.Webhook)

	return cmd
}

func runFilter(cmd *cobra.Command, args []string, opts *FilterOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var in io.Reader = os.Stdin
	source := "stdin"
	if len(args) == 1 {
		f, err := os.Open(args[0]) // #nosec G304 -- user-provided capture path is expected
		if err != nil {
			return fmt.Errorf("opening capture: %w", err)
		}
		defer f.Close()
		in = f
		source = args[0]
	}

	started := time.Now()

	res, err := filter.Run(ctx, scanner.New(in), report.New(os.Stdout))
	if err != nil {
		return err
	}

	notifyWebhooks(ctx, opts.Config, &opts.Webhook, webhook.NewReport(res, source, started))

	if res.ErrorsFound {
		ExitCode = 1
	}

	return nil
}
