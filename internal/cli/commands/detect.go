package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cssfilt/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output     string
	SampleSize int
	ShowAll    bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <capture-file>",
		Short: "Detect the output mode of a validator capture",
		Long: `Analyze a captured validator output file to identify which output mode
produced it.

The filter only understands the validator's -output text mode. When a
capture is rejected as malformed, detect explains what the stream
actually is (soap12 XML, an HTML report, gnu-style lines, or text).

Example:
  cssfilt detect capture.txt
  cssfilt detect --sample 500 capture.txt
  cssfilt detect -o json capture.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected modes, not just the best match")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	capture := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(capture); os.IsNotExist(err) {
		return fmt.Errorf("capture file not found: %s", capture)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, capture)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(result, capture, opts)
	case "text":
		return outputDetectText(result, capture, opts)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputDetectText(result *detector.DetectionResult, capture string, opts *DetectOptions) error {
	fmt.Println("=== Validator Output Mode Detection ===")
	fmt.Println()
	fmt.Printf("File: %s\n", capture)
	fmt.Printf("Lines sampled: %d\n", result.SampledLines)
	fmt.Println()

	if !result.HasMatch() {
		fmt.Println("No validator output mode detected.")
		fmt.Println()
		fmt.Println("Tip: this does not look like W3C CSS validator output at all.")
		fmt.Println("Check that the capture contains the validator's stdout.")
		return nil
	}

	best := result.BestMatch()
	fmt.Printf("Detected mode: %s\n", best.Mode.Name)
	fmt.Printf("Confidence: %.1f%% (%d/%d lines matched)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Println()
	fmt.Printf("Sample match:\n  %s\n", best.SampleLine)
	fmt.Println()

	if best.Mode.Filterable {
		fmt.Println("This capture is in text mode; 'cssfilt filter' can consume it.")
	} else {
		fmt.Printf("The filter cannot consume %s output: %s.\n", best.Mode.Name, best.Mode.Hint)
	}

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Println()
		fmt.Println("--- Other modes matched ---")
		for i, m := range result.Matches[1:] {
			fmt.Printf("%d. %s (%.1f%% confidence)\n", i+2, m.Mode.Name, m.Confidence*100)
		}
	}

	return nil
}

// JSONMatch represents a mode match in JSON output.
type JSONMatch struct {
	Mode       string  `json:"mode"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
	Filterable bool    `json:"filterable"`
	Hint       string  `json:"hint,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File         string      `json:"file"`
	Matches      []JSONMatch `json:"matches"`
	SampledLines int         `json:"sampled_lines"`
}

func outputDetectJSON(result *detector.DetectionResult, capture string, opts *DetectOptions) error {
	output := JSONOutput{
		File:         capture,
		SampledLines: result.SampledLines,
		Matches:      make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}

	for _, m := range matches {
		output.Matches = append(output.Matches, JSONMatch{
			Mode:       m.Mode.Name,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
			Filterable: m.Mode.Filterable,
			Hint:       m.Mode.Hint,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
