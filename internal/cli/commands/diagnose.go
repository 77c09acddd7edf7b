package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"cssfilt/pkg/config"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose [config-file]",
		Short: "Diagnose common environment issues",
		Long: `Diagnose common environment issues.

This command checks the pieces 'cssfilt check' depends on:
- Config file syntax and option values (when a config file is given)
- Java binary resolvable
- Validator jar present

Example:
  cssfilt diagnose
  cssfilt diagnose config.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := ""
			if len(args) == 1 {
				configPath = args[0]
			}
			return runDiagnose(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, configPath string, opts *DiagnoseOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var results []DiagnosticResult

	cfg, result := checkConfig(ctx, configPath)
	results = append(results, result)
	if cfg == nil {
		printDiagnostics(results, opts)
		return nil
	}

	results = append(results, checkJava(cfg))
	results = append(results, checkJar(cfg))

	printDiagnostics(results, opts)
	return nil
}

func checkConfig(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{Check: "Configuration"}

	if path == "" {
		cfg, _ := config.LoadOrDefault(ctx, "")
		result.Status = "ok"
		result.Message = "using defaults with environment overrides"
		return cfg, result
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = err.Error()
		result.Suggests = []string{"run 'cssfilt validate " + path + "' for details"}
		return nil, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("loaded %s", path)
	return cfg, result
}

func checkJava(cfg *config.Config) DiagnosticResult {
	result := DiagnosticResult{Check: "Java binary"}

	path, err := exec.LookPath(cfg.Java)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("%q not found in PATH", cfg.Java)
		result.Suggests = []string{
			"install a Java runtime",
			"set " + config.EnvJava + " to the java binary path",
		}
		return result
	}

	result.Status = "ok"
	result.Message = path
	return result
}

func checkJar(cfg *config.Config) DiagnosticResult {
	result := DiagnosticResult{Check: "Validator jar"}

	info, err := os.Stat(cfg.Jar)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("not found at %s", cfg.Jar)
		result.Suggests = []string{
			"download css-validator.jar from https://jigsaw.w3.org/css-validator/DOWNLOAD.html",
			"set " + config.EnvJar + " to its location",
		}
		return result
	}

	if info.IsDir() {
		result.Status = "error"
		result.Message = fmt.Sprintf("%s is a directory", cfg.Jar)
		return result
	}

	result.Status = "ok"
	result.Message = cfg.Jar
	return result
}

func printDiagnostics(results []DiagnosticResult, opts *DiagnoseOptions) {
	problems := 0

	for _, r := range results {
		marker := "OK"
		switch r.Status {
		case "warning":
			marker = "WARN"
			problems++
		case "error":
			marker = "FAIL"
			problems++
		}

		fmt.Printf("[%s] %s: %s\n", marker, r.Check, r.Message)

		if (opts.Verbose || r.Status != "ok") && len(r.Suggests) > 0 {
			for _, s := range r.Suggests {
				fmt.Printf("       - %s\n", s)
			}
		}
	}

	fmt.Println()
	if problems == 0 {
		fmt.Println("No problems found.")
	} else {
		fmt.Printf("%d problem(s) found.\n", problems)
	}
}
