package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/iterstruct/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update    bool   // regenerate golden files
	Filter    string // case filter (glob pattern on the file name)
	GoldenDir string // default <cases-dir>/golden
}

// CaseResult holds the result of a single case execution.
type CaseResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Cases  []CaseResult `json:"cases"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Total  int          `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <cases-dir>",
		Short: "Run conformance cases",
		Long: `Run generation cases through the engine.

Each YAML case holds one Go source file and the expected outcome. The
rendered file, or the diagnostics of a failing case, is compared with
golden/<name>.golden when that file exists.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (invalid paths, etc.)

Examples:
  iterstruct test ./testdata/cases
  iterstruct test ./testdata/cases --filter "dump_*"
  iterstruct test ./testdata/cases --golden-dir ./testdata/golden --update`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter cases by glob pattern")
	cmd.Flags().StringVar(&opts.GoldenDir, "golden-dir", "", "golden file directory (default <cases-dir>/golden)")

	return cmd
}

func runTests(opts *TestOptions, casesDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if _, err := os.Stat(casesDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("cases directory not found: %s", casesDir))
	}
	goldenDir := opts.GoldenDir
	if goldenDir == "" {
		goldenDir = filepath.Join(casesDir, "golden")
	}

	files, err := findCaseFiles(casesDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find cases", err)
	}

	result := TestResult{
		Cases: make([]CaseResult, 0, len(files)),
		Total: len(files),
	}
	h := harness.New(opts.logger())
	text := formatter.Format != "json"
	for _, file := range files {
		formatter.VerboseLog("Running %s", file)
		cr := runCase(h, file, goldenDir, opts.Update)
		if text {
			writeCaseResult(formatter.Writer, cr, opts.Update)
		}
		result.Cases = append(result.Cases, cr)
		if cr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if !text {
		return outputTestJSON(formatter, result)
	}
	return outputTestText(formatter.Writer, result)
}

// findCaseFiles lists the YAML case files in dir, optionally filtered by
// a glob on the file name without extension.
func findCaseFiles(dir, filter string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		if filter != "" {
			matched, err := filepath.Match(filter, strings.TrimSuffix(e.Name(), ext))
			if err != nil {
				return nil, fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				continue
			}
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// runCase executes a single case and compares or updates its golden file.
func runCase(h *harness.Harness, file, goldenDir string, update bool) CaseResult {
	c, err := harness.LoadCase(file)
	if err != nil {
		return CaseResult{
			Name:   filepath.Base(file),
			Errors: []string{fmt.Sprintf("failed to load case: %v", err)},
		}
	}

	result, err := h.Run(c)
	if err != nil {
		return CaseResult{
			Name:   c.Name,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		}
	}

	cr := CaseResult{Name: c.Name, Pass: result.Pass, Errors: result.Errors}
	goldenPath := filepath.Join(goldenDir, c.Name+".golden")
	snapshot := result.Snapshot()

	if update {
		if err := os.MkdirAll(goldenDir, 0o755); err != nil {
			return failCase(cr, fmt.Sprintf("failed to create golden directory: %v", err))
		}
		if err := os.WriteFile(goldenPath, snapshot, 0o644); err != nil {
			return failCase(cr, fmt.Sprintf("failed to write golden file: %v", err))
		}
		return cr
	}

	golden, err := os.ReadFile(goldenPath)
	switch {
	case os.IsNotExist(err):
		// Expectations alone decide.
	case err != nil:
		return failCase(cr, fmt.Sprintf("failed to read golden file: %v", err))
	case !bytes.Equal(golden, snapshot):
		return failCase(cr, "output does not match golden file (run with --update to regenerate)")
	}
	return cr
}

func failCase(cr CaseResult, msg string) CaseResult {
	cr.Pass = false
	cr.Errors = append(cr.Errors, msg)
	return cr
}

func writeCaseResult(w io.Writer, cr CaseResult, updated bool) {
	switch {
	case !cr.Pass:
		fmt.Fprintf(w, "✗ %s\n", cr.Name)
		for _, e := range cr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	case updated:
		fmt.Fprintf(w, "✓ %s (golden updated)\n", cr.Name)
	default:
		fmt.Fprintf(w, "✓ %s\n", cr.Name)
	}
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(f *OutputFormatter, result TestResult) error {
	if result.Failed == 0 {
		return f.Success(result)
	}

	msg := fmt.Sprintf("%d case(s) failed", result.Failed)
	if err := f.Failure(result, &CLIError{Code: ErrCodeTestFailed, Message: msg}); err != nil {
		return err
	}
	return NewExitError(ExitFailure, msg)
}

// outputTestText outputs the test summary as text.
func outputTestText(w io.Writer, result TestResult) error {
	if result.Total == 0 {
		fmt.Fprintln(w, "No cases found.")
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All cases passed")
	return nil
}
