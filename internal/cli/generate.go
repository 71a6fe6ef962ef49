package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/iterstruct/internal/codegen"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	GenerateFlags
	DryRun bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate [package-dir...]",
		Short: "Generate introspection methods for annotated structs",
		Long: `Generate field-name lists and value dumps for the structs of each package.

Every struct whose doc comment carries an //iterstruct:derive directive, or
that is named by --type or the types section of iterstruct.yaml, gets one
generation pass. The generated file is written only when every pass in the
package succeeds; otherwise the diagnostics are reported and nothing is
written.

Packages are processed concurrently. With no arguments the current
directory is used.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, packageDirs(args), cmd)
		},
	}

	addGenerateFlags(cmd, &opts.GenerateFlags)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print generated code instead of writing it")

	return cmd
}

func addGenerateFlags(cmd *cobra.Command, flags *GenerateFlags) {
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "generated file name (default "+codegen.DefaultOutput+")")
	cmd.Flags().StringVar(&flags.Config, "config", "", "config file (default <package-dir>/"+ConfigFileName+")")
	cmd.Flags().StringSliceVar(&flags.Types, "type", nil, "derive for these types even without directives")
	cmd.Flags().StringSliceVar(&flags.Derives, "derive", nil, "derivations applied to --type (default names)")
}

func packageDirs(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func runGenerate(opts *GenerateOptions, dirs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := opts.logger()

	reports, err := forEachDir(cmd.Context(), dirs, func(ctx context.Context, dir string) *PackageReport {
		formatter.VerboseLog("Generating %s", dir)
		return generatePackage(dir, opts, logger.With(zap.String("dir", dir)))
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "generate interrupted", err)
	}

	return outputReports(formatter, reports, func(w io.Writer, r *PackageReport) {
		switch r.Status {
		case StatusDryRun:
			fmt.Fprintf(w, "// %s\n%s", r.Path, r.Code)
		case StatusEmpty:
			fmt.Fprintf(w, "- %s: no types to derive\n", r.Package)
		case StatusRemoved:
			fmt.Fprintf(w, "✓ %s: removed %s (no types to derive)\n", r.Package, r.Path)
		case StatusUnchanged:
			fmt.Fprintf(w, "✓ %s: %s up to date (%d type(s))\n", r.Package, r.Path, len(r.Types))
		default:
			fmt.Fprintf(w, "✓ %s: wrote %s (%d type(s))\n", r.Package, r.Path, len(r.Types))
		}
	})
}

func generatePackage(dir string, opts *GenerateOptions, logger *zap.Logger) *PackageReport {
	res, err := LoadPackage(dir, opts.GenerateFlags, logger)
	if err != nil {
		return failedReport(dir, err)
	}
	report := newPackageReport(dir, res)
	if report.Status == StatusFailed {
		return report
	}

	if opts.DryRun {
		report.Status = StatusDryRun
		report.Code = string(res.Code)
		return report
	}

	existing, readErr := os.ReadFile(res.Path)
	exists := readErr == nil

	if res.Code == nil {
		report.Status = StatusEmpty
		if exists && codegen.IsGenerated(existing) {
			if err := os.Remove(res.Path); err != nil {
				return writeFailed(report, err)
			}
			report.Status = StatusRemoved
		}
		return report
	}

	if exists && bytes.Equal(existing, res.Code) {
		report.Status = StatusUnchanged
		return report
	}
	if exists && !codegen.IsGenerated(existing) {
		return writeFailed(report, fmt.Errorf("%s exists and was not written by iterstruct", filepath.Base(res.Path)))
	}
	if readErr != nil && !errors.Is(readErr, os.ErrNotExist) {
		return writeFailed(report, readErr)
	}
	if err := os.WriteFile(res.Path, res.Code, 0644); err != nil {
		return writeFailed(report, err)
	}
	logger.Debug("wrote generated file", zap.String("path", res.Path), zap.Int("bytes", len(res.Code)))
	report.Status = StatusWritten
	return report
}

func writeFailed(r *PackageReport, err error) *PackageReport {
	r.Status = StatusFailed
	r.Error = &CLIError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("writing output file: %v", err)}
	return r
}
