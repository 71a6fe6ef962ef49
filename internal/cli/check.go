package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/iterstruct/internal/codegen"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	GenerateFlags
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [package-dir...]",
		Short: "Verify generated files are up to date",
		Long: `Regenerate each package in memory and compare with the file on disk.

Nothing is written. Exits 1 when a generated file is missing, stale, or
left over from types that no longer request derivations, and 2 when
generation itself reports diagnostics.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, packageDirs(args), cmd)
		},
	}

	addGenerateFlags(cmd, &opts.GenerateFlags)

	return cmd
}

func runCheck(opts *CheckOptions, dirs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	reports, err := forEachDir(cmd.Context(), dirs, func(ctx context.Context, dir string) *PackageReport {
		formatter.VerboseLog("Checking %s", dir)
		return checkPackage(dir, opts.GenerateFlags, opts.logger().With(zap.String("dir", dir)))
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "check interrupted", err)
	}

	return outputReports(formatter, reports, func(w io.Writer, r *PackageReport) {
		switch r.Status {
		case StatusUpToDate:
			fmt.Fprintf(w, "✓ %s: up to date\n", r.Package)
		case StatusMissing:
			fmt.Fprintf(w, "✗ %s: %s is missing\n", r.Package, r.Path)
		default:
			fmt.Fprintf(w, "✗ %s: %s is stale\n", r.Package, r.Path)
		}
	})
}

func checkPackage(dir string, flags GenerateFlags, logger *zap.Logger) *PackageReport {
	res, err := LoadPackage(dir, flags, logger)
	if err != nil {
		return failedReport(dir, err)
	}
	report := newPackageReport(dir, res)
	if report.Status == StatusFailed {
		return report
	}

	existing, readErr := os.ReadFile(res.Path)
	switch {
	case res.Code == nil && readErr == nil && codegen.IsGenerated(existing):
		report.Status = StatusStale
	case res.Code == nil:
		report.Status = StatusUpToDate
	case readErr != nil:
		report.Status = StatusMissing
	case !bytes.Equal(existing, res.Code):
		report.Status = StatusStale
	default:
		report.Status = StatusUpToDate
	}
	logger.Debug("checked", zap.String("path", res.Path), zap.String("status", report.Status))
	return report
}
