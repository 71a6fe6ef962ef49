package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/iterstruct/internal/compiler"
	"github.com/roach88/iterstruct/internal/engine"
)

// Package statuses reported by generate and check.
const (
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusDryRun    = "dry-run"
	StatusRemoved   = "removed"
	StatusEmpty     = "empty" // no type requests a derivation
	StatusFailed    = "failed"
	StatusUpToDate  = "up-to-date"
	StatusStale     = "stale"
	StatusMissing   = "missing"
)

// PackageReport is the outcome for one package directory.
type PackageReport struct {
	Dir         string             `json:"dir"`
	Package     string             `json:"package,omitempty"`
	Path        string             `json:"path,omitempty"`
	Status      string             `json:"status"`
	Types       []TypeReport       `json:"types,omitempty"`
	Fingerprint string             `json:"fingerprint,omitempty"`
	Diagnostics []DiagnosticReport `json:"diagnostics,omitempty"`
	Error       *CLIError          `json:"error,omitempty"`

	// Code is the rendered file; only reported on dry runs.
	Code string `json:"code,omitempty"`
}

// TypeReport lists what was generated for one type.
type TypeReport struct {
	Type        string   `json:"type"`
	Derivations []string `json:"derivations"`
	Members     []string `json:"members"`
}

// DiagnosticReport is the serialized form of a compiler diagnostic.
type DiagnosticReport struct {
	Code       string `json:"code"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Derivation string `json:"derivation,omitempty"`
	Member     string `json:"member,omitempty"`
	Location   string `json:"location,omitempty"`
}

func newDiagnosticReport(d *compiler.Diagnostic) DiagnosticReport {
	return DiagnosticReport{
		Code:       d.Code,
		Kind:       string(d.Kind),
		Message:    d.Message,
		Type:       d.TypeName,
		Derivation: d.Derivation,
		Member:     d.Member,
		Location:   d.Location(),
	}
}

// newPackageReport fills the report fields common to generate and check.
func newPackageReport(dir string, res *engine.Result) *PackageReport {
	r := &PackageReport{
		Dir:         dir,
		Package:     res.Package,
		Path:        res.Path,
		Fingerprint: res.Fingerprint,
	}
	for _, a := range res.Augmentations {
		r.Types = append(r.Types, TypeReport{Type: a.TypeName, Derivations: a.Derivations, Members: a.Members})
	}
	for _, d := range res.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, newDiagnosticReport(d))
	}
	if !res.OK() {
		r.Status = StatusFailed
		first := res.Diagnostics[0]
		r.Error = &CLIError{Code: first.Code, Message: first.Message}
	}
	return r
}

// failedReport reports an error that stopped a package before generation.
func failedReport(dir string, err error) *PackageReport {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return &PackageReport{Dir: dir, Status: StatusFailed, Error: &CLIError{Code: loadErr.Code, Message: loadErr.Message}}
	}
	return &PackageReport{Dir: dir, Status: StatusFailed, Error: &CLIError{Code: ErrCodeGeneric, Message: err.Error()}}
}

// forEachDir runs fn for every directory concurrently and returns the
// reports in argument order.
func forEachDir(ctx context.Context, dirs []string, fn func(ctx context.Context, dir string) *PackageReport) ([]*PackageReport, error) {
	reports := make([]*PackageReport, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = fn(gctx, dir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// countStatus returns how many reports have one of statuses.
func countStatus(reports []*PackageReport, statuses ...string) int {
	n := 0
	for _, r := range reports {
		for _, s := range statuses {
			if r.Status == s {
				n++
				break
			}
		}
	}
	return n
}

// writeFailure prints the diagnostics or load error of a failed report.
func writeFailure(w io.Writer, r *PackageReport) {
	name := r.Package
	if name == "" {
		name = r.Dir
	}
	fmt.Fprintf(w, "✗ %s\n", name)
	if len(r.Diagnostics) == 0 && r.Error != nil {
		fmt.Fprintf(w, "  %s: %s\n", r.Error.Code, r.Error.Message)
		return
	}
	for _, d := range r.Diagnostics {
		if d.Location != "" {
			fmt.Fprintf(w, "%s\n", d.Location)
		}
		fmt.Fprintf(w, "  %s: %s\n", d.Code, d.Message)
	}
}

// outputReports writes the reports and returns the command's exit error:
// ExitCommandError when any package failed, ExitFailure when any is stale.
func outputReports(f *OutputFormatter, reports []*PackageReport, text func(io.Writer, *PackageReport)) error {
	failed := countStatus(reports, StatusFailed)
	stale := countStatus(reports, StatusStale, StatusMissing)

	var exitErr *ExitError
	var cliErr *CLIError
	switch {
	case failed > 0:
		exitErr = NewExitError(ExitCommandError, fmt.Sprintf("generation failed in %d package(s)", failed))
		for _, r := range reports {
			if r.Status == StatusFailed {
				cliErr = r.Error
				break
			}
		}
	case stale > 0:
		exitErr = NewExitError(ExitFailure, fmt.Sprintf("%d package(s) need regeneration", stale))
		cliErr = &CLIError{Code: ErrCodeGeneric, Message: exitErr.Message}
	}

	if f.Format == "json" {
		if exitErr == nil {
			return f.Success(reports)
		}
		if err := f.Failure(reports, cliErr); err != nil {
			return err
		}
		return exitErr
	}

	for _, r := range reports {
		if r.Status == StatusFailed {
			writeFailure(f.Writer, r)
			continue
		}
		text(f.Writer, r)
	}
	if exitErr != nil {
		return exitErr
	}
	return nil
}
