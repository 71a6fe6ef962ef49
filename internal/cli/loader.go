package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/iterstruct/internal/codegen"
	"github.com/roach88/iterstruct/internal/engine"
	"github.com/roach88/iterstruct/internal/frontend"
)

// Error code constants - unified across all CLI commands.
// Diagnostics about user types use the compiler codes (E201-E204).
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeScanError     = "E002" // Directory scan error
	ErrCodeNoFiles       = "E003" // No Go files found
	ErrCodeParseFailed   = "E004" // Go source does not parse
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeConfigInvalid = "E006" // Config file unreadable or invalid
	ErrCodeWriteFailed   = "E007" // File write error
	ErrCodeTestFailed    = "E008" // Conformance case failed
)

// LoadError represents an error that occurred before any pass ran.
type LoadError struct {
	Code    string
	Message string
	Dir     string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GenerateFlags are the generation settings shared by generate and check.
type GenerateFlags struct {
	Config  string   // explicit config file
	Output  string   // generated file name
	Types   []string // types to derive without directives
	Derives []string // derivations applied to Types
}

// typeRequests expands --type/--derive into per-type derivation lists.
func (g GenerateFlags) typeRequests() map[string][]string {
	if len(g.Types) == 0 {
		return nil
	}
	derives := g.Derives
	if len(derives) == 0 {
		derives = []string{codegen.DerivationNames}
	}
	out := make(map[string][]string, len(g.Types))
	for _, t := range g.Types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out[t] = append([]string(nil), derives...)
	}
	return out
}

// LoadPackage resolves configuration for dir, parses the package and runs
// generation. Errors are *LoadError values.
func LoadPackage(dir string, flags GenerateFlags, logger *zap.Logger) (*engine.Result, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Dir: dir, Message: fmt.Sprintf("package directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Dir: dir, Message: fmt.Sprintf("error accessing package directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Dir: dir, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cfg, err := resolveConfig(flags.Config, dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeConfigInvalid, Dir: dir, Message: err.Error()}
	}
	cfg = cfg.merge(flags.Output, flags.typeRequests())
	if err := validateOutput(cfg.Output); err != nil {
		return nil, &LoadError{Code: ErrCodeConfigInvalid, Dir: dir, Message: err.Error()}
	}
	output := cfg.Output
	if output == "" {
		output = codegen.DefaultOutput
	}

	pkg, err := frontend.ParseDir(dir, frontend.Options{
		Output: output,
		Types:  cfg.Types,
		Logger: logger,
	})
	if err != nil {
		return nil, classifyParseError(dir, err)
	}

	res, err := engine.New(engine.WithLogger(logger), engine.WithOutput(output)).Generate(pkg)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Dir: dir, Message: err.Error()}
	}
	return res, nil
}

func classifyParseError(dir string, err error) *LoadError {
	code := ErrCodeScanError
	switch {
	case errors.Is(err, frontend.ErrNoGoFiles):
		code = ErrCodeNoFiles
	case errors.Is(err, frontend.ErrSyntax), errors.Is(err, frontend.ErrMixedPackages):
		code = ErrCodeParseFailed
	}
	return &LoadError{Code: code, Dir: dir, Message: err.Error()}
}
