package harness

import (
	"strings"

	"github.com/roach88/iterstruct/internal/engine"
)

// Result is the outcome of a case execution.
type Result struct {
	// Pass indicates overall case success.
	// True if all expect clauses match.
	Pass bool `json:"pass"`

	// Generation is the engine's result for the case source.
	Generation *engine.Result `json:"generation"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(gen *engine.Result) *Result {
	return &Result{
		Pass:       true,
		Generation: gen,
		Errors:     []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Snapshot is the text compared against a golden file: the generated
// source when generation succeeded, otherwise one diagnostic per line.
func (r *Result) Snapshot() []byte {
	if r.Generation.Code != nil {
		return r.Generation.Code
	}
	var b strings.Builder
	for _, d := range r.Generation.Diagnostics {
		b.WriteString(d.Error())
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
