package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/iterstruct/internal/compiler"
	"github.com/roach88/iterstruct/internal/engine"
)

// AssertionError describes one expectation that did not hold.
type AssertionError struct {
	Clause   string
	Expected any
	Actual   any
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %v, got %v", e.Clause, e.Expected, e.Actual)
}

// EvaluateExpectations checks a generation result against exp and
// returns one message per failed clause.
func EvaluateExpectations(gen *engine.Result, exp Expectation) []string {
	var errs []string
	add := func(err *AssertionError) {
		errs = append(errs, err.Error())
	}

	if gen.OK() != exp.OK {
		add(&AssertionError{Clause: "ok", Expected: exp.OK, Actual: gen.OK()})
	}
	if exp.OK && gen.Code == nil && len(gen.Augmentations) > 0 {
		add(&AssertionError{Clause: "code", Expected: "rendered file", Actual: "nil"})
	}

	for _, te := range exp.Types {
		if err := checkType(gen, te); err != nil {
			add(err)
		}
	}

	if len(gen.Diagnostics) != len(exp.Diagnostics) {
		add(&AssertionError{
			Clause:   "diagnostics",
			Expected: fmt.Sprintf("%d diagnostics", len(exp.Diagnostics)),
			Actual:   fmt.Sprintf("%d %v", len(gen.Diagnostics), diagnosticCodes(gen.Diagnostics)),
		})
		return errs
	}
	for i, de := range exp.Diagnostics {
		if err := checkDiagnostic(i, gen.Diagnostics[i], de); err != nil {
			add(err)
		}
	}
	return errs
}

func checkType(gen *engine.Result, te TypeExpectation) *AssertionError {
	clause := "types." + te.Type
	for _, aug := range gen.Augmentations {
		if aug.TypeName != te.Type {
			continue
		}
		if te.Names != nil && !slices.Equal(aug.Record.Names(), te.Names) {
			return &AssertionError{Clause: clause + ".names", Expected: te.Names, Actual: aug.Record.Names()}
		}
		if te.Members != nil && !slices.Equal(aug.Members, te.Members) {
			return &AssertionError{Clause: clause + ".members", Expected: te.Members, Actual: aug.Members}
		}
		return nil
	}
	return &AssertionError{Clause: clause, Expected: "augmentation", Actual: "none"}
}

func checkDiagnostic(i int, d *compiler.Diagnostic, de DiagnosticExpectation) *AssertionError {
	clause := fmt.Sprintf("diagnostics[%d]", i)
	switch {
	case d.Code != de.Code:
		return &AssertionError{Clause: clause + ".code", Expected: de.Code, Actual: d.Code}
	case de.Type != "" && d.TypeName != de.Type:
		return &AssertionError{Clause: clause + ".type", Expected: de.Type, Actual: d.TypeName}
	case de.Member != "" && d.Member != de.Member:
		return &AssertionError{Clause: clause + ".member", Expected: de.Member, Actual: d.Member}
	case de.Contains != "" && !strings.Contains(d.Message, de.Contains):
		return &AssertionError{Clause: clause + ".contains", Expected: fmt.Sprintf("%q", de.Contains), Actual: fmt.Sprintf("%q", d.Message)}
	}
	return nil
}

func diagnosticCodes(ds []*compiler.Diagnostic) []string {
	codes := make([]string, len(ds))
	for i, d := range ds {
		codes[i] = d.Code
	}
	return codes
}
