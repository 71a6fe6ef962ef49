package engine

import (
	"fmt"
)

// GenerateError reports a failure that is not a diagnostic about user
// code: the generated source could not be formatted or fingerprinted.
type GenerateError struct {
	// Package is the name of the package being generated.
	Package string

	// Stage is "render" or "fingerprint".
	Stage string

	Err error
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	return fmt.Sprintf("generate %s: %s: %v", e.Package, e.Stage, e.Err)
}

func (e *GenerateError) Unwrap() error { return e.Err }
