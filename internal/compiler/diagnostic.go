package compiler

import (
	"errors"
	"fmt"
	"go/token"
)

// Diagnostic codes (E200-E299). CLI-level codes live in the cli package.
const (
	ErrCodeShape             = "E201" // declaration is not a record
	ErrCodeUnsupportedFields = "E202" // record has unnamed or blank fields
	ErrCodeCollision         = "E203" // two members share a name on one type
	ErrCodeDirective         = "E204" // malformed derive directive or request
)

// DiagnosticKind categorizes a failed generation pass.
type DiagnosticKind string

const (
	// KindShape: the declaration is an enum, union, alias, generic or other
	// non-record type.
	KindShape DiagnosticKind = "shape"

	// KindUnsupportedFields: the record has embedded or blank fields.
	KindUnsupportedFields DiagnosticKind = "unsupported_fields"

	// KindCollision: two requested derivations, or a derivation and an
	// existing member, define the same member name.
	KindCollision DiagnosticKind = "collision"

	// KindDirective: the derivation request itself is malformed.
	KindDirective DiagnosticKind = "directive"
)

// Sentinel errors for errors.Is matching against a *Diagnostic.
var (
	ErrShape             = errors.New("shape error")
	ErrUnsupportedFields = errors.New("unsupported fields error")
	ErrCollision         = errors.New("collision error")
	ErrDirective         = errors.New("directive error")
)

// Diagnostic is the single error a failed generation pass produces.
// It identifies the offending type, the derivation that requested the pass
// and the source position of the declaration.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	TypeName   string         `json:"type"`
	Derivation string         `json:"derivation,omitempty"`
	Member     string         `json:"member,omitempty"` // set for collisions
	Pos        token.Position `json:"-"`
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Is matches the sentinel error for the diagnostic's kind.
func (d *Diagnostic) Is(target error) bool {
	switch d.Kind {
	case KindShape:
		return target == ErrShape
	case KindUnsupportedFields:
		return target == ErrUnsupportedFields
	case KindCollision:
		return target == ErrCollision
	case KindDirective:
		return target == ErrDirective
	}
	return false
}

// Location renders the declaration position as file:line:col, or "" when
// the position is unknown.
func (d *Diagnostic) Location() string {
	if !d.Pos.IsValid() {
		return ""
	}
	return d.Pos.String()
}

// NewShapeError reports a declaration that is not a plain record.
func NewShapeError(typeName, derivation, message string, pos token.Position) *Diagnostic {
	return &Diagnostic{
		Kind:       KindShape,
		Code:       ErrCodeShape,
		Message:    message,
		TypeName:   typeName,
		Derivation: derivation,
		Pos:        pos,
	}
}

// NewUnsupportedFieldsError reports a record with unnamed fields.
func NewUnsupportedFieldsError(typeName, derivation, message string, pos token.Position) *Diagnostic {
	return &Diagnostic{
		Kind:       KindUnsupportedFields,
		Code:       ErrCodeUnsupportedFields,
		Message:    message,
		TypeName:   typeName,
		Derivation: derivation,
		Pos:        pos,
	}
}

// NewCollisionError reports a member defined twice on one type.
// owner and other name whoever defines the member; other is either a second
// derivation or a description of an existing field or method.
func NewCollisionError(typeName, member, owner, other string, pos token.Position) *Diagnostic {
	return &Diagnostic{
		Kind:       KindCollision,
		Code:       ErrCodeCollision,
		Message:    fmt.Sprintf("member %s of %s is defined by both %s and %s", member, typeName, owner, other),
		TypeName:   typeName,
		Derivation: owner,
		Member:     member,
		Pos:        pos,
	}
}

// NewDirectiveError reports a malformed derivation request.
func NewDirectiveError(typeName, derivation, message string, pos token.Position) *Diagnostic {
	return &Diagnostic{
		Kind:       KindDirective,
		Code:       ErrCodeDirective,
		Message:    message,
		TypeName:   typeName,
		Derivation: derivation,
		Pos:        pos,
	}
}

// AsDiagnostic extracts a *Diagnostic from err.
func AsDiagnostic(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// IsShapeError returns true if err is a shape diagnostic.
func IsShapeError(err error) bool { return errors.Is(err, ErrShape) }

// IsUnsupportedFieldsError returns true if err is an unsupported fields diagnostic.
func IsUnsupportedFieldsError(err error) bool { return errors.Is(err, ErrUnsupportedFields) }

// IsCollisionError returns true if err is a collision diagnostic.
func IsCollisionError(err error) bool { return errors.Is(err, ErrCollision) }
