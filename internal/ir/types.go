package ir

import (
	"go/token"
	"slices"
)

// Declaration is the front end's description of one type declaration.
// It is the input boundary of a generation pass.
type Declaration struct {
	Name       string         `json:"name"`
	Kind       Kind           `json:"kind"`
	TypeParams int            `json:"type_params,omitempty"` // number of type parameters
	Fields     []DeclField    `json:"fields,omitempty"`      // struct fields, in source order
	Methods    []string       `json:"methods,omitempty"`     // methods already declared on the type
	Requests   []Request      `json:"requests,omitempty"`    // requested derivations, in directive order
	Pos        token.Position `json:"-"`
}

// DeclField is one entry of a struct field list as written in source.
// A line such as "X, Y int" produces two DeclFields.
type DeclField struct {
	Name     string         `json:"name"` // "" for embedded fields
	Type     string         `json:"type"` // source text of the type expression
	Embedded bool           `json:"embedded,omitempty"`
	Pos      token.Position `json:"-"`
}

// Unnamed reports whether the field has no usable name: embedded fields and
// blank (_) fields cannot be addressed through a selector.
func (f DeclField) Unnamed() bool {
	return f.Embedded || f.Name == "" || f.Name == "_"
}

// Request is one derivation requested for a declaration.
type Request struct {
	Derivation string            `json:"derivation"`        // "names", "dump"
	Options    map[string]string `json:"options,omitempty"` // key=value directive options
	Pos        token.Position    `json:"-"`
}

// Option returns the option value for key, or def when the option is absent.
func (r Request) Option(key, def string) string {
	if v, ok := r.Options[key]; ok {
		return v
	}
	return def
}

// FieldDescriptor represents one field exactly as declared.
type FieldDescriptor struct {
	Name     string `json:"name"`
	Index    int    `json:"index"`    // position in declaration order, from 0
	Accessor string `json:"accessor"` // selector reading the field from an instance
	Type     string `json:"type"`
}

// Selector returns the expression reading this field from recv.
func (f FieldDescriptor) Selector(recv string) string {
	return recv + "." + f.Accessor
}

// RecordDefinition is a snapshot of one record's shape for one generation pass.
// It is immutable: accessors hand out copies.
type RecordDefinition struct {
	typeName string
	fields   []FieldDescriptor
	pos      token.Position
}

// NewRecordDefinition builds a RecordDefinition. The field slice is copied.
func NewRecordDefinition(typeName string, pos token.Position, fields []FieldDescriptor) *RecordDefinition {
	return &RecordDefinition{
		typeName: typeName,
		fields:   slices.Clone(fields),
		pos:      pos,
	}
}

// TypeName returns the record's type name.
func (r *RecordDefinition) TypeName() string { return r.typeName }

// Pos returns the position of the type declaration.
func (r *RecordDefinition) Pos() token.Position { return r.pos }

// Len returns the number of fields.
func (r *RecordDefinition) Len() int { return len(r.fields) }

// Field returns the i'th field in declaration order.
func (r *RecordDefinition) Field(i int) FieldDescriptor { return r.fields[i] }

// Fields returns a copy of the fields in declaration order.
func (r *RecordDefinition) Fields() []FieldDescriptor { return slices.Clone(r.fields) }

// Names returns the field names in declaration order.
func (r *RecordDefinition) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}
