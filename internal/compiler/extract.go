package compiler

import "github.com/roach88/iterstruct/internal/ir"

// Extract turns a validated field list into descriptors, one per field, in
// declaration order. It neither deduplicates nor reorders; duplicate names
// are rejected by the Go parser long before this point.
func Extract(fields []ir.DeclField) []ir.FieldDescriptor {
	out := make([]ir.FieldDescriptor, 0, len(fields))
	for i, f := range fields {
		out = append(out, ir.FieldDescriptor{
			Name:     f.Name,
			Index:    i,
			Accessor: f.Name,
			Type:     f.Type,
		})
	}
	return out
}
