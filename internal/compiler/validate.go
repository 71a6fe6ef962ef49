package compiler

import (
	"fmt"

	"github.com/roach88/iterstruct/internal/ir"
)

// validation is the result type threaded through the kind visitor.
type validation struct {
	def *ir.RecordDefinition
	err error
}

// recordValidator accepts records with named fields and rejects every other
// kind through one shape error path.
type recordValidator struct {
	derivation string
}

// Validate confirms that d is a non-generic record whose fields all have
// names, and returns its RecordDefinition.
//
// A record with zero fields is valid and yields an empty definition.
// Failures are *Diagnostic values of kind KindShape or KindUnsupportedFields
// carrying the type name and the requesting derivation.
func Validate(d *ir.Declaration, derivation string) (*ir.RecordDefinition, error) {
	res := ir.Accept[validation](d, recordValidator{derivation: derivation})
	return res.def, res.err
}

func (v recordValidator) VisitRecord(d *ir.Declaration) validation {
	if d.TypeParams > 0 {
		return validation{err: NewShapeError(d.Name, v.derivation,
			fmt.Sprintf("%s cannot be derived for %s: generic structs are not supported", v.derivation, d.Name),
			d.Pos)}
	}

	for i, f := range d.Fields {
		if !f.Unnamed() {
			continue
		}
		what := fmt.Sprintf("embedded field %s", f.Type)
		if !f.Embedded {
			what = fmt.Sprintf("blank field at index %d", i)
		}
		pos := f.Pos
		if !pos.IsValid() {
			pos = d.Pos
		}
		return validation{err: NewUnsupportedFieldsError(d.Name, v.derivation,
			fmt.Sprintf("%s can only be derived for structs with named fields; %s has %s", v.derivation, d.Name, what),
			pos)}
	}

	return validation{def: ir.NewRecordDefinition(d.Name, d.Pos, Extract(d.Fields))}
}

func (v recordValidator) VisitEnum(d *ir.Declaration) validation  { return v.reject(d) }
func (v recordValidator) VisitUnion(d *ir.Declaration) validation { return v.reject(d) }
func (v recordValidator) VisitAlias(d *ir.Declaration) validation { return v.reject(d) }
func (v recordValidator) VisitOther(d *ir.Declaration) validation { return v.reject(d) }

func (v recordValidator) reject(d *ir.Declaration) validation {
	return validation{err: NewShapeError(d.Name, v.derivation,
		fmt.Sprintf("%s can only be derived for structs; %s is %s", v.derivation, d.Name, describeKind(d.Kind)),
		d.Pos)}
}

func describeKind(k ir.Kind) string {
	switch k {
	case ir.KindEnum:
		return "an enum"
	case ir.KindUnion:
		return "an interface (union) type"
	case ir.KindAlias:
		return "a type alias"
	}
	return "a non-struct type"
}
