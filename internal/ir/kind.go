package ir

import "fmt"

// Kind classifies a type declaration.
// The set is closed: front ends must map every declaration to one of these.
type Kind int

const (
	// KindRecord is a struct type.
	KindRecord Kind = iota

	// KindEnum is a defined basic type used with typed constants.
	KindEnum

	// KindUnion is an interface type used as a sum type.
	KindUnion

	// KindAlias is a type alias (type A = B).
	KindAlias

	// KindOther covers every remaining defined type (maps, slices, funcs, ...).
	KindOther
)

var kindNames = [...]string{
	KindRecord: "record",
	KindEnum:   "enum",
	KindUnion:  "union",
	KindAlias:  "alias",
	KindOther:  "other",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindVisitor dispatches on the kind of a declaration.
// Implementations that only care about records should route every other
// method to one shared rejection path.
type KindVisitor[R any] interface {
	VisitRecord(d *Declaration) R
	VisitEnum(d *Declaration) R
	VisitUnion(d *Declaration) R
	VisitAlias(d *Declaration) R
	VisitOther(d *Declaration) R
}

// Accept calls the visitor method matching d.Kind.
// Unknown kinds are treated as KindOther.
func Accept[R any](d *Declaration, v KindVisitor[R]) R {
	switch d.Kind {
	case KindRecord:
		return v.VisitRecord(d)
	case KindEnum:
		return v.VisitEnum(d)
	case KindUnion:
		return v.VisitUnion(d)
	case KindAlias:
		return v.VisitAlias(d)
	default:
		return v.VisitOther(d)
	}
}
