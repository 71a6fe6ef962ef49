package codegen

import (
	"go/token"
	"slices"
	"strings"

	"github.com/roach88/iterstruct/internal/ir"
)

// RuntimeImport is the import path of the package generated code depends on.
const RuntimeImport = "github.com/roach88/iterstruct/fieldset"

// Fragment is the output of one synthesizer for one record.
type Fragment struct {
	// Derivation names the synthesizer that produced the fragment.
	Derivation string

	// Members are the method names added to the type, in emission order.
	Members []string

	// Globals are package-level identifiers declared by Source.
	Globals []string

	// Imports are the import paths Source refers to.
	Imports []string

	// Source holds top-level declarations separated by blank lines.
	Source string
}

// Owner describes the fragment in collision messages.
func (f *Fragment) Owner() string {
	return "derivation " + `"` + f.Derivation + `"`
}

// Augmentation is the merged result of a successful pass over one type.
type Augmentation struct {
	TypeName    string         `json:"type"`
	Derivations []string       `json:"derivations"`
	Members     []string       `json:"members"`
	Globals     []string       `json:"-"`
	Imports     []string       `json:"-"`
	Source      string         `json:"-"`
	Pos         token.Position `json:"-"`

	// Record is the definition the augmentation was derived from.
	Record *ir.RecordDefinition `json:"-"`
}

// HasMember reports whether the augmentation adds member to the type.
func (a *Augmentation) HasMember(member string) bool {
	return slices.Contains(a.Members, member)
}

// sourceBuilder accumulates top-level declarations.
type sourceBuilder struct {
	b strings.Builder
}

func (s *sourceBuilder) decl(lines ...string) {
	if s.b.Len() > 0 {
		s.b.WriteByte('\n')
	}
	for _, l := range lines {
		s.b.WriteString(l)
		s.b.WriteByte('\n')
	}
}

func (s *sourceBuilder) String() string { return s.b.String() }
