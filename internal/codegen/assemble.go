package codegen

import (
	"strings"

	"github.com/roach88/iterstruct/internal/ir"
)

// Assemble merges the fragments synthesized for def into one Augmentation.
//
// The registry is seeded with the record's own fields and with methods,
// the methods already declared on the type. Every member a fragment
// introduces is then claimed in fragment order; the first member claimed
// twice ends the pass with a collision diagnostic and no augmentation.
func Assemble(def *ir.RecordDefinition, methods []string, fragments []*Fragment) (*Augmentation, error) {
	typeName := def.TypeName()
	reg := NewRegistry()

	for _, f := range def.Fields() {
		if err := reg.Claim(typeName, f.Name, "field "+f.Name, def.Pos()); err != nil {
			return nil, err
		}
	}
	for _, m := range methods {
		if err := reg.Claim(typeName, m, "method "+m, def.Pos()); err != nil {
			return nil, err
		}
	}

	aug := &Augmentation{TypeName: typeName, Pos: def.Pos(), Record: def}
	var src strings.Builder
	for _, frag := range fragments {
		for _, m := range frag.Members {
			if err := reg.Claim(typeName, m, frag.Owner(), def.Pos()); err != nil {
				return nil, err
			}
		}
		for _, g := range frag.Globals {
			if err := reg.Claim(PackageScope, g, frag.Owner()+" on "+typeName, def.Pos()); err != nil {
				return nil, err
			}
		}

		aug.Derivations = append(aug.Derivations, frag.Derivation)
		aug.Members = append(aug.Members, frag.Members...)
		aug.Globals = append(aug.Globals, frag.Globals...)
		for _, imp := range frag.Imports {
			aug.Imports = appendImport(aug.Imports, imp)
		}
		if frag.Source == "" {
			continue
		}
		if src.Len() > 0 {
			src.WriteByte('\n')
		}
		src.WriteString(frag.Source)
	}
	aug.Source = src.String()
	return aug, nil
}
