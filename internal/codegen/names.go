package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/iterstruct/internal/ir"
)

// Derivation names.
const (
	DerivationNames = "names"
	DerivationDump  = "dump"
)

// DefaultNamesMethod is the member a name-list derivation adds by default.
const DefaultNamesMethod = "FieldNames"

type namesSynthesizer struct{}

func (namesSynthesizer) Name() string { return DerivationNames }

func (namesSynthesizer) Check(req ir.Request) error {
	if err := checkOptionKeys(req, "method"); err != nil {
		return err
	}
	return checkIdent(req, "method", DefaultNamesMethod)
}

func (namesSynthesizer) Synthesize(def *ir.RecordDefinition, req ir.Request) (*Fragment, error) {
	frag := &Fragment{Derivation: DerivationNames}
	var src sourceBuilder
	writeNameList(&src, frag, def, req.Option("method", DefaultNamesMethod))
	frag.Source = src.String()
	return frag, nil
}

// writeNameList emits the package-level name list of def and the
// value-receiver method returning it. The list is built once at package
// initialization; the method only returns the shared read-only view.
func writeNameList(src *sourceBuilder, frag *Fragment, def *ir.RecordDefinition, method string) {
	typeName := def.TypeName()
	global := globalName(typeName, method)

	quoted := make([]string, def.Len())
	for i := range quoted {
		quoted[i] = strconv.Quote(def.Field(i).Name)
	}

	src.decl(fmt.Sprintf("var %s = fieldset.NewNames(%s)", global, strings.Join(quoted, ", ")))
	src.decl(
		fmt.Sprintf("// %s returns the field names of %s in declaration order.", method, typeName),
		fmt.Sprintf("func (%s) %s() fieldset.Names {", typeName, method),
		fmt.Sprintf("\treturn %s", global),
		"}",
	)

	frag.Members = append(frag.Members, method)
	frag.Globals = append(frag.Globals, global)
	frag.Imports = appendImport(frag.Imports, RuntimeImport)
}

func appendImport(imports []string, path string) []string {
	for _, p := range imports {
		if p == path {
			return imports
		}
	}
	return append(imports, path)
}
