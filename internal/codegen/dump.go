package codegen

import (
	"fmt"
	"strconv"

	"github.com/roach88/iterstruct/internal/ir"
)

// DefaultDumpMethod is the member a dump derivation adds by default.
const DefaultDumpMethod = "Dump"

// omitNames disables the name list a dump derivation emits alongside the dump.
const omitNames = "-"

var dumpVerbs = map[string]bool{"v": true, "+v": true, "#v": true}

type dumpSynthesizer struct{}

func (dumpSynthesizer) Name() string { return DerivationDump }

func (dumpSynthesizer) Check(req ir.Request) error {
	if err := checkOptionKeys(req, "method", "names", "verb"); err != nil {
		return err
	}
	if err := checkIdent(req, "method", DefaultDumpMethod); err != nil {
		return err
	}
	if req.Option("names", DefaultNamesMethod) != omitNames {
		if err := checkIdent(req, "names", DefaultNamesMethod); err != nil {
			return err
		}
	}
	if verb := req.Option("verb", "v"); !dumpVerbs[verb] {
		return fmt.Errorf("option verb=%q must be one of v, +v, #v", verb)
	}
	return nil
}

// Synthesize emits a method formatting every field on its own line as
// "<name>: <value>\n". Values are read at call time through the receiver,
// so the output always reflects the current state of the instance. Each
// value is printed by fmt and therefore by its own String, Format or
// GoString method when it has one. Embedded newlines are not escaped.
func (dumpSynthesizer) Synthesize(def *ir.RecordDefinition, req ir.Request) (*Fragment, error) {
	frag := &Fragment{Derivation: DerivationDump}
	var src sourceBuilder

	if names := req.Option("names", DefaultNamesMethod); names != omitNames {
		writeNameList(&src, frag, def, names)
	}

	typeName := def.TypeName()
	method := req.Option("method", DefaultDumpMethod)
	verb := req.Option("verb", "v")
	doc := fmt.Sprintf("// %s returns one \"name: value\" line per field of %s.", method, typeName)

	if def.Len() == 0 {
		src.decl(
			doc,
			fmt.Sprintf("func (*%s) %s() string {", typeName, method),
			"\treturn \"\"",
			"}",
		)
	} else {
		recv := receiverName(typeName)
		builder := "b"
		if recv == builder {
			builder = "sb"
		}

		lines := []string{
			doc,
			fmt.Sprintf("func (%s *%s) %s() string {", recv, typeName, method),
			fmt.Sprintf("\tvar %s strings.Builder", builder),
		}
		for _, f := range def.Fields() {
			format := strconv.Quote(f.Name + ": %" + verb + "\n")
			lines = append(lines, fmt.Sprintf("\tfmt.Fprintf(&%s, %s, %s)", builder, format, f.Selector(recv)))
		}
		lines = append(lines, fmt.Sprintf("\treturn %s.String()", builder), "}")
		src.decl(lines...)

		frag.Imports = appendImport(frag.Imports, "fmt")
		frag.Imports = appendImport(frag.Imports, "strings")
	}

	frag.Members = append(frag.Members, method)
	frag.Source = src.String()
	return frag, nil
}
