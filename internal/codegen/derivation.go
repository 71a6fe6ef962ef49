package codegen

import (
	"fmt"
	"go/token"
	"slices"
	"sort"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/iterstruct/internal/ir"
)

// Synthesizer produces one derivation's fragment for a record.
type Synthesizer interface {
	// Name is the derivation name used in directives.
	Name() string

	// Check validates the request options without looking at a record.
	Check(req ir.Request) error

	// Synthesize emits the fragment. The request must have passed Check.
	Synthesize(def *ir.RecordDefinition, req ir.Request) (*Fragment, error)
}

var synthesizers = map[string]Synthesizer{
	DerivationNames: namesSynthesizer{},
	DerivationDump:  dumpSynthesizer{},
}

// Lookup returns the synthesizer registered for derivation.
func Lookup(derivation string) (Synthesizer, bool) {
	s, ok := synthesizers[derivation]
	return s, ok
}

// Derivations lists the known derivation names, sorted.
func Derivations() []string {
	names := make([]string, 0, len(synthesizers))
	for n := range synthesizers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CheckRequest validates req against its synthesizer.
func CheckRequest(req ir.Request) error {
	s, ok := Lookup(req.Derivation)
	if !ok {
		return fmt.Errorf("unknown derivation %q (known: %v)", req.Derivation, Derivations())
	}
	return s.Check(req)
}

func checkOptionKeys(req ir.Request, allowed ...string) error {
	keys := make([]string, 0, len(req.Options))
	for k := range req.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !slices.Contains(allowed, k) {
			return fmt.Errorf("derivation %q does not accept option %q", req.Derivation, k)
		}
	}
	return nil
}

func checkIdent(req ir.Request, key, def string) error {
	name := req.Option(key, def)
	if !token.IsIdentifier(name) || name == "_" {
		return fmt.Errorf("option %s=%q is not a valid Go identifier", key, name)
	}
	return nil
}

// receiverName derives a short receiver name from a type name.
func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "r"
	}
	return string(unicode.ToLower(r))
}

// globalName is the package-level variable holding a type's name list.
// The type name is length-prefixed so that distinct (type, member) pairs
// never share a variable: A_B with C is _3A_B_C, A with B_C is _1A_B_C.
func globalName(typeName, member string) string {
	return "_" + strconv.Itoa(len(typeName)) + typeName + "_" + member
}
