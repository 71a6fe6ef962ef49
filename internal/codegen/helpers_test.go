package codegen

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/iterstruct/internal/compiler"
	"github.com/roach88/iterstruct/internal/ir"
)

// record builds a definition whose fields are all of type int.
func record(name string, fields ...string) *ir.RecordDefinition {
	decl := make([]ir.DeclField, len(fields))
	for i, f := range fields {
		decl[i] = ir.DeclField{Name: f, Type: "int"}
	}
	pos := token.Position{Filename: "point.go", Line: 7, Column: 6}
	return ir.NewRecordDefinition(name, pos, compiler.Extract(decl))
}

func request(derivation string, kv ...string) ir.Request {
	req := ir.Request{Derivation: derivation}
	if len(kv) > 0 {
		req.Options = make(map[string]string)
		for i := 0; i+1 < len(kv); i += 2 {
			req.Options[kv[i]] = kv[i+1]
		}
	}
	return req
}

func synthesize(t *testing.T, def *ir.RecordDefinition, req ir.Request) *Fragment {
	t.Helper()
	s, ok := Lookup(req.Derivation)
	require.True(t, ok, "derivation %q", req.Derivation)
	require.NoError(t, s.Check(req))
	frag, err := s.Synthesize(def, req)
	require.NoError(t, err)
	return frag
}
