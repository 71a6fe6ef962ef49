package compiler

import (
	"errors"
	"fmt"
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/iterstruct/internal/ir"
)

func declPos(line int) token.Position {
	return token.Position{Filename: "types.go", Line: line, Column: 6}
}

func recordDecl(name string, fields ...ir.DeclField) *ir.Declaration {
	return &ir.Declaration{Name: name, Kind: ir.KindRecord, Fields: fields, Pos: declPos(3)}
}

func named(name, typ string) ir.DeclField {
	return ir.DeclField{Name: name, Type: typ}
}

func TestValidateRecord(t *testing.T) {
	def, err := Validate(recordDecl("Point", named("x", "int"), named("y", "int")), "names")
	require.NoError(t, err)

	assert.Equal(t, "Point", def.TypeName())
	assert.Equal(t, []string{"x", "y"}, def.Names())
	assert.Equal(t, 3, def.Pos().Line)
}

func TestValidateNFields(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 32} {
		t.Run(fmt.Sprintf("fields_%d", n), func(t *testing.T) {
			var fields []ir.DeclField
			var want []string
			for i := 0; i < n; i++ {
				name := fmt.Sprintf("f%d", i+1)
				fields = append(fields, named(name, "string"))
				want = append(want, name)
			}

			def, err := Validate(recordDecl("R", fields...), "names")
			require.NoError(t, err)
			assert.Equal(t, n, def.Len())
			if n == 0 {
				assert.Empty(t, def.Names())
				return
			}
			assert.Equal(t, want, def.Names())
		})
	}
}

func TestValidateRejectsNonRecords(t *testing.T) {
	tests := []struct {
		kind ir.Kind
		want string
	}{
		{ir.KindEnum, "Color is an enum"},
		{ir.KindUnion, "Color is an interface (union) type"},
		{ir.KindAlias, "Color is a type alias"},
		{ir.KindOther, "Color is a non-struct type"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			decl := &ir.Declaration{Name: "Color", Kind: tt.kind, Pos: declPos(9)}
			def, err := Validate(decl, "dump")
			require.Error(t, err)
			assert.Nil(t, def)

			assert.True(t, IsShapeError(err))
			assert.False(t, IsUnsupportedFieldsError(err))

			d, ok := AsDiagnostic(err)
			require.True(t, ok)
			assert.Equal(t, KindShape, d.Kind)
			assert.Equal(t, ErrCodeShape, d.Code)
			assert.Equal(t, "Color", d.TypeName)
			assert.Equal(t, "dump", d.Derivation)
			assert.Equal(t, 9, d.Pos.Line)
			assert.Contains(t, d.Message, tt.want)
			assert.Contains(t, d.Message, "dump can only be derived for structs")
		})
	}
}

func TestValidateRejectsGenericRecord(t *testing.T) {
	decl := recordDecl("Pair", named("a", "T"), named("b", "T"))
	decl.TypeParams = 1

	_, err := Validate(decl, "names")
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
	assert.Contains(t, err.Error(), "generic structs are not supported")
}

func TestValidateRejectsUnnamedFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []ir.DeclField
		want   string
	}{
		{
			name:   "embedded",
			fields: []ir.DeclField{named("id", "int"), {Type: "Base", Embedded: true}},
			want:   "has embedded field Base",
		},
		{
			name:   "embedded pointer",
			fields: []ir.DeclField{{Name: "Base", Type: "*Base", Embedded: true}},
			want:   "has embedded field *Base",
		},
		{
			name:   "blank",
			fields: []ir.DeclField{named("id", "int"), named("_", "[4]byte")},
			want:   "has blank field at index 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(recordDecl("Wrapper", tt.fields...), "names")
			require.Error(t, err)
			assert.True(t, IsUnsupportedFieldsError(err))
			assert.True(t, errors.Is(err, ErrUnsupportedFields))
			assert.False(t, IsShapeError(err))
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "structs with named fields")
		})
	}
}

func TestValidateUnnamedFieldPosition(t *testing.T) {
	fieldPos := token.Position{Filename: "types.go", Line: 5, Column: 2}
	decl := recordDecl("Wrapper", ir.DeclField{Type: "Base", Embedded: true, Pos: fieldPos})

	_, err := Validate(decl, "names")
	d, ok := AsDiagnostic(err)
	require.True(t, ok)
	assert.Equal(t, fieldPos, d.Pos)
	assert.Equal(t, "types.go:5:2", d.Location())
}

func TestExtractPreservesOrder(t *testing.T) {
	fields := []ir.DeclField{
		named("zeta", "string"),
		named("alpha", "int"),
		named("mid", "[]byte"),
	}

	got := Extract(fields)
	want := []ir.FieldDescriptor{
		{Name: "zeta", Index: 0, Accessor: "zeta", Type: "string"},
		{Name: "alpha", Index: 1, Accessor: "alpha", Type: "int"},
		{Name: "mid", Index: 2, Accessor: "mid", Type: "[]byte"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractDoesNotDeduplicate(t *testing.T) {
	got := Extract([]ir.DeclField{named("a", "int"), named("a", "int")})
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 1, got[1].Index)
}

func TestExtractEmpty(t *testing.T) {
	got := Extract(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
