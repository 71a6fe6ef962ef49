package ir

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDefinitionImmutable(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "x", Index: 0, Accessor: "x", Type: "int"},
		{Name: "y", Index: 1, Accessor: "y", Type: "int"},
	}
	def := NewRecordDefinition("Point", token.Position{Filename: "point.go", Line: 3}, fields)

	// Mutating the input slice does not leak into the definition.
	fields[0].Name = "changed"
	assert.Equal(t, "x", def.Field(0).Name)

	// Mutating a returned copy does not leak either.
	got := def.Fields()
	got[1].Name = "changed"
	assert.Equal(t, "y", def.Field(1).Name)

	assert.Equal(t, "Point", def.TypeName())
	assert.Equal(t, 2, def.Len())
	assert.Equal(t, []string{"x", "y"}, def.Names())
	assert.Equal(t, 3, def.Pos().Line)
}

func TestRecordDefinitionEmpty(t *testing.T) {
	def := NewRecordDefinition("Empty", token.Position{}, nil)
	assert.Equal(t, 0, def.Len())
	assert.Empty(t, def.Names())
	assert.NotNil(t, def.Names())
}

func TestFieldDescriptorSelector(t *testing.T) {
	f := FieldDescriptor{Name: "x", Accessor: "x"}
	assert.Equal(t, "p.x", f.Selector("p"))
}

func TestDeclFieldUnnamed(t *testing.T) {
	tests := []struct {
		name  string
		field DeclField
		want  bool
	}{
		{"named", DeclField{Name: "x", Type: "int"}, false},
		{"embedded", DeclField{Name: "Base", Type: "Base", Embedded: true}, true},
		{"blank", DeclField{Name: "_", Type: "int"}, true},
		{"empty", DeclField{Type: "int"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Unnamed())
		})
	}
}

func TestRequestOption(t *testing.T) {
	r := Request{Derivation: "dump", Options: map[string]string{"method": "Debug"}}
	assert.Equal(t, "Debug", r.Option("method", "Dump"))
	assert.Equal(t, "FieldNames", r.Option("names", "FieldNames"))

	var empty Request
	assert.Equal(t, "v", empty.Option("verb", "v"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "record", KindRecord.String())
	assert.Equal(t, "enum", KindEnum.String())
	assert.Equal(t, "union", KindUnion.String())
	assert.Equal(t, "alias", KindAlias.String())
	assert.Equal(t, "other", KindOther.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

type kindNamer struct{}

func (kindNamer) VisitRecord(*Declaration) string { return "record" }
func (kindNamer) VisitEnum(*Declaration) string   { return "enum" }
func (kindNamer) VisitUnion(*Declaration) string  { return "union" }
func (kindNamer) VisitAlias(*Declaration) string  { return "alias" }
func (kindNamer) VisitOther(*Declaration) string  { return "other" }

func TestAcceptDispatch(t *testing.T) {
	for _, k := range []Kind{KindRecord, KindEnum, KindUnion, KindAlias, KindOther} {
		got := Accept[string](&Declaration{Kind: k}, kindNamer{})
		require.Equal(t, k.String(), got)
	}
	assert.Equal(t, "other", Accept[string](&Declaration{Kind: Kind(99)}, kindNamer{}))
}
