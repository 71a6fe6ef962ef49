package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCase(t *testing.T, dir, file, content string) string {
	t.Helper()
	path := filepath.Join(dir, file)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCase_ValidFile(t *testing.T) {
	path := writeCase(t, t.TempDir(), "point.yaml", `
name: point
description: "Point names"
source: |
  package geo

  //iterstruct:derive names
  type Point struct {
      x, y int
  }
types:
  Point: ["dump names=-"]
expect:
  ok: true
  types:
    - type: Point
      names: [x, y]
`)

	c, err := LoadCase(path)
	require.NoError(t, err)
	assert.Equal(t, "point", c.Name)
	assert.Equal(t, "Point names", c.Description)
	assert.Contains(t, c.Source, "type Point struct")
	assert.Equal(t, map[string][]string{"Point": {"dump names=-"}}, c.Types)
	assert.True(t, c.Expect.OK)
	require.Len(t, c.Expect.Types, 1)
	assert.Equal(t, []string{"x", "y"}, c.Expect.Types[0].Names)
	assert.Nil(t, c.Expect.Types[0].Members)
}

func TestLoadCase_EmptyNamesListIsChecked(t *testing.T) {
	c, err := ParseCase([]byte(`
name: empty
description: "Empty"
source: "package e\n"
expect:
  ok: true
  types:
    - type: E
      names: []
`))
	require.NoError(t, err)
	assert.NotNil(t, c.Expect.Types[0].Names)
	assert.Empty(t, c.Expect.Types[0].Names)
}

func TestLoadCase_MissingFile(t *testing.T) {
	_, err := LoadCase(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read case file")
}

func TestParseCase_UnknownField(t *testing.T) {
	_, err := ParseCase([]byte(`
name: typo
description: "Typo"
source: "package p\n"
expct:
  ok: true
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseCase_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\nsource: \"package p\\n\"\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: n\nsource: \"package p\\n\"\n",
			wantErr: "description is required",
		},
		{
			name:    "missing source",
			yaml:    "name: n\ndescription: d\n",
			wantErr: "source is required",
		},
		{
			name:    "ok with diagnostics",
			yaml:    "name: n\ndescription: d\nsource: \"package p\\n\"\nexpect:\n  ok: true\n  diagnostics:\n    - code: E201\n",
			wantErr: "ok cases cannot list diagnostics",
		},
		{
			name:    "failure without diagnostics",
			yaml:    "name: n\ndescription: d\nsource: \"package p\\n\"\nexpect:\n  ok: false\n",
			wantErr: "failing cases must list their diagnostics",
		},
		{
			name:    "type without name",
			yaml:    "name: n\ndescription: d\nsource: \"package p\\n\"\nexpect:\n  ok: true\n  types:\n    - names: [a]\n",
			wantErr: "expect.types[0]: type is required",
		},
		{
			name:    "diagnostic without code",
			yaml:    "name: n\ndescription: d\nsource: \"package p\\n\"\nexpect:\n  ok: false\n  diagnostics:\n    - type: T\n",
			wantErr: "expect.diagnostics[0]: code is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCase([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid case")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCases_SortedAndUnique(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "b.yaml", "name: second\ndescription: d\nsource: \"package p\\n\"\nexpect:\n  ok: true\n")
	writeCase(t, dir, "a.yaml", "name: first\ndescription: d\nsource: \"package p\\n\"\nexpect:\n  ok: true\n")
	writeCase(t, dir, "notes.txt", "ignored")

	cases, err := LoadCases(dir)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "first", cases[0].Name)
	assert.Equal(t, "second", cases[1].Name)

	writeCase(t, dir, "c.yaml", "name: first\ndescription: d\nsource: \"package p\\n\"\nexpect:\n  ok: true\n")
	_, err = LoadCases(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `case name "first" already used by a.yaml`)
}

func TestLoadCases_ReportsFile(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "broken.yaml", "name: [\n")

	_, err := LoadCases(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}
