package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/iterstruct/internal/codegen"
)

func TestCheckExampleIsUpToDate(t *testing.T) {
	out, err := execute(t, "check", geoDir)
	require.NoError(t, err)
	assert.Equal(t, "✓ geo: up to date\n", out)
}

func TestCheckMissing(t *testing.T) {
	dir := copyGeo(t)

	out, err := execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "is missing")
}

func TestCheckStale(t *testing.T) {
	dir := copyGeo(t)
	_, err := execute(t, "generate", dir)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "point.go"), `package geo

//iterstruct:derive names
type Point struct{ x, y, z int }
`)
	out, err := execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "is stale")
}

func TestCheckLeftover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), "package a\n\ntype A struct{}\n")
	writeFile(t, filepath.Join(dir, codegen.DefaultOutput), codegen.Header+"\n\npackage a\n")

	out, err := execute(t, "--format", "json", "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `"status": "stale"`)
}

func TestCheckDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), `package a

//iterstruct:derive names
type Base struct{ id int }

//iterstruct:derive names
type A struct {
	Base
	name string
}
`)

	out, err := execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E202: names can only be derived for structs with named fields; A has embedded field Base")
}

func TestCheckAfterGenerate(t *testing.T) {
	dirs := []string{copyGeo(t), copyGeo(t)}
	_, err := execute(t, append([]string{"generate"}, dirs...)...)
	require.NoError(t, err)

	out, err := execute(t, append([]string{"check"}, dirs...)...)
	require.NoError(t, err)
	assert.Equal(t, "✓ geo: up to date\n✓ geo: up to date\n", out)
}
