package fieldset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	p := point{x: 1, y: 2}
	out, err := Dump(p)
	require.NoError(t, err)
	assert.Equal(t, "x: 1\ny: 2\n", out)
}

func TestDumpReflectsMutation(t *testing.T) {
	p := &point{x: 1, y: 2}
	before, err := Dump(p)
	require.NoError(t, err)

	p.x = 10
	after, err := Dump(p)
	require.NoError(t, err)

	assert.Equal(t, "x: 1\ny: 2\n", before)
	assert.Equal(t, "x: 10\ny: 2\n", after)
}

func TestDumpUsesStringer(t *testing.T) {
	out, err := Dump(swatch{Color: 1, Hex: "#00ff00"})
	require.NoError(t, err)
	assert.Equal(t, "Color: green\nHex: #00ff00\n", out)
}

func TestDumpEmpty(t *testing.T) {
	out, err := Dump(struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestDumpErrors(t *testing.T) {
	_, err := Dump(nil)
	assert.ErrorIs(t, err, ErrNotStruct)

	_, err = Dump((*point)(nil))
	assert.ErrorIs(t, err, ErrNotStruct)

	_, err = Dump(3)
	assert.ErrorIs(t, err, ErrNotStruct)

	_, err = Dump(withEmbedded{})
	assert.ErrorIs(t, err, ErrUnnamedField)
}
