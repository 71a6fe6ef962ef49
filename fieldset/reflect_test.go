package fieldset

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type point struct {
	x, y int
}

type labeled struct {
	Label string
	value float64
	Tags  []string
}

type base struct{ ID int }

type withEmbedded struct {
	base
	Name string
}

type withBlank struct {
	A int
	_ [4]byte
}

type color int

func (c color) String() string { return [...]string{"red", "green"}[c] }

type swatch struct {
	Color color
	Hex   string
}

func TestOf(t *testing.T) {
	n, err := Of[point]()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, n.Strings())

	n, err = Of[labeled]()
	require.NoError(t, err)
	assert.Equal(t, []string{"Label", "value", "Tags"}, n.Strings())
}

func TestOfPointer(t *testing.T) {
	n, err := Of[*point]()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, n.Strings())
}

func TestOfEmptyStruct(t *testing.T) {
	n, err := Of[struct{}]()
	require.NoError(t, err)
	assert.Equal(t, 0, n.Len())
}

func TestOfRejects(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want error
		msg  string
	}{
		{"enum", reflect.TypeFor[color](), ErrNotStruct, "is int"},
		{"interface", reflect.TypeFor[error](), ErrNotStruct, "is interface"},
		{"nil", nil, ErrNotStruct, "<nil>"},
		{"embedded", reflect.TypeFor[withEmbedded](), ErrUnnamedField, "embedded field fieldset.base"},
		{"blank", reflect.TypeFor[withBlank](), ErrUnnamedField, "blank field at index 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OfType(tt.typ)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestOfTypeMemoized(t *testing.T) {
	typ := reflect.TypeFor[labeled]()
	first, err := OfType(typ)
	require.NoError(t, err)

	cached, ok := cache.Load(typ)
	require.True(t, ok)
	assert.Equal(t, first, cached.(*cacheEntry).names)

	second, err := OfType(typ)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOfTypeConcurrent(t *testing.T) {
	type concurrent struct{ A, B, C string }
	typ := reflect.TypeFor[concurrent]()

	var wg sync.WaitGroup
	results := make([]Names, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := OfType(typ)
			assert.NoError(t, err)
			results[i] = n
		}()
	}
	wg.Wait()

	for _, n := range results {
		assert.Equal(t, []string{"A", "B", "C"}, n.Strings())
	}
}
