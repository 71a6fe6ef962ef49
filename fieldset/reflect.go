package fieldset

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNotStruct is returned for types that are not structs.
	ErrNotStruct = errors.New("fieldset: not a struct type")

	// ErrUnnamedField is returned for structs with embedded or blank fields.
	ErrUnnamedField = errors.New("fieldset: struct has unnamed fields")
)

type cacheEntry struct {
	names Names
	err   error
}

// cache maps reflect.Type to *cacheEntry. Entries are never removed.
var cache sync.Map

// Of returns the field names of T in declaration order.
func Of[T any]() (Names, error) {
	return OfType(reflect.TypeFor[T]())
}

// OfType returns the field names of the struct type t, or of the struct t
// points to. Results, including errors, are memoized per type.
func OfType(t reflect.Type) (Names, error) {
	if t == nil {
		return Names{}, fmt.Errorf("%w: <nil>", ErrNotStruct)
	}
	if e, ok := cache.Load(t); ok {
		ce := e.(*cacheEntry)
		return ce.names, ce.err
	}
	names, err := compute(t)
	e, _ := cache.LoadOrStore(t, &cacheEntry{names: names, err: err})
	ce := e.(*cacheEntry)
	return ce.names, ce.err
}

func compute(t reflect.Type) (Names, error) {
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return Names{}, fmt.Errorf("%w: %s is %s", ErrNotStruct, t, st.Kind())
	}

	names := make([]string, st.NumField())
	for i := range names {
		f := st.Field(i)
		if f.Anonymous {
			return Names{}, fmt.Errorf("%w: %s has embedded field %s", ErrUnnamedField, st, f.Type)
		}
		if f.Name == "_" {
			return Names{}, fmt.Errorf("%w: %s has blank field at index %d", ErrUnnamedField, st, i)
		}
		names[i] = f.Name
	}
	return Names{names: names}, nil
}
