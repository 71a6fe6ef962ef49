// Package fieldset is the runtime support for code generated by iterstruct.
//
// Generated name-list methods return a Names value built once at package
// initialization. Types that were never run through the generator can use
// Of and Dump instead, which compute the same information through
// reflection. The first Of call for a type pays the reflection cost; the
// result is cached for the life of the process and shared by every later
// call.
package fieldset

import (
	"iter"
	"slices"
	"strings"
)

// Names is an immutable, ordered list of field names.
// The zero value is an empty list.
type Names struct {
	names []string
}

// NewNames returns a Names holding a copy of names.
func NewNames(names ...string) Names {
	return Names{names: slices.Clone(names)}
}

// Len returns the number of names.
func (n Names) Len() int { return len(n.names) }

// At returns the i'th name. It panics if i is out of range.
func (n Names) At(i int) string { return n.names[i] }

// All yields index and name pairs in declaration order.
func (n Names) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, s := range n.names {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Values yields the names in declaration order.
func (n Names) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range n.names {
			if !yield(s) {
				return
			}
		}
	}
}

// Strings returns a copy of the names. The result is never nil.
func (n Names) Strings() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}

// Index returns the position of name, or -1.
func (n Names) Index(name string) int {
	return slices.Index(n.names, name)
}

// Contains reports whether name is in the list.
func (n Names) Contains(name string) bool {
	return n.Index(name) >= 0
}

// String formats the list like a string slice: [x y].
func (n Names) String() string {
	return "[" + strings.Join(n.names, " ") + "]"
}
