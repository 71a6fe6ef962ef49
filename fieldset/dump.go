package fieldset

import (
	"fmt"
	"reflect"
	"strings"
)

// Dump formats every field of the struct v, or of the struct v points to,
// as "<name>: <value>\n" in declaration order.
//
// Unexported fields are printed through reflection and so bypass their
// String methods; generated Dump methods do not have that limitation.
func Dump(v any) (string, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return "", fmt.Errorf("%w: <nil>", ErrNotStruct)
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", fmt.Errorf("%w: nil %s", ErrNotStruct, rv.Type())
		}
		rv = rv.Elem()
	}
	names, err := OfType(rv.Type())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, name := range names.All() {
		f := rv.Field(i)
		if f.CanInterface() {
			fmt.Fprintf(&b, "%s: %v\n", name, f.Interface())
		} else {
			fmt.Fprintf(&b, "%s: %v\n", name, f)
		}
	}
	return b.String(), nil
}
