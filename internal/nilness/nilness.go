// Package nilness reports whether generic values hold nil.
//
// Type parameters cannot be compared against nil directly, so the check goes
// through reflection for the kinds that can be nil (pointers, maps, slices,
// channels, functions, interfaces).
package nilness

import "reflect"

// IsNil reports whether v is nil or a nil value of a nillable kind.
// Value types such as int or struct are never nil.
func IsNil[E any](v E) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// Index returns the index of the first nil element in s, or -1.
func Index[E any](s []E) int {
	for i, v := range s {
		if IsNil(v) {
			return i
		}
	}
	return -1
}
