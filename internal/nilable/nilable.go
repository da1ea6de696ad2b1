// Package nilable answers whether a type parameter can hold nil.
//
// Callers compute Kind once for a type and only pay for IsNil when the
// answer is true, so value types such as int or string never go through a
// runtime nil comparison.
package nilable

import "reflect"

// Kind reports whether values of T can be nil.
func Kind[T any]() bool {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Interface,
		reflect.Chan, reflect.Func, reflect.Map, reflect.Slice:
		return true
	}
	return false
}

// IsNil reports whether v is nil. It is false for every value of a type for
// which Kind is false.
func IsNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		// nil interface
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Interface,
		reflect.Chan, reflect.Func, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
