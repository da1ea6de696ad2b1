// Package option holds a value that may be absent, without using a sentinel
// value of the payload type to mean "absent".
//
// It is the usual way to carry the result of a cache lookup further:
//
//	v := option.FromLookup(cache.Get(key))
//	n := v.ValueOr(fallback)
package option

import (
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/pkg/errors"

	"github.com/venkatsvpr/lrucache/internal/nilable"
)

var (
	// ErrNilValue is returned by Some for a nil payload.
	ErrNilValue = fmt.Errorf("%w: option value must not be nil", errdefs.ErrInvalidArgument)

	// ErrEmptyValue is returned by Value on an empty Option.
	ErrEmptyValue = fmt.Errorf("%w: option does not have a value", errdefs.ErrFailedPrecondition)
)

// Option is either empty or holds one value of type T. The zero Option is
// empty.
type Option[T any] struct {
	value    T
	hasValue bool
}

// Some returns an Option holding v. It fails with ErrNilValue when T can be
// nil and v is nil.
func Some[T any](v T) (Option[T], error) {
	if nilable.Kind[T]() && nilable.IsNil(v) {
		return Option[T]{}, errors.Wrapf(ErrNilValue, "Some[%T]", v)
	}
	return Option[T]{value: v, hasValue: true}, nil
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromLookup converts a (value, ok) pair, as returned by map-like lookups,
// into an Option. The value is ignored when ok is false.
func FromLookup[T any](v T, ok bool) Option[T] {
	if !ok {
		return None[T]()
	}
	return Option[T]{value: v, hasValue: true}
}

// HasValue reports whether o holds a value.
func (o Option[T]) HasValue() bool {
	return o.hasValue
}

// Value returns the held value, or ErrEmptyValue.
func (o Option[T]) Value() (T, error) {
	if !o.hasValue {
		var zero T
		return zero, errors.WithStack(ErrEmptyValue)
	}
	return o.value, nil
}

// Get returns the held value and true, or the zero value and false.
func (o Option[T]) Get() (T, bool) {
	if !o.hasValue {
		var zero T
		return zero, false
	}
	return o.value, true
}

// ValueOrDefault returns the held value or the zero value of T.
func (o Option[T]) ValueOrDefault() T {
	v, _ := o.Get()
	return v
}

// ValueOr returns the held value or fallback.
func (o Option[T]) ValueOr(fallback T) T {
	if !o.hasValue {
		return fallback
	}
	return o.value
}

func (o Option[T]) String() string {
	if !o.hasValue {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Equal reports whether a and b are both empty, or both hold equal values.
func Equal[T comparable](a, b Option[T]) bool {
	if a.hasValue != b.hasValue {
		return false
	}
	return !a.hasValue || a.value == b.value
}
