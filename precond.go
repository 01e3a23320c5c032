package gutil

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/floppywaste/gutil/errdefs"
)

// CheckNotNil returns v, or an [errdefs.ErrNullArgument] error if v is nil.
// A nil pointer, map, slice, channel, func or interface is nil. The message
// is formatted from format and args when given.
//
//	name, err := gutil.CheckNotNil(p, "name of %s", user)
func CheckNotNil[T any](v T, format string, args ...any) (T, error) {
	if isNil(v) {
		return v, newError(errdefs.ErrNullArgument, format, args)
	}
	return v, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// CheckState returns an [errdefs.ErrIllegalState] error unless ok.
func CheckState(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return newError(errdefs.ErrIllegalState, format, args)
}

// CheckArgument returns an [errdefs.ErrInvalidArgument] error unless ok.
func CheckArgument(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return newError(errdefs.ErrInvalidArgument, format, args)
}

// CheckElementIndex returns an [errdefs.ErrInvalidArgument] error unless
// 0 <= index < size.
func CheckElementIndex(index, size int) error {
	switch {
	case size < 0:
		return errors.Wrapf(errdefs.ErrInvalidArgument, "negative size: %d", size)
	case index < 0:
		return errors.Wrapf(errdefs.ErrInvalidArgument, "index (%d) must not be negative", index)
	case index >= size:
		return errors.Wrapf(errdefs.ErrInvalidArgument, "index (%d) must be less than size (%d)", index, size)
	}
	return nil
}

func newError(kind error, format string, args []any) error {
	if format == "" {
		return kind
	}
	return errors.Wrapf(kind, format, args...)
}
