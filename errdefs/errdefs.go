// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package errdefs defines the error kinds returned by the gutil packages.
//
// Each kind is a sentinel that can be matched with [errors.Is]. Kinds also
// unwrap to the matching class from [github.com/containerd/errdefs], so
// callers that classify errors with cerrdefs.IsInvalidArgument and friends
// do not need to know about this package.
package errdefs

import (
	"errors"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
)

type kind struct {
	msg   string
	class error
}

func (k *kind) Error() string { return k.msg }
func (k *kind) Unwrap() error { return k.class }

var (
	// ErrNullArgument is returned when a required value is absent.
	ErrNullArgument error = &kind{"null argument", cerrdefs.ErrInvalidArgument}

	// ErrMalformedPair is returned when a key-value entry does not split
	// into exactly one key and one value.
	ErrMalformedPair error = &kind{"malformed key-value pair", cerrdefs.ErrInvalidArgument}

	// ErrDuplicateKey is returned when a unique index sees the same key twice.
	ErrDuplicateKey error = &kind{"duplicate key", cerrdefs.ErrAlreadyExists}

	// ErrInvalidArgument is returned for out of range or otherwise
	// unusable arguments, e.g. a non-positive partition size.
	ErrInvalidArgument error = &kind{"invalid argument", cerrdefs.ErrInvalidArgument}

	// ErrParse is returned when text cannot be parsed, e.g. a non-numeric
	// CSV value.
	ErrParse error = &kind{"parse error", cerrdefs.ErrInvalidArgument}

	// ErrIO is returned for read and write faults.
	ErrIO error = &kind{"i/o error", cerrdefs.ErrUnknown}

	// ErrDecode is returned for malformed encoded input.
	ErrDecode error = &kind{"decode error", cerrdefs.ErrInvalidArgument}

	// ErrIllegalState is returned when an operation is attempted while the
	// caller's state does not allow it.
	ErrIllegalState error = &kind{"illegal state", cerrdefs.ErrFailedPrecondition}
)

// ioError ties an I/O cause to ErrIO without hiding the cause: both
// errors.Is(err, ErrIO) and errors.Is(err, fs.ErrNotExist) hold.
type ioError struct {
	msg   string
	cause error
}

func (e *ioError) Error() string {
	if e.msg == "" {
		return ErrIO.Error() + ": " + e.cause.Error()
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *ioError) Is(target error) bool { return target == ErrIO }
func (e *ioError) Unwrap() error        { return e.cause }

// IO wraps err as an ErrIO. It returns nil if err is nil and returns err
// unchanged if it is already an ErrIO.
func IO(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrIO) {
		return err
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &ioError{msg: msg, cause: err}
}

// IsNullArgument returns true if err is an ErrNullArgument.
func IsNullArgument(err error) bool { return errors.Is(err, ErrNullArgument) }

// IsMalformedPair returns true if err is an ErrMalformedPair.
func IsMalformedPair(err error) bool { return errors.Is(err, ErrMalformedPair) }

// IsDuplicateKey returns true if err is an ErrDuplicateKey.
func IsDuplicateKey(err error) bool { return errors.Is(err, ErrDuplicateKey) }

// IsInvalidArgument returns true if err is an ErrInvalidArgument. Other
// kinds classified as invalid arguments (ErrParse, ErrDecode, ...) do not
// match; use cerrdefs.IsInvalidArgument for the broad class.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsParse returns true if err is an ErrParse.
func IsParse(err error) bool { return errors.Is(err, ErrParse) }

// IsIO returns true if err is an ErrIO.
func IsIO(err error) bool { return errors.Is(err, ErrIO) }

// IsDecode returns true if err is an ErrDecode.
func IsDecode(err error) bool { return errors.Is(err, ErrDecode) }

// IsIllegalState returns true if err is an ErrIllegalState.
func IsIllegalState(err error) bool { return errors.Is(err, ErrIllegalState) }
