// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error handling helpers,
// extending the standard library errors package with logging
// helpers and the error kinds shared by the scene graph packages.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

// The error kinds returned by the slot, transform, tree and scene packages.
// They are always wrapped with a more specific message, so callers should
// test for them with [Is].
var (
	// ErrKey indicates a missing attribute, slot or child name,
	// or a duplicate one where names must be unique.
	ErrKey = errors.New("key error")

	// ErrIndex indicates an out-of-range array or list index.
	ErrIndex = errors.New("index error")

	// ErrType indicates an incompatible value type, such as connecting
	// slots of different types or assigning the wrong kind of value
	// into a type-erased slot.
	ErrType = errors.New("type error")

	// ErrValue indicates an invalid value: degenerate or singular
	// transforms, constraint-forbidden resizes, and invalid tree edits.
	ErrValue = errors.New("value error")
)

// ErrUnsupported is the standard [errors.ErrUnsupported].
var ErrUnsupported = errors.ErrUnsupported

// New is the standard [errors.New].
func New(text string) error {
	return errors.New(text)
}

// Is is the standard [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is the standard [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is the standard [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap is the standard [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Log takes the given error and logs it if it is non-nil.
// The intended usage is:
//
//	return errors.Log(MyFunc(v))
//	// or
//	return errors.Log(err)
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 takes the given value and error and returns the value if
// the error is nil, and logs the error and returns the value otherwise.
// The intended usage is:
//
//	a := errors.Log1(MyFunc(v))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must takes the given error and panics if it is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 takes the given value and error and returns the value if
// the error is nil, and panics otherwise.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Ignore1 ignores an error return value for a function returning
// a value and an error, allowing direct usage of the value.
// It should only be used when the error can not occur or does not matter.
func Ignore1[T any](v T, err error) T {
	return v
}

// CallerInfo returns string information about the caller
// of the function that called CallerInfo.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s %s:%d", runtime.FuncForPC(pc).Name(), filepath.Base(file), line)
}
