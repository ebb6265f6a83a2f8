// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"errors"
	"fmt"
	"io"
)

var errInvalidFormat = errors.New("tiffmeta: invalid format")

// InvalidFormatError is used when the TIFF structure is invalid,
// e.g. an unknown byte order marker or a bad magic number.
type InvalidFormatError struct {
	Err error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s: %s", errInvalidFormat, e.Err)
}

// Is reports whether the target error is an InvalidFormatError.
func (e *InvalidFormatError) Is(target error) bool {
	_, ok := target.(*InvalidFormatError)
	return ok
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

func newInvalidFormatError(err error) error {
	return &InvalidFormatError{Err: err}
}

func newInvalidFormatErrorf(format string, args ...any) error {
	return newInvalidFormatError(fmt.Errorf(format, args...))
}

// IsInvalidFormat reports whether the error was an InvalidFormatError.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, new(InvalidFormatError))
}

// A read that comes back short is always unexpected here;
// the decoder knows exactly how many bytes it needs.
func normalizeReadErr(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
