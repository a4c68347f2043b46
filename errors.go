// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt

import (
	"errors"
	"fmt"
)

// Error kinds reported by the formatting functions. They are never returned
// as is but wrapped in a *FormatError; use errors.Is to test for them.
var (
	// ErrMalformedDirective reports a grammar violation in a directive. It
	// is detected before any argument is consumed for that directive.
	ErrMalformedDirective = errors.New("malformed directive")
	// ErrArgumentUnderflow reports that the argument list was exhausted.
	ErrArgumentUnderflow = errors.New("missing argument")
	// ErrArgumentType reports an argument whose kind cannot serve the
	// directive consuming it.
	ErrArgumentType = errors.New("wrong argument type")
	// ErrUnrepresentableExponent reports an operand whose exponent is too
	// large for fixed notation. It is an expected outcome for extreme
	// magnitudes, not a programming error.
	ErrUnrepresentableExponent = errors.New("exponent not representable in fixed notation")
	// ErrSinkWrite reports a failed write to the destination.
	ErrSinkWrite = errors.New("write failed")
)

// A FormatError describes a failed formatting call.
type FormatError struct {
	Pos       int    // byte offset in the format string; -1 if not applicable
	Directive string // raw directive text, if any
	Err       error  // wraps one of the Err* kinds
}

func (e *FormatError) Error() string {
	if e.Pos < 0 {
		return "bigfmt: " + e.Err.Error()
	}
	if e.Directive == "" {
		return fmt.Sprintf("bigfmt: at offset %d: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("bigfmt: %q at offset %d: %v", e.Directive, e.Pos, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// malformed returns an ErrMalformedDirective error for the character at pos.
func malformed(tok Segment, pos int, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if pos < len(tok.Text) {
		msg = fmt.Sprintf("%s (%q)", msg, tok.Text[pos])
	}
	return &FormatError{
		Pos:       tok.Pos + pos,
		Directive: tok.Text,
		Err:       fmt.Errorf("%w: %s", ErrMalformedDirective, msg),
	}
}

func argError(d *Directive, kind error, format string, args ...interface{}) error {
	return &FormatError{
		Pos:       d.Pos,
		Directive: d.Raw,
		Err:       fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}
