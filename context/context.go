// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package context provides printing contexts with sticky errors.
//
// A Context wraps a bigfmt.Printer: it carries a default rounding mode, a
// grouping separator and a fixed notation limit, and it catches formatting
// errors. Once a call has failed, further calls with the context are no-ops
// (they return an empty result) until (*Context).Err is called to check for
// errors. This lets a sequence of formatting calls be checked once:
//
//	ctx := context.New(bigfmt.ToZero)
//	a := ctx.Sprintf("%.10Rf", bigfmt.Float(x))
//	b := ctx.Sprintf("%Zx", bigfmt.BigInt(n))
//	if err := ctx.Err(); err != nil {
//		return err
//	}
package context

import (
	"io"

	"github.com/db47h/bigfmt"
)

const stickyErrors = true

// A Context is a wrapper around a bigfmt.Printer that facilitates management
// of rounding modes and error handling.
type Context struct {
	p   bigfmt.Printer
	err error
}

// New creates a new context with the given default rounding mode.
func New(mode bigfmt.RoundingMode) *Context {
	return new(Context).SetMode(mode)
}

// Mode returns the default rounding mode of c.
func (c *Context) Mode() bigfmt.RoundingMode {
	return c.p.Mode
}

// SetMode sets c's default rounding mode to mode and returns c.
func (c *Context) SetMode(mode bigfmt.RoundingMode) *Context {
	c.p.Mode = mode
	return c
}

// SetSeparator sets the digit grouping separator and returns c.
func (c *Context) SetSeparator(sep string) *Context {
	c.p.Separator = sep
	return c
}

// SetMaxFixedExp sets the largest binary exponent accepted by fixed notation
// and returns c. If e <= 0, it is set to bigfmt.DefaultMaxFixedExp.
func (c *Context) SetMaxFixedExp(e int) *Context {
	if e <= 0 {
		e = bigfmt.DefaultMaxFixedExp
	}
	c.p.MaxFixedExp = e
	return c
}

// Printer returns a copy of the printer configured by c.
func (c *Context) Printer() bigfmt.Printer {
	return c.p
}

// Fprintf is like bigfmt.Fprintf using c's settings. It returns -1 if the
// call fails or if c holds an error.
func (c *Context) Fprintf(w io.Writer, format string, args ...bigfmt.Arg) int {
	if stickyErrors {
		if c.err != nil {
			return -1
		}
	}
	n, err := c.p.Fprintf(w, format, args...)
	c.catch(err)
	return n
}

// Sprintf is like bigfmt.Sprintf using c's settings. On failure, it returns
// the output produced before the failing directive.
func (c *Context) Sprintf(format string, args ...bigfmt.Arg) string {
	if stickyErrors {
		if c.err != nil {
			return ""
		}
	}
	s, err := c.p.Sprintf(format, args...)
	c.catch(err)
	return s
}

// Appendf is like bigfmt.Appendf using c's settings. It returns dst unchanged
// if c holds an error.
func (c *Context) Appendf(dst []byte, format string, args ...bigfmt.Arg) []byte {
	if stickyErrors {
		if c.err != nil {
			return dst
		}
	}
	b, err := c.p.Appendf(dst, format, args...)
	c.catch(err)
	return b
}

func (c *Context) catch(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

// Err returns the first error encountered since the last call to Err and clears
// the error state.
func (c *Context) Err() (err error) {
	err = c.err
	c.err = nil
	return
}
