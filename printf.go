// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt

import (
	"io"
	"os"
	"strings"
)

// A Printer formats text according to a format string. The zero value is
// ready to use: it rounds to nearest-even, groups digits with commas and
// accepts binary exponents up to DefaultMaxFixedExp in fixed notation.
//
// A Printer holds no state across calls and can be used concurrently.
type Printer struct {
	// Mode is the rounding mode of R conversions that select none.
	Mode RoundingMode
	// Separator is inserted between groups of three integer digits by the '
	// flag. The default is ",".
	Separator string
	// MaxFixedExp is the largest binary exponent accepted by the f and F
	// conversions of extended floats; larger operands fail with
	// ErrUnrepresentableExponent. Without a precision, the magnitude of
	// negative exponents is limited too. 0 means DefaultMaxFixedExp.
	MaxFixedExp int
}

var std Printer

// Fprintf formats according to format and writes to w. It returns the number
// of bytes written, or -1 and a *FormatError on failure. Output produced
// before the failing directive is not rolled back.
func (p *Printer) Fprintf(w io.Writer, format string, args ...Arg) (int, error) {
	s := sink{w: w}
	if err := p.print(&s, format, args); err != nil {
		return -1, err
	}
	return int(s.n), nil
}

// Printf is like Fprintf but writes to os.Stdout.
func (p *Printer) Printf(format string, args ...Arg) (int, error) {
	return p.Fprintf(os.Stdout, format, args...)
}

// Sprintf formats according to format and returns the resulting string. On
// failure, the string holds the output produced before the failing directive.
func (p *Printer) Sprintf(format string, args ...Arg) (string, error) {
	var sb strings.Builder
	_, err := p.Fprintf(&sb, format, args...)
	return sb.String(), err
}

// Snprintf formats into buf, writing at most len(buf) bytes. It returns the
// number of bytes the complete output has, which may exceed len(buf).
func (p *Printer) Snprintf(buf []byte, format string, args ...Arg) (int, error) {
	return p.Fprintf(&truncWriter{buf: buf}, format, args...)
}

// Appendf formats according to format and appends the result to dst.
func (p *Printer) Appendf(dst []byte, format string, args ...Arg) ([]byte, error) {
	w := appendWriter{buf: dst}
	_, err := p.Fprintf(&w, format, args...)
	return w.buf, err
}

// print walks the format string left to right. Literal text goes straight to
// the sink; directives are parsed, bound to their arguments, rendered and
// padded. Count directives skip rendering.
func (p *Printer) print(s *sink, format string, args []Arg) error {
	var (
		c   = cursor{args: args}
		r   rendered
		buf []byte
	)
	for sc := Scan(format); sc.Next(); {
		seg := sc.Segment()
		if !seg.Directive {
			if err := s.writeString(seg.Text); err != nil {
				return sinkError(seg.Pos, err)
			}
			continue
		}
		d, err := parse(seg)
		if err != nil {
			return err
		}
		v, err := p.bind(d, &c)
		if err != nil {
			return err
		}
		if v.store != nil {
			s.reportCount(v.store)
			continue
		}
		r.reset()
		switch d.class() {
		case classInt:
			renderInt(&r, d, v)
		case classFloat:
			if err = p.renderFloat(&r, d, v); err != nil {
				return err
			}
		default:
			renderText(&r, d, v)
		}
		buf = p.appendField(buf[:0], &r, d, v)
		if err = s.write(buf); err != nil {
			return sinkError(d.Pos, err)
		}
	}
	return nil
}

// Fprintf formats according to format and writes to w using the default
// Printer.
func Fprintf(w io.Writer, format string, args ...Arg) (int, error) {
	return std.Fprintf(w, format, args...)
}

// Printf formats according to format and writes to os.Stdout using the
// default Printer.
func Printf(format string, args ...Arg) (int, error) {
	return std.Printf(format, args...)
}

// Sprintf formats according to format using the default Printer and returns
// the resulting string.
func Sprintf(format string, args ...Arg) (string, error) {
	return std.Sprintf(format, args...)
}

// Snprintf formats into buf using the default Printer.
func Snprintf(buf []byte, format string, args ...Arg) (int, error) {
	return std.Snprintf(buf, format, args...)
}

// Appendf formats using the default Printer and appends the result to dst.
func Appendf(dst []byte, format string, args ...Arg) ([]byte, error) {
	return std.Appendf(dst, format, args...)
}
