// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the integer, rational, string, character and pointer
// conversions.

package bigfmt

import (
	"math/big"
	"strconv"
	"unicode/utf8"
)

// appendDigits appends the digits of x in the given base, padded with leading
// zeros to at least prec digits. A zero value with a zero precision produces
// no digits.
func appendDigits(buf []byte, x *big.Int, base int, upper bool, prec int) []byte {
	if prec == 0 && x.Sign() == 0 {
		return buf
	}
	n := len(buf)
	buf = x.Append(buf, base)
	if upper {
		for i := n; i < len(buf); i++ {
			if c := buf[i]; 'a' <= c && c <= 'z' {
				buf[i] = c - ('a' - 'A')
			}
		}
	}
	if pad := prec - (len(buf) - n); pad > 0 {
		buf = append(buf, make([]byte, pad)...)
		copy(buf[n+pad:], buf[n:])
		for i := n; i < n+pad; i++ {
			buf[i] = '0'
		}
	}
	return buf
}

// renderInt converts an integer or rational value for one of the d, i, u, o,
// x or X conversions.
func renderInt(r *rendered, d *Directive, v *value) {
	if d.signed() || v.neg {
		r.sign = signOf(v.neg, v.flags)
	}
	base := d.base()
	upper := d.Verb == 'X'
	r.intg = appendDigits(r.intg, v.mag, base, upper, v.prec)
	if v.flags.Has(FlagSharp) {
		switch base {
		case 8:
			if len(r.intg) == 0 || r.intg[0] != '0' {
				r.intg = append(r.intg, 0)
				copy(r.intg[1:], r.intg)
				r.intg[0] = '0'
			}
		case 16:
			if v.mag.Sign() != 0 {
				r.prefix = "0x"
				if upper {
					r.prefix = "0X"
				}
			}
		}
	}
	if v.den != nil {
		r.suffix = append(r.suffix, '/')
		if base == 16 && v.flags.Has(FlagSharp) {
			r.suffix = append(r.suffix, r.prefix...)
		} else if base == 8 && v.flags.Has(FlagSharp) {
			r.suffix = append(r.suffix, '0')
		}
		r.suffix = appendDigits(r.suffix, v.den, base, upper, -1)
	}
}

// renderText converts a value for the c, s, p and % conversions.
func renderText(r *rendered, d *Directive, v *value) {
	switch d.Verb {
	case 's':
		s := v.str
		if v.prec >= 0 && v.prec < len(s) {
			n := v.prec
			for n > 0 && !utf8.RuneStart(s[n]) {
				n--
			}
			s = s[:n]
		}
		r.intg = append(r.intg, s...)
	case 'c':
		r.intg = append(r.intg, v.str...)
	case 'p':
		if v.ptr == 0 {
			r.intg = append(r.intg, "(nil)"...)
			break
		}
		r.intg = append(r.intg, "0x"...)
		r.intg = strconv.AppendUint(r.intg, v.ptr, 16)
	case '%':
		r.intg = append(r.intg, '%')
	}
}
