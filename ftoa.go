// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the float-to-string conversions for the a, b, e, f and
// g notations.

package bigfmt

import (
	"strconv"
)

// rendered holds the parts of a converted value, before padding.
type rendered struct {
	sign    byte   // '-', '+', ' ' or 0
	prefix  string // base prefix
	intg    []byte // integer part, or the whole text for non numeric values
	point   bool   // radix point
	frac    []byte // fractional digits
	suffix  []byte // exponent or rational denominator
	special bool   // inf or nan token
}

func (r *rendered) reset() {
	*r = rendered{intg: r.intg[:0], frac: r.frac[:0], suffix: r.suffix[:0]}
}

func signOf(neg bool, flags Flags) byte {
	switch {
	case neg:
		return '-'
	case flags.Has(FlagPlus):
		return '+'
	case flags.Has(FlagSpace):
		return ' '
	}
	return 0
}

func lower(c byte) byte {
	return c | 0x20
}

// renderFloat converts a float value for one of the a, b, e, f or g
// conversions.
func (p *Printer) renderFloat(r *rendered, d *Directive, v *value) error {
	upper := d.upper()
	r.sign = signOf(v.neg, v.flags)
	switch v.form {
	case nan:
		r.sign = 0
		r.special = true
		r.intg = appendToken(r.intg, "nan", upper)
		return nil
	case inf:
		r.special = true
		r.intg = appendToken(r.intg, "inf", upper)
		return nil
	}

	sharp := v.flags.Has(FlagSharp)
	prec := v.prec
	verb := lower(d.Verb)
	if prec < 0 && v.stdPrec && verb != 'a' {
		prec = 6
	}
	var x numeral
	switch verb {
	case 'a', 'b':
		base := 16
		exp := byte('p')
		if verb == 'b' {
			base = 2
		} else if upper {
			r.prefix = "0X"
		} else {
			r.prefix = "0x"
		}
		if upper {
			exp = 'P'
		}
		x.setFloat(v.flt, base)
		if prec >= 0 {
			x.round(prec+1, v.mode)
		} else {
			prec = max(0, len(x.mant)-1)
		}
		x.fmtBin(r, prec, sharp, upper)
		r.suffix = appendExp(r.suffix, exp, x.exponent(), 1)
	case 'e':
		n := prec + 1
		if prec < 0 {
			n = defaultDigits(v.flt.Prec())
		}
		x.setDecimal(v.flt, n+1)
		x.round(n, v.mode)
		if prec < 0 {
			prec = max(0, len(x.mant)-1)
		}
		x.fmtE(r, prec, sharp)
		r.suffix = appendExp(r.suffix, d.Verb, x.exponent(), 2)
	case 'f':
		if v.form == finite {
			// the integer part, or without a precision the leading zeros of
			// the fraction, grow with the exponent
			e := v.flt.MantExp(nil)
			if e > p.maxFixedExp() || (prec < 0 && -e > p.maxFixedExp()) {
				return argError(d, ErrUnrepresentableExponent, "binary exponent %d exceeds %d", e, p.maxFixedExp())
			}
		}
		if prec >= 0 {
			// digits down to the rounding place, 10**-(prec+1)
			x.setDecimal(v.flt, decimalExp(v.flt.MantExp(nil))+prec+1)
			x.round(x.exp+prec, v.mode)
		} else {
			n := defaultDigits(v.flt.Prec())
			x.setDecimal(v.flt, n+1)
			x.round(n, v.mode)
			prec = max(0, len(x.mant)-x.exp)
		}
		x.fmtF(r, prec, sharp)
	case 'g':
		strip := !sharp
		if prec < 0 {
			prec = defaultDigits(v.flt.Prec())
		} else if prec == 0 {
			prec = 1
		}
		x.setDecimal(v.flt, prec+1)
		x.round(prec, v.mode)
		e := x.exponent()
		if prec > e && e >= -4 {
			fd := prec - 1 - e
			if strip {
				fd = max(0, len(x.mant)-x.exp)
			}
			x.fmtF(r, fd, sharp)
			break
		}
		fd := prec - 1
		if strip {
			fd = max(0, len(x.mant)-1)
		}
		x.fmtE(r, fd, sharp)
		r.suffix = appendExp(r.suffix, d.Verb-'g'+'e', e, 2)
	}
	return nil
}

func (p *Printer) maxFixedExp() int {
	if p.MaxFixedExp > 0 {
		return p.MaxFixedExp
	}
	return DefaultMaxFixedExp
}

// exponent returns the exponent of the first digit of x: for base 10, x.exp-1
// and for other bases x.exp. Zero has a 0 exponent.
func (x *numeral) exponent() int {
	if x.form != finite {
		return 0
	}
	if x.base == 10 {
		return x.exp - 1
	}
	return x.exp
}

// fmtBin lays out x in the a or b notation with prec fractional digits. x
// must have been rounded.
func (x *numeral) fmtBin(r *rendered, prec int, sharp, upper bool) {
	dg := digits
	if upper {
		dg = upperDigits
	}
	r.intg = append(r.intg, dg[x.digit(0)])
	for i := 1; i <= prec; i++ {
		r.frac = append(r.frac, dg[x.digit(i)])
	}
	r.point = prec > 0 || sharp
}

// fmtE lays out the mantissa of x in the e notation with prec fractional
// digits. x must have been rounded to at most prec+1 digits.
func (x *numeral) fmtE(r *rendered, prec int, sharp bool) {
	r.intg = append(r.intg, '0'+x.digit(0))
	for i := 1; i <= prec; i++ {
		r.frac = append(r.frac, '0'+x.digit(i))
	}
	r.point = prec > 0 || sharp
}

// fmtF lays out x in the f notation with prec fractional digits. x must have
// been rounded to at most x.exp+prec digits.
func (x *numeral) fmtF(r *rendered, prec int, sharp bool) {
	if x.form == finite && x.exp > 0 {
		for i := 0; i < x.exp; i++ {
			r.intg = append(r.intg, '0'+x.digit(i))
		}
	} else {
		r.intg = append(r.intg, '0')
	}
	exp := 0
	if x.form == finite {
		exp = x.exp
	}
	for i := 0; i < prec; i++ {
		r.frac = append(r.frac, '0'+x.digit(exp+i))
	}
	r.point = prec > 0 || sharp
}

// appendExp appends the exponent marker c, the sign of exp and at least
// minDigits decimal digits.
func appendExp(buf []byte, c byte, exp, minDigits int) []byte {
	buf = append(buf, c)
	if exp < 0 {
		buf = append(buf, '-')
		exp = -exp
	} else {
		buf = append(buf, '+')
	}
	if exp < 10 && minDigits > 1 {
		buf = append(buf, '0')
	}
	return strconv.AppendInt(buf, int64(exp), 10)
}

func appendToken(buf []byte, tok string, upper bool) []byte {
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if upper {
			c -= 'a' - 'A'
		}
		buf = append(buf, c)
	}
	return buf
}
