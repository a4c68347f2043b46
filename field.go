// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt

// group returns intg with sep inserted every three digits from the right.
func group(buf, intg []byte, sep string) []byte {
	n := len(intg)
	if n < 4 {
		return append(buf, intg...)
	}
	first := n % 3
	if first == 0 {
		first = 3
	}
	buf = append(buf, intg[:first]...)
	for i := first; i < n; i += 3 {
		buf = append(buf, sep...)
		buf = append(buf, intg[i:i+3]...)
	}
	return buf
}

func appendPad(buf []byte, c byte, n int) []byte {
	for ; n > 0; n-- {
		buf = append(buf, c)
	}
	return buf
}

// appendField appends r to buf, padded to the width requested by v.
//
// Zero padding goes between the sign or base prefix and the first digit. It
// applies to numeric conversions that are not left-justified, except infinities
// and NaNs, and integer conversions with an explicit precision. Grouping
// separators count toward the width; the padding zeros are not grouped.
func (p *Printer) appendField(buf []byte, r *rendered, d *Directive, v *value) []byte {
	intg := r.intg
	if v.flags.Has(FlagGroup) && !r.special {
		sep := p.separator()
		intg = group(make([]byte, 0, len(intg)+len(intg)/3*len(sep)), intg, sep)
	}
	n := len(r.prefix) + len(intg) + len(r.frac) + len(r.suffix)
	if r.sign != 0 {
		n++
	}
	if r.point {
		n++
	}
	pad := v.width - n
	zero := v.flags.Has(FlagZero) && !v.flags.Has(FlagMinus) && d.Numeric() && !r.special &&
		!(d.class() == classInt && v.prec >= 0)

	if pad > 0 && !zero && !v.flags.Has(FlagMinus) {
		buf = appendPad(buf, ' ', pad)
	}
	if r.sign != 0 {
		buf = append(buf, r.sign)
	}
	buf = append(buf, r.prefix...)
	if pad > 0 && zero {
		buf = appendPad(buf, '0', pad)
	}
	buf = append(buf, intg...)
	if r.point {
		buf = append(buf, '.')
	}
	buf = append(buf, r.frac...)
	buf = append(buf, r.suffix...)
	if pad > 0 && v.flags.Has(FlagMinus) {
		buf = appendPad(buf, ' ', pad)
	}
	return buf
}

func (p *Printer) separator() string {
	if p.Separator != "" {
		return p.Separator
	}
	return ","
}
