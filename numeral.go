// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt

import (
	"fmt"
	"math/big"
)

const debugFormat = true

// A numeral is the rendered form of a numeric operand: a sign, a string of
// digits and an exponent.
//
// In base 10, the value is 0.mant × 10**exp. In bases 2 and 16 the radix point
// follows the first digit and exp is a power of two: mant[0].mant[1:] × 2**exp,
// with mant[0] == 1 for finite values.
//
// A base 10 numeral may hold only the leading digits of its operand, in which
// case sticky is set: the digits that follow mant are not all zero.
//
// A zero or non-finite numeral ignores mant and exp.
//
// x                 form      neg      mant         exp
// ----------------------------------------------------------
// ±0                zero      sign     -            -
// 0 < |x| < +Inf    finite    sign     digits       exponent
// ±Inf              inf       sign     -            -
// NaN               nan       -        -            -
type numeral struct {
	neg    bool
	form   form
	base   int
	mant   []byte // digit values, most significant first, no trailing zeros
	exp    int
	sticky bool
}

func (x *numeral) validate() {
	if !debugFormat {
		// avoid performance bugs
		panic("validate called but debugFormat is not set")
	}
	if x.form != finite {
		return
	}
	m := len(x.mant)
	if m == 0 {
		panic("nonzero finite numeral with empty mantissa")
	}
	if x.mant[m-1] == 0 {
		panic(fmt.Sprintf("last digit of %v is zero", x.mant))
	}
	if x.mant[0] == 0 {
		panic(fmt.Sprintf("first digit of %v is zero", x.mant))
	}
	if x.base != 10 && (x.mant[0] != 1 || x.sticky) {
		panic(fmt.Sprintf("base %d numeral %v is not normalized", x.base, x.mant))
	}
}

// mantExp returns an odd integer m and an exponent e such that |x| = m × 2**e.
// x must be finite and non-zero.
func mantExp(x *big.Float) (*big.Int, int) {
	mant := new(big.Float)
	exp := x.MantExp(mant)
	prec := x.MinPrec()
	m, _ := mant.SetMantExp(mant, int(prec)).Int(nil)
	return m.Abs(m), exp - int(prec)
}

// init sets the sign and form of z from x and clears its digits. It reports
// whether x is finite and non-zero.
func (z *numeral) init(x *big.Float, base int) bool {
	z.neg = x.Signbit()
	z.base = base
	z.mant = z.mant[:0]
	z.exp = 0
	z.sticky = false
	switch {
	case x.IsInf():
		z.form = inf
		return false
	case x.Sign() == 0:
		z.form = zero
		return false
	}
	z.form = finite
	return true
}

// setFloat sets z to the exact value of x in base 2 or 16 and returns z. x is
// not modified.
func (z *numeral) setFloat(x *big.Float, base int) *numeral {
	if base != 2 && base != 16 {
		panic("unsupported base")
	}
	if !z.init(x, base) {
		return z
	}
	m, e := mantExp(x)
	n := m.BitLen()
	z.exp = n - 1 + e
	if base == 16 {
		// align the fraction bits on hex digits, leaving a single bit in the
		// leading digit
		m.Lsh(m, uint((4-(n-1)%4)%4))
	}
	z.setDigits(m.Text(base))
	return z
}

// setDecimal sets z to the leading decimal digits of x and returns z. At least
// n significant digits are computed, and z.sticky is set if the remaining ones
// are not all zero. The cost depends on n and barely on the exponent of x.
func (z *numeral) setDecimal(x *big.Float, n int) *numeral {
	if !z.init(x, 10) {
		return z
	}
	n = max(n, 1)
	var mant big.Float
	b := x.MantExp(&mant)
	mant.Abs(&mant)
	e := decimalExp(b)
	q, sticky := scale10(&mant, b, n-e, n)
	s := q.Text(10)
	// |x| = 0.s × 10**(len(s)-(n-e)), plus the sticky fraction
	z.exp = e + len(s) - n
	z.sticky = sticky
	z.setDigits(s)
	return z
}

func (z *numeral) setDigits(s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' {
			c -= 'a' - 10
		} else {
			c -= '0'
		}
		z.mant = append(z.mant, c)
	}
	z.trim()
	if debugFormat {
		z.validate()
	}
}

// decimalExp returns the decimal exponent e of some v in [2**(b-1), 2**b),
// give or take 3: 10**(e-1) <= v < 10**(e+3).
func decimalExp(b int) int {
	return mulLog10_2(b - 1)
}

// scale10 returns ⌊m × 2**b × 10**j⌋ for a positive m, and whether the
// discarded fraction is non-zero. The result has about n decimal digits.
//
// The product is bracketed by bounds computed with directed rounding. The
// working precision doubles until both bounds have the same integer part,
// which happens at the latest when the bounds are exact.
func scale10(m *big.Float, b, j, n int) (*big.Int, bool) {
	k := uint(abs(j))
	prec := uint(n)*4 + 64
	for {
		lo, hi := pow5(k, prec)
		ylo := newBound(prec, ToNegativeInf)
		yhi := newBound(prec, ToPositiveInf)
		if j >= 0 {
			ylo.Mul(m, lo)
			yhi.Mul(m, hi)
		} else {
			ylo.Quo(m, hi)
			yhi.Quo(m, lo)
		}
		// 10**j == 5**j × 2**j
		ylo.SetMantExp(ylo, b+j)
		yhi.SetMantExp(yhi, b+j)
		q, _ := ylo.Int(nil)
		if qhi, _ := yhi.Int(nil); q.Cmp(qhi) == 0 {
			if !ylo.IsInt() {
				return q, true
			}
			if ylo.Cmp(yhi) == 0 {
				return q, false
			}
		}
		prec *= 2
	}
}

// pow5 returns lo and hi such that lo <= 5**k <= hi, computed with prec bits.
func pow5(k, prec uint) (lo, hi *big.Float) {
	lo = newBound(prec, ToNegativeInf).SetInt64(1)
	hi = newBound(prec, ToPositiveInf).SetInt64(1)
	blo := newBound(prec, ToNegativeInf).SetInt64(5)
	bhi := newBound(prec, ToPositiveInf).SetInt64(5)
	for ; k > 0; k >>= 1 {
		if k&1 != 0 {
			lo.Mul(lo, blo)
			hi.Mul(hi, bhi)
		}
		if k > 1 {
			blo.Mul(blo, blo)
			bhi.Mul(bhi, bhi)
		}
	}
	return lo, hi
}

func newBound(prec uint, mode RoundingMode) *big.Float {
	return new(big.Float).SetPrec(prec).SetMode(mode.Big())
}

// trim removes trailing zero digits. A numeral left without digits is zero.
func (x *numeral) trim() {
	i := len(x.mant)
	for i > 0 && x.mant[i-1] == 0 {
		i--
	}
	x.mant = x.mant[:i]
	if i == 0 && x.form == finite {
		x.form = zero
		x.exp = 0
	}
}

// digit returns the i'th digit of x, 0 past the end of the mantissa.
func (x *numeral) digit(i int) byte {
	if i < 0 || i >= len(x.mant) {
		return 0
	}
	return x.mant[i]
}

// round rounds x to n significant digits according to mode. n may be zero or
// negative in base 10, where the rounding position is to the left of the first
// digit.
//
// CAUTION: The rounding modes ToNegativeInf, ToPositiveInf are affected by the
// sign of x. For correct rounding, the sign of x must be set correctly before
// calling round.
func (x *numeral) round(n int, mode RoundingMode) {
	if debugFormat {
		x.validate()
	}
	sticky := x.sticky
	x.sticky = false
	if x.form != finite || (n >= len(x.mant) && !sticky) {
		// ±0, ±Inf, NaN or mantissa fits => nothing to do
		return
	}

	// r is the first dropped digit, sbit is set if any digit after it is
	// non-zero.
	r := x.digit(n)
	sbit := sticky || n < 0
	for i := n + 1; i < len(x.mant) && !sbit; i++ {
		sbit = x.mant[i] != 0
	}

	if r == 0 && !sbit {
		x.mant = x.mant[:n]
		x.trim()
		return
	}

	half := byte(x.base / 2)
	inc := false
	switch mode {
	case ToNegativeInf:
		inc = x.neg
	case ToZero:
		// nothing to do
	case ToNearestEven:
		inc = r > half || (r == half && (sbit || x.digit(n-1)&1 != 0))
	case ToNearestAway:
		inc = r >= half
	case AwayFromZero:
		inc = true
	case ToPositiveInf:
		inc = !x.neg
	default:
		panic("unreachable")
	}
	if n <= 0 {
		if inc {
			// one unit at the rounding position
			x.mant = append(x.mant[:0], 1)
			x.exp += 1 - n
		} else {
			x.mant = x.mant[:0]
		}
		x.trim()
		return
	}
	for len(x.mant) < n {
		x.mant = append(x.mant, 0)
	}
	x.mant = x.mant[:n]
	if inc {
		x.inc()
	}
	x.trim()
	if debugFormat {
		x.validate()
	}
}

// inc adds one unit in the last place to the mantissa of x.
func (x *numeral) inc() {
	b := byte(x.base)
	for i := len(x.mant) - 1; i >= 0; i-- {
		if x.mant[i]++; x.mant[i] < b {
			if x.base == 16 && i == 0 && x.mant[0] == 2 {
				// 2.000 => 1.000 × 2**1
				x.mant[0] = 1
				x.exp++
			}
			return
		}
		x.mant[i] = 0
	}
	// carry out of the first digit
	x.mant = append(x.mant[:0], 1)
	x.exp++
}
