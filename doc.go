// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package bigfmt implements printf-style formatting of arbitrary-precision
numbers alongside native values.

The format language is the one of C's printf, extended with type modifiers for
math/big values and explicit rounding. Arguments are passed as typed Args built
by constructor functions, which replaces the unchecked variadic protocol of C:

	n, err := bigfmt.Printf("%.*RDe and %Zx\n", bigfmt.Int(20), bigfmt.Float(x), bigfmt.BigInt(z))

A directive has the form

	%[flags][width][.precision][modifiers]conversion

Flags are '-' (left-justify), '+' (force sign), ' ' (space for sign), '#'
(alternate form), '0' (zero padding) and '\'' (digit grouping, f and g
conversions only). Width and precision are decimal numbers or '*', in which case
they are read from the next argument, which must be an Int or Uint. A negative
width means left-justify, a negative precision is ignored.

Type modifiers:

	hh h l ll q L j z t   native integer widths and long double, as in C
	R                     *big.Float (Float, NaN)
	F                     *big.Float with mpf semantics (Mpf)
	Z                     *big.Int (BigInt)
	Q                     *big.Rat (Rat)
	M                     big.Word (Limb)
	N                     []big.Word followed by a size (Limbs, then Int)
	P                     precision value (Prec)

R may be followed by a rounding letter, N (nearest-even), Z (toward zero), U
(toward +Inf), D (toward -Inf) or Y (away from zero), or by '*', in which case
the rounding mode is read from the next argument (Mode). Otherwise the Printer's
default mode applies.

Conversions:

	d i u o x X   integers (native, Z, Q, M, N and P)
	a A           hexadecimal mantissa and binary exponent: 0x1.8p+3
	b             binary mantissa and binary exponent (R only): 1.1p+3
	e E           decimal scientific
	f F           decimal fixed
	g G           shortest of e and f
	c s p         character, string and pointer
	n             store the number of bytes written so far (Count, CountInt, ...)
	%             a literal '%'

When the precision is omitted, R conversions print as many digits as needed
to read the value back exactly at its own precision, trailing zeros removed.
Native floats and F conversions default to 6 digits as in C.

Arguments are consumed in a fixed order for each directive: width, precision,
rounding mode, then the value. Arbitrary-precision arguments are never
modified.

All functions return the number of bytes written, or -1 and a *FormatError on
failure. The error wraps one of ErrMalformedDirective, ErrArgumentUnderflow,
ErrArgumentType, ErrUnrepresentableExponent or ErrSinkWrite. Output produced
before the failing directive is kept.
*/
package bigfmt
