// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt

import (
	"math/big"
	"reflect"
)

type argKind uint8

const (
	argInt argKind = iota
	argUint
	argFloat64
	argString
	argChar
	argPointer
	argFloat
	argNaN
	argMpf
	argBigInt
	argRat
	argLimb
	argLimbs
	argPrec
	argMode
	argCount
	argCountInt
	argCountRat
	argCountFloat
	argCountLimb
	argCountLimbs
)

var argNames = [...]string{
	argInt:        "int",
	argUint:       "uint",
	argFloat64:    "float64",
	argString:     "string",
	argChar:       "char",
	argPointer:    "pointer",
	argFloat:      "*big.Float",
	argNaN:        "NaN",
	argMpf:        "mpf *big.Float",
	argBigInt:     "*big.Int",
	argRat:        "*big.Rat",
	argLimb:       "limb",
	argLimbs:      "[]big.Word",
	argPrec:       "precision",
	argMode:       "RoundingMode",
	argCount:      "count target",
	argCountInt:   "*big.Int count target",
	argCountRat:   "*big.Rat count target",
	argCountFloat: "*big.Float count target",
	argCountLimb:  "*big.Word count target",
	argCountLimbs: "[]big.Word count target",
}

// An Arg is one typed argument of a formatting call. Args are built with the
// constructor functions of this package, which capture the argument's kind at
// the call site:
//
//	bigfmt.Sprintf("%.*Rf", bigfmt.Int(3), bigfmt.Float(x))
//
// Arbitrary-precision operands are borrowed, never modified.
type Arg struct {
	kind  argKind
	u     uint64 // native integers (two's complement), limbs, chars, pointers
	f     float64
	s     string
	p     interface{} // big values, or the reflect.Kind of a bad pointer
	store func(int64)
}

func (a Arg) String() string {
	return argNames[a.kind]
}

// Int returns a native signed integer argument. It is truncated to the width
// named by the directive's length modifier.
func Int(v int64) Arg { return Arg{kind: argInt, u: uint64(v)} }

// Uint returns a native unsigned integer argument.
func Uint(v uint64) Arg { return Arg{kind: argUint, u: v} }

// Float64 returns a native floating-point argument, used for both double and
// long double conversions.
func Float64(v float64) Arg { return Arg{kind: argFloat64, f: v} }

// String returns a string argument for %s.
func String(s string) Arg { return Arg{kind: argString, s: s} }

// Char returns a character argument for %c.
func Char(c rune) Arg { return Arg{kind: argChar, u: uint64(c)} }

// Pointer returns a pointer argument for %p. p must be nil, a pointer, map,
// channel, function, slice, unsafe.Pointer or uintptr. Other values fail with
// ErrArgumentType when bound to a directive.
func Pointer(p interface{}) Arg {
	var u uintptr
	if p != nil {
		v := reflect.ValueOf(p)
		switch v.Kind() {
		case reflect.Ptr, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
			u = v.Pointer()
		case reflect.Uintptr:
			u = uintptr(v.Uint())
		default:
			return Arg{kind: argPointer, p: v.Kind()}
		}
	}
	return Arg{kind: argPointer, u: uint64(u)}
}

// Float returns an arbitrary-precision float argument for the R modifier.
func Float(x *big.Float) Arg { return Arg{kind: argFloat, p: x} }

// NaN returns an R argument holding a NaN, which *big.Float cannot represent.
func NaN() Arg { return Arg{kind: argNaN} }

// Mpf returns an mpf-style float argument for the F modifier. Unlike R
// conversions, F conversions default to 6 digits of precision.
func Mpf(x *big.Float) Arg { return Arg{kind: argMpf, p: x} }

// BigInt returns an arbitrary-precision integer argument for the Z modifier.
func BigInt(x *big.Int) Arg { return Arg{kind: argBigInt, p: x} }

// Rat returns a rational argument for the Q modifier.
func Rat(x *big.Rat) Arg { return Arg{kind: argRat, p: x} }

// Limb returns a single limb argument for the M modifier.
func Limb(w big.Word) Arg { return Arg{kind: argLimb, u: uint64(w)} }

// Limbs returns a limb array argument for the N modifier. The array is
// little-endian. The directive consumes a second, integer, argument giving the
// number of limbs to use; its sign is the sign of the value.
func Limbs(ws []big.Word) Arg { return Arg{kind: argLimbs, p: ws} }

// Prec returns a precision value argument for the P modifier.
func Prec(p uint) Arg { return Arg{kind: argPrec, u: uint64(p)} }

// Mode returns a rounding mode argument, consumed by R* directives.
func Mode(m RoundingMode) Arg { return Arg{kind: argMode, u: uint64(m)} }

// Integer is the set of native integer types accepted by Count.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Count returns a store-count target for %n with a native length modifier.
// The count is truncated to the directive's width, then converted to T.
func Count[T Integer](p *T) Arg {
	return Arg{kind: argCount, store: func(n int64) { *p = T(n) }}
}

// CountInt returns a store-count target for %Zn. It receives the exact count.
func CountInt(z *big.Int) Arg { return Arg{kind: argCountInt, p: z} }

// CountRat returns a store-count target for %Qn.
func CountRat(z *big.Rat) Arg { return Arg{kind: argCountRat, p: z} }

// CountFloat returns a store-count target for %Rn and %Fn.
func CountFloat(z *big.Float) Arg { return Arg{kind: argCountFloat, p: z} }

// CountLimb returns a store-count target for %Mn.
func CountLimb(w *big.Word) Arg { return Arg{kind: argCountLimb, p: w} }

// CountLimbs returns a store-count target for %Nn. Like Limbs, it is followed
// by an integer size argument.
func CountLimbs(ws []big.Word) Arg { return Arg{kind: argCountLimbs, p: ws} }
