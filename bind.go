// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt

import (
	"math"
	"math/big"
	"reflect"

	"fortio.org/safecast"
)

// A value is an argument bound to a directive, together with the width,
// precision and rounding mode resolved for it.
type value struct {
	flags Flags
	width int // -1 if absent
	prec  int // -1 if absent
	mode  RoundingMode

	neg     bool
	mag     *big.Int   // integer conversions; numerator for rationals
	den     *big.Int   // rational denominator, nil if 1
	flt     *big.Float // float conversions
	form    form
	stdPrec bool   // precision defaults to 6
	str     string // %s, %c
	ptr     uint64 // %p
	store   func(int64)
}

// A cursor walks the argument list of one formatting call.
type cursor struct {
	args []Arg
	i    int
}

func (c *cursor) next(d *Directive, what string) (Arg, error) {
	if c.i >= len(c.args) {
		return Arg{}, argError(d, ErrArgumentUnderflow, "%s for argument %d", what, c.i+1)
	}
	a := c.args[c.i]
	c.i++
	return a, nil
}

// nativeInt consumes a native integer argument and returns it as an int64.
func (c *cursor) nativeInt(d *Directive, what string) (int64, error) {
	a, err := c.next(d, what)
	if err != nil {
		return 0, err
	}
	switch a.kind {
	case argInt:
		return int64(a.u), nil
	case argUint:
		v, err := safecast.Conv[int64](a.u)
		if err != nil {
			return 0, argError(d, ErrArgumentType, "%s %d out of range", what, a.u)
		}
		return v, nil
	}
	return 0, mismatch(d, c.i, what, a)
}

func mismatch(d *Directive, i int, what string, a Arg) error {
	return argError(d, ErrArgumentType, "%s argument %d: unexpected %s", what, i, a)
}

// bind consumes the arguments of d in order: width, precision, rounding mode,
// then the value itself.
func (p *Printer) bind(d *Directive, c *cursor) (*value, error) {
	v := &value{flags: d.Flags, width: d.Width, prec: d.Prec, mode: p.Mode}
	if d.WidthArg {
		w, err := c.nativeInt(d, "width")
		if err != nil {
			return nil, err
		}
		w32, err := safecast.Conv[int32](w)
		if err != nil || w32 == math.MinInt32 {
			return nil, argError(d, ErrArgumentType, "width %d out of range", w)
		}
		if w32 < 0 {
			v.flags |= FlagMinus
			w32 = -w32
		}
		v.width = int(w32)
	}
	if d.PrecArg {
		pr, err := c.nativeInt(d, "precision")
		if err != nil {
			return nil, err
		}
		p32, err := safecast.Conv[int32](pr)
		if err != nil {
			return nil, argError(d, ErrArgumentType, "precision %d out of range", pr)
		}
		v.prec = int(p32)
		if p32 < 0 {
			v.prec = -1
		}
	}
	if d.ModeSet {
		v.mode = d.Mode
	}
	if d.ModeArg {
		a, err := c.next(d, "rounding mode")
		if err != nil {
			return nil, err
		}
		if a.kind != argMode || a.u > uint64(ToPositiveInf) {
			return nil, mismatch(d, c.i, "rounding mode", a)
		}
		v.mode = RoundingMode(a.u)
	}

	switch d.class() {
	case classPercent:
		return v, nil
	case classCount:
		return v, p.bindCount(d, c, v)
	case classInt:
		return v, p.bindInt(d, c, v)
	case classFloat:
		return v, p.bindFloat(d, c, v)
	}

	a, err := c.next(d, "value")
	if err != nil {
		return nil, err
	}
	switch d.class() {
	case classString:
		if a.kind != argString {
			return nil, mismatch(d, c.i, "string", a)
		}
		v.str = a.s
	case classChar:
		switch {
		case a.kind == argChar || (d.Type == TypeLong && (a.kind == argInt || a.kind == argUint)):
			v.str = string(rune(a.u))
		case a.kind == argInt || a.kind == argUint:
			v.str = string([]byte{byte(a.u)})
		default:
			return nil, mismatch(d, c.i, "character", a)
		}
	case classPointer:
		if a.kind != argPointer {
			return nil, mismatch(d, c.i, "pointer", a)
		}
		if k, ok := a.p.(reflect.Kind); ok {
			return nil, argError(d, ErrArgumentType, "pointer argument %d: %s is not a pointer", c.i, k)
		}
		v.ptr = a.u
	}
	return v, nil
}

// truncate reduces the two's complement integer u to bits bits and returns
// its sign and magnitude, read as signed if signed is set.
func truncate(u uint64, bits int, signed bool) (neg bool, mag uint64) {
	mask := ^uint64(0)
	if bits < 64 {
		mask = 1<<uint(bits) - 1
	}
	u &= mask
	if signed && u>>uint(bits-1)&1 != 0 {
		return true, (^u + 1) & mask
	}
	return false, u
}

func (p *Printer) bindInt(d *Directive, c *cursor, v *value) error {
	a, err := c.next(d, "value")
	if err != nil {
		return err
	}
	var ok bool
	switch d.Type {
	case TypeInt:
		if x, _ := a.p.(*big.Int); a.kind == argBigInt && x != nil {
			v.neg = x.Sign() < 0
			v.mag = new(big.Int).Abs(x)
			ok = true
		}
	case TypeRat:
		if x, _ := a.p.(*big.Rat); a.kind == argRat && x != nil {
			v.neg = x.Sign() < 0
			v.mag = new(big.Int).Abs(x.Num())
			if !x.IsInt() {
				v.den = new(big.Int).Set(x.Denom())
			}
			ok = true
		}
	case TypeLimb:
		if a.kind == argLimb {
			v.mag = new(big.Int).SetUint64(a.u)
			ok = true
		}
	case TypeLimbArray:
		if ws, _ := a.p.([]big.Word); a.kind == argLimbs {
			ws, neg, err := limbs(d, c, ws)
			if err != nil {
				return err
			}
			// SetBits aliases its argument.
			v.mag = new(big.Int).SetBits(append([]big.Word(nil), ws...))
			v.neg = neg && v.mag.Sign() != 0
			ok = true
		}
	case TypePrec:
		if a.kind == argPrec {
			v.neg, a.u = truncate(a.u, 64, d.signed())
			v.mag = new(big.Int).SetUint64(a.u)
			ok = true
		}
	default:
		if a.kind == argInt || a.kind == argUint || a.kind == argChar {
			var u uint64
			v.neg, u = truncate(a.u, typeInfo[d.Type].bits, d.signed())
			v.mag = new(big.Int).SetUint64(u)
			ok = true
		}
	}
	if !ok {
		return mismatch(d, c.i, "value", a)
	}
	return nil
}

// limbs consumes the size argument following a limb array and returns the
// limbs in use and the sign carried by the size.
func limbs(d *Directive, c *cursor, ws []big.Word) ([]big.Word, bool, error) {
	size, err := c.nativeInt(d, "limb count")
	if err != nil {
		return nil, false, err
	}
	neg := size < 0
	if neg {
		size = -size
	}
	if size > int64(len(ws)) {
		return nil, false, argError(d, ErrArgumentType, "limb count %d exceeds array length %d", size, len(ws))
	}
	return ws[:size], neg, nil
}

func (p *Printer) bindFloat(d *Directive, c *cursor, v *value) error {
	a, err := c.next(d, "value")
	if err != nil {
		return err
	}
	switch {
	case d.Type == TypeFloat && a.kind == argNaN:
		v.form = nan
		return nil
	case d.Type == TypeFloat && a.kind == argFloat,
		d.Type == TypeMpf && a.kind == argMpf:
		x, _ := a.p.(*big.Float)
		if x == nil {
			break
		}
		v.stdPrec = d.Type == TypeMpf
		v.setFloat(x)
		return nil
	case !d.Type.Extended() && a.kind == argFloat64:
		// native conversions always round to nearest
		v.stdPrec = true
		v.mode = ToNearestEven
		if math.IsNaN(a.f) {
			v.form = nan
			return nil
		}
		v.setFloat(new(big.Float).SetFloat64(a.f))
		return nil
	}
	return mismatch(d, c.i, "value", a)
}

func (v *value) setFloat(x *big.Float) {
	v.flt = x
	v.neg = x.Signbit()
	switch {
	case x.IsInf():
		v.form = inf
	case x.Sign() == 0:
		v.form = zero
	default:
		v.form = finite
	}
}

func (p *Printer) bindCount(d *Directive, c *cursor, v *value) error {
	a, err := c.next(d, "count target")
	if err != nil {
		return err
	}
	switch d.Type {
	case TypeInt:
		if z, _ := a.p.(*big.Int); a.kind == argCountInt && z != nil {
			v.store = func(n int64) { z.SetInt64(n) }
		}
	case TypeRat:
		if z, _ := a.p.(*big.Rat); a.kind == argCountRat && z != nil {
			v.store = func(n int64) { z.SetInt64(n) }
		}
	case TypeFloat, TypeMpf:
		if z, _ := a.p.(*big.Float); a.kind == argCountFloat && z != nil {
			v.store = func(n int64) { z.SetInt64(n) }
		}
	case TypeLimb:
		if w, _ := a.p.(*big.Word); a.kind == argCountLimb && w != nil {
			v.store = func(n int64) { *w = big.Word(n) }
		}
	case TypeLimbArray:
		if ws, _ := a.p.([]big.Word); a.kind == argCountLimbs {
			ws, _, err := limbs(d, c, ws)
			if err != nil {
				return err
			}
			v.store = func(n int64) {
				for i := range ws {
					ws[i] = 0
				}
				if len(ws) > 0 {
					ws[0] = big.Word(n)
				}
			}
		}
	default:
		if a.kind == argCount {
			bits := typeInfo[d.Type].bits
			store := a.store
			v.store = func(n int64) {
				neg, m := truncate(uint64(n), bits, true)
				if neg {
					store(-int64(m))
					return
				}
				store(int64(m))
			}
		}
	}
	if v.store == nil {
		return mismatch(d, c.i, "count target", a)
	}
	return nil
}
