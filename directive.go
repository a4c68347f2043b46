// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt

import (
	"math/bits"
	"strconv"
	"strings"
)

// Flags is a set of directive flags.
type Flags uint8

// Directive flags.
const (
	FlagMinus Flags = 1 << iota // '-' left-justify
	FlagPlus                    // '+' force sign
	FlagSpace                   // ' ' space for sign
	FlagSharp                   // '#' alternate form
	FlagZero                    // '0' zero-pad
	FlagGroup                   // '\'' digit grouping
)

const flagChars = "-+ #0'"

// Has reports whether all flags in f2 are set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

func (f Flags) String() string {
	var sb strings.Builder
	for i := 0; i < len(flagChars); i++ {
		if f&(1<<i) != 0 {
			sb.WriteByte(flagChars[i])
		}
	}
	return sb.String()
}

// Type is the argument type named by the length and type modifiers of a
// directive.
type Type uint8

// Argument types. TypeNone means int for integer conversions and double for
// floating-point conversions.
const (
	TypeNone       Type = iota
	TypeChar            // hh
	TypeShort           // h
	TypeLong            // l
	TypeLongLong        // ll or q
	TypeLongDouble      // L
	TypeIntmax          // j
	TypeSize            // z
	TypePtrdiff         // t
	TypeFloat           // R, arbitrary-precision float
	TypeInt             // Z, arbitrary-precision integer
	TypeRat             // Q, arbitrary-precision rational
	TypeMpf             // F, mpf-style float
	TypeLimb            // M, single limb
	TypeLimbArray       // N, limb array followed by its size
	TypePrec            // P, precision value
)

var typeInfo = [...]struct {
	mod   string // modifier text
	verbs string // legal conversions
	bits  int    // native integer width
}{
	TypeNone:       {"", "diouxXcspneEfFgGaA%", 32},
	TypeChar:       {"hh", "diouxXn", 8},
	TypeShort:      {"h", "diouxXn", 16},
	TypeLong:       {"l", "diouxXncseEfFgGaA", 64},
	TypeLongLong:   {"ll", "diouxXn", 64},
	TypeLongDouble: {"L", "eEfFgGaA", 0},
	TypeIntmax:     {"j", "diouxXn", 64},
	TypeSize:       {"z", "diouxXn", bits.UintSize},
	TypePtrdiff:    {"t", "diouxXn", bits.UintSize},
	TypeFloat:      {"R", "aAbeEfFgGn", 0},
	TypeInt:        {"Z", "diouxXn", 0},
	TypeRat:        {"Q", "diouxXn", 0},
	TypeMpf:        {"F", "aAeEfFgGn", 0},
	TypeLimb:       {"M", "diouxXn", bits.UintSize},
	TypeLimbArray:  {"N", "diouxXn", 0},
	TypePrec:       {"P", "diouxXn", 64},
}

func (t Type) String() string {
	if int(t) < len(typeInfo) {
		if t == TypeNone {
			return "none"
		}
		return typeInfo[t].mod
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Extended reports whether t is one of the arbitrary-precision types.
func (t Type) Extended() bool { return t >= TypeFloat }

// Legal reports whether conversion verb can be used with type t.
func (t Type) Legal(verb byte) bool {
	return int(t) < len(typeInfo) && strings.IndexByte(typeInfo[t].verbs, verb) >= 0
}

// A Directive is the parsed form of one %... token.
type Directive struct {
	Pos      int    // offset of the '%' in the format string
	Raw      string // raw token text
	Flags    Flags
	Width    int  // -1 if absent
	WidthArg bool // width read from the next argument
	Prec     int  // -1 if absent
	PrecArg  bool // precision read from the next argument
	Type     Type
	Mode     RoundingMode
	ModeSet  bool // Mode set by a rounding letter
	ModeArg  bool // rounding mode read from the next argument (R*)
	Verb     byte
}

// A class groups conversions that share rendering and binding rules.
type class uint8

const (
	classInt class = iota
	classFloat
	classChar
	classString
	classPointer
	classPercent
	classCount
)

func (d *Directive) class() class {
	switch d.Verb {
	case 'd', 'i', 'u', 'o', 'x', 'X':
		return classInt
	case 'c':
		return classChar
	case 's':
		return classString
	case 'p':
		return classPointer
	case '%':
		return classPercent
	case 'n':
		return classCount
	}
	return classFloat
}

// Numeric reports whether d renders a number.
func (d *Directive) Numeric() bool {
	c := d.class()
	return c == classInt || c == classFloat
}

// base returns the numeric base of d's conversion.
func (d *Directive) base() int {
	switch d.Verb {
	case 'o':
		return 8
	case 'x', 'X', 'a', 'A':
		return 16
	case 'b':
		return 2
	}
	return 10
}

// upper reports whether d uses upper case digits and tokens.
func (d *Directive) upper() bool {
	return 'A' <= d.Verb && d.Verb <= 'Z'
}

// signed reports whether an integer conversion interprets its operand as
// signed.
func (d *Directive) signed() bool {
	return d.Verb == 'd' || d.Verb == 'i'
}

// String returns the canonical text of d.
func (d *Directive) String() string {
	var sb strings.Builder
	sb.WriteByte('%')
	sb.WriteString(d.Flags.String())
	if d.WidthArg {
		sb.WriteByte('*')
	} else if d.Width >= 0 {
		sb.WriteString(strconv.Itoa(d.Width))
	}
	if d.PrecArg {
		sb.WriteString(".*")
	} else if d.Prec >= 0 {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(d.Prec))
	}
	if d.Type != TypeNone {
		sb.WriteString(typeInfo[d.Type].mod)
	}
	if d.ModeArg {
		sb.WriteByte('*')
	} else if d.ModeSet {
		sb.WriteByte(d.Mode.Letter())
	}
	sb.WriteByte(d.Verb)
	return sb.String()
}
