// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt

import (
	"strings"

	"fortio.org/safecast"
)

// Directive grammar:
//
//	directive = "%" { flag } [ width ] [ "." [ precision ] ] { modifier } conversion .
//	flag      = "-" | "+" | " " | "#" | "0" | "'" .
//	width     = digits | "*" .
//	precision = digits | "*" .
//	modifier  = "hh" | "h" | "l" | "ll" | "q" | "L" | "j" | "z" | "t" |
//	            "Z" | "Q" | "F" | "M" | "N" | "P" | "R" [ "*" | "N" | "Z" | "U" | "D" | "Y" ] .
//
// The parser is a finite state machine over character classes. Every
// (state, class) pair has a transition; pairs not listed in transitions lead
// to stError.

type state uint8

const (
	stError    state = iota
	stFlags          // flags
	stWidth          // width digits
	stWidthArg       // after '*' width
	stDot            // after '.'
	stPrec           // precision digits
	stPrecArg        // after ".*"
	stMods           // modifiers
	stRound          // right after R
	stDone           // conversion read
	numStates
)

type charClass uint8

const (
	cFlag  charClass = iota // - + space # '
	cZero                   // 0
	cDigit                  // 1-9
	cStar                   // *
	cDot                    // .
	cMod                    // length or type modifier other than R
	cModR                   // R
	cMode                   // rounding letter, only right after R
	cConv                   // conversion character
	cOther
	numClasses
)

var transitions = [numStates][numClasses]state{
	stFlags:    {cFlag: stFlags, cZero: stFlags, cDigit: stWidth, cStar: stWidthArg, cDot: stDot, cMod: stMods, cModR: stRound, cConv: stDone},
	stWidth:    {cZero: stWidth, cDigit: stWidth, cDot: stDot, cMod: stMods, cModR: stRound, cConv: stDone},
	stWidthArg: {cDot: stDot, cMod: stMods, cModR: stRound, cConv: stDone},
	stDot:      {cZero: stPrec, cDigit: stPrec, cStar: stPrecArg, cMod: stMods, cModR: stRound, cConv: stDone},
	stPrec:     {cZero: stPrec, cDigit: stPrec, cMod: stMods, cModR: stRound, cConv: stDone},
	stPrecArg:  {cMod: stMods, cModR: stRound, cConv: stDone},
	stMods:     {cMod: stMods, cModR: stRound, cConv: stDone},
	stRound:    {cMode: stMods, cStar: stMods, cConv: stDone},
}

const conversions = "diouxXcspneEfFgGaAb%"

func classify(st state, f string, i int) charClass {
	c := f[i]
	if st == stRound && isModeLetter(c) {
		return cMode
	}
	switch {
	case c == '0':
		return cZero
	case '1' <= c && c <= '9':
		return cDigit
	case isFlag(c):
		return cFlag
	case c == '*':
		return cStar
	case c == '.':
		return cDot
	case c == 'R':
		return cModR
	case c == 'F':
		if i+1 < len(f) && isMpfConv(f[i+1]) {
			return cMod
		}
		return cConv
	case isModifier(c):
		return cMod
	case strings.IndexByte(conversions, c) >= 0:
		return cConv
	}
	return cOther
}

// Parse parses a single directive such as "%-+12.*RNe".
func Parse(directive string) (*Directive, error) {
	return parse(Segment{Text: directive, Directive: true})
}

// Parse parses a directive segment returned by a Scanner. Unlike the Parse
// function, offsets in the result and in errors are relative to the scanned
// format string.
func (s Segment) Parse() (*Directive, error) {
	if !s.Directive {
		return nil, malformed(s, 0, "not a directive")
	}
	return parse(s)
}

func parse(tok Segment) (*Directive, error) {
	f := tok.Text
	d := &Directive{Pos: tok.Pos, Raw: f, Width: -1, Prec: -1}
	if len(f) == 0 || f[0] != '%' {
		return nil, malformed(tok, 0, "directive must start with '%%'")
	}
	var n int64 // width or precision being read
	st := stFlags
	for i := 1; i < len(f); i++ {
		c := f[i]
		cl := classify(st, f, i)
		next := transitions[st][cl]
		switch next {
		case stError:
			if st == stRound || cl == cOther {
				return nil, malformed(tok, i, "unexpected character")
			}
			return nil, malformed(tok, i, "misplaced character")
		case stFlags:
			d.Flags |= Flags(1 << strings.IndexByte(flagChars, c))
		case stWidth, stPrec:
			if next != st {
				n = 0
			}
			n = n*10 + int64(c-'0')
			v, err := safecast.Conv[int32](n)
			if err != nil {
				return nil, malformed(tok, i, "width or precision overflow")
			}
			if next == stWidth {
				d.Width = int(v)
			} else {
				d.Prec = int(v)
			}
		case stWidthArg:
			d.WidthArg = true
		case stDot:
			d.Prec = 0
		case stPrecArg:
			d.PrecArg = true
			d.Prec = -1
		case stMods, stRound:
			if st == stRound {
				if c == '*' {
					d.ModeArg = true
				} else {
					d.Mode, _ = ModeFromLetter(c)
					d.ModeSet = true
				}
				break
			}
			if err := d.addModifier(tok, i); err != nil {
				return nil, err
			}
		case stDone:
			if i != len(f)-1 {
				return nil, malformed(tok, i+1, "trailing characters after conversion")
			}
			if err := d.setVerb(tok, i); err != nil {
				return nil, err
			}
			return d, nil
		}
		st = next
	}
	return nil, malformed(tok, len(f), "missing conversion character")
}

func (d *Directive) addModifier(tok Segment, i int) error {
	c := tok.Text[i]
	prev := tok.Text[i-1]
	t := TypeNone
	switch c {
	case 'h':
		t = TypeShort
		if d.Type == TypeShort && prev == 'h' {
			d.Type = TypeChar
			return nil
		}
	case 'l':
		t = TypeLong
		if d.Type == TypeLong && prev == 'l' {
			d.Type = TypeLongLong
			return nil
		}
	case 'q':
		t = TypeLongLong
	case 'L':
		t = TypeLongDouble
	case 'j':
		t = TypeIntmax
	case 'z':
		t = TypeSize
	case 't':
		t = TypePtrdiff
	case 'R':
		t = TypeFloat
	case 'Z':
		t = TypeInt
	case 'Q':
		t = TypeRat
	case 'F':
		t = TypeMpf
	case 'M':
		t = TypeLimb
	case 'N':
		t = TypeLimbArray
	case 'P':
		t = TypePrec
	}
	if d.Type != TypeNone {
		return malformed(tok, i, "conflicting type modifier")
	}
	d.Type = t
	return nil
}

func (d *Directive) setVerb(tok Segment, i int) error {
	c := tok.Text[i]
	if !d.Type.Legal(c) {
		if d.Type == TypeNone {
			return malformed(tok, i, "conversion requires a type modifier")
		}
		return malformed(tok, i, "conversion not allowed with modifier %s", d.Type)
	}
	if d.Flags.Has(FlagGroup) && strings.IndexByte("fFgG", c) < 0 {
		return malformed(tok, i, "grouping flag not allowed with this conversion")
	}
	d.Verb = c
	return nil
}
