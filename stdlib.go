// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file mirrors types and constants from math/big.

package bigfmt

import (
	"fmt"
	"math/big"
)

const digits = "0123456789abcdef"
const upperDigits = "0123456789ABCDEF"

// DefaultMaxFixedExp is the largest binary exponent accepted by fixed notation
// ('f', 'F') for extended operands.
const DefaultMaxFixedExp = 1 << 24

// A form value describes the classification of a rendered operand.
type form byte

// The form value order is relevant - do not change!
const (
	zero form = iota
	finite
	inf
	nan
)

// RoundingMode determines how a value is rounded to the requested number of
// digits when it is rendered. The set of modes matches big.RoundingMode.
type RoundingMode byte

// These constants define supported rounding modes.
const (
	ToNearestEven RoundingMode = iota // == IEEE 754-2008 roundTiesToEven
	ToNearestAway                     // == IEEE 754-2008 roundTiesToAway
	ToZero                            // == IEEE 754-2008 roundTowardZero
	AwayFromZero                      // no IEEE 754-2008 equivalent
	ToNegativeInf                     // == IEEE 754-2008 roundTowardNegative
	ToPositiveInf                     // == IEEE 754-2008 roundTowardPositive
)

//go:generate stringer -type=RoundingMode

// modeLetters maps the rounding letters accepted after the R modifier.
var modeLetters = [...]struct {
	c    byte
	mode RoundingMode
}{
	{'N', ToNearestEven},
	{'Z', ToZero},
	{'U', ToPositiveInf},
	{'D', ToNegativeInf},
	{'Y', AwayFromZero},
}

// ModeFromLetter returns the rounding mode selected by one of the letters N,
// Z, U, D or Y, as they appear in directives like %RNe.
func ModeFromLetter(c byte) (RoundingMode, bool) {
	for _, l := range modeLetters {
		if l.c == c {
			return l.mode, true
		}
	}
	return 0, false
}

// Letter returns the directive letter selecting m. ToNearestAway has no
// letter and returns 0.
func (m RoundingMode) Letter() byte {
	for _, l := range modeLetters {
		if l.mode == m {
			return l.c
		}
	}
	return 0
}

// Big returns the big.RoundingMode equivalent to m.
func (m RoundingMode) Big() big.RoundingMode {
	return big.RoundingMode(m)
}

// mulLog10_2(x) returns ⌊x * log_10 2⌋, or one less if x > 0, or one more if
// x < 0, for |x| <= 2^32.
func mulLog10_2(x int) int {
	// log(2)/log(10) ≈ 0.30102999566 ≈ 1292913986 / 2^32
	return int(int64(x) * 1292913986 >> 32)
}

// defaultDigits returns the number of significant decimal digits that allow a
// binary value of prec bits to be read back exactly: 1 + ⌈prec * log_10 2⌉.
func defaultDigits(prec uint) int {
	if prec == 0 {
		prec = 1
	}
	return 2 + mulLog10_2(int(prec))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var _ fmt.Stringer = ToNearestEven
