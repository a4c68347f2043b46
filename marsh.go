// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements text encoding/decoding of rounding modes and
// directives.

package bigfmt

import (
	"fmt"
)

// MarshalText implements the encoding.TextMarshaler interface. Modes with a
// directive letter marshal to that letter, ToNearestAway to its name.
func (m RoundingMode) MarshalText() (text []byte, err error) {
	if c := m.Letter(); c != 0 {
		return []byte{c}, nil
	}
	if m > ToPositiveInf {
		return nil, fmt.Errorf("bigfmt: cannot marshal invalid %s", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. It accepts
// a directive letter (N, Z, U, D or Y) or a mode name such as "ToZero".
func (m *RoundingMode) UnmarshalText(text []byte) error {
	if len(text) == 1 {
		if mode, ok := ModeFromLetter(text[0]); ok {
			*m = mode
			return nil
		}
	}
	for mode := ToNearestEven; mode <= ToPositiveInf; mode++ {
		if mode.String() == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("bigfmt: cannot unmarshal %q into a RoundingMode", text)
}

// MarshalText implements the encoding.TextMarshaler interface. The directive
// is marshaled in canonical form; its position is not.
func (d *Directive) MarshalText() (text []byte, err error) {
	if d == nil {
		return []byte("<nil>"), nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (d *Directive) UnmarshalText(text []byte) error {
	p, err := Parse(string(text))
	if err != nil {
		return fmt.Errorf("bigfmt: cannot unmarshal %q into a *bigfmt.Directive (%v)", text, err)
	}
	*d = *p
	return nil
}
