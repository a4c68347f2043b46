// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt

import "strings"

// A Segment is a piece of a format string: either a run of literal text or a
// raw directive token starting with '%'.
type Segment struct {
	Pos       int    // byte offset of the segment in the format string
	Text      string // raw text; for "%%" the literal run ends with a single '%'
	Directive bool
}

// A Scanner splits a format string into segments. It only finds token
// boundaries; grammar is checked by Parse. The zero Scanner is not usable,
// create one with Scan.
//
// A Scanner is restartable: Reset rewinds it to the start of the format.
type Scanner struct {
	format string
	pos    int
	seg    Segment
}

// Scan returns a Scanner over format.
func Scan(format string) *Scanner {
	return &Scanner{format: format}
}

// Reset rewinds s to the start of its format string.
func (s *Scanner) Reset() {
	s.pos = 0
	s.seg = Segment{}
}

// Segment returns the segment found by the last call to Next.
func (s *Scanner) Segment() Segment {
	return s.seg
}

// Next advances to the next segment and reports whether there is one.
func (s *Scanner) Next() bool {
	f := s.format
	start := s.pos
	if start >= len(f) {
		return false
	}
	if f[start] != '%' {
		i := strings.IndexByte(f[start:], '%')
		if i < 0 {
			i = len(f) - start
		}
		s.literal(start, start+i, start+i)
		return true
	}
	// "%%" is a literal '%': the run is the first byte, the second is skipped.
	if start+1 < len(f) && f[start+1] == '%' {
		s.literal(start, start+1, start+2)
		return true
	}
	end := tokenEnd(f, start+1)
	s.seg = Segment{Pos: start, Text: f[start:end], Directive: true}
	s.pos = end
	return true
}

func (s *Scanner) literal(start, end, next int) {
	s.seg = Segment{Pos: start, Text: s.format[start:end]}
	s.pos = next
}

// Segments returns all the segments of format.
func Segments(format string) []Segment {
	var segs []Segment
	for s := Scan(format); s.Next(); {
		segs = append(segs, s.Segment())
	}
	return segs
}

// tokenEnd returns the offset just past the directive body starting at i,
// that is past the first character that cannot continue a directive, or
// len(f) if the format ends first.
func tokenEnd(f string, i int) int {
	for ; i < len(f); i++ {
		c := f[i]
		switch {
		case isFlag(c) || isDigit(c) || c == '.' || c == '*':
		case isModifier(c):
		case c == 'F' && i+1 < len(f) && isMpfConv(f[i+1]):
			// mpf modifier
		case i > 0 && f[i-1] == 'R' && isModeLetter(c):
		default:
			return i + 1
		}
	}
	return len(f)
}

func isFlag(c byte) bool {
	return c == '-' || c == '+' || c == ' ' || c == '#' || c == '0' || c == '\''
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isModifier(c byte) bool {
	return strings.IndexByte("hlqLjztZQMNPR", c) >= 0
}

func isModeLetter(c byte) bool {
	_, ok := ModeFromLetter(c)
	return ok
}

func isMpfConv(c byte) bool {
	return strings.IndexByte("aAeEfFgGn", c) >= 0
}
