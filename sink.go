// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt

import (
	"fmt"
	"io"
)

// A sink receives the output of one formatting call and counts the bytes
// written so far.
type sink struct {
	w io.Writer
	n int64
}

func (s *sink) write(b []byte) error {
	m, err := s.w.Write(b)
	s.n += int64(m)
	if err == nil && m < len(b) {
		err = io.ErrShortWrite
	}
	return err
}

func (s *sink) writeString(str string) error {
	m, err := io.WriteString(s.w, str)
	s.n += int64(m)
	if err == nil && m < len(str) {
		err = io.ErrShortWrite
	}
	return err
}

// reportCount stores the current count through a count target.
func (s *sink) reportCount(store func(int64)) {
	store(s.n)
}

func sinkError(pos int, err error) error {
	return &FormatError{Pos: pos, Err: fmt.Errorf("%w: %v", ErrSinkWrite, err)}
}

// truncWriter fills a fixed buffer and silently drops the excess.
type truncWriter struct {
	buf []byte
	n   int
}

func (w *truncWriter) Write(p []byte) (int, error) {
	w.n += copy(w.buf[w.n:], p)
	return len(p), nil
}

// appendWriter appends to a byte slice.
type appendWriter struct {
	buf []byte
}

func (w *appendWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
