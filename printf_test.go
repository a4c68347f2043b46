// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfmt_test

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"math/bits"
	"strings"
	"sync"
	"testing"

	"github.com/db47h/bigfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func bf(f float64) *big.Float { return big.NewFloat(f) }

func TestSprintf(t *testing.T) {
	inf := bf(math.Inf(1))
	for _, test := range []struct {
		format string
		args   []bigfmt.Arg
		want   string
	}{
		// extended floats, default precision
		{"%Ra", []bigfmt.Arg{bigfmt.Float(bf(-1))}, "-0x1p+0"},
		{"%Rb", []bigfmt.Arg{bigfmt.Float(bf(-1))}, "-1p+0"},
		{"%Re", []bigfmt.Arg{bigfmt.Float(bf(-1))}, "-1e+00"},
		{"%Rf", []bigfmt.Arg{bigfmt.Float(bf(-1))}, "-1"},
		{"%Rg", []bigfmt.Arg{bigfmt.Float(bf(-1))}, "-1"},
		{"%Re", []bigfmt.Arg{bigfmt.Float(bf(16))}, "1.6e+01"},
		{"%Rf", []bigfmt.Arg{bigfmt.Float(bf(16))}, "16"},
		{"%Ra", []bigfmt.Arg{bigfmt.Float(bf(3))}, "0x1.8p+1"},
		{"%Rb", []bigfmt.Arg{bigfmt.Float(bf(3))}, "1.1p+1"},
		{"%RA", []bigfmt.Arg{bigfmt.Float(bf(0.1))}, "0X1.999999999999AP-4"},
		{"%Re", []bigfmt.Arg{bigfmt.Float(bf(0.1))}, "1.0000000000000001e-01"},
		{"%Rg", []bigfmt.Arg{bigfmt.Float(bf(math.Ldexp(1, -13)))}, "0.0001220703125"},
		{"%Rg", []bigfmt.Arg{bigfmt.Float(bf(math.Ldexp(1, -14)))}, "6.103515625e-05"},
		{"%Rf", []bigfmt.Arg{bigfmt.Float(bf(0))}, "0"},
		{"%Re", []bigfmt.Arg{bigfmt.Float(bf(math.Copysign(0, -1)))}, "-0e+00"},
		{"%*RA", []bigfmt.Arg{bigfmt.Int(10), bigfmt.Float(bf(16))}, "    0X1P+4"},

		// extended floats, explicit precision and rounding
		{"%#.2Rf", []bigfmt.Arg{bigfmt.Float(bf(-1))}, "-1.00"},
		{"%.0Re", []bigfmt.Arg{bigfmt.Float(bf(8))}, "8e+00"},
		{"%.0Re", []bigfmt.Arg{bigfmt.Float(bf(2.5))}, "2e+00"},
		{"%.0Re", []bigfmt.Arg{bigfmt.Float(bf(3.5))}, "4e+00"},
		{"%#.0Re", []bigfmt.Arg{bigfmt.Float(bf(8))}, "8.e+00"},
		{"%.2Rf", []bigfmt.Arg{bigfmt.Float(bf(0.125))}, "0.12"},
		{"%.2Rf", []bigfmt.Arg{bigfmt.Float(bf(0.375))}, "0.38"},
		{"%.2RUf", []bigfmt.Arg{bigfmt.Float(bf(-0.125))}, "-0.12"},
		{"%.2RDf", []bigfmt.Arg{bigfmt.Float(bf(-0.125))}, "-0.13"},
		{"%.2RYf", []bigfmt.Arg{bigfmt.Float(bf(0.121))}, "0.13"},
		{"%.2RZf", []bigfmt.Arg{bigfmt.Float(bf(0.129))}, "0.12"},
		{"%.1Rf", []bigfmt.Arg{bigfmt.Float(bf(9.96))}, "10.0"},
		{"%.1Rf", []bigfmt.Arg{bigfmt.Float(bf(0.04))}, "0.0"},
		{"%.1RUf", []bigfmt.Arg{bigfmt.Float(bf(0.04))}, "0.1"},
		{"%.3Rg", []bigfmt.Arg{bigfmt.Float(bf(1234.5))}, "1.23e+03"},
		{"%#.6Rg", []bigfmt.Arg{bigfmt.Float(bf(1.5))}, "1.50000"},
		{"%#.0RNg", []bigfmt.Arg{bigfmt.Float(bf(-1))}, "-1."},
		{"%.1Ra", []bigfmt.Arg{bigfmt.Float(bf(1.9375))}, "0x1.fp+0"},
		{"%.0Ra", []bigfmt.Arg{bigfmt.Float(bf(1.9375))}, "0x1p+1"},
		{"%.0Rb", []bigfmt.Arg{bigfmt.Float(bf(1.75))}, "1p+1"},
		{"%R*e", []bigfmt.Arg{bigfmt.Mode(bigfmt.ToZero), bigfmt.Float(bf(2.0 / 3))}, "6.6666666666666662e-01"},

		// special values
		{"%Rf", []bigfmt.Arg{bigfmt.Float(inf)}, "inf"},
		{"%RE", []bigfmt.Arg{bigfmt.Float(new(big.Float).Neg(inf))}, "-INF"},
		{"%010Rf", []bigfmt.Arg{bigfmt.Float(inf)}, "       inf"},
		{"%+Rf", []bigfmt.Arg{bigfmt.Float(inf)}, "+inf"},
		{"%+Rg", []bigfmt.Arg{bigfmt.NaN()}, "nan"},
		{"%-6RG|", []bigfmt.Arg{bigfmt.NaN()}, "NAN   |"},
		{"%e", []bigfmt.Arg{bigfmt.Float64(math.NaN())}, "nan"},

		// flags and fields
		{"%010.2Rf", []bigfmt.Arg{bigfmt.Float(bf(-1.5))}, "-000001.50"},
		{"%-10.2Rf|", []bigfmt.Arg{bigfmt.Float(bf(-1.5))}, "-1.50     |"},
		{"% .1Rf", []bigfmt.Arg{bigfmt.Float(bf(1.5))}, " 1.5"},
		{"%+.1Re", []bigfmt.Arg{bigfmt.Float(bf(1.5))}, "+1.5e+00"},
		{"%012Ra", []bigfmt.Arg{bigfmt.Float(bf(3))}, "0x00001.8p+1"},
		{"%'.2Rf", []bigfmt.Arg{bigfmt.Float(bf(1234567.5))}, "1,234,567.50"},
		{"%'012.1Rf", []bigfmt.Arg{bigfmt.Float(bf(1234.5))}, "000001,234.5"},
		{"%'.1Rf", []bigfmt.Arg{bigfmt.Float(bf(123.5))}, "123.5"},
		{"%'Rg", []bigfmt.Arg{bigfmt.Float(bf(123456))}, "123,456"},

		// mpf and native floats
		{"%Fe", []bigfmt.Arg{bigfmt.Mpf(bf(-1))}, "-1.000000e+00"},
		{"%Ff", []bigfmt.Arg{bigfmt.Mpf(bf(16))}, "16.000000"},
		{"%FA", []bigfmt.Arg{bigfmt.Mpf(bf(16))}, "0X1P+4"},
		{"%e", []bigfmt.Arg{bigfmt.Float64(-1.25)}, "-1.250000e+00"},
		{"%*f", []bigfmt.Arg{bigfmt.Int(3), bigfmt.Float64(-1.25)}, "-1.250000"},
		{"%Lf", []bigfmt.Arg{bigfmt.Float64(-1.25)}, "-1.250000"},
		{"%g", []bigfmt.Arg{bigfmt.Float64(100000)}, "100000"},
		{"%g", []bigfmt.Arg{bigfmt.Float64(1e6)}, "1e+06"},
		{"%g", []bigfmt.Arg{bigfmt.Float64(0.0001)}, "0.0001"},
		{"%G", []bigfmt.Arg{bigfmt.Float64(1e-5)}, "1E-05"},
		{"%.0f", []bigfmt.Arg{bigfmt.Float64(0.5)}, "0"},
		{"%.0f", []bigfmt.Arg{bigfmt.Float64(1.5)}, "2"},
		{"%a", []bigfmt.Arg{bigfmt.Float64(1.25)}, "0x1.4p+0"},
		{"%a", []bigfmt.Arg{bigfmt.Float64(0)}, "0x0p+0"},
		{"%E", []bigfmt.Arg{bigfmt.Float64(math.Inf(1))}, "INF"},

		// native integers
		{"%d", []bigfmt.Arg{bigfmt.Int(-42)}, "-42"},
		{"%x", []bigfmt.Arg{bigfmt.Int(-1)}, "ffffffff"},
		{"%u", []bigfmt.Arg{bigfmt.Int(-1)}, "4294967295"},
		{"%lx", []bigfmt.Arg{bigfmt.Int(-1)}, "ffffffffffffffff"},
		{"%llx", []bigfmt.Arg{bigfmt.Uint(math.MaxUint64)}, "ffffffffffffffff"},
		{"%hhu", []bigfmt.Arg{bigfmt.Int(257)}, "1"},
		{"%hhd", []bigfmt.Arg{bigfmt.Int(255)}, "-1"},
		{"%hhi", []bigfmt.Arg{bigfmt.Int(-1)}, "-1"},
		{"%hd", []bigfmt.Arg{bigfmt.Int(40000)}, "-25536"},
		{"%jd", []bigfmt.Arg{bigfmt.Int(math.MinInt64)}, "-9223372036854775808"},
		{"%08.3d", []bigfmt.Arg{bigfmt.Int(42)}, "     042"},
		{"%08d", []bigfmt.Arg{bigfmt.Int(-42)}, "-0000042"},
		{"%-5d|", []bigfmt.Arg{bigfmt.Int(42)}, "42   |"},
		{"%+d % d", []bigfmt.Arg{bigfmt.Int(1), bigfmt.Int(1)}, "+1  1"},
		{"%#o %#x %#X", []bigfmt.Arg{bigfmt.Int(8), bigfmt.Int(255), bigfmt.Int(255)}, "010 0xff 0XFF"},
		{"%#x", []bigfmt.Arg{bigfmt.Int(0)}, "0"},
		{"%.0d|", []bigfmt.Arg{bigfmt.Int(0)}, "|"},
		{"%Pu", []bigfmt.Arg{bigfmt.Prec(53)}, "53"},

		// arbitrary-precision integers and rationals
		{"%Zd", []bigfmt.Arg{bigfmt.BigInt(new(big.Int).Lsh(big.NewInt(1), 70))}, "1180591620717411303424"},
		{"%Zx", []bigfmt.Arg{bigfmt.BigInt(big.NewInt(-255))}, "-ff"},
		{"%+Zi", []bigfmt.Arg{bigfmt.BigInt(big.NewInt(7))}, "+7"},
		{"%Qx", []bigfmt.Arg{bigfmt.Rat(big.NewRat(-1, 1))}, "-1"},
		{"%Qd", []bigfmt.Arg{bigfmt.Rat(big.NewRat(-3, 4))}, "-3/4"},
		{"%#Qx", []bigfmt.Arg{bigfmt.Rat(big.NewRat(255, 16))}, "0xff/0x10"},
		{"%10Qd|", []bigfmt.Arg{bigfmt.Rat(big.NewRat(1, 3))}, "       1/3|"},

		// limbs
		{"%Mx", []bigfmt.Arg{bigfmt.Limb(^big.Word(0))}, strings.Repeat("f", bits.UintSize/4)},
		{"%Nx", []bigfmt.Arg{bigfmt.Limbs([]big.Word{^big.Word(0), 1}), bigfmt.Int(2)}, "1" + strings.Repeat("f", bits.UintSize/4)},
		{"%Nd", []bigfmt.Arg{bigfmt.Limbs([]big.Word{5, 1}), bigfmt.Int(-1)}, "-5"},
		{"%Nd", []bigfmt.Arg{bigfmt.Limbs(nil), bigfmt.Int(0)}, "0"},

		// text
		{"%s|%5s|%-5s|", []bigfmt.Arg{bigfmt.String("go"), bigfmt.String("go"), bigfmt.String("go")}, "go|   go|go   |"},
		{"%.2s", []bigfmt.Arg{bigfmt.String("hello")}, "he"},
		{"%.1s", []bigfmt.Arg{bigfmt.String("é")}, ""},
		{"%c%c", []bigfmt.Arg{bigfmt.Char('a'), bigfmt.Int('b')}, "ab"},
		{"%lc", []bigfmt.Arg{bigfmt.Int('é')}, "é"},
		{"%p", []bigfmt.Arg{bigfmt.Pointer(nil)}, "(nil)"},
		{"%p", []bigfmt.Arg{bigfmt.Pointer(uintptr(0xbeef))}, "0xbeef"},
		{"%p", []bigfmt.Arg{bigfmt.Pointer((*int)(nil))}, "(nil)"},
		{"100%%", nil, "100%"},
		{"%5%|", nil, "    %|"},

		// argument order
		{"%*d|", []bigfmt.Arg{bigfmt.Int(-4), bigfmt.Int(7)}, "7   |"},
		{"%.*d", []bigfmt.Arg{bigfmt.Int(-1), bigfmt.Int(7)}, "7"},
		{"%*.*R*f|%d", []bigfmt.Arg{bigfmt.Int(10), bigfmt.Int(2), bigfmt.Mode(bigfmt.ToZero), bigfmt.Float(bf(1.999)), bigfmt.Int(7)}, "      1.99|7"},
		{"%d", []bigfmt.Arg{bigfmt.Int(1), bigfmt.Int(2)}, "1"},
	} {
		got, err := bigfmt.Sprintf(test.format, test.args...)
		if assert.NoError(t, err, test.format) {
			assert.Equal(t, test.want, got, test.format)
		}
	}
}

// TestMixed replays a sequence of calls mixing native and extended
// arguments. Each call stores its byte count in a target that may be read
// back as an operand by later calls.
func TestMixed(t *testing.T) {
	var (
		uch  uint8 = 1
		ush  uint16 = 1
		ulo  uint64 = 1
		i    int32
		si   uintptr
		ullo uint64
		mpfr = bf(-1)
		mpf  = bf(-1)
		mpz  = big.NewInt(1)
		mpq  = big.NewRat(-1, 1)
		limb = []big.Word{^big.Word(0), ^big.Word(0), ^big.Word(0)}
	)
	check := func(format string, args ...bigfmt.Arg) {
		t.Helper()
		var buf bytes.Buffer
		n, err := bigfmt.Fprintf(&buf, format, args...)
		require.NoError(t, err, format)
		assert.Equal(t, buf.Len(), n, format)
	}

	check("a. %Ra, b. %hhu, c. %u, d. %lx%hhn\n",
		bigfmt.Float(mpfr), bigfmt.Uint(uint64(uch)), bigfmt.Int(1), bigfmt.Uint(ulo), bigfmt.Count(&uch))
	assert.Equal(t, uint8(28), uch)

	check("a. %hhi, b. %Rb, c. %u, d. %li%ln\n",
		bigfmt.Int(-1), bigfmt.Float(mpfr), bigfmt.Int(-1), bigfmt.Int(-1), bigfmt.Count(&ulo))
	assert.Equal(t, uint64(37), ulo)

	check("a. %hi, b. %*f, c. %Re%hn\n",
		bigfmt.Uint(uint64(ush)), bigfmt.Int(3), bigfmt.Float64(-1.25), bigfmt.Float(mpfr), bigfmt.Count(&ush))
	assert.Equal(t, uint16(29), ush)

	check("a. %hi, b. %e, c. %#.2Rf%n\n",
		bigfmt.Int(-1), bigfmt.Float64(-1.25), bigfmt.Float(mpfr), bigfmt.Count(&i))
	assert.Equal(t, int32(33), i)

	check("a. %R*A, b. %Fe, c. %i%zn\n",
		bigfmt.Mode(bigfmt.ToNearestEven), bigfmt.Float(mpfr), bigfmt.Mpf(mpf), bigfmt.Int(1), bigfmt.Count(&si))
	assert.Equal(t, uintptr(34), si)

	check("a. %Pu, b. %c, c. %Lf, d. %Zi%Zn\n",
		bigfmt.Prec(53), bigfmt.Char('a'), bigfmt.Float64(-1.25), bigfmt.BigInt(mpz), bigfmt.CountInt(mpz))
	assert.Equal(t, int64(31), mpz.Int64())

	check("%% a. %#.2RNg, b. %Qx%Rn, c. %td, d. %p\n",
		bigfmt.Float(mpfr), bigfmt.Rat(mpq), bigfmt.CountFloat(mpfr), bigfmt.Int(1), bigfmt.Pointer(&i))
	assert.Equal(t, 0, mpfr.Cmp(bf(16)))

	check("a. %Mx b. %Re%Mn", bigfmt.Limb(limb[0]), bigfmt.Float(mpfr), bigfmt.CountLimb(&limb[0]))
	assert.Equal(t, big.Word(14+bits.UintSize/4), limb[0])
	assert.Equal(t, ^big.Word(0), limb[1])
	assert.Equal(t, ^big.Word(0), limb[2])

	limb[0] = ^big.Word(0)
	check("a. %Re .b %Nx%Nn",
		bigfmt.Float(mpfr), bigfmt.Limbs(limb), bigfmt.Int(3), bigfmt.CountLimbs(limb), bigfmt.Int(2))
	assert.Equal(t, big.Word(14+3*bits.UintSize/4), limb[0])
	assert.Equal(t, big.Word(0), limb[1])
	assert.Equal(t, ^big.Word(0), limb[2])

	check("a. %Re, b. %llx%Qn\n", bigfmt.Float(mpfr), bigfmt.Uint(math.MaxUint64), bigfmt.CountRat(mpq))
	assert.Equal(t, 0, mpq.Cmp(big.NewRat(31, 1)))

	check("a. %lli, b. %Rf%Fn\n", bigfmt.Int(-1), bigfmt.Float(mpfr), bigfmt.CountFloat(mpf))
	assert.Equal(t, 0, mpf.Cmp(bf(12)))

	check("a. %qi, b. %Rf%qn\n", bigfmt.Int(-1), bigfmt.Float(mpfr), bigfmt.Count(&ullo))
	assert.Equal(t, uint64(12), ullo)

	check("a. %*RA, b. %ji%Qn\n", bigfmt.Int(10), bigfmt.Float(mpfr), bigfmt.Int(-1), bigfmt.CountRat(mpq))
	assert.Equal(t, 0, mpq.Cmp(big.NewRat(20, 1)))

	check("a. %.*Re, b. %jx%Fn\n", bigfmt.Int(10), bigfmt.Float(mpfr), bigfmt.Uint(1), bigfmt.CountFloat(mpf))
	assert.Equal(t, 0, mpf.Cmp(bf(25)))
}

func TestCountTruncation(t *testing.T) {
	var (
		b  uint8
		sb int8
		h  int16
		z  = new(big.Int)
	)
	format := strings.Repeat("x", 300) + "%x%hhn%hhn%hn%Zn"
	n, err := bigfmt.Sprintf(format, bigfmt.Int(255), bigfmt.Count(&b), bigfmt.Count(&sb), bigfmt.Count(&h), bigfmt.CountInt(z))
	require.NoError(t, err)
	assert.Len(t, n, 302)
	assert.Equal(t, uint8(46), b)
	assert.Equal(t, int8(46), sb)
	assert.Equal(t, int16(302), h)
	assert.Equal(t, int64(302), z.Int64())

	sb = 0
	_, err = bigfmt.Sprintf(strings.Repeat("x", 200)+"%hhn", bigfmt.Count(&sb))
	require.NoError(t, err)
	assert.Equal(t, int8(-56), sb)

	ws := []big.Word{7, 8, 9}
	_, err = bigfmt.Sprintf("abc%Nn", bigfmt.CountLimbs(ws), bigfmt.Int(2))
	require.NoError(t, err)
	assert.Equal(t, []big.Word{3, 0, 9}, ws)
}

type failWriter struct {
	limit int
	buf   bytes.Buffer
}

var errFull = errors.New("device full")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.limit {
		n := w.limit - w.buf.Len()
		w.buf.Write(p[:n])
		return n, errFull
	}
	return w.buf.Write(p)
}

func TestErrors(t *testing.T) {
	for _, test := range []struct {
		format  string
		args    []bigfmt.Arg
		kind    error
		pos     int
		partial string
	}{
		{"abc %k", nil, bigfmt.ErrMalformedDirective, 5, "abc "},
		{"%d %5", []bigfmt.Arg{bigfmt.Int(1)}, bigfmt.ErrMalformedDirective, 5, "1 "},
		{"%Rd", []bigfmt.Arg{bigfmt.Float(bf(1))}, bigfmt.ErrMalformedDirective, 2, ""},
		{"x=%d", nil, bigfmt.ErrArgumentUnderflow, 2, "x="},
		{"%*d", []bigfmt.Arg{bigfmt.Int(3)}, bigfmt.ErrArgumentUnderflow, 0, ""},
		{"%Nd", []bigfmt.Arg{bigfmt.Limbs([]big.Word{1})}, bigfmt.ErrArgumentUnderflow, 0, ""},
		{"ok %Zd", []bigfmt.Arg{bigfmt.Int(1)}, bigfmt.ErrArgumentType, 3, "ok "},
		{"%d", []bigfmt.Arg{bigfmt.Float64(1)}, bigfmt.ErrArgumentType, 0, ""},
		{"%Re", []bigfmt.Arg{bigfmt.Mpf(bf(1))}, bigfmt.ErrArgumentType, 0, ""},
		{"%s", []bigfmt.Arg{bigfmt.Int(1)}, bigfmt.ErrArgumentType, 0, ""},
		{"p=%p", []bigfmt.Arg{bigfmt.Pointer(42)}, bigfmt.ErrArgumentType, 2, "p="},
		{"%p", []bigfmt.Arg{bigfmt.Pointer("str")}, bigfmt.ErrArgumentType, 0, ""},
		{"%*d", []bigfmt.Arg{bigfmt.Float64(1), bigfmt.Int(1)}, bigfmt.ErrArgumentType, 0, ""},
		{"%R*e", []bigfmt.Arg{bigfmt.Int(1), bigfmt.Float(bf(1))}, bigfmt.ErrArgumentType, 0, ""},
		{"%n", []bigfmt.Arg{bigfmt.Int(1)}, bigfmt.ErrArgumentType, 0, ""},
		{"%Zd", []bigfmt.Arg{bigfmt.BigInt(nil)}, bigfmt.ErrArgumentType, 0, ""},
		{"%Nd", []bigfmt.Arg{bigfmt.Limbs([]big.Word{1}), bigfmt.Int(2)}, bigfmt.ErrArgumentType, 0, ""},
		{"%e|%Rf", []bigfmt.Arg{bigfmt.Float64(1), bigfmt.Float(new(big.Float).SetMantExp(bf(1), 1<<25))}, bigfmt.ErrUnrepresentableExponent, 3, "1.000000e+00|"},
	} {
		got, err := bigfmt.Sprintf(test.format, test.args...)
		if !assert.Error(t, err, test.format) {
			continue
		}
		assert.True(t, errors.Is(err, test.kind), "%s: got %v; want %v", test.format, err, test.kind)
		var fe *bigfmt.FormatError
		if assert.True(t, errors.As(err, &fe), test.format) {
			assert.Equal(t, test.pos, fe.Pos, test.format)
		}
		assert.Equal(t, test.partial, got, test.format)

		n, err := bigfmt.Fprintf(new(bytes.Buffer), test.format, test.args...)
		assert.Equal(t, -1, n, test.format)
		assert.Error(t, err, test.format)
	}
}

func TestSinkError(t *testing.T) {
	w := &failWriter{limit: 4}
	n, err := bigfmt.Fprintf(w, "abc%sdef", bigfmt.String("xyz"))
	assert.Equal(t, -1, n)
	assert.True(t, errors.Is(err, bigfmt.ErrSinkWrite), "got %v", err)
	assert.Contains(t, err.Error(), errFull.Error())
	var fe *bigfmt.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 3, fe.Pos)
	assert.Equal(t, "abcx", w.buf.String())
}

func TestMaxFixedExp(t *testing.T) {
	x := new(big.Float).SetMantExp(bf(1), 100)
	p := bigfmt.Printer{MaxFixedExp: 64}
	_, err := p.Sprintf("%Rf", bigfmt.Float(x))
	assert.True(t, errors.Is(err, bigfmt.ErrUnrepresentableExponent), "got %v", err)

	// other notations are not limited
	s, err := p.Sprintf("%Re", bigfmt.Float(x))
	require.NoError(t, err)
	assert.Equal(t, "1.2676506002282294e+30", s)

	s, err = bigfmt.Sprintf("%Rf", bigfmt.Float(x))
	require.NoError(t, err)
	// as many significant digits as the precision of x needs
	assert.Equal(t, "1267650600228229400000000000000", s)

	// tiny operands need no more digits than the precision asks for
	tiny := new(big.Float).SetMantExp(bf(1), -1<<25)
	for _, test := range []struct {
		format string
		x      *big.Float
		want   string
	}{
		{"%.3Rf", tiny, "0.000"},
		{"%.3RUf", tiny, "0.001"},
		{"%.3RYf", tiny, "0.001"},
		{"%.3RDf", tiny, "0.000"},
		{"%.3RDf", new(big.Float).Neg(tiny), "-0.001"},
		{"%.3RZf", new(big.Float).Neg(tiny), "-0.000"},
		{"%.0RUf", tiny, "1"},
		{"%#.0Rf", tiny, "0."},
	} {
		s, err := bigfmt.Sprintf(test.format, bigfmt.Float(test.x))
		if assert.NoError(t, err, test.format) {
			assert.Equal(t, test.want, s, test.format)
		}
	}
	// without a precision, the leading zeros of the fraction are bounded
	_, err = bigfmt.Sprintf("%Rf", bigfmt.Float(tiny))
	assert.True(t, errors.Is(err, bigfmt.ErrUnrepresentableExponent), "got %v", err)
}

func TestHugeExponents(t *testing.T) {
	pow2 := func(e int) *big.Float { return new(big.Float).SetMantExp(bf(1), e) }
	for _, test := range []struct {
		format string
		x      *big.Float
		want   string
	}{
		{"%.3Re", pow2(-1 << 24), "5.499e-5050446"},
		{"%.3RZe", pow2(-1 << 24), "5.498e-5050446"},
		{"%.3Re", pow2(1 << 30), "4.197e+323228496"},
		{"%.3RUe", pow2(1 << 30), "4.198e+323228496"},
		{"%.3RDe", new(big.Float).Neg(pow2(1 << 30)), "-4.198e+323228496"},
		{"%.4Rg", pow2(1 << 30), "4.197e+323228496"},
		{"%.3Re", pow2(-1 << 30), "2.383e-323228497"},
		{"%.3RZe", pow2(-1 << 30), "2.382e-323228497"},
		{"%.5Re", pow2(1<<31 - 2), "4.40403e+646456992"},
		{"%.5RE", pow2(-1<<31 + 2), "2.27065E-646456993"},
		{"%Ra", pow2(1 << 30), "0x1p+1073741824"},
		{"%.3Rf", pow2(-1 << 30), "0.000"},
	} {
		s, err := bigfmt.Sprintf(test.format, bigfmt.Float(test.x))
		if assert.NoError(t, err, test.format) {
			assert.Equal(t, test.want, s, test.format)
		}
	}
}

func TestPrinterSettings(t *testing.T) {
	p := bigfmt.Printer{Mode: bigfmt.ToZero, Separator: " "}
	s, err := p.Sprintf("%'.2Rf %.2RNf %.2f", bigfmt.Float(bf(1234.999)), bigfmt.Float(bf(1.999)), bigfmt.Float64(1.999))
	require.NoError(t, err)
	// the Printer's mode does not apply to native floats
	assert.Equal(t, "1 234.99 2.00 2.00", s)
}

func TestSnprintf(t *testing.T) {
	buf := make([]byte, 5)
	n, err := bigfmt.Snprintf(buf, "hello %s", bigfmt.String("world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, "hello", string(buf))

	n, err = bigfmt.Snprintf(nil, "%Zd", bigfmt.BigInt(big.NewInt(12345)))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestAppendf(t *testing.T) {
	dst := []byte("x = ")
	dst, err := bigfmt.Appendf(dst, "%.3Rf", bigfmt.Float(bf(math.Pi)))
	require.NoError(t, err)
	assert.Equal(t, "x = 3.142", string(dst))
}

func TestConcurrentUse(t *testing.T) {
	p := &bigfmt.Printer{Mode: bigfmt.AwayFromZero}
	x := bf(2.0 / 3)
	var g errgroup.Group
	var mu sync.Mutex
	seen := map[string]int{}
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			s, err := p.Sprintf("%'12.4Rf|%Re|%.3Ra", bigfmt.Float(x), bigfmt.Float(x), bigfmt.Float(x))
			if err != nil {
				return err
			}
			mu.Lock()
			seen[s]++
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, map[string]int{"      0.6667|6.6666666666666663e-01|0x1.556p-1": 32}, seen)
	assert.Equal(t, "0.66666666666666663", x.Text('g', 17))
}
