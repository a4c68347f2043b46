package main

import (
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/db47h/bigfmt"
)

// A countTarget holds the destination of a %n directive.
type countTarget struct {
	directive string
	pos       int
	read      func() string
}

// An argBuilder types command-line operands from the directives of a format
// string, in the order the directives consume them.
type argBuilder struct {
	s        *settings
	operands []string
	args     []bigfmt.Arg
	counts   []countTarget
}

func buildArgs(s *settings, format string, operands []string) (*argBuilder, error) {
	b := &argBuilder{s: s, operands: operands}
	for sc := bigfmt.Scan(format); sc.Next(); {
		seg := sc.Segment()
		if !seg.Directive {
			continue
		}
		d, err := seg.Parse()
		if err != nil {
			return nil, err
		}
		if err := b.directive(d); err != nil {
			return nil, fmt.Errorf("%s at offset %d: %w", d.Raw, d.Pos, err)
		}
	}
	if len(b.operands) > 0 {
		return nil, fmt.Errorf("%d unused operand(s) starting with %q", len(b.operands), b.operands[0])
	}
	return b, nil
}

func (b *argBuilder) next(what string) (string, error) {
	if len(b.operands) == 0 {
		return "", fmt.Errorf("missing %s operand", what)
	}
	s := b.operands[0]
	b.operands = b.operands[1:]
	return s, nil
}

func (b *argBuilder) add(args ...bigfmt.Arg) {
	b.args = append(b.args, args...)
}

func (b *argBuilder) directive(d *bigfmt.Directive) error {
	if d.WidthArg {
		if err := b.native("width"); err != nil {
			return err
		}
	}
	if d.PrecArg {
		if err := b.native("precision"); err != nil {
			return err
		}
	}
	if d.ModeArg {
		s, err := b.next("rounding mode")
		if err != nil {
			return err
		}
		m, ok := modeFromString(s)
		if !ok {
			return fmt.Errorf("invalid rounding mode %q", s)
		}
		b.add(bigfmt.Mode(m))
	}
	switch d.Verb {
	case '%':
		return nil
	case 'n':
		b.count(d)
		return nil
	}
	s, err := b.next("value")
	if err != nil {
		return err
	}
	return b.value(d, s)
}

func (b *argBuilder) native(what string) error {
	s, err := b.next(what)
	if err != nil {
		return err
	}
	a, err := nativeInt(s)
	if err != nil {
		return err
	}
	b.add(a)
	return nil
}

func nativeInt(s string) (bigfmt.Arg, error) {
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return bigfmt.Int(v), nil
	}
	u, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return bigfmt.Arg{}, fmt.Errorf("invalid integer %q", s)
	}
	return bigfmt.Uint(u), nil
}

func (b *argBuilder) float(s string) (*big.Float, error) {
	x, _, err := big.ParseFloat(s, 0, b.s.prec, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("invalid float %q: %w", s, err)
	}
	return x, nil
}

func isNaN(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return strings.EqualFold(s, "nan")
}

func (b *argBuilder) value(d *bigfmt.Directive, s string) error {
	switch d.Type {
	case bigfmt.TypeFloat:
		if isNaN(s) {
			b.add(bigfmt.NaN())
			return nil
		}
		x, err := b.float(s)
		if err != nil {
			return err
		}
		b.add(bigfmt.Float(x))
		return nil
	case bigfmt.TypeMpf:
		x, err := b.float(s)
		if err != nil {
			return err
		}
		b.add(bigfmt.Mpf(x))
		return nil
	case bigfmt.TypeInt:
		z, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return fmt.Errorf("invalid integer %q", s)
		}
		b.add(bigfmt.BigInt(z))
		return nil
	case bigfmt.TypeRat:
		q, ok := new(big.Rat).SetString(s)
		if !ok {
			return fmt.Errorf("invalid rational %q", s)
		}
		b.add(bigfmt.Rat(q))
		return nil
	case bigfmt.TypeLimb:
		u, err := strconv.ParseUint(s, 0, bits.UintSize)
		if err != nil {
			return fmt.Errorf("invalid limb %q", s)
		}
		b.add(bigfmt.Limb(big.Word(u)))
		return nil
	case bigfmt.TypeLimbArray:
		ws, size, err := parseLimbs(s)
		if err != nil {
			return err
		}
		b.add(bigfmt.Limbs(ws), bigfmt.Int(size))
		return nil
	case bigfmt.TypePrec:
		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid precision %q", s)
		}
		b.add(bigfmt.Prec(uint(u)))
		return nil
	}

	switch d.Verb {
	case 's':
		b.add(bigfmt.String(b.s.text(s)))
	case 'c':
		r, _ := utf8.DecodeRuneInString(b.s.text(s))
		b.add(bigfmt.Char(r))
	case 'p':
		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid address %q", s)
		}
		b.add(bigfmt.Pointer(uintptr(u)))
	case 'd', 'i', 'u', 'o', 'x', 'X':
		a, err := nativeInt(s)
		if err != nil {
			return err
		}
		b.add(a)
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid float %q", s)
		}
		b.add(bigfmt.Float64(f))
	}
	return nil
}

// parseLimbs reads a limb array written as comma separated hexadecimal words,
// least significant first, with an optional leading sign: "-ffff,1".
func parseLimbs(s string) ([]big.Word, int64, error) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "+-")
	var ws []big.Word
	if s != "" {
		for _, w := range strings.Split(s, ",") {
			u, err := strconv.ParseUint(strings.TrimPrefix(w, "0x"), 16, bits.UintSize)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid limb %q", w)
			}
			ws = append(ws, big.Word(u))
		}
	}
	size := int64(len(ws))
	if neg {
		size = -size
	}
	return ws, size, nil
}

func (b *argBuilder) count(d *bigfmt.Directive) {
	t := countTarget{directive: d.Raw, pos: d.Pos}
	switch d.Type {
	case bigfmt.TypeInt:
		z := new(big.Int)
		b.add(bigfmt.CountInt(z))
		t.read = z.String
	case bigfmt.TypeRat:
		q := new(big.Rat)
		b.add(bigfmt.CountRat(q))
		t.read = q.RatString
	case bigfmt.TypeFloat, bigfmt.TypeMpf:
		x := new(big.Float)
		b.add(bigfmt.CountFloat(x))
		t.read = func() string { return x.Text('g', -1) }
	case bigfmt.TypeLimb:
		w := new(big.Word)
		b.add(bigfmt.CountLimb(w))
		t.read = func() string { return strconv.FormatUint(uint64(*w), 10) }
	case bigfmt.TypeLimbArray:
		ws := make([]big.Word, 1)
		b.add(bigfmt.CountLimbs(ws), bigfmt.Int(1))
		t.read = func() string { return strconv.FormatUint(uint64(ws[0]), 10) }
	default:
		n := new(int64)
		b.add(bigfmt.Count(n))
		t.read = func() string { return strconv.FormatInt(*n, 10) }
	}
	b.counts = append(b.counts, t)
}
