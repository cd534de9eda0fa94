// Package wire implements Cain's byte-level primitives: the append-only
// Buffer and position-tracked Reader, and the integer sizing policy that
// drives every length, index, enum-index, and union-discriminant
// encoding.
package wire

import "math"

// Fault reports conditions that should never happen for well-formed input
// produced against a matching schema. Reader methods panic with a Fault on
// a buffer underrun; RecommendedSize and ResolveWidth return one as their
// error for a negative unsigned request or an out-of-range width. The
// codec package's exported entry points recover a panicked Fault and wrap
// a returned one into a cainerr.Error, so it never leaves the codec API.
type Fault struct {
	Msg string
}

func (f Fault) Error() string { return f.Msg }

func fault(msg string) { panic(Fault{Msg: msg}) }

// RecommendedUnsignedSize picks the narrowest of {1,2,4,8} bytes that can
// hold n as an unsigned big-endian integer.
func RecommendedUnsignedSize(n uint64) int {
	switch {
	case n <= math.MaxUint8:
		return 1
	case n <= math.MaxUint16:
		return 2
	case n <= math.MaxUint32:
		return 4
	default:
		return 8
	}
}

// RecommendedSignedSize picks the narrowest of {1,2,4,8} bytes that can
// hold n as a signed two's-complement big-endian integer.
func RecommendedSignedSize(n int64) int {
	switch {
	case n >= math.MinInt8 && n <= math.MaxInt8:
		return 1
	case n >= math.MinInt16 && n <= math.MaxInt16:
		return 2
	case n >= math.MinInt32 && n <= math.MaxInt32:
		return 4
	default:
		return 8
	}
}

// RecommendedSize implements §4.1's recommended_size(n, signed?): the
// narrowest of {1,2,4,8} bytes that fits n. Unsigned callers must pass a
// non-negative n; a negative n for an unsigned request is a caller bug and
// reported as an error rather than silently coerced.
func RecommendedSize(n int64, signed bool) (int, error) {
	if !signed {
		if n < 0 {
			return 0, Fault{Msg: "recommended_size: negative value requested as unsigned"}
		}
		return RecommendedUnsignedSize(uint64(n)), nil
	}
	return RecommendedSignedSize(n), nil
}

// modifier width/sign resolution for the generic Int/Binary/Range codecs.
// base is the starting byte width; each "long" token widens it by one
// byte and each "short" token narrows it by one byte. "signed"/"unsigned"
// tokens override baseSigned. The result must land in [1,8].
func ResolveWidth(tokens []string, base int, baseSigned bool) (width int, signed bool, err error) {
	width = base
	signed = baseSigned

	for _, t := range tokens {
		switch t {
		case "long":
			width++
		case "short":
			width--
		case "signed":
			signed = true
		case "unsigned":
			signed = false
		}
	}

	if width < 1 || width > 8 {
		return 0, false, Fault{Msg: "integer width modifiers produced an out-of-range width"}
	}
	return width, signed, nil
}
