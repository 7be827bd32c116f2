// Package safeconv provides checked numeric conversions.
package safeconv

import "math"

// Bounds of float64 values that convert to int64 without overflow.
const (
	minExactInt64 = -(1 << 63)
	maxExactInt64 = 1 << 63
)

// FloatToInt64 converts f to int64 when f is finite, integral and in range.
// The second return value reports whether the conversion was exact.
func FloatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	if f != math.Trunc(f) {
		return 0, false
	}

	if f < minExactInt64 || f >= maxExactInt64 {
		return 0, false
	}

	return int64(f), true
}

// MustInt64ToUint64 converts v to uint64, panicking if v is negative.
// Use only when negative values are logically impossible.
func MustInt64ToUint64(v int64) uint64 {
	if v < 0 {
		panic("safeconv: negative int64")
	}

	return uint64(v)
}
