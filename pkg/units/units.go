// Package units provides time unit conversions for nanosecond trace timestamps.
package units

import "math"

// Nanosecond-based multipliers.
const (
	NsPerUs = 1_000
	NsPerMs = 1_000 * NsPerUs
	NsPerS  = 1_000 * NsPerMs
)

// NsToMs converts nanoseconds to fractional milliseconds.
func NsToMs(ns float64) float64 {
	return ns / NsPerMs
}

// NsDeltaToMs converts the integer nanosecond distance between two timestamps
// to milliseconds. The subtraction happens in integer space so large epoch
// values do not lose precision.
func NsDeltaToMs(from, to int64) float64 {
	return float64(to-from) / NsPerMs
}

// MsToNs converts milliseconds back to whole nanoseconds, rounding to the
// nearest one. Sums of the results are exact where float milliseconds are not.
func MsToNs(ms float64) int64 {
	return int64(math.Round(ms * NsPerMs))
}
