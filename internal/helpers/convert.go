// Package helpers provides clamped numeric conversions.
//
// TTLs, serials and pagination values arrive as int or int64 from JSON,
// query strings and SQLite; these helpers narrow them without wrapping.
package helpers

import "math"

// ClampInt restricts v to the range [lowerLimit, upperLimit].
func ClampInt(v, lowerLimit, upperLimit int) int {
	if v < lowerLimit {
		return lowerLimit
	}
	if v > upperLimit {
		return upperLimit
	}
	return v
}

// ClampIntToUint32 converts v to uint32 with clamping.
// Values below 0 become 0; values above math.MaxUint32 become math.MaxUint32.
func ClampIntToUint32(v int) uint32 {
	return ClampInt64ToUint32(int64(v))
}

// ClampInt64ToUint32 converts v to uint32 with clamping.
func ClampInt64ToUint32(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v) //nolint:gosec // clamped to valid range
}

// MinUint32 returns the smallest value, or fallback when vals is empty.
func MinUint32(fallback uint32, vals ...uint32) uint32 {
	if len(vals) == 0 {
		return fallback
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
