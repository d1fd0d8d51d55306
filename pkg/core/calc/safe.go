// Package calc holds the numeric guards shared by every engine package.
// Nothing in the engine divides without going through SafeDivide, and every
// published series is passed through FiniteSeries, so NaN and Inf never leave
// the engine.
package calc

import (
	"math"
)

// SafeDivide returns num/den, or 0 when den is zero or the result is not finite.
func SafeDivide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return Finite(num / den)
}

// Finite maps NaN and ±Inf to 0.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FiniteSeries applies Finite in place and returns the slice for chaining.
func FiniteSeries(values []float64) []float64 {
	for i, v := range values {
		values[i] = Finite(v)
	}
	return values
}

// Pct converts a 0-100 percentage into a fraction.
func Pct(v float64) float64 {
	return v / 100
}

// PositiveOrZero floors v at 0.
func PositiveOrZero(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// CeilPositive rounds up to the next whole unit; non-positive input yields 0.
func CeilPositive(v float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Ceil(v)
}
