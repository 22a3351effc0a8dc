// Package stats holds the arithmetic shared by every stat record kind.
package stats

// SafeFraction divides n by d, returning 0 when the denominator is 0.
// Derived percentages and per-point rates are defined through it so a
// player or team with no opportunities reads as 0 rather than NaN.
func SafeFraction(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}
