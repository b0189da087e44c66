package model

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber prints a float without trailing zeros ("50", "0.25").
func FormatNumber(v float64) string {
	if v == 0 {
		// avoid "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Decimals returns the number of fractional digits in the shortest
// representation of v (0.25 -> 2, 10 -> 0).
func Decimals(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// RoundTo rounds v to the given number of decimal places
func RoundTo(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}
	if decimals > 12 {
		decimals = 12
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
