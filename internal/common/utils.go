package common

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// NaturalLess orders numeric keys numerically and everything else lexicographically.
// Numeric keys sort before non-numeric ones. "NaN" and "Inf" are not numeric.
func NaturalLess(a, b string) bool {
	fa, okA := finite(a)
	fb, okB := finite(b)
	switch {
	case okA && okB:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}

func finite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// SortNatural sorts keys in place with NaturalLess.
func SortNatural(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		return NaturalLess(keys[i], keys[j])
	})
}
