package ops

import "math"

// TotalCmp compares two float64 values under a total order: the usual
// ordering for comparable values, -0.0 equal to +0.0, and NaN equal to
// itself and sorting above +Inf. Tie detection for min/max and the Discrete
// comparison method both rely on this order being total, so NaN operands
// still produce a well-defined 0/1 answer.
func TotalCmp(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
