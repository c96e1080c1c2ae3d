//go:build gradixdebug

package ops

import "fmt"

// assertLogic checks that a logic operand lies in [0,1]. Debug builds panic
// on violation; release builds compile the check away and let out-of-range
// values flow through the forward rules unchanged.
func assertLogic(x float64) {
	if !(x >= 0.0 && x <= 1.0) {
		panic(fmt.Sprintf("logic operand out of range [0,1]: %v", x))
	}
}

// assertPositive checks a smoothing parameter (epsilon, k) is positive.
func assertPositive(name string, v float64) {
	if !(v > 0.0) {
		panic(fmt.Sprintf("%s must be positive, got %v", name, v))
	}
}
