package ops

import "math"

// Conditional select rules. The forward blend is differentiable everywhere,
// so the conditional needs no smoothing method of its own: a smoothed
// comparison feeding cond already carries the smoothing.

// CondForward blends the branches by the condition's truth value in [0,1]:
// cond*onTrue + (1-cond)*onFalse. The range is checked in debug builds only.
func CondForward(cond, onTrue, onFalse float64) float64 {
	assertLogic(cond)
	return cond*onTrue + (1.0-cond)*onFalse
}

// CondBackwardCond adds d/d cond = onTrue - onFalse.
func CondBackwardCond(onTrue, onFalse, grad float64, acc *float64) {
	*acc += grad * (onTrue - onFalse)
}

// CondBackwardTrue adds d/d onTrue = cond.
func CondBackwardTrue(cond, grad float64, acc *float64) {
	*acc += cond * grad
}

// CondBackwardFalse adds d/d onFalse = 1 - cond.
func CondBackwardFalse(cond, grad float64, acc *float64) {
	*acc += (1.0 - cond) * grad
}

// Powf rules: x^n with a constant exponent recorded in the Op.

// PowfForward computes x^n.
func PowfForward(x, n float64) float64 {
	return math.Pow(x, n)
}

// PowfBackward adds d(x^n)/dx = n * x^(n-1).
func PowfBackward(x, n, _, grad float64, acc *float64) {
	*acc += grad * n * math.Pow(x, n-1.0)
}
