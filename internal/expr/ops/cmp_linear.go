package ops

import "math"

// Piecewise-linear smoothing: exact 0/1 outside the 2*epsilon band around
// the flip point, a constant-slope ramp inside it.

// eq: 1 - |a-b|/eps inside the band, 0 outside. Peaks at exactly 1 when a==b
// and decays linearly to 0 at |a-b| == eps.
func (m Method) linearEqForward(lhs, rhs float64) float64 {
	abs := math.Abs(lhs - rhs)
	if TotalCmp(abs, m.epsilon) < 0 {
		return 1.0 - abs/m.epsilon
	}
	return 0.0
}

// d eq/d lhs = -sign(a-b)/eps inside the band, 0 outside. The cached result
// doubles as the band test: a zero result means the point is outside.
func (m Method) linearEqBackwardLHS(lhs, rhs, res, grad float64, acc *float64) {
	if res != 0.0 {
		*acc -= grad * signForward(lhs-rhs) / m.epsilon
	}
}

func (m Method) linearEqBackwardRHS(lhs, rhs, res, grad float64, acc *float64) {
	if res != 0.0 {
		*acc += grad * signForward(lhs-rhs) / m.epsilon
	}
}

// ne = 1 - eq: |a-b|/eps inside the band, 1 outside.
func (m Method) linearNeForward(lhs, rhs float64) float64 {
	abs := math.Abs(lhs - rhs)
	if TotalCmp(abs, m.epsilon) < 0 {
		return abs / m.epsilon
	}
	return 1.0
}

func (m Method) linearNeBackwardLHS(lhs, rhs, res, grad float64, acc *float64) {
	if res != 1.0 {
		*acc += grad * signForward(lhs-rhs) / m.epsilon
	}
}

func (m Method) linearNeBackwardRHS(lhs, rhs, res, grad float64, acc *float64) {
	if res != 1.0 {
		*acc -= grad * signForward(lhs-rhs) / m.epsilon
	}
}

// le: 1 when a-b < -eps, 0 when a-b > eps, 1/2 - (a-b)/2eps in between.
// Exactly 0.5 at a == b.
func (m Method) linearLeForward(lhs, rhs float64) float64 {
	diff := lhs - rhs
	switch {
	case TotalCmp(diff, m.epsilon) > 0:
		return 0.0
	case TotalCmp(diff, -m.epsilon) < 0:
		return 1.0
	default:
		return 0.5 - diff/(2.0*m.epsilon)
	}
}

// d le/d lhs = -1/2eps inside the band, 0 outside.
func (m Method) linearLeBackwardLHS(lhs, rhs, grad float64, acc *float64) {
	if TotalCmp(math.Abs(lhs-rhs), m.epsilon) <= 0 {
		*acc -= grad / (2.0 * m.epsilon)
	}
}

func (m Method) linearLeBackwardRHS(lhs, rhs, grad float64, acc *float64) {
	if TotalCmp(math.Abs(lhs-rhs), m.epsilon) <= 0 {
		*acc += grad / (2.0 * m.epsilon)
	}
}
