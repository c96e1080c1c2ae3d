package ops

import "math"

// Sigmoid smoothing: equality becomes a Gaussian bump, ordering relations a
// logistic curve. As k grows each surrogate converges pointwise to the
// Discrete answer for a != b.

// eq: exp(-k*(a-b)^2)
func (m Method) sigmoidEqForward(lhs, rhs float64) float64 {
	diff := lhs - rhs
	return math.Exp(-m.k * diff * diff)
}

// d eq/d lhs = -2k(a-b) * exp(-k*(a-b)^2)
func (m Method) sigmoidEqBackwardLHS(lhs, rhs, grad float64, acc *float64) {
	diff := lhs - rhs
	kdiff := m.k * diff
	*acc -= grad * 2.0 * kdiff * math.Exp(-kdiff*diff)
}

func (m Method) sigmoidEqBackwardRHS(lhs, rhs, grad float64, acc *float64) {
	diff := lhs - rhs
	kdiff := m.k * diff
	*acc += grad * 2.0 * kdiff * math.Exp(-kdiff*diff)
}

// le: sigma(-k(a-b)) = 1/(1+exp(k(a-b)))
func (m Method) sigmoidLeForward(lhs, rhs float64) float64 {
	return 1.0 / (1.0 + math.Exp(m.k*(lhs-rhs)))
}

// d le/d lhs = -k * sigma * (1-sigma)
func (m Method) sigmoidLeBackwardLHS(lhs, rhs, grad float64, acc *float64) {
	sigma := m.sigmoidLeForward(lhs, rhs)
	*acc -= grad * m.k * sigma * (1.0 - sigma)
}

func (m Method) sigmoidLeBackwardRHS(lhs, rhs, grad float64, acc *float64) {
	sigma := m.sigmoidLeForward(lhs, rhs)
	*acc += grad * m.k * sigma * (1.0 - sigma)
}
