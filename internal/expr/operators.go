package expr

import "github.com/gradix-ml/gradix/internal/expr/ops"

// Unary operators. Each call evaluates eagerly and never mutates operands.
// Forward rules are total: out-of-domain inputs (log of a non-positive,
// sqrt of a negative) propagate IEEE-754 inf/NaN instead of failing.

// Neg returns -x.
func (e Expression) Neg() Expression { return unaryOp(e, ops.Neg) }

// Sin returns sin(x).
func (e Expression) Sin() Expression { return unaryOp(e, ops.Sin) }

// Cos returns cos(x).
func (e Expression) Cos() Expression { return unaryOp(e, ops.Cos) }

// Tanh returns tanh(x).
func (e Expression) Tanh() Expression { return unaryOp(e, ops.Tanh) }

// Tan returns tan(x).
func (e Expression) Tan() Expression { return unaryOp(e, ops.Tan) }

// Ceil rounds up. The backward rule is a declared non-differentiable point:
// it emits a diagnostic and contributes nothing.
func (e Expression) Ceil() Expression { return unaryOp(e, ops.Ceil) }

// Floor rounds down. Non-differentiable, like Ceil.
func (e Expression) Floor() Expression { return unaryOp(e, ops.Floor) }

// Round rounds half away from zero. Non-differentiable, like Ceil.
func (e Expression) Round() Expression { return unaryOp(e, ops.Round) }

// Sign returns +1 for positive values and +0, -1 for negative values and
// -0, NaN for NaN. Non-differentiable, like Ceil.
func (e Expression) Sign() Expression { return unaryOp(e, ops.Sign) }

// Sqrt returns the square root.
func (e Expression) Sqrt() Expression { return unaryOp(e, ops.Sqrt) }

// Sqr returns x*x.
func (e Expression) Sqr() Expression { return unaryOp(e, ops.Sqr) }

// Cubic returns x*x*x.
func (e Expression) Cubic() Expression { return unaryOp(e, ops.Cubic) }

// Log returns the natural logarithm.
func (e Expression) Log() Expression { return unaryOp(e, ops.Log) }

// Exp returns e^x.
func (e Expression) Exp() Expression { return unaryOp(e, ops.Exp) }

// Abs returns |x|.
func (e Expression) Abs() Expression { return unaryOp(e, ops.Abs) }

// Erf returns the Gauss error function.
func (e Expression) Erf() Expression { return unaryOp(e, ops.Erf) }

// LogicNot treats the operand as a probability in [0,1] and returns 1-x.
// The range is checked in debug builds only.
func (e Expression) LogicNot() Expression { return unaryOp(e, ops.LogicNot) }

// Powf returns x^n for a constant exponent n.
func (e Expression) Powf(n float64) Expression { return powfOp(e, n) }

// Binary operators. Scalar operands broadcast elementwise against a tensor
// operand; two tensor operands must have equal lengths (fatal otherwise).

// Add returns lhs + rhs.
func (e Expression) Add(rhs Expression) Expression { return binaryOp(e, rhs, ops.Add) }

// Sub returns lhs - rhs.
func (e Expression) Sub(rhs Expression) Expression { return binaryOp(e, rhs, ops.Sub) }

// Mul returns lhs * rhs.
func (e Expression) Mul(rhs Expression) Expression { return binaryOp(e, rhs, ops.Mul) }

// Div returns lhs / rhs. Division by zero propagates IEEE-754 inf/NaN.
func (e Expression) Div(rhs Expression) Expression { return binaryOp(e, rhs, ops.Div) }

// Pow returns lhs^rhs. The lhs backward rule reuses the cached result and is
// valid for lhs != 0.
func (e Expression) Pow(rhs Expression) Expression { return binaryOp(e, rhs, ops.Pow) }

// Min returns the elementwise minimum. Backward routes the full upstream
// gradient to the attaining operand and splits it 50/50 on exact ties.
func (e Expression) Min(rhs Expression) Expression { return binaryOp(e, rhs, ops.Min) }

// Max returns the elementwise maximum, with the same tie handling as Min.
func (e Expression) Max(rhs Expression) Expression { return binaryOp(e, rhs, ops.Max) }

// LogicAnd is the product t-norm a*b over [0,1] operands.
func (e Expression) LogicAnd(rhs Expression) Expression { return binaryOp(e, rhs, ops.LogicAnd) }

// LogicOr is the probabilistic sum a+b-a*b over [0,1] operands.
func (e Expression) LogicOr(rhs Expression) Expression { return binaryOp(e, rhs, ops.LogicOr) }

// Discrete comparisons: exact 0/1 by total order, never tracking gradients.

// Eq returns 1 where lhs == rhs, else 0.
func (e Expression) Eq(rhs Expression) Expression { return cmpOp(e, rhs, ops.Eq, ops.Discrete()) }

// Ne returns 1 where lhs != rhs, else 0.
func (e Expression) Ne(rhs Expression) Expression { return cmpOp(e, rhs, ops.Ne, ops.Discrete()) }

// Le returns 1 where lhs <= rhs, else 0.
func (e Expression) Le(rhs Expression) Expression { return cmpOp(e, rhs, ops.Le, ops.Discrete()) }

// Ge returns 1 where lhs >= rhs, else 0.
func (e Expression) Ge(rhs Expression) Expression { return cmpOp(e, rhs, ops.Ge, ops.Discrete()) }

// Lt returns 1 where lhs < rhs, else 0.
func (e Expression) Lt(rhs Expression) Expression { return cmpOp(e, rhs, ops.Lt, ops.Discrete()) }

// Gt returns 1 where lhs > rhs, else 0.
func (e Expression) Gt(rhs Expression) Expression { return cmpOp(e, rhs, ops.Gt, ops.Discrete()) }

// Linear-smoothed comparisons: a constant-slope ramp across the 2*epsilon
// band centered at the flip point, exact 0/1 outside. epsilon must be
// positive (checked in debug builds only). The smoothing activates only when
// the result tracks gradients; otherwise the call downgrades to Discrete.

// EqLinear peaks at exactly 1 when lhs == rhs and decays linearly to 0 at
// |lhs-rhs| == epsilon.
func (e Expression) EqLinear(rhs Expression, epsilon float64) Expression {
	return cmpOp(e, rhs, ops.Eq, ops.Linear(epsilon))
}

// NeLinear is 1 - EqLinear.
func (e Expression) NeLinear(rhs Expression, epsilon float64) Expression {
	return cmpOp(e, rhs, ops.Ne, ops.Linear(epsilon))
}

// LeLinear ramps from 1 to 0 across the band and is exactly 0.5 at lhs == rhs.
func (e Expression) LeLinear(rhs Expression, epsilon float64) Expression {
	return cmpOp(e, rhs, ops.Le, ops.Linear(epsilon))
}

// GeLinear is the operand swap of LeLinear.
func (e Expression) GeLinear(rhs Expression, epsilon float64) Expression {
	return cmpOp(e, rhs, ops.Ge, ops.Linear(epsilon))
}

// LtLinear shares LeLinear's surrogate.
func (e Expression) LtLinear(rhs Expression, epsilon float64) Expression {
	return cmpOp(e, rhs, ops.Lt, ops.Linear(epsilon))
}

// GtLinear shares GeLinear's surrogate.
func (e Expression) GtLinear(rhs Expression, epsilon float64) Expression {
	return cmpOp(e, rhs, ops.Gt, ops.Linear(epsilon))
}

// Sigmoid-smoothed comparisons: equality is the Gaussian bump
// exp(-k*(lhs-rhs)^2), ordering relations the logistic 1/(1+exp(k*(lhs-rhs)))
// and its operand swap. k must be positive (checked in debug builds only).
// Same gradient-activation downgrade as the linear family.

// EqSigmoid returns exp(-k*(lhs-rhs)^2).
func (e Expression) EqSigmoid(rhs Expression, k float64) Expression {
	return cmpOp(e, rhs, ops.Eq, ops.Sigmoid(k))
}

// NeSigmoid is 1 - EqSigmoid.
func (e Expression) NeSigmoid(rhs Expression, k float64) Expression {
	return cmpOp(e, rhs, ops.Ne, ops.Sigmoid(k))
}

// LeSigmoid returns 1/(1+exp(k*(lhs-rhs))).
func (e Expression) LeSigmoid(rhs Expression, k float64) Expression {
	return cmpOp(e, rhs, ops.Le, ops.Sigmoid(k))
}

// GeSigmoid is the operand swap of LeSigmoid.
func (e Expression) GeSigmoid(rhs Expression, k float64) Expression {
	return cmpOp(e, rhs, ops.Ge, ops.Sigmoid(k))
}

// LtSigmoid shares LeSigmoid's surrogate.
func (e Expression) LtSigmoid(rhs Expression, k float64) Expression {
	return cmpOp(e, rhs, ops.Lt, ops.Sigmoid(k))
}

// GtSigmoid shares GeSigmoid's surrogate.
func (e Expression) GtSigmoid(rhs Expression, k float64) Expression {
	return cmpOp(e, rhs, ops.Gt, ops.Sigmoid(k))
}

// Cond is the smoothed ternary select: with e as the condition, valued in
// [0,1], it blends cond*onTrue + (1-cond)*onFalse. The blend is
// differentiable everywhere, so no smoothing method applies. A constant
// condition short-circuits to the selected branch expression by exact
// zero/nonzero test without building a node.
func (e Expression) Cond(onTrue, onFalse Expression) Expression {
	return condOp(e, onTrue, onFalse)
}
