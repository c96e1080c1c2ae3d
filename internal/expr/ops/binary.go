package ops

import "math"

// BinaryKind identifies an elementwise binary operator in the closed catalog.
type BinaryKind uint8

const (
	Add BinaryKind = iota
	Sub
	Mul
	Div
	Pow
	Min
	Max
	LogicAnd
	LogicOr

	numBinaryKinds
)

// BinaryForward computes one output element from a (lhs, rhs) pair.
type BinaryForward func(lhs, rhs float64) float64

// BinaryBackward adds the local derivative contribution for one operand of
// one element into acc. lhs and rhs are the operand values, res the cached
// forward result, grad the upstream gradient.
type BinaryBackward func(lhs, rhs, res, grad float64, acc *float64)

type binaryRule struct {
	name string
	// forward[0] takes (lhs, rhs) in declaration order; forward[1] takes the
	// operands swapped, (rhs, lhs). The swapped form lets the broadcast layer
	// iterate a tensor rhs against a fixed scalar lhs without re-deriving the
	// formula per operand side.
	forward     [2]BinaryForward
	backwardLHS BinaryBackward
	backwardRHS BinaryBackward
}

var binaryRules = [numBinaryKinds]binaryRule{
	Add: {
		name: "add",
		forward: [2]BinaryForward{
			func(lhs, rhs float64) float64 { return lhs + rhs },
			func(rhs, lhs float64) float64 { return lhs + rhs },
		},
		backwardLHS: func(_, _, _, grad float64, acc *float64) {
			*acc += grad
		},
		backwardRHS: func(_, _, _, grad float64, acc *float64) {
			*acc += grad
		},
	},
	Sub: {
		name: "sub",
		forward: [2]BinaryForward{
			func(lhs, rhs float64) float64 { return lhs - rhs },
			func(rhs, lhs float64) float64 { return lhs - rhs },
		},
		backwardLHS: func(_, _, _, grad float64, acc *float64) {
			*acc += grad
		},
		backwardRHS: func(_, _, _, grad float64, acc *float64) {
			*acc -= grad
		},
	},
	Mul: {
		name: "mul",
		forward: [2]BinaryForward{
			func(lhs, rhs float64) float64 { return lhs * rhs },
			func(rhs, lhs float64) float64 { return lhs * rhs },
		},
		backwardLHS: func(_, rhs, _, grad float64, acc *float64) {
			*acc += grad * rhs
		},
		backwardRHS: func(lhs, _, _, grad float64, acc *float64) {
			*acc += grad * lhs
		},
	},
	Div: {
		name: "div",
		forward: [2]BinaryForward{
			func(lhs, rhs float64) float64 { return lhs / rhs },
			func(rhs, lhs float64) float64 { return lhs / rhs },
		},
		backwardLHS: func(_, rhs, _, grad float64, acc *float64) {
			*acc += grad / rhs
		},
		backwardRHS: func(lhs, rhs, _, grad float64, acc *float64) {
			*acc -= grad * lhs / (rhs * rhs)
		},
	},
	Pow: {
		name: "pow",
		forward: [2]BinaryForward{
			math.Pow,
			func(rhs, lhs float64) float64 { return math.Pow(lhs, rhs) },
		},
		// d(lhs^rhs)/d lhs = rhs * lhs^(rhs-1), computed from the cached
		// result as rhs*res/lhs. Valid for lhs != 0.
		backwardLHS: func(lhs, rhs, res, grad float64, acc *float64) {
			*acc += grad * rhs * res / lhs
		},
		// d(lhs^rhs)/d rhs = res * ln(lhs)
		backwardRHS: func(lhs, _, res, grad float64, acc *float64) {
			*acc += grad * res * math.Log(lhs)
		},
	},
	Min: {
		name: "min",
		forward: [2]BinaryForward{
			minForward,
			func(rhs, lhs float64) float64 { return minForward(lhs, rhs) },
		},
		backwardLHS: func(lhs, rhs, _, grad float64, acc *float64) {
			routeExtremumGrad(TotalCmp(lhs, rhs), grad, acc)
		},
		backwardRHS: func(lhs, rhs, _, grad float64, acc *float64) {
			routeExtremumGrad(TotalCmp(rhs, lhs), grad, acc)
		},
	},
	Max: {
		name: "max",
		forward: [2]BinaryForward{
			maxForward,
			func(rhs, lhs float64) float64 { return maxForward(lhs, rhs) },
		},
		backwardLHS: func(lhs, rhs, _, grad float64, acc *float64) {
			routeExtremumGrad(TotalCmp(rhs, lhs), grad, acc)
		},
		backwardRHS: func(lhs, rhs, _, grad float64, acc *float64) {
			routeExtremumGrad(TotalCmp(lhs, rhs), grad, acc)
		},
	},
	LogicAnd: {
		name: "logic_and",
		// Product t-norm over [0,1] operands: and(a,b) = a*b.
		forward: [2]BinaryForward{
			logicAndForward,
			func(rhs, lhs float64) float64 { return logicAndForward(lhs, rhs) },
		},
		backwardLHS: func(_, rhs, _, grad float64, acc *float64) {
			*acc += grad * rhs
		},
		backwardRHS: func(lhs, _, _, grad float64, acc *float64) {
			*acc += grad * lhs
		},
	},
	LogicOr: {
		name: "logic_or",
		// Probabilistic sum over [0,1] operands: or(a,b) = a+b-a*b.
		forward: [2]BinaryForward{
			logicOrForward,
			func(rhs, lhs float64) float64 { return logicOrForward(lhs, rhs) },
		},
		backwardLHS: func(_, rhs, _, grad float64, acc *float64) {
			*acc += grad * (1.0 - rhs)
		},
		backwardRHS: func(lhs, _, _, grad float64, acc *float64) {
			*acc += grad * (1.0 - lhs)
		},
	},
}

// routeExtremumGrad routes the upstream gradient for min/max: the attaining
// operand receives the full gradient, exact ties split it 50/50, the losing
// operand receives nothing. cmp is the total-order comparison with the
// attaining direction mapped to negative.
func routeExtremumGrad(cmp int, grad float64, acc *float64) {
	switch {
	case cmp < 0:
		*acc += grad
	case cmp == 0:
		*acc += grad / 2.0
	}
}

// minForward selects by the total order, so min(NaN, x) is x for any finite
// or infinite x. The tie branch keeps math.Min's signed-zero choice.
func minForward(lhs, rhs float64) float64 {
	switch c := TotalCmp(lhs, rhs); {
	case c < 0:
		return lhs
	case c > 0:
		return rhs
	default:
		return math.Min(lhs, rhs)
	}
}

func maxForward(lhs, rhs float64) float64 {
	switch c := TotalCmp(lhs, rhs); {
	case c > 0:
		return lhs
	case c < 0:
		return rhs
	default:
		return math.Max(lhs, rhs)
	}
}

func logicAndForward(lhs, rhs float64) float64 {
	assertLogic(lhs)
	assertLogic(rhs)
	return lhs * rhs
}

func logicOrForward(lhs, rhs float64) float64 {
	assertLogic(lhs)
	assertLogic(rhs)
	return lhs + rhs - lhs*rhs
}

// Forward returns the forward pair for the kind: index 0 takes (lhs, rhs),
// index 1 takes the operands swapped.
func (k BinaryKind) Forward() [2]BinaryForward { return binaryRules[k].forward }

// BackwardLHS returns the additive backward rule for the lhs operand.
func (k BinaryKind) BackwardLHS() BinaryBackward { return binaryRules[k].backwardLHS }

// BackwardRHS returns the additive backward rule for the rhs operand.
func (k BinaryKind) BackwardRHS() BinaryBackward { return binaryRules[k].backwardRHS }

func (k BinaryKind) String() string { return binaryRules[k].name }
