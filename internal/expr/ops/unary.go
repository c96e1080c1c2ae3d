package ops

import (
	"log/slog"
	"math"
)

// UnaryKind identifies an elementwise unary operator in the closed catalog.
type UnaryKind uint8

const (
	Neg UnaryKind = iota
	Sin
	Cos
	Tanh
	Tan
	Ceil
	Floor
	Round
	Sign
	Sqrt
	Sqr
	Cubic
	Log
	Exp
	Abs
	Erf
	LogicNot

	numUnaryKinds
)

// UnaryForward computes one output element from one input element.
// Forward rules are total: out-of-domain inputs produce IEEE-754 inf/NaN.
type UnaryForward func(x float64) float64

// UnaryBackward adds the local derivative contribution for one element into
// acc. x is the operand value, res the cached forward result, grad the
// upstream gradient. Contributions add rather than overwrite because a value
// reused across the graph must sum contributions from every use site.
type UnaryBackward func(x, res, grad float64, acc *float64)

type unaryRule struct {
	name     string
	forward  UnaryForward
	backward UnaryBackward
}

// backwardUnsupported is the rule for operators with a declared
// non-differentiable point everywhere (floor, ceil, round, sign). It emits a
// diagnostic and leaves the accumulator untouched, so the caller's larger
// computation continues with the missing gradient treated as zero.
func backwardUnsupported(name string) UnaryBackward {
	return func(_, _, _ float64, _ *float64) {
		slog.Error("backward not supported", "op", name)
	}
}

var unaryRules = [numUnaryKinds]unaryRule{
	Neg: {
		name:    "neg",
		forward: func(x float64) float64 { return -x },
		backward: func(_, _, grad float64, acc *float64) {
			*acc -= grad
		},
	},
	Sin: {
		name:    "sin",
		forward: math.Sin,
		backward: func(x, _, grad float64, acc *float64) {
			*acc += grad * math.Cos(x)
		},
	},
	Cos: {
		name:    "cos",
		forward: math.Cos,
		backward: func(x, _, grad float64, acc *float64) {
			*acc -= grad * math.Sin(x)
		},
	},
	Tanh: {
		name:    "tanh",
		forward: math.Tanh,
		// d tanh = 1 - tanh^2, from the cached result.
		backward: func(_, res, grad float64, acc *float64) {
			*acc += grad * (1.0 - res*res)
		},
	},
	Tan: {
		name:    "tan",
		forward: math.Tan,
		// d tan = 1 + tan^2, from the cached result.
		backward: func(_, res, grad float64, acc *float64) {
			*acc += grad * (1.0 + res*res)
		},
	},
	Ceil: {
		name:     "ceil",
		forward:  math.Ceil,
		backward: backwardUnsupported("ceil"),
	},
	Floor: {
		name:     "floor",
		forward:  math.Floor,
		backward: backwardUnsupported("floor"),
	},
	Round: {
		name:     "round",
		forward:  math.Round,
		backward: backwardUnsupported("round"),
	},
	Sign: {
		name:     "sign",
		forward:  signForward,
		backward: backwardUnsupported("sign"),
	},
	Sqrt: {
		name:    "sqrt",
		forward: math.Sqrt,
		backward: func(_, res, grad float64, acc *float64) {
			*acc += grad * 0.5 / res
		},
	},
	Sqr: {
		name:    "sqr",
		forward: func(x float64) float64 { return x * x },
		backward: func(x, _, grad float64, acc *float64) {
			*acc += grad * 2.0 * x
		},
	},
	Cubic: {
		name:    "cubic",
		forward: func(x float64) float64 { return x * x * x },
		backward: func(x, _, grad float64, acc *float64) {
			*acc += grad * 3.0 * x * x
		},
	},
	Log: {
		name:    "log",
		forward: math.Log,
		backward: func(x, _, grad float64, acc *float64) {
			*acc += grad / x
		},
	},
	Exp: {
		name:    "exp",
		forward: math.Exp,
		backward: func(_, res, grad float64, acc *float64) {
			*acc += grad * res
		},
	},
	Abs: {
		name:    "abs",
		forward: math.Abs,
		backward: func(x, _, grad float64, acc *float64) {
			if math.Signbit(x) {
				*acc -= grad
			} else {
				*acc += grad
			}
		},
	},
	Erf: {
		name:    "erf",
		forward: math.Erf,
		// d erf = 2/sqrt(pi) * exp(-x^2)
		backward: func(x, _, grad float64, acc *float64) {
			*acc += grad * twoOverSqrtPi * math.Exp(-x*x)
		},
	},
	LogicNot: {
		name: "logic_not",
		forward: func(x float64) float64 {
			assertLogic(x)
			return 1.0 - x
		},
		backward: func(_, _, grad float64, acc *float64) {
			*acc -= grad
		},
	},
}

var twoOverSqrtPi = 2.0 / math.Sqrt(math.Pi)

// signForward returns +1 for positive values and +0, -1 for negative values
// and -0, and passes NaN through.
func signForward(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	if math.Signbit(x) {
		return -1.0
	}
	return 1.0
}

// Forward returns the elementwise forward rule for the kind.
func (k UnaryKind) Forward() UnaryForward { return unaryRules[k].forward }

// Backward returns the elementwise backward rule for the kind.
func (k UnaryKind) Backward() UnaryBackward { return unaryRules[k].backward }

func (k UnaryKind) String() string { return unaryRules[k].name }

// Differentiable reports whether the kind has a usable backward rule.
// The four rounding/sign operators are declared non-differentiable: their
// backward emits a diagnostic and contributes nothing.
func (k UnaryKind) Differentiable() bool {
	switch k {
	case Ceil, Floor, Round, Sign:
		return false
	default:
		return true
	}
}
