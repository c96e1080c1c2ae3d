package expr

import (
	"github.com/gradix-ml/gradix/internal/expr/ops"
	"github.com/gradix-ml/gradix/internal/parallel"
)

// kernelCfg drives the chunked loops shared by every elementwise kernel.
// Chunks write disjoint index ranges of the output (or accumulation) buffer,
// so the kernels need no further synchronization.
var kernelCfg = parallel.DefaultConfig()

// The dispatch layer resolves every scalar/tensor operand combination once,
// table-driven by the per-family rule catalogs in ops: all-const calls fold
// to a Const with no tensor allocated, a single tensor operand broadcasts
// the scalars elementwise against it, and two tensor operands zip after an
// equal-length check. Gradient identities follow the propagation invariant
// in maybeGradID.

func unaryOp(e Expression, kind ops.UnaryKind) Expression {
	fwd := kind.Forward()
	if e.kind == KindConst {
		return Constant(fwd(e.scalar))
	}
	vals := e.tensor.Values()
	out := make([]float64, len(vals))
	parallel.For(len(vals), func(s, end int) {
		for i := s; i < end; i++ {
			out[i] = fwd(vals[i])
		}
	}, kernelCfg)
	res := newTensor(maybeGradID(e.tensor.WithGrad()), out)
	return newOperation(res, &Op{kind: OpUnary, unary: kind, operands: []Expression{e}})
}

func powfOp(e Expression, n float64) Expression {
	if e.kind == KindConst {
		return Constant(ops.PowfForward(e.scalar, n))
	}
	vals := e.tensor.Values()
	out := make([]float64, len(vals))
	parallel.For(len(vals), func(s, end int) {
		for i := s; i < end; i++ {
			out[i] = ops.PowfForward(vals[i], n)
		}
	}, kernelCfg)
	res := newTensor(maybeGradID(e.tensor.WithGrad()), out)
	return newOperation(res, &Op{kind: OpPowf, exponent: n, operands: []Expression{e}})
}

func binaryOp(lhs, rhs Expression, kind ops.BinaryKind) Expression {
	fwd := kind.Forward()
	record := func(t *Tensor) Expression {
		return newOperation(t, &Op{kind: OpBinary, binary: kind, operands: []Expression{lhs, rhs}})
	}
	switch {
	case lhs.kind == KindConst && rhs.kind == KindConst:
		return Constant(fwd[0](lhs.scalar, rhs.scalar))

	case lhs.kind == KindConst:
		// Broadcast the scalar lhs against the tensor rhs through the
		// operand-swapped forward.
		out := mapWithScalar(rhs.tensor.Values(), lhs.scalar, fwd[1])
		return record(newTensor(maybeGradID(rhs.tensor.WithGrad()), out))

	case rhs.kind == KindConst:
		out := mapWithScalar(lhs.tensor.Values(), rhs.scalar, fwd[0])
		return record(newTensor(maybeGradID(lhs.tensor.WithGrad()), out))

	default:
		lvals, rvals := lhs.tensor.Values(), rhs.tensor.Values()
		if len(lvals) != len(rvals) {
			panic(&ShapeError{Op: kind.String(), Want: len(lvals), Got: len(rvals)})
		}
		out := make([]float64, len(lvals))
		parallel.For(len(lvals), func(s, end int) {
			for i := s; i < end; i++ {
				out[i] = fwd[0](lvals[i], rvals[i])
			}
		}, kernelCfg)
		tracked := lhs.tensor.WithGrad() || rhs.tensor.WithGrad()
		return record(newTensor(maybeGradID(tracked), out))
	}
}

// mapWithScalar applies fwd(v[i], scalar) elementwise.
func mapWithScalar(vals []float64, scalar float64, fwd ops.BinaryForward) []float64 {
	out := make([]float64, len(vals))
	parallel.For(len(vals), func(s, end int) {
		for i := s; i < end; i++ {
			out[i] = fwd(vals[i], scalar)
		}
	}, kernelCfg)
	return out
}

func cmpOp(lhs, rhs Expression, kind ops.CmpKind, method ops.Method) Expression {
	if lhs.kind == KindConst && rhs.kind == KindConst {
		// Constant folding has no gradient to smooth.
		return Constant(ops.Discrete().Forward(kind, lhs.scalar, rhs.scalar))
	}

	// A smoothed method is honored only when the result will track
	// gradients; otherwise the call silently downgrades to Discrete and no
	// identity is assigned, so no backward pass ever pays the smoothing
	// cost. Discrete comparisons never track gradients at all.
	tracked := (lhs.kind != KindConst && lhs.tensor.WithGrad()) ||
		(rhs.kind != KindConst && rhs.tensor.WithGrad())
	gradID := noGrad
	if method.Differentiable() && tracked {
		gradID = NewGradID()
	} else {
		method = ops.Discrete()
	}

	var out []float64
	switch {
	case lhs.kind == KindConst:
		rvals := rhs.tensor.Values()
		out = make([]float64, len(rvals))
		parallel.For(len(rvals), func(s, end int) {
			for i := s; i < end; i++ {
				out[i] = method.Forward(kind, lhs.scalar, rvals[i])
			}
		}, kernelCfg)

	case rhs.kind == KindConst:
		lvals := lhs.tensor.Values()
		out = make([]float64, len(lvals))
		parallel.For(len(lvals), func(s, end int) {
			for i := s; i < end; i++ {
				out[i] = method.Forward(kind, lvals[i], rhs.scalar)
			}
		}, kernelCfg)

	default:
		lvals, rvals := lhs.tensor.Values(), rhs.tensor.Values()
		if len(lvals) != len(rvals) {
			panic(&ShapeError{Op: kind.String(), Want: len(lvals), Got: len(rvals)})
		}
		out = make([]float64, len(lvals))
		parallel.For(len(lvals), func(s, end int) {
			for i := s; i < end; i++ {
				out[i] = method.Forward(kind, lvals[i], rvals[i])
			}
		}, kernelCfg)
	}

	op := &Op{kind: OpCmp, cmp: kind, method: method, operands: []Expression{lhs, rhs}}
	return newOperation(newTensor(gradID, out), op)
}

func condOp(cond, onTrue, onFalse Expression) Expression {
	if cond.kind == KindConst {
		// A constant condition folds: all-const blends, otherwise the branch
		// expression is selected by exact zero/nonzero test and no node is
		// built.
		if onTrue.kind == KindConst && onFalse.kind == KindConst {
			return Constant(ops.CondForward(cond.scalar, onTrue.scalar, onFalse.scalar))
		}
		if cond.scalar == 0.0 {
			return onFalse
		}
		return onTrue
	}

	condVals := cond.tensor.Values()
	n := len(condVals)
	trueAt := operandIndex("cond", onTrue, n)
	falseAt := operandIndex("cond", onFalse, n)

	out := make([]float64, n)
	parallel.For(n, func(s, end int) {
		for i := s; i < end; i++ {
			out[i] = ops.CondForward(condVals[i], trueAt(i), falseAt(i))
		}
	}, kernelCfg)

	tracked := cond.tensor.WithGrad() ||
		(onTrue.kind != KindConst && onTrue.tensor.WithGrad()) ||
		(onFalse.kind != KindConst && onFalse.tensor.WithGrad())
	op := &Op{kind: OpCond, operands: []Expression{cond, onTrue, onFalse}}
	return newOperation(newTensor(maybeGradID(tracked), out), op)
}

// operandIndex returns an elementwise value accessor for an operand that is
// either a broadcast scalar or a tensor of length n (fatal otherwise).
func operandIndex(opName string, e Expression, n int) func(int) float64 {
	if e.kind == KindConst {
		c := e.scalar
		return func(int) float64 { return c }
	}
	vals := e.tensor.Values()
	if len(vals) != n {
		panic(&ShapeError{Op: opName, Want: n, Got: len(vals)})
	}
	return func(i int) float64 { return vals[i] }
}
