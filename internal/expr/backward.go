package expr

import (
	"log/slog"

	"github.com/gradix-ml/gradix/internal/expr/ops"
	"github.com/gradix-ml/gradix/internal/parallel"
)

// operand is a backward-pass view of one recorded operand: its values (or
// broadcast scalar) and, when the operand tracks gradients, its accumulation
// buffer fetched from the walker.
type operand struct {
	scalar float64
	vals   []float64 // nil for a Const operand
	grad   []float64 // nil when the operand does not track gradients
}

func viewOperand(e Expression, n int, acc Accumulator) operand {
	if e.kind == KindConst {
		return operand{scalar: e.scalar}
	}
	v := operand{vals: e.tensor.Values()}
	if id, ok := e.tensor.GradID(); ok {
		v.grad = acc.Gradient(id, n)
	}
	return v
}

func (v operand) at(i int) float64 {
	if v.vals == nil {
		return v.scalar
	}
	return v.vals[i]
}

// Backward applies this node's local derivative rules: for every operand
// that tracks gradients it adds local-derivative * upstream into the
// operand's accumulation buffer. The walker owns the buffers, seeds the
// upstream gradient, and orders the node visits; this method is one single
// synchronous step of that pass.
//
// result must be the tensor this Op produced and upstream the accumulated
// gradient of that tensor, of equal length.
func (o *Op) Backward(result *Tensor, upstream []float64, acc Accumulator) {
	if o.kind == OpAssign {
		return // leaf: the walker reads the parameter's own bucket directly
	}

	n := result.Len()
	if len(upstream) != n {
		panic(&ShapeError{Op: "backward", Want: n, Got: len(upstream)})
	}

	switch o.kind {
	case OpUnary:
		o.backwardUnary(result, upstream, acc)
	case OpPowf:
		o.backwardPowf(result, upstream, acc)
	case OpBinary:
		o.backwardBinary(result, upstream, acc)
	case OpCmp:
		o.backwardCmp(result, upstream, acc)
	case OpCond:
		o.backwardCond(upstream, acc)
	}
}

func (o *Op) backwardUnary(result *Tensor, upstream []float64, acc Accumulator) {
	x := viewOperand(o.operands[0], len(upstream), acc)
	if x.grad == nil {
		return
	}
	if !o.unary.Differentiable() {
		// Recoverable: one diagnostic per node, accumulator untouched, the
		// caller's larger computation treats the missing gradient as zero.
		slog.Error("backward not supported", "op", o.unary.String())
		return
	}
	res := result.Values()
	bwd := o.unary.Backward()
	parallel.For(len(upstream), func(s, end int) {
		for i := s; i < end; i++ {
			bwd(x.vals[i], res[i], upstream[i], &x.grad[i])
		}
	}, kernelCfg)
}

func (o *Op) backwardPowf(result *Tensor, upstream []float64, acc Accumulator) {
	x := viewOperand(o.operands[0], len(upstream), acc)
	if x.grad == nil {
		return
	}
	res := result.Values()
	parallel.For(len(upstream), func(s, end int) {
		for i := s; i < end; i++ {
			ops.PowfBackward(x.vals[i], o.exponent, res[i], upstream[i], &x.grad[i])
		}
	}, kernelCfg)
}

func (o *Op) backwardBinary(result *Tensor, upstream []float64, acc Accumulator) {
	lhs := viewOperand(o.operands[0], len(upstream), acc)
	rhs := viewOperand(o.operands[1], len(upstream), acc)
	if lhs.grad == nil && rhs.grad == nil {
		return
	}
	res := result.Values()
	if lhs.grad != nil {
		bwd := o.binary.BackwardLHS()
		parallel.For(len(upstream), func(s, end int) {
			for i := s; i < end; i++ {
				bwd(lhs.at(i), rhs.at(i), res[i], upstream[i], &lhs.grad[i])
			}
		}, kernelCfg)
	}
	if rhs.grad != nil {
		bwd := o.binary.BackwardRHS()
		parallel.For(len(upstream), func(s, end int) {
			for i := s; i < end; i++ {
				bwd(lhs.at(i), rhs.at(i), res[i], upstream[i], &rhs.grad[i])
			}
		}, kernelCfg)
	}
}

func (o *Op) backwardCmp(result *Tensor, upstream []float64, acc Accumulator) {
	if !o.method.Differentiable() {
		return // Discrete contributes nothing and never tracked a gradient
	}
	lhs := viewOperand(o.operands[0], len(upstream), acc)
	rhs := viewOperand(o.operands[1], len(upstream), acc)
	if lhs.grad == nil && rhs.grad == nil {
		return
	}
	res := result.Values()
	if lhs.grad != nil {
		parallel.For(len(upstream), func(s, end int) {
			for i := s; i < end; i++ {
				o.method.BackwardLHS(o.cmp, lhs.at(i), rhs.at(i), res[i], upstream[i], &lhs.grad[i])
			}
		}, kernelCfg)
	}
	if rhs.grad != nil {
		parallel.For(len(upstream), func(s, end int) {
			for i := s; i < end; i++ {
				o.method.BackwardRHS(o.cmp, lhs.at(i), rhs.at(i), res[i], upstream[i], &rhs.grad[i])
			}
		}, kernelCfg)
	}
}

func (o *Op) backwardCond(upstream []float64, acc Accumulator) {
	cond := viewOperand(o.operands[0], len(upstream), acc)
	onTrue := viewOperand(o.operands[1], len(upstream), acc)
	onFalse := viewOperand(o.operands[2], len(upstream), acc)

	if cond.grad != nil {
		parallel.For(len(upstream), func(s, end int) {
			for i := s; i < end; i++ {
				ops.CondBackwardCond(onTrue.at(i), onFalse.at(i), upstream[i], &cond.grad[i])
			}
		}, kernelCfg)
	}
	if onTrue.grad != nil {
		parallel.For(len(upstream), func(s, end int) {
			for i := s; i < end; i++ {
				ops.CondBackwardTrue(cond.at(i), upstream[i], &onTrue.grad[i])
			}
		}, kernelCfg)
	}
	if onFalse.grad != nil {
		parallel.For(len(upstream), func(s, end int) {
			for i := s; i < end; i++ {
				ops.CondBackwardFalse(cond.at(i), upstream[i], &onFalse.grad[i])
			}
		}, kernelCfg)
	}
}
