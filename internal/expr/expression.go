// Package expr implements a differentiable expression engine over scalars
// and equal-length float64 vectors.
//
// Callers compose Constant and Parameter expressions through operator calls.
// Every call evaluates eagerly, records its provenance as an Op, and tags
// the result with a fresh gradient identity when an operand already tracks
// gradients. An external reverse-mode walker later replays each node's
// backward rule through the Accumulator interface; an external invalidation
// layer watches ChangeMarker to decide when cached Operation values are
// stale. Neither collaborator lives in this package.
//
// Usage:
//
//	a, at := expr.Parameter([]float64{1, 2, 3}, true)
//	b := expr.Constant(2.0)
//	c := a.Mul(b).Sin() // eager forward: [sin(2), sin(4), sin(6)]
//	at.Update([]float64{3, 2, 1})
package expr

// Kind discriminates the three expression variants.
type Kind uint8

const (
	// KindConst is an immutable scalar with no identity.
	KindConst Kind = iota
	// KindParameter is a caller-owned tensor, externally mutable via Update.
	KindParameter
	// KindOperation is a derived tensor with recorded provenance, immutable
	// once built: re-running an operator builds a new node.
	KindOperation
)

// Expression is a node of the expression DAG: a constant, a parameter, or a
// derived operation. Expressions are small values; copying one aliases the
// underlying tensor, it never copies the buffer.
type Expression struct {
	kind   Kind
	scalar float64
	tensor *Tensor
	op     *Op
}

// Constant returns a constant scalar expression. Constants have no identity
// and never contribute a gradient.
func Constant(value float64) Expression {
	return Expression{kind: KindConst, scalar: value}
}

// Parameter creates a caller-owned tensor expression. The values are copied.
// The returned tensor handle is the mutation surface: Update replaces the
// buffer and notifies the invalidation layer. When needGrad is set the
// tensor mints a gradient identity and every derived operation tracks
// gradients too.
func Parameter(values []float64, needGrad bool) (Expression, *Tensor) {
	buf := make([]float64, len(values))
	copy(buf, values)
	t := newTensor(maybeGradID(needGrad), buf)
	return Expression{kind: KindParameter, tensor: t, op: assignOp}, t
}

func newOperation(t *Tensor, op *Op) Expression {
	return Expression{kind: KindOperation, tensor: t, op: op}
}

// Kind returns the variant discriminator.
func (e Expression) Kind() Kind { return e.kind }

// Tensor returns the backing tensor for Parameter and Operation expressions.
func (e Expression) Tensor() (*Tensor, bool) {
	return e.tensor, e.tensor != nil
}

// Op returns the provenance record for Parameter (Assign) and Operation
// expressions.
func (e Expression) Op() (*Op, bool) {
	return e.op, e.op != nil
}

// Value returns a read-only discriminator view of the current value.
func (e Expression) Value() ScalarTensor {
	if e.kind == KindConst {
		return ScalarTensor{scalar: e.scalar}
	}
	return ScalarTensor{tensor: e.tensor}
}

// ScalarTensor is a read-only view discriminating scalar from tensor values.
type ScalarTensor struct {
	scalar float64
	tensor *Tensor
}

// IsScalar reports whether the view holds a scalar.
func (v ScalarTensor) IsScalar() bool { return v.tensor == nil }

// Scalar returns the scalar value, if the view holds one.
func (v ScalarTensor) Scalar() (float64, bool) {
	if v.tensor != nil {
		return 0, false
	}
	return v.scalar, true
}

// Tensor returns the tensor, if the view holds one.
func (v ScalarTensor) Tensor() (*Tensor, bool) {
	return v.tensor, v.tensor != nil
}
