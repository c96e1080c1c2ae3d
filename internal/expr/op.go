package expr

import "github.com/gradix-ml/gradix/internal/expr/ops"

// OpKind discriminates the provenance variants.
type OpKind uint8

const (
	// OpAssign marks a leaf: a parameter's buffer was assigned directly, not
	// derived from operands.
	OpAssign OpKind = iota
	// OpPowf is x^n with a constant exponent.
	OpPowf
	// OpCond is the smoothed ternary select cond*onTrue + (1-cond)*onFalse.
	OpCond
	// OpUnary, OpBinary and OpCmp carry the per-family kind.
	OpUnary
	OpBinary
	OpCmp
)

// Op records the operator and operand expressions that produced a tensor's
// current value. The record matches the tensor's last-computed value;
// replacing an operand buffer through Update makes it stale, which is the
// invalidation layer's concern, not this package's.
type Op struct {
	kind     OpKind
	operands []Expression

	exponent float64        // OpPowf
	unary    ops.UnaryKind  // OpUnary
	binary   ops.BinaryKind // OpBinary
	cmp      ops.CmpKind    // OpCmp
	method   ops.Method     // OpCmp: the method actually used, post-downgrade.
}

// assignOp is shared by all parameter leaves; it has no operands.
var assignOp = &Op{kind: OpAssign}

// Kind returns the provenance discriminator.
func (o *Op) Kind() OpKind { return o.kind }

// Operands returns the recorded operand expressions in declaration order:
// (x), (base), (lhs, rhs) or (cond, onTrue, onFalse).
func (o *Op) Operands() []Expression { return o.operands }

// Unary returns the unary operator kind for OpUnary records.
func (o *Op) Unary() ops.UnaryKind { return o.unary }

// Binary returns the binary operator kind for OpBinary records.
func (o *Op) Binary() ops.BinaryKind { return o.binary }

// Cmp returns the comparison relation for OpCmp records.
func (o *Op) Cmp() ops.CmpKind { return o.cmp }

// Method returns the smoothing method recorded for OpCmp records. This is
// the method actually evaluated: a smoothed request downgraded to Discrete
// at dispatch reports Discrete here.
func (o *Op) Method() ops.Method { return o.method }

// Exponent returns the constant exponent for OpPowf records.
func (o *Op) Exponent() float64 { return o.exponent }
