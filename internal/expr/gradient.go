package expr

import "sync/atomic"

// GradID is an opaque gradient identity: the key of one accumulation bucket
// in the external reverse-mode walker. Every gradient-tracking tensor mints
// its own identity; identities are never merged or reused. The zero value
// means "not tracked".
type GradID uint64

var gradIDCounter atomic.Uint64

// NewGradID mints a fresh gradient identity.
func NewGradID() GradID {
	return GradID(gradIDCounter.Add(1))
}

// noGrad marks a tensor that does not participate in gradient computation.
const noGrad GradID = 0

// maybeGradID mints a fresh identity iff tracked, implementing the
// propagation invariant: a result tracks gradients exactly when at least one
// tensor operand already does.
func maybeGradID(tracked bool) GradID {
	if tracked {
		return NewGradID()
	}
	return noGrad
}

// Accumulator is the collaborator interface of the external backward walker.
// Gradient returns the accumulation buffer for an identity, sized n; the
// walker owns the buffers and sums contributions across the whole graph.
// Op.Backward adds into the returned buffer, never overwrites it.
type Accumulator interface {
	Gradient(id GradID, n int) []float64
}
