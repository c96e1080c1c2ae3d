package expr

import "sync"

// Tensor is a shared, fixed-length, mutable float64 buffer. Its identity is
// the backing store: Parameter expressions and Operation results alias the
// same *Tensor wherever the graph reuses a value.
//
// Each tensor carries its own reader-writer lock; readers of independent
// tensors never contend and a writer blocks only readers of the same buffer,
// only for the span of the copy. Coordination beyond that is the caller's
// obligation: operand buffers consumed by a node's forward pass must not be
// mutated before a later backward pass reads the node's recorded operands.
type Tensor struct {
	gradID GradID
	marker ChangeMarker

	mu     sync.RWMutex
	values []float64
}

func newTensor(gradID GradID, values []float64) *Tensor {
	return &Tensor{gradID: gradID, values: values}
}

// Len returns the fixed buffer length.
func (t *Tensor) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}

// Values returns a snapshot copy of the buffer. The copy is immune to later
// Updates, so callers may hold it across operator calls.
func (t *Tensor) Values() []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]float64, len(t.values))
	copy(out, t.values)
	return out
}

// Update replaces the buffer contents and marks the change marker for the
// invalidation layer. The replacement must have the same length; tensors are
// fixed-length and every recorded Op over this tensor assumes it.
func (t *Tensor) Update(values []float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(values) != len(t.values) {
		panic(&ShapeError{Op: "update", Want: len(t.values), Got: len(values)})
	}
	copy(t.values, values)
	t.marker.Mark()
}

// WithGrad reports whether the tensor participates in gradient computation.
func (t *Tensor) WithGrad() bool { return t.gradID != noGrad }

// GradID returns the tensor's gradient identity, if it has one.
func (t *Tensor) GradID() (GradID, bool) {
	return t.gradID, t.gradID != noGrad
}

// Marker returns the change marker consumed by the invalidation layer.
func (t *Tensor) Marker() *ChangeMarker { return &t.marker }
