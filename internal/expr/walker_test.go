package expr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// gradAccumulator is the map-backed Accumulator the backward tests drive the
// graph with. Buffers are keyed by gradient identity and created on first use.
type gradAccumulator map[GradID][]float64

func (g gradAccumulator) Gradient(id GradID, n int) []float64 {
	buf, ok := g[id]
	if !ok {
		buf = make([]float64, n)
		g[id] = buf
	}
	return buf
}

// runBackward seeds the root with ones and walks the graph in reverse
// topological order, invoking each node's backward rule with the gradients
// accumulated so far. Reversed post-order DFS puts every consumer before its
// operands, so upstream buffers are complete when a node fires.
func runBackward(e Expression) gradAccumulator {
	acc := make(gradAccumulator)
	root, ok := e.Value().Tensor()
	if !ok {
		return acc
	}
	id, ok := root.GradID()
	if !ok {
		return acc
	}
	seed := acc.Gradient(id, root.Len())
	for i := range seed {
		seed[i] = 1.0
	}

	var order []Expression
	visited := make(map[*Tensor]bool)
	var visit func(Expression)
	visit = func(node Expression) {
		tensor, ok := node.Value().Tensor()
		if !ok || visited[tensor] {
			return
		}
		visited[tensor] = true
		if op, ok := node.Op(); ok {
			for _, operand := range op.Operands() {
				visit(operand)
			}
		}
		order = append(order, node)
	}
	visit(e)

	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		tensor, _ := node.Value().Tensor()
		id, ok := tensor.GradID()
		if !ok {
			continue
		}
		op, ok := node.Op()
		if !ok {
			continue
		}
		op.Backward(tensor, acc.Gradient(id, tensor.Len()), acc)
	}
	return acc
}

// gradientOf returns the accumulated gradient buffer for a parameter tensor.
func gradientOf(t *testing.T, acc gradAccumulator, param *Tensor) []float64 {
	t.Helper()
	id, ok := param.GradID()
	require.True(t, ok, "parameter must track gradients")
	return acc.Gradient(id, param.Len())
}

// tensorValues extracts the element slice of a tensor-valued expression.
func tensorValues(t *testing.T, e Expression) []float64 {
	t.Helper()
	tensor, ok := e.Value().Tensor()
	require.True(t, ok, "expected a tensor result")
	return tensor.Values()
}

// scalarValue extracts the value of a folded constant expression.
func scalarValue(t *testing.T, e Expression) float64 {
	t.Helper()
	v, ok := e.Value().Scalar()
	require.True(t, ok, "expected a folded constant")
	return v
}
