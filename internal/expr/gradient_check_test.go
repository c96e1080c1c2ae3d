package expr

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

// buildComposite mixes the operator families into one graph so the walker
// gradient can be checked against a finite difference of the whole forward
// pass.
func buildComposite(a, b Expression) Expression {
	trig := a.Mul(b).Sin()
	poly := a.Sqr().Mul(Constant(0.5))
	soft := a.LeSigmoid(b, 2.0)
	extremum := a.Max(b)
	return trig.Add(poly).Add(soft).Add(extremum).Mul(Constant(0.25))
}

func evalComposite(avals, bvals []float64) []float64 {
	a, _ := Parameter(avals, true)
	b, _ := Parameter(bvals, true)
	tensor, ok := buildComposite(a, b).Value().Tensor()
	if !ok {
		panic("composite folded to a constant")
	}
	return tensor.Values()
}

func TestCompositeGradientCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const n = 16
	const h = 1e-6

	avals := make([]float64, n)
	bvals := make([]float64, n)
	for i := range avals {
		avals[i] = rng.Float64()*2 - 1
		// keep operands separated so the max branch is stable across the
		// finite-difference step
		off := 0.05 + rng.Float64()
		if rng.Intn(2) == 0 {
			off = -off
		}
		bvals[i] = avals[i] + off
	}

	a, aTensor := Parameter(avals, true)
	b, bTensor := Parameter(bvals, true)
	out := buildComposite(a, b)

	acc := runBackward(out)
	aID, _ := aTensor.GradID()
	bID, _ := bTensor.GradID()
	gradA := acc.Gradient(aID, n)
	gradB := acc.Gradient(bID, n)

	perturb := func(vals []float64, i int, delta float64) []float64 {
		out := make([]float64, len(vals))
		copy(out, vals)
		out[i] += delta
		return out
	}

	// every operator is elementwise, so output element i depends only on
	// avals[i] and bvals[i]
	for i := 0; i < n; i++ {
		numA := (evalComposite(perturb(avals, i, h), bvals)[i] -
			evalComposite(perturb(avals, i, -h), bvals)[i]) / (2 * h)
		numB := (evalComposite(avals, perturb(bvals, i, h))[i] -
			evalComposite(avals, perturb(bvals, i, -h))[i]) / (2 * h)

		if diff := math.Abs(gradA[i] - numA); diff > 1e-5 {
			t.Errorf("element %d: d/da backward %.10f, finite difference %.10f (diff %.2e)",
				i, gradA[i], numA, diff)
		}
		if diff := math.Abs(gradB[i] - numB); diff > 1e-5 {
			t.Errorf("element %d: d/db backward %.10f, finite difference %.10f (diff %.2e)",
				i, gradB[i], numB, diff)
		}
	}
}

func TestGradientDescentConverges(t *testing.T) {
	// minimize sum (x^2 - target)^2 by rebuilding the graph each step
	target := []float64{2, 3, 5}
	x, xTensor := Parameter([]float64{1, 1, 1}, true)
	tgt, _ := Parameter(target, false)

	const lr = 0.02
	for step := 0; step < 2000; step++ {
		loss := x.Sqr().Sub(tgt).Sqr()
		acc := runBackward(loss)
		id, _ := xTensor.GradID()
		grad := acc.Gradient(id, xTensor.Len())

		vals := xTensor.Values()
		for i := range vals {
			vals[i] -= lr * grad[i]
		}
		xTensor.Update(vals)
	}

	got := xTensor.Values()
	for i, want := range target {
		if diff := math.Abs(got[i]*got[i] - want); diff > 1e-6 {
			t.Errorf("element %d: x^2 = %.8f, want %v", i, got[i]*got[i], want)
		}
	}
}
