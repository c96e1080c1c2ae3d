package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats/scalar"
)

var allCmpKinds = []CmpKind{Eq, Ne, Le, Ge, Lt, Gt}

func TestDiscreteForward(t *testing.T) {
	m := Discrete()

	assert.Equal(t, 1.0, m.Forward(Eq, 2, 2))
	assert.Equal(t, 0.0, m.Forward(Eq, 2, 3))
	assert.Equal(t, 1.0, m.Forward(Ne, 2, 3))
	assert.Equal(t, 0.0, m.Forward(Ne, 2, 2))
	assert.Equal(t, 1.0, m.Forward(Le, 2, 2))
	assert.Equal(t, 1.0, m.Forward(Le, 1, 2))
	assert.Equal(t, 0.0, m.Forward(Le, 3, 2))
	assert.Equal(t, 1.0, m.Forward(Ge, 2, 2))
	assert.Equal(t, 0.0, m.Forward(Lt, 2, 2))
	assert.Equal(t, 1.0, m.Forward(Lt, 1, 2))
	assert.Equal(t, 0.0, m.Forward(Gt, 2, 2))
	assert.Equal(t, 1.0, m.Forward(Gt, 3, 2))
}

func TestDiscreteTotalOrder(t *testing.T) {
	m := Discrete()
	nan := math.NaN()

	// NaN equals itself and sorts above +Inf under the total order.
	assert.Equal(t, 1.0, m.Forward(Eq, nan, nan))
	assert.Equal(t, 0.0, m.Forward(Ne, nan, nan))
	assert.Equal(t, 1.0, m.Forward(Gt, nan, math.Inf(1)))
	assert.Equal(t, 0.0, m.Forward(Le, nan, 1.0))
	assert.Equal(t, 1.0, m.Forward(Lt, math.Inf(1), nan))

	// signed zeros compare equal
	negZero := math.Copysign(0, -1)
	assert.Equal(t, 1.0, m.Forward(Eq, negZero, 0.0))
	assert.Equal(t, 1.0, m.Forward(Le, 0.0, negZero))
}

func TestDiscreteBackwardContributesNothing(t *testing.T) {
	m := Discrete()
	require.False(t, m.Differentiable())
	for _, kind := range allCmpKinds {
		acc := 0.75
		m.BackwardLHS(kind, 1, 2, m.Forward(kind, 1, 2), 1.0, &acc)
		m.BackwardRHS(kind, 1, 2, m.Forward(kind, 1, 2), 1.0, &acc)
		assert.Equal(t, 0.75, acc, kind.String())
	}
}

func TestCmpComplementIdentities(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	methods := map[string]Method{
		"discrete": Discrete(),
		"linear":   Linear(0.5),
		"sigmoid":  Sigmoid(3.0),
	}

	for name, m := range methods {
		t.Run(name, func(t *testing.T) {
			check := func(lhs, rhs float64) {
				assert.InDelta(t, 1.0, m.Forward(Le, lhs, rhs)+m.Forward(Gt, lhs, rhs), 1e-12,
					"le+gt at (%v, %v)", lhs, rhs)
				assert.InDelta(t, 1.0, m.Forward(Lt, lhs, rhs)+m.Forward(Ge, lhs, rhs), 1e-12,
					"lt+ge at (%v, %v)", lhs, rhs)
				assert.InDelta(t, 1.0-m.Forward(Eq, lhs, rhs), m.Forward(Ne, lhs, rhs), 1e-12,
					"ne vs 1-eq at (%v, %v)", lhs, rhs)
			}
			for trial := 0; trial < 100; trial++ {
				check(rng.Float64()*4-2, rng.Float64()*4-2)
			}
			check(1.5, 1.5)
			check(0.0, math.Copysign(0, -1))
		})
	}
}

func TestLinearBandShape(t *testing.T) {
	m := Linear(0.5)

	// eq peaks at 1 on equality and decays linearly to 0 at the band edge
	assert.Equal(t, 1.0, m.Forward(Eq, 2.0, 2.0))
	assert.InDelta(t, 0.5, m.Forward(Eq, 2.25, 2.0), 1e-15)
	assert.InDelta(t, 0.5, m.Forward(Eq, 1.75, 2.0), 1e-15)
	assert.Equal(t, 0.0, m.Forward(Eq, 2.5, 2.0))
	assert.Equal(t, 0.0, m.Forward(Eq, 3.0, 2.0))

	// le crosses 0.5 at equality and saturates outside the band
	assert.Equal(t, 0.5, m.Forward(Le, 2.0, 2.0))
	assert.Equal(t, 1.0, m.Forward(Le, 1.4, 2.0))
	assert.Equal(t, 0.0, m.Forward(Le, 2.6, 2.0))
	assert.InDelta(t, 0.75, m.Forward(Le, 1.75, 2.0), 1e-15)
}

func TestSigmoidConvergesToDiscrete(t *testing.T) {
	lhs, rhs := 0.3, 0.35
	d := Discrete()

	prev := math.Inf(1)
	for _, k := range []float64{1, 10, 100} {
		m := Sigmoid(k)
		gap := math.Abs(m.Forward(Le, lhs, rhs) - d.Forward(Le, lhs, rhs))
		assert.Less(t, gap, prev, "k=%v", k)
		prev = gap
	}

	sharp := Sigmoid(1e5)
	for _, kind := range allCmpKinds {
		assert.InDelta(t, d.Forward(kind, lhs, rhs), sharp.Forward(kind, lhs, rhs), 1e-12, kind.String())
		assert.InDelta(t, d.Forward(kind, rhs, lhs), sharp.Forward(kind, rhs, lhs), 1e-12, kind.String())
	}
}

func TestSigmoidAtEquality(t *testing.T) {
	m := Sigmoid(4.0)
	assert.Equal(t, 1.0, m.Forward(Eq, 1.5, 1.5))
	assert.Equal(t, 0.5, m.Forward(Le, 1.5, 1.5))
	assert.Equal(t, 0.5, m.Forward(Ge, 1.5, 1.5))
}

func TestSmoothedCmpGradientCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(19))

	methods := map[string]struct {
		m      Method
		sample func() (lhs, rhs float64)
	}{
		// stay inside the band and away from the kinks at d = 0 and |d| = eps
		"linear": {Linear(0.5), func() (float64, float64) {
			d := 0.05 + rng.Float64()*0.35
			if rng.Intn(2) == 0 {
				d = -d
			}
			base := rng.Float64()*4 - 2
			return base + d, base
		}},
		"sigmoid": {Sigmoid(2.0), func() (float64, float64) {
			return rng.Float64()*4 - 2, rng.Float64()*4 - 2
		}},
	}

	for name, tc := range methods {
		t.Run(name, func(t *testing.T) {
			for _, kind := range allCmpKinds {
				for trial := 0; trial < 30; trial++ {
					lhs, rhs := tc.sample()
					res := tc.m.Forward(kind, lhs, rhs)

					var accL, accR float64
					tc.m.BackwardLHS(kind, lhs, rhs, res, 1.0, &accL)
					tc.m.BackwardRHS(kind, lhs, rhs, res, 1.0, &accR)

					numL := numericalDerivative(func(x float64) float64 { return tc.m.Forward(kind, x, rhs) }, lhs, 1e-6)
					numR := numericalDerivative(func(x float64) float64 { return tc.m.Forward(kind, lhs, x) }, rhs, 1e-6)
					require.True(t, scalar.EqualWithinAbsOrRel(accL, numL, 1e-7, 1e-5),
						"%s %s lhs grad at (%v, %v): backward %v, finite difference %v", name, kind, lhs, rhs, accL, numL)
					require.True(t, scalar.EqualWithinAbsOrRel(accR, numR, 1e-7, 1e-5),
						"%s %s rhs grad at (%v, %v): backward %v, finite difference %v", name, kind, lhs, rhs, accR, numR)
				}
			}
		})
	}
}

func TestLinearBackwardOutsideBandIsZero(t *testing.T) {
	m := Linear(0.5)
	for _, kind := range allCmpKinds {
		lhs, rhs := 5.0, 2.0
		res := m.Forward(kind, lhs, rhs)
		acc := 0.0
		m.BackwardLHS(kind, lhs, rhs, res, 1.0, &acc)
		m.BackwardRHS(kind, lhs, rhs, res, 1.0, &acc)
		assert.Equal(t, 0.0, acc, kind.String())
	}
}

func TestMethodConstructors(t *testing.T) {
	d := Discrete()
	assert.Equal(t, MethodDiscrete, d.Kind())
	assert.False(t, d.Differentiable())

	l := Linear(0.25)
	assert.Equal(t, MethodLinear, l.Kind())
	assert.Equal(t, 0.25, l.Epsilon())
	assert.True(t, l.Differentiable())

	s := Sigmoid(8.0)
	assert.Equal(t, MethodSigmoid, s.Kind())
	assert.Equal(t, 8.0, s.K())
	assert.True(t, s.Differentiable())
}
