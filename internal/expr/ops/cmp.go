package ops

// CmpKind identifies a comparison relation in the closed catalog.
type CmpKind uint8

const (
	Eq CmpKind = iota
	Ne
	Le
	Ge
	Lt
	Gt
)

var cmpNames = [...]string{"eq", "ne", "le", "ge", "lt", "gt"}

func (k CmpKind) String() string { return cmpNames[k] }

// MethodKind discriminates the smoothing strategies.
type MethodKind uint8

const (
	MethodDiscrete MethodKind = iota
	MethodLinear
	MethodSigmoid
)

var methodNames = [...]string{"discrete", "linear", "sigmoid"}

func (k MethodKind) String() string { return methodNames[k] }

// Method selects how a comparison is smoothed into a differentiable
// surrogate. Discrete returns exact 0/1 and contributes no gradient; Linear
// ramps across a 2*epsilon band around the flip point; Sigmoid uses a
// logistic (ordering relations) or Gaussian bump (equality).
//
// Every relation satisfies le+gt == 1, lt+ge == 1 and ne == 1-eq under every
// method, up to rounding: ne derives from eq and ge/gt from operand-swapped
// le/lt.
type Method struct {
	kind    MethodKind
	epsilon float64 // Linear band half-width.
	k       float64 // Sigmoid steepness.
}

// Discrete returns the exact 0/1 method.
func Discrete() Method { return Method{kind: MethodDiscrete} }

// Linear returns the piecewise-linear method with band half-width epsilon.
// epsilon must be positive; checked in debug builds only.
func Linear(epsilon float64) Method {
	assertPositive("epsilon", epsilon)
	return Method{kind: MethodLinear, epsilon: epsilon}
}

// Sigmoid returns the logistic/Gaussian method with steepness k.
// k must be positive; checked in debug builds only.
func Sigmoid(k float64) Method {
	assertPositive("k", k)
	return Method{kind: MethodSigmoid, k: k}
}

// Kind returns the method discriminator.
func (m Method) Kind() MethodKind { return m.kind }

// Epsilon returns the Linear band half-width (zero for other methods).
func (m Method) Epsilon() float64 { return m.epsilon }

// K returns the Sigmoid steepness (zero for other methods).
func (m Method) K() float64 { return m.k }

// Differentiable reports whether the method produces usable gradients.
// The dispatch layer downgrades non-differentiable requests to Discrete when
// no backward pass will consume the result.
func (m Method) Differentiable() bool { return m.kind != MethodDiscrete }

// CmpBackward adds the local derivative contribution for one operand of one
// comparison element into acc.
type CmpBackward func(lhs, rhs, res, grad float64, acc *float64)

// Forward evaluates one comparison element under the method.
func (m Method) Forward(kind CmpKind, lhs, rhs float64) float64 {
	switch kind {
	case Eq:
		return m.eqForward(lhs, rhs)
	case Ne:
		return m.neForward(lhs, rhs)
	case Le:
		return m.leForward(lhs, rhs)
	case Ge:
		return m.geForward(lhs, rhs)
	case Lt:
		return m.ltForward(lhs, rhs)
	default:
		return m.gtForward(lhs, rhs)
	}
}

// BackwardLHS adds the lhs-side derivative contribution into acc.
// Discrete contributes nothing.
func (m Method) BackwardLHS(kind CmpKind, lhs, rhs, res, grad float64, acc *float64) {
	switch kind {
	case Eq:
		m.eqBackwardLHS(lhs, rhs, res, grad, acc)
	case Ne:
		m.neBackwardLHS(lhs, rhs, res, grad, acc)
	case Le:
		m.leBackwardLHS(lhs, rhs, res, grad, acc)
	case Ge:
		m.geBackwardLHS(lhs, rhs, res, grad, acc)
	case Lt:
		m.ltBackwardLHS(lhs, rhs, res, grad, acc)
	default:
		m.gtBackwardLHS(lhs, rhs, res, grad, acc)
	}
}

// BackwardRHS adds the rhs-side derivative contribution into acc.
func (m Method) BackwardRHS(kind CmpKind, lhs, rhs, res, grad float64, acc *float64) {
	switch kind {
	case Eq:
		m.eqBackwardRHS(lhs, rhs, res, grad, acc)
	case Ne:
		m.neBackwardRHS(lhs, rhs, res, grad, acc)
	case Le:
		m.leBackwardRHS(lhs, rhs, res, grad, acc)
	case Ge:
		m.geBackwardRHS(lhs, rhs, res, grad, acc)
	case Lt:
		m.ltBackwardRHS(lhs, rhs, res, grad, acc)
	default:
		m.gtBackwardRHS(lhs, rhs, res, grad, acc)
	}
}

// Primitive relations dispatch on the method; derived relations reuse them.

func (m Method) eqForward(lhs, rhs float64) float64 {
	switch m.kind {
	case MethodLinear:
		return m.linearEqForward(lhs, rhs)
	case MethodSigmoid:
		return m.sigmoidEqForward(lhs, rhs)
	default:
		return discrete01(TotalCmp(lhs, rhs) == 0)
	}
}

func (m Method) eqBackwardLHS(lhs, rhs, res, grad float64, acc *float64) {
	switch m.kind {
	case MethodLinear:
		m.linearEqBackwardLHS(lhs, rhs, res, grad, acc)
	case MethodSigmoid:
		m.sigmoidEqBackwardLHS(lhs, rhs, grad, acc)
	}
}

func (m Method) eqBackwardRHS(lhs, rhs, res, grad float64, acc *float64) {
	switch m.kind {
	case MethodLinear:
		m.linearEqBackwardRHS(lhs, rhs, res, grad, acc)
	case MethodSigmoid:
		m.sigmoidEqBackwardRHS(lhs, rhs, grad, acc)
	}
}

// ne = 1 - eq under every method; backwards swap sign by reusing the eq
// rules with sides exchanged.

func (m Method) neForward(lhs, rhs float64) float64 {
	switch m.kind {
	case MethodLinear:
		return m.linearNeForward(lhs, rhs)
	case MethodSigmoid:
		return 1.0 - m.sigmoidEqForward(lhs, rhs)
	default:
		return discrete01(TotalCmp(lhs, rhs) != 0)
	}
}

func (m Method) neBackwardLHS(lhs, rhs, res, grad float64, acc *float64) {
	switch m.kind {
	case MethodLinear:
		m.linearNeBackwardLHS(lhs, rhs, res, grad, acc)
	case MethodSigmoid:
		m.sigmoidEqBackwardRHS(lhs, rhs, grad, acc)
	}
}

func (m Method) neBackwardRHS(lhs, rhs, res, grad float64, acc *float64) {
	switch m.kind {
	case MethodLinear:
		m.linearNeBackwardRHS(lhs, rhs, res, grad, acc)
	case MethodSigmoid:
		m.sigmoidEqBackwardLHS(lhs, rhs, grad, acc)
	}
}

func (m Method) leForward(lhs, rhs float64) float64 {
	switch m.kind {
	case MethodLinear:
		return m.linearLeForward(lhs, rhs)
	case MethodSigmoid:
		return m.sigmoidLeForward(lhs, rhs)
	default:
		return discrete01(TotalCmp(lhs, rhs) <= 0)
	}
}

func (m Method) leBackwardLHS(lhs, rhs, res, grad float64, acc *float64) {
	switch m.kind {
	case MethodLinear:
		m.linearLeBackwardLHS(lhs, rhs, grad, acc)
	case MethodSigmoid:
		m.sigmoidLeBackwardLHS(lhs, rhs, grad, acc)
	}
}

func (m Method) leBackwardRHS(lhs, rhs, res, grad float64, acc *float64) {
	switch m.kind {
	case MethodLinear:
		m.linearLeBackwardRHS(lhs, rhs, grad, acc)
	case MethodSigmoid:
		m.sigmoidLeBackwardRHS(lhs, rhs, grad, acc)
	}
}

// ge/gt are the operand swaps of le/lt, which guarantees le(a,b)+gt(a,b)==1
// exactly under every method.

func (m Method) geForward(lhs, rhs float64) float64 {
	if m.kind == MethodDiscrete {
		return discrete01(TotalCmp(lhs, rhs) >= 0)
	}
	return m.leForward(rhs, lhs)
}

func (m Method) geBackwardLHS(lhs, rhs, res, grad float64, acc *float64) {
	m.leBackwardRHS(lhs, rhs, res, grad, acc)
}

func (m Method) geBackwardRHS(lhs, rhs, res, grad float64, acc *float64) {
	m.leBackwardLHS(lhs, rhs, res, grad, acc)
}

func (m Method) ltForward(lhs, rhs float64) float64 {
	if m.kind == MethodDiscrete {
		return discrete01(TotalCmp(lhs, rhs) < 0)
	}
	return m.leForward(lhs, rhs)
}

func (m Method) ltBackwardLHS(lhs, rhs, res, grad float64, acc *float64) {
	m.leBackwardLHS(lhs, rhs, res, grad, acc)
}

func (m Method) ltBackwardRHS(lhs, rhs, res, grad float64, acc *float64) {
	m.leBackwardRHS(lhs, rhs, res, grad, acc)
}

func (m Method) gtForward(lhs, rhs float64) float64 {
	if m.kind == MethodDiscrete {
		return discrete01(TotalCmp(lhs, rhs) > 0)
	}
	return m.geForward(lhs, rhs)
}

func (m Method) gtBackwardLHS(lhs, rhs, res, grad float64, acc *float64) {
	m.geBackwardLHS(lhs, rhs, res, grad, acc)
}

func (m Method) gtBackwardRHS(lhs, rhs, res, grad float64, acc *float64) {
	m.geBackwardRHS(lhs, rhs, res, grad, acc)
}

func discrete01(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
