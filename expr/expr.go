// Copyright 2026 Gradix ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package expr provides the public API for building and evaluating
// differentiable elementwise expressions in the Gradix framework.
//
// Expressions form a directed acyclic graph over float64 vectors:
//
//	a, at := expr.Parameter([]float64{1, 2, 3}, true)
//	c := a.Mul(expr.Constant(2.0)).Sin()
//
// The second return of Parameter is the backing tensor: optimizer loops read
// gradients keyed by its identity and write new values through Update.
// In the example above at.Update re-points a's values for the next forward
// pass.
//
// Evaluation is eager: each operator call computes its result immediately and
// records the provenance a reverse-mode walker needs. Parameters created with
// gradient tracking mint a fresh gradient identity per derived operation;
// constants never participate in differentiation.
//
// Comparisons come in three flavors per relation: exact 0/1 (Eq, Le, ...),
// piecewise-linear smoothed (EqLinear, LeLinear, ...) and sigmoid smoothed
// (EqSigmoid, LeSigmoid, ...). Smoothed forms are honored only when the
// result tracks gradients; otherwise they silently evaluate exactly.
package expr

import (
	"github.com/gradix-ml/gradix/internal/expr"
)

// Type aliases for public API

// Expression is a node of the computation graph: a constant scalar, a
// parameter vector, or the recorded result of an operation.
type Expression = expr.Expression

// Tensor is the shared value storage behind parameter and operation nodes.
// It is safe for concurrent readers, and Update lets an optimizer loop write
// new parameter values between forward passes.
type Tensor = expr.Tensor

// ScalarTensor is the result of Expression.Value: either a folded scalar or
// a tensor.
type ScalarTensor = expr.ScalarTensor

// Kind discriminates the expression variants.
type Kind = expr.Kind

// Kind constants.
const (
	KindConst     Kind = expr.KindConst
	KindParameter Kind = expr.KindParameter
	KindOperation Kind = expr.KindOperation
)

// Op is the recorded provenance of an operation node, consumed by
// reverse-mode walkers.
type Op = expr.Op

// OpKind discriminates the operation families recorded on a node.
type OpKind = expr.OpKind

// OpKind constants.
const (
	OpAssign OpKind = expr.OpAssign
	OpPowf   OpKind = expr.OpPowf
	OpCond   OpKind = expr.OpCond
	OpUnary  OpKind = expr.OpUnary
	OpBinary OpKind = expr.OpBinary
	OpCmp    OpKind = expr.OpCmp
)

// GradID is a gradient identity: the key a walker accumulates gradient
// buffers under.
type GradID = expr.GradID

// Accumulator hands out gradient accumulation buffers by identity during a
// backward pass.
type Accumulator = expr.Accumulator

// ShapeError is the panic payload for tensor length mismatches.
type ShapeError = expr.ShapeError

// Constant returns a scalar constant expression. Constants fold eagerly and
// never track gradients.
func Constant(value float64) Expression {
	return expr.Constant(value)
}

// Parameter returns a parameter expression over a copy of values, together
// with the tensor to read results and write updates through. needGrad
// enables gradient tracking.
func Parameter(values []float64, needGrad bool) (Expression, *Tensor) {
	return expr.Parameter(values, needGrad)
}
