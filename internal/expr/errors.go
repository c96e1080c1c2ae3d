package expr

import "fmt"

// ShapeError reports a fatal operand length mismatch. Operators panic with a
// *ShapeError rather than returning a partial result: tensor operands of an
// elementwise operator must have equal lengths, and violations are
// programming errors in the caller's graph construction.
type ShapeError struct {
	Op   string // Operator being dispatched.
	Want int    // Length imposed by the first tensor operand.
	Got  int    // Conflicting operand length.
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: tensor length mismatch: %d vs %d", e.Op, e.Want, e.Got)
}
