// Package ops implements the scalar operator semantics the evaluator
// applies once both operands of a unary, binary, or cast expression have
// reduced to concrete values: the arithmetic, bitwise, ordering, and
// conversion tables of the value domain. Every entry point here is a
// partial function of already-typed values; a returned error always means
// the front end's type checker should have rejected the program before it
// reached this core, never a condition a well-typed program can trigger
// except division by zero (ErrDivByZero) and an integer power with a
// negative exponent, which are genuine runtime faults.
package ops

import (
	"github.com/pkg/errors"

	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/value"
)

// ErrDivByZero is returned by Binary for integer and complex division or
// remainder by zero, and for double division by zero.
var ErrDivByZero = errors.New("division by zero")

func errKindMismatch(op ast.BinaryOp, x, y value.Value) error {
	return errors.Errorf("operator %v not applicable between %s and %s", op, x.Kind(), y.Kind())
}

func errBinaryNotApplicable(op ast.BinaryOp, x value.Value) error {
	return errors.Errorf("operator %v not applicable to %s", op, x.Kind())
}

func errUnaryNotApplicable(op ast.UnaryOp, x value.Value) error {
	return errors.Errorf("unary operator %v not applicable to %s", op, x.Kind())
}

func errCastNotApplicable(from ast.Kind, to ast.Type) error {
	return errors.Errorf("cannot cast %s to %s", from, to.Kind())
}
