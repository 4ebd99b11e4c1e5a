// Package interp implements the expression evaluator: a single traversal
// shared by full evaluation (errors on anything that does not reduce),
// partial evaluation (keeps unreduced subexpressions as residual syntax),
// and non-deterministic evaluation (guesses the truth of conditions it
// cannot decide and enumerates the resulting alternatives). The three
// modes are not three code paths: Mode only controls whether the
// traversal is allowed to fork when it meets something it cannot decide,
// and whether a residual result at the top is an error or a value.
package interp

import (
	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/value"
)

// Mode selects how the shared traversal behaves at points where a
// subexpression does not reduce to a value.
type Mode int

const (
	// Full fails the whole evaluation with a free-variable error.
	Full Mode = iota
	// Partial keeps the subexpression as residual syntax.
	Partial
	// NonDet behaves like Partial, except boolean conditions and integer
	// comparisons it cannot decide are guessed, forking the evaluation
	// into independent alternatives.
	NonDet
)

func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case Partial:
		return "partial"
	case NonDet:
		return "non-deterministic"
	default:
		return "<invalid mode>"
	}
}

// Evald is the result of interpreting one expression: either a fully
// reduced value, or a residual expression standing in for whatever did not
// reduce.
type Evald struct {
	val value.Value
	exp ast.Exp
}

// FullValue wraps a fully reduced value.
func FullValue(v value.Value) Evald { return Evald{val: v} }

// Residual wraps a residual expression.
func Residual(e ast.Exp) Evald { return Evald{exp: e} }

// IsValue reports whether this result fully reduced.
func (e Evald) IsValue() bool { return e.val != nil }

// Value returns the reduced value. Callers must check IsValue first.
func (e Evald) Value() value.Value { return e.val }

// Exp returns e as an expression: the residual syntax if e did not reduce,
// or the literal denoting e.Value() otherwise. Total, per the value
// model's ToExp contract.
func (e Evald) Exp() ast.Exp {
	if e.IsValue() {
		return value.ToExp(e.val)
	}
	return e.exp
}
