// Package canonical builds comparable normal forms for the core's
// arithmetic expressions: commutative operators sort their operands into a
// fixed order before comparison, so "x+1" and "1+x" canonicalize to the
// same tree and compare equal even though the evaluator never actually
// rewrote one into the other. This is what lets the non-deterministic
// evaluator's guess store recognise that two differently-shaped residual
// expressions assume the same fact.
package canonical

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/wavecore/corelang/ast"
)

type (
	// Comparable defines an interface for comparing an expression against another.
	Comparable interface {
		Compare(x Comparable) bool
	}

	// Canonical is a canonical expression.
	Canonical interface {
		Comparable
		fmt.Stringer
	}

	// Evaluable is a canonical that can be evaluated to a float, when every
	// leaf it is built from is itself a known constant.
	Evaluable interface {
		Float() *big.Float
	}

	// Simplifier is an expression that can be simplified.
	Simplifier interface {
		Canonical
		Simplify() Simplifier
	}

	exprStr struct {
		expr Canonical
		str  string
	}

	pExpr struct {
		exprs []Canonical
		str   string
	}

	pExprOp interface {
		Evaluable
		args() []Canonical
		op() ast.BinaryOp
	}

	add struct{ *pExpr }
	sub struct{ *pExpr }
	mul struct{ *pExpr }
	quo struct{ *pExpr }

	unknown struct {
		bop ast.BinaryOp
		*pExpr
	}
)

// FromBinary returns a canonical expression from a binary expression. Only
// the four arithmetic operators get dedicated algebraic treatment (operand
// reordering, subtraction folded to addition of a negation, division
// folded to multiplication by a reciprocal); every other operator is kept
// opaque but still comparable, with its operands in source order.
func FromBinary(op ast.BinaryOp, x, y Canonical) Simplifier {
	switch op {
	case ast.BMul:
		return mul{pExpr: prefixedExpr(x, y)}
	case ast.BDiv:
		return mul{pExpr: prefixedExpr(x, quo{prefixedExpr(y)})}
	case ast.BAdd:
		return add{pExpr: prefixedExpr(x, y)}
	case ast.BSub:
		return add{pExpr: prefixedExpr(x, sub{prefixedExpr(y)})}
	default:
		return unknown{bop: op, pExpr: &pExpr{exprs: []Canonical{x, y}, str: x.String() + " " + y.String()}}
	}
}

// NewExpr returns a new canonical expression in prefix form over an
// arbitrary number of operands (used once operands have already been
// flattened, e.g. repeated additions collapsed by Simplify).
func NewExpr(op ast.BinaryOp, xs ...Canonical) Simplifier {
	return newExpr(op, xs...)
}

func newExpr(op ast.BinaryOp, xs ...Canonical) Simplifier {
	switch op {
	case ast.BMul:
		return mul{pExpr: prefixedExpr(xs...)}
	case ast.BDiv:
		return quo{pExpr: prefixedExpr(xs...)}
	case ast.BAdd:
		return add{pExpr: prefixedExpr(xs...)}
	case ast.BSub:
		return sub{pExpr: prefixedExpr(xs...)}
	default:
		return unknown{bop: op, pExpr: prefixedExpr(xs...)}
	}
}

func prefixedExpr(xs ...Canonical) *pExpr {
	cexprs := make([]*exprStr, len(xs))
	for i, x := range xs {
		cexprs[i] = &exprStr{expr: x, str: x.String()}
	}
	sort.Slice(cexprs, func(i, j int) bool {
		return cexprs[i].str < cexprs[j].str
	})
	strs := make([]string, len(xs))
	exprs := make([]Canonical, len(xs))
	for i, cexpr := range cexprs {
		exprs[i] = cexpr.expr
		strs[i] = cexpr.str
	}
	return &pExpr{exprs: exprs, str: strings.Join(strs, " ")}
}

func (m *pExpr) compare(op ast.BinaryOp, other Comparable) bool {
	otherT, ok := other.(pExprOp)
	if !ok {
		return false
	}
	if op != otherT.op() {
		return false
	}
	oExprs := otherT.args()
	if len(m.exprs) != len(oExprs) {
		return false
	}
	for i, mi := range m.exprs {
		if !mi.Compare(oExprs[i]) {
			return false
		}
	}
	return true
}

func (m *pExpr) string(pe pExprOp) string {
	return fmt.Sprintf("(%s %s)", pe.op(), m.str)
}

func (m *pExpr) simplifiedArgs() []Canonical {
	args := m.args()
	r := make([]Canonical, len(args))
	for i, arg := range args {
		simplifier, ok := arg.(Simplifier)
		if !ok {
			r[i] = arg
		} else {
			r[i] = simplifier.Simplify()
		}
	}
	return r
}

func (m *pExpr) args() []Canonical { return m.exprs }

func (pe add) op() ast.BinaryOp { return ast.BAdd }
func (pe add) Compare(other Comparable) bool { return pe.compare(pe.op(), other) }
func (pe add) Float() *big.Float {
	r := new(big.Float)
	for _, arg := range pe.args() {
		argF := toFloat(arg)
		if argF == nil {
			return nil
		}
		r.Add(r, argF)
	}
	return r
}
func (pe add) Simplify() Simplifier { return pe }
func (pe add) String() string       { return pe.pExpr.string(pe) }

func (pe sub) op() ast.BinaryOp { return ast.BSub }
func (pe sub) Compare(other Comparable) bool { return pe.compare(pe.op(), other) }
func (pe sub) Float() *big.Float {
	r := new(big.Float)
	for _, val := range pe.args() {
		evalX, ok := val.(Evaluable)
		if !ok {
			return nil
		}
		x := evalX.Float()
		if x == nil {
			return nil
		}
		r.Add(r, new(big.Float).Neg(x))
	}
	return r
}
func (pe sub) Simplify() Simplifier { return pe }
func (pe sub) String() string       { return pe.pExpr.string(pe) }

func (pe mul) op() ast.BinaryOp { return ast.BMul }
func (pe mul) Compare(other Comparable) bool { return pe.compare(pe.op(), other) }
func (pe mul) Float() *big.Float {
	r := big.NewFloat(1)
	for _, val := range pe.args() {
		valF := toFloat(val)
		if valF == nil {
			return nil
		}
		r.Mul(r, valF)
	}
	return r
}

func toFloat(c Canonical) *big.Float {
	f, ok := c.(Evaluable)
	if !ok {
		return nil
	}
	return f.Float()
}

func (pe mul) Simplify() Simplifier {
	var args []Canonical
	for _, arg := range pe.simplifiedArgs() {
		argF := toFloat(arg)
		if argF != nil && argF.Cmp(one) == 0 {
			continue
		}
		argT, ok := arg.(mul)
		if !ok {
			args = append(args, arg)
			continue
		}
		args = append(args, argT.args()...)
	}
	return mul{pExpr: prefixedExpr(args...)}
}
func (pe mul) String() string { return pe.pExpr.string(pe) }

func (pe quo) op() ast.BinaryOp { return ast.BDiv }
func (pe quo) Compare(other Comparable) bool { return pe.compare(pe.op(), other) }

var one = big.NewFloat(1)

func (pe quo) Float() *big.Float {
	r := big.NewFloat(1)
	for _, arg := range pe.args() {
		argF := toFloat(arg)
		if argF == nil {
			return nil
		}
		r.Mul(r, new(big.Float).Quo(one, argF))
	}
	return r
}
func (pe quo) Simplify() Simplifier { return pe }
func (pe quo) String() string       { return pe.pExpr.string(pe) }

func (pe unknown) op() ast.BinaryOp          { return pe.bop }
func (pe unknown) Compare(other Comparable) bool { return pe.compare(pe.op(), other) }
func (pe unknown) Float() *big.Float         { return nil }
func (pe unknown) Simplify() Simplifier      { return pe }
func (pe unknown) String() string            { return pe.pExpr.string(pe) }

// ToValue returns a float value if the canonical expression is evaluable,
// that is if it contains only known constants and no free atom.
func ToValue(can Canonical) *big.Float {
	eval, ok := can.(Evaluable)
	if !ok {
		return nil
	}
	return eval.Float()
}
