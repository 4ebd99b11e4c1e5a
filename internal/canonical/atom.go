package canonical

import (
	"fmt"
	"math/big"

	"github.com/wavecore/corelang/ast"
)

// Atom is a canonical leaf: either a known scalar literal (comparable and
// evaluable to a float) or an opaque subexpression the core chose not to
// look inside (comparable structurally, never evaluable).
type Atom struct {
	lit   any    // pre-parsed literal payload, non-nil for a literal atom
	exp   ast.Exp // opaque subexpression, non-nil for a non-literal atom
	float *big.Float
}

// FromValue wraps a scalar literal as a canonical atom. val is the same
// pre-parsed Go payload an ast.Lit carries (bool, string, or a sized
// integer/float type); arrays, structs, and complex values have no single
// float reading and are wrapped as opaque atoms via FromExp/ToExp instead.
func FromValue(val any) Canonical {
	return &Atom{lit: val, float: literalFloat(val)}
}

func literalFloat(val any) *big.Float {
	switch v := val.(type) {
	case int:
		return big.NewFloat(float64(v))
	case int8:
		return big.NewFloat(float64(v))
	case int16:
		return big.NewFloat(float64(v))
	case int32:
		return big.NewFloat(float64(v))
	case int64:
		return big.NewFloat(float64(v))
	case uint8:
		return big.NewFloat(float64(v))
	case uint16:
		return big.NewFloat(float64(v))
	case uint32:
		return big.NewFloat(float64(v))
	case uint64:
		return big.NewFloat(float64(v))
	case float32:
		return big.NewFloat(float64(v))
	case float64:
		return big.NewFloat(v)
	default:
		return nil
	}
}

// FromExp builds the canonical form of a scalar expression: additions,
// subtractions, multiplications, and divisions recurse and get algebraic
// treatment (via FromBinary); every other node becomes an opaque atom,
// compared and printed structurally.
func FromExp(e ast.Exp) Canonical {
	if be, ok := e.(*ast.BinaryExp); ok {
		switch be.Op {
		case ast.BAdd, ast.BSub, ast.BMul, ast.BDiv:
			return FromBinary(be.Op, FromExp(be.X), FromExp(be.Y))
		}
	}
	if lit, ok := e.(*ast.Lit); ok {
		if literalFloat(lit.Val) != nil {
			return &Atom{lit: lit.Val, float: literalFloat(lit.Val)}
		}
	}
	return &Atom{exp: e}
}

// Key returns a string uniquely determined by an expression's canonical
// form: two expressions that canonicalize the same way (e.g. "x+1" and
// "1+x") produce the same key, letting the guess store use it to recognise
// that two syntactically different assumptions are the same fact.
func Key(e ast.Exp) string { return FromExp(e).String() }

func (a *Atom) Float() *big.Float { return a.float }

func (a *Atom) Compare(other Comparable) bool {
	b, ok := other.(*Atom)
	if !ok {
		return false
	}
	if a.lit != nil || b.lit != nil {
		return a.float != nil && b.float != nil && a.float.Cmp(b.float) == 0
	}
	return exprEqual(a.exp, b.exp)
}

func (a *Atom) Simplify() Simplifier { return a }

func (a *Atom) String() string {
	if a.lit != nil {
		return fmt.Sprint(a.lit)
	}
	return exprKey(a.exp)
}

var (
	_ Canonical  = (*Atom)(nil)
	_ Simplifier = (*Atom)(nil)
	_ Evaluable  = (*Atom)(nil)
)

// exprEqual reports whether two opaque expression trees are the same
// syntax tree, field by field. Positions are ignored; only the values that
// affect the program's meaning are compared.
func exprEqual(x, y ast.Exp) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	switch xt := x.(type) {
	case *ast.Lit:
		yt, ok := y.(*ast.Lit)
		return ok && fmt.Sprint(xt.Val) == fmt.Sprint(yt.Val)
	case *ast.VarRef:
		yt, ok := y.(*ast.VarRef)
		return ok && xt.ID == yt.ID
	case *ast.ArrayLit:
		yt, ok := y.(*ast.ArrayLit)
		return ok && expSliceEqual(xt.Elts, yt.Elts)
	case *ast.ArrayRead:
		yt, ok := y.(*ast.ArrayRead)
		return ok && xt.Mode == yt.Mode && xt.Len == yt.Len && xt.LenVar == yt.LenVar &&
			exprEqual(xt.Base, yt.Base) && exprEqual(xt.Index, yt.Index)
	case *ast.ArrayWrite:
		yt, ok := y.(*ast.ArrayWrite)
		return ok && xt.Mode == yt.Mode && xt.Len == yt.Len && xt.LenVar == yt.LenVar &&
			exprEqual(xt.Base, yt.Base) && exprEqual(xt.Index, yt.Index) && exprEqual(xt.Value, yt.Value)
	case *ast.StructLit:
		yt, ok := y.(*ast.StructLit)
		if !ok || len(xt.Fields) != len(yt.Fields) {
			return false
		}
		for i := range xt.Fields {
			if xt.Fields[i].Name != yt.Fields[i].Name || !exprEqual(xt.Fields[i].Val, yt.Fields[i].Val) {
				return false
			}
		}
		return true
	case *ast.FieldProj:
		yt, ok := y.(*ast.FieldProj)
		return ok && xt.Field == yt.Field && exprEqual(xt.Struct, yt.Struct)
	case *ast.UnaryExp:
		yt, ok := y.(*ast.UnaryExp)
		return ok && xt.Op == yt.Op && exprEqual(xt.X, yt.X)
	case *ast.BinaryExp:
		yt, ok := y.(*ast.BinaryExp)
		return ok && xt.Op == yt.Op && exprEqual(xt.X, yt.X) && exprEqual(xt.Y, yt.Y)
	case *ast.CallExp:
		yt, ok := y.(*ast.CallExp)
		return ok && xt.Func == yt.Func && expSliceEqual(xt.Args, yt.Args)
	default:
		return x == y
	}
}

func expSliceEqual(xs, ys []ast.Exp) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !exprEqual(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

// exprKey renders an opaque expression into a string sufficient to tell
// distinct trees apart; it is not meant to be parseable or pretty.
func exprKey(e ast.Exp) string {
	switch xt := e.(type) {
	case nil:
		return "<nil>"
	case *ast.Lit:
		return fmt.Sprint(xt.Val)
	case *ast.VarRef:
		return fmt.Sprintf("var#%d", xt.ID)
	case *ast.ArrayLit:
		return fmt.Sprintf("[%s]", expSliceKey(xt.Elts))
	case *ast.ArrayRead:
		return fmt.Sprintf("%s[%s]", exprKey(xt.Base), exprKey(xt.Index))
	case *ast.ArrayWrite:
		return fmt.Sprintf("%s[%s]:=%s", exprKey(xt.Base), exprKey(xt.Index), exprKey(xt.Value))
	case *ast.StructLit:
		parts := make([]string, len(xt.Fields))
		for i, f := range xt.Fields {
			parts[i] = f.Name + ":" + exprKey(f.Val)
		}
		return fmt.Sprintf("{%s}", parts)
	case *ast.FieldProj:
		return fmt.Sprintf("%s.%s", exprKey(xt.Struct), xt.Field)
	case *ast.UnaryExp:
		return fmt.Sprintf("(%s %s)", xt.Op, exprKey(xt.X))
	case *ast.BinaryExp:
		return fmt.Sprintf("(%s %s %s)", xt.Op, exprKey(xt.X), exprKey(xt.Y))
	case *ast.CallExp:
		return fmt.Sprintf("%s(%s)", xt.Func, expSliceKey(xt.Args))
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func expSliceKey(xs []ast.Exp) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = exprKey(x)
	}
	return fmt.Sprint(parts)
}
