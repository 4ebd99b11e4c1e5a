package canonical_test

import (
	"testing"

	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/internal/canonical"
)

func lit(v any) ast.Exp { return ast.NewLit(ast.Pos{}, ast.Int32T, v) }

func binExp(op ast.BinaryOp, x, y ast.Exp) ast.Exp {
	return &ast.BinaryExp{Op: op, X: x, Y: y}
}

func TestFromExpEvaluatesConstantArithmetic(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Exp
		want float64
	}{
		{"add", binExp(ast.BAdd, lit(int32(5)), lit(int32(2))), 7},
		{"mul", binExp(ast.BMul, lit(int32(5)), lit(int32(2))), 10},
		{"sub", binExp(ast.BSub, lit(int32(5)), lit(int32(2))), 3},
		{"div", binExp(ast.BDiv, lit(int32(10)), lit(int32(2))), 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			can := canonical.FromExp(tc.expr)
			f := canonical.ToValue(can)
			if f == nil {
				t.Fatalf("ToValue(%v) = nil, want %v", tc.expr, tc.want)
			}
			if got, _ := f.Float64(); got != tc.want {
				t.Errorf("ToValue(%v) = %v, want %v", tc.expr, got, tc.want)
			}
		})
	}
}

func TestFromExpCommutativeOperandOrderIsIgnored(t *testing.T) {
	x := &ast.VarRef{ID: 1, Name: "x"}
	a := binExp(ast.BAdd, x, lit(int32(1)))
	b := binExp(ast.BAdd, lit(int32(1)), x)

	ca, cb := canonical.FromExp(a), canonical.FromExp(b)
	if !ca.Compare(cb) {
		t.Errorf("canonical(x+1) != canonical(1+x): %s vs %s", ca, cb)
	}
	if canonical.Key(a) != canonical.Key(b) {
		t.Errorf("Key(x+1) = %q, Key(1+x) = %q, want equal", canonical.Key(a), canonical.Key(b))
	}
}

func TestFromExpDistinctVariablesAreNotEqual(t *testing.T) {
	x := &ast.VarRef{ID: 1, Name: "x"}
	y := &ast.VarRef{ID: 2, Name: "y"}
	a := binExp(ast.BAdd, x, lit(int32(1)))
	b := binExp(ast.BAdd, y, lit(int32(1)))

	if canonical.FromExp(a).Compare(canonical.FromExp(b)) {
		t.Errorf("canonical(x+1) == canonical(y+1), want distinct")
	}
}

func TestFromExpEquivalentConstantFoldsMatch(t *testing.T) {
	a := canonical.FromExp(binExp(ast.BSub, lit(int32(5)), lit(int32(2))))
	b := canonical.FromExp(binExp(ast.BAdd, lit(int32(5)), lit(int32(-2))))
	fa, fb := canonical.ToValue(a), canonical.ToValue(b)
	if fa == nil || fb == nil || fa.Cmp(fb) != 0 {
		t.Errorf("5-2 and 5+(-2) should evaluate equal, got %v and %v", fa, fb)
	}
}

func TestKeyDistinguishesOpaqueCalls(t *testing.T) {
	call1 := &ast.CallExp{Func: "fir", Args: []ast.Exp{lit(int32(1))}}
	call2 := &ast.CallExp{Func: "fir", Args: []ast.Exp{lit(int32(2))}}
	if canonical.Key(call1) == canonical.Key(call2) {
		t.Errorf("Key should distinguish calls with different arguments")
	}
}

func TestMulSimplifyDropsIdentityAndFlattensNesting(t *testing.T) {
	five, four, three, one := lit(int32(5)), lit(int32(4)), lit(int32(3)), lit(int32(1))
	nested := binExp(ast.BMul, five, binExp(ast.BMul, four, binExp(ast.BMul, three, one)))
	expr, ok := canonical.FromExp(nested).(canonical.Simplifier)
	if !ok {
		t.Fatalf("%T does not implement Simplifier", canonical.FromExp(nested))
	}
	simplified := expr.Simplify()
	got := canonical.ToValue(simplified)
	if got == nil {
		t.Fatal("simplified expression is not evaluable")
	}
	if f, _ := got.Float64(); f != 60 {
		t.Errorf("simplified (5*(4*(3*1))) = %v, want 60", f)
	}
	if s := simplified.String(); s != "(* 3 4 5)" {
		t.Errorf("simplified (5*(4*(3*1))) = %s, want (* 3 4 5)", s)
	}
}
