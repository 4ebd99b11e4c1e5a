package interp_test

import (
	"testing"

	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/interp"
	"github.com/wavecore/corelang/value"
)

func lit32(v int32) *ast.Lit { return ast.NewLit(ast.Pos{}, ast.Int32T, v) }

func add(x, y ast.Exp) *ast.BinaryExp { return ast.NewBinaryExp(ast.Pos{}, ast.Int32T, ast.BAdd, x, y) }
func mul(x, y ast.Exp) *ast.BinaryExp { return ast.NewBinaryExp(ast.Pos{}, ast.Int32T, ast.BMul, x, y) }

func asInt32(t *testing.T, v value.Value) int32 {
	t.Helper()
	n, ok := v.(value.Int[int32])
	if !ok {
		t.Fatalf("value is %T, want value.Int[int32]", v)
	}
	return n.V
}

// Constant folding: (2 + 3) * 4 in full mode -> 20.
func TestEvalConstantFolding(t *testing.T) {
	e := mul(add(lit32(2), lit32(3)), lit32(4))
	ev := interp.New(interp.Full)
	res, _, err := ev.Eval(e)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !res.IsValue() {
		t.Fatal("expected a fully reduced value")
	}
	if got := asInt32(t, res.Value()); got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

// Same expression in partial mode also reduces to the value 20, not an
// error or a residual expression.
func TestEvalConstantFoldingPartial(t *testing.T) {
	e := mul(add(lit32(2), lit32(3)), lit32(4))
	ev := interp.New(interp.Partial)
	res, _, err := ev.Eval(e)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !res.IsValue() {
		t.Fatal("expected partial mode to still fully reduce a closed expression")
	}
	if got := asInt32(t, res.Value()); got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

// Symbolic folding: let y = a + 2*3 in y + 0, with a free, keeps the Let
// (y's initializer never reduces to a value, so it is never substituted),
// but folds 2*3 down to a literal 6 inside it and drops the y+0 identity
// down to a bare reference to y.
func TestEvalSymbolicFolding(t *testing.T) {
	aID := ast.VarID(1)
	yID := ast.VarID(2)
	a := ast.NewVarRef(ast.Pos{}, ast.Int32T, aID, "a")
	y := ast.NewVarRef(ast.Pos{}, ast.Int32T, yID, "y")
	body := ast.NewLet(ast.Pos{}, ast.Int32T, yID, "y", ast.AutoInline, add(a, mul(lit32(2), lit32(3))), add(y, lit32(0)))

	ev := interp.New(interp.Partial)
	res, _, err := ev.Eval(body)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res.IsValue() {
		t.Fatal("expected a residual expression, got a value")
	}
	let, ok := res.Exp().(*ast.Let)
	if !ok {
		t.Fatalf("residual is %T, want *ast.Let", res.Exp())
	}
	bin, ok := let.X.(*ast.BinaryExp)
	if !ok || bin.Op != ast.BAdd {
		t.Fatalf("let's initializer is %#v, want a BAdd binary expression", let.X)
	}
	ref, refOK := bin.X.(*ast.VarRef)
	lit, litOK := bin.Y.(*ast.Lit)
	if !refOK || ref.ID != aID || !litOK || lit.Val != int32(6) {
		t.Fatalf("let's initializer is %#v, want a + 6", let.X)
	}
	yRef, ok := let.Body.(*ast.VarRef)
	if !ok || yRef.ID != yID {
		t.Fatalf("let's body is %#v, want a bare reference to y", let.Body)
	}
}

// Loop unroll: var x := 0; for i in 0..4 do x := x+i; x, in partial mode,
// reduces to the literal 6 and the ref-let wrapper is dropped.
func TestEvalLoopUnroll(t *testing.T) {
	xID := ast.VarID(10)
	iID := ast.VarID(11)
	x := ast.NewVarRef(ast.Pos{}, ast.Int32T, xID, "x")
	i := ast.NewVarRef(ast.Pos{}, ast.Int32T, iID, "i")
	loopBody := ast.NewAssign(ast.Pos{}, x, add(x, i))
	forLoop := ast.NewForExp(ast.Pos{}, iID, "i", lit32(0), lit32(4), loopBody, false)
	prog := ast.NewRefLet(ast.Pos{}, ast.Int32T, xID, "x", lit32(0), ast.NewSeqExp(ast.Pos{}, ast.Int32T, forLoop, x))

	ev := interp.New(interp.Partial)
	res, _, err := ev.Eval(prog)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !res.IsValue() {
		t.Fatalf("expected the bounded loop to fully reduce, got residual %#v", res.Exp())
	}
	if got := asInt32(t, res.Value()); got != 6 {
		t.Fatalf("got %d, want 6 (0+1+2+3)", got)
	}
}

// Unbounded loop: the same program with a 1000-iteration bound exceeds the
// unroll cap and residualizes, keeping x in scope.
func TestEvalUnboundedLoopResidualizes(t *testing.T) {
	xID := ast.VarID(10)
	iID := ast.VarID(11)
	x := ast.NewVarRef(ast.Pos{}, ast.Int32T, xID, "x")
	i := ast.NewVarRef(ast.Pos{}, ast.Int32T, iID, "i")
	loopBody := ast.NewAssign(ast.Pos{}, x, add(x, i))
	forLoop := ast.NewForExp(ast.Pos{}, iID, "i", lit32(0), lit32(1000), loopBody, false)
	prog := ast.NewRefLet(ast.Pos{}, ast.Int32T, xID, "x", lit32(0), ast.NewSeqExp(ast.Pos{}, ast.Int32T, forLoop, x))

	ev := interp.New(interp.Partial)
	res, _, err := ev.Eval(prog)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res.IsValue() {
		t.Fatal("expected the loop to exceed the unroll cap and residualize")
	}
	rl, ok := res.Exp().(*ast.RefLet)
	if !ok {
		t.Fatalf("residual is %T, want *ast.RefLet (x must still be in scope)", res.Exp())
	}
	if rl.ID != xID {
		t.Fatalf("residual RefLet binds variable %d, want %d", rl.ID, xID)
	}
}

// Full-mode evaluation of a free variable is a FreeVariable error, not a
// silent residual.
func TestEvalFullModeFreeVariableErrors(t *testing.T) {
	a := ast.NewVarRef(ast.Pos{}, ast.Int32T, ast.VarID(1), "a")
	ev := interp.New(interp.Full)
	if _, _, err := ev.Eval(a); err == nil {
		t.Fatal("expected an error evaluating a free variable in full mode")
	}
}

// Algebraic identity laws: partial-eval of e+0, 0+e, e*1, 1*e all collapse
// to the same residual as e itself, even when e is free.
func TestEvalAlgebraicIdentities(t *testing.T) {
	a := ast.NewVarRef(ast.Pos{}, ast.Int32T, ast.VarID(1), "a")
	ev := interp.New(interp.Partial)

	base, _, err := ev.Eval(a)
	if err != nil {
		t.Fatalf("Eval(a): %v", err)
	}
	cases := []ast.Exp{
		add(a, lit32(0)),
		add(lit32(0), a),
		mul(a, lit32(1)),
		mul(lit32(1), a),
	}
	for _, c := range cases {
		res, _, err := ev.Eval(c)
		if err != nil {
			t.Fatalf("Eval(%#v): %v", c, err)
		}
		gotRef, ok := res.Exp().(*ast.VarRef)
		if !ok {
			t.Fatalf("residual of %#v is %#v, want a bare VarRef like e itself", c, res.Exp())
		}
		wantRef := base.Exp().(*ast.VarRef)
		if gotRef.ID != wantRef.ID {
			t.Fatalf("identity rewrite of %#v kept variable %d, want %d", c, gotRef.ID, wantRef.ID)
		}
	}
}

// Assignment invalidation: after x := <unknown>, a later reference to x
// residualizes as a free x rather than keeping the prior known value.
func TestEvalAssignmentInvalidation(t *testing.T) {
	xID := ast.VarID(1)
	freeID := ast.VarID(2)
	x := ast.NewVarRef(ast.Pos{}, ast.Int32T, xID, "x")
	free := ast.NewVarRef(ast.Pos{}, ast.Int32T, freeID, "unknown")
	prog := ast.NewRefLet(ast.Pos{}, ast.Int32T, xID, "x", lit32(5),
		ast.NewSeqExp(ast.Pos{}, ast.Int32T, ast.NewAssign(ast.Pos{}, x, free), x))

	ev := interp.New(interp.Partial)
	res, _, err := ev.Eval(prog)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res.IsValue() {
		t.Fatal("expected a residual (x depends on an unknown value)")
	}
	rl, ok := res.Exp().(*ast.RefLet)
	if !ok {
		t.Fatalf("residual is %T, want *ast.RefLet", res.Exp())
	}
	if rl.Init != nil {
		t.Fatalf("x's initializer should be nil after an unknown, unremembered assignment, got %#v", rl.Init)
	}
}
