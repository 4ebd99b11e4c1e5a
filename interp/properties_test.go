package interp_test

import (
	"testing"

	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/interp"
	"github.com/wavecore/corelang/value"
)

// Value round-trip: for every scalar kind, full-evaluating value.ToExp(v)
// reproduces v exactly, ignoring position.
func TestValueRoundTrip(t *testing.T) {
	vals := []value.Value{
		value.Bool{V: true},
		value.Bit{V: false},
		value.Str{V: "hi"},
		value.Double{V: -3.5},
		value.Int8{V: -12},
		value.Int16{V: 1234},
		value.Int32{V: -70000},
		value.Int64{V: 1 << 40},
		value.Uint8{V: 250},
		value.Uint32{V: 4000000000},
		value.Complex32{Re: 3, Im: -4},
	}
	ev := interp.New(interp.Full)
	for _, v := range vals {
		res, _, err := ev.Eval(value.ToExp(v))
		if err != nil {
			t.Fatalf("Eval(ToExp(%s)): %v", v, err)
		}
		if !res.IsValue() {
			t.Fatalf("ToExp(%s) did not fully reduce", v)
		}
		if !value.Equal(res.Value(), v) {
			t.Errorf("round-trip of %s got %s", v, res.Value())
		}
	}
}

// Evaluator soundness: a closed expression evaluated in full mode agrees
// with the same expression evaluated in partial mode (which must also
// fully reduce it, since it is closed).
func TestEvaluatorSoundnessFullAgreesWithPartial(t *testing.T) {
	e := mul(add(lit32(4), lit32(5)), lit32(2))

	full := interp.New(interp.Full)
	fres, _, err := full.Eval(e)
	if err != nil {
		t.Fatalf("full Eval: %v", err)
	}

	partial := interp.New(interp.Partial)
	pres, _, err := partial.Eval(e)
	if err != nil {
		t.Fatalf("partial Eval: %v", err)
	}
	if !pres.IsValue() {
		t.Fatalf("closed expression did not reduce in partial mode: %#v", pres.Exp())
	}
	if !value.Equal(fres.Value(), pres.Value()) {
		t.Fatalf("full mode gave %s, partial mode gave %s", fres.Value(), pres.Value())
	}
}

// Soundness on a free expression: partial mode's residual, once the free
// variable is substituted with a concrete value and re-evaluated in full
// mode, must equal the value full mode would have produced had it known
// the variable all along.
func TestEvaluatorSoundnessResidualAgreesWhenSubstituted(t *testing.T) {
	aID := ast.VarID(1)
	a := ast.NewVarRef(ast.Pos{}, ast.Int32T, aID, "a")
	e := add(mul(a, lit32(2)), lit32(1)) // a*2 + 1

	partial := interp.New(interp.Partial)
	pres, _, err := partial.Eval(e)
	if err != nil {
		t.Fatalf("partial Eval: %v", err)
	}
	if pres.IsValue() {
		t.Fatal("expected a residual for a free variable")
	}

	subst := substituteVarRef(t, pres.Exp(), aID, lit32(5))
	full := interp.New(interp.Full)
	fres, _, err := full.Eval(subst)
	if err != nil {
		t.Fatalf("full Eval of substituted residual: %v", err)
	}
	if got := asInt32(t, fres.Value()); got != 11 {
		t.Fatalf("got %d, want 11 (5*2+1)", got)
	}
}

// substituteVarRef performs a syntactic variable-for-literal substitution
// over the small subset of expression shapes this test produces.
func substituteVarRef(t *testing.T, e ast.Exp, id ast.VarID, repl ast.Exp) ast.Exp {
	t.Helper()
	switch x := e.(type) {
	case *ast.VarRef:
		if x.ID == id {
			return repl
		}
		return x
	case *ast.BinaryExp:
		return ast.NewBinaryExp(x.Pos(), x.Type(), x.Op, substituteVarRef(t, x.X, id, repl), substituteVarRef(t, x.Y, id, repl))
	case *ast.Lit:
		return x
	default:
		t.Fatalf("substituteVarRef: unsupported expression shape %T", e)
		return nil
	}
}

// Short-circuit observable ordering: print(a); print(b) logs a strictly
// before b even when neither reduces to a value.
func TestShortCircuitObservableOrdering(t *testing.T) {
	a := ast.NewVarRef(ast.Pos{}, ast.Int32T, ast.VarID(1), "a")
	b := ast.NewVarRef(ast.Pos{}, ast.Int32T, ast.VarID(2), "b")
	printA := ast.NewPrintExp(ast.Pos{}, []ast.Exp{a}, false)
	printB := ast.NewPrintExp(ast.Pos{}, []ast.Exp{b}, false)
	prog := ast.NewSeqExp(ast.Pos{}, ast.UnitT, printA, printB)

	ev := interp.New(interp.Partial)
	_, st, err := ev.Eval(prog)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	log := st.Log()
	if len(log) != 2 {
		t.Fatalf("got %d log entries, want 2", len(log))
	}
	firstRef, ok := log[0].Args[0].(*ast.VarRef)
	if !ok || firstRef.ID != ast.VarID(1) {
		t.Fatalf("first log entry is %#v, want a reference to a", log[0].Args[0])
	}
	secondRef, ok := log[1].Args[0].(*ast.VarRef)
	if !ok || secondRef.ID != ast.VarID(2) {
		t.Fatalf("second log entry is %#v, want a reference to b", log[1].Args[0])
	}
}

// SortedStats must report every touched variable, in ascending id order,
// regardless of the order the underlying map happens to range over.
func TestSortedStats(t *testing.T) {
	xID, yID, zID := ast.VarID(30), ast.VarID(10), ast.VarID(20)
	x := ast.NewVarRef(ast.Pos{}, ast.Int32T, xID, "x")
	y := ast.NewVarRef(ast.Pos{}, ast.Int32T, yID, "y")
	z := ast.NewVarRef(ast.Pos{}, ast.Int32T, zID, "z")
	prog := ast.NewLet(ast.Pos{}, ast.Int32T, xID, "x", ast.AutoInline, lit32(1),
		ast.NewLet(ast.Pos{}, ast.Int32T, yID, "y", ast.AutoInline, lit32(2),
			ast.NewLet(ast.Pos{}, ast.Int32T, zID, "z", ast.AutoInline, lit32(3),
				add(add(x, y), z))))

	ev := interp.New(interp.Full)
	_, st, err := ev.Eval(prog)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	stats := interp.SortedStats(st)
	if len(stats) != 3 {
		t.Fatalf("got %d stats entries, want 3", len(stats))
	}
	for i := 1; i < len(stats); i++ {
		if stats[i-1].ID >= stats[i].ID {
			t.Fatalf("stats not in ascending id order: %v", stats)
		}
	}
}
