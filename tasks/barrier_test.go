package tasks

import (
	"testing"

	"github.com/wavecore/corelang/ast"
)

func emit(v int32) *ast.Emit {
	return &ast.Emit{X: ast.NewLit(ast.Pos{}, ast.Int32T, v)}
}

func standalone(c ast.Comp) *ast.Standalone {
	return &ast.Standalone{X: c}
}

func TestContainsBarrier(t *testing.T) {
	bf := barrierFuncs{}
	if containsBarrier(emit(1), bf) {
		t.Fatal("a bare Emit must not be a barrier")
	}
	if !containsBarrier(standalone(emit(1)), bf) {
		t.Fatal("Standalone must always be a barrier")
	}
	if !containsBarrier(&ast.CSeq{Parts: []ast.Comp{emit(1), standalone(emit(2))}}, bf) {
		t.Fatal("a barrier nested in a CSeq must be detected")
	}
}

func TestContainsBarrierPropagatesThroughCall(t *testing.T) {
	bf := barrierFuncs{}
	funcLet := &ast.FuncLet{
		Name:     "cca",
		IsComp:   true,
		CompBody: standalone(emit(1)),
		Body:     &ast.CallC{Func: "cca"},
	}
	// Simulate the descent a FuncLet causes: first resolve whether its own
	// body is a barrier, then register the name before checking callers.
	bf["cca"] = containsBarrier(funcLet.CompBody, bf)
	if !containsBarrier(funcLet.Body, bf) {
		t.Fatal("a call to a barrier-function must itself be a barrier")
	}
}

func TestContainsBarrierMapVsFilter(t *testing.T) {
	bf := barrierFuncs{"barrierFn": true, "pureFn": false}
	if !containsBarrier(&ast.MapComp{Fn: "barrierFn"}, bf) {
		t.Fatal("Map over a barrier-function must be a barrier")
	}
	if containsBarrier(&ast.MapComp{Fn: "pureFn"}, bf) {
		t.Fatal("Map over a non-barrier function must not be a barrier")
	}
	if containsBarrier(&ast.FilterComp{Fn: "barrierFn"}, bf) {
		t.Fatal("Filter is stateless and must never be treated as a barrier")
	}
}
