package tasks

import "github.com/wavecore/corelang/ast"

// barrierFuncs tracks the names of comp-level functions already known to
// contain a barrier, discovered while descending FuncLet declarations in
// source order. A function that calls another declared later in the same
// scope is not resolved by this forward-only pass.
type barrierFuncs map[string]bool

// containsBarrier reports whether c contains a Standalone node, treating a
// Map or Call on a function named in bf as a barrier too, per the rule
// that a barrier-function call is itself a barrier.
func containsBarrier(c ast.Comp, bf barrierFuncs) bool {
	switch x := c.(type) {
	case nil:
		return false
	case *ast.Standalone:
		return true
	case *ast.BindMany:
		if containsBarrier(x.Head, bf) {
			return true
		}
		for _, b := range x.Rest {
			if containsBarrier(b.C, bf) {
				return true
			}
		}
		return false
	case *ast.CSeq:
		for _, p := range x.Parts {
			if containsBarrier(p, bf) {
				return true
			}
		}
		return false
	case *ast.Par:
		return containsBarrier(x.A, bf) || containsBarrier(x.B, bf)
	case *ast.ExprLet:
		return containsBarrier(x.Body, bf)
	case *ast.RefLetC:
		return containsBarrier(x.Body, bf)
	case *ast.FuncLet:
		inner := false
		if x.IsComp {
			inner = containsBarrier(x.CompBody, bf)
		}
		bf[x.Name] = inner
		return containsBarrier(x.Body, bf)
	case *ast.StructTypeDecl:
		return containsBarrier(x.Body, bf)
	case *ast.CallC:
		return bf[x.Func]
	case *ast.Branch:
		return containsBarrier(x.Then, bf) || containsBarrier(x.Else, bf)
	case *ast.Loop:
		return containsBarrier(x.Body, bf)
	case *ast.Repeat:
		return containsBarrier(x.Body, bf)
	case *ast.VectComp:
		return containsBarrier(x.Body, bf)
	case *ast.MapComp:
		return bf[x.Fn]
	case *ast.FilterComp:
		return false
	case *ast.CompRef, *ast.Emit, *ast.Emits, *ast.ReturnC, *ast.Take, *ast.Takes,
		*ast.ReadSrc, *ast.WriteSnk, *ast.ReadInternal, *ast.WriteInternal, *ast.Mitigate:
		return false
	default:
		return false
	}
}
