package interp

import (
	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/value"
)

// arrayWriteOutCap bounds how many non-default entries a remembered array
// value may have before closeRefLet gives up on the write-out
// optimisation and falls back to a full literal initialiser.
const arrayWriteOutCap = 32

// interpretRefLet binds a mutable variable for the extent of Body, then
// closes the binding back up when Body is done with it. If Body fully
// reduces to a value, the RefLet wrapper itself is of no further use (the
// value does not mention the bound variable) and is dropped; otherwise the
// wrapper is rebuilt around whatever Body residualised to, with Init
// re-derived from the variable's final ref-state rather than copied
// verbatim from the original node.
func (ev *Evaluator) interpretRefLet(st *State, x *ast.RefLet) ([]frame, error) {
	initFrames := []frame{{st: st}}
	if x.Init != nil {
		fs, err := ev.interpret(st, x.Init)
		if err != nil {
			return nil, err
		}
		initFrames = fs
	}
	var out []frame
	for _, initFr := range initFrames {
		var initVal value.Value
		implicit := x.Init == nil
		if x.Init != nil {
			if initFr.ev.IsValue() {
				initVal = value.Clone(initFr.ev.Value())
			}
		} else {
			initVal = value.ZeroOf(x.Pos(), x.Type())
		}
		bst := initFr.st
		rs := &refState{name: x.Name, typ: x.Type(), known: initVal != nil, implicit: implicit, value: initVal}
		bst.mutable.Store(x.ID, rs)
		bodyFrames, err := ev.interpret(bst, x.Body)
		if err != nil {
			return nil, err
		}
		for _, bf := range bodyFrames {
			r, _ := bf.st.lookupMutable(x.ID)
			bf.st.mutable.Delete(x.ID)
			if bf.ev.IsValue() {
				out = append(out, frame{st: bf.st, ev: bf.ev})
				continue
			}
			out = append(out, frame{st: bf.st, ev: Residual(closeRefLet(x, r, bf.ev.Exp()))})
		}
	}
	return out, nil
}

// closeRefLet rebuilds x's RefLet node around body, choosing Init from r's
// four closing cases: known-implicit and known-explicit need no further
// explanation; unknown-with-no-memory collapses to the same implicit
// default a fresh declaration would start from; unknown-with-a-remembered
// explicit value keeps that value as the initialiser, unless it is a
// sparse array with few enough non-default entries that writing them out
// as individual statements is cheaper than embedding the whole array.
func closeRefLet(x *ast.RefLet, r *refState, body ast.Exp) ast.Exp {
	if r == nil {
		return ast.NewRefLet(x.Pos(), x.Type(), x.ID, x.Name, x.Init, body)
	}
	switch {
	case r.known && r.implicit:
		return ast.NewRefLet(x.Pos(), x.Type(), x.ID, x.Name, nil, body)
	case r.known && !r.implicit:
		return ast.NewRefLet(x.Pos(), x.Type(), x.ID, x.Name, value.ToExp(r.value), body)
	case !r.known && !r.remembered:
		return ast.NewRefLet(x.Pos(), x.Type(), x.ID, x.Name, nil, body)
	default:
		if arr, ok := r.value.(*value.Array); ok {
			if nd := arr.NonDefault(); len(nd) <= arrayWriteOutCap {
				return writeOutRefLet(x, arr, nd, body)
			}
		}
		return ast.NewRefLet(x.Pos(), x.Type(), x.ID, x.Name, value.ToExp(r.value), body)
	}
}

// writeOutRefLet builds var x (implicit default) in { x[i0] := v0; x[i1]
// := v1; ...; body }, used when only a handful of an array's elements
// differ from its default and embedding the whole array as a literal
// would be wasteful.
func writeOutRefLet(x *ast.RefLet, arr *value.Array, nd []value.NonDefaultIndex, body ast.Exp) ast.Exp {
	root := ast.NewVarRef(x.Pos(), x.Type(), x.ID, x.Name)
	writes := body
	for i := len(nd) - 1; i >= 0; i-- {
		idx := ast.NewLit(x.Pos(), ast.Int32T, int32(nd[i].Index))
		w := ast.NewArrayWrite(x.Pos(), arr.ElemType, root, idx, 0, "", ast.ModeSingleton, value.ToExp(nd[i].Value))
		writes = ast.NewSeqExp(x.Pos(), body.Type(), w, writes)
	}
	return ast.NewRefLet(x.Pos(), x.Type(), x.ID, x.Name, nil, writes)
}
