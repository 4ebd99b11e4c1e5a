package interp

import (
	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/build/fmterr"
	"github.com/wavecore/corelang/value"
)

// pathStep is one link of an assignment destination path: either a field
// projection or an array index/slice, carrying enough of the original
// node (Pos, Type, Len, LenVar, Mode) to rebuild it verbatim if the
// assignment cannot be resolved statically.
type pathStep struct {
	isField bool
	field   string
	idx     Evald
	length  int
	lenVar  string
	mode    ast.IndexMode
	pos     ast.Pos
	typ     ast.Type
}

// resolvedDest is an assignment destination decomposed into the mutable
// root variable it is rooted at, plus the path of field/index selectors
// applied to reach the storage actually being overwritten.
type resolvedDest struct {
	root     ast.VarID
	rootName string
	rootTyp  ast.Type
	rootPos  ast.Pos
	steps    []pathStep
}

// interpretDest walks a lvalue expression (VarRef, or a FieldProj/ArrayRead
// chain rooted at one) to a resolvedDest, interpreting any array indices
// along the way. Dest paths do not fork: an index expression used as part
// of an assignment target is evaluated deterministically, taking only the
// first alternative NonDet guessing would otherwise offer.
func (ev *Evaluator) interpretDest(st *State, e ast.Exp) (*State, resolvedDest, error) {
	switch x := e.(type) {
	case *ast.VarRef:
		return st, resolvedDest{root: x.ID, rootName: x.Name, rootTyp: x.Type(), rootPos: x.Pos()}, nil
	case *ast.FieldProj:
		nst, rd, err := ev.interpretDest(st, x.Struct)
		if err != nil {
			return st, resolvedDest{}, err
		}
		rd.steps = append(rd.steps, pathStep{isField: true, field: x.Field, pos: x.Pos(), typ: x.Type()})
		return nst, rd, nil
	case *ast.ArrayRead:
		nst, rd, err := ev.interpretDest(st, x.Base)
		if err != nil {
			return st, resolvedDest{}, err
		}
		idxFrames, err := ev.interpret(nst, x.Index)
		if err != nil {
			return st, resolvedDest{}, err
		}
		idf := idxFrames[0]
		rd.steps = append(rd.steps, pathStep{idx: idf.ev, length: x.Len, lenVar: x.LenVar, mode: x.Mode, pos: x.Pos(), typ: x.Type()})
		return idf.st, rd, nil
	default:
		return st, resolvedDest{}, fmterr.InternalErrorf(e.Pos(), "invalid assignment target %T", e)
	}
}

func allStepsStatic(steps []pathStep) bool {
	for _, s := range steps {
		if !s.isField && !s.idx.IsValue() {
			return false
		}
	}
	return true
}

// writeAtPath returns a new root value with rhs written at the location
// steps addresses, or false if the path does not resolve against root
// (e.g. an out-of-bounds index, or a re/im component, which is not
// independently assignable).
func writeAtPath(root value.Value, steps []pathStep, rhs value.Value) (value.Value, bool) {
	if len(steps) == 0 {
		return rhs, true
	}
	step := steps[0]
	if step.isField {
		s, ok := root.(*value.Struct)
		if !ok {
			return nil, false
		}
		cur, ok := s.Field(step.field)
		if !ok {
			return nil, false
		}
		nv, ok := writeAtPath(cur, steps[1:], rhs)
		if !ok {
			return nil, false
		}
		cp := s.Clone()
		cp.SetField(step.field, nv)
		return cp, true
	}
	arr, ok := root.(*value.Array)
	if !ok {
		return nil, false
	}
	idx, err := value.AsInt64(step.idx.Value())
	if err != nil {
		return nil, false
	}
	switch step.mode {
	case ast.ModeSingleton:
		if !arr.InBounds(int(idx)) {
			return nil, false
		}
		cur := arr.Get(int(idx))
		nv, ok := writeAtPath(cur, steps[1:], rhs)
		if !ok {
			return nil, false
		}
		cp := arr.Clone()
		cp.Set(int(idx), nv)
		return cp, true
	case ast.ModeSlice:
		if len(steps) > 1 {
			return nil, false
		}
		lo, hi := int(idx), int(idx)+step.length
		if lo < 0 || hi > arr.Len {
			return nil, false
		}
		src, ok := rhs.(*value.Array)
		if !ok || src.Len != hi-lo {
			return nil, false
		}
		cp := arr.Clone()
		for i := 0; i < src.Len; i++ {
			cp.Set(lo+i, src.Get(i))
		}
		return cp, true
	default:
		return nil, false
	}
}

func rebuildDestExp(rd resolvedDest) ast.Exp {
	e := ast.Exp(ast.NewVarRef(rd.rootPos, rd.rootTyp, rd.root, rd.rootName))
	for _, s := range rd.steps {
		if s.isField {
			e = ast.NewFieldProj(s.pos, s.typ, e, s.field)
		} else {
			e = ast.NewArrayRead(s.pos, s.typ, e, s.idx.Exp(), s.length, s.lenVar, s.mode)
		}
	}
	return e
}

func (ev *Evaluator) interpretAssign(st *State, x *ast.Assign) ([]frame, error) {
	dstSt, rd, err := ev.interpretDest(st, x.Dest)
	if err != nil {
		return nil, err
	}
	valFrames, err := ev.interpret(dstSt, x.X)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, vf := range valFrames {
		out = append(out, commitAssign(x.Pos(), vf.st, rd, vf.ev))
	}
	return out, nil
}

// commitAssign applies rhs to rd's addressed storage when both the path
// and the value are statically known, updating the root ref-state's known
// value in place. A simple (whole-variable) destination that does not
// reduce discards the prior value outright; a complex (partial-overwrite)
// destination that cannot be resolved remembers it instead, since code
// generation can still seed storage from the last known explicit value.
func commitAssign(pos ast.Pos, st *State, rd resolvedDest, rhs Evald) frame {
	r, ok := st.lookupMutable(rd.root)
	if ok {
		if len(rd.steps) == 0 {
			if rhs.IsValue() {
				r.value = value.Clone(rhs.Value())
				r.known = true
				r.implicit = false
				r.remembered = false
				st.touchStats(rd.root, r.value)
				return frame{st: st, ev: FullValue(value.Unit{P: pos})}
			}
			r.invalidateDiscard()
		} else {
			if r.known && rhs.IsValue() && allStepsStatic(rd.steps) {
				if nv, ok := writeAtPath(r.value, rd.steps, rhs.Value()); ok {
					r.value = nv
					r.implicit = false
					st.touchStats(rd.root, r.value)
					return frame{st: st, ev: FullValue(value.Unit{P: pos})}
				}
			}
			r.invalidateRemember()
		}
	}
	return frame{st: st, ev: Residual(ast.NewAssign(pos, rebuildDestExp(rd), rhs.Exp()))}
}

func (ev *Evaluator) interpretArrayWrite(st *State, x *ast.ArrayWrite) ([]frame, error) {
	dstSt, rd, err := ev.interpretDest(st, x.Base)
	if err != nil {
		return nil, err
	}
	idxFrames, err := ev.interpret(dstSt, x.Index)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, idf := range idxFrames {
		valFrames, err := ev.interpret(idf.st, x.Value)
		if err != nil {
			return nil, err
		}
		for _, vf := range valFrames {
			out = append(out, commitArrayWrite(x, vf.st, rd, idf.ev, vf.ev))
		}
	}
	return out, nil
}

// commitArrayWrite is commitAssign's counterpart for the dedicated
// ArrayWrite node: kept separate so a residual result is rebuilt as
// ArrayWrite rather than Assign(ArrayRead(...), v), which the code
// generator must not see.
func commitArrayWrite(x *ast.ArrayWrite, st *State, rd resolvedDest, idxEv, rhs Evald) frame {
	r, ok := st.lookupMutable(rd.root)
	if ok {
		fullSteps := append(append([]pathStep{}, rd.steps...), pathStep{idx: idxEv, length: x.Len, lenVar: x.LenVar, mode: x.Mode, pos: x.Pos(), typ: x.Type()})
		if r.known && allStepsStatic(rd.steps) && idxEv.IsValue() && rhs.IsValue() {
			if nv, ok := writeAtPath(r.value, fullSteps, rhs.Value()); ok {
				r.value = nv
				r.implicit = false
				st.touchStats(rd.root, r.value)
				return frame{st: st, ev: FullValue(value.Unit{P: x.Pos()})}
			}
		}
		r.invalidateRemember()
	}
	base := rebuildDestExp(rd)
	return frame{st: st, ev: Residual(ast.NewArrayWrite(x.Pos(), x.Type(), base, idxEv.Exp(), x.Len, x.LenVar, x.Mode, rhs.Exp()))}
}
