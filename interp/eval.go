// Package interp implements the expression evaluator: a single traversal
// shared by full evaluation (errors on anything that does not reduce),
// partial evaluation (keeps unreduced subexpressions as residual syntax),
// and non-deterministic evaluation (guesses the truth of conditions it
// cannot decide and enumerates the resulting alternatives). Internally,
// full and partial evaluation run the identical traversal: the only
// difference between them is whether a residual result at the very top is
// handed back to the caller or turned into a free-variable error. NonDet
// additionally forks the traversal at a condition it cannot decide,
// producing one frame per admissible guess rather than one residual.
package interp

import (
	stderrors "errors"

	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/build/fmterr"
	"github.com/wavecore/corelang/ops"
	"github.com/wavecore/corelang/value"
)

// Eval runs ev's traversal over e starting from an empty state and returns
// the single result (Full and Partial modes never fork). Calling Eval in
// NonDet mode is a programmer error; use EvalND instead.
func (ev *Evaluator) Eval(e ast.Exp) (Evald, *State, error) {
	if ev.mode == NonDet {
		return Evald{}, nil, fmterr.InternalErrorf(e.Pos(), "Eval called in non-deterministic mode; use EvalND")
	}
	frames, err := ev.interpret(NewState(), e)
	if err != nil {
		return Evald{}, nil, err
	}
	fr := frames[0]
	if ev.mode == Full && !fr.ev.IsValue() {
		return Evald{}, nil, fmterr.Errorf(e.Pos(), fmterr.FreeVariable, "expression did not fully reduce in full mode")
	}
	return fr.ev, fr.st, nil
}

// NDResult is one explored branch of a non-deterministic evaluation.
type NDResult struct {
	Evald Evald
	Log   []PrintEntry
}

// EvalND runs ev's traversal over e in NonDet mode, returning one NDResult
// per alternative the guesser did not prune, up to ev.maxBranches.
func (ev *Evaluator) EvalND(e ast.Exp) ([]NDResult, error) {
	if ev.mode != NonDet {
		return nil, fmterr.InternalErrorf(e.Pos(), "EvalND called outside non-deterministic mode")
	}
	frames, err := ev.interpret(NewState(), e)
	if err != nil {
		return nil, err
	}
	out := make([]NDResult, 0, len(frames))
	for i, fr := range frames {
		if i >= ev.maxBranches {
			break
		}
		out = append(out, NDResult{Evald: fr.ev, Log: fr.st.Log()})
	}
	return out, nil
}

func one(st *State, ev Evald) []frame { return []frame{{st: st, ev: ev}} }

func allValues(evs []Evald) bool {
	for _, e := range evs {
		if !e.IsValue() {
			return false
		}
	}
	return true
}

// interpret dispatches e to its node-specific handler. Every handler
// returns one frame per live alternative: exactly one in Full/Partial
// mode, possibly several in NonDet mode once a guess forks.
func (ev *Evaluator) interpret(st *State, e ast.Exp) ([]frame, error) {
	switch x := e.(type) {
	case *ast.Lit:
		return ev.interpretLit(st, x)
	case *ast.VarRef:
		return ev.interpretVarRef(st, x)
	case *ast.ArrayLit:
		return ev.interpretArrayLit(st, x)
	case *ast.ArrayRead:
		return ev.interpretArrayRead(st, x)
	case *ast.ArrayWrite:
		return ev.interpretArrayWrite(st, x)
	case *ast.StructLit:
		return ev.interpretStructLit(st, x)
	case *ast.FieldProj:
		return ev.interpretFieldProj(st, x)
	case *ast.UnaryExp:
		return ev.interpretUnary(st, x)
	case *ast.BinaryExp:
		return ev.interpretBinary(st, x)
	case *ast.Let:
		return ev.interpretLet(st, x)
	case *ast.RefLet:
		return ev.interpretRefLet(st, x)
	case *ast.Assign:
		return ev.interpretAssign(st, x)
	case *ast.SeqExp:
		return ev.interpretSeq(st, x)
	case *ast.IfExp:
		return ev.interpretIf(st, x)
	case *ast.ForExp:
		return ev.interpretFor(st, x)
	case *ast.WhileExp:
		return ev.interpretWhile(st, x)
	case *ast.CallExp:
		return ev.interpretCall(st, x)
	case *ast.PrintExp:
		return ev.interpretPrint(st, x)
	case *ast.ErrorExp:
		return nil, fmterr.Errorf(x.Pos(), fmterr.Unclassified, "program error: %s", x.Message)
	case *ast.LUTExp:
		return nil, fmterr.Errorf(x.Pos(), fmterr.NotImplemented, "LUT markers are not implemented by this core")
	default:
		return nil, fmterr.InternalErrorf(e.Pos(), "unhandled expression node %T", e)
	}
}

func (ev *Evaluator) interpretLit(st *State, x *ast.Lit) ([]frame, error) {
	v, err := value.FromLiteral(x.Pos(), x.Type(), x.Val)
	if err != nil {
		return nil, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "%s", err)
	}
	return one(st, FullValue(v)), nil
}

func (ev *Evaluator) interpretVarRef(st *State, x *ast.VarRef) ([]frame, error) {
	if v, ok := st.lookupLet(x.ID); ok {
		return one(st, FullValue(value.WithPos(v, x.Pos()))), nil
	}
	if r, ok := st.lookupMutable(x.ID); ok && r.known {
		return one(st, FullValue(value.WithPos(r.value, x.Pos()))), nil
	}
	return one(st, Residual(x)), nil
}

func (ev *Evaluator) interpretArrayLit(st *State, x *ast.ArrayLit) ([]frame, error) {
	frames, err := ev.interpretSeqExps(st, x.Elts)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, fr := range frames {
		if allValues(fr.evs) {
			vals := make([]value.Value, len(fr.evs))
			for i, e := range fr.evs {
				vals[i] = e.Value()
			}
			elemType := elemTypeOf(x.Type())
			var def value.Value
			switch {
			case len(vals) > 0:
				def = vals[0]
			case elemType != nil:
				def = value.ZeroOf(x.Pos(), elemType)
			default:
				def = value.Unit{P: x.Pos()}
			}
			if elemType == nil && len(vals) > 0 {
				elemType = vals[0].Type()
			}
			arr := value.NewArrayFromList(x.Pos(), elemType, def, vals)
			out = append(out, frame{st: fr.st, ev: FullValue(arr)})
			continue
		}
		out = append(out, frame{st: fr.st, ev: Residual(ast.NewArrayLit(x.Pos(), x.Type(), expsOf(fr.evs)))})
	}
	return out, nil
}

func elemTypeOf(t ast.Type) ast.Type {
	if at, ok := t.(*ast.ArrayType); ok {
		return at.Elem
	}
	return nil
}

func (ev *Evaluator) interpretArrayRead(st *State, x *ast.ArrayRead) ([]frame, error) {
	baseFrames, err := ev.interpret(st, x.Base)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, bf := range baseFrames {
		if x.Mode == ast.ModeSlice {
			if at, ok := x.Base.Type().(*ast.ArrayType); ok && at.HasGroundLength() && x.Len == at.Len {
				if n, isInt := literalInt(x.Index); isInt && n == 0 {
					out = append(out, frame{st: bf.st, ev: bf.ev})
					continue
				}
			}
		}
		if x.Mode == ast.ModeMetaSlice {
			out = append(out, frame{st: bf.st, ev: Residual(ast.NewArrayRead(x.Pos(), x.Type(), bf.ev.Exp(), x.Index, x.Len, x.LenVar, x.Mode))})
			continue
		}
		idxFrames, err := ev.interpret(bf.st, x.Index)
		if err != nil {
			return nil, err
		}
		for _, idf := range idxFrames {
			res, err := readArray(x, bf.ev, idf.ev)
			if err != nil {
				return nil, err
			}
			out = append(out, frame{st: idf.st, ev: res})
		}
	}
	return out, nil
}

func readArray(x *ast.ArrayRead, baseEv, idxEv Evald) (Evald, error) {
	if baseEv.IsValue() && idxEv.IsValue() {
		arr, ok := baseEv.Value().(*value.Array)
		if !ok {
			return Evald{}, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "array read on non-array value %s", baseEv.Value().Kind())
		}
		idx, err := value.AsInt64(idxEv.Value())
		if err != nil {
			return Evald{}, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "%s", err)
		}
		switch x.Mode {
		case ast.ModeSingleton:
			if !arr.InBounds(int(idx)) {
				return Evald{}, fmterr.Errorf(x.Pos(), fmterr.OutOfBounds, "index %d out of bounds for array of length %d", idx, arr.Len)
			}
			return FullValue(value.WithPos(arr.Get(int(idx)), x.Pos())), nil
		case ast.ModeSlice:
			lo, hi := int(idx), int(idx)+x.Len
			if lo < 0 || hi > arr.Len {
				return Evald{}, fmterr.Errorf(x.Pos(), fmterr.OutOfBounds, "slice [%d,%d) out of bounds for array of length %d", lo, hi, arr.Len)
			}
			return FullValue(arr.Slice(lo, hi)), nil
		}
	}
	return Residual(ast.NewArrayRead(x.Pos(), x.Type(), baseEv.Exp(), idxEv.Exp(), x.Len, x.LenVar, x.Mode)), nil
}

func (ev *Evaluator) interpretStructLit(st *State, x *ast.StructLit) ([]frame, error) {
	exps := make([]ast.Exp, len(x.Fields))
	for i, f := range x.Fields {
		exps[i] = f.Val
	}
	frames, err := ev.interpretSeqExps(st, exps)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, fr := range frames {
		if allValues(fr.evs) {
			fieldVals := make(map[string]value.Value, len(fr.evs))
			for i, e := range fr.evs {
				fieldVals[x.Fields[i].Name] = e.Value()
			}
			styp, ok := x.Type().(*ast.StructType)
			if !ok {
				return nil, fmterr.InternalErrorf(x.Pos(), "struct literal typed %s", x.Type())
			}
			v, err := value.NewStruct(x.Pos(), styp, fieldVals)
			if err != nil {
				return nil, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "%s", err)
			}
			out = append(out, frame{st: fr.st, ev: FullValue(v)})
			continue
		}
		fields := make([]ast.FieldLit, len(fr.evs))
		for i, e := range fr.evs {
			fields[i] = ast.FieldLit{Name: x.Fields[i].Name, Val: e.Exp()}
		}
		out = append(out, frame{st: fr.st, ev: Residual(ast.NewStructLit(x.Pos(), x.Type(), fields))})
	}
	return out, nil
}

func (ev *Evaluator) interpretFieldProj(st *State, x *ast.FieldProj) ([]frame, error) {
	frames, err := ev.interpret(st, x.Struct)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, fr := range frames {
		if fr.ev.IsValue() {
			if comp, ok := value.ComponentOf(fr.ev.Value(), x.Field); ok {
				out = append(out, frame{st: fr.st, ev: FullValue(value.WithPos(comp, x.Pos()))})
				continue
			}
			s, ok := fr.ev.Value().(*value.Struct)
			if !ok {
				return nil, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "field projection on non-struct value %s", fr.ev.Value().Kind())
			}
			fv, ok := s.Field(x.Field)
			if !ok {
				return nil, fmterr.InternalErrorf(x.Pos(), "struct %s has no field %q", s.TypeName, x.Field)
			}
			out = append(out, frame{st: fr.st, ev: FullValue(value.WithPos(fv, x.Pos()))})
			continue
		}
		out = append(out, frame{st: fr.st, ev: Residual(ast.NewFieldProj(x.Pos(), x.Type(), fr.ev.Exp(), x.Field))})
	}
	return out, nil
}

func (ev *Evaluator) interpretUnary(st *State, x *ast.UnaryExp) ([]frame, error) {
	if x.Op == ast.ULen {
		if at, ok := x.X.Type().(*ast.ArrayType); ok && at.HasGroundLength() {
			return one(st, FullValue(value.Int32{P: x.Pos(), V: int32(at.Len)})), nil
		}
	}
	frames, err := ev.interpret(st, x.X)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, fr := range frames {
		if fr.ev.IsValue() {
			v, err := ops.Unary(x.Pos(), x.Op, fr.ev.Value())
			if err != nil {
				return nil, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "%s", err)
			}
			out = append(out, frame{st: fr.st, ev: FullValue(v)})
			continue
		}
		out = append(out, frame{st: fr.st, ev: Residual(ast.NewUnaryExp(x.Pos(), x.Type(), x.Op, fr.ev.Exp()))})
	}
	return out, nil
}

func (ev *Evaluator) interpretBinary(st *State, x *ast.BinaryExp) ([]frame, error) {
	xFrames, err := ev.interpret(st, x.X)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, xf := range xFrames {
		yFrames, err := ev.interpret(xf.st, x.Y)
		if err != nil {
			return nil, err
		}
		for _, yf := range yFrames {
			r, err := combineBinary(x, xf.ev, yf.ev)
			if err != nil {
				return nil, err
			}
			out = append(out, frame{st: yf.st, ev: r})
		}
	}
	return out, nil
}

func combineBinary(x *ast.BinaryExp, xe, ye Evald) (Evald, error) {
	if xe.IsValue() && ye.IsValue() {
		v, err := ops.Binary(x.Pos(), x.Op, xe.Value(), ye.Value())
		if err != nil {
			if stderrors.Is(err, ops.ErrDivByZero) {
				return Evald{}, fmterr.Errorf(x.Pos(), fmterr.Unclassified, "%s", err)
			}
			return Evald{}, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "%s", err)
		}
		return FullValue(v), nil
	}
	if id, ok := identity(x.Op, xe, ye); ok {
		return id, nil
	}
	return Residual(ast.NewBinaryExp(x.Pos(), x.Type(), x.Op, xe.Exp(), ye.Exp())), nil
}

// identity recognises the four algebraic identities that must fire even
// when one operand is residual: x+0, 0+y, x*1, 1*y.
func identity(op ast.BinaryOp, xe, ye Evald) (Evald, bool) {
	switch op {
	case ast.BAdd:
		if ye.IsValue() && value.IsZero(ye.Value()) {
			return xe, true
		}
		if xe.IsValue() && value.IsZero(xe.Value()) {
			return ye, true
		}
	case ast.BMul:
		if ye.IsValue() && value.IsOne(ye.Value()) {
			return xe, true
		}
		if xe.IsValue() && value.IsOne(xe.Value()) {
			return ye, true
		}
	}
	return Evald{}, false
}

func (ev *Evaluator) interpretLet(st *State, x *ast.Let) ([]frame, error) {
	if x.Inline == ast.ForceInline {
		return ev.interpret(st, substitute(x.Body, x.ID, x.X))
	}
	xFrames, err := ev.interpret(st, x.X)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, xf := range xFrames {
		if xf.ev.IsValue() {
			xf.st.bindLet(x.ID, value.Clone(xf.ev.Value()))
			bodyFrames, err := ev.interpret(xf.st, x.Body)
			if err != nil {
				return nil, err
			}
			for _, bf := range bodyFrames {
				bf.st.unbindLet(x.ID)
				out = append(out, bf)
			}
			continue
		}
		bodyFrames, err := ev.interpret(xf.st, x.Body)
		if err != nil {
			return nil, err
		}
		for _, bf := range bodyFrames {
			rebuilt := ast.NewLet(x.Pos(), x.Type(), x.ID, x.Name, x.Inline, xf.ev.Exp(), bf.ev.Exp())
			out = append(out, frame{st: bf.st, ev: Residual(rebuilt)})
		}
	}
	return out, nil
}

func (ev *Evaluator) interpretSeq(st *State, x *ast.SeqExp) ([]frame, error) {
	firstFrames, err := ev.interpret(st, x.First)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, ff := range firstFrames {
		secondFrames, err := ev.interpret(ff.st, x.Second)
		if err != nil {
			return nil, err
		}
		for _, sf := range secondFrames {
			if ff.ev.IsValue() {
				out = append(out, frame{st: sf.st, ev: sf.ev})
				continue
			}
			out = append(out, frame{st: sf.st, ev: Residual(ast.NewSeqExp(x.Pos(), x.Type(), ff.ev.Exp(), sf.ev.Exp()))})
		}
	}
	return out, nil
}

func (ev *Evaluator) interpretCall(st *State, x *ast.CallExp) ([]frame, error) {
	frames, err := ev.interpretSeqExps(st, x.Args)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, fr := range frames {
		fr.st.invalidateAll()
		out = append(out, frame{st: fr.st, ev: Residual(ast.NewCallExp(x.Pos(), x.Type(), x.Func, expsOf(fr.evs)))})
	}
	return out, nil
}

func (ev *Evaluator) interpretPrint(st *State, x *ast.PrintExp) ([]frame, error) {
	frames, err := ev.interpretSeqExps(st, x.Args)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, fr := range frames {
		fr.st.appendLog(PrintEntry{Newline: x.Newline, Args: expsOf(fr.evs)})
		if ev.mode == Full {
			if !allValues(fr.evs) {
				return nil, fmterr.Errorf(x.Pos(), fmterr.FreeVariable, "print argument did not reduce to a value in full mode")
			}
			out = append(out, frame{st: fr.st, ev: FullValue(value.Unit{P: x.Pos()})})
			continue
		}
		out = append(out, frame{st: fr.st, ev: Residual(ast.NewPrintExp(x.Pos(), expsOf(fr.evs), x.Newline))})
	}
	return out, nil
}
