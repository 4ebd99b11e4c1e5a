package interp

import (
	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/build/fmterr"
	"github.com/wavecore/corelang/value"
)

func (ev *Evaluator) interpretFor(st *State, x *ast.ForExp) ([]frame, error) {
	startFrames, err := ev.interpret(st, x.Start)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, sf := range startFrames {
		countFrames, err := ev.interpret(sf.st, x.Count)
		if err != nil {
			return nil, err
		}
		for _, cf := range countFrames {
			fr, err := ev.runFor(x, cf.st, sf.ev, cf.ev)
			if err != nil {
				return nil, err
			}
			out = append(out, fr)
		}
	}
	return out, nil
}

// runFor attempts to unroll a counted loop whose bounds are both known,
// up to ev.unrollCap iterations, by repeatedly binding x.Var and
// interpreting Body against a running state. Any iteration that forks
// (NonDet) or fails to fully reduce aborts the unroll: state rolls back to
// the snapshot taken before the first iteration, and the loop is
// residualised with every mutable variable invalidated, since the number
// of iterations actually taken is no longer statically known.
func (ev *Evaluator) runFor(x *ast.ForExp, st *State, startEv, countEv Evald) (frame, error) {
	residual := ast.NewForExp(x.Pos(), x.Var, x.VarName, startEv.Exp(), countEv.Exp(), x.Body, x.UnrollHint)
	if !startEv.IsValue() || !countEv.IsValue() {
		return ev.residualizeFor(st, residual)
	}
	start, err := value.AsInt64(startEv.Value())
	if err != nil {
		return frame{}, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "%s", err)
	}
	count, err := value.AsInt64(countEv.Value())
	if err != nil {
		return frame{}, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "%s", err)
	}
	if count < 0 {
		return frame{}, fmterr.Errorf(x.Pos(), fmterr.Unclassified, "for-loop count %d is negative", count)
	}
	if count > int64(ev.unrollCap) {
		return ev.residualizeFor(st, residual)
	}
	snapshot := st.clone()
	cur := st
	for i := int64(0); i < count; i++ {
		iv, err := loopIndexValue(x.Pos(), x.Start.Type(), start+i)
		if err != nil {
			return frame{}, err
		}
		cur.bindLet(x.Var, iv)
		frames, err := ev.interpret(cur, x.Body)
		if err != nil {
			return frame{}, err
		}
		if len(frames) != 1 || !frames[0].ev.IsValue() {
			return ev.residualizeFor(snapshot, residual)
		}
		cur = frames[0].st
		cur.unbindLet(x.Var)
	}
	return frame{st: cur, ev: FullValue(value.Unit{P: x.Pos()})}, nil
}

func (ev *Evaluator) residualizeFor(st *State, residual ast.Exp) (frame, error) {
	st.invalidateAll()
	return frame{st: st, ev: Residual(residual)}, nil
}

func loopIndexValue(pos ast.Pos, typ ast.Type, n int64) (value.Value, error) {
	switch typ.Kind() {
	case ast.KindInt8:
		return value.Int8{P: pos, V: int8(n)}, nil
	case ast.KindInt16:
		return value.Int16{P: pos, V: int16(n)}, nil
	case ast.KindInt32:
		return value.Int32{P: pos, V: int32(n)}, nil
	case ast.KindInt64:
		return value.Int64{P: pos, V: n}, nil
	case ast.KindUint8:
		return value.Uint8{P: pos, V: uint8(n)}, nil
	case ast.KindUint16:
		return value.Uint16{P: pos, V: uint16(n)}, nil
	case ast.KindUint32:
		return value.Uint32{P: pos, V: uint32(n)}, nil
	case ast.KindUint64:
		return value.Uint64{P: pos, V: uint64(n)}, nil
	default:
		return nil, fmterr.InternalErrorf(pos, "for-loop index type %s is not an integer", typ)
	}
}

// interpretWhile attempts the same bounded unrolling as runFor, stepping
// the loop until Cond decides false, until an iteration fails to fully
// reduce, or until ev.unrollCap steps have run without the loop deciding
// to stop, at which point it gives up and residualises.
func (ev *Evaluator) interpretWhile(st *State, x *ast.WhileExp) ([]frame, error) {
	snapshot := st.clone()
	cur := st
	for i := 0; i < ev.unrollCap; i++ {
		condFrames, err := ev.interpret(cur, x.Cond)
		if err != nil {
			return nil, err
		}
		if len(condFrames) != 1 || !condFrames[0].ev.IsValue() {
			return ev.residualizeWhileFrames(snapshot, x)
		}
		b, err := value.AsBool(condFrames[0].ev.Value())
		if err != nil {
			return nil, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "%s", err)
		}
		if !b {
			return []frame{{st: condFrames[0].st, ev: FullValue(value.Unit{P: x.Pos()})}}, nil
		}
		bodyFrames, err := ev.interpret(condFrames[0].st, x.Body)
		if err != nil {
			return nil, err
		}
		if len(bodyFrames) != 1 || !bodyFrames[0].ev.IsValue() {
			return ev.residualizeWhileFrames(snapshot, x)
		}
		cur = bodyFrames[0].st
	}
	return ev.residualizeWhileFrames(snapshot, x)
}

func (ev *Evaluator) residualizeWhileFrames(snapshot *State, x *ast.WhileExp) ([]frame, error) {
	snapshot.invalidateAll()
	return []frame{{st: snapshot, ev: Residual(ast.NewWhileExp(x.Pos(), x.Cond, x.Body))}}, nil
}
