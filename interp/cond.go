package interp

import (
	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/build/fmterr"
	"github.com/wavecore/corelang/value"
)

// interpretIf evaluates Cond; when it decides, only the taken branch is
// interpreted. In NonDet mode, an undecided Cond forks into its
// admissible guesses via forkCondition rather than residualising. In
// Full/Partial mode, an undecided Cond is resolved by interpreting both
// branches against independent snapshots and residualising the whole
// conditional, conservatively invalidating the mutable state either
// branch might have touched.
func (ev *Evaluator) interpretIf(st *State, x *ast.IfExp) ([]frame, error) {
	condFrames, err := ev.interpret(st, x.Cond)
	if err != nil {
		return nil, err
	}
	var out []frame
	for _, cf := range condFrames {
		if cf.ev.IsValue() {
			b, err := value.AsBool(cf.ev.Value())
			if err != nil {
				return nil, fmterr.Errorf(x.Pos(), fmterr.TypeMismatch, "%s", err)
			}
			bf, err := ev.takeBranch(cf.st, x, b)
			if err != nil {
				return nil, err
			}
			out = append(out, bf...)
			continue
		}
		if ev.mode == NonDet {
			branches, err := forkCondition(cf.st, cf.ev.Exp())
			if err != nil {
				return nil, err
			}
			for _, b := range branches {
				bf, err := ev.takeBranch(b.st, x, b.truth)
				if err != nil {
					return nil, err
				}
				out = append(out, bf...)
			}
			continue
		}
		fr, err := ev.residualizeIf(cf.st, x, cf.ev.Exp())
		if err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, nil
}

func (ev *Evaluator) takeBranch(st *State, x *ast.IfExp, truth bool) ([]frame, error) {
	branch := x.Then
	if !truth {
		branch = x.Else
	}
	if branch == nil {
		return []frame{{st: st, ev: FullValue(value.Unit{P: x.Pos()})}}, nil
	}
	return ev.interpret(st, branch)
}

func (ev *Evaluator) residualizeIf(st *State, x *ast.IfExp, condExp ast.Exp) (frame, error) {
	thenFrames, err := ev.interpret(st.clone(), x.Then)
	if err != nil {
		return frame{}, err
	}
	var elseExp ast.Exp
	if x.Else != nil {
		elseFrames, err := ev.interpret(st.clone(), x.Else)
		if err != nil {
			return frame{}, err
		}
		elseExp = elseFrames[0].ev.Exp()
	}
	merged := st.clone()
	merged.invalidateAll()
	return frame{st: merged, ev: Residual(ast.NewIfExp(x.Pos(), x.Type(), condExp, thenFrames[0].ev.Exp(), elseExp))}, nil
}
