package interp

import "github.com/wavecore/corelang/ast"

// frame is one live alternative of the traversal: a state together with the
// result obtained under that state. In Full and Partial mode, interpreting
// any expression produces exactly one frame (or an error); in NonDet mode,
// a condition the evaluator cannot decide forks the traversal into several
// independent frames, one per admissible guess.
type frame struct {
	st *State
	ev Evald
}

// seqFrame accumulates the results of interpreting a list of expressions
// left to right under one thread of the fork: evs holds one Evald per
// expression interpreted so far, in order.
type seqFrame struct {
	st  *State
	evs []Evald
}

// interpretSeqExps interprets es left to right, forking the cartesian
// product of every non-deterministic alternative along the way.
func (ev *Evaluator) interpretSeqExps(st *State, es []ast.Exp) ([]seqFrame, error) {
	frames := []seqFrame{{st: st}}
	for _, e := range es {
		var next []seqFrame
		for _, fr := range frames {
			subFrames, err := ev.interpret(fr.st, e)
			if err != nil {
				return nil, err
			}
			for _, sf := range subFrames {
				evs := make([]Evald, len(fr.evs), len(fr.evs)+1)
				copy(evs, fr.evs)
				evs = append(evs, sf.ev)
				next = append(next, seqFrame{st: sf.st, evs: evs})
			}
		}
		frames = next
	}
	return frames, nil
}

// expsOf converts a slice of Evald results into the AST expressions they
// denote, for rebuilding a residual node.
func expsOf(evs []Evald) []ast.Exp {
	out := make([]ast.Exp, len(evs))
	for i, e := range evs {
		out[i] = e.Exp()
	}
	return out
}
