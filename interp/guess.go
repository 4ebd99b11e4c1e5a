package interp

import (
	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/internal/canonical"
)

// boolBranch is one non-deterministic alternative produced by guessing the
// truth of a condition: a state with the assumption recorded, and which way
// it went.
type boolBranch struct {
	st    *State
	truth bool
}

// forkCondition produces the admissible alternatives for assuming cond,
// a residual boolean expression the evaluator could not decide. If the
// guess store already has an assumption on record for this exact fact (up
// to canonical form), that one alternative is returned rather than forking
// again. When cond is an integer comparison against a known literal, each
// alternative also narrows that left-hand side's guessed domain, and an
// alternative whose resulting domain is empty is dropped rather than
// returned, pruning impossible branches instead of exploring them.
func forkCondition(st *State, cond ast.Exp) ([]boolBranch, error) {
	key := canonical.Key(cond)
	if truth, ok := st.bools.Load(key); ok {
		return []boolBranch{{st: st, truth: truth}}, nil
	}
	domainKey, lit, op, isIntCompare := intCompareKey(cond)

	var out []boolBranch
	for _, truth := range []bool{true, false} {
		nst := st.clone()
		nst.bools.Store(key, truth)
		if isIntCompare {
			d, ok := nst.ints.Load(domainKey)
			if !ok {
				d = &intDomain{}
			}
			nd := narrowDomain(d, op, truth, lit)
			if nd.empty() {
				continue
			}
			nst.ints.Store(domainKey, nd)
		}
		out = append(out, boolBranch{st: nst, truth: truth})
	}
	return out, nil
}

// intCompareKey recognises cond as "lhs op literal" (in either operand
// order, normalising back to "lhs op literal" form) over one of the six
// comparison operators. lhs is identified by its canonical key so that two
// syntactically different but algebraically identical left-hand sides
// share one guessed domain.
func intCompareKey(cond ast.Exp) (lhsKey string, lit int64, op ast.BinaryOp, ok bool) {
	be, isBin := cond.(*ast.BinaryExp)
	if !isBin {
		return "", 0, 0, false
	}
	switch be.Op {
	case ast.BEq, ast.BNeq, ast.BLt, ast.BLe, ast.BGt, ast.BGe:
	default:
		return "", 0, 0, false
	}
	if n, isLit := literalInt(be.Y); isLit {
		return canonical.Key(be.X), n, be.Op, true
	}
	if n, isLit := literalInt(be.X); isLit {
		return canonical.Key(be.Y), n, flipCompare(be.Op), true
	}
	return "", 0, 0, false
}

// flipCompare returns the operator that holds of (y, x) exactly when op
// holds of (x, y): used when the literal operand of a comparison is on the
// left, so the domain is always tracked as "lhs op literal".
func flipCompare(op ast.BinaryOp) ast.BinaryOp {
	switch op {
	case ast.BLt:
		return ast.BGt
	case ast.BLe:
		return ast.BGe
	case ast.BGt:
		return ast.BLt
	case ast.BGe:
		return ast.BLe
	default:
		return op
	}
}

func literalInt(e ast.Exp) (int64, bool) {
	lit, ok := e.(*ast.Lit)
	if !ok {
		return 0, false
	}
	switch v := lit.Val.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

// narrowDomain returns a clone of d narrowed by assuming "lhs op literal"
// has truth value truth.
func narrowDomain(d *intDomain, op ast.BinaryOp, truth bool, lit int64) *intDomain {
	nd := d.clone()
	switch {
	case (op == ast.BEq && truth) || (op == ast.BNeq && !truth):
		if !nd.hasLower || lit > nd.lower {
			nd.hasLower, nd.lower = true, lit
		}
		if !nd.hasUpper || lit < nd.upper {
			nd.hasUpper, nd.upper = true, lit
		}
	case (op == ast.BNeq && truth) || (op == ast.BEq && !truth):
		if nd.holes == nil {
			nd.holes = make(map[int64]bool)
		}
		nd.holes[lit] = true
	case (op == ast.BLt && truth) || (op == ast.BGe && !truth):
		if !nd.hasUpper || lit-1 < nd.upper {
			nd.hasUpper, nd.upper = true, lit-1
		}
	case (op == ast.BLt && !truth) || (op == ast.BGe && truth):
		if !nd.hasLower || lit > nd.lower {
			nd.hasLower, nd.lower = true, lit
		}
	case (op == ast.BLe && truth) || (op == ast.BGt && !truth):
		if !nd.hasUpper || lit < nd.upper {
			nd.hasUpper, nd.upper = true, lit
		}
	case (op == ast.BLe && !truth) || (op == ast.BGt && truth):
		if !nd.hasLower || lit+1 > nd.lower {
			nd.hasLower, nd.lower = true, lit + 1
		}
	}
	return nd
}
