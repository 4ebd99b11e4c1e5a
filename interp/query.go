package interp

import "github.com/wavecore/corelang/ast"

// Provable reports whether cond can be shown unconditionally true using
// the same integer-domain narrowing the NonDet evaluator applies to an
// undecided branch condition: true exactly when every admissible guess
// forkCondition returns for cond assigns it the value true.
func Provable(cond ast.Exp) (bool, error) {
	branches, err := forkCondition(NewState(), cond)
	if err != nil {
		return false, err
	}
	for _, b := range branches {
		if !b.truth {
			return false, nil
		}
	}
	return true, nil
}

// Satisfiable reports whether some admissible guess assigns cond the
// value true.
func Satisfiable(cond ast.Exp) (bool, error) {
	branches, err := forkCondition(NewState(), cond)
	if err != nil {
		return false, err
	}
	for _, b := range branches {
		if b.truth {
			return true, nil
		}
	}
	return false, nil
}

// Implies reports whether assuming a holds makes b provable: a's
// guessed integer-domain narrowing is carried into the guess of b before
// checking that every surviving alternative assigns it true. A state
// where a's guess admits no true alternative makes the implication hold
// vacuously.
func Implies(a, b ast.Exp) (bool, error) {
	aBranches, err := forkCondition(NewState(), a)
	if err != nil {
		return false, err
	}
	for _, ab := range aBranches {
		if !ab.truth {
			continue
		}
		bBranches, err := forkCondition(ab.st, b)
		if err != nil {
			return false, err
		}
		for _, bb := range bBranches {
			if !bb.truth {
				return false, nil
			}
		}
	}
	return true, nil
}
