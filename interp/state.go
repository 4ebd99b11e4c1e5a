package interp

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/internal/ordered"
	"github.com/wavecore/corelang/value"
)

// refState is the mutable-scope entry for one ref-let-bound variable: it is
// either a known value (explicit, from an assignment or initialiser the
// evaluator actually saw, or implicit, from the type's default) or unknown
// (possibly still remembering the last known value, needed when only part
// of the variable — one array element, one field — was overwritten by an
// assignment whose full path the evaluator could not statically resolve).
type refState struct {
	name    string
	typ     ast.Type
	known   bool
	implicit bool
	// value holds the current value when known, or the last remembered
	// value when unknown and remembered is true.
	value      value.Value
	remembered bool
}

func (r *refState) clone() *refState {
	cp := *r
	if cp.value != nil {
		cp.value = value.Clone(cp.value)
	}
	return &cp
}

// invalidateDiscard marks r unknown because of a simple (whole-variable)
// assignment whose right-hand side did not reduce: the prior value is of no
// further use to code generation, so it is discarded outright rather than
// remembered.
func (r *refState) invalidateDiscard() {
	r.known = false
	r.remembered = false
}

// invalidateRemember marks r unknown because of a complex (partial-overwrite)
// assignment, an opaque call, or a branch the evaluator could not statically
// resolve: the prior explicit value, if any, is kept as the "remembered"
// value so code generation can still seed storage from it. A prior implicit
// (zero-default) value is not worth remembering: the zero default is what an
// uninitialised declaration already produces.
func (r *refState) invalidateRemember() {
	if r.known && !r.implicit {
		r.remembered = true
	}
	r.known = false
}

// PrintEntry is one record in the evaluator's print log.
type PrintEntry struct {
	Newline bool
	Args    []ast.Exp
}

// intDomain is the guessed integer domain for one canonicalized
// left-hand-side expression: a lower bound, an upper bound (either may be
// unset, meaning unbounded), and a set of excluded values.
type intDomain struct {
	hasLower bool
	lower    int64
	hasUpper bool
	upper    int64
	holes    map[int64]bool
}

func (d *intDomain) clone() *intDomain {
	cp := &intDomain{hasLower: d.hasLower, lower: d.lower, hasUpper: d.hasUpper, upper: d.upper}
	if len(d.holes) > 0 {
		cp.holes = make(map[int64]bool, len(d.holes))
		for k, v := range d.holes {
			cp.holes[k] = v
		}
	}
	return cp
}

// empty reports whether the domain admits no integer at all.
func (d *intDomain) empty() bool {
	if d.hasLower && d.hasUpper && d.lower > d.upper {
		return true
	}
	if d.hasLower && d.hasUpper && len(d.holes) > 0 {
		full := true
		for v := d.lower; v <= d.upper; v++ {
			if !d.holes[v] {
				full = false
				break
			}
			if v == d.upper { // avoid overflow wraparound on int64 max
				break
			}
		}
		return full
	}
	return false
}

// State is the evaluator's mutable state threaded through one traversal:
// immutable let bindings, mutable ref-let bindings, the two guess stores,
// the print log, and per-variable size statistics.
type State struct {
	scope   *ordered.Map[ast.VarID, value.Value]
	mutable *ordered.Map[ast.VarID, *refState]
	bools   *ordered.Map[string, bool]
	ints    *ordered.Map[string, *intDomain]
	log     []PrintEntry
	stats   map[ast.VarID]int
}

// NewState returns an empty evaluator state.
func NewState() *State {
	return &State{
		scope:   ordered.NewMap[ast.VarID, value.Value](),
		mutable: ordered.NewMap[ast.VarID, *refState](),
		bools:   ordered.NewMap[string, bool](),
		ints:    ordered.NewMap[string, *intDomain](),
		stats:   make(map[ast.VarID]int),
	}
}

// clone returns an independent copy: used before attempting a for-loop
// unroll (so an aborted unroll can roll back) and before forking a
// non-deterministic alternative (so the two branches cannot see each
// other's mutations).
func (s *State) clone() *State {
	cp := &State{
		scope:   ordered.NewMap[ast.VarID, value.Value](),
		mutable: ordered.NewMap[ast.VarID, *refState](),
		bools:   s.bools.Clone(),
		ints:    ordered.NewMap[string, *intDomain](),
		log:     append([]PrintEntry(nil), s.log...),
		stats:   make(map[ast.VarID]int, len(s.stats)),
	}
	for id, v := range s.scope.Iter() {
		cp.scope.Store(id, value.Clone(v))
	}
	for id, r := range s.mutable.Iter() {
		cp.mutable.Store(id, r.clone())
	}
	for k, d := range s.ints.Iter() {
		cp.ints.Store(k, d.clone())
	}
	for id, n := range s.stats {
		cp.stats[id] = n
	}
	return cp
}

// lookupMutable returns the live ref-state for id, if any.
func (s *State) lookupMutable(id ast.VarID) (*refState, bool) { return s.mutable.Load(id) }

func (s *State) bindLet(id ast.VarID, v value.Value) {
	s.scope.Store(id, v)
	s.touchStats(id, v)
}

func (s *State) unbindLet(id ast.VarID) { s.scope.Delete(id) }

func (s *State) lookupLet(id ast.VarID) (value.Value, bool) { return s.scope.Load(id) }

func (s *State) touchStats(id ast.VarID, v value.Value) {
	if n := value.Size(v); n > s.stats[id] {
		s.stats[id] = n
	}
}

// Stats returns the per-variable maximum observed size, keyed by variable
// id.
func (s *State) Stats() map[ast.VarID]int { return s.stats }

// VarStat pairs a variable with its maximum observed size, for callers that
// want a stable report rather than ranging over Stats' map directly.
type VarStat struct {
	ID   ast.VarID
	Size int
}

// SortedStats returns Stats in ascending variable-id order, so a size
// report reads the same way across runs instead of following Go's
// randomized map iteration.
func SortedStats(s *State) []VarStat {
	ids := maps.Keys(s.stats)
	slices.Sort(ids)
	out := make([]VarStat, len(ids))
	for i, id := range ids {
		out[i] = VarStat{ID: id, Size: s.stats[id]}
	}
	return out
}

// Log returns the accumulated print log.
func (s *State) Log() []PrintEntry { return s.log }

func (s *State) appendLog(e PrintEntry) { s.log = append(s.log, e) }

// invalidateAll moves every currently live ref-let variable to "unknown",
// remembering its last known explicit value, and clears both guess
// stores. Used by opaque calls and by conditionals whose branch cannot be
// statically chosen.
func (s *State) invalidateAll() {
	for _, r := range s.mutable.Iter() {
		r.invalidateRemember()
	}
	s.clearGuesses()
}

func (s *State) clearGuesses() {
	s.bools = ordered.NewMap[string, bool]()
	s.ints = ordered.NewMap[string, *intDomain]()
}
