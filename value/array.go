package value

import (
	"sort"
	"strings"

	"github.com/wavecore/corelang/ast"
)

// DenseInitThreshold is a reference length of 2048 elements for
// default-initialised arrays. Neither NewArray nor ZeroOf consults it: a
// default-initialised array of any length is constructed in O(1), since
// only the default element and no per-index entries are stored.
const DenseInitThreshold = 2048

// Array is a fixed-length, sparsely-represented array value: a default
// element plus overrides for the indices that differ from it. Size is
// fixed at construction; reads and writes of a single index are O(1);
// iteration over the non-default entries is O(k) for k non-default
// entries, independent of the array's length.
type Array struct {
	P         ast.Pos
	ElemType  ast.Type
	Len       int
	Default   Value
	overrides map[int]Value
}

// NewArray returns a length-n array where every element equals def. No
// override is stored, so construction is O(1) whatever the length.
func NewArray(pos ast.Pos, elemType ast.Type, length int, def Value) *Array {
	return &Array{P: pos, ElemType: elemType, Len: length, Default: def, overrides: nil}
}

// NewArrayFromList builds an array of len(elts) elements, using def as the
// element that any future Set call would be diffed against (the list
// itself is stored as overrides against that default).
func NewArrayFromList(pos ast.Pos, elemType ast.Type, def Value, elts []Value) *Array {
	a := &Array{P: pos, ElemType: elemType, Len: len(elts), Default: def}
	for i, v := range elts {
		a.Set(i, v)
	}
	return a
}

func (a *Array) Kind() ast.Kind { return ast.KindArray }
func (a *Array) Type() ast.Type {
	return &ast.ArrayType{Elem: a.ElemType, Len: a.Len}
}
func (a *Array) Pos() ast.Pos { return a.P }

func (a *Array) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < a.Len; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Get(i).String())
	}
	b.WriteString("]")
	return b.String()
}

// Size returns the number of non-default entries currently stored.
func (a *Array) Size() int { return len(a.overrides) }

// Get returns the element at index i, bounds-checked by the caller.
func (a *Array) Get(i int) Value {
	if a.overrides != nil {
		if v, ok := a.overrides[i]; ok {
			return v
		}
	}
	return a.Default
}

// InBounds reports whether i addresses a valid element.
func (a *Array) InBounds(i int) bool { return i >= 0 && i < a.Len }

// Set overwrites the element at index i. Values equal to the default are
// removed from the override set rather than stored, keeping Size() an
// accurate count of non-default entries.
func (a *Array) Set(i int, v Value) {
	if Equal(v, a.Default) {
		if a.overrides != nil {
			delete(a.overrides, i)
		}
		return
	}
	if a.overrides == nil {
		a.overrides = make(map[int]Value)
	}
	a.overrides[i] = v
}

// NonDefaultIndex is one non-default entry, returned in increasing index
// order by NonDefault so that callers needing a deterministic order (e.g.
// the array write-out optimisation when residualising a ref-let) do not
// need to sort themselves.
type NonDefaultIndex struct {
	Index int
	Value Value
}

// NonDefault iterates over the array's non-default entries in increasing
// index order. O(k log k) for k non-default entries.
func (a *Array) NonDefault() []NonDefaultIndex {
	if len(a.overrides) == 0 {
		return nil
	}
	out := make([]NonDefaultIndex, 0, len(a.overrides))
	for i, v := range a.overrides {
		out = append(out, NonDefaultIndex{Index: i, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Slice returns a new array view over [lo, hi), copying the relevant
// overrides and re-indexing them to the slice's own index space.
func (a *Array) Slice(lo, hi int) *Array {
	out := &Array{P: a.P, ElemType: a.ElemType, Len: hi - lo, Default: a.Default}
	for i, v := range a.overrides {
		if i >= lo && i < hi {
			out.Set(i-lo, v)
		}
	}
	return out
}

// Clone returns an independent copy: mutating the clone never affects a.
// Nested array/struct elements are cloned too, so the snapshot taken before
// a for-loop unroll attempt (or before forking a non-deterministic branch)
// cannot be perturbed by mutation performed on the other side of the fork.
func (a *Array) Clone() *Array {
	out := &Array{P: a.P, ElemType: a.ElemType, Len: a.Len, Default: cloneValue(a.Default)}
	if len(a.overrides) > 0 {
		out.overrides = make(map[int]Value, len(a.overrides))
		for i, v := range a.overrides {
			out.overrides[i] = cloneValue(v)
		}
	}
	return out
}

func cloneValue(v Value) Value {
	switch vt := v.(type) {
	case *Array:
		return vt.Clone()
	case *Struct:
		return vt.Clone()
	default:
		return v
	}
}

func arrayEqual(a, b *Array) bool {
	if a.Len != b.Len {
		return false
	}
	if a.Len == 0 {
		return true
	}
	for i := 0; i < a.Len; i++ {
		if !Equal(a.Get(i), b.Get(i)) {
			return false
		}
	}
	return true
}
