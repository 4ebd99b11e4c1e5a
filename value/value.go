// Package value implements the typed runtime value model: one variant per
// scalar type, a dedicated variant per complex-integer width, a sparse
// fixed-shape array variant, and a nominal struct variant. Values are
// immutable except for Array and Struct, whose elements and fields can be
// updated in place (Array.Set, Struct.SetField) the way a mutable program
// variable would be updated by a native interpreter; Array.Clone and
// Struct.Clone give callers (loop-abort rollback, non-deterministic branch
// forking) a value they can mutate independently.
package value

import (
	"fmt"

	"github.com/wavecore/corelang/ast"
)

// Value is implemented by every runtime value variant. Equality ignores
// source location, so Equal is a free function rather than a method that
// the Pos field would otherwise leak into.
type Value interface {
	Kind() ast.Kind
	Type() ast.Type
	Pos() ast.Pos
	String() string
}

// Unit is the single value of type unit.
type Unit struct{ P ast.Pos }

func (Unit) Kind() ast.Kind   { return ast.KindUnit }
func (Unit) Type() ast.Type   { return ast.UnitT }
func (v Unit) Pos() ast.Pos   { return v.P }
func (Unit) String() string  { return "()" }

// Bool is a boolean value.
type Bool struct {
	P ast.Pos
	V bool
}

func (Bool) Kind() ast.Kind  { return ast.KindBool }
func (Bool) Type() ast.Type  { return ast.BoolT }
func (v Bool) Pos() ast.Pos  { return v.P }
func (v Bool) String() string { return fmt.Sprint(v.V) }

// Bit is a single-bit value. Distinct from Bool so that the cast matrix can
// give it its own (identical at runtime, different for code generation)
// rules.
type Bit struct {
	P ast.Pos
	V bool
}

func (Bit) Kind() ast.Kind  { return ast.KindBit }
func (Bit) Type() ast.Type  { return ast.BitT }
func (v Bit) Pos() ast.Pos  { return v.P }
func (v Bit) String() string {
	if v.V {
		return "1"
	}
	return "0"
}

// Str is a string value.
type Str struct {
	P ast.Pos
	V string
}

func (Str) Kind() ast.Kind  { return ast.KindString }
func (Str) Type() ast.Type  { return ast.StringT }
func (v Str) Pos() ast.Pos  { return v.P }
func (v Str) String() string { return v.V }

// Double is a floating-point value.
type Double struct {
	P ast.Pos
	V float64
}

func (Double) Kind() ast.Kind  { return ast.KindDouble }
func (Double) Type() ast.Type  { return ast.DoubleT }
func (v Double) Pos() ast.Pos  { return v.P }
func (v Double) String() string { return fmt.Sprint(v.V) }

// WithPos returns a copy of v positioned at pos. Used when a value folded
// at one location is re-embedded as a literal at another.
func WithPos(v Value, pos ast.Pos) Value {
	switch vt := v.(type) {
	case Unit:
		return Unit{P: pos}
	case Bool:
		return Bool{P: pos, V: vt.V}
	case Bit:
		return Bit{P: pos, V: vt.V}
	case Str:
		return Str{P: pos, V: vt.V}
	case Double:
		return Double{P: pos, V: vt.V}
	case Int8:
		return Int8{P: pos, V: vt.V}
	case Int16:
		return Int16{P: pos, V: vt.V}
	case Int32:
		return Int32{P: pos, V: vt.V}
	case Int64:
		return Int64{P: pos, V: vt.V}
	case Uint8:
		return Uint8{P: pos, V: vt.V}
	case Uint16:
		return Uint16{P: pos, V: vt.V}
	case Uint32:
		return Uint32{P: pos, V: vt.V}
	case Uint64:
		return Uint64{P: pos, V: vt.V}
	case Complex8:
		return Complex8{P: pos, Re: vt.Re, Im: vt.Im}
	case Complex16:
		return Complex16{P: pos, Re: vt.Re, Im: vt.Im}
	case Complex32:
		return Complex32{P: pos, Re: vt.Re, Im: vt.Im}
	case Complex64:
		return Complex64{P: pos, Re: vt.Re, Im: vt.Im}
	case *Array:
		cp := vt.Clone()
		cp.P = pos
		return cp
	case *Struct:
		cp := vt.Clone()
		cp.P = pos
		return cp
	default:
		return v
	}
}

// Clone returns an independent copy of v: for Array and Struct, a deep
// copy that mutating the original (or the clone) never affects the other;
// every other variant is immutable, so Clone returns v itself.
func Clone(v Value) Value { return cloneValue(v) }

// Equal reports whether a and b are the same value, ignoring location.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch at := a.(type) {
	case Unit:
		return true
	case Bool:
		return at.V == b.(Bool).V
	case Bit:
		return at.V == b.(Bit).V
	case Str:
		return at.V == b.(Str).V
	case Double:
		return at.V == b.(Double).V
	case Int8:
		return at.V == b.(Int8).V
	case Int16:
		return at.V == b.(Int16).V
	case Int32:
		return at.V == b.(Int32).V
	case Int64:
		return at.V == b.(Int64).V
	case Uint8:
		return at.V == b.(Uint8).V
	case Uint16:
		return at.V == b.(Uint16).V
	case Uint32:
		return at.V == b.(Uint32).V
	case Uint64:
		return at.V == b.(Uint64).V
	case Complex8:
		bt := b.(Complex8)
		return at.Re == bt.Re && at.Im == bt.Im
	case Complex16:
		bt := b.(Complex16)
		return at.Re == bt.Re && at.Im == bt.Im
	case Complex32:
		bt := b.(Complex32)
		return at.Re == bt.Re && at.Im == bt.Im
	case Complex64:
		bt := b.(Complex64)
		return at.Re == bt.Re && at.Im == bt.Im
	case *Array:
		return arrayEqual(at, b.(*Array))
	case *Struct:
		return structEqual(at, b.(*Struct))
	default:
		return false
	}
}
