package value

import (
	"fmt"

	"github.com/wavecore/corelang/ast"
)

// SignedInt is the set of native Go types backing the signed integer kinds.
type SignedInt interface {
	int8 | int16 | int32 | int64
}

// UnsignedInt is the set of native Go types backing the unsigned integer
// kinds.
type UnsignedInt interface {
	uint8 | uint16 | uint32 | uint64
}

// Int is a signed fixed-width integer value, generic over its native Go
// backing type so the four widths share one implementation the way the
// evaluator's range-over-integer helpers are generic over dtype.AlgebraType
// in the teacher this core is grounded on.
type Int[T SignedInt] struct {
	P ast.Pos
	V T
}

func kindOfSigned[T SignedInt]() ast.Kind {
	var z T
	switch any(z).(type) {
	case int8:
		return ast.KindInt8
	case int16:
		return ast.KindInt16
	case int32:
		return ast.KindInt32
	case int64:
		return ast.KindInt64
	default:
		panic("unreachable")
	}
}

func (n Int[T]) Kind() ast.Kind { return kindOfSigned[T]() }
func (n Int[T]) Type() ast.Type {
	switch n.Kind() {
	case ast.KindInt8:
		return ast.Int8T
	case ast.KindInt16:
		return ast.Int16T
	case ast.KindInt32:
		return ast.Int32T
	default:
		return ast.Int64T
	}
}
func (n Int[T]) Pos() ast.Pos     { return n.P }
func (n Int[T]) String() string  { return fmt.Sprint(n.V) }

// Uint is an unsigned fixed-width integer value.
type Uint[T UnsignedInt] struct {
	P ast.Pos
	V T
}

func kindOfUnsigned[T UnsignedInt]() ast.Kind {
	var z T
	switch any(z).(type) {
	case uint8:
		return ast.KindUint8
	case uint16:
		return ast.KindUint16
	case uint32:
		return ast.KindUint32
	case uint64:
		return ast.KindUint64
	default:
		panic("unreachable")
	}
}

func (n Uint[T]) Kind() ast.Kind { return kindOfUnsigned[T]() }
func (n Uint[T]) Type() ast.Type {
	switch n.Kind() {
	case ast.KindUint8:
		return ast.Uint8T
	case ast.KindUint16:
		return ast.Uint16T
	case ast.KindUint32:
		return ast.Uint32T
	default:
		return ast.Uint64T
	}
}
func (n Uint[T]) Pos() ast.Pos    { return n.P }
func (n Uint[T]) String() string { return fmt.Sprint(n.V) }

// Cplx is a complex-integer value: a struct of two signed integers of the
// same width, kept as a dedicated tag (rather than reduced to a generic
// two-field struct) so the operator tables can give it its own rules and
// so size accounting and casts stay cheap.
type Cplx[T SignedInt] struct {
	P      ast.Pos
	Re, Im T
}

func kindOfComplex[T SignedInt]() ast.Kind {
	var z T
	switch any(z).(type) {
	case int8:
		return ast.KindComplex8
	case int16:
		return ast.KindComplex16
	case int32:
		return ast.KindComplex32
	case int64:
		return ast.KindComplex64
	default:
		panic("unreachable")
	}
}

func (c Cplx[T]) Kind() ast.Kind { return kindOfComplex[T]() }
func (c Cplx[T]) Type() ast.Type {
	switch c.Kind() {
	case ast.KindComplex8:
		return ast.Complex8T
	case ast.KindComplex16:
		return ast.Complex16T
	case ast.KindComplex32:
		return ast.Complex32T
	default:
		return ast.Complex64T
	}
}
func (c Cplx[T]) Pos() ast.Pos    { return c.P }
func (c Cplx[T]) String() string { return fmt.Sprintf("(%v+%vi)", c.Re, c.Im) }

// Concrete instantiations used throughout the rest of the core: keeping
// these as named types (rather than making every caller spell out
// Int[int32]) lets operator dispatch type-switch on them directly.
type (
	Int8  = Int[int8]
	Int16 = Int[int16]
	Int32 = Int[int32]
	Int64 = Int[int64]

	Uint8  = Uint[uint8]
	Uint16 = Uint[uint16]
	Uint32 = Uint[uint32]
	Uint64 = Uint[uint64]

	Complex8  = Cplx[int8]
	Complex16 = Cplx[int16]
	Complex32 = Cplx[int32]
	Complex64 = Cplx[int64]
)
