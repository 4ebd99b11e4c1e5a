package ops

import (
	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/value"
)

// Unary applies op to an already-reduced value.
func Unary(pos ast.Pos, op ast.UnaryOp, x value.Value) (value.Value, error) {
	if op == ast.ULen {
		return length(pos, x)
	}
	switch xt := x.(type) {
	case value.Int8:
		return unarySigned(pos, op, xt)
	case value.Int16:
		return unarySigned(pos, op, xt)
	case value.Int32:
		return unarySigned(pos, op, xt)
	case value.Int64:
		return unarySigned(pos, op, xt)
	case value.Uint8:
		return unaryUnsigned(pos, op, xt)
	case value.Uint16:
		return unaryUnsigned(pos, op, xt)
	case value.Uint32:
		return unaryUnsigned(pos, op, xt)
	case value.Uint64:
		return unaryUnsigned(pos, op, xt)
	case value.Complex8:
		return unaryComplex(pos, op, xt)
	case value.Complex16:
		return unaryComplex(pos, op, xt)
	case value.Complex32:
		return unaryComplex(pos, op, xt)
	case value.Complex64:
		return unaryComplex(pos, op, xt)
	case value.Double:
		if op == ast.UNeg {
			return value.Double{P: pos, V: -xt.V}, nil
		}
		return nil, errUnaryNotApplicable(op, x)
	case value.Bool:
		if op == ast.UNot {
			return value.Bool{P: pos, V: !xt.V}, nil
		}
		return nil, errUnaryNotApplicable(op, x)
	case value.Bit:
		if op == ast.UNot || op == ast.UBitNot {
			return value.Bit{P: pos, V: !xt.V}, nil
		}
		return nil, errUnaryNotApplicable(op, x)
	default:
		return nil, errUnaryNotApplicable(op, x)
	}
}

func unarySigned[T value.SignedInt](pos ast.Pos, op ast.UnaryOp, x value.Int[T]) (value.Value, error) {
	switch op {
	case ast.UNeg:
		return value.Int[T]{P: pos, V: -x.V}, nil
	case ast.UBitNot:
		return value.Int[T]{P: pos, V: ^x.V}, nil
	default:
		return nil, errUnaryNotApplicable(op, x)
	}
}

func unaryUnsigned[T value.UnsignedInt](pos ast.Pos, op ast.UnaryOp, x value.Uint[T]) (value.Value, error) {
	switch op {
	case ast.UBitNot:
		return value.Uint[T]{P: pos, V: ^x.V}, nil
	default:
		return nil, errUnaryNotApplicable(op, x)
	}
}

func unaryComplex[T value.SignedInt](pos ast.Pos, op ast.UnaryOp, x value.Cplx[T]) (value.Value, error) {
	switch op {
	case ast.UNeg:
		return value.Cplx[T]{P: pos, Re: -x.Re, Im: -x.Im}, nil
	default:
		return nil, errUnaryNotApplicable(op, x)
	}
}

// length returns the element count of an array, or the byte length of a
// string; it is the only unary operator not keyed to numeric negation.
func length(pos ast.Pos, x value.Value) (value.Value, error) {
	switch xt := x.(type) {
	case *value.Array:
		return value.Int32{P: pos, V: int32(xt.Len)}, nil
	case value.Str:
		return value.Int32{P: pos, V: int32(len(xt.V))}, nil
	default:
		return nil, errUnaryNotApplicable(ast.ULen, x)
	}
}
