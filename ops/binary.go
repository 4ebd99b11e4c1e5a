package ops

import (
	"math"

	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/value"
)

// Binary applies op to x and y, both already-reduced values. Equality and
// shifts are dispatched before the operand kinds are required to match:
// equality is defined between any two values (structurally, via
// value.Equal), and a shift's right operand is "read as an integer"
// regardless of its own width, per the language's shift semantics.
func Binary(pos ast.Pos, op ast.BinaryOp, x, y value.Value) (value.Value, error) {
	switch op {
	case ast.BEq:
		return value.Bool{P: pos, V: value.Equal(x, y)}, nil
	case ast.BNeq:
		return value.Bool{P: pos, V: !value.Equal(x, y)}, nil
	case ast.BShl, ast.BShr:
		return shift(pos, op, x, y)
	}
	if x.Kind() != y.Kind() {
		return nil, errKindMismatch(op, x, y)
	}
	switch xt := x.(type) {
	case value.Int8:
		return binarySigned(pos, op, xt, y.(value.Int8))
	case value.Int16:
		return binarySigned(pos, op, xt, y.(value.Int16))
	case value.Int32:
		return binarySigned(pos, op, xt, y.(value.Int32))
	case value.Int64:
		return binarySigned(pos, op, xt, y.(value.Int64))
	case value.Uint8:
		return binaryUnsigned(pos, op, xt, y.(value.Uint8))
	case value.Uint16:
		return binaryUnsigned(pos, op, xt, y.(value.Uint16))
	case value.Uint32:
		return binaryUnsigned(pos, op, xt, y.(value.Uint32))
	case value.Uint64:
		return binaryUnsigned(pos, op, xt, y.(value.Uint64))
	case value.Complex8:
		return binaryComplex(pos, op, xt, y.(value.Complex8))
	case value.Complex16:
		return binaryComplex(pos, op, xt, y.(value.Complex16))
	case value.Complex32:
		return binaryComplex(pos, op, xt, y.(value.Complex32))
	case value.Complex64:
		return binaryComplex(pos, op, xt, y.(value.Complex64))
	case value.Double:
		return binaryDouble(pos, op, xt, y.(value.Double))
	case value.Str:
		return binaryStr(pos, op, xt, y.(value.Str))
	case value.Bool:
		return binaryBool(pos, op, xt.V, y.(value.Bool).V)
	case value.Bit:
		b, err := binaryBool(pos, op, xt.V, y.(value.Bit).V)
		if err != nil {
			return nil, err
		}
		return value.Bit{P: pos, V: b.(value.Bool).V}, nil
	default:
		return nil, errBinaryNotApplicable(op, x)
	}
}

func binarySigned[T value.SignedInt](pos ast.Pos, op ast.BinaryOp, x, y value.Int[T]) (value.Value, error) {
	switch op {
	case ast.BAdd:
		return value.Int[T]{P: pos, V: x.V + y.V}, nil
	case ast.BSub:
		return value.Int[T]{P: pos, V: x.V - y.V}, nil
	case ast.BMul:
		return value.Int[T]{P: pos, V: x.V * y.V}, nil
	case ast.BDiv:
		if y.V == 0 {
			return nil, ErrDivByZero
		}
		return value.Int[T]{P: pos, V: x.V / y.V}, nil
	case ast.BRem:
		if y.V == 0 {
			return nil, ErrDivByZero
		}
		return value.Int[T]{P: pos, V: x.V % y.V}, nil
	case ast.BPow:
		p, err := ipow(int64(x.V), int64(y.V))
		if err != nil {
			return nil, err
		}
		return value.Int[T]{P: pos, V: T(p)}, nil
	case ast.BAnd:
		return value.Int[T]{P: pos, V: x.V & y.V}, nil
	case ast.BOr:
		return value.Int[T]{P: pos, V: x.V | y.V}, nil
	case ast.BXor:
		return value.Int[T]{P: pos, V: x.V ^ y.V}, nil
	case ast.BLt:
		return value.Bool{P: pos, V: x.V < y.V}, nil
	case ast.BLe:
		return value.Bool{P: pos, V: x.V <= y.V}, nil
	case ast.BGt:
		return value.Bool{P: pos, V: x.V > y.V}, nil
	case ast.BGe:
		return value.Bool{P: pos, V: x.V >= y.V}, nil
	default:
		return nil, errBinaryNotApplicable(op, x)
	}
}

func binaryUnsigned[T value.UnsignedInt](pos ast.Pos, op ast.BinaryOp, x, y value.Uint[T]) (value.Value, error) {
	switch op {
	case ast.BAdd:
		return value.Uint[T]{P: pos, V: x.V + y.V}, nil
	case ast.BSub:
		return value.Uint[T]{P: pos, V: x.V - y.V}, nil
	case ast.BMul:
		return value.Uint[T]{P: pos, V: x.V * y.V}, nil
	case ast.BDiv:
		if y.V == 0 {
			return nil, ErrDivByZero
		}
		return value.Uint[T]{P: pos, V: x.V / y.V}, nil
	case ast.BRem:
		if y.V == 0 {
			return nil, ErrDivByZero
		}
		return value.Uint[T]{P: pos, V: x.V % y.V}, nil
	case ast.BPow:
		p, err := ipow(int64(x.V), int64(y.V))
		if err != nil {
			return nil, err
		}
		return value.Uint[T]{P: pos, V: T(p)}, nil
	case ast.BAnd:
		return value.Uint[T]{P: pos, V: x.V & y.V}, nil
	case ast.BOr:
		return value.Uint[T]{P: pos, V: x.V | y.V}, nil
	case ast.BXor:
		return value.Uint[T]{P: pos, V: x.V ^ y.V}, nil
	case ast.BLt:
		return value.Bool{P: pos, V: x.V < y.V}, nil
	case ast.BLe:
		return value.Bool{P: pos, V: x.V <= y.V}, nil
	case ast.BGt:
		return value.Bool{P: pos, V: x.V > y.V}, nil
	case ast.BGe:
		return value.Bool{P: pos, V: x.V >= y.V}, nil
	default:
		return nil, errBinaryNotApplicable(op, x)
	}
}

// binaryComplex implements add/sub/mul/div over a complex-integer pair,
// truncating every component back to T. Division follows
// (ac+bd)/(c²+d²) + ((bc-ad)/(c²+d²))i, the standard complex quotient with
// integer truncation toward zero applied to each component independently.
func binaryComplex[T value.SignedInt](pos ast.Pos, op ast.BinaryOp, x, y value.Cplx[T]) (value.Value, error) {
	a, b, c, d := int64(x.Re), int64(x.Im), int64(y.Re), int64(y.Im)
	switch op {
	case ast.BAdd:
		return value.Cplx[T]{P: pos, Re: T(a + c), Im: T(b + d)}, nil
	case ast.BSub:
		return value.Cplx[T]{P: pos, Re: T(a - c), Im: T(b - d)}, nil
	case ast.BMul:
		return value.Cplx[T]{P: pos, Re: T(a*c - b*d), Im: T(a*d + b*c)}, nil
	case ast.BDiv:
		denom := c*c + d*d
		if denom == 0 {
			return nil, ErrDivByZero
		}
		return value.Cplx[T]{P: pos, Re: T((a*c + b*d) / denom), Im: T((b*c - a*d) / denom)}, nil
	default:
		return nil, errBinaryNotApplicable(op, x)
	}
}

func binaryDouble(pos ast.Pos, op ast.BinaryOp, x, y value.Double) (value.Value, error) {
	switch op {
	case ast.BAdd:
		return value.Double{P: pos, V: x.V + y.V}, nil
	case ast.BSub:
		return value.Double{P: pos, V: x.V - y.V}, nil
	case ast.BMul:
		return value.Double{P: pos, V: x.V * y.V}, nil
	case ast.BDiv:
		if y.V == 0 {
			return nil, ErrDivByZero
		}
		return value.Double{P: pos, V: x.V / y.V}, nil
	case ast.BPow:
		return value.Double{P: pos, V: math.Pow(x.V, y.V)}, nil
	case ast.BLt:
		return value.Bool{P: pos, V: x.V < y.V}, nil
	case ast.BLe:
		return value.Bool{P: pos, V: x.V <= y.V}, nil
	case ast.BGt:
		return value.Bool{P: pos, V: x.V > y.V}, nil
	case ast.BGe:
		return value.Bool{P: pos, V: x.V >= y.V}, nil
	default:
		return nil, errBinaryNotApplicable(op, x)
	}
}

func binaryStr(pos ast.Pos, op ast.BinaryOp, x, y value.Str) (value.Value, error) {
	switch op {
	case ast.BAdd:
		return value.Str{P: pos, V: x.V + y.V}, nil
	case ast.BLt:
		return value.Bool{P: pos, V: x.V < y.V}, nil
	case ast.BLe:
		return value.Bool{P: pos, V: x.V <= y.V}, nil
	case ast.BGt:
		return value.Bool{P: pos, V: x.V > y.V}, nil
	case ast.BGe:
		return value.Bool{P: pos, V: x.V >= y.V}, nil
	default:
		return nil, errBinaryNotApplicable(op, x)
	}
}

func binaryBool(pos ast.Pos, op ast.BinaryOp, x, y bool) (value.Value, error) {
	switch op {
	case ast.BAnd, ast.BLogAnd:
		return value.Bool{P: pos, V: x && y}, nil
	case ast.BOr, ast.BLogOr:
		return value.Bool{P: pos, V: x || y}, nil
	case ast.BXor:
		return value.Bool{P: pos, V: x != y}, nil
	default:
		return nil, errBinaryNotApplicable(op, value.Bool{P: pos, V: x})
	}
}

// shift implements BShl/BShr. The result keeps the left operand's exact
// type; the right operand is read as a plain integer regardless of its own
// width. A negative shift count flips the direction and shifts by its
// absolute value, so "x >> -n" reads the same as "x << n".
func shift(pos ast.Pos, op ast.BinaryOp, x, y value.Value) (value.Value, error) {
	amt, err := value.AsInt64(y)
	if err != nil {
		return nil, err
	}
	if amt < 0 {
		amt = -amt
		if op == ast.BShl {
			op = ast.BShr
		} else {
			op = ast.BShl
		}
	}
	u := uint(amt)
	switch xt := x.(type) {
	case value.Int8:
		return value.Int8{P: pos, V: shiftSigned(xt.V, op, u)}, nil
	case value.Int16:
		return value.Int16{P: pos, V: shiftSigned(xt.V, op, u)}, nil
	case value.Int32:
		return value.Int32{P: pos, V: shiftSigned(xt.V, op, u)}, nil
	case value.Int64:
		return value.Int64{P: pos, V: shiftSigned(xt.V, op, u)}, nil
	case value.Uint8:
		return value.Uint8{P: pos, V: shiftUnsigned(xt.V, op, u)}, nil
	case value.Uint16:
		return value.Uint16{P: pos, V: shiftUnsigned(xt.V, op, u)}, nil
	case value.Uint32:
		return value.Uint32{P: pos, V: shiftUnsigned(xt.V, op, u)}, nil
	case value.Uint64:
		return value.Uint64{P: pos, V: shiftUnsigned(xt.V, op, u)}, nil
	default:
		return nil, errBinaryNotApplicable(op, x)
	}
}

func shiftSigned[T value.SignedInt](x T, op ast.BinaryOp, u uint) T {
	if op == ast.BShl {
		return x << u
	}
	return x >> u
}

func shiftUnsigned[T value.UnsignedInt](x T, op ast.BinaryOp, u uint) T {
	if op == ast.BShl {
		return x << u
	}
	return x >> u
}

// ipow computes base**exp by repeated squaring for a non-negative exp;
// the language has no rational type, so a negative integer exponent has no
// representable result.
func ipow(base, exp int64) (int64, error) {
	if exp < 0 {
		return 0, errBinaryNotApplicable(ast.BPow, value.Int64{V: base})
	}
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result, nil
}
