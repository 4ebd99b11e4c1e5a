package ops

import (
	"strconv"

	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/value"
)

// Cast converts x to the scalar type target. Integer casts truncate or
// sign/zero-extend as Go's own numeric conversions do; a double cast to an
// integer type truncates toward zero; casting to string always yields the
// value's decimal (for integers/doubles) or literal (bit/bool) text form.
// Complex values cast element-wise, converting their re and im components
// independently and keeping the complex tag (re-tagged to the width
// implied by target, when target is itself a complex type).
func Cast(pos ast.Pos, target ast.Type, x value.Value) (value.Value, error) {
	if target.Kind() == ast.KindString {
		return value.Str{P: pos, V: x.String()}, nil
	}
	if target.Kind().IsComplex() {
		return castComplex(pos, target, x)
	}
	if x.Kind().IsComplex() {
		return nil, errCastNotApplicable(x.Kind(), target)
	}

	switch target.Kind() {
	case ast.KindBit:
		b, err := castToBool(x)
		if err != nil {
			return nil, err
		}
		return value.Bit{P: pos, V: b}, nil
	case ast.KindBool:
		b, err := castToBool(x)
		if err != nil {
			return nil, err
		}
		return value.Bool{P: pos, V: b}, nil
	case ast.KindDouble:
		f, err := castToFloat64(x)
		if err != nil {
			return nil, err
		}
		return value.Double{P: pos, V: f}, nil
	case ast.KindInt8, ast.KindInt16, ast.KindInt32, ast.KindInt64,
		ast.KindUint8, ast.KindUint16, ast.KindUint32, ast.KindUint64:
		n, err := castToInt64(x)
		if err != nil {
			return nil, err
		}
		return intOfKind(pos, target.Kind(), n), nil
	default:
		return nil, errCastNotApplicable(x.Kind(), target)
	}
}

func castToBool(x value.Value) (bool, error) {
	switch xt := x.(type) {
	case value.Bool:
		return xt.V, nil
	case value.Bit:
		return xt.V, nil
	case value.Double:
		return xt.V != 0, nil
	default:
		n, err := value.AsInt64(x)
		if err != nil {
			return false, errCastNotApplicable(x.Kind(), ast.BoolT)
		}
		return n != 0, nil
	}
}

func castToFloat64(x value.Value) (float64, error) {
	switch xt := x.(type) {
	case value.Double:
		return xt.V, nil
	case value.Bool:
		return boolFloat(xt.V), nil
	case value.Bit:
		return boolFloat(xt.V), nil
	default:
		n, err := value.AsInt64(x)
		if err != nil {
			return 0, errCastNotApplicable(x.Kind(), ast.DoubleT)
		}
		return float64(n), nil
	}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// castToInt64 reads the integral payload of x as an int64, truncating a
// double toward zero (Go's own float-to-int conversion already does this)
// and reading bit/bool as 0/1.
func castToInt64(x value.Value) (int64, error) {
	switch xt := x.(type) {
	case value.Bool:
		return boolInt(xt.V), nil
	case value.Bit:
		return boolInt(xt.V), nil
	case value.Double:
		return int64(xt.V), nil
	default:
		return value.AsInt64(x)
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// intOfKind truncates or sign/zero-extends n to the native width of kind,
// the same way a Go numeric conversion between two sized integer types
// would.
func intOfKind(pos ast.Pos, kind ast.Kind, n int64) value.Value {
	switch kind {
	case ast.KindInt8:
		return value.Int8{P: pos, V: int8(n)}
	case ast.KindInt16:
		return value.Int16{P: pos, V: int16(n)}
	case ast.KindInt32:
		return value.Int32{P: pos, V: int32(n)}
	case ast.KindInt64:
		return value.Int64{P: pos, V: n}
	case ast.KindUint8:
		return value.Uint8{P: pos, V: uint8(n)}
	case ast.KindUint16:
		return value.Uint16{P: pos, V: uint16(n)}
	case ast.KindUint32:
		return value.Uint32{P: pos, V: uint32(n)}
	default:
		return value.Uint64{P: pos, V: uint64(n)}
	}
}

func castComplex(pos ast.Pos, target ast.Type, x value.Value) (value.Value, error) {
	re, im, err := complexComponents(x)
	if err != nil {
		return nil, err
	}
	switch target.Kind() {
	case ast.KindComplex8:
		return value.Complex8{P: pos, Re: int8(re), Im: int8(im)}, nil
	case ast.KindComplex16:
		return value.Complex16{P: pos, Re: int16(re), Im: int16(im)}, nil
	case ast.KindComplex32:
		return value.Complex32{P: pos, Re: int32(re), Im: int32(im)}, nil
	default:
		return value.Complex64{P: pos, Re: re, Im: im}, nil
	}
}

// complexComponents reads x as a pair of integer components: a complex
// value contributes its own re/im, and a real scalar casts to a complex
// with an implicit zero imaginary part.
func complexComponents(x value.Value) (re, im int64, err error) {
	switch xt := x.(type) {
	case value.Complex8:
		return int64(xt.Re), int64(xt.Im), nil
	case value.Complex16:
		return int64(xt.Re), int64(xt.Im), nil
	case value.Complex32:
		return int64(xt.Re), int64(xt.Im), nil
	case value.Complex64:
		return xt.Re, xt.Im, nil
	default:
		n, err := castToInt64(x)
		if err != nil {
			return 0, 0, errCastNotApplicable(x.Kind(), ast.Complex64T)
		}
		return n, 0, nil
	}
}

// Decimal renders an integer value's decimal text form directly, without
// routing through Value.String (which already does this for every scalar
// kind); kept for callers in the code generator that need the digits
// without the rest of the value's String() formatting conventions.
func Decimal(x value.Value) (string, error) {
	n, err := value.AsInt64(x)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}
