package value

import "github.com/wavecore/corelang/ast"

// ZeroOf returns the implicit default value of a fully ground type: the
// value a ref-let with no explicit initialiser starts from. Only legal for
// types the ref-let invariant allows to omit an initialiser — a ground
// (non-meta-variable) array length, and struct fields that are themselves
// ground.
func ZeroOf(pos ast.Pos, typ ast.Type) Value {
	switch t := typ.(type) {
	case *ast.ScalarType:
		return zeroScalar(pos, t.K)
	case *ast.ArrayType:
		return NewArray(pos, t.Elem, t.Len, ZeroOf(pos, t.Elem))
	case *ast.StructType:
		fields := make(map[string]Value, len(t.Fields))
		for _, f := range t.Fields {
			fields[f.Name] = ZeroOf(pos, f.Type)
		}
		v, err := NewStruct(pos, t, fields)
		if err != nil {
			// A well-typed struct type always has a zero value for every
			// field; reaching this means the type itself is malformed,
			// which the front end's type checker should already reject.
			return Unit{P: pos}
		}
		return v
	default:
		return Unit{P: pos}
	}
}

func zeroScalar(pos ast.Pos, k ast.Kind) Value {
	switch k {
	case ast.KindUnit:
		return Unit{P: pos}
	case ast.KindBool:
		return Bool{P: pos}
	case ast.KindBit:
		return Bit{P: pos}
	case ast.KindString:
		return Str{P: pos}
	case ast.KindDouble:
		return Double{P: pos}
	case ast.KindInt8:
		return Int8{P: pos}
	case ast.KindInt16:
		return Int16{P: pos}
	case ast.KindInt32:
		return Int32{P: pos}
	case ast.KindInt64:
		return Int64{P: pos}
	case ast.KindUint8:
		return Uint8{P: pos}
	case ast.KindUint16:
		return Uint16{P: pos}
	case ast.KindUint32:
		return Uint32{P: pos}
	case ast.KindUint64:
		return Uint64{P: pos}
	case ast.KindComplex8:
		return Complex8{P: pos}
	case ast.KindComplex16:
		return Complex16{P: pos}
	case ast.KindComplex32:
		return Complex32{P: pos}
	case ast.KindComplex64:
		return Complex64{P: pos}
	default:
		return Unit{P: pos}
	}
}
