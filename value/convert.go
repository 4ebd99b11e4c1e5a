package value

import (
	"github.com/pkg/errors"

	"github.com/wavecore/corelang/ast"
)

// FromLiteral constructs the scalar value of type typ from its pre-parsed
// Go literal val, as carried on an ast.Lit node. Arrays and structs are
// built separately (NewArray/NewArrayFromList, NewStruct): a literal node
// only ever carries a scalar payload.
func FromLiteral(pos ast.Pos, typ ast.Type, val any) (Value, error) {
	switch typ.Kind() {
	case ast.KindUnit:
		return Unit{P: pos}, nil
	case ast.KindBool:
		return Bool{P: pos, V: val.(bool)}, nil
	case ast.KindBit:
		return Bit{P: pos, V: val.(bool)}, nil
	case ast.KindString:
		return Str{P: pos, V: val.(string)}, nil
	case ast.KindDouble:
		return Double{P: pos, V: toFloat64(val)}, nil
	case ast.KindInt8:
		return Int8{P: pos, V: int8(toInt64(val))}, nil
	case ast.KindInt16:
		return Int16{P: pos, V: int16(toInt64(val))}, nil
	case ast.KindInt32:
		return Int32{P: pos, V: int32(toInt64(val))}, nil
	case ast.KindInt64:
		return Int64{P: pos, V: toInt64(val)}, nil
	case ast.KindUint8:
		return Uint8{P: pos, V: uint8(toUint64(val))}, nil
	case ast.KindUint16:
		return Uint16{P: pos, V: uint16(toUint64(val))}, nil
	case ast.KindUint32:
		return Uint32{P: pos, V: uint32(toUint64(val))}, nil
	case ast.KindUint64:
		return Uint64{P: pos, V: toUint64(val)}, nil
	default:
		return nil, errors.Errorf("cannot build a %s value from a scalar literal", typ.Kind())
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

func toUint64(val any) uint64 {
	switch v := val.(type) {
	case int:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	default:
		return 0
	}
}

func toFloat64(val any) float64 {
	switch v := val.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

// ToExp converts v into the literal AST expression that denotes it. The
// conversion is total (every Value variant has a syntax) and injective up
// to location: interpreting ToExp(v) in full mode always yields a value
// equal to v, ignoring position.
func ToExp(v Value) ast.Exp {
	switch vt := v.(type) {
	case Unit:
		return ast.NewLit(vt.P, ast.UnitT, nil)
	case Bool:
		return ast.NewLit(vt.P, ast.BoolT, vt.V)
	case Bit:
		return ast.NewLit(vt.P, ast.BitT, vt.V)
	case Str:
		return ast.NewLit(vt.P, ast.StringT, vt.V)
	case Double:
		return ast.NewLit(vt.P, ast.DoubleT, vt.V)
	case Int8:
		return ast.NewLit(vt.P, ast.Int8T, vt.V)
	case Int16:
		return ast.NewLit(vt.P, ast.Int16T, vt.V)
	case Int32:
		return ast.NewLit(vt.P, ast.Int32T, vt.V)
	case Int64:
		return ast.NewLit(vt.P, ast.Int64T, vt.V)
	case Uint8:
		return ast.NewLit(vt.P, ast.Uint8T, vt.V)
	case Uint16:
		return ast.NewLit(vt.P, ast.Uint16T, vt.V)
	case Uint32:
		return ast.NewLit(vt.P, ast.Uint32T, vt.V)
	case Uint64:
		return ast.NewLit(vt.P, ast.Uint64T, vt.V)
	case Complex8:
		return complexToExp(vt.P, "complex8", ast.Int8T, int64(vt.Re), int64(vt.Im))
	case Complex16:
		return complexToExp(vt.P, "complex16", ast.Int16T, int64(vt.Re), int64(vt.Im))
	case Complex32:
		return complexToExp(vt.P, "complex32", ast.Int32T, int64(vt.Re), int64(vt.Im))
	case Complex64:
		return complexToExp(vt.P, "complex64", ast.Int64T, vt.Re, vt.Im)
	case *Array:
		elts := make([]ast.Exp, vt.Len)
		for i := 0; i < vt.Len; i++ {
			elts[i] = ToExp(vt.Get(i))
		}
		return ast.NewArrayLit(vt.P, vt.Type(), elts)
	case *Struct:
		var fields []ast.FieldLit
		for name, fv := range vt.fields.Iter() {
			fields = append(fields, ast.FieldLit{Name: name, Val: ToExp(fv)})
		}
		return ast.NewStructLit(vt.P, vt.typ, fields)
	default:
		return ast.NewLit(ast.Pos{}, nil, nil)
	}
}

// complexToExp builds the struct-literal syntax for a complex value: a
// nominal struct named after the complex width ("complex8"... "complex64"),
// with re/im fields of the matching-width signed integer type. NewStruct
// recognises this name and folds the literal back into the dedicated
// complex variant rather than a generic struct.
func complexToExp(pos ast.Pos, name string, fieldTyp ast.Type, re, im int64) ast.Exp {
	typ := &ast.StructType{Name: name, Fields: []ast.FieldType{
		{Name: "re", Type: fieldTyp},
		{Name: "im", Type: fieldTyp},
	}}
	return ast.NewStructLit(pos, typ, []ast.FieldLit{
		{Name: "re", Val: ast.NewLit(pos, fieldTyp, re)},
		{Name: "im", Val: ast.NewLit(pos, fieldTyp, im)},
	})
}
