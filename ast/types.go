// Package ast defines the two mutually recursive grammars consumed by the
// core: Exp, the scalar expression language, and Comp, the stream
// computation language. Nodes are produced by an external, already-typed
// front end (surface parser, lexer, and type checker are out of scope
// collaborators); this package only carries the shapes the evaluator and
// the task splitter walk.
package ast

import (
	"strconv"

	"github.com/wavecore/corelang/build/fmterr"
)

// Pos is the source position carried by every node, for diagnostics.
type Pos = fmterr.Pos

// Kind enumerates the scalar type tags of the value domain.
type Kind int

// Scalar and aggregate kinds.
const (
	KindUnit Kind = iota
	KindBit
	KindBool
	KindString
	KindDouble
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindComplex8
	KindComplex16
	KindComplex32
	KindComplex64
	KindArray
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBit:
		return "bit"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindDouble:
		return "double"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindComplex8:
		return "complex8"
	case KindComplex16:
		return "complex16"
	case KindComplex32:
		return "complex32"
	case KindComplex64:
		return "complex64"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	default:
		return "<invalid kind>"
	}
}

// IsInteger reports whether k is a signed or unsigned fixed-width integer.
func (k Kind) IsInteger() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
	return false
}

// IsSigned reports whether k is a signed fixed-width integer.
func (k Kind) IsSigned() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
	return false
}

// IsComplex reports whether k is one of the complex-integer widths.
func (k Kind) IsComplex() bool {
	switch k {
	case KindComplex8, KindComplex16, KindComplex32, KindComplex64:
		return true
	}
	return false
}

// BitWidth returns the width in bits of an integer or complex-integer kind,
// and 0 for kinds that have no fixed width.
func (k Kind) BitWidth() int {
	switch k {
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32:
		return 32
	case KindInt64, KindUint64:
		return 64
	case KindComplex8:
		return 8
	case KindComplex16:
		return 16
	case KindComplex32:
		return 32
	case KindComplex64:
		return 64
	default:
		return 0
	}
}

type (
	// Type is implemented by every type annotation carried on an AST node.
	Type interface {
		Kind() Kind
		String() string
	}

	// ScalarType is a unit/bit/bool/string/double/integer/complex type.
	ScalarType struct {
		K Kind
	}

	// ArrayType is a fixed-length array type, array[n] of T. LenVar is set
	// instead of Len when the length is a meta-variable (polymorphic over
	// array length) rather than a ground constant.
	ArrayType struct {
		Elem   Type
		Len    int
		LenVar string
	}

	// FieldType is one field of a nominal struct type.
	FieldType struct {
		Name string
		Type Type
	}

	// StructType is a nominal struct type: a name plus an ordered field list.
	StructType struct {
		Name   string
		Fields []FieldType
	}
)

// HasGroundLength reports whether the array's length is a known constant
// rather than a meta-variable.
func (t *ArrayType) HasGroundLength() bool { return t.LenVar == "" }

// Field looks up a field by name.
func (t *StructType) Field(name string) (FieldType, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldType{}, false
}

// IsComplexStructName reports whether name is one of the four nominal
// struct names that the value model special-cases to a dedicated complex
// variant rather than a generic two-field struct.
func IsComplexStructName(name string) bool {
	switch name {
	case "complex8", "complex16", "complex32", "complex64":
		return true
	}
	return false
}

func (t *ScalarType) Kind() Kind { return t.K }
func (t *ScalarType) String() string { return t.K.String() }

func (t *ArrayType) Kind() Kind { return KindArray }
func (t *ArrayType) String() string {
	if t.HasGroundLength() {
		return "array[" + strconv.Itoa(t.Len) + "] of " + t.Elem.String()
	}
	return "array[" + t.LenVar + "] of " + t.Elem.String()
}

func (t *StructType) Kind() Kind { return KindStruct }
func (t *StructType) String() string { return t.Name }

// Convenience constructors for the scalar types.
var (
	UnitT    Type = &ScalarType{K: KindUnit}
	BitT     Type = &ScalarType{K: KindBit}
	BoolT    Type = &ScalarType{K: KindBool}
	StringT  Type = &ScalarType{K: KindString}
	DoubleT  Type = &ScalarType{K: KindDouble}
	Int8T    Type = &ScalarType{K: KindInt8}
	Int16T   Type = &ScalarType{K: KindInt16}
	Int32T   Type = &ScalarType{K: KindInt32}
	Int64T   Type = &ScalarType{K: KindInt64}
	Uint8T   Type = &ScalarType{K: KindUint8}
	Uint16T  Type = &ScalarType{K: KindUint16}
	Uint32T  Type = &ScalarType{K: KindUint32}
	Uint64T  Type = &ScalarType{K: KindUint64}
	Complex8T  Type = &ScalarType{K: KindComplex8}
	Complex16T Type = &ScalarType{K: KindComplex16}
	Complex32T Type = &ScalarType{K: KindComplex32}
	Complex64T Type = &ScalarType{K: KindComplex64}
)
