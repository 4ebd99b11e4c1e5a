package value

import (
	"strings"

	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/internal/ordered"
)

// Struct is a nominal struct value: a type name plus an ordered
// (field, value) list, in declaration order.
type Struct struct {
	P        ast.Pos
	TypeName string
	typ      *ast.StructType
	fields   *ordered.Map[string, Value]
}

// NewStruct builds a struct value. If typ is one of the four nominal
// complex struct names, the constructor instead returns the dedicated
// complex variant with the matching width, per the value model's
// complex-struct special-casing.
func NewStruct(pos ast.Pos, typ *ast.StructType, fieldVals map[string]Value) (Value, error) {
	if ast.IsComplexStructName(typ.Name) {
		return complexFromStructFields(pos, typ.Name, fieldVals)
	}
	fields := ordered.NewMap[string, Value]()
	for _, f := range typ.Fields {
		v, ok := fieldVals[f.Name]
		if !ok {
			return nil, errStructMissingField(typ.Name, f.Name)
		}
		fields.Store(f.Name, v)
	}
	return &Struct{P: pos, TypeName: typ.Name, typ: typ, fields: fields}, nil
}

func (s *Struct) Kind() ast.Kind { return ast.KindStruct }
func (s *Struct) Type() ast.Type { return s.typ }
func (s *Struct) Pos() ast.Pos   { return s.P }

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString(s.TypeName)
	b.WriteString("{")
	first := true
	for name, v := range s.fields.Iter() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(v.String())
	}
	b.WriteString("}")
	return b.String()
}

// Field returns the value of field name, and whether it exists.
func (s *Struct) Field(name string) (Value, bool) {
	return s.fields.Load(name)
}

// SetField overwrites the value of field name in place.
func (s *Struct) SetField(name string, v Value) {
	s.fields.Store(name, v)
}

// Fields iterates over (name, value) pairs in declaration order.
func (s *Struct) Fields() func(func(string, Value) bool) {
	return s.fields.Iter()
}

// NumFields returns the number of fields.
func (s *Struct) NumFields() int { return s.fields.Len() }

// Clone returns an independent copy of s.
func (s *Struct) Clone() *Struct {
	out := &Struct{P: s.P, TypeName: s.TypeName, typ: s.typ, fields: ordered.NewMap[string, Value]()}
	for name, v := range s.fields.Iter() {
		out.fields.Store(name, cloneValue(v))
	}
	return out
}

func structEqual(a, b *Struct) bool {
	if a.TypeName != b.TypeName || a.NumFields() != b.NumFields() {
		return false
	}
	for name, av := range a.fields.Iter() {
		bv, ok := b.fields.Load(name)
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}
