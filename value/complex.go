package value

import "github.com/wavecore/corelang/ast"

// complexFromStructFields builds the dedicated complex variant matching
// name ("complex8", "complex16", "complex32", "complex64") from a struct
// literal's re/im fields.
func complexFromStructFields(pos ast.Pos, name string, fields map[string]Value) (Value, error) {
	re, ok := fields["re"]
	if !ok {
		return nil, errStructMissingField(name, "re")
	}
	im, ok := fields["im"]
	if !ok {
		return nil, errStructMissingField(name, "im")
	}
	switch name {
	case "complex8":
		return Complex8{P: pos, Re: int8(mustInt(re)), Im: int8(mustInt(im))}, nil
	case "complex16":
		return Complex16{P: pos, Re: int16(mustInt(re)), Im: int16(mustInt(im))}, nil
	case "complex32":
		return Complex32{P: pos, Re: int32(mustInt(re)), Im: int32(mustInt(im))}, nil
	default:
		return Complex64{P: pos, Re: int64(mustInt(re)), Im: int64(mustInt(im))}, nil
	}
}

func mustInt(v Value) int64 {
	switch vt := v.(type) {
	case Int8:
		return int64(vt.V)
	case Int16:
		return int64(vt.V)
	case Int32:
		return int64(vt.V)
	case Int64:
		return vt.V
	default:
		return 0
	}
}

// ComponentOf returns the re or im component of a complex value as a
// signed integer value of the matching width, for FieldProj(x, "re"/"im").
func ComponentOf(v Value, field string) (Value, bool) {
	switch vt := v.(type) {
	case Complex8:
		if field == "re" {
			return Int8{P: vt.P, V: vt.Re}, true
		}
		return Int8{P: vt.P, V: vt.Im}, field == "im"
	case Complex16:
		if field == "re" {
			return Int16{P: vt.P, V: vt.Re}, true
		}
		return Int16{P: vt.P, V: vt.Im}, field == "im"
	case Complex32:
		if field == "re" {
			return Int32{P: vt.P, V: vt.Re}, true
		}
		return Int32{P: vt.P, V: vt.Im}, field == "im"
	case Complex64:
		if field == "re" {
			return Int64{P: vt.P, V: vt.Re}, true
		}
		return Int64{P: vt.P, V: vt.Im}, field == "im"
	default:
		return nil, false
	}
}
