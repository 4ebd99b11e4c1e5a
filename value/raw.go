package value

import "github.com/pkg/errors"

// AsInt64 extracts the raw numeric payload of any signed or unsigned
// fixed-width integer value as an int64, widening as needed. Used wherever
// the core needs "an integer" irrespective of its exact width: shift
// counts, array indices, and for-loop bounds.
func AsInt64(v Value) (int64, error) {
	switch vt := v.(type) {
	case Int8:
		return int64(vt.V), nil
	case Int16:
		return int64(vt.V), nil
	case Int32:
		return int64(vt.V), nil
	case Int64:
		return vt.V, nil
	case Uint8:
		return int64(vt.V), nil
	case Uint16:
		return int64(vt.V), nil
	case Uint32:
		return int64(vt.V), nil
	case Uint64:
		return int64(vt.V), nil
	default:
		return 0, errors.Errorf("%s is not an integer value", v.Kind())
	}
}

// AsBool extracts the raw payload of a bool or bit value.
func AsBool(v Value) (bool, error) {
	switch vt := v.(type) {
	case Bool:
		return vt.V, nil
	case Bit:
		return vt.V, nil
	default:
		return false, errors.Errorf("%s is not a boolean value", v.Kind())
	}
}

// AsFloat64 extracts the raw payload of a double value.
func AsFloat64(v Value) (float64, error) {
	d, ok := v.(Double)
	if !ok {
		return 0, errors.Errorf("%s is not a double value", v.Kind())
	}
	return d.V, nil
}

// IsZero reports whether v is the zero value of its own kind: for the
// algebraic-identity rewrites (x+0, x*1) the evaluator only needs to
// recognise 0 and 1 among literal operands, never to compare across kinds.
func IsZero(v Value) bool {
	switch vt := v.(type) {
	case Int8:
		return vt.V == 0
	case Int16:
		return vt.V == 0
	case Int32:
		return vt.V == 0
	case Int64:
		return vt.V == 0
	case Uint8:
		return vt.V == 0
	case Uint16:
		return vt.V == 0
	case Uint32:
		return vt.V == 0
	case Uint64:
		return vt.V == 0
	case Double:
		return vt.V == 0
	default:
		return false
	}
}

// IsOne reports whether v equals 1 in its own kind.
func IsOne(v Value) bool {
	switch vt := v.(type) {
	case Int8:
		return vt.V == 1
	case Int16:
		return vt.V == 1
	case Int32:
		return vt.V == 1
	case Int64:
		return vt.V == 1
	case Uint8:
		return vt.V == 1
	case Uint16:
		return vt.V == 1
	case Uint32:
		return vt.V == 1
	case Uint64:
		return vt.V == 1
	case Double:
		return vt.V == 1
	default:
		return false
	}
}
