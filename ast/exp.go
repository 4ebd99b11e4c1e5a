package ast

// VarID is a unique identifier allocated by the front end for every
// variable binding (let, ref-let, for/while index, function parameter).
// Using an opaque id rather than a name lets two lexically-shadowed
// variables share a surface name without colliding in the evaluator's
// scopes.
type VarID int

// InlineMode annotates a Let binding with how its initialiser should be
// treated with respect to the binding site.
type InlineMode int

// Inline modes.
const (
	// AutoInline lets the evaluator decide: evaluate the initialiser at the
	// binding site, falling back to a let node if it does not reduce.
	AutoInline InlineMode = iota
	// ForceInline substitutes the initialiser into the body without
	// evaluating it at the binding site.
	ForceInline
	// NoInline forbids substitution; the initialiser is always evaluated
	// (or residualised) before the body.
	NoInline
)

// UnaryOp enumerates the unary operators of the expression language.
type UnaryOp int

// Unary operators.
const (
	UNeg UnaryOp = iota
	UNot
	UBitNot
	ULen
)

// BinaryOp enumerates the binary operators of the expression language.
type BinaryOp int

// Binary operators.
const (
	BAdd BinaryOp = iota
	BSub
	BMul
	BDiv
	BRem
	BPow
	BShl
	BShr
	BAnd
	BOr
	BXor
	BLt
	BLe
	BGt
	BGe
	BEq
	BNeq
	BLogAnd
	BLogOr
)

func (op UnaryOp) String() string {
	switch op {
	case UNeg:
		return "-"
	case UNot:
		return "not"
	case UBitNot:
		return "~"
	case ULen:
		return "length"
	default:
		return "<invalid unary op>"
	}
}

func (op BinaryOp) String() string {
	switch op {
	case BAdd:
		return "+"
	case BSub:
		return "-"
	case BMul:
		return "*"
	case BDiv:
		return "/"
	case BRem:
		return "%"
	case BPow:
		return "**"
	case BShl:
		return "<<"
	case BShr:
		return ">>"
	case BAnd:
		return "&"
	case BOr:
		return "|"
	case BXor:
		return "^"
	case BLt:
		return "<"
	case BLe:
		return "<="
	case BGt:
		return ">"
	case BGe:
		return ">="
	case BEq:
		return "=="
	case BNeq:
		return "!="
	case BLogAnd:
		return "&&"
	case BLogOr:
		return "||"
	default:
		return "<invalid binary op>"
	}
}

// Exp is implemented by every node of the scalar expression language.
type Exp interface {
	Pos() Pos
	Type() Type
}

type base struct {
	P Pos
	T Type
}

func (b base) Pos() Pos  { return b.P }
func (b base) Type() Type { return b.T }

type (
	// Lit is a scalar literal: the zero-arity leaves of the value domain
	// other than arrays and structs, carried as a pre-parsed Go value
	// whose dynamic type matches Typ.Kind().
	Lit struct {
		base
		Val any
	}

	// VarRef reads a let- or ref-let-bound variable.
	VarRef struct {
		base
		ID   VarID
		Name string
	}

	// ArrayLit constructs an array value from a list of element
	// expressions, in index order.
	ArrayLit struct {
		base
		Elts []Exp
	}

	// IndexMode selects how ArrayRead/ArrayWrite address into the base
	// array.
	IndexMode int

	// ArrayRead reads a single element, a statically-sized slice, or a
	// meta-variable-length slice out of an array.
	ArrayRead struct {
		base
		Base  Exp
		Index Exp
		// Len is the static slice length for ModeSlice; ignored otherwise.
		Len int
		// LenVar is the meta-variable slice length for ModeMetaSlice.
		LenVar string
		Mode   IndexMode
	}

	// ArrayWrite assigns into a single element or a slice of an array.
	// Kept distinct from Assign(ArrayRead(...), v) because the code
	// generator must not rewrite arr[i] := v into (arr[i]) := v.
	ArrayWrite struct {
		base
		Base  Exp
		Index Exp
		Len   int
		LenVar string
		Mode  IndexMode
		Value Exp
	}

	// FieldLit is one field of a StructLit.
	FieldLit struct {
		Name string
		Val  Exp
	}

	// StructLit constructs a nominal struct value.
	StructLit struct {
		base
		Fields []FieldLit
	}

	// FieldProj projects a field out of a struct value (or, for the two
	// special field names re/im, out of a complex value).
	FieldProj struct {
		base
		Struct Exp
		Field  string
	}

	// UnaryExp applies a unary operator.
	UnaryExp struct {
		base
		Op UnaryOp
		X  Exp
	}

	// BinaryExp applies a binary operator.
	BinaryExp struct {
		base
		Op   BinaryOp
		X, Y Exp
	}

	// Let binds X's value (or, under ForceInline, X itself) to a fresh
	// variable visible in Body.
	Let struct {
		base
		ID     VarID
		Name   string
		Inline InlineMode
		X      Exp
		Body   Exp
	}

	// RefLet binds a mutable variable. Init is nil when the variable relies
	// on its type's implicit default (only legal when Typ is fully ground,
	// per the ref-let invariant).
	RefLet struct {
		base
		ID   VarID
		Name string
		Init Exp // may be nil
		Body Exp
	}

	// Assign overwrites the storage addressed by Dest with the value of X.
	// Dest is a VarRef, FieldProj chain, or ArrayRead chain rooted at a
	// mutable variable; it is never itself an ArrayWrite (see ArrayWrite).
	Assign struct {
		base
		Dest Exp
		X    Exp
	}

	// SeqExp sequences two expressions, discarding the first's (unit)
	// result.
	SeqExp struct {
		base
		First, Second Exp
	}

	// IfExp is a conditional expression.
	IfExp struct {
		base
		Cond Exp
		Then Exp
		Else Exp // may be nil
	}

	// ForExp is a counted loop: for Var in [Start, Start+Count) do Body.
	ForExp struct {
		base
		Var        VarID
		VarName    string
		Start      Exp
		Count      Exp
		Body       Exp
		UnrollHint bool
	}

	// WhileExp loops while Cond holds.
	WhileExp struct {
		base
		Cond Exp
		Body Exp
	}

	// CallExp calls an opaque, externally-defined function (the black-box
	// primitives of the signal-processing library, or any user function
	// whose body this core does not see).
	CallExp struct {
		base
		Func string
		Args []Exp
	}

	// PrintExp writes Args to the program's diagnostic output. In partial
	// and non-deterministic mode it always residualises to preserve I/O
	// ordering in the generated program; in full mode it evaluates to unit.
	PrintExp struct {
		base
		Args    []Exp
		Newline bool
	}

	// ErrorExp aborts the program with a message.
	ErrorExp struct {
		base
		Message string
	}

	// LUTExp marks a subexpression as a candidate for lookup-table
	// extraction. The core treats it as unsupported: encountering it during
	// interpretation is a fatal "not implemented" error (the LUT extractor
	// is an external collaborator, per scope).
	LUTExp struct {
		base
		X Exp
	}
)

// Index modes for ArrayRead/ArrayWrite.
const (
	ModeSingleton IndexMode = iota
	ModeSlice
	ModeMetaSlice
)

// NewLit builds a scalar literal node.
func NewLit(pos Pos, typ Type, val any) *Lit {
	return &Lit{base: base{P: pos, T: typ}, Val: val}
}
