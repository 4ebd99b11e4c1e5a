package ast

// NewVarRef builds a variable-reference node.
func NewVarRef(pos Pos, typ Type, id VarID, name string) *VarRef {
	return &VarRef{base: base{P: pos, T: typ}, ID: id, Name: name}
}

// NewArrayLit builds an array literal node.
func NewArrayLit(pos Pos, typ Type, elts []Exp) *ArrayLit {
	return &ArrayLit{base: base{P: pos, T: typ}, Elts: elts}
}

// NewStructLit builds a struct literal node.
func NewStructLit(pos Pos, typ Type, fields []FieldLit) *StructLit {
	return &StructLit{base: base{P: pos, T: typ}, Fields: fields}
}

// NewBindMany builds a BindMany enforcing invariants 1 and 2: an empty
// binding list normalises to head alone, and a head that is itself a
// BindMany is flattened into the result rather than nested.
func NewBindMany(pos Pos, head Comp, rest ...Binding) Comp {
	if len(rest) == 0 {
		return head
	}
	if inner, ok := head.(*BindMany); ok {
		flatRest := make([]Binding, 0, len(inner.Rest)+len(rest))
		flatRest = append(flatRest, inner.Rest...)
		flatRest = append(flatRest, rest...)
		return &BindMany{cbase: cbase{P: pos}, Head: inner.Head, Rest: flatRest}
	}
	return &BindMany{cbase: cbase{P: pos}, Head: head, Rest: rest}
}

// NewCSeq builds a sequential composition of parts, in order.
func NewCSeq(pos Pos, parts ...Comp) Comp {
	if len(parts) == 1 {
		return parts[0]
	}
	return &CSeq{cbase: cbase{P: pos}, Parts: parts}
}

// NewBranch builds a conditional computation. els may be nil.
func NewBranch(pos Pos, cond Exp, then, els Comp) *Branch {
	return &Branch{cbase: cbase{P: pos}, Cond: cond, Then: then, Else: els}
}

// NewExprLet builds an immutable expression-level binding visible to body.
func NewExprLet(pos Pos, id VarID, name string, x Exp, body Comp) *ExprLet {
	return &ExprLet{cbase: cbase{P: pos}, ID: id, Name: name, X: x, Body: body}
}

// NewRefLetC builds a mutable expression-level binding visible to body.
// init may be nil.
func NewRefLetC(pos Pos, id VarID, name string, init Exp, body Comp) *RefLetC {
	return &RefLetC{cbase: cbase{P: pos}, ID: id, Name: name, Init: init, Body: body}
}

// NewFuncLet builds a named function declaration visible to body.
func NewFuncLet(pos Pos, id VarID, name string, params []FuncParam, isComp bool, exprBody Exp, compBody, body Comp) *FuncLet {
	return &FuncLet{cbase: cbase{P: pos}, ID: id, Name: name, Params: params, IsComp: isComp, ExprBody: exprBody, CompBody: compBody, Body: body}
}

// NewStructTypeDecl builds a nominal struct type declaration visible to
// body.
func NewStructTypeDecl(pos Pos, decl *StructType, body Comp) *StructTypeDecl {
	return &StructTypeDecl{cbase: cbase{P: pos}, Decl: decl, Body: body}
}

// NewVectComp builds a vectorisation-width hint around body.
func NewVectComp(pos Pos, width int, body Comp) *VectComp {
	return &VectComp{cbase: cbase{P: pos}, Width: width, Body: body}
}

// CollapseStandalone strips redundant nested Standalone wrappers, keeping
// only the innermost barrier, per invariant 5.
func CollapseStandalone(c Comp) Comp {
	for {
		s, ok := c.(*Standalone)
		if !ok {
			return c
		}
		inner, ok := s.X.(*Standalone)
		if !ok {
			return s
		}
		c = inner
	}
}

// The constructors below build residual expression nodes: the evaluator
// rebuilds a node of the same shape (and the same Pos/Type as the node it
// could not fully reduce) around whatever its subexpressions did reduce to.

// NewArrayRead builds an array-read node.
func NewArrayRead(pos Pos, typ Type, base_ Exp, index Exp, length int, lenVar string, mode IndexMode) *ArrayRead {
	return &ArrayRead{base: base{P: pos, T: typ}, Base: base_, Index: index, Len: length, LenVar: lenVar, Mode: mode}
}

// NewArrayWrite builds an array-write node.
func NewArrayWrite(pos Pos, typ Type, base_ Exp, index Exp, length int, lenVar string, mode IndexMode, val Exp) *ArrayWrite {
	return &ArrayWrite{base: base{P: pos, T: typ}, Base: base_, Index: index, Len: length, LenVar: lenVar, Mode: mode, Value: val}
}

// NewFieldProj builds a field projection node.
func NewFieldProj(pos Pos, typ Type, str Exp, field string) *FieldProj {
	return &FieldProj{base: base{P: pos, T: typ}, Struct: str, Field: field}
}

// NewUnaryExp builds a unary expression node.
func NewUnaryExp(pos Pos, typ Type, op UnaryOp, x Exp) *UnaryExp {
	return &UnaryExp{base: base{P: pos, T: typ}, Op: op, X: x}
}

// NewBinaryExp builds a binary expression node.
func NewBinaryExp(pos Pos, typ Type, op BinaryOp, x, y Exp) *BinaryExp {
	return &BinaryExp{base: base{P: pos, T: typ}, Op: op, X: x, Y: y}
}

// NewLet builds a let-binding node.
func NewLet(pos Pos, typ Type, id VarID, name string, inline InlineMode, x, body Exp) *Let {
	return &Let{base: base{P: pos, T: typ}, ID: id, Name: name, Inline: inline, X: x, Body: body}
}

// NewRefLet builds a ref-let-binding node. init may be nil.
func NewRefLet(pos Pos, typ Type, id VarID, name string, init, body Exp) *RefLet {
	return &RefLet{base: base{P: pos, T: typ}, ID: id, Name: name, Init: init, Body: body}
}

// NewAssign builds an assignment node.
func NewAssign(pos Pos, dest, x Exp) *Assign {
	return &Assign{base: base{P: pos, T: UnitT}, Dest: dest, X: x}
}

// NewSeqExp builds a sequencing node.
func NewSeqExp(pos Pos, typ Type, first, second Exp) *SeqExp {
	return &SeqExp{base: base{P: pos, T: typ}, First: first, Second: second}
}

// NewIfExp builds a conditional node. els may be nil.
func NewIfExp(pos Pos, typ Type, cond, then, els Exp) *IfExp {
	return &IfExp{base: base{P: pos, T: typ}, Cond: cond, Then: then, Else: els}
}

// NewForExp builds a counted-loop node.
func NewForExp(pos Pos, varID VarID, varName string, start, count, body Exp, unrollHint bool) *ForExp {
	return &ForExp{base: base{P: pos, T: UnitT}, Var: varID, VarName: varName, Start: start, Count: count, Body: body, UnrollHint: unrollHint}
}

// NewWhileExp builds a while-loop node.
func NewWhileExp(pos Pos, cond, body Exp) *WhileExp {
	return &WhileExp{base: base{P: pos, T: UnitT}, Cond: cond, Body: body}
}

// NewCallExp builds an opaque function call node.
func NewCallExp(pos Pos, typ Type, fn string, args []Exp) *CallExp {
	return &CallExp{base: base{P: pos, T: typ}, Func: fn, Args: args}
}

// NewPrintExp builds a print node.
func NewPrintExp(pos Pos, args []Exp, newline bool) *PrintExp {
	return &PrintExp{base: base{P: pos, T: UnitT}, Args: args, Newline: newline}
}
