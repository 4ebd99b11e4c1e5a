package interp

import "github.com/wavecore/corelang/ast"

// substitute rewrites every free occurrence of id in e as repl. Used by
// Let's ForceInline mode, which textually substitutes its initialiser into
// its body rather than binding and evaluating it. A binding form that
// rebinds id shadows it: substitution stops at the boundary of its own
// initialiser/bound-subtree as appropriate, matching normal lexical scope.
func substitute(e ast.Exp, id ast.VarID, repl ast.Exp) ast.Exp {
	if e == nil {
		return nil
	}
	switch x := e.(type) {
	case *ast.Lit:
		return x
	case *ast.VarRef:
		if x.ID == id {
			return repl
		}
		return x
	case *ast.ArrayLit:
		return ast.NewArrayLit(x.Pos(), x.Type(), substituteList(x.Elts, id, repl))
	case *ast.ArrayRead:
		return ast.NewArrayRead(x.Pos(), x.Type(), substitute(x.Base, id, repl), substitute(x.Index, id, repl), x.Len, x.LenVar, x.Mode)
	case *ast.ArrayWrite:
		return ast.NewArrayWrite(x.Pos(), x.Type(), substitute(x.Base, id, repl), substitute(x.Index, id, repl), x.Len, x.LenVar, x.Mode, substitute(x.Value, id, repl))
	case *ast.StructLit:
		fields := make([]ast.FieldLit, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = ast.FieldLit{Name: f.Name, Val: substitute(f.Val, id, repl)}
		}
		return ast.NewStructLit(x.Pos(), x.Type(), fields)
	case *ast.FieldProj:
		return ast.NewFieldProj(x.Pos(), x.Type(), substitute(x.Struct, id, repl), x.Field)
	case *ast.UnaryExp:
		return ast.NewUnaryExp(x.Pos(), x.Type(), x.Op, substitute(x.X, id, repl))
	case *ast.BinaryExp:
		return ast.NewBinaryExp(x.Pos(), x.Type(), x.Op, substitute(x.X, id, repl), substitute(x.Y, id, repl))
	case *ast.Let:
		newX := substitute(x.X, id, repl)
		if x.ID == id {
			// The body's own binding shadows id; leave it untouched.
			return ast.NewLet(x.Pos(), x.Type(), x.ID, x.Name, x.Inline, newX, x.Body)
		}
		return ast.NewLet(x.Pos(), x.Type(), x.ID, x.Name, x.Inline, newX, substitute(x.Body, id, repl))
	case *ast.RefLet:
		var newInit ast.Exp
		if x.Init != nil {
			newInit = substitute(x.Init, id, repl)
		}
		if x.ID == id {
			return ast.NewRefLet(x.Pos(), x.Type(), x.ID, x.Name, newInit, x.Body)
		}
		return ast.NewRefLet(x.Pos(), x.Type(), x.ID, x.Name, newInit, substitute(x.Body, id, repl))
	case *ast.Assign:
		return ast.NewAssign(x.Pos(), substitute(x.Dest, id, repl), substitute(x.X, id, repl))
	case *ast.SeqExp:
		return ast.NewSeqExp(x.Pos(), x.Type(), substitute(x.First, id, repl), substitute(x.Second, id, repl))
	case *ast.IfExp:
		var els ast.Exp
		if x.Else != nil {
			els = substitute(x.Else, id, repl)
		}
		return ast.NewIfExp(x.Pos(), x.Type(), substitute(x.Cond, id, repl), substitute(x.Then, id, repl), els)
	case *ast.ForExp:
		newStart := substitute(x.Start, id, repl)
		newCount := substitute(x.Count, id, repl)
		if x.Var == id {
			return ast.NewForExp(x.Pos(), x.Var, x.VarName, newStart, newCount, x.Body, x.UnrollHint)
		}
		return ast.NewForExp(x.Pos(), x.Var, x.VarName, newStart, newCount, substitute(x.Body, id, repl), x.UnrollHint)
	case *ast.WhileExp:
		return ast.NewWhileExp(x.Pos(), substitute(x.Cond, id, repl), substitute(x.Body, id, repl))
	case *ast.CallExp:
		return ast.NewCallExp(x.Pos(), x.Type(), x.Func, substituteList(x.Args, id, repl))
	case *ast.PrintExp:
		return ast.NewPrintExp(x.Pos(), substituteList(x.Args, id, repl), x.Newline)
	case *ast.ErrorExp:
		return x
	case *ast.LUTExp:
		return x
	default:
		return x
	}
}

func substituteList(es []ast.Exp, id ast.VarID, repl ast.Exp) []ast.Exp {
	if es == nil {
		return nil
	}
	out := make([]ast.Exp, len(es))
	for i, e := range es {
		out[i] = substitute(e, id, repl)
	}
	return out
}
