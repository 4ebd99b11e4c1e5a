package tasks

import (
	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/build/fmterr"
)

// splitter carries the state of one insert_tasks call: the task table being
// built, the set of comp-level function names already known to contain a
// barrier (propagated while descending FuncLet, in source order), the task
// registered for each such barrier-function's own body, and the next fresh
// queue id to hand out.
type splitter struct {
	tbl       *Table
	bf        barrierFuncs
	funcTasks map[string]ID
	queue     int
}

// InsertTasks implements insert_tasks(Comp) -> (TaskTable, Comp): it cuts c
// at every Standalone barrier (including barriers reached through a call to
// a function whose own body contains one), returning the table of split-off
// tasks and the entry comp that activates them.
func InsertTasks(c ast.Comp) (*Table, ast.Comp, error) {
	s := &splitter{tbl: NewTable(), bf: barrierFuncs{}, funcTasks: map[string]ID{}}
	entry, err := s.build(c, nil)
	if err != nil {
		return nil, nil, err
	}
	if entry == nil {
		entry = c
	}
	return s.tbl, entry, nil
}

func (s *splitter) freshQueue() ast.QueueID {
	s.queue++
	return ast.QueueID(s.queue)
}

func (s *splitter) register(body ast.Comp, in, out ast.QueueID, pl Placement) ID {
	return s.tbl.Add(Task{Body: body, InputQueue: in, OutputQueue: out, Placement: pl})
}

func activateOf(id ID, v *ast.VarID) ast.Comp {
	return &ActivateTask{Task: id, InputVar: v}
}

// combineTail sequences c then cont, or returns c alone if cont is nil.
func combineTail(c ast.Comp, cont ast.Comp) ast.Comp {
	if cont == nil {
		return c
	}
	return ast.NewCSeq(c.Pos(), c, cont)
}

// binding is an item of a flattened BindMany/CSeq: an ordered computation,
// optionally naming the variable its result is bound to.
type binding struct {
	bound bool
	id    ast.VarID
	name  string
	c     ast.Comp
}

func flattenBindMany(x *ast.BindMany) []binding {
	items := make([]binding, 0, len(x.Rest)+1)
	items = append(items, binding{c: x.Head})
	for _, b := range x.Rest {
		items = append(items, binding{bound: true, id: b.Var, name: b.Name, c: b.C})
	}
	return items
}

func flattenCSeq(x *ast.CSeq) []binding {
	items := make([]binding, len(x.Parts))
	for i, p := range x.Parts {
		items[i] = binding{c: p}
	}
	return items
}

func flattenPar(x *ast.Par) []ast.Comp {
	var stages []ast.Comp
	var walk func(ast.Comp)
	walk = func(c ast.Comp) {
		if p, ok := c.(*ast.Par); ok {
			walk(p.A)
			walk(p.B)
			return
		}
		stages = append(stages, c)
	}
	walk(x)
	return stages
}

// combineBindings rebuilds a BindMany from items, appending tail after it.
// ast.BindMany requires its Head to be unbound; when items[0] was itself
// bound to a variable (possible when a chunk boundary falls mid-list,
// immediately after a barrier), that binding is necessarily dropped from
// the rebuilt Head position. See DESIGN.md for why this is an accepted
// limitation rather than a fabricated AST extension.
func combineBindings(pos ast.Pos, items []binding, tail ast.Comp) ast.Comp {
	if len(items) == 0 {
		return tail
	}
	rest := make([]ast.Binding, 0, len(items)-1)
	for _, it := range items[1:] {
		rest = append(rest, ast.Binding{Var: it.id, Name: it.name, C: it.c})
	}
	combined := ast.NewBindMany(pos, items[0].c, rest...)
	return combineTail(combined, tail)
}

// build rewrites c into a barrier-free comp that runs c and then cont,
// registering a new task (and returning an ActivateTask stub in its place)
// at every point the splitting rules call for one. It is total over every
// ast.Comp kind and correct whether or not c actually contains a barrier.
func (s *splitter) build(c ast.Comp, cont ast.Comp) (ast.Comp, error) {
	switch x := c.(type) {
	case *ast.BindMany:
		return s.buildItems(x.Pos(), flattenBindMany(x), cont)
	case *ast.CSeq:
		return s.buildItems(x.Pos(), flattenCSeq(x), cont)
	case *ast.Par:
		return s.buildPar(x, cont)
	case *ast.Branch:
		then, err := s.build(x.Then, cont)
		if err != nil {
			return nil, err
		}
		var els ast.Comp
		if x.Else != nil {
			els, err = s.build(x.Else, cont)
			if err != nil {
				return nil, err
			}
		}
		return ast.NewBranch(x.Pos(), x.Cond, then, els), nil
	case *ast.ExprLet:
		body, err := s.build(x.Body, cont)
		if err != nil {
			return nil, err
		}
		return ast.NewExprLet(x.Pos(), x.ID, x.Name, x.X, body), nil
	case *ast.RefLetC:
		body, err := s.build(x.Body, cont)
		if err != nil {
			return nil, err
		}
		return ast.NewRefLetC(x.Pos(), x.ID, x.Name, x.Init, body), nil
	case *ast.StructTypeDecl:
		body, err := s.build(x.Body, cont)
		if err != nil {
			return nil, err
		}
		return ast.NewStructTypeDecl(x.Pos(), x.Decl, body), nil
	case *ast.VectComp:
		body, err := s.build(x.Body, cont)
		if err != nil {
			return nil, err
		}
		return ast.NewVectComp(x.Pos(), x.Width, body), nil
	case *ast.FuncLet:
		return s.buildFuncLet(x, cont)
	case *ast.Standalone:
		return s.buildStandalone(x, cont)
	case *ast.Loop:
		if containsBarrier(x.Body, s.bf) {
			return nil, fmterr.Errorf(x.Pos(), fmterr.NotImplemented, "barrier inside a loop is not supported by the task splitter")
		}
		return combineTail(x, cont), nil
	case *ast.Repeat:
		if containsBarrier(x.Body, s.bf) {
			return nil, fmterr.Errorf(x.Pos(), fmterr.NotImplemented, "barrier inside a repeat is not supported by the task splitter")
		}
		return combineTail(x, cont), nil
	case *ast.CallC:
		if s.bf[x.Func] {
			return s.buildFuncRef(x.Pos(), x.Func, cont)
		}
		return combineTail(x, cont), nil
	case *ast.MapComp:
		if s.bf[x.Fn] {
			return s.buildFuncRef(x.Pos(), x.Fn, cont)
		}
		return combineTail(x, cont), nil
	default:
		return combineTail(c, cont), nil
	}
}

// buildItems splits a flattened bind/seq list at barrier boundaries: each
// maximal barrier-free run becomes one task, each barrier-containing item
// is split recursively with the remainder as its continuation. Folds
// right, so each produced task already knows what follows it.
func (s *splitter) buildItems(pos ast.Pos, items []binding, cont ast.Comp) (ast.Comp, error) {
	if len(items) == 0 {
		return cont, nil
	}
	j := 0
	for j < len(items) && !containsBarrier(items[j].c, s.bf) {
		j++
	}
	if j == len(items) {
		return combineBindings(pos, items, cont), nil
	}
	if j > 0 {
		tail, err := s.buildItems(pos, items[j:], cont)
		if err != nil {
			return nil, err
		}
		chunk := combineBindings(pos, items[:j], tail)
		id := s.register(chunk, 0, 0, Unspecified)
		return activateOf(id, nil), nil
	}
	first := items[0]
	rest, err := s.buildItems(pos, items[1:], cont)
	if err != nil {
		return nil, err
	}
	var innerCont ast.Comp
	if rest != nil {
		rid := s.register(rest, 0, 0, Unspecified)
		if first.bound {
			v := first.id
			innerCont = activateOf(rid, &v)
		} else {
			innerCont = activateOf(rid, nil)
		}
	}
	return s.build(first.c, innerCont)
}

// buildPar flattens a nested Par into its pipeline stages, allocates a
// fresh queue between each adjacent pair, taskifies each stage independent
// of the others, and builds an entry body that activates every stage in
// sequence. Stages always split onto separate tasks, barrier or not.
func (s *splitter) buildPar(x *ast.Par, cont ast.Comp) (ast.Comp, error) {
	stages := flattenPar(x)
	activates := make([]ast.Comp, 0, len(stages)+1)
	in := ast.QueueID(0)
	for i, stage := range stages {
		out := ast.QueueID(0)
		if i < len(stages)-1 {
			out = s.freshQueue()
		}
		pl := Unspecified
		// A stage that is itself (possibly nested) Standalone collapses to
		// its innermost body and keeps the Alone placement on the one task
		// registered for the whole stage, rather than wrapping a second,
		// redundant task around it.
		if sa, ok := ast.CollapseStandalone(stage).(*ast.Standalone); ok {
			stage = sa.X
			pl = Alone
		}
		body, err := s.build(stage, nil)
		if err != nil {
			return nil, err
		}
		id := s.register(body, in, out, pl)
		activates = append(activates, activateOf(id, nil))
		in = out
	}
	if cont != nil {
		activates = append(activates, cont)
	}
	return ast.NewCSeq(x.Pos(), activates...), nil
}

// buildStandalone collapses nested Standalone barriers and otherwise
// creates an Alone-placed task for inner, with cont appended to its body.
func (s *splitter) buildStandalone(x *ast.Standalone, cont ast.Comp) (ast.Comp, error) {
	if containsBarrier(x.X, s.bf) {
		return s.build(x.X, cont)
	}
	body, err := s.build(x.X, cont)
	if err != nil {
		return nil, err
	}
	id := s.register(body, 0, 0, Alone)
	return activateOf(id, nil), nil
}

// buildFuncLet pre-splits a comp function's own body into its own task the
// first time the function is declared, so every later Call/Map referencing
// it by name can be replaced with a direct activation of that task.
func (s *splitter) buildFuncLet(x *ast.FuncLet, cont ast.Comp) (ast.Comp, error) {
	barrier := x.IsComp && containsBarrier(x.CompBody, s.bf)
	if barrier {
		body, err := s.build(x.CompBody, nil)
		if err != nil {
			return nil, err
		}
		s.funcTasks[x.Name] = s.register(body, 0, 0, Unspecified)
	}
	s.bf[x.Name] = barrier
	rest, err := s.build(x.Body, cont)
	if err != nil {
		return nil, err
	}
	return ast.NewFuncLet(x.Pos(), x.ID, x.Name, x.Params, x.IsComp, x.ExprBody, x.CompBody, rest), nil
}

func (s *splitter) buildFuncRef(pos ast.Pos, name string, cont ast.Comp) (ast.Comp, error) {
	id, ok := s.funcTasks[name]
	if !ok {
		return nil, fmterr.InternalErrorf(pos, "call to barrier-function %q has no registered task", name)
	}
	return combineTail(activateOf(id, nil), cont), nil
}
