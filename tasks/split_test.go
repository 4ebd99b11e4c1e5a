package tasks

import (
	"testing"

	"github.com/wavecore/corelang/ast"
)

// A barrier at the head of a bind list (standalone(emit 1); x <- emit 2)
// produces exactly one task for the barrier itself and one for the
// barrier-free remainder that runs after it: barriers(1) + 1.
func TestInsertTasksFlattensHeadBarrier(t *testing.T) {
	v1 := ast.VarID(1)
	prog := &ast.BindMany{
		Head: standalone(emit(1)),
		Rest: []ast.Binding{{Var: v1, Name: "x", C: emit(2)}},
	}
	tbl, entry, err := InsertTasks(prog)
	if err != nil {
		t.Fatalf("InsertTasks: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("got %d tasks, want 2 (1 barrier + 1)", tbl.Len())
	}
	var alone int
	for _, id := range tbl.IDs() {
		if tbl.Get(id).Placement == Alone {
			alone++
		}
	}
	if alone != 1 {
		t.Fatalf("got %d Alone-placed tasks, want exactly 1", alone)
	}
	if _, ok := entry.(*ActivateTask); !ok {
		t.Fatalf("entry comp is %T, want *ActivateTask", entry)
	}
}

func TestInsertTasksNoBarrierProducesNoTasks(t *testing.T) {
	prog := &ast.BindMany{
		Head: emit(1),
		Rest: []ast.Binding{{Var: ast.VarID(1), Name: "x", C: emit(2)}},
	}
	tbl, entry, err := InsertTasks(prog)
	if err != nil {
		t.Fatalf("InsertTasks: %v", err)
	}
	if tbl.Len() != 0 {
		t.Fatalf("got %d tasks for a barrier-free program, want 0", tbl.Len())
	}
	if _, ok := entry.(*ast.BindMany); !ok {
		t.Fatalf("entry comp is %T, want the original *ast.BindMany unchanged in shape", entry)
	}
}

// Par(read, Par(decode, write)) must flatten into 3 stages connected by 2
// fresh queues, each stage on its own task regardless of barriers.
func TestInsertTasksPipelineQueuesWellFormed(t *testing.T) {
	read := &ast.ReadSrc{Typ: ast.Int32T}
	decode := emit(1)
	write := &ast.WriteSnk{Typ: ast.Int32T}
	prog := &ast.Par{A: read, B: &ast.Par{A: decode, B: write}}

	tbl, _, err := InsertTasks(prog)
	if err != nil {
		t.Fatalf("InsertTasks: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("got %d tasks, want 3 pipeline stages", tbl.Len())
	}
	for i := 0; i < tbl.Len()-1; i++ {
		out := tbl.Get(ID(i)).OutputQueue
		in := tbl.Get(ID(i + 1)).InputQueue
		if out == 0 {
			t.Fatalf("stage %d has no output queue allocated", i)
		}
		if out != in {
			t.Fatalf("stage %d output queue %d does not match stage %d input queue %d", i, out, i+1, in)
		}
	}
}

// Standalone(Standalone(c)) must taskify identically to Standalone(c): one
// Alone-placed task, not two nested ones.
func TestInsertTasksStandaloneCollapse(t *testing.T) {
	single := standalone(emit(1))
	nested := standalone(standalone(emit(1)))

	tbl1, _, err := InsertTasks(single)
	if err != nil {
		t.Fatalf("InsertTasks(single): %v", err)
	}
	tbl2, _, err := InsertTasks(nested)
	if err != nil {
		t.Fatalf("InsertTasks(nested): %v", err)
	}
	if tbl1.Len() != tbl2.Len() {
		t.Fatalf("nested standalone produced %d tasks, single produced %d", tbl2.Len(), tbl1.Len())
	}
	if tbl2.Len() != 1 {
		t.Fatalf("got %d tasks for a single barrier, want 1", tbl2.Len())
	}
}

// read >>> standalone(cca) >>> decode >>> write: 4 pipeline stages, the
// cca stage Alone-placed, 3 queues allocated.
func TestInsertTasksBarrierSplitScenario(t *testing.T) {
	read := &ast.ReadSrc{Typ: ast.Int32T}
	cca := standalone(emit(1))
	decode := emit(2)
	write := &ast.WriteSnk{Typ: ast.Int32T}
	prog := &ast.Par{A: read, B: &ast.Par{A: cca, B: &ast.Par{A: decode, B: write}}}

	tbl, entry, err := InsertTasks(prog)
	if err != nil {
		t.Fatalf("InsertTasks: %v", err)
	}
	if tbl.Len() != 4 {
		t.Fatalf("got %d tasks, want 4", tbl.Len())
	}
	var aloneCount, queues int
	seen := map[ast.QueueID]bool{}
	for _, id := range tbl.IDs() {
		task := tbl.Get(id)
		if task.Placement == Alone {
			aloneCount++
		}
		for _, q := range []ast.QueueID{task.InputQueue, task.OutputQueue} {
			if q != 0 && !seen[q] {
				seen[q] = true
				queues++
			}
		}
	}
	if aloneCount != 1 {
		t.Fatalf("got %d Alone-placed tasks, want exactly 1 (cca)", aloneCount)
	}
	if queues != 3 {
		t.Fatalf("got %d distinct queues, want 3", queues)
	}
	cseq, ok := entry.(*ast.CSeq)
	if !ok || len(cseq.Parts) != 4 {
		t.Fatalf("entry comp is %#v, want a 4-part CSeq of activations", entry)
	}
}

// A barrier inside a loop must be rejected, not silently dropped.
func TestInsertTasksRejectsBarrierInLoop(t *testing.T) {
	loop := &ast.Loop{Kind: ast.LoopTimes, N: ast.NewLit(ast.Pos{}, ast.Int32T, int32(4)), Body: standalone(emit(1))}
	if _, _, err := InsertTasks(loop); err == nil {
		t.Fatal("expected an error for a barrier inside a Loop, got nil")
	}
}

func TestInsertTasksAllowsBarrierFreeLoop(t *testing.T) {
	loop := &ast.Loop{Kind: ast.LoopTimes, N: ast.NewLit(ast.Pos{}, ast.Int32T, int32(4)), Body: emit(1)}
	tbl, entry, err := InsertTasks(loop)
	if err != nil {
		t.Fatalf("InsertTasks: %v", err)
	}
	if tbl.Len() != 0 {
		t.Fatalf("got %d tasks for a barrier-free loop, want 0", tbl.Len())
	}
	if _, ok := entry.(*ast.Loop); !ok {
		t.Fatalf("entry comp is %T, want the original *ast.Loop unchanged", entry)
	}
}
