// Package tasks splits a stream computation into a table of tasks that
// communicate through single-producer/single-consumer queues, cutting the
// comp tree at every Standalone barrier. See InsertTasks in split.go for
// the entry point.
package tasks

import "github.com/wavecore/corelang/ast"

// ID identifies one entry of a Table.
type ID int

// Placement constrains where the scheduler may run a task relative to its
// neighbours.
type Placement int

// Placement choices. Alone forces its own thread of control (the body
// contains blocking I/O or was marked Standalone for scheduling reasons
// beyond pure data dependency); Shared allows the scheduler to fold the
// task into a neighbour's thread when the queue discipline permits it;
// Unspecified leaves the choice to the scheduler's own heuristics.
const (
	Unspecified Placement = iota
	Alone
	Shared
)

// Task is one entry of a Table: a comp body, free of any Standalone node,
// plus the queues it reads from and writes to. InputQueue/OutputQueue are
// the zero ast.QueueID when the task's end is external I/O rather than an
// inter-task queue.
type Task struct {
	Body        ast.Comp
	InputQueue  ast.QueueID
	OutputQueue ast.QueueID
	Placement   Placement
}

// Table collects the tasks produced by splitting a program, indexed by ID
// in the order they were registered.
type Table struct {
	tasks []Task
}

// NewTable returns an empty task table.
func NewTable() *Table {
	return &Table{}
}

// Add registers t and returns its ID.
func (tb *Table) Add(t Task) ID {
	tb.tasks = append(tb.tasks, t)
	return ID(len(tb.tasks) - 1)
}

// Get returns the task registered under id.
func (tb *Table) Get(id ID) Task {
	return tb.tasks[id]
}

// Len returns the number of registered tasks.
func (tb *Table) Len() int {
	return len(tb.tasks)
}

// IDs returns every registered task ID, in registration order.
func (tb *Table) IDs() []ID {
	ids := make([]ID, len(tb.tasks))
	for i := range tb.tasks {
		ids[i] = ID(i)
	}
	return ids
}

// ActivateTask replaces a barrier in a task's body: running it hands a
// single input value (read off InputVar, if set) to the task identified by
// Task and waits for the scheduler to run it to completion. It is a
// splitter output construct, not part of the source grammar, so it lives
// here rather than in package ast.
type ActivateTask struct {
	P        ast.Pos
	Task     ID
	InputVar *ast.VarID
}

// Pos implements ast.Comp.
func (a *ActivateTask) Pos() ast.Pos { return a.P }
