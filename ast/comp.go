package ast

// QueueID identifies an inter-task queue. The task splitter allocates
// these; ReadSrc/WriteSnk use the zero value (external I/O, not a queue).
type QueueID int

// PipelineHint is the hint attached to Par describing how eagerly the two
// sides should be scheduled as concurrent pipeline stages.
type PipelineHint int

// Pipelining hints.
const (
	PipeAlways PipelineHint = iota
	PipeNever
	PipeMaybe
)

// EmptyQueuePolicy tags a ReadInternal endpoint with what a consumer does
// when its input queue is empty. SpinOnEmpty blocks until data arrives;
// JumpToConsumeOnEmpty yields control back to the scheduler instead, which
// the main entry task must do so it cannot deadlock against a standalone
// producer that has not run yet.
type EmptyQueuePolicy int

// Empty-queue policies.
const (
	SpinOnEmpty EmptyQueuePolicy = iota
	JumpToConsumeOnEmpty
)

// LoopKind distinguishes the three Ziria-style bounded/unbounded loop
// combinators that lift a computer into a transformer.
type LoopKind int

// Loop kinds.
const (
	LoopUntil LoopKind = iota
	LoopWhile
	LoopTimes
)

// Comp is implemented by every node of the stream computation language.
type Comp interface {
	Pos() Pos
}

type cbase struct {
	P Pos
}

func (b cbase) Pos() Pos { return b.P }

// Binding is one arm of a BindMany: `x <- c`.
type Binding struct {
	Var  VarID
	Name string
	C    Comp
}

type (
	// CompRef refers to a comp-level binding (a named sub-computation).
	CompRef struct {
		cbase
		ID   VarID
		Name string
	}

	// BindMany is the n-ary monadic bind `x1 <- c1; ...; xn <- cn`. Head is
	// the first computation (its result is discarded, not bound to a
	// variable); Rest holds the bound continuations. Per the AST
	// invariants, Rest is never empty (an empty bind is normalised away to
	// Head) and Head is never itself a BindMany (nested binds are
	// flattened).
	BindMany struct {
		cbase
		Head Comp
		Rest []Binding
	}

	// CSeq sequentially composes computations, running each to completion
	// before the next.
	CSeq struct {
		cbase
		Parts []Comp
	}

	// Par pipelines A into B: A's output stream feeds B's input stream.
	// A and B run as separate, concurrently-scheduled stages regardless of
	// Standalone annotations.
	Par struct {
		cbase
		A, B       Comp
		Hint       PipelineHint
		BurstA     int
		BurstB     int
	}

	// ExprLet binds an immutable expression-level value visible to the
	// comp body.
	ExprLet struct {
		cbase
		ID   VarID
		Name string
		X    Exp
		Body Comp
	}

	// RefLetC binds a mutable expression-level variable visible to the
	// comp body.
	RefLetC struct {
		cbase
		ID   VarID
		Name string
		Init Exp // may be nil
		Body Comp
	}

	// FuncParam is one parameter of a FuncLet.
	FuncParam struct {
		Name string
		Type Type
	}

	// FuncLet defines a named function, either an expression function
	// (IsComp == false, body is an Exp wrapped in ExprBody) or a comp
	// function (IsComp == true, body is a Comp wrapped in CompBody), and
	// makes it visible in Body.
	FuncLet struct {
		cbase
		ID       VarID
		Name     string
		Params   []FuncParam
		IsComp   bool
		ExprBody Exp
		CompBody Comp
		Body     Comp
	}

	// StructTypeDecl declares a nominal struct type visible in Body.
	StructTypeDecl struct {
		cbase
		Decl *StructType
		Body Comp
	}

	// CallC calls a named comp-level function with expression arguments.
	CallC struct {
		cbase
		Func string
		Args []Exp
	}

	// Emit writes a single value downstream.
	Emit struct {
		cbase
		X Exp
	}

	// Emits writes every element of an array downstream, one at a time.
	Emits struct {
		cbase
		X Exp
	}

	// ReturnC ends a computer with a result value.
	ReturnC struct {
		cbase
		X Exp
	}

	// Take reads a single value from upstream.
	Take struct {
		cbase
		Typ Type
	}

	// Takes reads N values from upstream into an array.
	Takes struct {
		cbase
		N   int
		Typ Type
	}

	// Branch runs Then or Else depending on Cond.
	Branch struct {
		cbase
		Cond Exp
		Then Comp
		Else Comp
	}

	// Loop lifts Body, a computer, into a transformer per Kind:
	// Until loops while !Cond (checked after each iteration), While loops
	// while Cond (checked before each iteration), Times loops exactly N
	// times.
	Loop struct {
		cbase
		Kind LoopKind
		Cond Exp  // for LoopUntil/LoopWhile
		N    Exp  // for LoopTimes
		Body Comp
	}

	// Repeat lifts a computer into a transformer that restarts Body every
	// time it returns.
	Repeat struct {
		cbase
		Body Comp
	}

	// VectComp annotates Body with a vectorisation width hint for the code
	// generator; it is transparent to the splitter and the evaluator.
	VectComp struct {
		cbase
		Width int
		Body  Comp
	}

	// MapComp applies a named expression function, Fn, to every element of
	// the input stream. A barrier iff Fn's body itself contains one (the
	// task splitter tracks this while descending FuncLet).
	MapComp struct {
		cbase
		Fn string
	}

	// FilterComp drops elements of the input stream for which Fn returns
	// false. Stateless: never a barrier.
	FilterComp struct {
		cbase
		Fn string
	}

	// ReadSrc is an I/O source endpoint.
	ReadSrc struct {
		cbase
		Typ Type
	}

	// WriteSnk is an I/O sink endpoint.
	WriteSnk struct {
		cbase
		Typ Type
	}

	// ReadInternal reads from an inter-task queue created by the splitter.
	ReadInternal struct {
		cbase
		Queue  QueueID
		Typ    Type
		Policy EmptyQueuePolicy
	}

	// WriteInternal writes to an inter-task queue created by the splitter.
	// Blocks on full, per the queue discipline.
	WriteInternal struct {
		cbase
		Queue QueueID
		Typ   Type
	}

	// Standalone marks a barrier: the task splitter cuts the comp tree
	// here. Nested Standalone nodes collapse; only the innermost defines
	// the barrier.
	Standalone struct {
		cbase
		X Comp
	}

	// Mitigate rate-matches between array[m]T and array[n]T streams, where
	// one of m, n divides the other.
	Mitigate struct {
		cbase
		Elem Type
		M, N int
	}
)
