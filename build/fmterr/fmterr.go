// Package fmterr formats and accumulates errors produced while interpreting
// or splitting a typed AST. Every error optionally carries the source
// position of the node that triggered it, plus a kind tag describing which
// of the error categories from the error handling design it belongs to.
package fmterr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Pos is a source position attached to an AST node. The surface parser is an
// external collaborator; this core only ever receives positions that have
// already been resolved onto the typed AST, so Pos carries no file-set of
// its own.
type Pos struct {
	File string
	Line int
	Col  int
}

// IsSet reports whether the position carries real location information.
func (p Pos) IsSet() bool {
	return p.File != "" || p.Line != 0 || p.Col != 0
}

// String renders the position the way compiler diagnostics expect it.
func (p Pos) String() string {
	if !p.IsSet() {
		return "<unknown>"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Source is implemented by every AST node so errors can be positioned.
type Source interface {
	Pos() Pos
}

// Kind classifies an error into one of the categories of the error handling
// design: a free variable reached in full evaluation, an out-of-bounds
// array access, an operator type mismatch (a compiler bug further upstream),
// a construct the core deliberately does not implement, or an internal
// invariant violation.
type Kind int

// Error kinds.
const (
	Unclassified Kind = iota
	FreeVariable
	OutOfBounds
	TypeMismatch
	NotImplemented
	Internal
)

func (k Kind) String() string {
	switch k {
	case FreeVariable:
		return "free variable"
	case OutOfBounds:
		return "out of bounds"
	case TypeMismatch:
		return "type mismatch"
	case NotImplemented:
		return "not implemented"
	case Internal:
		return "internal error"
	default:
		return "error"
	}
}

type withPos struct {
	pos  Pos
	kind Kind
	err  error
}

// WithPos is implemented by errors built from this package.
type WithPos interface {
	error
	Pos() Pos
	Kind() Kind
}

// At attaches a position and a kind to err. If err already carries a
// position it is wrapped, not replaced: Error() prints the outer position
// followed by the inner error's own text, and Pos reports the outer one.
func At(pos Pos, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return withPos{pos: pos, kind: kind, err: err}
}

// Errorf builds a new error positioned at pos and classified as kind.
func Errorf(pos Pos, kind Kind, format string, a ...any) error {
	return At(pos, kind, errors.Errorf(format, a...))
}

// InternalErrorf builds an internal-error diagnostic: the core could not
// establish an invariant that the type checker should already guarantee.
func InternalErrorf(pos Pos, format string, a ...any) error {
	return Errorf(pos, Internal, "internal error (please report this as a bug): "+format, a...)
}

func (e withPos) Error() string {
	if !e.pos.IsSet() {
		return e.err.Error()
	}
	return e.pos.String() + ": " + e.err.Error()
}

func (e withPos) Unwrap() error { return e.err }

func (e withPos) Pos() Pos { return e.pos }

func (e withPos) Kind() Kind {
	if e.kind != Unclassified {
		return e.kind
	}
	var inner WithPos
	if errors.As(e.err, &inner) {
		return inner.Kind()
	}
	return Unclassified
}

// KindOf returns the kind classification attached to err, or Unclassified
// if none of the errors in its chain were built through this package.
func KindOf(err error) Kind {
	var wp WithPos
	if errors.As(err, &wp) {
		return wp.Kind()
	}
	return Unclassified
}

// Format implements fmt.Formatter so that "%+v" also prints the wrapped
// stack trace captured by github.com/pkg/errors.
func (e withPos) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s\n%+v", e.pos.String(), e.err)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
