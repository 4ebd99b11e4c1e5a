package fmterr

import "go.uber.org/multierr"

// Appender accumulates independent errors discovered while walking a comp
// or expression tree, so that a problem found at one node does not stop the
// pass from also reporting problems found at the others.
type Appender struct {
	err error
}

// Append adds err to the accumulated set. A nil err is a no-op.
func (a *Appender) Append(err error) {
	a.err = multierr.Append(a.err, err)
}

// Appendf builds a positioned error and appends it.
func (a *Appender) Appendf(pos Pos, kind Kind, format string, args ...any) {
	a.Append(Errorf(pos, kind, format, args...))
}

// Empty reports whether no error has been appended.
func (a *Appender) Empty() bool {
	return a.err == nil
}

// ToError returns the accumulated errors as a single error, or nil if none
// were appended.
func (a *Appender) ToError() error {
	return a.err
}

// Errors returns the individual errors that were appended, in order.
func (a *Appender) Errors() []error {
	return multierr.Errors(a.err)
}
