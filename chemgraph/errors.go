package chemgraph

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the kind of the errors returned when the data given to build
// or query a graph is not consistent.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotSeparating is the kind of the errors returned when cutting one or two
// pairs does not split the graph in the requested way.
var ErrNotSeparating = errors.New("not separating")

// Error is the error type of this package. It can be decorated with the
// names of the functions it goes through, and it unwraps to its kind
// (ErrInvalidInput or ErrNotSeparating) so errors.Is can be used on it.
type Error struct {
	message string
	deco    []string
	kind    error
}

func newError(msg string, kind error, caller string) *Error {
	return &Error{message: msg, kind: kind, deco: []string{caller}}
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	return fmt.Sprintf("chemgraph: %s: %s", err.kind, err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice. An empty string adds nothing.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *Error) Unwrap() error { return err.kind }

// errDecorate decorates err with the caller's name if it is an *Error,
// and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
	}
	return err
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrIndexOutOfRange = PanicMsg("chemgraph: node or pair index out of range")
)
