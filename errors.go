/*
 * errors.go, part of Molmodsummer.
 *
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chem

import (
	"fmt"

	"github.com/pengfeili1/Molmodsummer/chemgraph"
)

var (
	//ErrInvalidInput is the kind of the errors caused by inconsistent data given to
	//a constructor or a parser.
	ErrInvalidInput = chemgraph.ErrInvalidInput
	//ErrNotSeparating is the kind of the errors returned when cutting bonds doesn't split a
	//molecular graph as requested.
	ErrNotSeparating = chemgraph.ErrNotSeparating
)

// CError is the error type of the package. It unwraps to its kind,
// so errors.Is(err, ErrInvalidInput) works.
type CError struct {
	msg  string
	deco []string
	kind error
}

func newCError(msg string, kind error, caller string) *CError {
	return &CError{msg: msg, kind: kind, deco: []string{caller}}
}

// Error returns a string with an error message.
func (err *CError) Error() string {
	return fmt.Sprintf("%s: %s", err.kind, err.msg)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *CError) Unwrap() error { return err.kind }

// errDecorate is a helper function that decorates the error with the caller's name before returning it,
// if the error implements Error. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
	}
	return err
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNoBondLengths  = PanicMsg("chem: the molecular graph has no bond lengths")
	ErrBadCriterion   = PanicMsg("chem: AtomCriteria takes only nil, int or atom criteria")
	ErrBadRingSize    = PanicMsg("chem: rings must have at least 3 atoms")
	ErrAtomOutOfRange = PanicMsg("chem: atom index out of range")
)
