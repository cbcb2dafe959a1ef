/*
 * errors.go, part of dielectric.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package dielectric

import (
	"fmt"
	"strings"
)

// Kind classifies the failures of a dielectric calculation.
type Kind int

const (
	EmptyInput            Kind = iota + 1 //a required segment has no samples
	DegenerateQuantum                     //jump correction with a zero quantum or a too short series
	MissingClampedSegment                 //high-frequency quantity requested without a clamped-ion segment
	ZeroInclusionFraction                 //polarizability requested with no inclusion atoms
	InconsistentSegment                   //non-monotonic steps or non-positive durations
	InvalidParameter                      //non-positive volume, zero field
	ReadFailure                           //a file could not be opened or parsed
	WriteFailure                          //an output could not be written
)

func (K Kind) String() string {
	switch K {
	case EmptyInput:
		return "empty input"
	case DegenerateQuantum:
		return "degenerate polarization quantum"
	case MissingClampedSegment:
		return "missing clamped-ion segment"
	case ZeroInclusionFraction:
		return "zero inclusion fraction"
	case InconsistentSegment:
		return "inconsistent segment"
	case InvalidParameter:
		return "invalid parameter"
	case ReadFailure:
		return "read failure"
	case WriteFailure:
		return "write failure"
	}
	return "unknown error"
}

// Sentinels for errors.Is. Only the kind is compared.
var (
	ErrEmptyInput            = CalcError{kind: EmptyInput}
	ErrDegenerateQuantum     = CalcError{kind: DegenerateQuantum}
	ErrMissingClampedSegment = CalcError{kind: MissingClampedSegment}
	ErrZeroInclusionFraction = CalcError{kind: ZeroInclusionFraction}
	ErrInconsistentSegment   = CalcError{kind: InconsistentSegment}
	ErrInvalidParameter      = CalcError{kind: InvalidParameter}
	ErrReadFailure           = CalcError{kind: ReadFailure}
	ErrWriteFailure          = CalcError{kind: WriteFailure}
)

// CalcError is the general structure for the errors returned by this package.
// It fullfills the Error interface and works with errors.Is.
type CalcError struct {
	kind     Kind
	message  string
	deco     []string
	critical bool
}

func newError(kind Kind, message string, caller string) CalcError {
	return CalcError{kind: kind, message: message, deco: []string{caller}, critical: true}
}

func (err CalcError) Error() string {
	if err.message == "" {
		return "dielectric: " + err.kind.String()
	}
	return fmt.Sprintf("dielectric: %s: %s", err.kind, err.message)
}

// Kind returns the kind of the error.
func (err CalcError) Kind() Kind { return err.kind }

// Decorate Adds new information to the error
func (err CalcError) Decorate(deco string) []string {
	//Even thought this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Trace returns the decorations joined, innermost first.
func (err CalcError) Trace() string {
	return strings.Join(err.deco, " <- ")
}

// Critical returns true if the error is critical, false otherwise.
// All the errors in this package are.
func (err CalcError) Critical() bool { return err.critical }

// Is reports whether target is a CalcError of the same kind.
func (err CalcError) Is(target error) bool {
	t, ok := target.(CalcError)
	if !ok {
		return false
	}
	return t.kind == err.kind
}

// errDecorate adds caller to err if err implements the Error interface, and returns err.
// Errors from other packages that are passed by value must implement Decorated,
// which returns a copy with the decoration added, or the decoration is lost.
func errDecorate(err error, caller string) error {
	switch e := err.(type) {
	case CalcError:
		e.deco = append(e.deco, caller)
		return e
	case interface{ Decorated(string) error }:
		return e.Decorated(caller)
	case interface{ Decorate(string) []string }:
		e.Decorate(caller)
	}
	return err
}
