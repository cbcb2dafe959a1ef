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

package qe

import (
	"errors"
	"fmt"

	diel "github.com/rmera/dielectric"
)

const (
	ErrNoCell      = "No cell found in output"
	ErrNoPositions = "No atomic positions found in output"
	ErrCell        = "Malformed cell"
	ErrPositions   = "Malformed atomic positions"
	ErrDipole      = "Malformed dipole"
	ErrDirection   = "Dipole direction must be 1, 2 or 3"
)

func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.deco = append(err2.deco, caller)
	return err2
}

// Error is the general structure for errors reading pw.x outputs. It fullfills diel.Error,
// and errors.Is(err, diel.ErrReadFailure) is true for it.
type Error struct {
	message  string
	filename string //the output with problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("qe output %s error: %s", err.filename, err.message)
}

// Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even thought this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Decorated returns a copy of the error with deco added to its decorations.
func (err Error) Decorated(deco string) error {
	err.deco = append(append([]string(nil), err.deco...), deco)
	return err
}

// FileName returns the file to which the error is associated
func (err Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

// Is makes all reading errors match diel.ErrReadFailure.
func (err Error) Is(target error) bool {
	return errors.Is(diel.ErrReadFailure, target)
}
