/*
 * segment.go, part of dielectric.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sample is the polarization state recorded at one simulation step.
// Dipoles are in atomic units (e*bohr). Total is the observable used
// for the permittivity, and it need not be exactly Electronic+Ionic.
type Sample struct {
	Step       int     //the simulation's own counter. It can repeat among restart files.
	Duration   float64 //time elapsed in this step, > 0
	Electronic float64
	Ionic      float64
	Total      float64
}

// Segment contains the samples read from one output file.
type Segment struct {
	Source  string //file name, used as the sort key when stitching
	Samples []Sample
}

// Len returns the number of samples in the segment.
func (S Segment) Len() int {
	return len(S.Samples)
}

// Last returns the last sample of the segment, and false if there is none.
func (S Segment) Last() (Sample, bool) {
	if len(S.Samples) == 0 {
		return Sample{}, false
	}
	return S.Samples[len(S.Samples)-1], true
}

// Series is the stitched polarization trajectory. All slices have the
// same length, Time[0] is 0 and Time never decreases.
// A Series is not modified after it is built: correcting it gives a new one.
type Series struct {
	Time       []float64
	Total      []float64
	Electronic []float64
	Ionic      []float64
}

// Len returns the number of points in the series.
func (S *Series) Len() int {
	return len(S.Time)
}

// Copy returns a deep copy of the series.
func (S *Series) Copy() *Series {
	return &Series{
		Time:       append([]float64(nil), S.Time...),
		Total:      append([]float64(nil), S.Total...),
		Electronic: append([]float64(nil), S.Electronic...),
		Ionic:      append([]float64(nil), S.Ionic...),
	}
}

func (S *Series) String() string {
	if S.Len() == 0 {
		return "Series{}"
	}
	l := S.Len() - 1
	return fmt.Sprintf("Series{points: %d, time: %g, total: %g, electronic: %g, ionic: %g}", S.Len(), S.Time[l], S.Total[l], S.Electronic[l], S.Ionic[l])
}

// Cell is an orthorhombic simulation cell. The rows of Vectors are the
// lattice vectors, in bohr. Nothing in this package converts units, so
// the cell, the dipoles and the field must all be in atomic units.
type Cell struct {
	Vectors *mat.Dense
}

// NewCell returns a cell with the lattice vectors a, b and c (bohr).
func NewCell(a, b, c [3]float64) *Cell {
	v := mat.NewDense(3, 3, []float64{
		a[0], a[1], a[2],
		b[0], b[1], b[2],
		c[0], c[1], c[2],
	})
	return &Cell{Vectors: v}
}

// NewOrthorhombicCell returns a cell with the given axis lengths (bohr).
func NewOrthorhombicCell(x, y, z float64) *Cell {
	return NewCell([3]float64{x, 0, 0}, [3]float64{0, y, 0}, [3]float64{0, 0, z})
}

// Volume returns the volume of the cell, in bohr^3.
func (C *Cell) Volume() float64 {
	return math.Abs(mat.Det(C.Vectors))
}

// Quantum returns the polarization quantum: the length of the third
// principal axis. Only meaningful for orthorhombic cells.
func (C *Cell) Quantum() float64 {
	return C.Vectors.At(2, 2)
}

// Positions maps element symbols to the (N x 3) coordinates of the atoms of that element.
type Positions map[string]*mat.Dense

// Count returns the number of atoms of element in P.
func (P Positions) Count(element string) int {
	m, ok := P[element]
	if !ok || m == nil {
		return 0
	}
	r, _ := m.Dims()
	return r
}

// Total returns the number of atoms in P.
func (P Positions) Total() int {
	var n int
	for k := range P {
		n += P.Count(k)
	}
	return n
}
