/*
 * calc_test.go, part of dielectric.
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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// testInput returns a calculation input in a 10x10x10 bohr cell
// (quantum 10) where the relaxed total dipole jumps by one quantum between
// the two restart files, and ends 0.005 a.u. above the zero-field value.
func testInput() Input {
	zero := mkSegment("zero.out", 1, []int{1, 2}, []float64{0.9, 1})
	clamped := mkSegment("clamped.out", 1, []int{1, 2, 3}, []float64{1.001, 1.002, 1.002})
	r1 := mkSegment("relax1.out", 1, []int{1, 2, 3}, []float64{1.001, 1.002, 1.003})
	//restart at step 3, after a branch-cut jump
	r2 := mkSegment("relax2.out", 1, []int{3, 4, 5}, []float64{11.003, 11.004, 11.005})
	return Input{
		ZeroField: zero,
		Clamped:   &clamped,
		Relaxed:   []Segment{r2, r1},
		Cell:      NewOrthorhombicCell(10, 10, 10),
		Positions: Positions{
			"Ag": mat.NewDense(1, 3, nil),
			"O":  mat.NewDense(3, 3, nil),
		},
	}
}

func TestCalculate(Te *testing.T) {
	cfg := DefaultRunConfig()
	cfg.HighFrequency = true
	cfg.ElectronicThreshold = 0
	R, err := Calculate(testInput(), cfg)
	require.NoError(Te, err)

	assert.InDelta(Te, 1000, R.Volume, 1e-9)
	assert.Equal(Te, 10.0, R.Quantum)
	assert.Equal(Te, 0.25, R.InclusionFraction)
	//zero, 3 clamped, 5 relaxed steps
	assert.Equal(Te, 9, R.Raw.Len())
	assert.Equal(Te, 9, R.Corrected.Len())
	assert.Equal(Te, 1, R.Jumps.Total)
	assert.InDelta(Te, 10.005, R.Raw.Total[8], 1e-9)
	assert.InDelta(Te, 0.005, R.Corrected.Total[8], 1e-9)

	epsR := 1 + 4*math.Pi*0.005/1000/0.001
	epsInf := 1 + 4*math.Pi*0.002/1000/0.001
	assert.InDelta(Te, epsR, R.EpsR, 1e-6)
	assert.InDelta(Te, epsInf, R.EpsInf, 1e-6)
	assert.InDelta(Te, (epsR-DefaultEpsBulk)/(4*math.Pi*0.25), R.AlphaR, 1e-6)
	assert.InDelta(Te, (epsInf-DefaultEpsInfBulk)/(4*math.Pi*0.25), R.AlphaInf, 1e-6)
	assert.True(Te, R.HasEpsInf)
	assert.True(Te, R.HasAlpha)
	assert.True(Te, R.HasAlphaInf)
}

func TestCalculateOptional(Te *testing.T) {
	in := testInput()
	in.Clamped = nil
	cfg := DefaultRunConfig()
	cfg.ComputeAlpha = false
	R, err := Calculate(in, cfg)
	require.NoError(Te, err)
	assert.False(Te, R.HasEpsInf)
	assert.False(Te, R.HasAlpha)
	assert.False(Te, R.HasAlphaInf)
	assert.Equal(Te, 6, R.Raw.Len())

	//alpha without eps_inf
	cfg.ComputeAlpha = true
	in.Fraction = 0.5
	R, err = Calculate(in, cfg)
	require.NoError(Te, err)
	assert.True(Te, R.HasAlpha)
	assert.False(Te, R.HasAlphaInf)
	assert.Equal(Te, 0.5, R.InclusionFraction)
}

func TestCalculateSequential(Te *testing.T) {
	in := testInput()
	in.Clamped = nil
	cfg := DefaultRunConfig()
	cfg.Dedup = false
	R, err := Calculate(in, cfg)
	require.NoError(Te, err)
	//nothing merged: zero plus both files
	assert.Equal(Te, 7, R.Raw.Len())
	for i := 1; i < R.Raw.Len(); i++ {
		assert.Greater(Te, R.Raw.Time[i], R.Raw.Time[i-1])
	}
}

func TestCalculateErrors(Te *testing.T) {
	cfg := DefaultRunConfig()
	cfg.HighFrequency = true
	in := testInput()
	in.Clamped = nil
	R, err := Calculate(in, cfg)
	assert.Nil(Te, R)
	assert.True(Te, errors.Is(err, ErrMissingClampedSegment))

	cfg = DefaultRunConfig()
	cfg.InclusionElement = "Au"
	R, err = Calculate(testInput(), cfg)
	assert.Nil(Te, R)
	assert.True(Te, errors.Is(err, ErrZeroInclusionFraction))

	cfg = DefaultRunConfig()
	in = testInput()
	in.Cell = nil
	_, err = Calculate(in, cfg)
	assert.True(Te, errors.Is(err, ErrInvalidParameter))

	in = testInput()
	in.ZeroField = Segment{Source: "zero.out"}
	_, err = Calculate(in, cfg)
	assert.True(Te, errors.Is(err, ErrEmptyInput))

	cfg.Field = 0
	_, err = Calculate(testInput(), cfg)
	assert.True(Te, errors.Is(err, ErrInvalidParameter))

	var e CalcError
	require.True(Te, errors.As(err, &e))
	assert.Equal(Te, InvalidParameter, e.Kind())
	assert.Contains(Te, e.Trace(), "Calculate")
}
