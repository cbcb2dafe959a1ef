/*
 * jumps_test.go, part of dielectric.
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
)

func TestCorrectJumpsSmooth(Te *testing.T) {
	s := make([]float64, 30)
	for i := range s {
		s[i] = 2 * math.Sin(float64(i)/5)
	}
	got, err := CorrectJumps(s, 10)
	require.NoError(Te, err)
	assert.Equal(Te, s, got)
}

func TestCorrectJumpsUnwraps(Te *testing.T) {
	q := 10.0
	wraps := []int{2, 2, 3, 3, 1, 1, 1, -1, 0, 0, 4, 4, 4, 3, 2, 2, 2, 2, 5, 5}
	truth := make([]float64, len(wraps))
	wrapped := make([]float64, len(wraps))
	for i, w := range wraps {
		truth[i] = 0.1 * float64(i)
		wrapped[i] = truth[i] + q*float64(w)
	}
	orig := append([]float64(nil), wrapped...)
	got, err := CorrectJumps(wrapped, q)
	require.NoError(Te, err)
	assert.Equal(Te, orig, wrapped, "input modified")
	assert.Equal(Te, wrapped[0], got[0])
	for i := range got {
		//recovered up to the offset of the first point
		assert.InDelta(Te, truth[i]+q*float64(wraps[0]), got[i], 1e-9, "point %d", i)
	}
	//no jumps left
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(Te, math.Abs(got[i]-got[i-1]), q/2)
	}
}

func TestCorrectJumpsThreshold(Te *testing.T) {
	//exactly half a quantum is not a jump
	got, err := CorrectJumps([]float64{0, 5}, 10)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{0, 5}, got)

	got, err = CorrectJumps([]float64{0, 5.5}, 10)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0, -4.5}, got, 1e-12)

	//explicit threshold
	got, err = CorrectJumps([]float64{0, 3, 6}, 10, 2)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{0, 3, 6}, got, "a difference under half a quantum rounds to no quanta")
	got, err = CorrectJumps([]float64{0, 8, 8.5}, 10, 2)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0, -2, -1.5}, got, 1e-12)

	//a negative quantum works the same
	got, err = CorrectJumps([]float64{0, 10.1, 10.2}, -10)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0, 0.1, 0.2}, got, 1e-12)
}

func TestCorrectJumpsCumulative(Te *testing.T) {
	//one jump, after which the series continues smoothly. Only one correction.
	got, err := CorrectJumps([]float64{0, 10.1, 10.2, 10.3}, 10)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0, 0.1, 0.2, 0.3}, got, 1e-12)

	//two quanta at once
	got, err = CorrectJumps([]float64{1, 21.1, 21.2, 1.3}, 10)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{1, 1.1, 1.2, 1.3}, got, 1e-12)
}

func TestCorrectJumpsErrors(Te *testing.T) {
	for _, q := range []float64{0, math.NaN(), math.Inf(1)} {
		_, err := CorrectJumps([]float64{0, 1, 2}, q)
		assert.True(Te, errors.Is(err, ErrDegenerateQuantum), "quantum %g", q)
	}
	_, err := CorrectJumps([]float64{1}, 10)
	assert.True(Te, errors.Is(err, ErrDegenerateQuantum))
	_, err = CorrectJumps(nil, 10)
	assert.True(Te, errors.Is(err, ErrDegenerateQuantum))
	_, err = CorrectJumps([]float64{0, 1}, 10, -1)
	assert.True(Te, errors.Is(err, ErrDegenerateQuantum))
}

func TestSeriesCorrect(Te *testing.T) {
	S := &Series{
		Time:       []float64{0, 1, 2, 3},
		Total:      []float64{0, 0.1, 10.2, 10.3},
		Electronic: []float64{0, 0.05, 6, 6.05},
		Ionic:      []float64{0, 0.05, 4.2, 4.25},
	}
	orig := S.Copy()
	//a 7 a.u. electronic threshold leaves its 6 a.u. step alone. The ionic
	//4.15 step is under the default of half a quantum.
	C, jc, err := S.Correct(10, 0, 7, 0)
	require.NoError(Te, err)
	assert.Equal(Te, orig, S, "input modified")
	assert.Equal(Te, JumpCount{Total: 1}, jc)
	assert.InDeltaSlice(Te, []float64{0, 0.1, 0.2, 0.3}, C.Total, 1e-12)
	assert.Equal(Te, S.Electronic, C.Electronic)
	assert.Equal(Te, S.Ionic, C.Ionic)
	assert.Equal(Te, S.Time, C.Time)

	//with a low electronic threshold the step is taken as a (rounded) jump
	C, jc, err = S.Correct(10, 0, 5.5, 0)
	require.NoError(Te, err)
	assert.Equal(Te, 1, jc.Electronic)
	assert.InDelta(Te, -4, C.Electronic[2], 1e-12)

	_, _, err = S.Correct(0, 0, 0, 0)
	assert.True(Te, errors.Is(err, ErrDegenerateQuantum))
}
