/*
 * jumps.go, part of dielectric.
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

	"github.com/sirupsen/logrus"
)

// JumpCount holds the number of branch-cut jumps removed from each component of a Series.
type JumpCount struct {
	Total      int `json:"total"`
	Electronic int `json:"electronic"`
	Ionic      int `json:"ionic"`
}

// CorrectJumps removes the branch-cut jumps from series, a dipole time series only
// defined modulo quantum. Whenever two consecutive points differ by more than
// threshold (default |quantum|/2), the difference is taken to be round(d/quantum)
// quanta of artifact, and that many quanta are subtracted from the point and from
// every point after it.
//
// The correction runs once, from the first point to the last, and assumes real
// changes between consecutive samples are never larger than threshold. The
// first point is never changed. A difference of exactly threshold is not a jump.
// series is not modified.
func CorrectJumps(series []float64, quantum float64, threshold ...float64) ([]float64, error) {
	thr := math.Abs(quantum) / 2
	if len(threshold) > 0 {
		thr = threshold[0]
	}
	ret, _, err := unwrap(series, quantum, thr)
	if err != nil {
		return nil, errDecorate(err, "CorrectJumps")
	}
	return ret, nil
}

func unwrap(series []float64, quantum, threshold float64) ([]float64, int, error) {
	if quantum == 0 || math.IsNaN(quantum) || math.IsInf(quantum, 0) {
		return nil, 0, newError(DegenerateQuantum, fmt.Sprintf("quantum %g", quantum), "unwrap")
	}
	if len(series) < 2 {
		return nil, 0, newError(DegenerateQuantum, fmt.Sprintf("series of %d points", len(series)), "unwrap")
	}
	if !(threshold >= 0) {
		return nil, 0, newError(DegenerateQuantum, fmt.Sprintf("threshold %g", threshold), "unwrap")
	}
	ret := make([]float64, len(series))
	ret[0] = series[0]
	var offset float64
	var jumps int
	for i := 1; i < len(series); i++ {
		d := series[i] - series[i-1]
		if math.Abs(d) > threshold {
			//numpy's rounding, halves go to the even integer.
			n := math.RoundToEven(d / quantum)
			if n != 0 {
				offset += n * quantum
				jumps++
			}
		}
		ret[i] = series[i] - offset
	}
	return ret, jumps, nil
}

// Correct returns a new Series with the jumps removed from each dipole
// component, using a threshold per component. A zero threshold means |quantum|/2.
// The time axis is copied unchanged.
func (S *Series) Correct(quantum, total, electronic, ionic float64) (*Series, JumpCount, error) {
	var jc JumpCount
	thr := func(t float64) float64 {
		if t == 0 {
			return math.Abs(quantum) / 2
		}
		return t
	}
	tot, n, err := unwrap(S.Total, quantum, thr(total))
	if err != nil {
		return nil, jc, errDecorate(err, "Correct: total")
	}
	jc.Total = n
	el, n, err := unwrap(S.Electronic, quantum, thr(electronic))
	if err != nil {
		return nil, jc, errDecorate(err, "Correct: electronic")
	}
	jc.Electronic = n
	ion, n, err := unwrap(S.Ionic, quantum, thr(ionic))
	if err != nil {
		return nil, jc, errDecorate(err, "Correct: ionic")
	}
	jc.Ionic = n
	if jc != (JumpCount{}) {
		logrus.WithFields(logrus.Fields{
			"total":      jc.Total,
			"electronic": jc.Electronic,
			"ionic":      jc.Ionic,
			"quantum":    quantum,
		}).Info("Removed polarization-quantum jumps")
	}
	ret := &Series{
		Time:       append([]float64(nil), S.Time...),
		Total:      tot,
		Electronic: el,
		Ionic:      ion,
	}
	return ret, jc, nil
}
