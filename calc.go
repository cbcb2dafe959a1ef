/*
 * calc.go, part of dielectric.
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

	"github.com/sirupsen/logrus"
)

// Input contains everything a calculation reads. Clamped is nil if there
// was no clamped-ion run. Positions are the final atomic positions, and are
// only needed for the polarizabilities. If Fraction is not zero, it is used as
// the inclusion fraction and Positions are ignored.
type Input struct {
	ZeroField Segment
	Clamped   *Segment
	Relaxed   []Segment
	Cell      *Cell
	Positions Positions
	Fraction  float64
}

// Result contains the stitched series, before and after the jump correction,
// and the dielectric quantities. The Has* fields tell which of the optional
// quantities were computed.
type Result struct {
	Raw       *Series
	Corrected *Series
	Jumps     JumpCount

	Volume            float64
	Quantum           float64
	InclusionFraction float64

	EpsR     float64
	EpsInf   float64
	AlphaR   float64
	AlphaInf float64

	HasEpsInf   bool
	HasAlpha    bool
	HasAlphaInf bool
}

// Calculate stitches the segments in in, removes the polarization-quantum
// jumps and computes the permittivities and, if requested, the inclusion
// polarizabilities. Every precondition is checked before anything is computed,
// so an error never comes with a partial result.
func Calculate(in Input, cfg RunConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	if in.Cell == nil || in.Cell.Vectors == nil {
		return nil, newError(InvalidParameter, "no cell", "Calculate")
	}
	R := new(Result)
	R.Volume = in.Cell.Volume()
	R.Quantum = in.Cell.Quantum()
	if err := checkVolumeField(R.Volume, cfg.Field); err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	if cfg.HighFrequency && in.Clamped == nil {
		return nil, newError(MissingClampedSegment, "high-frequency permittivity requested", "Calculate")
	}
	if cfg.ComputeAlpha {
		R.InclusionFraction = in.Fraction
		if R.InclusionFraction == 0 {
			R.InclusionFraction = InclusionFraction(in.Positions, cfg.InclusionElement)
		}
		if R.InclusionFraction == 0 {
			msg := fmt.Sprintf("no %s atoms among %d", cfg.InclusionElement, in.Positions.Total())
			return nil, newError(ZeroInclusionFraction, msg, "Calculate")
		}
	}
	logrus.WithFields(logrus.Fields{
		"volume":  R.Volume,
		"quantum": R.Quantum,
		"field":   cfg.Field,
	}).Debug("Cell")

	zero, err := ZeroFieldReference(in.ZeroField)
	if err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	relaxed, err := Stitch(in.Relaxed, cfg.Dedup, cfg.SortFiles)
	if err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	R.Raw, err = BuildSeries(zero, in.Clamped, relaxed)
	if err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	R.Corrected, R.Jumps, err = R.Raw.Correct(R.Quantum, cfg.TotalThreshold, cfg.ElectronicThreshold, cfg.IonicThreshold)
	if err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	R.EpsR, err = StaticPermittivity(R.Corrected.Total, R.Volume, cfg.Field)
	if err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	if cfg.HighFrequency {
		R.EpsInf, err = HighFrequencyPermittivity(in.Clamped, zero, R.Volume, cfg.Field)
		if err != nil {
			return nil, errDecorate(err, "Calculate")
		}
		R.HasEpsInf = true
	}
	if cfg.ComputeAlpha {
		R.AlphaR, err = Polarizability(R.EpsR, cfg.EpsBulk, R.InclusionFraction)
		if err != nil {
			return nil, errDecorate(err, "Calculate")
		}
		R.HasAlpha = true
		if R.HasEpsInf {
			R.AlphaInf, err = Polarizability(R.EpsInf, cfg.EpsInfBulk, R.InclusionFraction)
			if err != nil {
				return nil, errDecorate(err, "Calculate")
			}
			R.HasAlphaInf = true
		}
	}
	logrus.WithFields(logrus.Fields{
		"points": R.Corrected.Len(),
		"eps_r":  R.EpsR,
	}).Debug("Calculation done")
	return R, nil
}
