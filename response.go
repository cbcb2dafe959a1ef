/*
 * response.go, part of dielectric.
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
)

// Permittivity returns the relative permittivity 1 + 4*pi*dipole/volume/field
// for a dipole change (already referenced to the zero-field run) induced by field
// in a cell of the given volume. All in atomic units.
func Permittivity(dipole, volume, field float64) (float64, error) {
	if err := checkVolumeField(volume, field); err != nil {
		return 0, errDecorate(err, "Permittivity")
	}
	return 1 + FourPi*dipole/volume/field, nil
}

func checkVolumeField(volume, field float64) error {
	if !(volume > 0) || math.IsInf(volume, 0) {
		return newError(InvalidParameter, fmt.Sprintf("cell volume %g", volume), "checkVolumeField")
	}
	if field == 0 || math.IsNaN(field) || math.IsInf(field, 0) {
		return newError(InvalidParameter, fmt.Sprintf("field %g", field), "checkVolumeField")
	}
	return nil
}

// StaticPermittivity returns the static (relaxed-ion) relative permittivity,
// from the last point of total, the corrected total dipole, referenced to the zero-field run.
func StaticPermittivity(total []float64, volume, field float64) (float64, error) {
	if len(total) == 0 {
		return 0, newError(EmptyInput, "empty total dipole series", "StaticPermittivity")
	}
	eps, err := Permittivity(total[len(total)-1], volume, field)
	if err != nil {
		return 0, errDecorate(err, "StaticPermittivity")
	}
	return eps, nil
}

// HighFrequencyPermittivity returns the high-frequency (clamped-ion) relative
// permittivity, from the total dipole of the last clamped-ion sample minus that of
// the zero-field reference.
//
// Only that last value is used, and it is NOT jump-corrected. The clamped-ion run
// must not contain a branch-cut jump, otherwise the result is silently wrong.
// Plot the series and check it before trusting this number.
func HighFrequencyPermittivity(clamped *Segment, zero Sample, volume, field float64) (float64, error) {
	if clamped == nil {
		return 0, newError(MissingClampedSegment, "high-frequency permittivity requested", "HighFrequencyPermittivity")
	}
	last, ok := clamped.Last()
	if !ok {
		return 0, newError(EmptyInput, fmt.Sprintf("clamped-ion segment %q has no samples", clamped.Source), "HighFrequencyPermittivity")
	}
	eps, err := Permittivity(last.Total-zero.Total, volume, field)
	if err != nil {
		return 0, errDecorate(err, "HighFrequencyPermittivity")
	}
	return eps, nil
}

// InclusionFraction returns the number of atoms of element divided by the
// total number of atoms in pos. It returns 0 if there are no atoms, or none of element.
func InclusionFraction(pos Positions, element string) float64 {
	tot := pos.Total()
	if tot == 0 {
		return 0
	}
	return float64(pos.Count(element)) / float64(tot)
}

// Polarizability returns the inclusion polarizability (eps-epsBulk)/(4*pi*al),
// where al is the fraction of inclusion atoms and epsBulk the permittivity of the
// bulk matrix. It works the same for the static and the high-frequency values.
func Polarizability(eps, epsBulk, al float64) (float64, error) {
	if al == 0 {
		return 0, newError(ZeroInclusionFraction, "no inclusion atoms", "Polarizability")
	}
	return (eps - epsBulk) / (FourPi * al), nil
}
