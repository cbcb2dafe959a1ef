/*
 * config.go, part of dielectric.
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
	"os"

	"github.com/BurntSushi/toml"
)

// RunConfig holds the parameters of a calculation. It is built once and only read afterwards.
// Field, permittivities and thresholds follow the atomic-unit convention of
// the rest of the package (field in Hartree a.u., dipoles in e*bohr).
type RunConfig struct {
	Field            float64 //applied field
	EpsBulk          float64 //static permittivity of the bulk matrix, for the polarizabilities
	EpsInfBulk       float64 //high-frequency permittivity of the bulk matrix
	InclusionElement string

	Dedup         bool //merge relaxed-ion files by step (true) or append them (false)
	SortFiles     bool //sort relaxed-ion files by name before stitching
	ComputeAlpha  bool //compute the inclusion polarizabilities
	HighFrequency bool //compute the high-frequency permittivity. Requires a clamped-ion segment.
	ShowPlot      bool
	PlotFile      string

	//Jump thresholds per component. 0 means half a polarization quantum.
	TotalThreshold      float64
	ElectronicThreshold float64
	IonicThreshold      float64
}

// DefaultRunConfig returns the configuration the tool uses when nothing else is given.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Field:               DefaultField,
		EpsBulk:             DefaultEpsBulk,
		EpsInfBulk:          DefaultEpsInfBulk,
		InclusionElement:    DefaultInclusionElement,
		Dedup:               true,
		SortFiles:           true,
		ComputeAlpha:        true,
		ElectronicThreshold: DefaultElectronicThreshold,
	}
}

// Validate returns an error if the configuration can't be used for a calculation.
func (R RunConfig) Validate() error {
	if R.Field == 0 || math.IsNaN(R.Field) || math.IsInf(R.Field, 0) {
		return newError(InvalidParameter, fmt.Sprintf("field %g", R.Field), "RunConfig.Validate")
	}
	for _, v := range []float64{R.TotalThreshold, R.ElectronicThreshold, R.IonicThreshold} {
		if !(v >= 0) {
			return newError(InvalidParameter, fmt.Sprintf("jump threshold %g", v), "RunConfig.Validate")
		}
	}
	if R.ComputeAlpha && R.InclusionElement == "" {
		return newError(InvalidParameter, "polarizabilities requested without an inclusion element", "RunConfig.Validate")
	}
	if R.ShowPlot && R.PlotFile == "" {
		return newError(InvalidParameter, "plot requested without a file name", "RunConfig.Validate")
	}
	return nil
}

// FileConfig is the TOML configuration file. Pointer fields that
// are nil were not present in the file.
type FileConfig struct {
	Run        RunSection       `toml:"run"`
	Thresholds ThresholdSection `toml:"thresholds"`
}

// RunSection maps the [run] table.
type RunSection struct {
	Field            *float64 `toml:"efield"`
	EpsBulk          *float64 `toml:"eps-bulk"`
	EpsInfBulk       *float64 `toml:"eps-inf-bulk"`
	InclusionElement *string  `toml:"inclusion-element"`
	Extend           *bool    `toml:"extend"`
	Sort             *bool    `toml:"sort"`
	Alpha            *bool    `toml:"alpha"`
	HighFrequency    *bool    `toml:"high-frequency"`
	Plot             *string  `toml:"plot"`
}

// ThresholdSection maps the [thresholds] table.
type ThresholdSection struct {
	Total      *float64 `toml:"total"`
	Electronic *float64 `toml:"electronic"`
	Ionic      *float64 `toml:"ionic"`
}

// ReadConfigFile reads a TOML config from the given path. A missing file is not an error.
func ReadConfigFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, newError(InvalidParameter, "config path is empty", "ReadConfigFile")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, newError(ReadFailure, err.Error(), "ReadConfigFile")
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, newError(ReadFailure, fmt.Sprintf("decoding %s: %v", path, err), "ReadConfigFile")
	}
	return cfg, nil
}

// Apply copies the values present in F over R.
func (F FileConfig) Apply(R *RunConfig) {
	r := F.Run
	if r.Field != nil {
		R.Field = *r.Field
	}
	if r.EpsBulk != nil {
		R.EpsBulk = *r.EpsBulk
	}
	if r.EpsInfBulk != nil {
		R.EpsInfBulk = *r.EpsInfBulk
	}
	if r.InclusionElement != nil {
		R.InclusionElement = *r.InclusionElement
	}
	if r.Extend != nil {
		R.Dedup = !*r.Extend
	}
	if r.Sort != nil {
		R.SortFiles = *r.Sort
	}
	if r.Alpha != nil {
		R.ComputeAlpha = *r.Alpha
	}
	if r.HighFrequency != nil {
		R.HighFrequency = *r.HighFrequency
	}
	if r.Plot != nil {
		R.PlotFile = *r.Plot
		R.ShowPlot = *r.Plot != ""
	}
	t := F.Thresholds
	if t.Total != nil {
		R.TotalThreshold = *t.Total
	}
	if t.Electronic != nil {
		R.ElectronicThreshold = *t.Electronic
	}
	if t.Ionic != nil {
		R.IonicThreshold = *t.Ionic
	}
}
