/*
 * main.go, part of dielectric.
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

// Command dielectric computes the dielectric permittivity of a bulk material
// from Quantum ESPRESSO finite-field polarization outputs.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	diel "github.com/rmera/dielectric"
)

// options holds the values of the flags.
type options struct {
	logLevel   string
	configPath string
	clamped    string
	format     string
	plotFile   string
	dumpFile   string
	jsonOut    bool
	cell       []float64
	fraction   float64
	direction  int
	extend     bool
	noSort     bool
	alpha      bool
	highFreq   bool
	field      float64
	epsBulk    float64
	epsInfBulk float64
	element    string
	thrTotal   float64
	thrElec    float64
	thrIonic   float64
}

func setupLogger(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	logrus.SetLevel(l)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}
	return nil
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewCommand returns the root command of the tool.
func NewCommand() *cobra.Command {
	o := &options{}
	def := diel.DefaultRunConfig()
	cmd := &cobra.Command{
		Use:   "dielectric ZERO_FIELD RELAXED_ION...",
		Short: "Calculate the dielectric permittivity of a bulk material from polarization outputs",
		Long: `dielectric calculates the relative permittivity of a bulk material, and the
polarizability of inclusions in it, from the cell dipoles of finite-field
molecular dynamics runs: one zero-field run, an optional clamped-ion run and
one or more relaxed-ion runs, possibly split in several restart files.

Jumps of one polarization quantum (the length of the third cell axis) in the
dipoles are removed before computing anything. Use --plot to check that.`,
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger(o.logLevel)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return run(c, o, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	f.StringVar(&o.configPath, "config", "", "TOML file with the run configuration. Flags override it.")
	f.StringVarP(&o.clamped, "clamped-ion", "c", "", "the file containing the clamped-ion polarization output")
	f.StringVar(&o.format, "format", "qe", "input format: qe (pw.x output) or table (step duration electronic ionic total)")
	f.StringVarP(&o.plotFile, "plot", "p", "", "save a PNG with the uncorrected and corrected dipoles, to check the jump correction")
	f.StringVar(&o.dumpFile, "dump", "", "write the uncorrected and corrected series to this file")
	f.BoolVar(&o.jsonOut, "json", false, "print the results as JSON")
	f.Float64SliceVar(&o.cell, "cell", nil, "orthorhombic cell lengths x,y,z in bohr. Required with --format table.")
	f.Float64Var(&o.fraction, "inclusion-fraction", 0, "fraction of inclusion atoms, instead of counting them in the zero-field output")
	f.IntVar(&o.direction, "direction", 3, "Cartesian axis (1-3) of the field and the dipoles to use")
	f.BoolVar(&o.extend, "extend", false, "append the relaxed-ion files one after the other instead of merging them by step")
	f.BoolVar(&o.noSort, "no-sort", false, "don't sort the relaxed-ion files by name")
	f.BoolVar(&o.alpha, "alpha", def.ComputeAlpha, "compute the inclusion polarizabilities")
	f.BoolVar(&o.highFreq, "high-frequency", false, "require the high-frequency permittivity (on by default with --clamped-ion)")
	f.Float64Var(&o.field, "efield", def.Field, "electric field in au")
	f.Float64Var(&o.epsBulk, "eps-bulk", def.EpsBulk, "relative permittivity of the bulk, for the enhancement")
	f.Float64Var(&o.epsInfBulk, "eps-inf-bulk", def.EpsInfBulk, "high-frequency relative permittivity of the bulk")
	f.StringVar(&o.element, "inclusion-element", def.InclusionElement, "inclusion element symbol")
	f.Float64Var(&o.thrTotal, "threshold-total", def.TotalThreshold, "jump threshold for the total dipole (0: half a quantum)")
	f.Float64Var(&o.thrElec, "threshold-electronic", def.ElectronicThreshold, "jump threshold for the electronic dipole (0: half a quantum)")
	f.Float64Var(&o.thrIonic, "threshold-ionic", def.IonicThreshold, "jump threshold for the ionic dipole (0: half a quantum)")
	return cmd
}
