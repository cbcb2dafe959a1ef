/*
 * run.go, part of dielectric.
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

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	diel "github.com/rmera/dielectric"
	"github.com/rmera/dielectric/dielplot"
	"github.com/rmera/dielectric/qe"
)

func run(c *cobra.Command, o *options, args []string) error {
	cfg, err := buildConfig(c, o)
	if err != nil {
		return err
	}
	in, err := readInput(o, cfg, args)
	if err != nil {
		return err
	}
	res, err := diel.Calculate(in, cfg)
	if err != nil {
		return err
	}
	if o.dumpFile != "" {
		if err := dump(o.dumpFile, res); err != nil {
			return fmt.Errorf("writing %s: %w", o.dumpFile, err)
		}
		logrus.WithField("file", o.dumpFile).Info("Series written")
	}
	if cfg.ShowPlot {
		if err := dielplot.Plot(res.Raw, res.Corrected, cfg.PlotFile); err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
		logrus.WithField("file", cfg.PlotFile).Info("Plot saved")
	}
	if o.jsonOut {
		return printJSON(c.OutOrStdout(), res)
	}
	printTable(c.OutOrStdout(), res, cfg)
	return nil
}

// buildConfig starts from the defaults, applies the config file, if any,
// and then the flags that were explicitly set. A clamped-ion file implies
// the high-frequency permittivity unless the flag or the file say otherwise.
func buildConfig(c *cobra.Command, o *options) (diel.RunConfig, error) {
	cfg := diel.DefaultRunConfig()
	var fileHighFreq bool //high-frequency set in the config file
	if o.configPath != "" {
		fc, err := diel.ReadConfigFile(o.configPath)
		if err != nil {
			return cfg, err
		}
		fc.Apply(&cfg)
		fileHighFreq = fc.Run.HighFrequency != nil
	}
	fl := c.Flags()
	if fl.Changed("efield") {
		cfg.Field = o.field
	}
	if fl.Changed("eps-bulk") {
		cfg.EpsBulk = o.epsBulk
	}
	if fl.Changed("eps-inf-bulk") {
		cfg.EpsInfBulk = o.epsInfBulk
	}
	if fl.Changed("inclusion-element") {
		cfg.InclusionElement = o.element
	}
	if fl.Changed("extend") {
		cfg.Dedup = !o.extend
	}
	if fl.Changed("no-sort") {
		cfg.SortFiles = !o.noSort
	}
	if fl.Changed("alpha") {
		cfg.ComputeAlpha = o.alpha
	}
	if fl.Changed("high-frequency") {
		cfg.HighFrequency = o.highFreq
	} else if o.clamped != "" && !fileHighFreq {
		cfg.HighFrequency = true
	}
	if fl.Changed("plot") {
		cfg.PlotFile = o.plotFile
		cfg.ShowPlot = o.plotFile != ""
	}
	if fl.Changed("threshold-total") {
		cfg.TotalThreshold = o.thrTotal
	}
	if fl.Changed("threshold-electronic") {
		cfg.ElectronicThreshold = o.thrElec
	}
	if fl.Changed("threshold-ionic") {
		cfg.IonicThreshold = o.thrIonic
	}
	return cfg, cfg.Validate()
}

// readInput reads the zero-field output args[0], the relaxed-ion outputs args[1:]
// and the clamped-ion output, if given. The cell and the final positions come
// from the zero-field output, unless given with flags.
func readInput(o *options, cfg diel.RunConfig, args []string) (diel.Input, error) {
	var in diel.Input
	var reader diel.SegmentReader
	var qer *qe.Reader
	switch o.format {
	case "qe":
		qer = &qe.Reader{Direction: o.direction}
		reader = qer
	case "table":
		reader = diel.TableReader{}
	default:
		return in, fmt.Errorf("unknown input format %q", o.format)
	}

	if qer != nil {
		out, err := qer.ReadFile(args[0])
		if err != nil {
			return in, err
		}
		in.ZeroField = out.Segment
		in.Cell = out.Cell
		in.Positions = out.Positions
	} else {
		s, err := reader.ReadSegment(args[0])
		if err != nil {
			return in, err
		}
		in.ZeroField = s
	}
	switch len(o.cell) {
	case 0:
		if in.Cell == nil {
			return in, fmt.Errorf("no cell in %s, give one with --cell", args[0])
		}
	case 3:
		in.Cell = diel.NewOrthorhombicCell(o.cell[0], o.cell[1], o.cell[2])
	default:
		return in, fmt.Errorf("--cell needs 3 lengths, got %d", len(o.cell))
	}
	in.Fraction = o.fraction
	if cfg.ComputeAlpha && in.Fraction == 0 && in.Positions == nil {
		return in, fmt.Errorf("no atomic positions in %s, give the inclusion fraction with --inclusion-fraction", args[0])
	}

	relaxed, err := diel.ReadSegments(reader, args[1:])
	if err != nil {
		return in, err
	}
	in.Relaxed = relaxed
	if o.clamped != "" {
		s, err := reader.ReadSegment(o.clamped)
		if err != nil {
			return in, err
		}
		in.Clamped = &s
	}
	logrus.WithFields(logrus.Fields{
		"relaxed": len(in.Relaxed),
		"clamped": in.Clamped != nil,
		"format":  o.format,
	}).Debug("Input read")
	return in, nil
}

func dump(name string, res *diel.Result) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := diel.WriteSeries(f, res.Raw, res.Corrected); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
