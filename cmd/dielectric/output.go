/*
 * output.go, part of dielectric.
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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	diel "github.com/rmera/dielectric"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func optional(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func printTable(w io.Writer, res *diel.Result, cfg diel.RunConfig) {
	title := "Dielectric Constants:"
	if isTerminal(w) {
		title = titleStyle.Render(title)
	}
	fmt.Fprintf(w, "\n%s\n\n", title)
	fmt.Fprintln(w, "|  High Frequency  |  Low Frequency  |  alpha_inf  |   alpha_r  |")
	fmt.Fprintln(w, "|------------------|-----------------|-------------|------------|")
	fmt.Fprintf(w, "|  %14s  |  %13s  |  %9s  |  %8s  |\n",
		optional(res.EpsInf, res.HasEpsInf),
		optional(res.EpsR, true),
		optional(res.AlphaInf, res.HasAlphaInf),
		optional(res.AlphaR, res.HasAlpha))
	if res.HasAlpha {
		fmt.Fprintf(w, "\n* alpha values calculated using a bulk matrix relative permittivity of %g\n", cfg.EpsBulk)
		fmt.Fprintf(w, "  and high frequency permittivity %g, with %s fraction %.4f.\n", cfg.EpsInfBulk, cfg.InclusionElement, res.InclusionFraction)
	}
	if res.HasEpsInf {
		fmt.Fprintln(w, "* the high frequency value assumes no polarization jumps in the clamped ion run.")
	}
	j := res.Jumps
	fmt.Fprintf(w, "* jumps removed (total/electronic/ionic): %d/%d/%d, quantum %.4f bohr.\n", j.Total, j.Electronic, j.Ionic, res.Quantum)
}

type jsonResult struct {
	EpsR              float64        `json:"eps_r"`
	EpsInf            *float64       `json:"eps_inf,omitempty"`
	AlphaR            *float64       `json:"alpha_r,omitempty"`
	AlphaInf          *float64       `json:"alpha_inf,omitempty"`
	Volume            float64        `json:"volume"`
	Quantum           float64        `json:"quantum"`
	InclusionFraction float64        `json:"inclusion_fraction,omitempty"`
	Points            int            `json:"points"`
	Jumps             diel.JumpCount `json:"jumps"`
}

func ptr(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func printJSON(w io.Writer, res *diel.Result) error {
	j := jsonResult{
		EpsR:              res.EpsR,
		EpsInf:            ptr(res.EpsInf, res.HasEpsInf),
		AlphaR:            ptr(res.AlphaR, res.HasAlpha),
		AlphaInf:          ptr(res.AlphaInf, res.HasAlphaInf),
		Volume:            res.Volume,
		Quantum:           res.Quantum,
		InclusionFraction: res.InclusionFraction,
		Points:            res.Corrected.Len(),
		Jumps:             res.Jumps,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(j)
}
