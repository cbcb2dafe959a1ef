/*
 * doc.go, part of dielectric.
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
 */

/*
Package dielectric obtains the relative permittivity of a bulk material, and the
polarizability of inclusions in it, from the cell dipoles of finite-field ab-initio
molecular dynamics runs.

A calculation uses three kinds of runs:

	zero field:   no field. Its last dipole is the reference all others are subtracted from.
	clamped ion:  field on, ions frozen. Optional. Gives the high-frequency permittivity.
	relaxed ion:  field on, ions free. Gives the static permittivity. It is usually
	              split among several restart files, which may overlap.

The relaxed-ion files are stitched into one trajectory (Stitch), either merging
them by step number, so restart overlaps are removed, or appending them one
after the other. The pieces are then put on one time axis (BuildSeries).

Berry-phase polarization is only defined modulo a polarization quantum, so the
dipole series show artificial jumps of one (or several) quanta. CorrectJumps
removes them. For an orthorhombic cell with the field along z, the quantum
is the length of the third cell axis.

	eps_r     = 1 + 4*pi*A_tot/V/E        (A_tot: last corrected total dipole)
	eps_inf   = 1 + 4*pi*dA_clamped/V/E   (dA_clamped: last clamped-ion dipole minus reference)
	alpha_r   = (eps_r-eps_bulk)/(4*pi*al)
	alpha_inf = (eps_inf-eps_inf_bulk)/(4*pi*al)

where al is the fraction of the atoms that belong to the inclusion element.

Calculate does all of the above. Everything is in atomic units.

The qe package reads Quantum ESPRESSO outputs, the dielplot package plots the
series, and cmd/dielectric is the command line tool.
*/
package dielectric
