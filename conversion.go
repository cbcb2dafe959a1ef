/*
 * conversion.go, part of dielectric.
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

import "math"

//This provides useful conversion factors and other constants

//Conversions
const (
	A2Bohr    = 1.889725989
	Bohr2A    = 1 / 1.889725989
	Ps2AuTime = 1 / 2.418884326e-5 //picoseconds to Hartree atomic units of time
	AuTime2Ps = 2.418884326e-5
	FourPi    = 4 * math.Pi
)

//Defaults taken from the runs this tool was first written for (Ag inclusions in a bulk matrix).
const (
	DefaultField               = 0.001 //a.u.
	DefaultEpsBulk             = 9.26
	DefaultEpsInfBulk          = 3.04
	DefaultInclusionElement    = "Ag"
	DefaultElectronicThreshold = 10.0 //a.u., absolute
)
