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
 *
 * */

/*
Package qe reads the output of Quantum ESPRESSO pw.x finite-field
(lelfield) runs. The output can be plain text, or gzip (.gz) or zstd (.zst)
compressed.

From an output it recovers:

The cell, from "lattice parameter (alat)" and the "a(i) = ( ... )" rows
under "crystal axes:", or from CELL_PARAMETERS blocks. The last cell in the
file is returned, in bohr.

The final positions, from the last ATOMIC_POSITIONS block, in bohr
(positions in crystal coordinates are left fractional). Species labels
are reduced to their element symbol ("Ag1" becomes "Ag").

The dipoles, from the "Electronic Dipole on Cartesian axes" and
"Ionic Dipole on Cartesian axes" blocks. Only the component along
Reader.Direction is kept. The total dipole is their sum.

The steps, from the "Entering Dynamics: iteration = N" lines. Each step
gets the latest dipoles printed before it, and the time from the following
"time = T pico-seconds" line. The duration of a step is the time elapsed
since the previous one (T/N for the first step in the file), in Hartree
atomic units. An output with dipoles but no dynamics (a static run) gives a
single sample, at step 0 with zero duration, which is only useful as a
zero-field reference.
*/
package qe
