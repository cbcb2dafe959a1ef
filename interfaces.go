/*
 * interfaces.go, part of dielectric.
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

// SegmentReader is anything that can turn one output file into a Segment.
// The qe package and TableReader implement it.
type SegmentReader interface {

	//ReadSegment parses the file name and returns the samples it contains,
	//in the order the simulation program wrote them. A file without samples
	//is not an error, it just gives an empty Segment.
	ReadSegment(name string) (Segment, error)
}

//Errors

// Error is the interface for errors that all packages in this module implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the decoration slice after the addition. An empty string adds nothing.
	Critical() bool
}

// ReadSegments reads each of the names with r, in the given order.
func ReadSegments(r SegmentReader, names []string) ([]Segment, error) {
	ret := make([]Segment, 0, len(names))
	for _, v := range names {
		s, err := r.ReadSegment(v)
		if err != nil {
			return nil, errDecorate(err, "ReadSegments: "+v)
		}
		ret = append(ret, s)
	}
	return ret, nil
}
