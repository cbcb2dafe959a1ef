/*
 * files.go, part of dielectric.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//*zstd.Decoder's Close doesn't return an error, so it isn't an io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
	f *os.File
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

type gzipCloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipCloser) Close() error {
	err := g.Reader.Close()
	if err2 := g.f.Close(); err == nil {
		err = err2
	}
	return err
}

// OpenFile opens name for reading. Files ending in .gz are read through a
// gzip decompressor, and those ending in .zst or .zstd through a zstd one.
// Anything else is read as is.
func OpenFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, newError(ReadFailure, err.Error(), "OpenFile")
	}
	lname := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lname, ".gz"):
		r, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, newError(ReadFailure, fmt.Sprintf("%s: %v", name, err), "OpenFile")
		}
		return gzipCloser{r, f}, nil
	case strings.HasSuffix(lname, ".zst"), strings.HasSuffix(lname, ".zstd"):
		r, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, newError(ReadFailure, fmt.Sprintf("%s: %v", name, err), "OpenFile")
		}
		return zstdCloser{r, f}, nil
	}
	return f, nil
}

// TableReader reads dipole tables: plain text files with one sample per
// line and the whitespace-separated columns
//
//	step duration electronic ionic total
//
// Empty lines and everything after a '#' are ignored.
// TableReader implements SegmentReader.
type TableReader struct{}

// ReadSegment reads the table in the file name.
func (TableReader) ReadSegment(name string) (Segment, error) {
	f, err := OpenFile(name)
	if err != nil {
		return Segment{}, errDecorate(err, "TableReader.ReadSegment")
	}
	defer f.Close()
	s, err := ReadTable(f)
	if err != nil {
		return Segment{}, errDecorate(err, "TableReader.ReadSegment: "+name)
	}
	s.Source = name
	return s, nil
}

// ReadTable reads a dipole table from r. The Source of the returned segment is empty.
func ReadTable(r io.Reader) (Segment, error) {
	var seg Segment
	scanner := bufio.NewScanner(r)
	var nline int
	for scanner.Scan() {
		nline++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 5 {
			return seg, newError(ReadFailure, fmt.Sprintf("line %d: %d columns, 5 expected", nline, len(fields)), "ReadTable")
		}
		step, err := strconv.Atoi(fields[0])
		if err != nil {
			return seg, newError(ReadFailure, fmt.Sprintf("line %d: %v", nline, err), "ReadTable")
		}
		var vals [4]float64
		for i := range vals {
			vals[i], err = strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return seg, newError(ReadFailure, fmt.Sprintf("line %d: %v", nline, err), "ReadTable")
			}
		}
		seg.Samples = append(seg.Samples, Sample{Step: step, Duration: vals[0], Electronic: vals[1], Ionic: vals[2], Total: vals[3]})
	}
	if err := scanner.Err(); err != nil {
		return seg, newError(ReadFailure, err.Error(), "ReadTable")
	}
	return seg, nil
}

// WriteTable writes the samples of s to w in the format ReadTable reads.
func WriteTable(w io.Writer, s Segment) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n# step duration electronic ionic total\n", s.Source)
	for _, v := range s.Samples {
		fmt.Fprintf(bw, "%d %.10g %.10g %.10g %.10g\n", v.Step, v.Duration, v.Electronic, v.Ionic, v.Total)
	}
	if err := bw.Flush(); err != nil {
		return newError(WriteFailure, err.Error(), "WriteTable")
	}
	return nil
}

// WriteSeries writes the uncorrected and corrected series side by side to w,
// one line per point, for inspection or for plotting elsewhere.
// Both series must have the same length.
func WriteSeries(w io.Writer, raw, corrected *Series) error {
	if raw.Len() != corrected.Len() {
		return newError(InvalidParameter, fmt.Sprintf("series of %d and %d points", raw.Len(), corrected.Len()), "WriteSeries")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# time total_raw electronic_raw ionic_raw total electronic ionic")
	for i := range raw.Time {
		fmt.Fprintf(bw, "%.8g %.10g %.10g %.10g %.10g %.10g %.10g\n", raw.Time[i],
			raw.Total[i], raw.Electronic[i], raw.Ionic[i],
			corrected.Total[i], corrected.Electronic[i], corrected.Ionic[i])
	}
	if err := bw.Flush(); err != nil {
		return newError(WriteFailure, err.Error(), "WriteSeries")
	}
	return nil
}
