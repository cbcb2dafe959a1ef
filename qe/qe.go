/*
 * qe.go, part of dielectric.
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

package qe

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	diel "github.com/rmera/dielectric"
)

// Output is what could be recovered from one pw.x output.
// Cell and Positions are nil if the output didn't contain them.
type Output struct {
	Segment   diel.Segment
	Cell      *diel.Cell
	Positions diel.Positions
}

// Reader reads pw.x outputs. It implements diel.SegmentReader.
type Reader struct {
	Direction int //Cartesian axis (1, 2 or 3) of the dipole component to keep. 0 means 3.
}

// New returns a Reader that keeps the z component of the dipoles.
func New() *Reader {
	return &Reader{Direction: 3}
}

// ReadFile parses the output in the file name.
func (R *Reader) ReadFile(name string) (*Output, error) {
	f, err := diel.OpenFile(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"diel.OpenFile", "ReadFile"}, true}
	}
	defer f.Close()
	O, err := Parse(f, R.Direction)
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = name
			e.deco = append(e.deco, "ReadFile")
			return nil, e
		}
		return nil, err
	}
	O.Segment.Source = name
	if O.Segment.Len() == 0 {
		logrus.WithField("file", name).Warn("No dipoles found in output")
	}
	return O, nil
}

// ReadSegment returns the samples in the output name.
func (R *Reader) ReadSegment(name string) (diel.Segment, error) {
	O, err := R.ReadFile(name)
	if err != nil {
		return diel.Segment{}, errDecorate(err, "ReadSegment")
	}
	return O.Segment, nil
}

// ReadCell returns the last cell in the output name.
func (R *Reader) ReadCell(name string) (*diel.Cell, error) {
	O, err := R.ReadFile(name)
	if err != nil {
		return nil, errDecorate(err, "ReadCell")
	}
	if O.Cell == nil {
		return nil, Error{ErrNoCell, name, []string{"ReadCell"}, true}
	}
	return O.Cell, nil
}

// ReadPositions returns the last atomic positions in the output name.
func (R *Reader) ReadPositions(name string) (diel.Positions, error) {
	O, err := R.ReadFile(name)
	if err != nil {
		return nil, errDecorate(err, "ReadPositions")
	}
	if O.Positions == nil {
		return nil, Error{ErrNoPositions, name, []string{"ReadPositions"}, true}
	}
	return O.Positions, nil
}

// parser keeps the state while going through an output.
type parser struct {
	sc        *bufio.Scanner
	line      string
	held      bool //line was given back with unread
	nline     int
	direction int
	alat      float64 //bohr
	cell      [][3]float64

	elec, ion    float64
	haveElec     bool
	haveIon      bool
	step         int
	inStep       bool
	prevTime     float64
	havePrevTime bool
	samples      []diel.Sample
	positions    diel.Positions
}

// Parse reads a pw.x output from r, keeping the dipole component along direction
// (1, 2 or 3; 0 means 3). The Source of the returned segment is empty.
func Parse(r io.Reader, direction int) (*Output, error) {
	if direction == 0 {
		direction = 3
	}
	if direction < 1 || direction > 3 {
		return nil, Error{fmt.Sprintf("%s: %d", ErrDirection, direction), "", []string{"Parse"}, true}
	}
	P := &parser{sc: bufio.NewScanner(r), direction: direction}
	P.sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for P.next() {
		line := P.line
		var err error
		switch {
		case strings.Contains(line, "lattice parameter (alat)"):
			P.alat, err = valueAfterEqual(line)
		case strings.Contains(line, "crystal axes:"):
			err = P.crystalAxes()
		case strings.Contains(line, "CELL_PARAMETERS"):
			err = P.cellParameters(line)
		case strings.Contains(line, "ATOMIC_POSITIONS"):
			err = P.atomicPositions(line)
		case strings.Contains(line, "Electronic Dipole on Cartesian axes"):
			P.elec, err = P.dipole()
			P.haveElec = err == nil
		case strings.Contains(line, "Ionic Dipole on Cartesian axes"):
			P.ion, err = P.dipole()
			P.haveIon = err == nil
		case strings.Contains(line, "Entering Dynamics"):
			P.step, err = lastInt(line)
			P.inStep = err == nil
		case P.inStep && strings.Contains(line, "pico-seconds"):
			err = P.endStep(line)
		}
		if err != nil {
			return nil, Error{fmt.Sprintf("line %d: %s", P.nline, err.Error()), "", []string{"Parse"}, true}
		}
	}
	if err := P.sc.Err(); err != nil {
		return nil, Error{err.Error(), "", []string{"Parse"}, true}
	}
	//static run
	if len(P.samples) == 0 && P.haveElec && P.haveIon {
		P.samples = append(P.samples, diel.Sample{Electronic: P.elec, Ionic: P.ion, Total: P.elec + P.ion})
	}
	O := &Output{Segment: diel.Segment{Samples: P.samples}, Positions: P.positions}
	if P.cell != nil {
		O.Cell = diel.NewCell(P.cell[0], P.cell[1], P.cell[2])
	}
	return O, nil
}

func (P *parser) next() bool {
	if P.held {
		P.held = false
		return true
	}
	ok := P.sc.Scan()
	if ok {
		P.nline++
		P.line = P.sc.Text()
	}
	return ok
}

// unread makes the next call to next return the current line again.
func (P *parser) unread() {
	P.held = true
}

// vectorLines reads the next 3 lines with f, which turns one line into a vector.
func (P *parser) vectorLines(f func(string) ([3]float64, error)) ([][3]float64, error) {
	ret := make([][3]float64, 0, 3)
	for i := 0; i < 3; i++ {
		if !P.next() {
			return nil, fmt.Errorf("%s: unexpected end of output", ErrCell)
		}
		v, err := f(P.line)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}

// crystalAxes reads the 3 lines like
// a(1) = (   1.000000   0.000000   0.000000 )
// which are in units of alat.
func (P *parser) crystalAxes() error {
	if P.alat == 0 {
		return fmt.Errorf("%s: crystal axes before lattice parameter", ErrCell)
	}
	c, err := P.vectorLines(parenVector)
	if err != nil {
		return err
	}
	for i := range c {
		for j := range c[i] {
			c[i][j] *= P.alat
		}
	}
	P.cell = c
	return nil
}

// cellParameters reads a CELL_PARAMETERS block. header is the line with the keyword.
func (P *parser) cellParameters(header string) error {
	factor, err := P.unitFactor(header)
	if err != nil {
		return err
	}
	c, err := P.vectorLines(plainVector)
	if err != nil {
		return err
	}
	for i := range c {
		for j := range c[i] {
			c[i][j] *= factor
		}
	}
	P.cell = c
	return nil
}

// unitFactor returns the factor that takes the lengths in the block that
// starts with header to bohr.
func (P *parser) unitFactor(header string) (float64, error) {
	h := strings.ToLower(header)
	switch {
	case strings.Contains(h, "alat="), strings.Contains(h, "alat ="):
		return valueAfterEqual(strings.Trim(h[strings.Index(h, "alat"):], "(){} "))
	case strings.Contains(h, "alat"):
		if P.alat == 0 {
			return 0, fmt.Errorf("%s: block in alat units before lattice parameter", ErrCell)
		}
		return P.alat, nil
	case strings.Contains(h, "angstrom"):
		return diel.A2Bohr, nil
	}
	//bohr, crystal and QE's old default (no unit, bohr).
	return 1, nil
}

// atomicPositions reads an ATOMIC_POSITIONS block. It replaces any positions read before.
func (P *parser) atomicPositions(header string) error {
	factor, err := P.unitFactor(header)
	if err != nil {
		return err
	}
	if strings.Contains(strings.ToLower(header), "crystal") {
		factor = 1
	}
	coords := make(map[string][]float64)
	for P.next() {
		el, xyz, ok := positionLine(P.line)
		if !ok {
			P.unread()
			break
		}
		for _, v := range xyz {
			coords[el] = append(coords[el], v*factor)
		}
	}
	if len(coords) == 0 {
		return fmt.Errorf("%s: empty block", ErrPositions)
	}
	P.positions = make(diel.Positions, len(coords))
	for k, v := range coords {
		P.positions[k] = mat.NewDense(len(v)/3, 3, v)
	}
	return nil
}

// dipole reads the 3 lines after a dipole header, like
//
//	1    -0.12345678E-01
//
// and returns the component along P.direction.
func (P *parser) dipole() (float64, error) {
	var ret float64
	for i := 1; i <= 3; i++ {
		if !P.next() {
			return 0, fmt.Errorf("%s: unexpected end of output", ErrDipole)
		}
		fields := strings.Fields(P.line)
		if len(fields) < 2 {
			return 0, fmt.Errorf("%s: %q", ErrDipole, P.line)
		}
		if i != P.direction {
			continue
		}
		v, err := strconv.ParseFloat(fortranFloat(fields[len(fields)-1]), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %v", ErrDipole, err)
		}
		ret = v
	}
	return ret, nil
}

// endStep reads the time line of a dynamics step and adds the step's sample.
func (P *parser) endStep(line string) error {
	P.inStep = false
	t, err := valueAfterEqual(line)
	if err != nil {
		return err
	}
	t *= diel.Ps2AuTime
	var dur float64
	switch {
	case P.havePrevTime:
		dur = t - P.prevTime
	case P.step > 0:
		dur = t / float64(P.step)
	}
	P.prevTime = t
	P.havePrevTime = true
	if !(P.haveElec && P.haveIon) {
		logrus.WithField("step", P.step).Debug("Dynamics step without dipoles, skipped")
		return nil
	}
	P.samples = append(P.samples, diel.Sample{
		Step:       P.step,
		Duration:   dur,
		Electronic: P.elec,
		Ionic:      P.ion,
		Total:      P.elec + P.ion,
	})
	return nil
}

// positionLine parses a line like "Ag1  0.0 1.0 2.0 [0 0 1]". ok is false
// if line is not an atomic position.
func positionLine(line string) (el string, xyz [3]float64, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 || !unicode.IsLetter(rune(fields[0][0])) {
		return "", xyz, false
	}
	for i := range xyz {
		v, err := strconv.ParseFloat(fortranFloat(fields[i+1]), 64)
		if err != nil {
			return "", xyz, false
		}
		xyz[i] = v
	}
	return element(fields[0]), xyz, true
}

// valueAfterEqual returns the first number after the first '=' in line.
func valueAfterEqual(line string) (float64, error) {
	i := strings.Index(line, "=")
	if i < 0 {
		return 0, fmt.Errorf("no '=' in %q", line)
	}
	fields := strings.Fields(strings.Trim(line[i+1:], " )"))
	if len(fields) == 0 {
		return 0, fmt.Errorf("no value in %q", line)
	}
	return strconv.ParseFloat(fortranFloat(strings.TrimRight(fields[0], ")")), 64)
}

func lastInt(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty line")
	}
	return strconv.Atoi(fields[len(fields)-1])
}

// parenVector parses the 3 numbers inside the last parentheses of line.
func parenVector(line string) ([3]float64, error) {
	var ret [3]float64
	ini := strings.LastIndex(line, "(")
	end := strings.LastIndex(line, ")")
	if ini < 0 || end < ini {
		return ret, fmt.Errorf("%s: %q", ErrCell, line)
	}
	return plainVector(line[ini+1 : end])
}

func plainVector(line string) ([3]float64, error) {
	var ret [3]float64
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return ret, fmt.Errorf("%s: %q", ErrCell, line)
	}
	for i := range ret {
		v, err := strconv.ParseFloat(fortranFloat(fields[i]), 64)
		if err != nil {
			return ret, fmt.Errorf("%s: %v", ErrCell, err)
		}
		ret[i] = v
	}
	return ret, nil
}

// fortranFloat replaces the Fortran double-precision exponent (1.0D-03) with an 'E'.
func fortranFloat(s string) string {
	return strings.NewReplacer("D", "E", "d", "e").Replace(s)
}

// element takes the element symbol out of a species label, Ag1 or Ag_2 give Ag.
func element(label string) string {
	for i, r := range label {
		if !unicode.IsLetter(r) {
			return label[:i]
		}
	}
	return label
}
