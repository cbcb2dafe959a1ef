/*
 * main_test.go, part of dielectric.
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
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diel "github.com/rmera/dielectric"
)

// writeInputs writes a zero-field, a clamped-ion and two overlapping
// relaxed-ion tables to dir, and returns their names. The relaxed total
// dipole ends 0.005 a.u. above the zero-field one, after one jump of a
// quantum (10 bohr).
func writeInputs(Te *testing.T, dir string) (zero, clamped string, relaxed []string) {
	Te.Helper()
	files := map[string]string{
		"zero.dat":    "1 41.3 0.25 0.75 1.0\n",
		"clamped.dat": "1 41.3 0.2505 0.75 1.0005\n2 41.3 0.251 0.75 1.001\n",
		"relax1.dat":  "# first run\n1 41.3 0.2502 0.7502 1.0004\n2 41.3 0.2504 0.7504 1.0008\n",
		"relax2.dat":  "# restart\n2 41.3 0.2504 0.7504 1.0008\n3 41.3 0.2525 10.7525 11.005\n",
	}
	for k, v := range files {
		require.NoError(Te, os.WriteFile(filepath.Join(dir, k), []byte(v), 0o644))
	}
	return filepath.Join(dir, "zero.dat"), filepath.Join(dir, "clamped.dat"),
		[]string{filepath.Join(dir, "relax2.dat"), filepath.Join(dir, "relax1.dat")}
}

func execute(args ...string) (string, error) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestJSON(Te *testing.T) {
	dir := Te.TempDir()
	zero, clamped, relaxed := writeInputs(Te, dir)
	args := append([]string{"--format", "table", "--cell", "10,10,10", "--inclusion-fraction", "0.25",
		"--json", "--log-level", "error", "-c", clamped, zero}, relaxed...)
	out, err := execute(args...)
	require.NoError(Te, err)

	var res jsonResult
	require.NoError(Te, json.Unmarshal([]byte(out), &res))
	epsR := 1 + 4*math.Pi*0.005/1000/0.001
	epsInf := 1 + 4*math.Pi*0.001/1000/0.001
	assert.InDelta(Te, epsR, res.EpsR, 1e-6)
	require.NotNil(Te, res.EpsInf)
	assert.InDelta(Te, epsInf, *res.EpsInf, 1e-6)
	require.NotNil(Te, res.AlphaR)
	assert.InDelta(Te, (epsR-diel.DefaultEpsBulk)/(4*math.Pi*0.25), *res.AlphaR, 1e-6)
	require.NotNil(Te, res.AlphaInf)
	assert.InDelta(Te, 1000, res.Volume, 1e-9)
	assert.Equal(Te, 10.0, res.Quantum)
	//zero, 2 clamped, 3 relaxed
	assert.Equal(Te, 6, res.Points)
	assert.Equal(Te, 1, res.Jumps.Total)
	assert.Equal(Te, 1, res.Jumps.Ionic)
}

func TestTable(Te *testing.T) {
	dir := Te.TempDir()
	zero, _, relaxed := writeInputs(Te, dir)
	dumpFile := filepath.Join(dir, "series.dat")
	args := append([]string{"--format", "table", "--cell", "10,10,10", "--alpha=false",
		"--log-level", "error", "--dump", dumpFile, zero}, relaxed...)
	out, err := execute(args...)
	require.NoError(Te, err)
	assert.Contains(Te, out, "Dielectric Constants:")
	assert.Contains(Te, out, "1.06")
	assert.NotContains(Te, out, "alpha values calculated")

	b, err := os.ReadFile(dumpFile)
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(Te, lines, 5) //header, zero and 3 relaxed
}

func TestConfigFile(Te *testing.T) {
	dir := Te.TempDir()
	zero, _, relaxed := writeInputs(Te, dir)
	conf := filepath.Join(dir, "dielectric.toml")
	require.NoError(Te, os.WriteFile(conf, []byte("[run]\nefield = 0.002\nalpha = false\n"), 0o644))
	args := append([]string{"--format", "table", "--cell", "10,10,10", "--json",
		"--log-level", "error", "--config", conf, zero}, relaxed...)
	out, err := execute(args...)
	require.NoError(Te, err)
	var res jsonResult
	require.NoError(Te, json.Unmarshal([]byte(out), &res))
	assert.InDelta(Te, 1+4*math.Pi*0.005/1000/0.002, res.EpsR, 1e-6)
	assert.Nil(Te, res.AlphaR)

	//flags win over the file
	args = append([]string{"--format", "table", "--cell", "10,10,10", "--json", "--efield", "0.001",
		"--log-level", "error", "--config", conf, zero}, relaxed...)
	out, err = execute(args...)
	require.NoError(Te, err)
	require.NoError(Te, json.Unmarshal([]byte(out), &res))
	assert.InDelta(Te, 1+4*math.Pi*0.005/1000/0.001, res.EpsR, 1e-6)
}

func TestConfigFileHighFrequency(Te *testing.T) {
	dir := Te.TempDir()
	zero, clamped, relaxed := writeInputs(Te, dir)
	conf := filepath.Join(dir, "dielectric.toml")
	require.NoError(Te, os.WriteFile(conf, []byte("[run]\nalpha = false\nhigh-frequency = false\n"), 0o644))
	base := []string{"--format", "table", "--cell", "10,10,10", "--json",
		"--log-level", "error", "--config", conf, "-c", clamped}

	//the file says no, the clamped-ion file alone doesn't change that
	out, err := execute(append(append(append([]string{}, base...), zero), relaxed...)...)
	require.NoError(Te, err)
	var res jsonResult
	require.NoError(Te, json.Unmarshal([]byte(out), &res))
	assert.Nil(Te, res.EpsInf)
	assert.Equal(Te, 6, res.Points)

	//the flag still wins over the file
	out, err = execute(append(append(append([]string{}, base...), "--high-frequency", zero), relaxed...)...)
	require.NoError(Te, err)
	res = jsonResult{}
	require.NoError(Te, json.Unmarshal([]byte(out), &res))
	require.NotNil(Te, res.EpsInf)
	assert.InDelta(Te, 1+4*math.Pi*0.001/1000/0.001, *res.EpsInf, 1e-6)
}

func TestErrors(Te *testing.T) {
	dir := Te.TempDir()
	zero, _, relaxed := writeInputs(Te, dir)
	base := []string{"--format", "table", "--log-level", "error", "--inclusion-fraction", "0.25"}

	args := append(append([]string{}, base...), "--cell", "10,10,10", "--high-frequency", zero)
	_, err := execute(append(args, relaxed...)...)
	assert.True(Te, errors.Is(err, diel.ErrMissingClampedSegment))

	//no cell in a table
	args = append(append([]string{}, base...), zero)
	_, err = execute(append(args, relaxed...)...)
	assert.Error(Te, err)

	args = append(append([]string{}, base...), "--cell", "10,10", zero)
	_, err = execute(append(args, relaxed...)...)
	assert.Error(Te, err)

	//no relaxed-ion file
	_, err = execute(append(append([]string{}, base...), "--cell", "10,10,10", zero)...)
	assert.Error(Te, err)

	args = append(append([]string{}, base...), "--cell", "10,10,10", zero, filepath.Join(dir, "missing.dat"))
	_, err = execute(args...)
	assert.True(Te, errors.Is(err, diel.ErrReadFailure))
}
