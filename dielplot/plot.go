/*
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package dielplot draws the cell dipole series, so one can check by eye
// that the polarization-quantum jumps were removed properly.
package dielplot

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	diel "github.com/rmera/dielectric"
)

// Size of the whole figure, both panels.
var (
	Width  = vg.Inch * 15
	Height = vg.Inch * 6
)

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

// Panel returns a plot of the total, electronic and ionic dipoles in
// S against time, with a dashed line at zero.
func Panel(S *diel.Series, title string) (*plot.Plot, error) {
	if S == nil || S.Len() == 0 {
		return nil, fmt.Errorf("dielplot: given empty series")
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Time / au"
	p.Y.Label.Text = "Cell Dipole"
	p.Add(plotter.NewGrid())
	data := []struct {
		name string
		y    []float64
	}{
		{"Total", S.Total},
		{"Electronic", S.Electronic},
		{"Ionic", S.Ionic},
	}
	for i, v := range data {
		l, err := plotter.NewLine(xys(S.Time, v.y))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = plotutil.Color(i)
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(v.name, l)
	}
	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)
	p.Legend.Top = true
	return p, nil
}

// Plot saves to filename a PNG with the uncorrected series on the left
// and the corrected one on the right.
func Plot(raw, corrected *diel.Series, filename string) error {
	left, err := Panel(raw, "Uncorrected Cell Dipole")
	if err != nil {
		return err
	}
	right, err := Panel(corrected, "Corrected Cell Dipole")
	if err != nil {
		return err
	}
	img := vgimg.New(Width, Height)
	dc := draw.New(img)
	t := draw.Tiles{
		Rows: 1,
		Cols: 2,
		PadX: 8 * vg.Millimeter,
	}
	canvases := plot.Align([][]*plot.Plot{{left, right}}, t, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	w, err := os.Create(filename)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
