/*
Package plot draws datasets as SVG scatter plots of two of their features,
with examples coloured by the sign of their label.
*/
package plot

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/pbanos/sapling/dataset"
	"gonum.org/v1/gonum/floats"
	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

const (
	minSize = 40
	radius  = 3
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 160, A: 255}
	grey  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

/*
Renderer draws datasets on W as SVG images of Width x Height points, placing
every example by its value on the XAxis feature horizontally and the YAxis
feature vertically. Examples with a positive label are drawn red, those with a
negative label green and those labelled 0 grey. XLabel and YLabel name the
axes; when empty the axes are named after their index.
*/
type Renderer struct {
	W              io.Writer
	Width, Height  int
	XAxis, YAxis   int
	XLabel, YLabel string
}

// NewRenderer returns a Renderer of 640x480 images of features 0 and 1 on w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, Width: 640, Height: 480, XAxis: 0, YAxis: 1}
}

/*
Render takes a dataset and writes its scatter plot to the renderer's writer.
It returns an error if the axes are not features of the dataset, the plotted
features take infinite values, the image has no room for the plot or the plot
cannot be written.
*/
func (r *Renderer) Render(d *dataset.Dataset) error {
	if r.XAxis < 0 || r.XAxis >= d.Dims() || r.YAxis < 0 || r.YAxis >= d.Dims() {
		return fmt.Errorf("plotting features %d and %d of dataset with %d features", r.XAxis, r.YAxis, d.Dims())
	}
	if r.Width <= minSize || r.Height <= minSize {
		return fmt.Errorf("plotting on %dx%d image: too small", r.Width, r.Height)
	}
	xs, ys := d.Column(r.XAxis), d.Column(r.YAxis)
	if infinite(xs) || infinite(ys) {
		return fmt.Errorf("plotting features %d and %d: infinite values cannot be placed", r.XAxis, r.YAxis)
	}
	p := gonumplot.New()
	p.X.Label.Text = axisLabel(r.XLabel, r.XAxis)
	p.Y.Label.Text = axisLabel(r.YLabel, r.YAxis)
	var positive, negative, zero plotter.XYs
	for i := range xs {
		xy := plotter.XY{X: xs[i], Y: ys[i]}
		switch l := d.Label(i); {
		case l > 0:
			positive = append(positive, xy)
		case l < 0:
			negative = append(negative, xy)
		default:
			zero = append(zero, xy)
		}
	}
	for _, g := range []struct {
		name string
		xys  plotter.XYs
		c    color.Color
	}{
		{"positive", positive, red},
		{"negative", negative, green},
		{"zero", zero, grey},
	} {
		if len(g.xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(g.xys)
		if err != nil {
			return fmt.Errorf("plotting %s examples: %v", g.name, err)
		}
		s.GlyphStyle.Color = g.c
		s.GlyphStyle.Radius = vg.Points(radius)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(g.name, s)
	}
	c := vgsvg.New(vg.Points(float64(r.Width)), vg.Points(float64(r.Height)))
	p.Draw(draw.New(c))
	_, err := c.WriteTo(r.W)
	if err != nil {
		return fmt.Errorf("writing plot: %v", err)
	}
	return nil
}

func axisLabel(label string, axis int) string {
	if label != "" {
		return label
	}
	return fmt.Sprintf("x[%d]", axis)
}

func infinite(values []float64) bool {
	if len(values) == 0 {
		return false
	}
	return math.IsInf(floats.Min(values), -1) || math.IsInf(floats.Max(values), 1)
}
