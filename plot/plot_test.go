package plot

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/pbanos/sapling/dataset"
)

func TestRender(t *testing.T) {
	d, err := dataset.New([][]float64{{0, 0, 5}, {1, 1, 5}, {0.5, 2, 5}}, []int{1, -1, 0})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	r := &Renderer{W: &buf, Width: 240, Height: 240, XAxis: 0, YAxis: 1, XLabel: "height", YLabel: "weight"}
	err = r.Render(d)
	if err != nil {
		t.Fatal(err)
	}
	svg := buf.String()
	for _, e := range []string{"<svg", "height", "weight", "positive", "negative", "zero"} {
		if !strings.Contains(svg, e) {
			t.Errorf("expected SVG to contain %s, got\n%s", e, svg)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Errorf("expected SVG to be closed, got\n%s", svg)
	}
}

func TestRenderDefaultAxisLabels(t *testing.T) {
	d, _ := dataset.New([][]float64{{0, 0, 5}, {1, 1, 5}}, []int{1, -1})
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.XAxis, r.YAxis = 2, 0
	if err := r.Render(d); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "x[2]") || !strings.Contains(buf.String(), "x[0]") {
		t.Errorf("expected axes named after their index, got\n%s", buf.String())
	}
}

func TestRenderErrors(t *testing.T) {
	d, _ := dataset.New([][]float64{{0, 0}}, []int{1})
	var buf bytes.Buffer
	for _, r := range []*Renderer{
		{W: &buf, Width: 100, Height: 100, XAxis: 0, YAxis: 2},
		{W: &buf, Width: 100, Height: 100, XAxis: -1, YAxis: 0},
		{W: &buf, Width: 40, Height: 100, XAxis: 0, YAxis: 1},
	} {
		if err := r.Render(d); err == nil {
			t.Errorf("expected error rendering with %+v", r)
		}
	}
	inf, _ := dataset.New([][]float64{{0, math.Inf(1)}, {1, 0}}, []int{1, -1})
	if err := NewRenderer(&buf).Render(inf); err == nil {
		t.Error("expected error rendering infinite values")
	}
	if err := NewRenderer(&buf).Render(d); err != nil {
		t.Errorf("unexpected error rendering with default renderer: %v", err)
	}
}
