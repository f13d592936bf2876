// Package report renders two named benchmark series that share one
// sweep axis as a labeled comparison chart. Pure presentation: nothing
// here touches the benchmark data model.
package report

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ChartExt is the fixed extension of persisted charts; gonum/plot
// picks the vector backend from it.
const ChartExt = ".pdf"

// Series is one named curve.
type Series struct {
	Name   string
	Values []float64
}

// ComparisonChart builds a two-curve line chart over the sweep values.
// The C values become categorical tick labels rather than a numeric
// scale: regularization strengths span orders of magnitude and compare
// better as discrete points.
func ComparisonChart(title, yLabel string, cs []float64, a, b Series) (*plot.Plot, error) {
	if len(a.Values) != len(cs) || len(b.Values) != len(cs) {
		return nil, fmt.Errorf("chart %q: series lengths %d/%d do not match %d sweep values",
			title, len(a.Values), len(b.Values), len(cs))
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("chart %q: no sweep values", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "C"
	p.Y.Label.Text = yLabel

	labels := make([]string, len(cs))
	for i, c := range cs {
		labels[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	p.NominalX(labels...)

	lineA, err := newCurve(a.Values)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", title, err)
	}
	lineA.Color = color.RGBA{R: 200, A: 255}
	lineA.Dashes = []vg.Length{vg.Points(6), vg.Points(2)}

	lineB, err := newCurve(b.Values)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", title, err)
	}
	lineB.Color = color.RGBA{B: 200, A: 255}

	p.Add(lineA, lineB)
	p.Legend.Add(a.Name, lineA)
	p.Legend.Add(b.Name, lineB)
	p.Legend.Top = true

	return p, nil
}

// Save renders the chart to base+ChartExt and returns the full path.
func Save(title, yLabel string, cs []float64, a, b Series, base string) (string, error) {
	p, err := ComparisonChart(title, yLabel, cs, a, b)
	if err != nil {
		return "", err
	}

	path := base + ChartExt
	if err := p.Save(5*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("chart %q: save %s: %w", title, path, err)
	}
	return path, nil
}

func newCurve(values []float64) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(2)
	return line, nil
}
