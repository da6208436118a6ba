package charts

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/geodesy-data/gravity.report/internal/analysis"
)

// errorPoints couples positions with symmetric Y error bars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// RenderGravityPNG writes a static gravity chart for the payload. Each
// measurement is a point with its uncertainty as a vertical error bar;
// the average and weighted-average reference lines span the selection.
func RenderGravityPNG(w io.Writer, title string, payload analysis.ChartPayload) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Measurement"
	p.Y.Label.Text = "Gravity (µGal)"
	p.NominalX(payload.Labels...)

	pts := errorPoints{}
	for i, g := range payload.Gravity {
		if g == nil {
			continue
		}
		tu := 0.0
		if payload.BandHigh[i] != nil {
			tu = *payload.BandHigh[i] - *g
		}
		pts.XYs = append(pts.XYs, plotter.XY{X: float64(i), Y: *g})
		pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{tu, tu})
	}
	if len(pts.XYs) == 0 {
		return fmt.Errorf("no plottable gravity values")
	}

	scatter, err := plotter.NewScatter(pts.XYs)
	if err != nil {
		return fmt.Errorf("failed to build scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(3)

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return fmt.Errorf("failed to build error bars: %w", err)
	}

	p.Add(scatter, bars)
	p.Legend.Add("gravity ± tu", scatter)

	addReferenceLine(p, "avg", payload.Lines.Avg, len(payload.Labels), color.RGBA{R: 0x2c, G: 0x7f, B: 0xb8, A: 0xff})
	addReferenceLine(p, "weighted", payload.Lines.Weighted, len(payload.Labels), color.RGBA{R: 0xd9, G: 0x53, B: 0x1e, A: 0xff})

	wt, err := p.WriterTo(9*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

func addReferenceLine(p *plot.Plot, name string, value *float64, n int, c color.Color) {
	if value == nil || n == 0 {
		return
	}
	line, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: *value},
		{X: float64(n) - 0.5, Y: *value},
	})
	if err != nil {
		return
	}
	line.LineStyle.Color = c
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	p.Legend.Add(name, line)
}
