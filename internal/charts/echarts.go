// Package charts renders the per-survey gravity chart: an interactive
// HTML version for the browser and a PNG version for stored reports.
// Both draw from the same chart payload so the two never disagree.
package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/geodesy-data/gravity.report/internal/analysis"
)

// RenderGravityHTML writes an interactive gravity chart for the payload.
// Measurements without gravity render as gaps so positions stay aligned
// with the labels.
func RenderGravityHTML(w io.Writer, title string, payload analysis.ChartPayload) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1100px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle(payload)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Gravity (µGal)", Scale: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Measurement"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(payload.Labels)
	line.AddSeries("gravity", lineData(payload.Gravity),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true), SymbolSize: 8}),
		markLines(payload.Lines),
	)
	line.AddSeries("gravity - tu", lineData(payload.BandLow),
		charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Opacity: opts.Float(0.5)}),
	)
	line.AddSeries("gravity + tu", lineData(payload.BandHigh),
		charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Opacity: opts.Float(0.5)}),
	)

	return line.Render(w)
}

func subtitle(payload analysis.ChartPayload) string {
	if payload.Lines.Weighted == nil {
		return fmt.Sprintf("%d measurements", len(payload.Labels))
	}
	return fmt.Sprintf("%d measurements, weighted mean %.1f µGal", len(payload.Labels), *payload.Lines.Weighted)
}

func lineData(values []*float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(values))
	for _, v := range values {
		if v == nil {
			data = append(data, opts.LineData{Value: nil})
			continue
		}
		data = append(data, opts.LineData{Value: *v})
	}
	return data
}

// markLines turns the defined reference lines into series mark lines.
func markLines(lines analysis.ChartLines) charts.SeriesOpts {
	type ref struct {
		name  string
		value *float64
	}
	refs := []ref{
		{"avg", lines.Avg},
		{"weighted", lines.Weighted},
		{"min", lines.Min},
		{"max", lines.Max},
	}
	var seriesOpts []charts.SeriesOpts
	for _, r := range refs {
		if r.value == nil {
			continue
		}
		seriesOpts = append(seriesOpts, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
			Name:  r.name,
			YAxis: *r.value,
		}))
	}
	return func(s *charts.SingleSeries) {
		for _, o := range seriesOpts {
			o(s)
		}
	}
}
