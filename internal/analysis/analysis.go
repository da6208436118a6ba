// Package analysis aggregates measurement summaries into descriptive
// statistics, an uncertainty-weighted gravity average and a plot-ready
// chart payload. All functions are pure: they read only their arguments
// and never touch storage.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is the per-measurement aggregation unit. It is a read-only
// projection built from a persisted project import; optional fields are
// nil when the import lacked them.
type Summary struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	CreatedAt     string   `json:"created_at"`
	Gravity       *float64 `json:"gravity"`
	TU            *float64 `json:"tu"`
	DropsAccepted *int     `json:"drops_accepted"`
	DropsRejected *int     `json:"drops_rejected"`
	AcceptedPct   *float64 `json:"accepted_pct"`
}

// Stats holds descriptive statistics over one numeric field. Min, Max,
// Avg and Stdev are nil when no values were available; Stdev is 0 for a
// single value and the sample (N-1) standard deviation otherwise.
type Stats struct {
	Count int      `json:"count"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Avg   *float64 `json:"avg"`
	Stdev *float64 `json:"stdev"`
}

// CalcStats computes descriptive statistics over an optional-valued
// series, dropping nil and NaN entries first.
func CalcStats(values []*float64) Stats {
	var cleaned []float64
	for _, v := range values {
		if v != nil && !math.IsNaN(*v) {
			cleaned = append(cleaned, *v)
		}
	}
	if len(cleaned) == 0 {
		return Stats{}
	}

	min := floats.Min(cleaned)
	max := floats.Max(cleaned)
	avg := stat.Mean(cleaned, nil)

	stdev := 0.0
	if len(cleaned) > 1 {
		stdev = stat.StdDev(cleaned, nil)
	}

	return Stats{
		Count: len(cleaned),
		Min:   &min,
		Max:   &max,
		Avg:   &avg,
		Stdev: &stdev,
	}
}

// WeightedMean computes the uncertainty-weighted gravity average over the
// given summaries. Each measurement with both gravity and a positive
// total uncertainty contributes with weight 1/tu. Returns nil when no
// measurement qualifies.
func WeightedMean(summaries []Summary) *float64 {
	var values, weights []float64
	for _, m := range summaries {
		if m.Gravity == nil || m.TU == nil || *m.TU <= 0 {
			continue
		}
		values = append(values, *m.Gravity)
		weights = append(weights, 1.0/(*m.TU))
	}
	if len(values) == 0 {
		return nil
	}
	mean := stat.Mean(values, weights)
	return &mean
}

// ChartLines are the horizontal reference lines of the gravity chart.
// Each is present only when defined for the selection.
type ChartLines struct {
	Avg      *float64 `json:"avg,omitempty"`
	Weighted *float64 `json:"weighted,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

// ChartPayload is the plot-ready projection of a selection: parallel
// sequences ordered by measurement title. BandLow/BandHigh are the
// symmetric uncertainty band [gravity-tu, gravity+tu]; when gravity or tu
// is missing all three series carry nil at that position so the sequences
// stay aligned.
type ChartPayload struct {
	Labels   []string   `json:"labels"`
	Gravity  []*float64 `json:"gravity"`
	BandLow  []*float64 `json:"band_low"`
	BandHigh []*float64 `json:"band_high"`
	Lines    ChartLines `json:"lines"`
}

// BuildChartPayload builds the chart payload for the given summaries.
func BuildChartPayload(selected []Summary) ChartPayload {
	ordered := make([]Summary, len(selected))
	copy(ordered, selected)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Title < ordered[j].Title
	})

	payload := ChartPayload{
		Labels:   make([]string, 0, len(ordered)),
		Gravity:  make([]*float64, 0, len(ordered)),
		BandLow:  make([]*float64, 0, len(ordered)),
		BandHigh: make([]*float64, 0, len(ordered)),
	}
	var gravities []*float64
	for _, m := range ordered {
		payload.Labels = append(payload.Labels, m.Title)
		gravities = append(gravities, m.Gravity)
		if m.Gravity == nil || m.TU == nil {
			payload.Gravity = append(payload.Gravity, nil)
			payload.BandLow = append(payload.BandLow, nil)
			payload.BandHigh = append(payload.BandHigh, nil)
			continue
		}
		low := *m.Gravity - *m.TU
		high := *m.Gravity + *m.TU
		payload.Gravity = append(payload.Gravity, m.Gravity)
		payload.BandLow = append(payload.BandLow, &low)
		payload.BandHigh = append(payload.BandHigh, &high)
	}

	gravityStats := CalcStats(gravities)
	payload.Lines = ChartLines{
		Avg:      gravityStats.Avg,
		Weighted: WeightedMean(ordered),
		Min:      gravityStats.Min,
		Max:      gravityStats.Max,
	}
	return payload
}

// Report is the full aggregation result over a caller-selected subset of
// measurements.
type Report struct {
	Gravity         Stats        `json:"gravity"`
	GravityWeighted *float64     `json:"gravity_weighted"`
	TU              Stats        `json:"tu"`
	Drops           Stats        `json:"drops"`
	AcceptedPct     Stats        `json:"accepted_pct"`
	Chart           ChartPayload `json:"chart"`
}

// Analyze filters the summaries to the selected ids and aggregates them.
// Unknown ids are ignored; an empty selection yields empty statistics and
// a chart payload without reference lines.
func Analyze(all []Summary, selectedIDs []int) Report {
	selectedSet := make(map[int]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selectedSet[id] = true
	}
	var selected []Summary
	for _, m := range all {
		if selectedSet[m.ID] {
			selected = append(selected, m)
		}
	}

	var gravity, tu, drops, acceptedPct []*float64
	for _, m := range selected {
		gravity = append(gravity, m.Gravity)
		tu = append(tu, m.TU)
		if m.DropsAccepted != nil {
			d := float64(*m.DropsAccepted)
			drops = append(drops, &d)
		} else {
			drops = append(drops, nil)
		}
		acceptedPct = append(acceptedPct, m.AcceptedPct)
	}

	return Report{
		Gravity:         CalcStats(gravity),
		GravityWeighted: WeightedMean(selected),
		TU:              CalcStats(tu),
		Drops:           CalcStats(drops),
		AcceptedPct:     CalcStats(acceptedPct),
		Chart:           BuildChartPayload(selected),
	}
}
