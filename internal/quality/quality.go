// Package quality classifies gravimeter quality metrics against severity
// ladders: ordered good/warn/poor/bad/unusable thresholds defined per
// metric. Most metrics (scatter, uncertainty) are lower-is-better; the
// drop acceptance percentage is higher-is-better.
package quality

import (
	"fmt"
	"strings"
)

// Level is a discrete quality label.
type Level string

const (
	Good     Level = "good"
	Warn     Level = "warn"
	Poor     Level = "poor"
	Bad      Level = "bad"
	Unusable Level = "unusable"
)

// Ladder maps severity codes to numeric limits. Codes are "g", "w", "p",
// "b" and "u"; any subset may be configured. Interpretation always walks
// the codes in fixed severity order regardless of which are present.
type Ladder map[string]float64

// severityOrder is the walk order for classification and tooltips. The
// "u" code is handled separately: it is a strict outer bound, not a
// membership threshold.
var severityOrder = []struct {
	code  string
	level Level
}{
	{"g", Good},
	{"w", Warn},
	{"p", Poor},
	{"b", Bad},
}

// levelNames are the tooltip labels per severity code.
var levelNames = map[string]string{
	"g": "GOOD",
	"w": "WARN",
	"p": "POOR",
	"b": "BAD",
	"u": "UNUSABLE",
}

// Classify maps a metric value to a quality level. For lower-is-better
// metrics the first code whose limit is >= value wins; for
// higher-is-better the comparison flips. When no configured code matches,
// the fallback runs: past the "u" bound -> Unusable, else Bad if "b" is
// configured, else Poor if "p" is, else Warn. The fallback priority is
// kept exactly as the historical behaviour even though b > p > warn is
// not independently justified.
//
// Returns ok=false when the value is nil or the ladder is empty.
func Classify(value *float64, ladder Ladder, higherIsBetter bool) (level Level, ok bool) {
	if value == nil || len(ladder) == 0 {
		return "", false
	}
	v := *value

	within := func(limit float64) bool {
		if higherIsBetter {
			return v >= limit
		}
		return v <= limit
	}

	for _, s := range severityOrder {
		limit, configured := ladder[s.code]
		if !configured {
			continue
		}
		if within(limit) {
			return s.level, true
		}
	}

	if bound, configured := ladder["u"]; configured {
		exceeded := v > bound
		if higherIsBetter {
			exceeded = v < bound
		}
		if exceeded {
			return Unusable, true
		}
	}
	if _, configured := ladder["b"]; configured {
		return Bad, true
	}
	if _, configured := ladder["p"]; configured {
		return Poor, true
	}
	return Warn, true
}

// Tooltip renders a ladder as a human-readable threshold summary, e.g.
// "GOOD ≤ 1.50 µGal • WARN ≤ 2.00 µGal • UNUSABLE > 20.00 µGal".
// Configured codes are listed in severity order; the "u" bound comes last
// with a strict comparator. Returns "" for an empty ladder.
func Tooltip(ladder Ladder, unit string, higherIsBetter bool) string {
	if len(ladder) == 0 {
		return ""
	}

	comparator := "≤"
	if higherIsBetter {
		comparator = "≥"
	}

	var parts []string
	for _, s := range severityOrder {
		limit, configured := ladder[s.code]
		if !configured {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", levelNames[s.code], comparator, formatLimit(limit, unit)))
	}

	if bound, configured := ladder["u"]; configured {
		strict := ">"
		if higherIsBetter {
			strict = "<"
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", levelNames["u"], strict, formatLimit(bound, unit)))
	}

	return strings.Join(parts, " • ")
}

func formatLimit(limit float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%.2f", limit)
	}
	return fmt.Sprintf("%.2f %s", limit, unit)
}
