// Package units provides shared constants for the quality metric
// short-codes and their display units
package units

// Metric short-codes
const (
	PSS  = "pss"  // Project Set Scatter (µGal)
	TU   = "tu"   // Total Uncertainty (µGal)
	UPS  = "ups"  // Uncertainty per Set (µGal)
	SS   = "ss"   // Set Scatter (µGal)
	SSOV = "ssov" // Set Scatter overall (µGal)
	ACC  = "acc"  // Drop acceptance (%)
)

// MicroGal is the display unit for all gravity metrics.
const MicroGal = "µGal"

// Percent is the display unit for the acceptance metric.
const Percent = "%"

// ValidMetrics contains all valid metric short-codes
var ValidMetrics = []string{PSS, TU, UPS, SS, SSOV, ACC}

// IsValid checks if the given code is a known metric short-code
func IsValid(metric string) bool {
	for _, m := range ValidMetrics {
		if metric == m {
			return true
		}
	}
	return false
}

// Unit returns the display unit for a metric short-code
func Unit(metric string) string {
	if metric == ACC {
		return Percent
	}
	return MicroGal
}

// Label returns the human-readable name of a metric short-code
func Label(metric string) string {
	switch metric {
	case PSS:
		return "Project Set Scatter"
	case TU:
		return "Total Uncertainty"
	case UPS:
		return "Uncertainty per Set"
	case SS:
		return "Set Scatter"
	case SSOV:
		return "Set Scatter (overall)"
	case ACC:
		return "Drop Acceptance"
	default:
		return metric
	}
}
