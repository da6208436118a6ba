package quality

import "fmt"

// Thresholds maps a metric short-code (pss, tu, ups, ss, ssov, acc) to
// its severity ladder.
type Thresholds map[string]Ladder

// Built-in threshold profiles. Laboratory sites are held to the tightest
// limits; recon occupations the loosest. Values are µGal except acc (%).
var (
	Laboratory = Thresholds{
		"pss":  {"g": 1.5, "w": 2.0, "p": 5.0, "b": 10.0, "u": 20.0},
		"tu":   {"g": 11.0, "w": 12.0, "p": 13.0, "b": 20.0, "u": 25.0},
		"ups":  {"g": 15.0, "w": 20.0, "p": 65.0, "b": 70.0, "u": 75.0},
		"ss":   {"g": 50.0, "w": 60.0, "p": 70.0, "b": 80.0, "u": 100.0},
		"ssov": {"g": 5.0, "w": 7.0, "p": 10.0, "b": 15.0, "u": 20.0},
		"acc":  {"g": 95.0, "w": 85.0, "p": 75.0, "b": 65.0, "u": 55.0},
	}

	FieldSurvey = Thresholds{
		"pss":  {"g": 5.0, "w": 10.0, "p": 15.0, "b": 20.0, "u": 30.0},
		"tu":   {"g": 15.0, "w": 20.0, "p": 25.0, "b": 30.0, "u": 40.0},
		"ups":  {"g": 25.0, "w": 35.0, "p": 50.0, "b": 65.0, "u": 80.0},
		"ss":   {"g": 80.0, "w": 100.0, "p": 120.0, "b": 150.0, "u": 200.0},
		"ssov": {"g": 10.0, "w": 15.0, "p": 20.0, "b": 25.0, "u": 30.0},
		"acc":  {"g": 90.0, "w": 80.0, "p": 70.0, "b": 60.0, "u": 50.0},
	}

	Recon = Thresholds{
		"pss":  {"g": 10.0, "w": 15.0, "p": 25.0, "b": 35.0, "u": 50.0},
		"tu":   {"g": 25.0, "w": 30.0, "p": 40.0, "b": 50.0, "u": 70.0},
		"ups":  {"g": 40.0, "w": 55.0, "p": 75.0, "b": 100.0, "u": 120.0},
		"ss":   {"g": 120.0, "w": 150.0, "p": 180.0, "b": 220.0, "u": 300.0},
		"ssov": {"g": 20.0, "w": 25.0, "p": 30.0, "b": 40.0, "u": 50.0},
		"acc":  {"g": 85.0, "w": 75.0, "p": 65.0, "b": 55.0, "u": 45.0},
	}
)

// ProfileByName resolves a named built-in threshold profile.
func ProfileByName(name string) (Thresholds, error) {
	switch name {
	case "laboratory":
		return Laboratory, nil
	case "field":
		return FieldSurvey, nil
	case "recon":
		return Recon, nil
	default:
		return nil, fmt.Errorf("unknown threshold profile %q (want laboratory, field or recon)", name)
	}
}

// HigherIsBetter reports the classification direction for a metric code.
// The drop acceptance percentage is the only metric where larger is better.
func HigherIsBetter(metric string) bool {
	return metric == "acc"
}
