package units

import "testing"

func TestIsValid(t *testing.T) {
	for _, m := range ValidMetrics {
		if !IsValid(m) {
			t.Errorf("IsValid(%q) = false, want true", m)
		}
	}
	for _, m := range []string{"", "gravity", "PSS", "mph"} {
		if IsValid(m) {
			t.Errorf("IsValid(%q) = true, want false", m)
		}
	}
}

func TestUnit(t *testing.T) {
	if got := Unit(ACC); got != Percent {
		t.Errorf("Unit(acc) = %q, want %q", got, Percent)
	}
	for _, m := range []string{PSS, TU, UPS, SS, SSOV} {
		if got := Unit(m); got != MicroGal {
			t.Errorf("Unit(%q) = %q, want %q", m, got, MicroGal)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(TU); got != "Total Uncertainty" {
		t.Errorf("Label(tu) = %q", got)
	}
	if got := Label("custom"); got != "custom" {
		t.Errorf("Label passthrough = %q", got)
	}
}
