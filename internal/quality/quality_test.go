package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestClassifyLowerIsBetter(t *testing.T) {
	ladder := Ladder{"g": 1.5, "w": 2.0, "p": 5.0, "b": 10.0, "u": 20.0}

	tests := []struct {
		value *float64
		want  Level
		ok    bool
	}{
		{fp(1.2), Good, true},
		{fp(1.5), Good, true},
		{fp(1.9), Warn, true},
		{fp(7.0), Poor, true},
		{fp(10.0), Bad, true},
		{fp(15.0), Bad, true},   // above b, inside u -> fallback to bad
		{fp(25.0), Unusable, true},
		{nil, "", false},
	}
	for _, tt := range tests {
		got, ok := Classify(tt.value, ladder, false)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestClassifyHigherIsBetter(t *testing.T) {
	ladder := Ladder{"g": 95, "w": 85, "p": 75, "b": 65, "u": 55}

	tests := []struct {
		value float64
		want  Level
	}{
		{97, Good},
		{90, Warn},
		{80, Poor},
		{70, Bad},
		{60, Bad}, // below b, above u -> fallback to bad
		{50, Unusable},
	}
	for _, tt := range tests {
		got, ok := Classify(fp(tt.value), ladder, true)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "value %v", tt.value)
	}
}

func TestClassifyEmptyLadder(t *testing.T) {
	_, ok := Classify(fp(1.0), Ladder{}, false)
	assert.False(t, ok)
	_, ok = Classify(fp(1.0), nil, false)
	assert.False(t, ok)
}

func TestClassifySparseLadderFallback(t *testing.T) {
	// Only "g" configured: anything above it degrades to warn.
	got, ok := Classify(fp(100.0), Ladder{"g": 1.0}, false)
	assert.True(t, ok)
	assert.Equal(t, Warn, got)

	// "g" and "p": degrade to poor.
	got, ok = Classify(fp(100.0), Ladder{"g": 1.0, "p": 5.0}, false)
	assert.True(t, ok)
	assert.Equal(t, Poor, got)

	// Only "u", value inside the bound: degrade chain ends at warn.
	got, ok = Classify(fp(10.0), Ladder{"u": 20.0}, false)
	assert.True(t, ok)
	assert.Equal(t, Warn, got)
}

func TestTooltipLowerIsBetter(t *testing.T) {
	ladder := Ladder{"g": 1.5, "w": 2.0, "u": 20.0}
	got := Tooltip(ladder, "µGal", false)
	want := "GOOD ≤ 1.50 µGal • WARN ≤ 2.00 µGal • UNUSABLE > 20.00 µGal"
	assert.Equal(t, want, got)
}

func TestTooltipHigherIsBetter(t *testing.T) {
	ladder := Ladder{"g": 95, "w": 85, "u": 55}
	got := Tooltip(ladder, "%", true)
	want := "GOOD ≥ 95.00 % • WARN ≥ 85.00 % • UNUSABLE < 55.00 %"
	assert.Equal(t, want, got)
}

func TestTooltipEmpty(t *testing.T) {
	assert.Equal(t, "", Tooltip(nil, "µGal", false))
}

func TestProfileByName(t *testing.T) {
	for _, name := range []string{"laboratory", "field", "recon"} {
		thr, err := ProfileByName(name)
		assert.NoError(t, err)
		for _, metric := range []string{"pss", "tu", "ups", "ss", "ssov", "acc"} {
			assert.Contains(t, thr, metric, "profile %s", name)
		}
	}
	_, err := ProfileByName("orbital")
	assert.Error(t, err)
}

func TestHigherIsBetter(t *testing.T) {
	assert.True(t, HigherIsBetter("acc"))
	for _, m := range []string{"pss", "tu", "ups", "ss", "ssov"} {
		assert.False(t, HigherIsBetter(m))
	}
}
