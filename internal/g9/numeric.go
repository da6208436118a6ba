package g9

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseFloat leniently extracts a number from an export field. Comma
// decimal separators are normalised to dots, then the first signed decimal
// substring is taken, so "1,5 µGal" parses as 1.5. Returns nil when the
// field contains no number at all.
func ParseFloat(s string) *float64 {
	t := strings.ReplaceAll(s, ",", ".")
	m := numberPattern.FindString(t)
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseInt applies ParseFloat and rounds to the nearest integer.
func ParseInt(s string) *int {
	f := ParseFloat(s)
	if f == nil || math.IsNaN(*f) {
		return nil
	}
	n := int(math.Round(*f))
	return &n
}
