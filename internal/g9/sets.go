package g9

import (
	"math"
	"strconv"
	"strings"
)

// SetRow is one row of the per-set drop-reduction table.
type SetRow struct {
	ID           string   `json:"id"`
	SetScatter   *float64 `json:"set_scatter"`
	SetSigma     *float64 `json:"set_sigma"`
	DropRMS      *float64 `json:"drop_rms"`
	DropAccept   *float64 `json:"drop_accept"`
	DropReject   *float64 `json:"drop_reject"`
	DropAccRatio *float64 `json:"drop_acc_ratio"`
}

// SetMeta is everything extracted from one set export.
type SetMeta struct {
	Rows []SetRow `json:"rows"`
}

// ParseSets parses the decoded text of a *.set.txt export. The header row
// usually sits at line 4 but older layouts move it around, so the first 10
// non-blank lines are scanned for a line containing "Set" plus a tab or
// comma. When no line qualifies the parser falls back to line index 3 for
// files longer than 4 lines, else line 0. The fallback index is tuned to
// the known g9 layout, not guaranteed general.
func ParseSets(text string) SetMeta {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return SetMeta{}
	}

	hdrIdx := -1
	scan := len(lines)
	if scan > 10 {
		scan = 10
	}
	for i := 0; i < scan; i++ {
		if strings.Contains(lines[i], "Set") &&
			(strings.Contains(lines[i], "\t") || strings.Contains(lines[i], ",")) {
			hdrIdx = i
			break
		}
	}
	if hdrIdx < 0 {
		if len(lines) > 4 {
			hdrIdx = 3
		} else {
			hdrIdx = 0
		}
	}

	sep := ","
	if strings.Contains(lines[hdrIdx], "\t") {
		sep = "\t"
	}

	hdr := splitFields(lines[hdrIdx], sep)
	col := func(name string) int {
		for i, h := range hdr {
			if h == name {
				return i
			}
		}
		return -1
	}

	scatterCol := col("Sigma")
	if scatterCol < 0 {
		scatterCol = col("Set Scatter")
	}
	idx := struct{ set, scatter, sigma, rms, acc, rej int }{
		set:     col("Set"),
		scatter: scatterCol,
		sigma:   col("Error"),
		rms:     col("Uncert"),
		acc:     col("Accept"),
		rej:     col("Reject"),
	}

	var rows []SetRow
	for _, ln := range lines[hdrIdx+1:] {
		cols := splitFields(ln, sep)
		if len(cols) < 2 {
			continue
		}
		get := func(i int) string {
			if i < 0 || i >= len(cols) {
				return ""
			}
			return cols[i]
		}

		acc := ParseFloat(get(idx.acc))
		rej := ParseFloat(get(idx.rej))
		var ratio *float64
		if acc != nil && rej != nil {
			if total := *acc + *rej; total > 0 {
				r := math.Round(*acc*1000.0/total) / 10.0
				ratio = &r
			}
		}

		id := get(idx.set)
		if id == "" {
			id = strconv.Itoa(len(rows) + 1)
		}
		rows = append(rows, SetRow{
			ID:           id,
			SetScatter:   ParseFloat(get(idx.scatter)),
			SetSigma:     ParseFloat(get(idx.sigma)),
			DropRMS:      ParseFloat(get(idx.rms)),
			DropAccept:   acc,
			DropReject:   rej,
			DropAccRatio: ratio,
		})
	}
	return SetMeta{Rows: rows}
}

func splitFields(line, sep string) []string {
	parts := strings.Split(line, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
