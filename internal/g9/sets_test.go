package g9

import "testing"

const setExport = `Micro-g LaCoste g9 Set File
Project: Kern Plateau
Created: 2024/06/12

Set	Time	Sigma	Error	Uncert	Accept	Reject
1	10:02	4.21	1.33	2.10	118	2
2	10:32	3.98	1.26	2.05	120	0
3	11:02	5.50	1.74	2.40	96	24
`

func TestParseSetsTabDelimited(t *testing.T) {
	meta := ParseSets(setExport)
	if len(meta.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(meta.Rows))
	}

	r := meta.Rows[0]
	if r.ID != "1" {
		t.Errorf("ID = %q, want 1", r.ID)
	}
	if r.SetScatter == nil || *r.SetScatter != 4.21 {
		t.Errorf("SetScatter = %v, want 4.21", r.SetScatter)
	}
	if r.SetSigma == nil || *r.SetSigma != 1.33 {
		t.Errorf("SetSigma = %v, want 1.33", r.SetSigma)
	}
	if r.DropRMS == nil || *r.DropRMS != 2.10 {
		t.Errorf("DropRMS = %v, want 2.10", r.DropRMS)
	}
	if r.DropAccRatio == nil || *r.DropAccRatio != 98.3 {
		t.Errorf("DropAccRatio = %v, want 98.3", r.DropAccRatio)
	}

	// 96 of 120 accepted rounds to 80.0 exactly.
	if got := meta.Rows[2].DropAccRatio; got == nil || *got != 80.0 {
		t.Errorf("row 3 DropAccRatio = %v, want 80.0", got)
	}
}

func TestParseSetsCommaDelimited(t *testing.T) {
	text := "Set,Set Scatter,Error,Uncert,Accept,Reject\n1,3.5,1.1,2.0,100,0\n"
	meta := ParseSets(text)
	if len(meta.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(meta.Rows))
	}
	r := meta.Rows[0]
	if r.SetScatter == nil || *r.SetScatter != 3.5 {
		t.Errorf("SetScatter = %v, want 3.5 (bound via Set Scatter header)", r.SetScatter)
	}
	if r.DropAccRatio == nil || *r.DropAccRatio != 100.0 {
		t.Errorf("DropAccRatio = %v, want 100.0", r.DropAccRatio)
	}
}

func TestParseSetsHeaderFallback(t *testing.T) {
	// No line contains "Set" with a delimiter, so the parser assumes
	// the known layout: header at index 3 when more than 4 lines.
	text := "title\nsubtitle\nblurb\nA\tB\tC\n1\t2\t3\n4\t5\t6\n"
	meta := ParseSets(text)
	if len(meta.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(meta.Rows))
	}
	// None of the named columns exist, so ids come from row position.
	if meta.Rows[0].ID != "1" || meta.Rows[1].ID != "2" {
		t.Errorf("ids = %q, %q, want positional 1, 2", meta.Rows[0].ID, meta.Rows[1].ID)
	}
	if meta.Rows[0].SetScatter != nil {
		t.Errorf("SetScatter = %v, want nil for unbound column", *meta.Rows[0].SetScatter)
	}
}

func TestParseSetsShortFile(t *testing.T) {
	text := "Set\tSigma\tAccept\tReject\n1\t4.0\t110\t10\n"
	meta := ParseSets(text)
	if len(meta.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(meta.Rows))
	}
	if got := meta.Rows[0].DropAccRatio; got == nil || *got != 91.7 {
		t.Errorf("DropAccRatio = %v, want 91.7", got)
	}
}

func TestParseSetsSkipsMalformedRows(t *testing.T) {
	text := "Set\tSigma\tAccept\tReject\n1\t4.0\t110\t10\ngarbage\n2\t3.9\t120\t0\n"
	meta := ParseSets(text)
	if len(meta.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (single-column line skipped)", len(meta.Rows))
	}
}

func TestParseSetsZeroDropsNoRatio(t *testing.T) {
	text := "Set\tAccept\tReject\n1\t0\t0\n"
	meta := ParseSets(text)
	if len(meta.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(meta.Rows))
	}
	if meta.Rows[0].DropAccRatio != nil {
		t.Errorf("DropAccRatio = %v, want nil when accept+reject is 0", *meta.Rows[0].DropAccRatio)
	}
}

func TestParseSetsEmpty(t *testing.T) {
	if rows := ParseSets("").Rows; rows != nil {
		t.Errorf("rows = %v, want nil for empty input", rows)
	}
	if rows := ParseSets("\n\n  \n").Rows; rows != nil {
		t.Errorf("rows = %v, want nil for blank input", rows)
	}
}
