package db

import (
	"testing"

	"github.com/geodesy-data/gravity.report/internal/g9"
)

const projectExport = `Project Name: PFO occupation 12
Site Name: Pinyon Flat
Site Code: PFO
Latitude (dd,+N): 33.609
Gravity (µGal): 979171234.5
Total Uncertainty: 2.1
Project Set Scatter (µGal): 1.2
Total Drops Accepted: 2376
Total Drops Rejected: 24
`

func createTestMeasurement(t *testing.T, db *DB, surveyID int, title string) *Measurement {
	t.Helper()
	m := &Measurement{SurveyID: surveyID, Title: title}
	if err := db.CreateMeasurement(m); err != nil {
		t.Fatalf("CreateMeasurement failed: %v", err)
	}
	return m
}

func createTestSurvey(t *testing.T, db *DB, title string) *Survey {
	t.Helper()
	s := &Survey{Title: title}
	if err := db.CreateSurvey(s); err != nil {
		t.Fatalf("CreateSurvey failed: %v", err)
	}
	return s
}

func TestMeasurementCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	s := createTestSurvey(t, db, "S")
	m := createTestMeasurement(t, db, s.ID, "Run 1")

	m.Title = "Run 1 (redo)"
	m.Notes = "laser relocked after set 4"
	if err := db.UpdateMeasurement(m); err != nil {
		t.Fatalf("UpdateMeasurement failed: %v", err)
	}

	got, err := db.GetMeasurement(m.ID)
	if err != nil {
		t.Fatalf("GetMeasurement failed: %v", err)
	}
	if got.Title != m.Title || got.Notes != m.Notes || got.SurveyID != s.ID {
		t.Errorf("GetMeasurement = %+v, want %+v", got, m)
	}

	list, err := db.ListMeasurements(s.ID)
	if err != nil {
		t.Fatalf("ListMeasurements failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != m.ID {
		t.Errorf("ListMeasurements = %+v", list)
	}

	if err := db.DeleteMeasurement(m.ID); err != nil {
		t.Fatalf("DeleteMeasurement failed: %v", err)
	}
	if _, err := db.GetMeasurement(m.ID); err == nil {
		t.Error("expected error after delete")
	}
}

func TestProjectImportRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	s := createTestSurvey(t, db, "S")
	m := createTestMeasurement(t, db, s.ID, "Run 1")

	meta := g9.ParseProject(projectExport)
	if err := db.PutProjectImport(m.ID, "project.txt", projectExport, meta); err != nil {
		t.Fatalf("PutProjectImport failed: %v", err)
	}

	rec, got, err := db.GetProjectImport(m.ID)
	if err != nil {
		t.Fatalf("GetProjectImport failed: %v", err)
	}
	if rec == nil || got == nil {
		t.Fatal("import not found after store")
	}
	if rec.Filename != "project.txt" || rec.RawText != projectExport {
		t.Errorf("stored record mismatch: %+v", rec)
	}
	if got.Site.SiteCode != "PFO" {
		t.Errorf("site code = %q, want PFO", got.Site.SiteCode)
	}
	if got.QM.Gravity == nil || *got.QM.Gravity != 979171234.5 {
		t.Errorf("gravity = %v, want 979171234.5", got.QM.Gravity)
	}

	// Re-import replaces the stored row.
	if err := db.PutProjectImport(m.ID, "project2.txt", "Gravity: 1.0\n", g9.ParseProject("Gravity: 1.0\n")); err != nil {
		t.Fatalf("second PutProjectImport failed: %v", err)
	}
	rec, _, err = db.GetProjectImport(m.ID)
	if err != nil {
		t.Fatalf("GetProjectImport failed: %v", err)
	}
	if rec.Filename != "project2.txt" {
		t.Errorf("re-import did not replace row: %+v", rec)
	}
}

func TestSetImportRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	s := createTestSurvey(t, db, "S")
	m := createTestMeasurement(t, db, s.ID, "Run 1")

	text := "Set\tSigma\tError\tUncert\tAccept\tReject\n1\t1.2\t0.5\t2.0\t99\t1\n"
	meta := g9.ParseSets(text)
	if err := db.PutSetImport(m.ID, "set.txt", text, meta); err != nil {
		t.Fatalf("PutSetImport failed: %v", err)
	}

	rec, got, err := db.GetSetImport(m.ID)
	if err != nil {
		t.Fatalf("GetSetImport failed: %v", err)
	}
	if rec == nil || got == nil {
		t.Fatal("import not found after store")
	}
	if len(got.Rows) != 1 || got.Rows[0].ID != "1" {
		t.Errorf("set rows = %+v", got.Rows)
	}
}

func TestGetImportMissing(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	s := createTestSurvey(t, db, "S")
	m := createTestMeasurement(t, db, s.ID, "Run 1")

	rec, meta, err := db.GetProjectImport(m.ID)
	if err != nil {
		t.Fatalf("GetProjectImport failed: %v", err)
	}
	if rec != nil || meta != nil {
		t.Error("expected nil record for measurement without import")
	}
}

func TestDeleteMeasurementCascades(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	s := createTestSurvey(t, db, "S")
	m := createTestMeasurement(t, db, s.ID, "Run 1")
	if err := db.PutProjectImport(m.ID, "p.txt", projectExport, g9.ParseProject(projectExport)); err != nil {
		t.Fatalf("PutProjectImport failed: %v", err)
	}

	if err := db.DeleteMeasurement(m.ID); err != nil {
		t.Fatalf("DeleteMeasurement failed: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM measurement_project WHERE measurement_id = ?`, m.ID).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("project import survived measurement delete")
	}
}
