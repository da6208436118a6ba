package db

import "testing"

func TestNewDBAppliesMigrations(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	version, dirty, err := db.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if dirty {
		t.Error("fresh database is dirty")
	}
	if version == 0 {
		t.Error("no migrations applied on open")
	}

	// Every table the queries touch must exist.
	for _, table := range []string{
		"site_surveys", "measurements", "measurement_project", "measurement_set",
		"measurement_images", "measurement_graphs", "site_files",
		"preflight_answers", "survey_reports",
	} {
		var count int
		err := db.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("sqlite_master query failed: %v", err)
		}
		if count != 1 {
			t.Errorf("table %s missing after migration", table)
		}
	}
}

func TestMigrateDownAndBack(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	if err := db.MigrateDown(); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'site_surveys'`,
	).Scan(&count)
	if err != nil {
		t.Fatalf("sqlite_master query failed: %v", err)
	}
	if count != 0 {
		t.Error("site_surveys survived MigrateDown")
	}

	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	s := &Survey{Title: "after re-up"}
	if err := db.CreateSurvey(s); err != nil {
		t.Fatalf("CreateSurvey after re-up failed: %v", err)
	}
}

func TestMigrateUpIdempotent(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	// NewDB already migrated; a second run must be a no-op.
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}
}
