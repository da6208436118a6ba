package main

import (
	"path/filepath"
	"testing"

	"github.com/geodesy-data/gravity.report/internal/db"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "main_test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestRunCommandUnknown(t *testing.T) {
	database := openTestDB(t)
	if err := runCommand(database, []string{"launch"}); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestRunMigrateCommand(t *testing.T) {
	database := openTestDB(t)

	if err := runCommand(database, []string{"migrate", "status"}); err != nil {
		t.Errorf("migrate status failed: %v", err)
	}
	if err := runCommand(database, []string{"migrate", "down"}); err != nil {
		t.Errorf("migrate down failed: %v", err)
	}
	if err := runCommand(database, []string{"migrate", "up"}); err != nil {
		t.Errorf("migrate up failed: %v", err)
	}
	if err := runCommand(database, []string{"migrate"}); err == nil {
		t.Error("expected usage error for bare migrate")
	}
	if err := runCommand(database, []string{"migrate", "force", "one"}); err == nil {
		t.Error("expected error for non-numeric version")
	}
}
