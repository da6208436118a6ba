package main

import (
	"fmt"
	"strconv"

	"github.com/geodesy-data/gravity.report/internal/db"
)

// runCommand dispatches a CLI subcommand against the opened database.
func runCommand(database *db.DB, args []string) error {
	switch args[0] {
	case "migrate":
		return runMigrateCommand(database, args[1:])
	default:
		return fmt.Errorf("unknown command %q (want migrate)", args[0])
	}
}

// runMigrateCommand handles "migrate <up|down|status|force|goto>".
// Opening the database already applies pending migrations, so "up" is
// mostly useful after a manual "down" or "force".
func runMigrateCommand(database *db.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: migrate <up|down|status|force <version>|goto <version>>")
	}

	switch args[0] {
	case "up":
		if err := database.MigrateUp(); err != nil {
			return err
		}
		fmt.Println("migrations applied")
		return nil

	case "down":
		if err := database.MigrateDown(); err != nil {
			return err
		}
		fmt.Println("rolled back one migration")
		return nil

	case "status":
		version, dirty, err := database.MigrateVersion()
		if err != nil {
			return err
		}
		fmt.Printf("version: %d\ndirty: %v\n", version, dirty)
		return nil

	case "force":
		if len(args) < 2 {
			return fmt.Errorf("usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := database.MigrateForce(version); err != nil {
			return err
		}
		fmt.Printf("forced version to %d\n", version)
		return nil

	case "goto":
		if len(args) < 2 {
			return fmt.Errorf("usage: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := database.MigrateTo(uint(version)); err != nil {
			return err
		}
		fmt.Printf("migrated to version %d\n", version)
		return nil

	default:
		return fmt.Errorf("unknown migrate subcommand %q", args[0])
	}
}
