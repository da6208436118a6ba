package db

import (
	"database/sql"
	"fmt"
)

// Survey lifecycle statuses. A survey starts as StatusNew, moves through
// the preflight checklist, collects measurements and is then completed
// or archived. Deletion is soft: the row stays but drops out of lists.
const (
	StatusNew          = "new"
	StatusPreflight    = "preflight"
	StatusMeasurements = "measurements"
	StatusCompleted    = "completed"
	StatusArchived     = "archived"
	StatusDeleted      = "deleted"
	StatusError        = "error"
	StatusLocked       = "locked"
)

// StatusChoices lists every valid survey status, in lifecycle order.
var StatusChoices = []string{
	StatusNew,
	StatusPreflight,
	StatusMeasurements,
	StatusCompleted,
	StatusArchived,
	StatusDeleted,
	StatusError,
	StatusLocked,
}

// ValidStatus reports whether s is a known survey status.
func ValidStatus(s string) bool {
	for _, c := range StatusChoices {
		if s == c {
			return true
		}
	}
	return false
}

// Survey is one occupation of a gravity site.
type Survey struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	SiteCode       string `json:"site_code"`
	Operator       string `json:"operator"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
	PreflightStage int    `json:"preflight_stage"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// CreateSurvey inserts a new survey and fills in its ID and timestamps.
func (db *DB) CreateSurvey(s *Survey) error {
	if s.Status == "" {
		s.Status = StatusNew
	}
	if !ValidStatus(s.Status) {
		return fmt.Errorf("invalid survey status %q", s.Status)
	}
	now := nowISO()

	result, err := db.Exec(
		`INSERT INTO site_surveys (title, site_code, operator, status, notes, preflight_stage, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Title, s.SiteCode, s.Operator, s.Status, s.Notes, s.PreflightStage, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create survey: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	s.ID = int(id)
	s.CreatedAt = now
	s.UpdatedAt = now
	return nil
}

// GetSurvey retrieves a survey by ID, deleted ones included.
func (db *DB) GetSurvey(id int) (*Survey, error) {
	var s Survey
	err := db.QueryRow(
		`SELECT id, title, site_code, operator, status, notes, preflight_stage, created_at, updated_at
		 FROM site_surveys WHERE id = ?`, id,
	).Scan(&s.ID, &s.Title, &s.SiteCode, &s.Operator, &s.Status, &s.Notes, &s.PreflightStage, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("survey not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	return &s, nil
}

// ListSurveys returns all surveys except soft-deleted ones, newest
// first.
func (db *DB) ListSurveys() ([]Survey, error) {
	rows, err := db.Query(
		`SELECT id, title, site_code, operator, status, notes, preflight_stage, created_at, updated_at
		 FROM site_surveys WHERE status != ? ORDER BY id DESC`, StatusDeleted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query surveys: %w", err)
	}
	defer rows.Close()

	var surveys []Survey
	for rows.Next() {
		var s Survey
		if err := rows.Scan(&s.ID, &s.Title, &s.SiteCode, &s.Operator, &s.Status, &s.Notes, &s.PreflightStage, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		surveys = append(surveys, s)
	}
	return surveys, rows.Err()
}

// UpdateSurvey writes the editable fields of a survey.
func (db *DB) UpdateSurvey(s *Survey) error {
	if !ValidStatus(s.Status) {
		return fmt.Errorf("invalid survey status %q", s.Status)
	}
	now := nowISO()
	result, err := db.Exec(
		`UPDATE site_surveys
		 SET title = ?, site_code = ?, operator = ?, status = ?, notes = ?, preflight_stage = ?, updated_at = ?
		 WHERE id = ?`,
		s.Title, s.SiteCode, s.Operator, s.Status, s.Notes, s.PreflightStage, now, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update survey: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("survey not found")
	}
	s.UpdatedAt = now
	return nil
}

// SetSurveyStatus moves a survey to the given status.
func (db *DB) SetSurveyStatus(id int, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("invalid survey status %q", status)
	}
	result, err := db.Exec(
		`UPDATE site_surveys SET status = ?, updated_at = ? WHERE id = ?`,
		status, nowISO(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set survey status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("survey not found")
	}
	return nil
}

// SetPreflightStage records the highest checklist stage the operator has
// reached for a survey.
func (db *DB) SetPreflightStage(id, stage int) error {
	result, err := db.Exec(
		`UPDATE site_surveys SET preflight_stage = ?, updated_at = ? WHERE id = ?`,
		stage, nowISO(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set preflight stage: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("survey not found")
	}
	return nil
}

// DeleteSurvey soft-deletes a survey. Its measurements and files stay in
// place for audit until the row is purged by hand.
func (db *DB) DeleteSurvey(id int) error {
	return db.SetSurveyStatus(id, StatusDeleted)
}
