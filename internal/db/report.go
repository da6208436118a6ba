package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// SurveyReport is one rendered report for a survey. RunID identifies
// the render run so a re-generated report never overwrites an earlier
// one.
type SurveyReport struct {
	ID        int    `json:"id"`
	SurveyID  int    `json:"survey_id"`
	RunID     string `json:"run_id"`
	Format    string `json:"format"`
	Size      int    `json:"size"`
	CreatedAt string `json:"created_at"`

	Content []byte `json:"-"`
}

// AddSurveyReport stores a rendered report and returns it with its
// assigned run ID.
func (db *DB) AddSurveyReport(surveyID int, format string, content []byte) (*SurveyReport, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("refusing to store empty report")
	}
	report := &SurveyReport{
		SurveyID:  surveyID,
		RunID:     uuid.NewString(),
		Format:    format,
		Size:      len(content),
		CreatedAt: nowISO(),
		Content:   content,
	}

	result, err := db.Exec(
		`INSERT INTO survey_reports (survey_id, run_id, format, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		report.SurveyID, report.RunID, report.Format, content, report.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store survey report: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	report.ID = int(id)
	return report, nil
}

// GetSurveyReport retrieves one report by run ID, content included.
func (db *DB) GetSurveyReport(runID string) (*SurveyReport, error) {
	var report SurveyReport
	err := db.QueryRow(
		`SELECT id, survey_id, run_id, format, length(content), content, created_at
		 FROM survey_reports WHERE run_id = ?`, runID,
	).Scan(&report.ID, &report.SurveyID, &report.RunID, &report.Format, &report.Size, &report.Content, &report.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get survey report: %w", err)
	}
	return &report, nil
}

// ListSurveyReports returns a survey's reports without content, newest
// first.
func (db *DB) ListSurveyReports(surveyID int) ([]SurveyReport, error) {
	rows, err := db.Query(
		`SELECT id, survey_id, run_id, format, length(content), created_at
		 FROM survey_reports WHERE survey_id = ? ORDER BY id DESC`, surveyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey reports: %w", err)
	}
	defer rows.Close()

	var reports []SurveyReport
	for rows.Next() {
		var report SurveyReport
		if err := rows.Scan(&report.ID, &report.SurveyID, &report.RunID, &report.Format, &report.Size, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan survey report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
