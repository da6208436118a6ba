package db

import (
	"fmt"

	"github.com/geodesy-data/gravity.report/internal/checklist"
)

// PutPreflightAnswer upserts the answer to one checklist step for a
// survey.
func (db *DB) PutPreflightAnswer(surveyID int, stepCode string, a checklist.Answer) error {
	checked := 0
	if a.Checked {
		checked = 1
	}
	_, err := db.Exec(
		`INSERT INTO preflight_answers (survey_id, step_code, value, checked, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(survey_id, step_code) DO UPDATE SET
		   value = excluded.value, checked = excluded.checked, updated_at = excluded.updated_at`,
		surveyID, stepCode, a.Value, checked, nowISO(),
	)
	if err != nil {
		return fmt.Errorf("failed to store preflight answer: %w", err)
	}
	return nil
}

// PreflightAnswers returns every stored answer for a survey keyed by
// step code.
func (db *DB) PreflightAnswers(surveyID int) (map[string]checklist.Answer, error) {
	rows, err := db.Query(
		`SELECT step_code, value, checked FROM preflight_answers WHERE survey_id = ?`, surveyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query preflight answers: %w", err)
	}
	defer rows.Close()

	answers := make(map[string]checklist.Answer)
	for rows.Next() {
		var (
			code    string
			value   string
			checked int
		)
		if err := rows.Scan(&code, &value, &checked); err != nil {
			return nil, fmt.Errorf("failed to scan preflight answer: %w", err)
		}
		answers[code] = checklist.Answer{Value: value, Checked: checked == 1}
	}
	return answers, rows.Err()
}
