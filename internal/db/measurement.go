package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/geodesy-data/gravity.report/internal/g9"
)

// Measurement is one g9 acquisition run within a survey. The parsed
// project and set exports hang off it in measurement_project and
// measurement_set.
type Measurement struct {
	ID        int    `json:"id"`
	SurveyID  int    `json:"survey_id"`
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ImportRecord is a stored text export: the raw decoded text plus the
// parsed metadata as JSON.
type ImportRecord struct {
	MeasurementID int    `json:"measurement_id"`
	Filename      string `json:"filename"`
	RawText       string `json:"raw_text"`
	MetaJSON      string `json:"meta_json"`
	ImportedAt    string `json:"imported_at"`
}

// CreateMeasurement inserts a measurement under a survey.
func (db *DB) CreateMeasurement(m *Measurement) error {
	now := nowISO()
	result, err := db.Exec(
		`INSERT INTO measurements (survey_id, title, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.SurveyID, m.Title, m.Notes, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create measurement: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	m.ID = int(id)
	m.CreatedAt = now
	m.UpdatedAt = now
	return nil
}

// GetMeasurement retrieves a measurement by ID.
func (db *DB) GetMeasurement(id int) (*Measurement, error) {
	var m Measurement
	err := db.QueryRow(
		`SELECT id, survey_id, title, notes, created_at, updated_at FROM measurements WHERE id = ?`, id,
	).Scan(&m.ID, &m.SurveyID, &m.Title, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("measurement not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get measurement: %w", err)
	}
	return &m, nil
}

// ListMeasurements returns a survey's measurements, oldest first.
func (db *DB) ListMeasurements(surveyID int) ([]Measurement, error) {
	rows, err := db.Query(
		`SELECT id, survey_id, title, notes, created_at, updated_at
		 FROM measurements WHERE survey_id = ? ORDER BY id ASC`, surveyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query measurements: %w", err)
	}
	defer rows.Close()

	var measurements []Measurement
	for rows.Next() {
		var m Measurement
		if err := rows.Scan(&m.ID, &m.SurveyID, &m.Title, &m.Notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

// UpdateMeasurement writes the editable fields of a measurement.
func (db *DB) UpdateMeasurement(m *Measurement) error {
	now := nowISO()
	result, err := db.Exec(
		`UPDATE measurements SET title = ?, notes = ?, updated_at = ? WHERE id = ?`,
		m.Title, m.Notes, now, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update measurement: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("measurement not found")
	}
	m.UpdatedAt = now
	return nil
}

// DeleteMeasurement removes a measurement and, through foreign keys, its
// imports and attachments.
func (db *DB) DeleteMeasurement(id int) error {
	result, err := db.Exec(`DELETE FROM measurements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete measurement: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("measurement not found")
	}
	return nil
}

// PutProjectImport stores the decoded project export for a measurement,
// replacing any earlier import.
func (db *DB) PutProjectImport(measurementID int, filename, rawText string, meta g9.ProjectMeta) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal project metadata: %w", err)
	}
	_, err = db.Exec(
		`INSERT INTO measurement_project (measurement_id, filename, raw_text, meta_json, imported_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(measurement_id) DO UPDATE SET
		   filename = excluded.filename, raw_text = excluded.raw_text,
		   meta_json = excluded.meta_json, imported_at = excluded.imported_at`,
		measurementID, filename, rawText, string(metaJSON), nowISO(),
	)
	if err != nil {
		return fmt.Errorf("failed to store project import: %w", err)
	}
	return nil
}

// PutSetImport stores the decoded set export for a measurement,
// replacing any earlier import.
func (db *DB) PutSetImport(measurementID int, filename, rawText string, meta g9.SetMeta) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal set metadata: %w", err)
	}
	_, err = db.Exec(
		`INSERT INTO measurement_set (measurement_id, filename, raw_text, meta_json, imported_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(measurement_id) DO UPDATE SET
		   filename = excluded.filename, raw_text = excluded.raw_text,
		   meta_json = excluded.meta_json, imported_at = excluded.imported_at`,
		measurementID, filename, rawText, string(metaJSON), nowISO(),
	)
	if err != nil {
		return fmt.Errorf("failed to store set import: %w", err)
	}
	return nil
}

// GetProjectImport returns the stored project export and its parsed
// metadata, or nil if the measurement has no project import.
func (db *DB) GetProjectImport(measurementID int) (*ImportRecord, *g9.ProjectMeta, error) {
	rec, err := db.getImport("measurement_project", measurementID)
	if err != nil || rec == nil {
		return rec, nil, err
	}
	var meta g9.ProjectMeta
	if err := json.Unmarshal([]byte(rec.MetaJSON), &meta); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal project metadata: %w", err)
	}
	return rec, &meta, nil
}

// GetSetImport returns the stored set export and its parsed metadata, or
// nil if the measurement has no set import.
func (db *DB) GetSetImport(measurementID int) (*ImportRecord, *g9.SetMeta, error) {
	rec, err := db.getImport("measurement_set", measurementID)
	if err != nil || rec == nil {
		return rec, nil, err
	}
	var meta g9.SetMeta
	if err := json.Unmarshal([]byte(rec.MetaJSON), &meta); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal set metadata: %w", err)
	}
	return rec, &meta, nil
}

func (db *DB) getImport(table string, measurementID int) (*ImportRecord, error) {
	var rec ImportRecord
	// table is one of two compile-time constants, never user input.
	query := fmt.Sprintf(
		`SELECT measurement_id, filename, raw_text, meta_json, imported_at FROM %s WHERE measurement_id = ?`, table)
	err := db.QueryRow(query, measurementID).Scan(
		&rec.MeasurementID, &rec.Filename, &rec.RawText, &rec.MetaJSON, &rec.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get import from %s: %w", table, err)
	}
	return &rec, nil
}
