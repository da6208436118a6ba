package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"github.com/geodesy-data/gravity.report/internal/analysis"
	"github.com/geodesy-data/gravity.report/internal/g9"
)

// MeasurementSummaries builds the per-measurement aggregation inputs for
// a survey. Each measurement contributes one summary; measurements
// without a project import contribute nil-valued fields so the caller
// still sees them in lists and charts.
func (db *DB) MeasurementSummaries(surveyID int) ([]analysis.Summary, error) {
	rows, err := db.Query(
		`SELECT m.id, m.title, m.created_at, p.meta_json
		 FROM measurements m
		 LEFT JOIN measurement_project p ON p.measurement_id = m.id
		 WHERE m.survey_id = ?
		 ORDER BY m.id ASC`, surveyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query measurement summaries: %w", err)
	}
	defer rows.Close()

	var summaries []analysis.Summary
	for rows.Next() {
		var (
			s        analysis.Summary
			metaJSON sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt, &metaJSON); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		if metaJSON.Valid {
			var meta g9.ProjectMeta
			if err := json.Unmarshal([]byte(metaJSON.String), &meta); err != nil {
				return nil, fmt.Errorf("failed to unmarshal project metadata for measurement %d: %w", s.ID, err)
			}
			fillSummary(&s, meta)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// fillSummary projects the parsed export onto the aggregation fields.
func fillSummary(s *analysis.Summary, meta g9.ProjectMeta) {
	s.Gravity = meta.QM.Gravity
	s.TU = meta.QM.TotalUncertainty
	s.DropsAccepted = g9.ParseInt(meta.Keys["Total Drops Accepted"])
	s.DropsRejected = g9.ParseInt(meta.Keys["Total Drops Rejected"])

	if s.DropsAccepted != nil && s.DropsRejected != nil {
		total := *s.DropsAccepted + *s.DropsRejected
		if total > 0 {
			pct := math.Round(float64(*s.DropsAccepted)*1000.0/float64(total)) / 10.0
			s.AcceptedPct = &pct
		}
	}
}
