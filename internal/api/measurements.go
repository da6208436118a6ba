package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/geodesy-data/gravity.report/internal/db"
	"github.com/geodesy-data/gravity.report/internal/g9"
	"github.com/geodesy-data/gravity.report/internal/httputil"
	"github.com/geodesy-data/gravity.report/internal/quality"
	"github.com/geodesy-data/gravity.report/internal/units"
)

// MetricBadge is one quality-annotated metric on a measurement listing.
// Level is empty when the value is missing or no ladder is configured.
type MetricBadge struct {
	Metric  string   `json:"metric"`
	Label   string   `json:"label"`
	Unit    string   `json:"unit"`
	Value   *float64 `json:"value"`
	Level   string   `json:"level,omitempty"`
	Tooltip string   `json:"tooltip,omitempty"`
}

// MeasurementItem is a measurement with its import state and quality
// badges, as shown in the survey's measurement list.
type MeasurementItem struct {
	db.Measurement
	HasProject bool          `json:"has_project"`
	HasSet     bool          `json:"has_set"`
	Gravity    *float64      `json:"gravity"`
	Badges     []MetricBadge `json:"badges"`
}

func (s *Server) listMeasurements(w http.ResponseWriter, r *http.Request) {
	surveyID, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid survey id")
		return
	}
	if _, err := s.db.GetSurvey(surveyID); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}

	measurements, err := s.db.ListMeasurements(surveyID)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list measurements: %v", err))
		return
	}

	items := make([]MeasurementItem, 0, len(measurements))
	for _, m := range measurements {
		item, err := s.measurementItem(m)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to build measurement %d: %v", m.ID, err))
			return
		}
		items = append(items, item)
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (s *Server) measurementItem(m db.Measurement) (MeasurementItem, error) {
	item := MeasurementItem{Measurement: m, Badges: []MetricBadge{}}

	setRec, _, err := s.db.GetSetImport(m.ID)
	if err != nil {
		return item, err
	}
	item.HasSet = setRec != nil

	projRec, meta, err := s.db.GetProjectImport(m.ID)
	if err != nil {
		return item, err
	}
	if projRec == nil {
		return item, nil
	}
	item.HasProject = true
	item.Gravity = meta.QM.Gravity

	for _, metric := range []struct {
		code  string
		value *float64
	}{
		{units.PSS, meta.QM.ProjectSetScatter},
		{units.TU, meta.QM.TotalUncertainty},
		{units.UPS, meta.QM.UncertaintyPerSet},
		{units.SSOV, meta.QM.SetScatterOverall},
		{units.ACC, acceptedPct(meta.Keys)},
	} {
		item.Badges = append(item.Badges, s.badge(metric.code, metric.value))
	}
	return item, nil
}

func (s *Server) badge(metric string, value *float64) MetricBadge {
	b := MetricBadge{
		Metric: metric,
		Label:  units.Label(metric),
		Unit:   units.Unit(metric),
		Value:  value,
	}
	ladder := s.thresholds[metric]
	higher := quality.HigherIsBetter(metric)
	if level, ok := quality.Classify(value, ladder, higher); ok {
		b.Level = string(level)
		b.Tooltip = quality.Tooltip(ladder, b.Unit, higher)
	}
	return b
}

// acceptedPct derives the drop acceptance percentage from the export's
// drop counters, rounded to one decimal.
func acceptedPct(keys map[string]string) *float64 {
	acc := g9.ParseInt(keys["Total Drops Accepted"])
	rej := g9.ParseInt(keys["Total Drops Rejected"])
	if acc == nil || rej == nil {
		return nil
	}
	total := *acc + *rej
	if total <= 0 {
		return nil
	}
	pct := math.Round(float64(*acc)*1000.0/float64(total)) / 10.0
	return &pct
}

func (s *Server) createMeasurement(w http.ResponseWriter, r *http.Request) {
	surveyID, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid survey id")
		return
	}
	survey, err := s.db.GetSurvey(surveyID)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}

	var m db.Measurement
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid measurement payload: %v", err))
		return
	}
	m.ID = 0
	m.SurveyID = surveyID
	if err := s.db.CreateMeasurement(&m); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to create measurement: %v", err))
		return
	}

	// First measurement moves the survey out of the checklist phase.
	if survey.Status == db.StatusNew || survey.Status == db.StatusPreflight {
		if err := s.db.SetSurveyStatus(surveyID, db.StatusMeasurements); err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to update survey status: %v", err))
			return
		}
	}
	httputil.WriteJSON(w, http.StatusCreated, m)
}

func (s *Server) getMeasurement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid measurement id")
		return
	}
	m, err := s.db.GetMeasurement(id)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	item, err := s.measurementItem(*m)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to build measurement: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, item)
}

func (s *Server) updateMeasurement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid measurement id")
		return
	}
	existing, err := s.db.GetMeasurement(id)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}

	updated := *existing
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid measurement payload: %v", err))
		return
	}
	updated.ID = id
	updated.SurveyID = existing.SurveyID
	if err := s.db.UpdateMeasurement(&updated); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to update measurement: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteMeasurement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid measurement id")
		return
	}
	if err := s.db.DeleteMeasurement(id); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
