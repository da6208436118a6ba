package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/geodesy-data/gravity.report/internal/analysis"
	"github.com/geodesy-data/gravity.report/internal/charts"
	"github.com/geodesy-data/gravity.report/internal/db"
	"github.com/geodesy-data/gravity.report/internal/httputil"
	"github.com/geodesy-data/gravity.report/internal/monitoring"
)

// parseIDs parses the ids query parameter ("3,5,9"). A missing or empty
// parameter selects every measurement of the survey.
func parseIDs(r *http.Request, all []analysis.Summary) ([]int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		ids := make([]int, len(all))
		for i, s := range all {
			ids[i] = s.ID
		}
		return ids, nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid measurement id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Server) surveySummaries(w http.ResponseWriter, r *http.Request) ([]analysis.Summary, []int, bool) {
	surveyID, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid survey id")
		return nil, nil, false
	}
	if _, err := s.db.GetSurvey(surveyID); err != nil {
		httputil.NotFound(w, err.Error())
		return nil, nil, false
	}
	summaries, err := s.db.MeasurementSummaries(surveyID)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load summaries: %v", err))
		return nil, nil, false
	}
	ids, err := parseIDs(r, summaries)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return nil, nil, false
	}
	return summaries, ids, true
}

func (s *Server) analyzeSurvey(w http.ResponseWriter, r *http.Request) {
	summaries, ids, ok := s.surveySummaries(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, analysis.Analyze(summaries, ids))
}

func (s *Server) surveyChart(w http.ResponseWriter, r *http.Request) {
	surveyID, _ := pathID(r)
	summaries, ids, ok := s.surveySummaries(w, r)
	if !ok {
		return
	}
	survey, err := s.db.GetSurvey(surveyID)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}

	report := analysis.Analyze(summaries, ids)
	var buf bytes.Buffer
	if err := charts.RenderGravityHTML(&buf, survey.Title, report.Chart); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// generateReport renders the static gravity chart for the selection and
// stores it as a new report run.
func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) {
	surveyID, _ := pathID(r)
	summaries, ids, ok := s.surveySummaries(w, r)
	if !ok {
		return
	}
	survey, err := s.db.GetSurvey(surveyID)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}

	report := analysis.Analyze(summaries, ids)
	var buf bytes.Buffer
	if err := charts.RenderGravityPNG(&buf, survey.Title, report.Chart); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("failed to render report: %v", err))
		return
	}

	stored, err := s.db.AddSurveyReport(surveyID, "png", buf.Bytes())
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to store report: %v", err))
		return
	}
	monitoring.Logf("generated report %s for survey %d (%d measurements)", stored.RunID, surveyID, len(ids))
	httputil.WriteJSON(w, http.StatusCreated, stored)
}

func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	surveyID, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid survey id")
		return
	}
	if _, err := s.db.GetSurvey(surveyID); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	reports, err := s.db.ListSurveyReports(surveyID)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list reports: %v", err))
		return
	}
	if reports == nil {
		reports = []db.SurveyReport{}
	}
	httputil.WriteJSON(w, http.StatusOK, reports)
}

func (s *Server) downloadReport(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")
	report, err := s.db.GetSurveyReport(runID)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	filename := fmt.Sprintf("survey-%d-%s.%s", report.SurveyID, report.RunID, report.Format)
	httputil.WriteBlob(w, reportContentType(report.Format), filename, report.Content)
}

func reportContentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "html":
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}
