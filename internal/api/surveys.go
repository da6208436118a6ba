package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/geodesy-data/gravity.report/internal/db"
	"github.com/geodesy-data/gravity.report/internal/httputil"
	"github.com/geodesy-data/gravity.report/internal/version"
)

func (s *Server) listSurveys(w http.ResponseWriter, r *http.Request) {
	surveys, err := s.db.ListSurveys()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list surveys: %v", err))
		return
	}
	if surveys == nil {
		surveys = []db.Survey{}
	}
	httputil.WriteJSON(w, http.StatusOK, surveys)
}

func (s *Server) createSurvey(w http.ResponseWriter, r *http.Request) {
	var survey db.Survey
	if err := json.NewDecoder(r.Body).Decode(&survey); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid survey payload: %v", err))
		return
	}
	if strings.TrimSpace(survey.Title) == "" {
		httputil.BadRequest(w, "survey title is required")
		return
	}
	survey.ID = 0
	if err := s.db.CreateSurvey(&survey); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to create survey: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, survey)
}

func (s *Server) getSurvey(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid survey id")
		return
	}
	survey, err := s.db.GetSurvey(id)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, survey)
}

func (s *Server) updateSurvey(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid survey id")
		return
	}
	existing, err := s.db.GetSurvey(id)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	if existing.Status == db.StatusLocked {
		httputil.WriteJSONError(w, http.StatusConflict, "survey is locked")
		return
	}

	updated := *existing
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid survey payload: %v", err))
		return
	}
	updated.ID = id
	if err := s.db.UpdateSurvey(&updated); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("failed to update survey: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteSurvey(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid survey id")
		return
	}
	if _, err := s.db.GetSurvey(id); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	if err := s.db.DeleteSurvey(id); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to delete survey: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": db.StatusDeleted})
}

func (s *Server) setSurveyStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid survey id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid status payload: %v", err))
		return
	}
	if !db.ValidStatus(req.Status) {
		httputil.BadRequest(w, fmt.Sprintf("invalid status %q (want one of %v)", req.Status, db.StatusChoices))
		return
	}
	if _, err := s.db.GetSurvey(id); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	if err := s.db.SetSurveyStatus(id, req.Status); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to set status: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":    version.Version,
		"statuses":   db.StatusChoices,
		"thresholds": s.thresholds,
	})
}
