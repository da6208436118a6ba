package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/geodesy-data/gravity.report/internal/checklist"
	"github.com/geodesy-data/gravity.report/internal/db"
	"github.com/geodesy-data/gravity.report/internal/httputil"
	"github.com/geodesy-data/gravity.report/internal/monitoring"
)

// PreflightState is the wizard view for one survey: the template, the
// stored answers, the stage the operator is on and what is still open
// there.
type PreflightState struct {
	Stage        int                         `json:"stage"`
	StageCount   int                         `json:"stage_count"`
	Stages       []checklist.Stage           `json:"stages"`
	Answers      map[string]checklist.Answer `json:"answers"`
	MissingSteps []string                    `json:"missing_steps"`
	Complete     bool                        `json:"complete"`
}

func (s *Server) preflightState(survey *db.Survey) (*PreflightState, error) {
	answers, err := s.db.PreflightAnswers(survey.ID)
	if err != nil {
		return nil, err
	}
	stage := s.checklist.ClampStageIndex(survey.PreflightStage)
	return &PreflightState{
		Stage:        stage,
		StageCount:   len(s.checklist.Stages),
		Stages:       s.checklist.Stages,
		Answers:      answers,
		MissingSteps: checklist.MissingSteps(s.checklist.Stages[stage], answers),
		Complete:     s.checklist.Complete(answers),
	}, nil
}

func (s *Server) getPreflight(w http.ResponseWriter, r *http.Request) {
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
	state, err := s.preflightState(survey)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load preflight state: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}

// putPreflightAnswers stores a batch of step answers. The first answer
// moves a fresh survey into the preflight status.
func (s *Server) putPreflightAnswers(w http.ResponseWriter, r *http.Request) {
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

	var req []struct {
		Step    string `json:"step"`
		Value   string `json:"value"`
		Checked bool   `json:"checked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid answers payload: %v", err))
		return
	}
	if len(req) == 0 {
		httputil.BadRequest(w, "no answers submitted")
		return
	}

	for _, a := range req {
		if a.Step == "" {
			httputil.BadRequest(w, "answer without step code")
			return
		}
		if err := s.db.PutPreflightAnswer(id, a.Step, checklist.Answer{Value: a.Value, Checked: a.Checked}); err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to store answer: %v", err))
			return
		}
	}

	if survey.Status == db.StatusNew {
		if err := s.db.SetSurveyStatus(id, db.StatusPreflight); err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to update survey status: %v", err))
			return
		}
	}

	state, err := s.preflightState(survey)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load preflight state: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}

// advancePreflight moves the wizard to the next stage once the current
// one is fully checked. Finishing the last stage readies the survey for
// measurements.
func (s *Server) advancePreflight(w http.ResponseWriter, r *http.Request) {
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

	answers, err := s.db.PreflightAnswers(id)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load answers: %v", err))
		return
	}

	stage := s.checklist.ClampStageIndex(survey.PreflightStage)
	current := s.checklist.Stages[stage]
	if !checklist.StageComplete(current, answers) {
		httputil.WriteJSONError(w, http.StatusConflict, fmt.Sprintf(
			"stage %q has unchecked steps: %v", current.Title, checklist.MissingSteps(current, answers)))
		return
	}

	if stage == len(s.checklist.Stages)-1 {
		if err := s.db.SetSurveyStatus(id, db.StatusMeasurements); err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to update survey status: %v", err))
			return
		}
		monitoring.Logf("survey %d completed preflight", id)
	} else {
		if err := s.db.SetPreflightStage(id, stage+1); err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to advance stage: %v", err))
			return
		}
	}

	updated, err := s.db.GetSurvey(id)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to reload survey: %v", err))
		return
	}
	state, err := s.preflightState(updated)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load preflight state: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}
