// Package api is the JSON surface of the survey service: survey and
// measurement CRUD, export uploads, quality-annotated listings, the
// aggregation endpoint and the preflight checklist wizard.
package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/geodesy-data/gravity.report/internal/checklist"
	"github.com/geodesy-data/gravity.report/internal/db"
	"github.com/geodesy-data/gravity.report/internal/quality"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db         *db.DB
	thresholds quality.Thresholds
	checklist  *checklist.Template
}

func NewServer(database *db.DB, thresholds quality.Thresholds, tpl *checklist.Template) *Server {
	return &Server{
		db:         database,
		thresholds: thresholds,
		checklist:  tpl,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/surveys", s.listSurveys)
	mux.HandleFunc("POST /api/surveys", s.createSurvey)
	mux.HandleFunc("GET /api/surveys/{id}", s.getSurvey)
	mux.HandleFunc("PUT /api/surveys/{id}", s.updateSurvey)
	mux.HandleFunc("DELETE /api/surveys/{id}", s.deleteSurvey)
	mux.HandleFunc("POST /api/surveys/{id}/status", s.setSurveyStatus)

	mux.HandleFunc("GET /api/surveys/{id}/measurements", s.listMeasurements)
	mux.HandleFunc("POST /api/surveys/{id}/measurements", s.createMeasurement)
	mux.HandleFunc("GET /api/measurements/{id}", s.getMeasurement)
	mux.HandleFunc("PUT /api/measurements/{id}", s.updateMeasurement)
	mux.HandleFunc("DELETE /api/measurements/{id}", s.deleteMeasurement)

	mux.HandleFunc("POST /api/measurements/{id}/project", s.uploadProject)
	mux.HandleFunc("POST /api/measurements/{id}/set", s.uploadSet)
	mux.HandleFunc("POST /api/measurements/{id}/images", s.uploadImage)
	mux.HandleFunc("GET /api/measurements/{id}/images", s.listImages)
	mux.HandleFunc("POST /api/measurements/{id}/graphs", s.uploadGraph)
	mux.HandleFunc("GET /api/measurements/{id}/graphs", s.listGraphs)
	mux.HandleFunc("POST /api/surveys/{id}/files", s.uploadSiteFile)
	mux.HandleFunc("GET /api/surveys/{id}/files", s.listSiteFiles)
	mux.HandleFunc("GET /api/attachments/{kind}/{id}", s.downloadAttachment)
	mux.HandleFunc("DELETE /api/attachments/{kind}/{id}", s.deleteAttachment)

	mux.HandleFunc("GET /api/surveys/{id}/analysis", s.analyzeSurvey)
	mux.HandleFunc("GET /api/surveys/{id}/chart", s.surveyChart)
	mux.HandleFunc("POST /api/surveys/{id}/reports", s.generateReport)
	mux.HandleFunc("GET /api/surveys/{id}/reports", s.listReports)
	mux.HandleFunc("GET /api/reports/{run_id}", s.downloadReport)

	mux.HandleFunc("GET /api/surveys/{id}/preflight", s.getPreflight)
	mux.HandleFunc("POST /api/surveys/{id}/preflight/answers", s.putPreflightAnswers)
	mux.HandleFunc("POST /api/surveys/{id}/preflight/advance", s.advancePreflight)

	mux.HandleFunc("GET /api/config", s.showConfig)

	return mux
}

// pathID parses the {id} wildcard of a request path.
func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}
