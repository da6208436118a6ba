package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/geodesy-data/gravity.report/internal/db"
	"github.com/geodesy-data/gravity.report/internal/g9"
	"github.com/geodesy-data/gravity.report/internal/httputil"
	"github.com/geodesy-data/gravity.report/internal/monitoring"
	"github.com/geodesy-data/gravity.report/internal/security"
)

// maxUploadBytes bounds any single uploaded file.
const maxUploadBytes = 32 << 20

// readUpload pulls the "file" part out of a multipart request.
func readUpload(r *http.Request) (filename string, contentType string, data []byte, err error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", "", nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", nil, fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > maxUploadBytes {
		return "", "", nil, fmt.Errorf("upload exceeds %d bytes", maxUploadBytes)
	}
	if len(data) == 0 {
		return "", "", nil, fmt.Errorf("uploaded file is empty")
	}
	filename = security.SanitizeFilename(filepath.Base(header.Filename))
	return filename, header.Header.Get("Content-Type"), data, nil
}

func (s *Server) uploadProject(w http.ResponseWriter, r *http.Request) {
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

	filename, _, data, err := readUpload(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	text := g9.DecodeText(data)
	meta := g9.ParseProject(text)
	if err := s.db.PutProjectImport(m.ID, filename, text, meta); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to store project import: %v", err))
		return
	}
	monitoring.Logf("imported project export %s for measurement %d (%d keys)", filename, m.ID, len(meta.Keys))
	httputil.WriteJSON(w, http.StatusCreated, meta)
}

func (s *Server) uploadSet(w http.ResponseWriter, r *http.Request) {
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

	filename, _, data, err := readUpload(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	text := g9.DecodeText(data)
	meta := g9.ParseSets(text)
	if err := s.db.PutSetImport(m.ID, filename, text, meta); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to store set import: %v", err))
		return
	}
	monitoring.Logf("imported set export %s for measurement %d (%d rows)", filename, m.ID, len(meta.Rows))
	httputil.WriteJSON(w, http.StatusCreated, meta)
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	s.uploadAttachment(w, r, db.KindImage, s.measurementOwner)
}

func (s *Server) uploadGraph(w http.ResponseWriter, r *http.Request) {
	s.uploadAttachment(w, r, db.KindGraph, s.measurementOwner)
}

func (s *Server) uploadSiteFile(w http.ResponseWriter, r *http.Request) {
	s.uploadAttachment(w, r, db.KindFile, s.surveyOwner)
}

func (s *Server) measurementOwner(id int) error {
	_, err := s.db.GetMeasurement(id)
	return err
}

func (s *Server) surveyOwner(id int) error {
	_, err := s.db.GetSurvey(id)
	return err
}

func (s *Server) uploadAttachment(w http.ResponseWriter, r *http.Request, kind string, ownerExists func(int) error) {
	id, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid id")
		return
	}
	if err := ownerExists(id); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}

	filename, contentType, data, err := readUpload(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	att, err := s.db.AddAttachment(kind, id, filename, contentType, data)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to store %s: %v", kind, err))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, att)
}

func (s *Server) listImages(w http.ResponseWriter, r *http.Request) {
	s.listAttachments(w, r, db.KindImage, s.measurementOwner)
}

func (s *Server) listGraphs(w http.ResponseWriter, r *http.Request) {
	s.listAttachments(w, r, db.KindGraph, s.measurementOwner)
}

func (s *Server) listSiteFiles(w http.ResponseWriter, r *http.Request) {
	s.listAttachments(w, r, db.KindFile, s.surveyOwner)
}

func (s *Server) listAttachments(w http.ResponseWriter, r *http.Request, kind string, ownerExists func(int) error) {
	id, err := pathID(r)
	if err != nil {
		httputil.BadRequest(w, "invalid id")
		return
	}
	if err := ownerExists(id); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	atts, err := s.db.ListAttachments(kind, id)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list %ss: %v", kind, err))
		return
	}
	if atts == nil {
		atts = []db.Attachment{}
	}
	httputil.WriteJSON(w, http.StatusOK, atts)
}

func (s *Server) downloadAttachment(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httputil.BadRequest(w, "invalid attachment id")
		return
	}
	att, err := s.db.GetAttachment(kind, id)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.WriteBlob(w, att.ContentType, att.Filename, att.Data)
}

func (s *Server) deleteAttachment(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httputil.BadRequest(w, "invalid attachment id")
		return
	}
	if err := s.db.DeleteAttachment(kind, id); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
