// Package api exposes the simulation service over a thin JSON HTTP
// surface: generate, list, download, reset. All domain rules live in
// the sim package; handlers only translate requests and map errors to
// status codes.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jwardwell7077/charlie-reporting-sub002/sim"
)

// Server routes HTTP requests to a sim.Service.
type Server struct {
	mux     *http.ServeMux
	service *sim.Service
	log     *logrus.Entry
}

// NewServer builds the HTTP surface over service.
func NewServer(service *sim.Service) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		service: service,
		log:     logrus.WithField("component", "api"),
	}
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/v1/generate", s.handleGenerate)
	s.mux.HandleFunc("/v1/files", s.handleFiles)
	s.mux.HandleFunc("/v1/files/", s.handleDownload)
	s.mux.HandleFunc("/v1/reset", s.handleReset)
	return s
}

// Handler returns the root handler for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// generateRequest is the POST /v1/generate payload. Rows may be a bare
// integer applied to every dataset, an object mapping dataset names to
// counts, or absent for per-generator defaults.
type generateRequest struct {
	Datasets []string        `json:"datasets"`
	Rows     json.RawMessage `json:"rows,omitempty"`
}

// rowsSpec decodes the polymorphic rows payload into the explicit
// sum type the service consumes.
func (r *generateRequest) rowsSpec() (sim.RowsSpec, error) {
	if len(r.Rows) == 0 || string(r.Rows) == "null" {
		return sim.DefaultRows(), nil
	}
	var uniform int
	if err := json.Unmarshal(r.Rows, &uniform); err == nil {
		return sim.AllSame(uniform), nil
	}
	var perDataset map[string]int
	if err := json.Unmarshal(r.Rows, &perDataset); err != nil {
		return sim.RowsSpec{}, errors.New("rows must be an integer or an object of dataset counts")
	}
	return sim.PerDataset(perDataset), nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Datasets) == 0 {
		s.writeError(w, http.StatusBadRequest, "datasets is required")
		return
	}
	rows, err := req.rowsSpec()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	files, err := s.service.GenerateMany(req.Datasets, rows)
	if err != nil {
		var unknown *sim.UnknownDatasetError
		if errors.As(err, &unknown) {
			s.writeError(w, http.StatusBadRequest, unknown.Error())
			return
		}
		s.log.Errorf("generate failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	files, err := s.service.ListFiles()
	if err != nil {
		s.log.Errorf("list failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if files == nil {
		files = []sim.FileInfo{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/v1/files/")
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "file name is required")
		return
	}
	data, err := s.service.ReadFile(name)
	if err != nil {
		if errors.Is(err, sim.ErrFileNotFound) {
			s.writeError(w, http.StatusNotFound, "file not found: "+name)
			return
		}
		s.log.Errorf("download %s failed: %v", name, err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.service.Reset(); err != nil {
		s.log.Errorf("reset failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "reset"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Errorf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
