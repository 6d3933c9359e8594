package jobs

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/chazu/groundbox/pkg/params"
)

// Server exposes the job API.
type Server struct {
	cfg    Config
	runner JobRunner
	log    *log.Logger
}

func NewServer(cfg Config, runner JobRunner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, runner: runner, log: logger}
}

// Router returns the HTTP routes:
//
//	POST   /api/generate          run a generation job
//	GET    /api/files/{job}/{name} fetch one output file
//	GET    /api/download/{job}     fetch all outputs as a zip
//	DELETE /api/cleanup/{job}      remove a job's outputs
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/api/generate", s.handleGenerate)
	r.Get("/api/files/{jobID}/{name}", s.handleFile)
	r.Get("/api/download/{jobID}", s.handleDownload)
	r.Delete("/api/cleanup/{jobID}", s.handleCleanup)
	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("job server listening", "addr", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Router())
}

type apiResponse struct {
	Success bool     `json:"success"`
	JobID   string   `json:"jobId,omitempty"`
	Files   []string `json:"files,omitempty"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (s *Server) respond(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("encoding response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.respond(w, status, apiResponse{Success: false, Error: err.Error()})
}

// handleGenerate decodes a parameter set, fills omitted fields from the
// defaults, and runs a job under a fresh id.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	set := params.Default()
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("decoding parameters: %w", err))
		return
	}
	if err := set.Validate(); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	jobID := uuid.NewString()
	s.log.Info("generation started", "job", jobID, "position", set.Position)

	files, err := s.runner.Run(r.Context(), jobID, &set)
	if err != nil {
		s.log.Error("generation failed", "job", jobID, "err", err)
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	s.respond(w, http.StatusOK, apiResponse{
		Success: true,
		JobID:   jobID,
		Files:   files,
		Message: "generation complete",
	})
}

// jobDir validates the job id and resolves its directory. The uuid
// parse doubles as the path traversal guard.
func (s *Server) jobDir(jobID string) (string, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return "", fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	dir := filepath.Join(s.cfg.OutputDir, jobID)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	return dir, nil
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	dir, err := s.jobDir(chi.URLParam(r, "jobID"))
	if err != nil {
		s.fail(w, http.StatusNotFound, err)
		return
	}
	name := chi.URLParam(r, "name")
	if name != filepath.Base(name) || name == "." || name == ".." {
		s.fail(w, http.StatusBadRequest, errors.New("invalid file name"))
		return
	}
	http.ServeFile(w, r, filepath.Join(dir, name))
}

// handleDownload streams every file of a job as one zip archive.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	dir, err := s.jobDir(jobID)
	if err != nil {
		s.fail(w, http.StatusNotFound, err)
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", jobID+".zip"))

	zw := zip.NewWriter(w)
	defer zw.Close()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := addToZip(zw, dir, e.Name()); err != nil {
			s.log.Error("zipping job file", "job", jobID, "file", e.Name(), "err", err)
			return
		}
	}
}

func addToZip(zw *zip.Writer, dir, name string) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, f)
	return err
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	dir, err := s.jobDir(jobID)
	if err != nil {
		s.fail(w, http.StatusNotFound, err)
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.log.Info("job cleaned up", "job", jobID)
	s.respond(w, http.StatusOK, apiResponse{Success: true, JobID: jobID})
}
