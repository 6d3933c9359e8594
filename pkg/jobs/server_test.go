package jobs

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/chazu/groundbox/pkg/params"
)

// stubRunner records the submitted set and fakes output files.
type stubRunner struct {
	cfg     Config
	lastSet *params.Set
	err     error
}

func (r *stubRunner) Run(_ context.Context, jobID string, set *params.Set) ([]string, error) {
	r.lastSet = set
	if r.err != nil {
		return nil, r.err
	}
	dir := filepath.Join(r.cfg.OutputDir, jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	for _, name := range []string{"box.stl", "lid.stl"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("solid"), 0o644); err != nil {
			return nil, err
		}
	}
	return []string{"box.stl", "lid.stl"}, nil
}

func newTestServer(t *testing.T) (*Server, *stubRunner) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	runner := &stubRunner{cfg: cfg}
	return NewServer(cfg, runner, nil), runner
}

func postGenerate(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var resp apiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return rec, resp
}

func TestGenerate(t *testing.T) {
	s, runner := newTestServer(t)
	rec, resp := postGenerate(t, s, `{"spoutPosition": "rear", "boxLength": 180}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	if !resp.Success {
		t.Fatalf("success = false: %s", resp.Error)
	}
	if _, err := uuid.Parse(resp.JobID); err != nil {
		t.Errorf("jobId %q is not a uuid", resp.JobID)
	}
	if len(resp.Files) != 2 {
		t.Errorf("files = %v, want 2 entries", resp.Files)
	}

	// Omitted fields keep their defaults, submitted ones stick.
	if runner.lastSet.Position != params.PositionRear {
		t.Errorf("position = %q, want rear", runner.lastSet.Position)
	}
	if runner.lastSet.BoxLength != 180 {
		t.Errorf("boxLength = %g, want 180", runner.lastSet.BoxLength)
	}
	if runner.lastSet.WallThickness != params.Default().WallThickness {
		t.Errorf("wallThickness = %g, want default", runner.lastSet.WallThickness)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	for _, tc := range []struct {
		name, body string
	}{
		{"malformed json", `{"boxLength":`},
		{"invalid position", `{"spoutPosition": "top"}`},
		{"invalid dimension", `{"wallThickness": -1}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rec, resp := postGenerate(t, s, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if resp.Success || resp.Error == "" {
				t.Errorf("want failure with error message, got %+v", resp)
			}
		})
	}
}

func TestGenerateRunnerFailure(t *testing.T) {
	s, runner := newTestServer(t)
	runner.err = ErrTimeout

	rec, resp := postGenerate(t, s, `{}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if resp.Success {
		t.Error("success = true on runner failure")
	}
	if !strings.Contains(resp.Error, "timed out") {
		t.Errorf("error = %q, want timeout message", resp.Error)
	}
}

func TestFileServing(t *testing.T) {
	s, _ := newTestServer(t)
	_, resp := postGenerate(t, s, `{}`)

	req := httptest.NewRequest(http.MethodGet, "/api/files/"+resp.JobID+"/box.stl", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "solid" {
		t.Errorf("body = %q, want file contents", rec.Body.String())
	}
}

func TestFileServingRejectsTraversal(t *testing.T) {
	s, _ := newTestServer(t)
	_, resp := postGenerate(t, s, `{}`)

	for _, path := range []string{
		"/api/files/" + resp.JobID + "/..%2Fparams.json",
		"/api/files/not-a-uuid/box.stl",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			t.Errorf("%s served, want rejection", path)
		}
	}
}

func TestDownloadZip(t *testing.T) {
	s, _ := newTestServer(t)
	_, resp := postGenerate(t, s, `{}`)

	req := httptest.NewRequest(http.MethodGet, "/api/download/"+resp.JobID, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("content type = %q", ct)
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("reading zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["box.stl"] || !names["lid.stl"] {
		t.Errorf("zip entries = %v, want generated meshes", names)
	}
}

func TestCleanup(t *testing.T) {
	s, runner := newTestServer(t)
	_, resp := postGenerate(t, s, `{}`)
	dir := filepath.Join(runner.cfg.OutputDir, resp.JobID)

	req := httptest.NewRequest(http.MethodDelete, "/api/cleanup/"+resp.JobID, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("job dir still present after cleanup")
	}

	// Second cleanup finds nothing.
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("repeat cleanup status = %d, want 404", rec.Code)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "addr = \":9090\"\noutput_dir = \"/tmp/out\"\ntimeout_seconds = 120\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.OutputDir != "/tmp/out" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Timeout().Seconds() != 120 {
		t.Errorf("timeout = %v, want 2m", cfg.Timeout())
	}
	// Unset keys keep defaults.
	if cfg.GeneratorBin != DefaultConfig().GeneratorBin {
		t.Errorf("generator_bin = %q, want default", cfg.GeneratorBin)
	}

	if cfg, err := LoadConfig(""); err != nil || cfg != DefaultConfig() {
		t.Errorf("empty path: cfg=%+v err=%v", cfg, err)
	}
}
