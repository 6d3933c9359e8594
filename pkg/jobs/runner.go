package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/chazu/groundbox/pkg/params"
)

var (
	// ErrTimeout reports a generation run that exceeded the configured
	// deadline.
	ErrTimeout = errors.New("generation timed out")

	// ErrJobNotFound reports an unknown job id.
	ErrJobNotFound = errors.New("job not found")
)

// JobRunner produces the output files for one job.
type JobRunner interface {
	Run(ctx context.Context, jobID string, set *params.Set) ([]string, error)
}

// ExecRunner runs the generator binary in a subprocess, one invocation
// per job. A crash in the geometry kernel then takes down the job, not
// the server.
type ExecRunner struct {
	cfg Config
	log *log.Logger
}

func NewRunner(cfg Config, logger *log.Logger) *ExecRunner {
	if logger == nil {
		logger = log.Default()
	}
	return &ExecRunner{cfg: cfg, log: logger}
}

// Run writes the parameter set into the job directory, invokes the
// generator on it, and returns the names of the files it produced.
func (r *ExecRunner) Run(ctx context.Context, jobID string, set *params.Set) ([]string, error) {
	dir := filepath.Join(r.cfg.OutputDir, jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating job dir: %w", err)
	}

	paramsPath := filepath.Join(dir, "params.json")
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding params: %w", err)
	}
	if err := os.WriteFile(paramsPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing params: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, r.cfg.GeneratorBin,
		"generate", "--part", "all", "--params", paramsPath, "--output", dir)
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, ErrTimeout
	}
	if err != nil {
		r.log.Error("generator failed", "job", jobID, "err", err)
		return nil, fmt.Errorf("generator: %w: %s", err, out)
	}

	return listJobFiles(dir)
}

// listJobFiles returns the mesh files in a job directory, sorted for
// stable responses.
func listJobFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing job dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".stl", ".3mf":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
