package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/groundbox/pkg/params"
)

func TestLoadParamsDefaults(t *testing.T) {
	opts := generateOpts{}
	set, err := opts.loadParams()
	if err != nil {
		t.Fatalf("loadParams: %v", err)
	}
	if set != params.Default() {
		t.Errorf("empty opts should yield the default set")
	}
}

func TestLoadParamsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	if err := os.WriteFile(path, []byte(`{"boxLength": 180, "seed": 7}`), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := generateOpts{paramsPath: path, position: "rear"}
	set, err := opts.loadParams()
	if err != nil {
		t.Fatalf("loadParams: %v", err)
	}
	if set.BoxLength != 180 || set.Seed != 7 {
		t.Errorf("overlay not applied: length=%g seed=%d", set.BoxLength, set.Seed)
	}
	if set.Position != params.PositionRear {
		t.Errorf("position flag not applied: %q", set.Position)
	}
	if set.BoxWidth != params.Default().BoxWidth {
		t.Errorf("omitted field lost its default")
	}
}

func TestLoadParamsBadFile(t *testing.T) {
	opts := generateOpts{paramsPath: filepath.Join(t.TempDir(), "missing.json")}
	if _, err := opts.loadParams(); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"boxLength":`), 0o644); err != nil {
		t.Fatal(err)
	}
	opts = generateOpts{paramsPath: path}
	if _, err := opts.loadParams(); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestBuildPartUnknownName(t *testing.T) {
	_, err := buildPart(nil, "teapot")
	if err == nil || !strings.Contains(err.Error(), "teapot") {
		t.Errorf("err = %v, want unknown-part naming the input", err)
	}
}

func TestAllPartsAreKnown(t *testing.T) {
	known := map[string]bool{}
	for _, n := range partNames {
		known[n] = true
	}
	for _, n := range allParts {
		if !known[n] {
			t.Errorf("production set names unknown part %q", n)
		}
	}
}
