package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Dicklesworthstone/rangeslider/pkg/loader"
	"github.com/Dicklesworthstone/rangeslider/pkg/model"
)

const sampleConfig = `
theme: light
sliders:
  - name: thickness
    label: Coating thickness
    min: 0
    max: 250
    step: 5
    default: [80]
  - name: cure
    min: 120
    max: 260
    step: 10
    range: true
    orientation: vertical
    default: [160, 200]
    controlled: true
`

func TestParse(t *testing.T) {
	f, err := loader.Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.Theme != "light" {
		t.Errorf("Expected theme light, got %q", f.Theme)
	}
	if len(f.Sliders) != 2 {
		t.Fatalf("Expected 2 sliders, got %d", len(f.Sliders))
	}

	thick := f.Sliders[0].EngineConfig()
	if thick.DefaultValue == nil || *thick.DefaultValue != model.Scalar(80) {
		t.Errorf("Expected default 80, got %v", thick.DefaultValue)
	}
	if thick.Value != nil {
		t.Error("Uncontrolled slider should not carry a value")
	}

	cure := f.Sliders[1].EngineConfig()
	if cure.Orientation != model.Vertical {
		t.Errorf("Expected vertical, got %s", cure.Orientation)
	}
	if cure.Value == nil || *cure.Value != model.Pair(160, 200) {
		t.Errorf("Expected controlled value [160, 200], got %v", cure.Value)
	}
	if f.Sliders[1].Title() != "cure" {
		t.Errorf("Expected title fallback to name, got %q", f.Sliders[1].Title())
	}
	if f.Sliders[1].TrackLength() != loader.DefaultLength {
		t.Errorf("Expected default length, got %d", f.Sliders[1].TrackLength())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    error
		contain string
	}{
		{"empty", "theme: dark\n", loader.ErrNoSliders, ""},
		{"bad range", "sliders:\n  - {name: a, min: 5, max: 5, step: 1}\n", model.ErrInvalidRange, "sliders[0]"},
		{"bad step", "sliders:\n  - {name: a, min: 0, max: 5, step: 0}\n", model.ErrInvalidRange, ""},
		{"nan min", "sliders:\n  - {name: a, min: .nan, max: 10, step: 1}\n", model.ErrInvalidRange, "finite"},
		{"infinite max", "sliders:\n  - {name: a, min: 0, max: .inf, step: 1}\n", model.ErrInvalidRange, "finite"},
		{"infinite step", "sliders:\n  - {name: a, min: 0, max: 10, step: .inf}\n", model.ErrInvalidRange, ""},
		{"negative infinite min", "sliders:\n  - {name: a, min: -.inf, max: 10, step: 1}\n", model.ErrInvalidRange, ""},
		{"bad orientation", "sliders:\n  - {name: a, min: 0, max: 5, step: 1, orientation: diagonal}\n", model.ErrInvalidOrientation, ""},
		{"missing name", "sliders:\n  - {min: 0, max: 5, step: 1}\n", nil, "name is required"},
		{"duplicate", "sliders:\n  - {name: a, min: 0, max: 5, step: 1}\n  - {name: a, min: 0, max: 5, step: 1}\n", nil, "duplicate"},
		{"range default", "sliders:\n  - {name: a, min: 0, max: 5, step: 1, range: true, default: [1]}\n", nil, "two values"},
		{"malformed", "sliders: [", nil, "parse slider config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if tt.contain != "" && !strings.Contains(err.Error(), tt.contain) {
				t.Errorf("Expected error containing %q, got %v", tt.contain, err)
			}
		})
	}
}

func TestLoadOrCreate_WritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sliders.yaml")

	f, err := loader.LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if len(f.Sliders) != len(loader.Default().Sliders) {
		t.Errorf("Expected default sliders, got %d", len(f.Sliders))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected config file to be written: %v", err)
	}

	again, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load of written default failed: %v", err)
	}
	if again.Sliders[1].Name != "cure-window" || !again.Sliders[1].Range {
		t.Errorf("Round trip lost data: %+v", again.Sliders[1])
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "no slider config found") {
		t.Errorf("Expected missing-file error, got %v", err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	for _, s := range loader.Default().Sliders {
		if err := s.Validate(); err != nil {
			t.Errorf("default slider %s invalid: %v", s.Name, err)
		}
	}
}

func TestFindSlider(t *testing.T) {
	f := loader.Default()

	s, err := loader.FindSlider(f, "gloss")
	if err != nil || s.Name != "gloss" {
		t.Errorf("Expected exact match gloss, got %q (%v)", s.Name, err)
	}

	s, err = loader.FindSlider(f, "cure")
	if err != nil || s.Name != "cure-window" {
		t.Errorf("Expected fuzzy match cure-window, got %q (%v)", s.Name, err)
	}

	if _, err := loader.FindSlider(f, "zzzz"); !errors.Is(err, loader.ErrSliderNotFound) {
		t.Errorf("Expected ErrSliderNotFound, got %v", err)
	}

	sel, err := loader.Select(f, "humid")
	if err != nil || len(sel.Sliders) != 1 || sel.Sliders[0].Name != "humidity" {
		t.Errorf("Expected humidity selection, got %+v (%v)", sel, err)
	}
	all, _ := loader.Select(f, "")
	if all != f {
		t.Error("Empty query should return the input file")
	}
}

func TestParseSettings(t *testing.T) {
	t.Setenv("SLIDE_THEME", "light")
	t.Setenv("SLIDE_SETTLE_DELAY", "1s")
	t.Setenv("SLIDE_NO_WATCH", "true")

	s, err := loader.ParseSettings()
	if err != nil {
		t.Fatalf("ParseSettings failed: %v", err)
	}
	if s.Theme != "light" || s.SettleDelay != time.Second || !s.NoWatch {
		t.Errorf("Unexpected settings: %+v", s)
	}
}

func TestParseSettings_Error(t *testing.T) {
	t.Setenv("SLIDE_SETTLE_DELAY", "soon")
	if _, err := loader.ParseSettings(); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("Expected parse env error, got %v", err)
	}
}

func TestParse_NaNDefaultIsClampedByEngineConfig(t *testing.T) {
	f, err := loader.Parse([]byte("sliders:\n  - {name: a, min: 0, max: 10, step: 1, default: [.nan]}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg := f.Sliders[0].EngineConfig()
	if cfg.DefaultValue == nil {
		t.Fatal("Expected a default value")
	}
	if got := cfg.Domain().Clamp(cfg.DefaultValue.Low()); got != 0 {
		t.Errorf("Expected NaN default to clamp to min 0, got %v", got)
	}
}
