package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/rangeslider/pkg/model"
	"github.com/Dicklesworthstone/rangeslider/pkg/slider"
)

var (
	// ErrNoSliders is returned when a config file defines no sliders
	ErrNoSliders = errors.New("no sliders defined")
	// ErrSliderNotFound is returned when a preset query matches nothing
	ErrSliderNotFound = errors.New("slider not found")
)

// DefaultLength is the track length in cells when a slider omits it
const DefaultLength = 40

// SliderSpec is one slider entry in the config file
type SliderSpec struct {
	Name        string    `yaml:"name"`
	Label       string    `yaml:"label,omitempty"`
	Min         float64   `yaml:"min"`
	Max         float64   `yaml:"max"`
	Step        float64   `yaml:"step"`
	Range       bool      `yaml:"range,omitempty"`
	Orientation string    `yaml:"orientation,omitempty"` // horizontal | vertical
	Default     []float64 `yaml:"default,omitempty"`
	Controlled  bool      `yaml:"controlled,omitempty"` // value owned by the app, not the engine
	Disabled    bool      `yaml:"disabled,omitempty"`
	Length      int       `yaml:"length,omitempty"`
	Unit        string    `yaml:"unit,omitempty"`
}

// File is the top-level YAML structure
type File struct {
	Theme   string       `yaml:"theme,omitempty"`
	Sliders []SliderSpec `yaml:"sliders"`
}

// Domain returns the slider's range
func (s SliderSpec) Domain() model.Range {
	return model.Range{Min: s.Min, Max: s.Max, Step: s.Step}
}

// Title returns the label, falling back to the name
func (s SliderSpec) Title() string {
	if strings.TrimSpace(s.Label) != "" {
		return s.Label
	}
	return s.Name
}

// TrackLength returns the configured length, defaulting and flooring at 2
func (s SliderSpec) TrackLength() int {
	if s.Length <= 0 {
		return DefaultLength
	}
	if s.Length < 2 {
		return 2
	}
	return s.Length
}

// Validate checks a single slider entry
func (s SliderSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := s.Domain().Validate(); err != nil {
		return err
	}
	if _, err := model.ParseOrientation(s.Orientation); err != nil {
		return err
	}
	if len(s.Default) > 2 {
		return fmt.Errorf("default takes one or two values, got %d", len(s.Default))
	}
	if s.Range && len(s.Default) == 1 {
		return fmt.Errorf("range slider default needs two values")
	}
	return nil
}

// EngineConfig converts the entry to an engine configuration. Controlled
// sliders get their default as the initial owned value.
func (s SliderSpec) EngineConfig() slider.Config {
	orientation, _ := model.ParseOrientation(s.Orientation)
	cfg := slider.Config{
		Min:         s.Min,
		Max:         s.Max,
		Step:        s.Step,
		Range:       s.Range,
		Orientation: orientation,
		Disabled:    s.Disabled,
	}
	if v, ok := model.ValueFromSlice(s.Default); ok {
		if s.Controlled {
			cfg.Value = &v
		} else {
			cfg.DefaultValue = &v
		}
	}
	return cfg
}

// Parse decodes and validates YAML config bytes
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse slider config: %w", err)
	}
	if len(f.Sliders) == 0 {
		return nil, ErrNoSliders
	}
	seen := make(map[string]bool, len(f.Sliders))
	for i, s := range f.Sliders {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("sliders[%d] (%s): %w", i, s.Name, err)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("sliders[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
	}
	return &f, nil
}

// Load reads the slider config at path
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no slider config found at %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slider config: %w", err)
	}
	return Parse(data)
}

// LoadOrCreate reads the config at path, writing the built-in default
// first if the file does not exist yet.
func LoadOrCreate(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Write(path, Default()); err != nil {
			return nil, err
		}
	}
	return Load(path)
}

// Write encodes f as YAML at path, creating parent directories
func Write(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode slider config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write slider config: %w", err)
	}
	return nil
}

// DefaultPath returns the config location under the user config dir
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "rangeslider", "sliders.yaml"), nil
}

// Default returns the built-in demo configuration
func Default() *File {
	return &File{
		Theme: "dark",
		Sliders: []SliderSpec{
			{Name: "thickness", Label: "Coating thickness", Min: 0, Max: 250, Step: 5, Default: []float64{80}, Unit: "µm"},
			{Name: "cure-window", Label: "Cure temperature", Min: 120, Max: 260, Step: 10, Range: true, Default: []float64{160, 200}, Unit: "°C"},
			{Name: "gloss", Label: "Gloss level", Min: 0, Max: 100, Step: 30, Default: []float64{60}, Unit: "GU", Controlled: true},
			{Name: "humidity", Label: "Humidity", Min: 0, Max: 100, Step: 1, Orientation: "vertical", Length: 8, Default: []float64{45}, Unit: "%"},
		},
	}
}
