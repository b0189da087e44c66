package loader

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sahilm/fuzzy"
)

// Settings are process-level options read from the environment. CLI flags
// override them.
type Settings struct {
	ConfigPath  string        `env:"SLIDE_CONFIG"`
	Theme       string        `env:"SLIDE_THEME"`
	LogFile     string        `env:"SLIDE_LOG_FILE"`
	Preset      string        `env:"SLIDE_PRESET"`
	SettleDelay time.Duration `env:"SLIDE_SETTLE_DELAY" envDefault:"250ms"`
	NoWatch     bool          `env:"SLIDE_NO_WATCH"`
}

// ParseSettings loads Settings from the environment
func ParseSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// sliderNames adapts a slider list to fuzzy.Source
type sliderNames []SliderSpec

func (s sliderNames) String(i int) string { return s[i].Name + " " + s[i].Label }
func (s sliderNames) Len() int            { return len(s) }

// FindSlider returns the slider whose name or label best matches query
func FindSlider(f *File, query string) (SliderSpec, error) {
	for _, s := range f.Sliders {
		if s.Name == query {
			return s, nil
		}
	}
	matches := fuzzy.FindFrom(query, sliderNames(f.Sliders))
	if len(matches) == 0 {
		return SliderSpec{}, fmt.Errorf("%w: %q", ErrSliderNotFound, query)
	}
	return f.Sliders[matches[0].Index], nil
}

// Select narrows f to the slider matching query. An empty query keeps all.
func Select(f *File, query string) (*File, error) {
	if query == "" {
		return f, nil
	}
	s, err := FindSlider(f, query)
	if err != nil {
		return nil, err
	}
	return &File{Theme: f.Theme, Sliders: []SliderSpec{s}}, nil
}
