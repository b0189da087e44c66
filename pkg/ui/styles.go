package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired, adaptive for light terminals
// ══════════════════════════════════════════════════════════════════════════════

var ColorBgHighlight = lipgloss.Color("#44475A")

// Theme holds the styles shared by every slider view
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor

	Track       lipgloss.AdaptiveColor
	Fill        lipgloss.AdaptiveColor
	Thumb       lipgloss.AdaptiveColor
	ThumbActive lipgloss.AdaptiveColor
	Disabled    lipgloss.AdaptiveColor

	// GlamourStyle names the glamour style used for the help overlay
	GlamourStyle string
}

// DefaultTheme returns the dark theme bound to r
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:     r,
		Primary:      lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"},
		Secondary:    lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:      lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Border:       lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#44475A"},
		Track:        lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#44475A"},
		Fill:         lipgloss.AdaptiveColor{Light: "#0A7E8C", Dark: "#8BE9FD"},
		Thumb:        lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#50FA7B"},
		ThumbActive:  lipgloss.AdaptiveColor{Light: "#C2185B", Dark: "#FF79C6"},
		Disabled:     lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#6272A4"},
		GlamourStyle: "dark",
	}
}

// ThemeByName picks "dark" (default) or "light". The light theme changes
// the background setting of r, so r should not be shared; nil gets a fresh
// stdout renderer.
func ThemeByName(name string, r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.NewRenderer(os.Stdout)
	}
	t := DefaultTheme(r)
	if strings.EqualFold(strings.TrimSpace(name), "light") {
		t.Renderer.SetHasDarkBackground(false)
		t.GlamourStyle = "light"
	}
	return t
}

// ══════════════════════════════════════════════════════════════════════════════
// GLYPHS
// ══════════════════════════════════════════════════════════════════════════════

const (
	glyphTrackH     = "─"
	glyphFillH      = "━"
	glyphTrackV     = "│"
	glyphFillV      = "┃"
	glyphThumb      = "●"
	glyphThumbFocus = "◉"
	glyphTick       = "╵"
)

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
