package ui

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `# Sliders

| Key | Action |
| --- | --- |
| tab / j | Next slider |
| shift+tab / k | Previous slider |
| t / space | Switch thumb (range sliders) |
| → ↑ / ← ↓ | Step up / down |
| pgup / pgdn | Ten steps up / down |
| e / enter | Type a value |
| y | Copy value to clipboard |
| ? | Toggle this help |
| q / esc | Quit |

## Mouse

- Drag a thumb to move it. The drag follows the pointer anywhere on screen
  and stops when the button is released.
- Click the track of a single slider to jump there. Range sliders only
  move by their thumbs.
- Scroll over a track to step the focused thumb.

Controlled sliders only move once the board accepts the new value.
Disabled sliders ignore all input.
`

// HelpOverlayModel shows keyboard shortcuts help
type HelpOverlayModel struct {
	visible bool
	width   int
	height  int
	theme   Theme

	rendered      string
	renderedWidth int
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{
		theme: theme,
	}
}

// Show makes the help overlay visible
func (m *HelpOverlayModel) Show() {
	m.visible = true
}

// Hide makes the help overlay invisible
func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions and re-renders the markdown for the new width
func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if w := m.wrapWidth(); w != m.renderedWidth {
		m.rendered = renderHelp(m.theme.GlamourStyle, w)
		m.renderedWidth = w
	}
}

// Update handles input
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg.(type) {
	case tea.KeyMsg:
		// Any key closes help
		m.visible = false
	}

	return m, nil
}

// View renders the help overlay
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	body := m.rendered
	if body == "" {
		body = renderHelp(m.theme.GlamourStyle, m.wrapWidth())
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n\n")
	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Press any key to close]"))

	// Wrap in box
	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	return boxStyle.Render(b.String())
}

func (m HelpOverlayModel) wrapWidth() int {
	w := 72
	if m.width > 0 && m.width-6 < w {
		w = m.width - 6
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderHelp renders the help markdown, falling back to the raw text if
// glamour cannot.
func renderHelp(style string, width int) string {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Printf("Warning: help renderer: %v", err)
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		log.Printf("Warning: render help: %v", err)
		return helpMarkdown
	}
	return out
}
