package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/rangeslider/pkg/model"
)

// ErrBadValue is returned when typed input is not a number (or pair)
var ErrBadValue = errors.New("invalid value")

// ValueInputModel is a modal for typing a slider value
type ValueInputModel struct {
	input    textinput.Model
	sliderID string
	title    string
	pair     bool
	width    int
	height   int
	theme    Theme

	// Result
	submitted bool
	cancelled bool
	value     model.Value
	err       error
}

// NewValueInputModel creates the modal prefilled with the current value
func NewValueInputModel(s SliderModel, theme Theme) ValueInputModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. 40"
	if s.Value().IsPair() {
		ti.Placeholder = "e.g. 20, 80"
	}
	ti.SetValue(formatInput(s.Value()))
	ti.CharLimit = 64
	ti.Width = 30
	ti.Focus()

	return ValueInputModel{
		input:    ti,
		sliderID: s.ID(),
		title:    s.Spec().Title(),
		pair:     s.Value().IsPair(),
		theme:    theme,
	}
}

// Init implements tea.Model
func (m ValueInputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m ValueInputModel) Update(msg tea.Msg) (ValueInputModel, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.cancelled = true
			return m, nil
		case "enter":
			v, err := ParseValueInput(m.input.Value(), m.pair)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.value = v
			m.submitted = true
			return m, nil
		}
	}

	m.err = nil
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ValueInputModel) View() string {
	var b strings.Builder

	width := 44
	if m.width > 0 && m.width < 54 {
		width = m.width - 10
	}

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		Width(width).
		Align(lipgloss.Center)
	b.WriteString(titleStyle.Render("Set " + m.title))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		errStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.ThumbActive)
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	hintStyle := m.theme.Renderer.NewStyle().Faint(true)
	b.WriteString(hintStyle.Render("[Enter] Apply  [Esc] Cancel"))

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(b.String())
}

// SetSize sets the modal dimensions
func (m *ValueInputModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsSubmitted returns true if a valid value was entered
func (m ValueInputModel) IsSubmitted() bool {
	return m.submitted
}

// IsCancelled returns true if the user cancelled
func (m ValueInputModel) IsCancelled() bool {
	return m.cancelled
}

// Value returns the entered value
func (m ValueInputModel) Value() model.Value {
	return m.value
}

// SliderID returns the slider being edited
func (m ValueInputModel) SliderID() string {
	return m.sliderID
}

// ParseValueInput reads "40" for a single slider or "20, 80" (comma,
// semicolon or space separated) for a range slider.
func ParseValueInput(text string, pair bool) (model.Value, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	want := 1
	if pair {
		want = 2
	}
	if len(fields) != want {
		return model.Value{}, fmt.Errorf("%w: want %d number(s), got %d", ErrBadValue, want, len(fields))
	}
	nums := make([]float64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return model.Value{}, fmt.Errorf("%w: %q", ErrBadValue, f)
		}
		nums[i] = n
	}
	v, _ := model.ValueFromSlice(nums)
	return v, nil
}

func formatInput(v model.Value) string {
	if v.IsPair() {
		return model.FormatNumber(v.Low()) + ", " + model.FormatNumber(v.High())
	}
	return model.FormatNumber(v.Scalar())
}
