package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/Dicklesworthstone/rangeslider/pkg/geometry"
	"github.com/Dicklesworthstone/rangeslider/pkg/loader"
	"github.com/Dicklesworthstone/rangeslider/pkg/model"
	"github.com/Dicklesworthstone/rangeslider/pkg/session"
	"github.com/Dicklesworthstone/rangeslider/pkg/slider"
	"github.com/Dicklesworthstone/rangeslider/pkg/store"
)

// ChangedMsg reports a value committed by a slider
type ChangedMsg struct {
	ID    string
	Value model.Value
}

// trackSurface is the engine's view of one rendered slider. It is shared by
// every copy of the SliderModel that owns it.
type trackSurface struct {
	dispatcher *session.Dispatcher
	rect       geometry.Rect
	mounted    bool
	pending    []model.Value
}

func (s *trackSurface) TrackRect() (geometry.Rect, bool) {
	return s.rect, s.mounted
}

func (s *trackSurface) Subscribe(l session.Listener) session.Subscription {
	return s.dispatcher.Subscribe(l)
}

// SliderModel renders one slider and turns terminal mouse and key events
// into engine calls.
//
// Layout, horizontal (2 rows):
//
//	label    ━━━━━━━●───────── 80 µm
//	         ╵   ╵   ╵   ╵   ╵
//
// Layout, vertical (length+2 rows): label, one row per track cell, value.
type SliderModel struct {
	spec    loader.SliderSpec
	engine  *slider.Engine
	surface *trackSurface
	theme   Theme

	x, y    int
	labelW  int
	focused bool
	thumb   int // thumb moved by the keyboard
}

// NewSliderModel builds the view and its engine. Motion and release events
// reach the engine through d.
func NewSliderModel(spec loader.SliderSpec, d *session.Dispatcher, theme Theme) SliderModel {
	surface := &trackSurface{dispatcher: d}
	cfg := spec.EngineConfig()
	cfg.OnChange = func(v model.Value) {
		surface.pending = append(surface.pending, v)
	}
	if spec.Controlled && cfg.Value == nil {
		v := store.Default(cfg.Domain().Normalize(), cfg.Range)
		cfg.Value = &v
	}
	return SliderModel{
		spec:    spec,
		engine:  slider.New(surface, cfg),
		surface: surface,
		theme:   theme,
		labelW:  runewidth.StringWidth(spec.Title()),
	}
}

// ID returns the slider name
func (m SliderModel) ID() string {
	return m.spec.Name
}

// Spec returns the config entry the slider was built from
func (m SliderModel) Spec() loader.SliderSpec {
	return m.spec
}

// Engine exposes the underlying engine
func (m SliderModel) Engine() *slider.Engine {
	return m.engine
}

// Value returns the displayed value
func (m SliderModel) Value() model.Value {
	return m.engine.CurrentValue()
}

// FocusedThumb returns the thumb the keyboard moves
func (m SliderModel) FocusedThumb() int {
	return m.thumb
}

// SetFocused marks the slider as the keyboard target
func (m SliderModel) SetFocused(focused bool) SliderModel {
	m.focused = focused
	return m
}

// SetLayout places the slider with its top-left cell at (x, y) and the
// track starting labelW+1 columns in. The track rect is published to the
// engine here, so a slider is "mounted" once it has been laid out.
func (m SliderModel) SetLayout(x, y, labelW int) SliderModel {
	m.x, m.y, m.labelW = x, y, labelW
	m.surface.rect = m.trackRect()
	m.surface.mounted = true
	return m
}

// Height returns the number of rows View produces
func (m SliderModel) Height() int {
	if m.vertical() {
		return m.spec.TrackLength() + 2
	}
	return 2
}

// SetValue feeds an accepted value back to a controlled slider
func (m SliderModel) SetValue(v model.Value) {
	cfg := m.engine.Config()
	if cfg.Value == nil {
		return
	}
	cfg.Value = &v
	m.engine.Configure(cfg)
}

// Reconfigure applies an edited config entry. A controlled slider keeps
// the value it currently owns.
func (m SliderModel) Reconfigure(spec loader.SliderSpec) SliderModel {
	prev := m.engine.Config()
	cfg := spec.EngineConfig()
	cfg.OnChange = prev.OnChange
	if spec.Controlled {
		v := m.engine.CurrentValue()
		cfg.Value = &v
	}
	m.engine.Configure(cfg)
	m.spec = spec
	if m.thumb >= len(m.engine.CurrentValue().Thumbs()) {
		m.thumb = 0
	}
	return m
}

// Close ends any drag and unmounts the track
func (m SliderModel) Close() {
	m.engine.Close()
	m.surface.mounted = false
}

// Flush returns a command emitting the latest committed value, if any
func (m SliderModel) Flush() tea.Cmd {
	n := len(m.surface.pending)
	if n == 0 {
		return nil
	}
	v := m.surface.pending[n-1]
	m.surface.pending = m.surface.pending[:0]
	id := m.spec.Name
	return func() tea.Msg {
		return ChangedMsg{ID: id, Value: v}
	}
}

// HandlePress handles a mouse press at cell (x, y). handled is false when
// the press is outside the slider's track.
func (m SliderModel) HandlePress(msg tea.MouseMsg) (SliderModel, tea.Cmd, bool) {
	idx, ok := m.cellIndex(msg.X, msg.Y)
	if !ok {
		return m, nil, false
	}
	p := cellCenter(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelRight:
		m.engine.Nudge(m.thumb, 1)
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft:
		m.engine.Nudge(m.thumb, -1)
	case tea.MouseButtonLeft:
		if thumb := m.thumbAt(idx); thumb != session.NoThumb {
			if m.engine.OnThumbPointerDown(thumb, p) {
				m.thumb = thumb
			}
		} else {
			m.engine.OnTrackPointerDown(p)
		}
	default:
		return m, nil, false
	}
	return m, m.Flush(), true
}

// Update handles keys for the focused slider
func (m SliderModel) Update(msg tea.Msg, keys KeyMap) (SliderModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Increase):
		m.engine.Nudge(m.thumb, 1)
	case key.Matches(keyMsg, keys.Decrease):
		m.engine.Nudge(m.thumb, -1)
	case key.Matches(keyMsg, keys.PageUp):
		m.engine.Nudge(m.thumb, 10)
	case key.Matches(keyMsg, keys.PageDown):
		m.engine.Nudge(m.thumb, -10)
	case key.Matches(keyMsg, keys.Thumb):
		if n := len(m.engine.CurrentValue().Thumbs()); n > 1 {
			m.thumb = (m.thumb + 1) % n
		}
	}
	return m, m.Flush()
}

// ══════════════════════════════════════════════════════════════════════════════
// GEOMETRY
// ══════════════════════════════════════════════════════════════════════════════

func (m SliderModel) vertical() bool {
	return m.engine.Config().Orientation == model.Vertical
}

// trackOrigin is the first track cell: leftmost for horizontal, topmost
// for vertical.
func (m SliderModel) trackOrigin() (int, int) {
	if m.vertical() {
		return m.x + 2, m.y + 1
	}
	return m.x + m.labelW + 1, m.y
}

// trackRect spans the centres of the first and last track cells, so a
// pointer on either end cell maps exactly to Min or Max.
func (m SliderModel) trackRect() geometry.Rect {
	x0, y0 := m.trackOrigin()
	n := float64(m.spec.TrackLength() - 1)
	if m.vertical() {
		return geometry.Rect{X: float64(x0), Y: float64(y0) + 0.5, Width: 1, Height: n}
	}
	return geometry.Rect{X: float64(x0) + 0.5, Y: float64(y0), Width: n, Height: 1}
}

func cellCenter(x, y int) geometry.Point {
	return geometry.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// cellIndex maps a screen cell to a track index counted from the Min end
func (m SliderModel) cellIndex(x, y int) (int, bool) {
	x0, y0 := m.trackOrigin()
	n := m.spec.TrackLength()
	if m.vertical() {
		if x != x0 || y < y0 || y >= y0+n {
			return 0, false
		}
		return n - 1 - (y - y0), true
	}
	if y != y0 || x < x0 || x >= x0+n {
		return 0, false
	}
	return x - x0, true
}

// positionIndex maps a percentage to a track index
func (m SliderModel) positionIndex(pos float64) int {
	if math.IsNaN(pos) {
		pos = 0
	}
	pos = math.Max(0, math.Min(100, pos))
	return int(math.Round(pos / 100 * float64(m.spec.TrackLength()-1)))
}

// thumbAt returns the thumb drawn at track index idx. When both thumbs
// share a cell the upper one is picked unless it already sits at Max,
// so stacked thumbs can always be pulled apart.
func (m SliderModel) thumbAt(idx int) int {
	positions := m.engine.CurrentPositions()
	hit := session.NoThumb
	for i, pos := range positions {
		if m.positionIndex(pos) == idx {
			hit = i
		}
	}
	if hit == 1 && m.positionIndex(positions[0]) == idx {
		if m.engine.CurrentValue().High() >= m.engine.Domain().Max {
			return 0
		}
	}
	return hit
}

// ══════════════════════════════════════════════════════════════════════════════
// VIEW
// ══════════════════════════════════════════════════════════════════════════════

// View renders the slider
func (m SliderModel) View() string {
	if m.vertical() {
		return m.viewVertical()
	}
	return m.viewHorizontal()
}

func (m SliderModel) viewHorizontal() string {
	n := m.spec.TrackLength()
	var b strings.Builder
	b.WriteString(m.renderLabel(m.labelW))
	b.WriteString(" ")
	for i := 0; i < n; i++ {
		b.WriteString(m.renderCell(i, glyphTrackH, glyphFillH))
	}
	b.WriteString(" ")
	b.WriteString(m.renderValue())
	b.WriteString("\n")

	ticks := []rune(strings.Repeat(" ", n))
	for _, t := range geometry.Ticks(m.engine.Domain(), tickCount(n)) {
		ticks[m.positionIndex(geometry.ValueToPosition(t, m.engine.Domain()))] = []rune(glyphTick)[0]
	}
	tickStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Secondary)
	b.WriteString(strings.Repeat(" ", m.labelW+1))
	b.WriteString(tickStyle.Render(string(ticks)))
	return b.String()
}

func (m SliderModel) viewVertical() string {
	n := m.spec.TrackLength()
	lines := make([]string, 0, n+2)
	lines = append(lines, m.renderLabel(m.labelW))
	for row := 0; row < n; row++ {
		lines = append(lines, "  "+m.renderCell(n-1-row, glyphTrackV, glyphFillV))
	}
	lines = append(lines, m.renderValue())
	return strings.Join(lines, "\n")
}

func (m SliderModel) renderLabel(width int) string {
	label := m.spec.Title()
	if runewidth.StringWidth(label) > width {
		label = truncate.StringWithTail(label, uint(width), "…")
	}
	label = runewidth.FillRight(label, width)
	style := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)
	if m.focused {
		style = style.Bold(true).Foreground(m.theme.Primary)
	}
	return style.Render(label)
}

// renderCell draws track index i
func (m SliderModel) renderCell(i int, track, fill string) string {
	r := m.theme.Renderer
	positions := m.engine.CurrentPositions()
	idx := make([]int, len(positions))
	for t, pos := range positions {
		idx[t] = m.positionIndex(pos)
	}
	disabled := m.engine.Config().Disabled

	for t := len(idx) - 1; t >= 0; t-- {
		if idx[t] != i {
			continue
		}
		glyph := glyphThumb
		color := m.theme.Thumb
		if m.focused && t == m.thumb {
			glyph = glyphThumbFocus
		}
		if m.engine.ActiveThumb() == t {
			color = m.theme.ThumbActive
		}
		if disabled {
			color = m.theme.Disabled
		}
		return r.NewStyle().Foreground(color).Bold(true).Render(glyph)
	}

	lo, hi := 0, idx[0]
	if len(idx) == 2 {
		lo, hi = idx[0], idx[1]
	}
	if i >= lo && i <= hi && !disabled {
		return r.NewStyle().Foreground(m.theme.Fill).Render(fill)
	}
	color := m.theme.Track
	if disabled {
		color = m.theme.Disabled
	}
	return r.NewStyle().Foreground(color).Render(track)
}

func (m SliderModel) renderValue() string {
	style := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary)
	text := FormatValue(m.engine.CurrentValue(), m.spec.Unit)
	if m.engine.Config().Disabled {
		style = style.Foreground(m.theme.Disabled)
		text += " (disabled)"
	}
	return style.Render(text)
}

// FormatValue renders a value with its unit
func FormatValue(v model.Value, unit string) string {
	var s string
	if v.IsPair() {
		s = fmt.Sprintf("%s – %s", model.FormatNumber(v.Low()), model.FormatNumber(v.High()))
	} else {
		s = model.FormatNumber(v.Scalar())
	}
	if unit != "" {
		s += " " + unit
	}
	return s
}

func tickCount(length int) int {
	switch {
	case length >= 20:
		return 5
	case length >= 8:
		return 3
	default:
		return 2
	}
}
