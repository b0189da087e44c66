package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/rangeslider/pkg/loader"
	"github.com/Dicklesworthstone/rangeslider/pkg/model"
	"github.com/Dicklesworthstone/rangeslider/pkg/session"
	"github.com/Dicklesworthstone/rangeslider/pkg/watcher"
)

const (
	headerRows = 2 // title + divider
	indent     = 2
	maxLabelW  = 24
)

// SettledMsg is sent once a slider has stopped changing: on pointer
// release, or after the settle delay for keyboard and wheel input.
type SettledMsg struct {
	ID    string
	Value model.Value
}

// ConfigReloadedMsg carries a re-read config file
type ConfigReloadedMsg struct {
	File *loader.File
}

// ConfigErrorMsg reports a config file that failed to reload
type ConfigErrorMsg struct {
	Err error
}

// Options configures the board
type Options struct {
	Theme       Theme
	Title       string
	SettleDelay time.Duration
}

// sender lets timer goroutines post messages to the running program. It is
// shared by every copy of the Model.
type sender struct {
	fn func(tea.Msg)
}

func (s *sender) send(msg tea.Msg) {
	if s.fn != nil {
		s.fn(msg)
	}
}

// Model is the slider board
type Model struct {
	sliders    []SliderModel
	focus      int
	dispatcher *session.Dispatcher

	theme       Theme
	title       string
	keys        KeyMap
	helpBar     help.Model
	helpOverlay HelpOverlayModel

	editing bool
	input   ValueInputModel

	settle     *watcher.Debouncer
	sender     *sender
	lastChange *ChangedMsg
	copyFn     func(string) error

	status    string
	statusErr bool
	width     int
	height    int
}

// NewModel builds a board for every slider in f
func NewModel(f *loader.File, opts Options) Model {
	if opts.Theme.Renderer == nil {
		opts.Theme = DefaultTheme(nil)
	}
	if opts.Title == "" {
		opts.Title = "Sliders"
	}
	m := Model{
		dispatcher:  session.NewDispatcher(),
		theme:       opts.Theme,
		title:       opts.Title,
		keys:        DefaultKeyMap(),
		helpBar:     help.New(),
		helpOverlay: NewHelpOverlayModel(opts.Theme),
		settle:      watcher.NewDebouncer(opts.SettleDelay),
		sender:      &sender{},
		copyFn:      clipboard.WriteAll,
	}
	for _, spec := range f.Sliders {
		m.sliders = append(m.sliders, NewSliderModel(spec, m.dispatcher, m.theme))
	}
	m.layout()
	return m
}

// BindProgram lets the board post settle notifications to p
func (m Model) BindProgram(p *tea.Program) {
	m.sender.fn = p.Send
}

// Values returns the current value of every slider, in board order
func (m Model) Values() []ChangedMsg {
	out := make([]ChangedMsg, len(m.sliders))
	for i, s := range m.sliders {
		out[i] = ChangedMsg{ID: s.ID(), Value: s.Value()}
	}
	return out
}

// Focused returns the index of the keyboard-focused slider
func (m Model) Focused() int {
	return m.focus
}

// Status returns the status line text
func (m Model) Status() string {
	return m.status
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.helpBar.Width = msg.Width
		m.helpOverlay.SetSize(msg.Width, msg.Height)
		m.input.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		if m.helpOverlay.IsVisible() || m.editing {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ChangedMsg:
		i := m.indexOf(msg.ID)
		if i < 0 {
			return m, nil
		}
		s := m.sliders[i]
		if s.Engine().Controlled() {
			s.SetValue(msg.Value)
		}
		change := msg
		m.lastChange = &change
		m.setStatus(fmt.Sprintf("%s = %s", s.Spec().Title(), FormatValue(msg.Value, s.Spec().Unit)), false)
		settled := SettledMsg{ID: msg.ID, Value: msg.Value}
		snd := m.sender
		m.settle.Trigger(func() { snd.send(settled) })
		return m, nil

	case SettledMsg:
		log.Printf("slider %s settled at %s", msg.ID, msg.Value)
		return m, nil

	case ConfigReloadedMsg:
		m.reload(msg.File)
		m.setStatus("Config reloaded", false)
		return m, nil

	case ConfigErrorMsg:
		log.Printf("Warning: config reload failed: %v", msg.Err)
		m.setStatus("Config error: "+msg.Err.Error(), true)
		return m, nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := cellCenter(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		m.dispatcher.Move(p)
		return m, m.flushAll()

	case tea.MouseActionRelease:
		m.dispatcher.Up(p)
		cmds := []tea.Cmd{m.flushAll()}
		if m.settle.Pending() && m.lastChange != nil {
			m.settle.Cancel()
			settled := SettledMsg{ID: m.lastChange.ID, Value: m.lastChange.Value}
			cmds = append(cmds, func() tea.Msg { return settled })
		}
		return m, tea.Batch(cmds...)

	case tea.MouseActionPress:
		for i := range m.sliders {
			s, cmd, handled := m.sliders[i].HandlePress(msg)
			if !handled {
				continue
			}
			m.sliders[i] = s
			m.setFocus(i)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpOverlay.IsVisible() {
		m.helpOverlay, _ = m.helpOverlay.Update(msg)
		return m, nil
	}
	if m.editing {
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpOverlay.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil
	}

	if len(m.sliders) == 0 {
		return m, nil
	}
	cur := m.sliders[m.focus]
	switch {
	case key.Matches(msg, m.keys.Copy):
		text := formatInput(cur.Value())
		if err := m.copyFn(text); err != nil {
			log.Printf("Warning: clipboard: %v", err)
			m.setStatus("Copy failed: "+err.Error(), true)
		} else {
			m.setStatus("Copied "+text, false)
		}
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		if cur.Engine().Config().Disabled {
			m.setStatus(cur.Spec().Title()+" is disabled", true)
			return m, nil
		}
		m.input = NewValueInputModel(cur, m.theme)
		m.input.SetSize(m.width, m.height)
		m.editing = true
		return m, m.input.Init()
	}

	var cmd tea.Cmd
	m.sliders[m.focus], cmd = cur.Update(msg, m.keys)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	switch {
	case m.input.IsCancelled():
		m.editing = false
		return m, nil
	case m.input.IsSubmitted():
		m.editing = false
		i := m.indexOf(m.input.SliderID())
		if i < 0 {
			return m, nil
		}
		m.sliders[i].Engine().Set(m.input.Value())
		return m, m.sliders[i].Flush()
	}
	return m, cmd
}

// reload rebuilds the board from f. Sliders are matched by name: existing
// ones are reconfigured in place, missing ones are closed.
func (m *Model) reload(f *loader.File) {
	byName := make(map[string]SliderModel, len(m.sliders))
	for _, s := range m.sliders {
		byName[s.ID()] = s
	}
	next := make([]SliderModel, 0, len(f.Sliders))
	for _, spec := range f.Sliders {
		if s, ok := byName[spec.Name]; ok {
			next = append(next, s.Reconfigure(spec))
			delete(byName, spec.Name)
			continue
		}
		next = append(next, NewSliderModel(spec, m.dispatcher, m.theme))
	}
	for _, s := range byName {
		s.Close()
	}
	m.sliders = next
	if m.focus >= len(m.sliders) {
		m.focus = 0
	}
	m.layout()
}

func (m *Model) layout() {
	labelW := 0
	for _, s := range m.sliders {
		if w := runewidth.StringWidth(s.Spec().Title()); w > labelW {
			labelW = w
		}
	}
	if labelW > maxLabelW {
		labelW = maxLabelW
	}
	y := headerRows
	for i := range m.sliders {
		m.sliders[i] = m.sliders[i].SetLayout(indent, y, labelW).SetFocused(i == m.focus)
		y += m.sliders[i].Height() + 1
	}
}

func (m *Model) setFocus(i int) {
	n := len(m.sliders)
	if n == 0 {
		return
	}
	m.focus = ((i % n) + n) % n
	for j := range m.sliders {
		m.sliders[j] = m.sliders[j].SetFocused(j == m.focus)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Model) indexOf(id string) int {
	for i, s := range m.sliders {
		if s.ID() == id {
			return i
		}
	}
	return -1
}

func (m Model) flushAll() tea.Cmd {
	var cmds []tea.Cmd
	for _, s := range m.sliders {
		if cmd := s.Flush(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) shutdown() {
	m.settle.Cancel()
	for _, s := range m.sliders {
		s.Close()
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.helpOverlay.IsVisible() {
		return m.place(m.helpOverlay.View())
	}
	if m.editing {
		return m.place(m.input.View())
	}

	var b strings.Builder
	titleStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary)
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	width := m.width
	if width <= 0 {
		width = 60
	}
	b.WriteString(RenderDivider(width))
	b.WriteString("\n")

	pad := strings.Repeat(" ", indent)
	for _, s := range m.sliders {
		for _, line := range strings.Split(s.View(), "\n") {
			b.WriteString(pad)
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if len(m.sliders) == 0 {
		b.WriteString(pad + "No sliders configured\n\n")
	}

	statusStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)
	if m.statusErr {
		statusStyle = statusStyle.Foreground(m.theme.ThumbActive)
	}
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.helpBar.View(m.keys))
	return b.String()
}

func (m Model) place(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
