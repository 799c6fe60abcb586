// Package tui is the full-screen front end: a command box over a live,
// numbered list of the current view.
package tui

import (
	"context"
	"strings"

	"github.com/Veraticus/hireflow/internal/command"
	"github.com/Veraticus/hireflow/internal/engine"
	"github.com/Veraticus/hireflow/internal/store"
	"github.com/Veraticus/hireflow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Session is the engine surface the TUI drives.
type Session interface {
	Execute(ctx context.Context, line string) (command.Result, error)
	State() engine.GateState
	Store() store.Store
}

// Model holds the TUI state.
type Model struct {
	ctx      context.Context
	session  Session
	theme    themes.Theme
	lastErr  error
	keymap   KeyMap
	help     help.Model
	input    textinput.Model
	list     viewport.Model
	feedback string
	history  []string
	config   Config
	width    int
	height   int
	histPos  int
	showHelp bool
	showFull bool
	quitting bool
}

func newModel(ctx context.Context, session Session, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "Enter command here..."
	input.Prompt = "❯ "
	input.Focus()

	m := Model{
		ctx:      ctx,
		session:  session,
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		config:   cfg,
		width:    cfg.Width,
		height:   cfg.Height,
		showHelp: cfg.ShowHelp,
		feedback: "Type help to see the available commands.",
	}
	m.list = viewport.New(cfg.Width, m.listHeight())
	m.list.MouseWheelEnabled = cfg.MouseSupport
	m.refreshList()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleKey processes bindings the model owns. Unhandled keys go to the
// text input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.showFull = !m.showFull
		return nil, true

	case key.Matches(msg, m.keymap.Submit):
		line := m.input.Value()
		if strings.TrimSpace(line) == "" && m.session.State() == engine.Idle {
			return nil, true
		}
		m.remember(line)
		m.input.Reset()
		return m.execute(line), true

	case key.Matches(msg, m.keymap.HistoryPrev):
		m.recall(-1)
		return nil, true

	case key.Matches(msg, m.keymap.HistoryNext):
		m.recall(1)
		return nil, true

	case key.Matches(msg, m.keymap.PageUp):
		m.list.HalfViewUp()
		return nil, true

	case key.Matches(msg, m.keymap.PageDown):
		m.list.HalfViewDown()
		return nil, true

	case key.Matches(msg, m.keymap.ClearInput):
		m.input.Reset()
		return nil, true
	}
	return nil, false
}

// execute runs line inside Update. The book is not safe for concurrent use
// and View reads it, so commands never run on a tea.Cmd goroutine.
func (m *Model) execute(line string) tea.Cmd {
	res, err := m.session.Execute(m.ctx, line)
	m.feedback = res.Feedback
	m.lastErr = err
	m.refreshList()
	if res.ShowHelp {
		m.showFull = true
	}
	if res.Exit {
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) remember(line string) {
	if line == "" {
		return
	}
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	if over := len(m.history) - m.config.HistorySize; m.config.HistorySize > 0 && over > 0 {
		m.history = m.history[over:]
	}
	m.histPos = len(m.history)
}

func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	m.histPos = max(0, min(len(m.history), m.histPos+delta))
	if m.histPos == len(m.history) {
		m.input.Reset()
		return
	}
	m.input.SetValue(m.history[m.histPos])
	m.input.CursorEnd()
}

func (m *Model) handleResize() {
	m.list.Width = m.width
	m.list.Height = m.listHeight()
	m.input.Width = max(10, m.width-4)
	m.help.Width = m.width
	m.refreshList()
}

// listHeight is what remains after the title, feedback box, input and help.
func (m Model) listHeight() int {
	return max(3, m.height-12)
}

func (m *Model) refreshList() {
	m.list.SetContent(m.renderApplicants(m.session.Store().View()))
}
