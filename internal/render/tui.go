package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scamquiz/internal/engine"
	"scamquiz/internal/session"
)

// ErrClosed is returned by Render once the TUI program has exited.
var ErrClosed = errors.New("tui closed")

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// screenMsg hands a screen to the model together with the channel the
// player's action goes back on.
type screenMsg struct {
	screen session.Screen
	reply  chan<- session.Action
}

// TUI renders screens in a bubbletea program running on its own goroutine.
type TUI struct {
	program teaProgram
	done    chan struct{}
}

// NewTUI starts the bubbletea program on the alternate screen.
func NewTUI() *TUI {
	t := &TUI{done: make(chan struct{})}
	p := tea.NewProgram(newTUIModel(), tea.WithAltScreen())
	t.program = p
	go func() {
		_, _ = p.Run()
		close(t.done)
	}()
	return t
}

// Render shows s and waits for the player's action.
func (t *TUI) Render(ctx context.Context, s session.Screen) (session.Action, error) {
	reply := make(chan session.Action, 1)
	t.program.Send(screenMsg{screen: s, reply: reply})
	select {
	case a := <-reply:
		return a, nil
	case <-ctx.Done():
		return session.Action{}, ctx.Err()
	case <-t.done:
		select {
		case a := <-reply:
			return a, nil
		default:
			return session.Action{}, ErrClosed
		}
	}
}

// Close shuts down the TUI program and waits for the terminal to be restored.
func (t *TUI) Close() error {
	if t.program != nil {
		t.program.Send(tea.Quit())
	}
	if t.done != nil {
		<-t.done
	}
	return nil
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scroll key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scroll, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type tuiModel struct {
	screen session.Screen
	reply  chan<- session.Action
	cursor int
	vp     viewport.Model
	help   help.Model
	keys   keyMap
	width  int
	height int
}

func newTUIModel() tuiModel {
	vp := viewport.New(0, 0)
	vp.KeyMap.Up.SetEnabled(false)
	vp.KeyMap.Down.SetEnabled(false)
	return tuiModel{
		screen: session.IntroScreen{},
		vp:     vp,
		help:   help.New(),
		keys:   defaultKeyMap(),
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.vp.Width = msg.Width
		m.updateViewportHeight()
		m.refresh()
	case screenMsg:
		m.screen = msg.screen
		m.reply = msg.reply
		m.cursor = 0
		m.refresh()
		m.vp.GotoTop()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.respond(session.Quit())
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.choiceCount()-1 {
				m.cursor++
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.Select):
			m.respond(actionFor(m.screen, m.cursor))
			return m, nil
		}
		if n := m.choiceCount(); n > 0 && len(msg.Runes) == 1 {
			if i := int(msg.Runes[0] - '1'); i >= 0 && i < n {
				m.cursor = i
				m.refresh()
				m.respond(session.Choose(i))
				return m, nil
			}
		}
		if _, ok := m.screen.(session.EndScreen); ok && msg.String() == "r" {
			m.respond(session.Restart())
			return m, nil
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

// respond delivers at most one action per screen.
func (m *tuiModel) respond(a session.Action) {
	if m.reply == nil {
		return
	}
	m.reply <- a
	m.reply = nil
}

// actionFor maps the select key to the action the current screen expects.
func actionFor(s session.Screen, cursor int) session.Action {
	switch s.Phase() {
	case engine.PhaseScenario:
		return session.Choose(cursor)
	case engine.PhaseFeedback, engine.PhaseQuiz:
		return session.Continue()
	case engine.PhaseEnd:
		return session.Restart()
	default:
		return session.Start()
	}
}

func (m tuiModel) choiceCount() int {
	if s, ok := m.screen.(session.ScenarioScreen); ok {
		return len(s.Scenario.Choices)
	}
	return 0
}

func (m *tuiModel) refresh() {
	m.vp.SetContent(renderBody(m.screen, m.cursor, m.width))
}

func (m *tuiModel) updateViewportHeight() {
	h := m.height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderFooter())
	if h < 1 {
		h = 1
	}
	m.vp.Height = h
}

func (m tuiModel) renderHeader() string {
	return titleStyle.Render("SCAM DETECTIVE") + " " + subtleStyle.Render(fmt.Sprintf("[%s]", m.screen.Phase()))
}

func (m tuiModel) renderFooter() string {
	return m.help.View(m.keys)
}

func (m tuiModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.vp.View(), m.renderFooter())
}
