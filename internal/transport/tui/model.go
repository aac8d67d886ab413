package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

type gameManager interface {
	State() entity.GameState
	PlayMove(row, col int, position entity.Position) entity.GameState
	ResetBoard() entity.GameState
	ChangeBackgroundColor() entity.GameState
}

// StateChangedMsg tells the model that the game changed outside of its own input,
// for example after an automatic reset.
type StateChangedMsg struct{}

type setBackgroundColorMsg struct {
	color termenv.Color
}

func setBackgroundColor(c termenv.Color) tea.Cmd {
	return func() tea.Msg {
		return setBackgroundColorMsg{color: c}
	}
}

type Options struct {
	Palette        Palette
	Link           Link
	RippleDuration time.Duration
	// Output receives the background color sequences. Defaults to the process terminal.
	Output *termenv.Output
	// OpenLink defaults to OpenInBrowser.
	OpenLink func(rawURL string) error
}

type Model struct {
	logger  *slog.Logger
	manager gameManager

	KeyMap         KeyMap
	palette        Palette
	link           Link
	rippleDuration time.Duration
	openLink       func(rawURL string) error

	output          *termenv.Output
	originalBgColor termenv.Color
	appliedBg       entity.Color

	state  entity.GameState
	cursor coordinate
	ripple ripple
	status string
}

func NewModel(logger *slog.Logger, manager gameManager, opts Options) Model {
	output := opts.Output
	if output == nil {
		output = termenv.DefaultOutput()
	}

	openLink := opts.OpenLink
	if openLink == nil {
		openLink = OpenInBrowser
	}

	state := manager.State()

	return Model{
		logger:          logger.With("component", "tui"),
		manager:         manager,
		KeyMap:          Keys,
		palette:         opts.Palette,
		link:            opts.Link,
		rippleDuration:  opts.RippleDuration,
		openLink:        openLink,
		output:          output,
		originalBgColor: output.BackgroundColor(),
		appliedBg:       state.Background,
		state:           state,
		cursor:          coordinate{row: 1, col: 1},
	}
}

// RestoreBackground puts back the background the terminal had before the game started.
func (m Model) RestoreBackground() {
	if m.originalBgColor != nil {
		m.output.SetBackgroundColor(m.originalBgColor)
	}
}

func (m Model) Init() tea.Cmd {
	return setBackgroundColor(m.palette.terminalColor(m.state.Background))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case setBackgroundColorMsg:
		if msg.color != nil {
			m.output.SetBackgroundColor(msg.color)
		}

		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		cell, ok := cellAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}

		m.cursor = cell

		return m, m.play(cell, entity.Position{X: msg.X, Y: msg.Y})

	case StateChangedMsg:
		return m, m.refresh(m.manager.State())

	case rippleTickMsg:
		return m, m.advanceRipple(msg)

	case linkOpenedMsg:
		if msg.err != nil {
			m.logger.Error("failed to open link", "url", m.link.URL, "error", msg.err)
			m.status = msg.err.Error()
		}

		return m, nil
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.KeyMap.Quit):
		return m, tea.Sequence(
			setBackgroundColor(m.originalBgColor),
			tea.Quit,
		)

	case key.Matches(msg, m.KeyMap.Up):
		m.cursor.row = (m.cursor.row - 1 + entity.Size) % entity.Size

	case key.Matches(msg, m.KeyMap.Down):
		m.cursor.row = (m.cursor.row + 1) % entity.Size

	case key.Matches(msg, m.KeyMap.Left):
		m.cursor.col = (m.cursor.col - 1 + entity.Size) % entity.Size

	case key.Matches(msg, m.KeyMap.Right):
		m.cursor.col = (m.cursor.col + 1) % entity.Size

	case key.Matches(msg, m.KeyMap.Play):
		return m, m.play(m.cursor, cellCenter(m.cursor))

	case key.Matches(msg, m.KeyMap.Cell):
		cell, ok := cellForDigit(msg.String())
		if !ok {
			return m, nil
		}
		m.cursor = cell

		return m, m.play(cell, cellCenter(cell))

	case key.Matches(msg, m.KeyMap.Reset):
		return m, m.refresh(m.manager.ResetBoard())

	case key.Matches(msg, m.KeyMap.Link):
		m.status = ""
		openLink, rawURL := m.openLink, m.link.URL

		return m, func() tea.Msg {
			return linkOpenedMsg{err: openLink(rawURL)}
		}
	}

	return m, nil
}

func (m *Model) play(cell coordinate, position entity.Position) tea.Cmd {
	prev := m.manager.State()
	next := m.manager.PlayMove(cell.row, cell.col, position)

	cmd := m.refresh(next)

	if next.Board == prev.Board || next.Result.IsTerminal() {
		return cmd
	}

	m.logger.Debug("move accepted", "row", cell.row, "col", cell.col, "turn", next.Turn.String())

	if m.rippleDuration <= 0 {
		return tea.Batch(cmd, m.changeBackground())
	}

	m.ripple.start(next.Position, entity.ColorOf(next.Turn))

	return tea.Batch(cmd, rippleTick(m.ripple.generation, m.rippleDuration))
}

func (m *Model) advanceRipple(msg rippleTickMsg) tea.Cmd {
	if msg.generation != m.ripple.generation || !m.ripple.active {
		return nil
	}

	m.ripple.frame++
	if !m.ripple.done() {
		return rippleTick(m.ripple.generation, m.rippleDuration)
	}

	m.ripple.stop()

	return m.changeBackground()
}

func (m *Model) changeBackground() tea.Cmd {
	return m.refresh(m.manager.ChangeBackgroundColor())
}

// refresh adopts state and repaints the terminal background when it changed.
func (m *Model) refresh(state entity.GameState) tea.Cmd {
	m.state = state

	if state.Board.Count() == 0 && m.ripple.active {
		m.ripple.stop()
	}

	if state.Background == m.appliedBg {
		return nil
	}
	m.appliedBg = state.Background

	return setBackgroundColor(m.palette.terminalColor(state.Background))
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Tic Tac Toe"))
	s.WriteString("\n\n")
	s.WriteString(renderBoard(m.state.Board, m.palette, m.cursor, m.fill))
	s.WriteString("\n\n")
	s.WriteString(m.renderInfo())

	return s.String()
}

func (m Model) fill(cell coordinate) entity.Color {
	if m.ripple.covers(cell) {
		return m.ripple.color
	}

	return m.state.Background
}

func (m Model) renderInfo() string {
	var lines []string

	if banner := resultBanner(m.state.Result); banner != "" {
		lines = append(lines, bannerStyle.
			BorderForeground(lipgloss.Color(m.palette.Text)).
			Render(banner))
	} else {
		lines = append(lines, m.palette.textStyle().Render(fmt.Sprintf("%s to move", m.state.Turn.Mark())))
	}

	lines = append(lines, "", m.palette.textStyle().Underline(true).Render(m.link.Label))

	if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}

	lines = append(lines, "", helpStyle.Render(helpLine(m.KeyMap)))

	return indent(lipgloss.JoinVertical(lipgloss.Left, lines...), boardLeft)
}

func resultBanner(result entity.Result) string {
	if winner, ok := result.Winner(); ok {
		return winner.Mark() + " Wins"
	}

	if result == entity.ResultTie {
		return "Tie"
	}

	return ""
}

func helpLine(keys KeyMap) string {
	bindings := keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}

	return strings.Join(parts, " • ")
}
