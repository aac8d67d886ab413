package tui

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository"
	"github.com/rocketscienceinc/tictactoe-core/internal/service"
	"github.com/rocketscienceinc/tictactoe-core/internal/usecase"
)

var testPalette = Palette{PlayerA: "#4169E1", PlayerB: "#FF6347", Text: "#FFFAFA"}

func newTestModel(t *testing.T, opts Options) (Model, *usecase.GameManager) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager := usecase.NewGameManager(
		logger,
		repository.NewStateSlot(entity.NewGameState()),
		service.NewResetTimer(logger, 0),
	)
	t.Cleanup(manager.Close)

	opts.Palette = testPalette
	opts.Output = termenv.NewOutput(io.Discard)
	if opts.OpenLink == nil {
		opts.OpenLink = func(string) error { return nil }
	}

	return NewModel(logger, manager, opts), manager
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)

	return model, cmd
}

func leftClick(pos entity.Position) tea.MouseMsg {
	return tea.MouseMsg{X: pos.X, Y: pos.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestModel_Keyboard(t *testing.T) {
	t.Run("Digit plays the matching cell", func(t *testing.T) {
		// Given: a fresh game
		m, manager := newTestModel(t, Options{RippleDuration: 200 * time.Millisecond})

		// When: "5" is pressed
		m, cmd := update(t, m, runes("5"))

		// Then: PlayerA owns the center and a ripple starts from it
		assert.Equal(t, entity.CellPlayerA, manager.State().Board.At(1, 1))
		assert.Equal(t, manager.State(), m.state)
		assert.Equal(t, cellCenter(coordinate{1, 1}), m.state.Position)
		assert.True(t, m.ripple.active)
		assert.NotNil(t, cmd)
	})

	t.Run("Cursor wraps and enter plays under it", func(t *testing.T) {
		m, manager := newTestModel(t, Options{})

		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
		m, _ = update(t, m, runes("l"))
		m, _ = update(t, m, runes("l"))
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, coordinate{row: 2, col: 0}, m.cursor)
		assert.Equal(t, entity.CellPlayerA, manager.State().Board.At(2, 0))
	})

	t.Run("Reset clears the board", func(t *testing.T) {
		m, manager := newTestModel(t, Options{})
		m, _ = update(t, m, runes("1"))
		m, _ = update(t, m, runes("2"))

		m, _ = update(t, m, runes("r"))

		assert.Equal(t, entity.NewGameState(), manager.State())
		assert.Equal(t, entity.NewGameState(), m.state)
	})

	t.Run("Quit restores the terminal", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})

		_, cmd := update(t, m, runes("q"))

		assert.NotNil(t, cmd)
	})
}

func TestModel_Mouse(t *testing.T) {
	t.Run("Left click plays the cell and keeps the click position", func(t *testing.T) {
		// Given: a fresh game
		m, manager := newTestModel(t, Options{RippleDuration: 200 * time.Millisecond})
		click := entity.Position{X: boardLeft + 1, Y: boardTop + 1}

		// When: the top-left cell is clicked off-center
		m, _ = update(t, m, leftClick(click))

		// Then: the move is played with the click position
		assert.Equal(t, entity.CellPlayerA, manager.State().Board.At(0, 0))
		assert.Equal(t, click, m.state.Position)
		assert.Equal(t, click, m.ripple.origin)
	})

	t.Run("Clicks on grid lines are ignored", func(t *testing.T) {
		m, manager := newTestModel(t, Options{})

		m, cmd := update(t, m, leftClick(entity.Position{X: boardLeft + cellWidth, Y: boardTop}))

		assert.Nil(t, cmd)
		assert.Equal(t, entity.NewGameState(), manager.State())
		assert.Equal(t, entity.NewGameState(), m.state)
	})

	t.Run("Other buttons are ignored", func(t *testing.T) {
		m, manager := newTestModel(t, Options{})
		center := cellCenter(coordinate{1, 1})

		update(t, m, tea.MouseMsg{X: center.X, Y: center.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})

		assert.Equal(t, entity.NewGameState(), manager.State())
	})
}

func TestModel_Ripple(t *testing.T) {
	t.Run("Background changes when the ripple ends", func(t *testing.T) {
		// Given: a ripple running after PlayerA's move
		m, manager := newTestModel(t, Options{RippleDuration: 200 * time.Millisecond})
		m, _ = update(t, m, runes("1"))
		require.Equal(t, entity.ColorPlayerB, m.ripple.color)

		// When: every frame has ticked
		var cmd tea.Cmd
		for i := 0; i < rippleFrames; i++ {
			require.Equal(t, entity.ColorPlayerA, manager.State().Background)
			m, cmd = update(t, m, rippleTickMsg{generation: m.ripple.generation})
		}

		// Then: the background follows PlayerB and the terminal is repainted
		assert.False(t, m.ripple.active)
		assert.Equal(t, entity.ColorPlayerB, manager.State().Background)
		require.NotNil(t, cmd)
		assert.Equal(t, setBackgroundColorMsg{color: termenv.RGBColor("#FF6347")}, cmd())
	})

	t.Run("Stale ticks are ignored", func(t *testing.T) {
		m, _ := newTestModel(t, Options{RippleDuration: 200 * time.Millisecond})
		m, _ = update(t, m, runes("1"))
		stale := m.ripple.generation
		m, _ = update(t, m, runes("2"))

		m, cmd := update(t, m, rippleTickMsg{generation: stale})

		assert.Nil(t, cmd)
		assert.Equal(t, 0, m.ripple.frame)
	})

	t.Run("Reset stops the ripple", func(t *testing.T) {
		m, manager := newTestModel(t, Options{RippleDuration: 200 * time.Millisecond})
		m, _ = update(t, m, runes("1"))

		m, _ = update(t, m, runes("r"))

		assert.False(t, m.ripple.active)
		assert.Equal(t, entity.ColorPlayerA, manager.State().Background)
	})

	t.Run("Zero duration recolors at once", func(t *testing.T) {
		m, manager := newTestModel(t, Options{})

		m, _ = update(t, m, runes("1"))

		assert.False(t, m.ripple.active)
		assert.Equal(t, entity.ColorPlayerB, manager.State().Background)
		assert.Equal(t, entity.ColorPlayerB, m.state.Background)
	})
}

func TestModel_View(t *testing.T) {
	t.Run("Winner banner", func(t *testing.T) {
		// Given: PlayerA completes the top row
		m, _ := newTestModel(t, Options{})
		for _, digit := range []string{"1", "5", "2", "4", "3"} {
			m, _ = update(t, m, runes(digit))
		}

		// Then: the banner names the winner's mark
		assert.Equal(t, entity.ResultWinPlayerA, m.state.Result)
		assert.Contains(t, m.View(), "O Wins")
	})

	t.Run("Tie banner", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		for _, digit := range []string{"1", "2", "3", "5", "4", "6", "8", "7", "9"} {
			m, _ = update(t, m, runes(digit))
		}

		assert.Equal(t, entity.ResultTie, m.state.Result)
		assert.Contains(t, m.View(), "Tie")
	})

	t.Run("Link label and marks are drawn", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Link: Link{URL: "https://github.com/ish-u", Label: "github : ish-u"}})
		m, _ = update(t, m, runes("1"))
		m, _ = update(t, m, runes("9"))

		view := m.View()

		assert.Contains(t, view, "github : ish-u")
		assert.Contains(t, view, entity.MarkPlayerA)
		assert.Contains(t, view, entity.MarkPlayerB)
	})
}

func TestModel_Link(t *testing.T) {
	t.Run("Opens the configured URL", func(t *testing.T) {
		var opened string
		m, _ := newTestModel(t, Options{
			Link:     Link{URL: "https://github.com/ish-u"},
			OpenLink: func(rawURL string) error {
				opened = rawURL

				return nil
			},
		})

		m, cmd := update(t, m, runes("o"))
		require.NotNil(t, cmd)
		m, _ = update(t, m, cmd())

		assert.Equal(t, "https://github.com/ish-u", opened)
		assert.Empty(t, m.status)
	})

	t.Run("Failure is shown as a status line", func(t *testing.T) {
		m, _ := newTestModel(t, Options{
			Link:     Link{URL: "mailto:someone@example.com"},
			OpenLink: OpenInBrowser,
		})

		m, cmd := update(t, m, runes("o"))
		require.NotNil(t, cmd)
		m, _ = update(t, m, cmd())

		assert.Contains(t, m.status, apperror.ErrLinkUnsupported.Error())
	})
}

func TestCheckLink(t *testing.T) {
	require.NoError(t, checkLink("https://github.com/ish-u"))
	require.NoError(t, checkLink("http://example.com"))

	for _, raw := range []string{"mailto:a@b.c", "file:///etc/passwd", "github.com/ish-u", "://broken"} {
		err := checkLink(raw)
		assert.True(t, errors.Is(err, apperror.ErrLinkUnsupported), raw)
	}
}

func TestModel_StateChanged(t *testing.T) {
	// Given: the game changes behind the model's back
	m, manager := newTestModel(t, Options{})
	m, _ = update(t, m, runes("1"))
	manager.ResetBoard()

	// When: the change is announced
	m, _ = update(t, m, StateChangedMsg{})

	// Then: the model shows the manager's state
	assert.Equal(t, manager.State(), m.state)
}

func TestModel_RestoreBackground(t *testing.T) {
	t.Run("Writes the background the terminal started with", func(t *testing.T) {
		// Given: a model that remembers the terminal's own background
		m, _ := newTestModel(t, Options{})
		var out bytes.Buffer
		m.output = termenv.NewOutput(&out)
		m.originalBgColor = termenv.RGBColor("#123456")

		// When: the program ends without the quit key
		m.RestoreBackground()

		// Then: the original color is sent to the terminal
		assert.Contains(t, out.String(), "#123456")
	})

	t.Run("Unknown original background writes nothing", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		var out bytes.Buffer
		m.output = termenv.NewOutput(&out)
		m.originalBgColor = nil

		m.RestoreBackground()

		assert.Empty(t, out.String())
	})
}
