package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

const rippleFrames = 10

// ripple grows from the last touch until it covers the whole board.
type ripple struct {
	generation int
	active     bool
	frame      int
	origin     entity.Position
	color      entity.Color
}

type rippleTickMsg struct {
	generation int
}

// Terminal cells are about twice as tall as wide.
func screenDistance(a, b entity.Position) float64 {
	return math.Hypot(float64(a.X-b.X), 2*float64(a.Y-b.Y))
}

func (r ripple) radius() float64 {
	full := math.Hypot(boardWidth, 2*boardHeight)

	return full * float64(r.frame) / rippleFrames
}

func (r ripple) covers(cell coordinate) bool {
	return r.active && screenDistance(r.origin, cellCenter(cell)) <= r.radius()
}

func (r ripple) done() bool {
	return r.frame >= rippleFrames
}

func (r *ripple) start(origin entity.Position, color entity.Color) {
	r.generation++
	r.active = true
	r.frame = 0
	r.origin = origin
	r.color = color
}

func (r *ripple) stop() {
	r.generation++
	r.active = false
}

func rippleTick(generation int, duration time.Duration) tea.Cmd {
	return tea.Tick(duration/rippleFrames, func(time.Time) tea.Msg {
		return rippleTickMsg{generation: generation}
	})
}
