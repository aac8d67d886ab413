package tictactoe

import "github.com/rocketscienceinc/tictactoe-core/internal/entity"

// Action is an intent dispatched by the presentation layer. The set is closed:
// PlayMove, ResetBoard and ChangeBackgroundColor.
type Action interface {
	actionName() string
}

// PlayMove asks to mark (Row, Col) for the player to move. Position is where the
// screen was touched and only feeds the ripple animation.
type PlayMove struct {
	Row      int
	Col      int
	Position entity.Position
}

type ResetBoard struct{}

// ChangeBackgroundColorAction is dispatched once the ripple animation has finished.
type ChangeBackgroundColorAction struct{}

func (PlayMove) actionName() string                    { return "play_move" }
func (ResetBoard) actionName() string                  { return "reset_board" }
func (ChangeBackgroundColorAction) actionName() string { return "change_background_color" }

// Name returns a stable identifier of the action, used in logs.
func Name(action Action) string {
	return action.actionName()
}

// Reduce maps (state, action) to the next state. It never mutates its input.
func Reduce(state entity.GameState, action Action) entity.GameState {
	switch act := action.(type) {
	case PlayMove:
		return playMove(state, act)
	case ResetBoard:
		return ResetGame()
	case ChangeBackgroundColorAction:
		return ChangeBackgroundColor(state)
	default:
		return state
	}
}

func playMove(state entity.GameState, act PlayMove) entity.GameState {
	next := ApplyMove(state, act.Row, act.Col)
	if next == state {
		return state
	}

	// the ripple only follows moves that keep the game going
	if next.Result == entity.ResultInProgress {
		next.Position = act.Position
	}

	return next
}
