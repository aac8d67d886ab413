package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

type cellIndex struct {
	row, col int
}

// WinLines lists every line of three in scan order: rows, columns, main diagonal, anti-diagonal.
var WinLines = [8][3]cellIndex{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// ResetGame returns a fresh game: empty board, the starting player to move.
func ResetGame() entity.GameState {
	return entity.NewGameState()
}

// ApplyMove places the current player's mark at (row, col). The move is accepted only
// when the cell is empty and the game is in progress; otherwise state is returned as is.
// Coordinates outside the board are a programming error and panic.
func ApplyMove(state entity.GameState, row, col int) entity.GameState {
	mustBeInBounds(row, col)

	if !canPlay(state, row, col) {
		return state
	}

	next := state
	next.Board[row][col] = state.Turn.Cell()
	next.Turn = state.Turn.Next()
	next.Result = DetectResult(next.Board)

	return next
}

// DetectResult classifies a board. The first complete line in WinLines order decides
// the winner; otherwise the game is in progress while a cell is empty, and a tie when full.
func DetectResult(board entity.Board) entity.Result {
	for _, line := range WinLines {
		for _, player := range [2]entity.Player{entity.PlayerA, entity.PlayerB} {
			if lineOwnedBy(board, line, player) {
				return entity.WinFor(player)
			}
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return entity.ResultInProgress
	}

	return entity.ResultTie
}

// ChangeBackgroundColor paints the background in the color of the player to move.
// Terminal states keep their color.
func ChangeBackgroundColor(state entity.GameState) entity.GameState {
	if state.Result.IsTerminal() {
		return state
	}

	next := state
	next.Background = entity.ColorOf(state.Turn)

	return next
}

func canPlay(state entity.GameState, row, col int) bool {
	return state.Result == entity.ResultInProgress && state.Board.At(row, col).IsEmpty()
}

func lineOwnedBy(board entity.Board, line [3]cellIndex, player entity.Player) bool {
	for _, idx := range line {
		if board[idx.row][idx.col] != player.Cell() {
			return false
		}
	}
	return true
}

func mustBeInBounds(row, col int) {
	if !entity.InBounds(row, col) {
		panic(fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCell, row, col))
	}
}
