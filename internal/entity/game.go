package entity

// Size is the side length of the board.
const Size = 3

type Result string

const (
	ResultInProgress Result = "in_progress"
	ResultWinPlayerA Result = "win_player_a"
	ResultWinPlayerB Result = "win_player_b"
	ResultTie        Result = "tie"
)

// IsTerminal reports whether no further moves are accepted until a reset.
func (that Result) IsTerminal() bool {
	return that != ResultInProgress
}

// Winner returns the winning player and true for a win result.
func (that Result) Winner() (Player, bool) {
	switch that {
	case ResultWinPlayerA:
		return PlayerA, true
	case ResultWinPlayerB:
		return PlayerB, true
	default:
		return 0, false
	}
}

// WinFor returns the win result of the given player.
func WinFor(player Player) Result {
	if player == PlayerA {
		return ResultWinPlayerA
	}
	return ResultWinPlayerB
}

// Cell is the content of one board position.
type Cell int8

const (
	CellPlayerB Cell = -1
	CellEmpty   Cell = 0
	CellPlayerA Cell = 1
)

func (that Cell) IsEmpty() bool {
	return that == CellEmpty
}

// Board is a 3x3 grid stored row-major. It is an array, so assigning it copies it.
type Board [Size][Size]Cell

// InBounds reports whether (row, col) addresses a cell of the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func (that Board) At(row, col int) Cell {
	return that[row][col]
}

// Count returns the number of non-empty cells.
func (that Board) Count() int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if !cell.IsEmpty() {
				count++
			}
		}
	}
	return count
}

func (that Board) IsFull() bool {
	return that.Count() == Size*Size
}

// Position is a screen coordinate of the last accepted tap.
type Position struct {
	X int
	Y int
}

// Color names the theme color painted behind the board.
type Color string

const (
	ColorPlayerA Color = "royalblue"
	ColorPlayerB Color = "tomato"
)

// ColorOf returns the theme color of a player.
func ColorOf(player Player) Color {
	if player == PlayerB {
		return ColorPlayerB
	}
	return ColorPlayerA
}

// GameState is an immutable snapshot of a game. Position and Background are only
// read by the presentation layer.
type GameState struct {
	Board      Board
	Turn       Player
	Result     Result
	Position   Position
	Background Color
}

// NewGameState returns the state a game starts from.
func NewGameState() GameState {
	return GameState{
		Turn:       StartingPlayer,
		Result:     ResultInProgress,
		Background: ColorOf(StartingPlayer),
	}
}
