package entity

// Player identifies whose move is next. Its numeric value matches the cell it marks.
type Player int8

const (
	PlayerB Player = -1
	PlayerA Player = 1
)

// StartingPlayer moves first after every reset.
const StartingPlayer = PlayerA

const (
	MarkPlayerA = "O"
	MarkPlayerB = "X"
)

// Next returns the opponent.
func (that Player) Next() Player {
	if that == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// Cell returns the value the player writes on the board.
func (that Player) Cell() Cell {
	return Cell(that)
}

func (that Player) Mark() string {
	switch that {
	case PlayerA:
		return MarkPlayerA
	case PlayerB:
		return MarkPlayerB
	default:
		return ""
	}
}

func (that Player) String() string {
	return that.Mark()
}
