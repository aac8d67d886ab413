package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

// The board is drawn at a fixed offset so mouse coordinates map back to cells.
const (
	cellWidth  = 7
	cellHeight = 3
	boardLeft  = 2
	boardTop   = 2

	boardWidth  = entity.Size*cellWidth + entity.Size - 1
	boardHeight = entity.Size*cellHeight + entity.Size - 1
)

type coordinate struct {
	row, col int
}

// cellAt returns the cell under the screen point (x, y). Grid lines belong to no cell.
func cellAt(x, y int) (coordinate, bool) {
	dx, dy := x-boardLeft, y-boardTop
	if dx < 0 || dy < 0 || dx >= boardWidth || dy >= boardHeight {
		return coordinate{}, false
	}

	if dx%(cellWidth+1) == cellWidth || dy%(cellHeight+1) == cellHeight {
		return coordinate{}, false
	}

	return coordinate{row: dy / (cellHeight + 1), col: dx / (cellWidth + 1)}, true
}

func cellCenter(cell coordinate) entity.Position {
	return entity.Position{
		X: boardLeft + cell.col*(cellWidth+1) + cellWidth/2,
		Y: boardTop + cell.row*(cellHeight+1) + cellHeight/2,
	}
}

// cellForDigit maps '1'..'9' to cells row by row.
func cellForDigit(digit string) (coordinate, bool) {
	if len(digit) != 1 || digit[0] < '1' || digit[0] > '9' {
		return coordinate{}, false
	}

	i := int(digit[0] - '1')

	return coordinate{row: i / entity.Size, col: i % entity.Size}, true
}

func renderBoard(board entity.Board, palette Palette, cursor coordinate, fill func(coordinate) entity.Color) string {
	vertical := strings.TrimSuffix(strings.Repeat("│\n", cellHeight), "\n")
	horizontal := strings.Repeat("─", cellWidth)
	crossing := strings.Join([]string{horizontal, horizontal, horizontal}, "┼")

	rows := make([]string, 0, 2*entity.Size-1)
	for r := 0; r < entity.Size; r++ {
		cells := make([]string, 0, 2*entity.Size-1)
		for c := 0; c < entity.Size; c++ {
			if c > 0 {
				cells = append(cells, vertical)
			}

			at := coordinate{row: r, col: c}
			mark := entity.Player(board.At(r, c)).Mark()
			cells = append(cells, palette.cellStyle(fill(at), at == cursor).Render(mark))
		}

		if r > 0 {
			rows = append(rows, crossing)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return indent(lipgloss.JoinVertical(lipgloss.Left, rows...), boardLeft)
}

func indent(block string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}

	return strings.Join(lines, "\n")
}
