package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

// Palette maps the game colors to the hex values the terminal draws.
type Palette struct {
	PlayerA string
	PlayerB string
	Text    string
}

func (p Palette) Hex(color entity.Color) string {
	switch color {
	case entity.ColorPlayerA:
		return p.PlayerA
	case entity.ColorPlayerB:
		return p.PlayerB
	default:
		return ""
	}
}

func (p Palette) terminalColor(color entity.Color) termenv.Color {
	hex := p.Hex(color)
	if hex == "" {
		return nil
	}

	return termenv.RGBColor(hex)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder())

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

func (p Palette) textStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text))
}

func (p Palette) cellStyle(background entity.Color, cursor bool) lipgloss.Style {
	style := p.textStyle().
		Width(cellWidth).
		Height(cellHeight).
		AlignHorizontal(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Bold(true)

	if hex := p.Hex(background); hex != "" {
		style = style.Background(lipgloss.Color(hex))
	}

	if cursor {
		style = style.Reverse(true)
	}

	return style
}
