package tui

import (
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/seatmap"
	"go-gin-cinema-booking/internal/session"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	totalStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	screenStyle   = lipgloss.NewStyle().Faint(true).Border(lipgloss.NormalBorder(), false, false, true, false)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	takenStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	seatTypeStyles = map[model.SeatTypeName]lipgloss.Style{
		model.SeatTypeNormal:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		model.SeatTypeVIP:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		model.SeatTypeSweetBox:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		model.SeatTypeGoldClass: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}

	toastStyles = map[session.Level]lipgloss.Style{
		session.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		session.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		session.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// seatGlyph 每格兩個字元寬
func seatGlyph(c seatmap.Cell) string {
	switch {
	case !c.Exists():
		return "  "
	case c.Status == model.SeatStatusTaken:
		return "xx"
	case c.SeatType.IsSweetBox():
		return "<>"
	default:
		return "[]"
	}
}

func seatStyle(c seatmap.Cell) lipgloss.Style {
	switch c.Status {
	case model.SeatStatusSelected:
		return selectedStyle
	case model.SeatStatusTaken:
		return takenStyle
	}
	if c.SeatType != nil {
		if st, ok := seatTypeStyles[c.SeatType.Name]; ok {
			return st
		}
	}
	return lipgloss.NewStyle()
}

func hint(text string) string {
	return faintStyle.Render(text)
}
