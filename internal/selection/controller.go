// Package selection exposes the selected seats of a grid, their subtotal and
// the gate that lets a customer move on to the combo step.
package selection

import (
	"strings"

	"go-gin-cinema-booking/internal/seatmap"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
)

const labelSeparator = ", "

// Selection 進入下一步時交出的已選座位快照
type Selection struct {
	Seats    []seatmap.Cell
	Subtotal int64
	Label    string
}

// SeatIDs 依選取順序
func (s Selection) SeatIDs() []int {
	ids := make([]int, 0, len(s.Seats))
	for _, c := range s.Seats {
		ids = append(ids, c.SeatID)
	}
	return ids
}

func (s Selection) Len() int {
	return len(s.Seats)
}

type Controller struct {
	grid *seatmap.Grid
}

func New(grid *seatmap.Grid) *Controller {
	if grid == nil {
		grid = seatmap.Empty()
	}
	return &Controller{grid: grid}
}

func (c *Controller) Grid() *seatmap.Grid {
	return c.grid
}

// Toggle 轉交給座位圖
func (c *Controller) Toggle(seatID int, row string) {
	c.grid.Toggle(seatID, row)
}

func (c *Controller) ToggleAt(row string, column int) {
	c.grid.ToggleAt(row, column)
}

func (c *Controller) SelectedSeats() []seatmap.Cell {
	return c.grid.Selected()
}

// SeatSubtotal 每次都從座位圖重新計算，不做快取
func (c *Controller) SeatSubtotal() int64 {
	return subtotal(c.grid.Selected())
}

func (c *Controller) Label() string {
	return label(c.grid.Selected())
}

func (c *Controller) CanProceed() bool {
	return len(c.grid.Selected()) > 0
}

// Proceed returns an immutable snapshot of the current selection, or
// ErrNoSeatsSelected when nothing is selected.
func (c *Controller) Proceed() (Selection, error) {
	seats := c.grid.Selected()
	if len(seats) == 0 {
		return Selection{}, apperrors.ErrNoSeatsSelected
	}

	return Selection{
		Seats:    seats,
		Subtotal: subtotal(seats),
		Label:    label(seats),
	}, nil
}

func subtotal(seats []seatmap.Cell) int64 {
	var sum int64
	for _, s := range seats {
		sum += s.Price()
	}
	return sum
}

func label(seats []seatmap.Cell) string {
	labels := make([]string, 0, len(seats))
	for _, s := range seats {
		labels = append(labels, s.Label())
	}
	return strings.Join(labels, labelSeparator)
}
