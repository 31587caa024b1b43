// Package combo keeps the snack and drink lines a customer adds on top of
// their seats.
package combo

import "go-gin-cinema-booking/internal/model"

// Line 已選套餐，Quantity 永遠大於 0
type Line struct {
	Combo    model.ComboItem
	Quantity int
}

func (l Line) Amount() int64 {
	return l.Combo.Price * int64(l.Quantity)
}

// Selector holds combo lines in the order they were first added.
type Selector struct {
	lines []Line
}

func NewSelector() *Selector {
	return &Selector{}
}

// ChangeQuantity applies a +1 or -1 step to the line of item. Other deltas
// are ignored, as is a decrement of an item that has no line.
func (s *Selector) ChangeQuantity(item model.ComboItem, delta int) {
	if delta != 1 && delta != -1 {
		return
	}

	i := s.indexOf(item.ComboID)
	if i < 0 {
		if delta > 0 {
			s.lines = append(s.lines, Line{Combo: item, Quantity: 1})
		}
		return
	}

	s.lines[i].Quantity += delta
	if s.lines[i].Quantity <= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

func (s *Selector) indexOf(comboID int) int {
	for i, l := range s.lines {
		if l.Combo.ComboID == comboID {
			return i
		}
	}
	return -1
}

func (s *Selector) Lines() []Line {
	return append([]Line(nil), s.lines...)
}

func (s *Selector) Quantity(comboID int) int {
	if i := s.indexOf(comboID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

func (s *Selector) Subtotal() int64 {
	var sum int64
	for _, l := range s.lines {
		sum += l.Amount()
	}
	return sum
}

func (s *Selector) TotalQuantity() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Requested 轉成訂位請求的套餐清單
func (s *Selector) Requested() []model.BookingCombo {
	out := make([]model.BookingCombo, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, model.BookingCombo{ComboID: l.Combo.ComboID, Quantity: l.Quantity})
	}
	return out
}

// Name 依 ID 查詢已選套餐名稱
func (s *Selector) Name(comboID int) (string, bool) {
	if i := s.indexOf(comboID); i >= 0 {
		return s.lines[i].Combo.Name, true
	}
	return "", false
}
