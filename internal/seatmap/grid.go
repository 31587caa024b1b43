// Package seatmap models a theater room as a dense grid of seat cells and
// implements seat toggling, including the Sweet Box pairing rule.
package seatmap

import (
	"strconv"
	"strings"

	"go-gin-cinema-booking/internal/model"
)

// DefaultRowLabels 預設廳別排數 A~J
var DefaultRowLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

// DefaultColumnsPerRow 預設每排座位數
const DefaultColumnsPerRow = 14

// Cell is one position of the room. A cell whose SeatType is nil has no
// physical seat and is always empty.
type Cell struct {
	Row      string
	Column   int
	SeatID   int
	SeatType *model.SeatType
	Status   model.SeatStatus
}

// Label 顯示用座位名稱，例如 "A7"
func (c Cell) Label() string {
	return c.Row + strconv.Itoa(c.Column)
}

// Exists 該位置是否有實體座位
func (c Cell) Exists() bool {
	return c.SeatType != nil
}

func (c Cell) Price() int64 {
	if c.SeatType == nil {
		return 0
	}
	return c.SeatType.Price
}

func (c Cell) selectable() bool {
	return c.SeatType != nil && (c.Status == model.SeatStatusAvailable || c.Status == model.SeatStatusSelected)
}

func (c Cell) clone() Cell {
	if c.SeatType != nil {
		st := *c.SeatType
		c.SeatType = &st
	}
	return c
}

type Option func(*Grid)

// WithStrictPairs 情侶座的另一半已售出或不存在時，不允許單獨選取
func WithStrictPairs() Option {
	return func(g *Grid) {
		g.strictPairs = true
	}
}

type position struct {
	row, col int
}

// Grid owns the cell statuses and the ordered set of selected seats. It is not
// safe for concurrent use; a single screen owns it.
type Grid struct {
	rowLabels   []string
	columns     int
	cells       [][]Cell
	rowIndex    map[string]int
	selected    []position
	strictPairs bool
}

// Empty 取得座位圖失敗時使用的空白座位圖
func Empty() *Grid {
	return BuildGrid(nil, nil, 0)
}

// BuildGrid merges sparse server rows into a grid of len(rowLabels) x
// columnsPerRow cells. Row labels are matched case-insensitively and a
// repeated label is dropped, so every row stays addressable. Positions missing
// from the server data become placeholder cells with a negative seat id.
func BuildGrid(serverRows []model.SeatRow, rowLabels []string, columnsPerRow int, opts ...Option) *Grid {
	if columnsPerRow < 0 {
		columnsPerRow = 0
	}

	labels := make([]string, 0, len(rowLabels))
	index := make(map[string]int, len(rowLabels))
	for _, label := range rowLabels {
		key := rowKey(label)
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = len(labels)
		labels = append(labels, label)
	}

	g := &Grid{
		rowLabels: labels,
		columns:   columnsPerRow,
		cells:     make([][]Cell, len(labels)),
		rowIndex:  index,
	}
	for _, opt := range opts {
		opt(g)
	}

	for r, label := range g.rowLabels {
		row := make([]Cell, columnsPerRow)
		for c := range row {
			row[c] = Cell{
				Row:    label,
				Column: c + 1,
				SeatID: placeholderID(r, c, columnsPerRow),
				Status: model.SeatStatusEmpty,
			}
		}
		g.cells[r] = row
	}

	for _, serverRow := range serverRows {
		r, ok := g.rowIndex[rowKey(serverRow.Row)]
		if !ok {
			continue
		}
		for _, sc := range serverRow.SeatColumns {
			if sc.Column < 1 || sc.Column > columnsPerRow {
				continue
			}
			g.cells[r][sc.Column-1] = mergeCell(g.cells[r][sc.Column-1], sc)
		}
	}

	return g
}

// mergeCell 以伺服器資料覆蓋佔位格；selected 只存在於本地，伺服器端一律視為 available
func mergeCell(placeholder Cell, sc model.SeatColumn) Cell {
	if sc.SeatType == nil || sc.SeatID <= 0 {
		return placeholder
	}

	st := *sc.SeatType
	cell := Cell{
		Row:      placeholder.Row,
		Column:   sc.Column,
		SeatID:   sc.SeatID,
		SeatType: &st,
		Status:   model.SeatStatusAvailable,
	}
	if sc.Status == model.SeatStatusTaken {
		cell.Status = model.SeatStatusTaken
	}
	return cell
}

func placeholderID(row, col, columns int) int {
	return -(row*columns + col + 1)
}

func rowKey(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// Toggle flips the seat identified by seatID in the given row between
// available and selected. Invalid toggles (unknown seat, no seat, taken seat)
// are ignored.
func (g *Grid) Toggle(seatID int, row string) {
	r, ok := g.rowIndex[rowKey(row)]
	if !ok {
		return
	}
	for c := range g.cells[r] {
		if g.cells[r][c].SeatID == seatID {
			g.toggle(r, c)
			return
		}
	}
}

// ToggleAt 以排與號定位後切換
func (g *Grid) ToggleAt(row string, column int) {
	r, ok := g.rowIndex[rowKey(row)]
	if !ok || column < 1 || column > g.columns {
		return
	}
	g.toggle(r, column-1)
}

func (g *Grid) toggle(r, c int) {
	cell := g.cells[r][c]
	if !cell.selectable() {
		return
	}

	next := model.SeatStatusSelected
	if cell.Status == model.SeatStatusSelected {
		next = model.SeatStatusAvailable
	}

	partner, hasPartner := g.sweetBoxPartner(r, c)
	movable := hasPartner && g.cells[r][partner].selectable()

	if g.strictPairs && cell.SeatType.IsSweetBox() && next == model.SeatStatusSelected && !movable {
		return
	}

	g.setStatus(r, c, next)
	if movable {
		g.setStatus(r, partner, next)
	}
}

// sweetBoxPartner 情侶座以奇數號 n 與 n+1 成對
func (g *Grid) sweetBoxPartner(r, c int) (int, bool) {
	if !g.cells[r][c].SeatType.IsSweetBox() {
		return 0, false
	}

	partner := c + 1
	if (c+1)%2 == 0 {
		partner = c - 1
	}
	if partner < 0 || partner >= g.columns {
		return 0, false
	}
	if !g.cells[r][partner].SeatType.IsSweetBox() {
		return 0, false
	}
	return partner, true
}

func (g *Grid) setStatus(r, c int, status model.SeatStatus) {
	if g.cells[r][c].Status == status {
		return
	}
	g.cells[r][c].Status = status

	switch status {
	case model.SeatStatusSelected:
		g.selected = append(g.selected, position{row: r, col: c})
	case model.SeatStatusAvailable:
		for i, p := range g.selected {
			if p.row == r && p.col == c {
				g.selected = append(g.selected[:i], g.selected[i+1:]...)
				break
			}
		}
	}
}

// Rows 排名稱（依顯示順序）
func (g *Grid) Rows() []string {
	return append([]string(nil), g.rowLabels...)
}

func (g *Grid) Columns() int {
	return g.columns
}

// Len 座位圖格數（含佔位格）
func (g *Grid) Len() int {
	n := 0
	for _, row := range g.cells {
		n += len(row)
	}
	return n
}

func (g *Grid) Cell(row string, column int) (Cell, bool) {
	r, ok := g.rowIndex[rowKey(row)]
	if !ok || column < 1 || column > g.columns {
		return Cell{}, false
	}
	return g.cells[r][column-1].clone(), true
}

// CellByID 依伺服器座位 ID 查詢，佔位格不會被找到
func (g *Grid) CellByID(seatID int) (Cell, bool) {
	if seatID <= 0 {
		return Cell{}, false
	}
	for _, row := range g.cells {
		for _, cell := range row {
			if cell.SeatID == seatID {
				return cell.clone(), true
			}
		}
	}
	return Cell{}, false
}

// Cells 依列優先順序回傳所有格子的副本
func (g *Grid) Cells() [][]Cell {
	out := make([][]Cell, len(g.cells))
	for r, row := range g.cells {
		out[r] = make([]Cell, len(row))
		for c, cell := range row {
			out[r][c] = cell.clone()
		}
	}
	return out
}

// Selected 已選座位，依選取順序
func (g *Grid) Selected() []Cell {
	out := make([]Cell, 0, len(g.selected))
	for _, p := range g.selected {
		out = append(out, g.cells[p.row][p.col].clone())
	}
	return out
}
