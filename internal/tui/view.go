package tui

import (
	"fmt"
	"strings"

	"go-gin-cinema-booking/internal/display"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/session"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	var body string
	switch m.step {
	case stepLoading:
		body = fmt.Sprintf("%s Loading showing...", m.spinner.View())
	case stepSeats:
		body = m.seatsView()
	case stepCombos:
		body = m.combosView()
	case stepCheckout:
		body = m.checkoutView()
	case stepSubmitting:
		body = fmt.Sprintf("%s Submitting booking...", m.spinner.View())
	case stepDone:
		body = m.doneView()
	}

	out := m.headerView() + "\n\n" + body
	if t, ok := m.toasts.Last(); ok {
		out += "\n\n" + toastStyles[t.Level].Render(t.Msg)
	}
	return out + "\n"
}

func (m appModel) headerView() string {
	sh := m.session.Showing()
	title := titleStyle.Render(sh.MovieName)
	sub := []string{sh.CinemaName}
	if sh.RoomName != "" {
		sub = append(sub, "Room "+sh.RoomName)
	}
	if !sh.StartsAt.IsZero() {
		sub = append(sub, sh.DisplayTime())
	}
	return title + "\n" + faintStyle.Render(strings.Join(sub, " | "))
}

func (m appModel) seatsView() string {
	if m.session.State(session.SectionSeats) == session.FetchError {
		return "Seat map unavailable.\n\n" + hint("r retry | q quit")
	}
	cells := m.session.SeatCells()
	if len(cells) == 0 || len(cells[0]) == 0 {
		return "No seat map data.\n\n" + hint("r retry | q quit")
	}

	var b strings.Builder
	width := 4 + len(cells[0])*3
	b.WriteString(screenStyle.Width(width).Align(lipgloss.Center).Render("SCREEN"))
	b.WriteString("\n    ")
	for c := range cells[0] {
		fmt.Fprintf(&b, "%-3d", c+1)
	}
	b.WriteString("\n")

	for r, row := range cells {
		label := ""
		if len(row) > 0 {
			label = row[0].Row
		}
		fmt.Fprintf(&b, "%-4s", label)
		for c, cell := range row {
			style := seatStyle(cell)
			if r == m.row && c == m.col {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(seatGlyph(cell)) + " ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(seatTypeStyles[model.SeatTypeNormal].Render("[]") + " normal  ")
	b.WriteString(seatTypeStyles[model.SeatTypeSweetBox].Render("<>") + " sweet box  ")
	b.WriteString(selectedStyle.Render("[]") + " selected  ")
	b.WriteString(takenStyle.Render("xx") + " taken\n\n")

	if label := m.session.SeatLabel(); label != "" {
		fmt.Fprintf(&b, "Seats: %s  %s\n", label, display.FormatCurrency(m.session.Pricing().SeatSubtotal))
	}
	b.WriteString(hint("arrows move | space select | n continue | r refresh | q quit"))
	return b.String()
}

func (m appModel) combosView() string {
	items := m.session.Combos()
	quantities := make(map[int]int)
	for _, l := range m.session.ComboLines() {
		quantities[l.Combo.ComboID] = l.Quantity
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Combos") + "\n")
	if len(items) == 0 {
		b.WriteString(faintStyle.Render("No combos available.") + "\n")
	}
	for i, item := range items {
		line := fmt.Sprintf("%-24s %14s  x%d", item.Name, display.FormatCurrency(item.Price), quantities[item.ComboID])
		if i == m.comboCursor {
			b.WriteString(cursorStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}

	fmt.Fprintf(&b, "\nCombos: %s\n", display.FormatCurrency(m.session.Pricing().ComboSubtotal))
	b.WriteString(hint("up/down move | +/- quantity | n checkout | b back"))
	return b.String()
}

func (m appModel) checkoutView() string {
	snap := m.session.Pricing()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Checkout") + "\n")
	fmt.Fprintf(&b, "Seats:   %s\n", m.session.SeatLabel())
	for _, l := range m.session.ComboLines() {
		fmt.Fprintf(&b, "Combo:   %s x%d\n", l.Combo.Name, l.Quantity)
	}

	coupon := "none"
	if c := m.session.Coupon(); c != nil {
		coupon = fmt.Sprintf("%s (%s)", c.Code, display.FormatDiscount(c.DiscountAmount))
	}
	fmt.Fprintf(&b, "Coupon:  %s\n", coupon)

	if rank := m.session.Rank(); rank.Name != "" {
		fmt.Fprintf(&b, "Rank:    %s (%d%%)\n", rank.Name, rank.DiscountPercent)
	}
	fmt.Fprintf(&b, "Points:  %s %s\n\n", m.points.View(),
		faintStyle.Render("max "+fmt.Sprint(m.session.MaxRedeemablePoints())))

	fmt.Fprintf(&b, "%-16s %14s\n", "Subtotal", display.FormatCurrency(snap.SubTotal))
	for _, d := range snap.Discounts() {
		fmt.Fprintf(&b, "%-16s %14s\n", d.Label, d.Text)
	}
	b.WriteString(totalStyle.Render(fmt.Sprintf("%-16s %14s", "Total", display.FormatCurrency(snap.FinalTotal))) + "\n\n")
	b.WriteString(hint("tab coupon | digits points | enter book | esc back"))
	return b.String()
}

func (m appModel) doneView() string {
	return titleStyle.Render("Booking confirmed") + "\n" +
		"Ticket: " + m.session.TicketID() + "\n\n" +
		hint("enter to finish")
}
