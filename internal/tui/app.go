// Package tui is the terminal kiosk screen: seat map, combos, checkout and
// submission, all driven through one session.Session.
package tui

import (
	"context"
	"errors"
	"strconv"

	"go-gin-cinema-booking/internal/booking"
	"go-gin-cinema-booking/internal/session"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type step int

const (
	stepLoading step = iota
	stepSeats
	stepCombos
	stepCheckout
	stepSubmitting
	stepDone
)

type loadedMsg struct{}

type submittedMsg struct {
	result booking.Result
	err    error
}

type appModel struct {
	ctx     context.Context
	session *session.Session
	toasts  *Toasts

	step step
	row  int
	col  int

	comboCursor  int
	couponCursor int // -1 不使用優惠券

	points  textinput.Model
	spinner spinner.Model

	result booking.Result
	width  int
}

// New builds the kiosk model. toasts must be the notifier the session was
// created with so its messages show up on screen.
func New(ctx context.Context, s *session.Session, toasts *Toasts) tea.Model {
	points := textinput.New()
	points.Prompt = ""
	points.Placeholder = "0"
	points.CharLimit = 12
	points.Width = 12

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))

	return appModel{
		ctx:          ctx,
		session:      s,
		toasts:       toasts,
		step:         stepLoading,
		couponCursor: -1,
		points:       points,
		spinner:      sp,
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.step != stepLoading && m.step != stepSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.step = stepSeats
		m.row, m.col = 0, 0
		return m, nil

	case submittedMsg:
		return m.handleSubmitted(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.step {
		case stepSeats:
			return m.updateSeats(msg)
		case stepCombos:
			return m.updateCombos(msg)
		case stepCheckout:
			return m.updateCheckout(msg)
		case stepDone:
			switch msg.String() {
			case "enter", "q", "esc":
				return m.quit()
			}
		}
	}
	return m, nil
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.session.Close()
	return m, tea.Quit
}

func (m appModel) updateSeats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cells := m.session.SeatCells()
	switch msg.String() {
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < len(cells)-1 {
			m.row++
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if len(cells) > 0 && m.col < len(cells[0])-1 {
			m.col++
		}
	case " ", "enter":
		if m.row < len(cells) && m.col < len(cells[m.row]) {
			cell := cells[m.row][m.col]
			m.session.ToggleSeatAt(cell.Row, cell.Column)
		}
	case "n", "tab":
		if _, err := m.session.ProceedToCombos(); err != nil {
			if errors.Is(err, apperrors.ErrNoSeatsSelected) {
				m.toasts.Notify(session.LevelWarning, "Please select at least one seat.")
			} else {
				m.toasts.Notify(session.LevelError, err.Error())
			}
			return m, nil
		}
		m.toasts.Dismiss()
		m.step = stepCombos
		m.comboCursor = 0
	case "r":
		m.step = stepLoading
		return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
	case "q", "esc":
		return m.quit()
	}
	return m, nil
}

func (m appModel) updateCombos(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.session.Combos()
	switch msg.String() {
	case "up", "k":
		if m.comboCursor > 0 {
			m.comboCursor--
		}
	case "down", "j":
		if m.comboCursor < len(items)-1 {
			m.comboCursor++
		}
	case "+", "right", "l":
		if m.comboCursor < len(items) {
			m.session.ChangeComboQuantity(items[m.comboCursor].ComboID, 1)
		}
	case "-", "left", "h":
		if m.comboCursor < len(items) {
			m.session.ChangeComboQuantity(items[m.comboCursor].ComboID, -1)
		}
	case "n", "tab", "enter":
		m.toasts.Dismiss()
		m.step = stepCheckout
		m.syncPoints()
		return m, m.points.Focus()
	case "b", "esc":
		m.session.BackToSeats()
		m.step = stepSeats
	}
	return m, nil
}

func (m appModel) updateCheckout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.points.Blur()
		m.step = stepCombos
		return m, nil
	case "tab":
		m.cycleCoupon()
		return m, nil
	case "enter":
		m.redeem()
		m.points.Blur()
		m.step = stepSubmitting
		return m, tea.Batch(m.submitCmd(), m.spinner.Tick)
	}

	// 點數欄只接受數字
	if msg.Type == tea.KeyRunes && !isDigits(msg.Runes) {
		return m, nil
	}
	var cmd tea.Cmd
	m.points, cmd = m.points.Update(msg)
	m.redeem()
	return m, cmd
}

// cycleCoupon 依序切換已載入的優惠券，最後回到不使用
func (m *appModel) cycleCoupon() {
	coupons := m.session.Coupons()
	m.couponCursor++
	if m.couponCursor >= len(coupons) {
		m.couponCursor = -1
	}

	var err error
	if m.couponCursor < 0 {
		err = m.session.ApplyCoupon(nil)
	} else {
		id := coupons[m.couponCursor].CouponID
		err = m.session.ApplyCoupon(&id)
	}
	if err != nil {
		m.toasts.Notify(session.LevelError, err.Error())
	}
	m.syncPoints()
}

func (m *appModel) redeem() {
	requested, err := strconv.ParseInt(m.points.Value(), 10, 64)
	if err != nil {
		requested = 0
	}
	m.session.RedeemPoints(requested)
	m.syncPoints()
}

// syncPoints 輸入值超過上限時改為實際折抵的點數
func (m *appModel) syncPoints() {
	used := m.session.Pricing().LoyaltyPointsUsed
	if m.points.Value() == "" && used == 0 {
		return
	}
	if current, err := strconv.ParseInt(m.points.Value(), 10, 64); err != nil || current != used {
		m.points.SetValue(strconv.FormatInt(used, 10))
	}
}

func (m appModel) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, apperrors.ErrScreenClosed) {
			return m, nil
		}
		m.toasts.Notify(session.LevelError, "Could not submit booking: "+msg.err.Error())
		m.step = stepCheckout
		return m, m.points.Focus()
	}

	m.result = msg.result
	switch msg.result.Kind {
	case booking.KindConfirmed:
		m.step = stepDone
	case booking.KindPartialFailure:
		// 保留原選擇，回到座位圖讓使用者調整
		m.session.BackToSeats()
		m.step = stepSeats
	default:
		m.step = stepCheckout
		return m, m.points.Focus()
	}
	return m, nil
}

func (m appModel) loadCmd() tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		s.Load(ctx)
		return loadedMsg{}
	}
}

func (m appModel) submitCmd() tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		result, err := s.Submit(ctx)
		return submittedMsg{result: result, err: err}
	}
}

func isDigits(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(runes) > 0
}
