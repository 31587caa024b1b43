// Package session drives one booking screen: it loads the showing data,
// owns the seat, combo and pricing state and submits the booking.
package session

import (
	"context"
	"fmt"

	"go-gin-cinema-booking/internal/booking"
	"go-gin-cinema-booking/internal/combo"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/pricing"
	"go-gin-cinema-booking/internal/seatmap"
	"go-gin-cinema-booking/internal/selection"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"go-gin-cinema-booking/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FetchState 各區塊的載入狀態
type FetchState int

const (
	FetchIdle FetchState = iota
	FetchLoading
	FetchReady
	FetchError
)

func (s FetchState) String() string {
	switch s {
	case FetchLoading:
		return "loading"
	case FetchReady:
		return "ready"
	case FetchError:
		return "error"
	default:
		return "idle"
	}
}

type Section int

const (
	SectionSeats Section = iota
	SectionCombos
	SectionRank
	SectionCoupons
)

func (s Section) String() string {
	switch s {
	case SectionSeats:
		return "seats"
	case SectionCombos:
		return "combos"
	case SectionRank:
		return "rank"
	case SectionCoupons:
		return "coupons"
	default:
		return "unknown"
	}
}

type SeatSource interface {
	GetSeats(ctx context.Context, showingTimeID int) ([]model.SeatRow, error)
}

type ComboSource interface {
	ListCombos(ctx context.Context) ([]model.ComboItem, error)
}

type RankSource interface {
	GetRank(ctx context.Context, email string) (model.Rank, error)
}

type CouponSource interface {
	ListCoupons(ctx context.Context, email string) ([]model.Coupon, error)
}

// Backend 售票終端需要的所有遠端服務
type Backend interface {
	SeatSource
	ComboSource
	RankSource
	CouponSource
	booking.Sink
}

type Options struct {
	RowLabels     []string
	ColumnsPerRow int
	StrictPairs   bool
}

func (o Options) gridOptions() []seatmap.Option {
	if o.StrictPairs {
		return []seatmap.Option{seatmap.WithStrictPairs()}
	}
	return nil
}

// Session is scoped to one screen instance and discarded on navigation away.
// All state is guarded by the screen, so completions arriving after Close
// never mutate it.
type Session struct {
	screen    *Screen
	backend   Backend
	notifier  Notifier
	submitter *booking.Submitter
	log       *zap.Logger

	showing model.Showing
	email   string
	opts    Options

	states  map[Section]FetchState
	grid    *seatmap.Grid
	seats   *selection.Controller
	combos  []model.ComboItem
	rank    model.Rank
	coupons []model.Coupon

	chosen   *selection.Selection
	lines    *combo.Selector
	coupon   *model.Coupon
	points   int64
	ticketID string
}

func New(backend Backend, notifier Notifier, showing model.Showing, email string, opts Options) *Session {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if len(opts.RowLabels) == 0 {
		opts.RowLabels = seatmap.DefaultRowLabels
	}
	if opts.ColumnsPerRow <= 0 {
		opts.ColumnsPerRow = seatmap.DefaultColumnsPerRow
	}

	grid := seatmap.Empty()
	return &Session{
		screen:    NewScreen(),
		backend:   backend,
		notifier:  notifier,
		submitter: booking.NewSubmitter(backend),
		log:       logger.WithComponent("session").With(zap.Int("showing_time_id", showing.ShowingTimeID)),
		showing:   showing,
		email:     email,
		opts:      opts,
		states: map[Section]FetchState{
			SectionSeats:   FetchIdle,
			SectionCombos:  FetchIdle,
			SectionRank:    FetchIdle,
			SectionCoupons: FetchIdle,
		},
		grid:  grid,
		seats: selection.New(grid),
		lines: combo.NewSelector(),
	}
}

func (s *Session) Showing() model.Showing {
	return s.showing
}

func (s *Session) Email() string {
	return s.email
}

// Close 畫面離開，之後的非同步結果全部丟棄
func (s *Session) Close() {
	s.screen.Close()
}

func (s *Session) Alive() bool {
	return s.screen.Alive()
}

// Load fetches the seat map, combos, rank and coupons concurrently. Each
// section fails on its own: a failed section stays empty (rank percent 0)
// and a notification is emitted. The returned error is the first section
// failure, after every section has finished.
func (s *Session) Load(ctx context.Context) error {
	s.screen.Do(func() {
		for section := range s.states {
			s.states[section] = FetchLoading
		}
	})

	var g errgroup.Group
	g.Go(func() error {
		rows, err := s.backend.GetSeats(ctx, s.showing.ShowingTimeID)
		return s.complete(SectionSeats, err, "Could not load the seat map.", func() {
			s.grid = seatmap.BuildGrid(rows, s.opts.RowLabels, s.opts.ColumnsPerRow, s.opts.gridOptions()...)
			s.seats = selection.New(s.grid)
			s.chosen = nil
			s.recapPoints()
		})
	})
	g.Go(func() error {
		items, err := s.backend.ListCombos(ctx)
		return s.complete(SectionCombos, err, "Could not load combos.", func() {
			s.combos = items
		})
	})
	g.Go(func() error {
		rank, err := s.backend.GetRank(ctx, s.email)
		return s.complete(SectionRank, err, "Could not load your membership rank.", func() {
			s.rank = rank
			s.recapPoints()
		})
	})
	g.Go(func() error {
		coupons, err := s.backend.ListCoupons(ctx, s.email)
		return s.complete(SectionCoupons, err, "Could not load your coupons.", func() {
			s.coupons = coupons
		})
	})
	return g.Wait()
}

// complete 套用單一區塊的結果；畫面已關閉時丟棄並回傳 nil
func (s *Session) complete(section Section, err error, failure string, apply func()) error {
	applied := s.screen.Do(func() {
		if err != nil {
			s.states[section] = FetchError
			return
		}
		apply()
		s.states[section] = FetchReady
	})
	if !applied {
		s.log.Debug("discard result of closed screen", zap.Stringer("section", section))
		return nil
	}
	if err != nil {
		s.log.Warn("fetch failed", zap.Stringer("section", section), zap.Error(err))
		s.notifier.Notify(LevelError, failure)
		return fmt.Errorf("load %s: %w", section, err)
	}
	return nil
}

func (s *Session) State(section Section) FetchState {
	var st FetchState
	s.screen.View(func() {
		st = s.states[section]
	})
	return st
}

// Grid 目前的座位圖（未載入或失敗時為空白座位圖）
func (s *Session) Grid() *seatmap.Grid {
	var g *seatmap.Grid
	s.screen.View(func() {
		g = s.grid
	})
	return g
}

// SeatCells 座位圖快照，可在其他 goroutine 提交訂位時安全讀取
func (s *Session) SeatCells() [][]seatmap.Cell {
	var cells [][]seatmap.Cell
	s.screen.View(func() {
		cells = s.grid.Cells()
	})
	return cells
}

func (s *Session) Combos() []model.ComboItem {
	var out []model.ComboItem
	s.screen.View(func() {
		out = append(out, s.combos...)
	})
	return out
}

func (s *Session) Rank() model.Rank {
	var r model.Rank
	s.screen.View(func() {
		r = s.rank
	})
	return r
}

func (s *Session) Coupons() []model.Coupon {
	var out []model.Coupon
	s.screen.View(func() {
		out = append(out, s.coupons...)
	})
	return out
}

// ToggleSeat 已交給套餐步驟時不可改座位，需先 BackToSeats
func (s *Session) ToggleSeat(seatID int, row string) {
	s.screen.Do(func() {
		if s.chosen != nil {
			return
		}
		s.seats.Toggle(seatID, row)
		s.recapPoints()
	})
}

func (s *Session) ToggleSeatAt(row string, column int) {
	s.screen.Do(func() {
		if s.chosen != nil {
			return
		}
		s.seats.ToggleAt(row, column)
		s.recapPoints()
	})
}

func (s *Session) SelectedSeats() []seatmap.Cell {
	var out []seatmap.Cell
	s.screen.View(func() {
		out = s.seats.SelectedSeats()
	})
	return out
}

func (s *Session) SeatLabel() string {
	var label string
	s.screen.View(func() {
		label = s.seats.Label()
	})
	return label
}

func (s *Session) CanProceed() bool {
	var ok bool
	s.screen.View(func() {
		ok = s.seats.CanProceed()
	})
	return ok
}

// ProceedToCombos hands the current seat selection to the combo step. It
// fails with ErrNoSeatsSelected when nothing is selected.
func (s *Session) ProceedToCombos() (selection.Selection, error) {
	var (
		sel selection.Selection
		err error
	)
	applied := s.screen.Do(func() {
		sel, err = s.seats.Proceed()
		if err == nil {
			s.chosen = &sel
		}
	})
	if !applied {
		return selection.Selection{}, apperrors.ErrScreenClosed
	}
	return sel, err
}

// BackToSeats 回到選位畫面，已選套餐保留
func (s *Session) BackToSeats() {
	s.screen.Do(func() {
		s.chosen = nil
		s.recapPoints()
	})
}

// ChangeComboQuantity 依 ID 找出已載入的套餐後加減一份，未知 ID 忽略
func (s *Session) ChangeComboQuantity(comboID, delta int) {
	s.screen.Do(func() {
		for _, item := range s.combos {
			if item.ComboID == comboID {
				s.lines.ChangeQuantity(item, delta)
				s.recapPoints()
				return
			}
		}
	})
}

func (s *Session) ComboLines() []combo.Line {
	var out []combo.Line
	s.screen.View(func() {
		out = s.lines.Lines()
	})
	return out
}

// ApplyCoupon selects one of the loaded coupons, or clears the coupon when
// couponID is nil. Loyalty points are re-capped against the new balance.
func (s *Session) ApplyCoupon(couponID *int) error {
	var err error
	applied := s.screen.Do(func() {
		if couponID == nil {
			s.coupon = nil
			s.recapPoints()
			return
		}
		for i := range s.coupons {
			if s.coupons[i].CouponID == *couponID {
				c := s.coupons[i]
				s.coupon = &c
				s.recapPoints()
				return
			}
		}
		err = apperrors.ErrInvalidInput
	})
	if !applied {
		return apperrors.ErrScreenClosed
	}
	return err
}

func (s *Session) Coupon() *model.Coupon {
	var c *model.Coupon
	s.screen.View(func() {
		if s.coupon != nil {
			cp := *s.coupon
			c = &cp
		}
	})
	return c
}

// RedeemPoints caps the requested points at the remaining payable balance and
// returns the amount actually applied.
func (s *Session) RedeemPoints(requested int64) int64 {
	var used int64
	s.screen.Do(func() {
		s.points = pricing.CapPoints(s.pricingInput(), requested)
		used = s.points
	})
	return used
}

func (s *Session) MaxRedeemablePoints() int64 {
	var limit int64
	s.screen.View(func() {
		limit = pricing.MaxRedeemablePoints(s.pricingInput())
	})
	return limit
}

func (s *Session) Pricing() pricing.Snapshot {
	var snap pricing.Snapshot
	s.screen.View(func() {
		in := s.pricingInput()
		in.LoyaltyPointsUsed = s.points
		snap = pricing.Compute(in)
	})
	return snap
}

// recapPoints 小計變動後點數不得超過剩餘應付金額；呼叫端需持有畫面鎖
func (s *Session) recapPoints() {
	s.points = pricing.CapPoints(s.pricingInput(), s.points)
}

// pricingInput 不含點數；呼叫端需持有畫面鎖
func (s *Session) pricingInput() pricing.Input {
	in := pricing.Input{
		ComboSubtotal:       s.lines.Subtotal(),
		RankDiscountPercent: s.rank.DiscountPercent,
	}
	if s.chosen != nil {
		in.SeatSubtotal = s.chosen.Subtotal
	} else {
		in.SeatSubtotal = s.seats.SeatSubtotal()
	}
	if s.coupon != nil {
		in.CouponDiscount = s.coupon.DiscountAmount
	}
	return in
}

func (s *Session) SubmitState() booking.State {
	return s.submitter.State()
}

func (s *Session) TicketID() string {
	var id string
	s.screen.View(func() {
		id = s.ticketID
	})
	return id
}

// Submit sends the booking once. A partial failure leaves every local
// selection untouched; a confirmation discards it.
func (s *Session) Submit(ctx context.Context) (booking.Result, error) {
	var (
		req model.BookingRequest
		err error
	)
	if !s.screen.Do(func() {
		req, err = s.buildRequest()
	}) {
		return booking.Result{}, apperrors.ErrScreenClosed
	}
	if err != nil {
		return booking.Result{}, err
	}

	result, err := s.submitter.Submit(ctx, req)
	if err != nil {
		return booking.Result{}, err
	}

	var note notification
	applied := s.screen.Do(func() {
		note = s.applyResult(result)
	})
	if !applied {
		s.log.Info("booking finished after screen closed", zap.String("kind", result.Kind.String()))
		return result, apperrors.ErrScreenClosed
	}

	switch result.Kind {
	case booking.KindConfirmed:
		s.log.Info("booking confirmed", zap.String("ticket_id", result.TicketID))
	case booking.KindPartialFailure:
		s.log.Warn("booking partially unavailable",
			zap.Int("unavailable_seats", len(result.UnavailableSeats)),
			zap.Int("unavailable_combos", len(result.UnavailableCombos)))
	default:
		s.log.Error("booking failed", zap.Error(result.Err))
	}
	s.notifier.Notify(note.level, note.msg)
	return result, nil
}

func (s *Session) buildRequest() (model.BookingRequest, error) {
	if s.chosen == nil {
		return model.BookingRequest{}, apperrors.ErrNoSeatsSelected
	}
	in := s.pricingInput()
	in.LoyaltyPointsUsed = s.points

	return booking.NewRequest(booking.RequestParams{
		Showing:   s.showing,
		Email:     s.email,
		Selection: *s.chosen,
		Combos:    s.lines.Requested(),
		Coupon:    s.coupon,
		Pricing:   pricing.Compute(in),
	})
}

// applyResult 呼叫端需持有畫面鎖
func (s *Session) applyResult(result booking.Result) notification {
	switch result.Kind {
	case booking.KindConfirmed:
		s.ticketID = result.TicketID
		s.discardSelection()
		return notification{level: LevelInfo, msg: result.Message(nil)}
	case booking.KindPartialFailure:
		return notification{level: LevelWarning, msg: result.Message(labels{grid: s.grid, combos: s.combos})}
	default:
		return notification{level: LevelError, msg: result.Message(nil)}
	}
}

func (s *Session) discardSelection() {
	for _, c := range s.grid.Selected() {
		if cur, ok := s.grid.Cell(c.Row, c.Column); ok && cur.Status == model.SeatStatusSelected {
			s.grid.ToggleAt(c.Row, c.Column)
		}
	}
	s.chosen = nil
	s.lines = combo.NewSelector()
	s.coupon = nil
	s.points = 0
}

// labels 以本地座位圖與套餐清單補齊顯示名稱
type labels struct {
	grid   *seatmap.Grid
	combos []model.ComboItem
}

func (l labels) SeatLabel(seatID int) (string, bool) {
	c, ok := l.grid.CellByID(seatID)
	if !ok {
		return "", false
	}
	return c.Label(), true
}

func (l labels) ComboName(comboID int) (string, bool) {
	for _, c := range l.combos {
		if c.ComboID == comboID {
			return c.Name, true
		}
	}
	return "", false
}
