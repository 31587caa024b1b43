package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-gin-cinema-booking/internal/cache"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/notify"
	"go-gin-cinema-booking/internal/pricing"
	"go-gin-cinema-booking/internal/queue"
	"go-gin-cinema-booking/internal/repository"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"go-gin-cinema-booking/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type BookingService interface {
	// 預留座位與套餐(Redis)，成功後送入隊列；部分失敗以 unavailable 清單回傳
	CreateBooking(ctx context.Context, req model.BookingRequest) (*model.BookingResponse, error)
	// 寫入訂位(Queue持久化)
	PersistBooking(ctx context.Context, booking *model.Booking) error
	// 無法寫入的訂位：釋放 Redis 預留並記錄為 cancelled，查詢票號時不會一直 404
	CancelBooking(ctx context.Context, booking *model.Booking) error
	GetBooking(ctx context.Context, ticketID string) (*model.Booking, error)
}

type BookingServiceImpl struct {
	pool               *pgxpool.Pool
	repository         repository.BookingRepository
	showingRepository  repository.ShowingRepository
	seatRepository     repository.SeatRepository
	comboRepository    repository.ComboRepository
	customerRepository repository.CustomerRepository
	inventoryManager   cache.ShowingInventoryManager
	bookingQueue       queue.BookingQueue
	publisher          notify.Publisher
}

func NewBookingService(
	pool *pgxpool.Pool,
	bookingRepository repository.BookingRepository,
	showingRepository repository.ShowingRepository,
	seatRepository repository.SeatRepository,
	comboRepository repository.ComboRepository,
	customerRepository repository.CustomerRepository,
	inventoryManager cache.ShowingInventoryManager,
	bookingQueue queue.BookingQueue,
	publisher notify.Publisher,
) BookingService {
	return &BookingServiceImpl{
		pool:               pool,
		repository:         bookingRepository,
		showingRepository:  showingRepository,
		seatRepository:     seatRepository,
		comboRepository:    comboRepository,
		customerRepository: customerRepository,
		inventoryManager:   inventoryManager,
		bookingQueue:       bookingQueue,
		publisher:          publisher,
	}
}

// 去除重複座位，保留順序
func uniqueSeats(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// 合併同一套餐的數量，保留順序
func mergeCombos(combos []model.BookingCombo) []model.BookingCombo {
	index := make(map[int]int, len(combos))
	out := make([]model.BookingCombo, 0, len(combos))
	for _, c := range combos {
		if i, ok := index[c.ComboID]; ok {
			out[i].Quantity += c.Quantity
			continue
		}
		index[c.ComboID] = len(out)
		out = append(out, c)
	}
	return out
}

func comboIDs(combos []model.BookingCombo) []int {
	ids := make([]int, 0, len(combos))
	for _, c := range combos {
		ids = append(ids, c.ComboID)
	}
	return ids
}

// bookingItems 送出時查到的座位與套餐
type bookingItems struct {
	seats  map[int]*model.Seat
	combos map[int]*model.ComboItem
}

func (it bookingItems) unavailable(seatIDs, comboIDs []int) *model.BookingResponse {
	resp := &model.BookingResponse{
		Code:              model.BookingCodeSuccess,
		UnavailableSeats:  make([]model.UnavailableSeat, 0, len(seatIDs)),
		UnavailableCombos: make([]model.UnavailableCombo, 0, len(comboIDs)),
	}
	for _, id := range seatIDs {
		entry := model.UnavailableSeat{SeatID: id}
		if seat, ok := it.seats[id]; ok {
			entry.Row = seat.Row
			entry.Column = seat.Column
		}
		resp.UnavailableSeats = append(resp.UnavailableSeats, entry)
	}
	for _, id := range comboIDs {
		entry := model.UnavailableCombo{ComboID: id}
		if combo, ok := it.combos[id]; ok {
			entry.Name = combo.Name
		}
		resp.UnavailableCombos = append(resp.UnavailableCombos, entry)
	}
	return resp
}

func (s *BookingServiceImpl) loadItems(ctx context.Context, seatIDs []int, combos []model.BookingCombo) (bookingItems, []int, []int, error) {
	items := bookingItems{
		seats:  make(map[int]*model.Seat),
		combos: make(map[int]*model.ComboItem),
	}

	seats, err := s.seatRepository.FindByIDs(ctx, seatIDs)
	if err != nil {
		return items, nil, nil, err
	}
	for _, seat := range seats {
		items.seats[seat.ID] = seat
	}

	comboItems, err := s.comboRepository.FindByIDs(ctx, comboIDs(combos))
	if err != nil {
		return items, nil, nil, err
	}
	for _, combo := range comboItems {
		items.combos[combo.ComboID] = combo
	}

	var missingSeats, missingCombos []int
	for _, id := range seatIDs {
		if _, ok := items.seats[id]; !ok {
			missingSeats = append(missingSeats, id)
		}
	}
	for _, c := range combos {
		if _, ok := items.combos[c.ComboID]; !ok {
			missingCombos = append(missingCombos, c.ComboID)
		}
	}
	return items, missingSeats, missingCombos, nil
}

// quote 依伺服器端價格重新計價，與請求不符時拒絕
func (s *BookingServiceImpl) quote(ctx context.Context, req model.BookingRequest, items bookingItems, seatIDs []int, combos []model.BookingCombo) (pricing.Snapshot, error) {
	var in pricing.Input
	for _, id := range seatIDs {
		in.SeatSubtotal += items.seats[id].SeatType.Price
	}
	for _, c := range combos {
		in.ComboSubtotal += items.combos[c.ComboID].Price * int64(c.Quantity)
	}

	var points int64
	customer, err := s.customerRepository.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		in.RankDiscountPercent = customer.Rank.DiscountPercent
		points = customer.LoyaltyPoints
	case !errors.Is(err, apperrors.ErrCustomerNotFound):
		return pricing.Snapshot{}, err
	}

	if req.CouponID != nil {
		coupon, err := s.customerRepository.FindActiveCoupon(ctx, req.Email, *req.CouponID, time.Now().UTC())
		if err != nil {
			return pricing.Snapshot{}, err
		}
		in.CouponDiscount = coupon.DiscountAmount
	}

	if req.LoyaltyPointsUsed > points {
		return pricing.Snapshot{}, apperrors.ErrInsufficientPoints
	}
	if req.LoyaltyPointsUsed > pricing.MaxRedeemablePoints(in) {
		return pricing.Snapshot{}, fmt.Errorf("%w: loyalty points exceed payable amount", apperrors.ErrInvalidInput)
	}
	in.LoyaltyPointsUsed = req.LoyaltyPointsUsed

	snapshot := pricing.Compute(in)
	if snapshot.FinalTotal != req.TotalPrice {
		return pricing.Snapshot{}, fmt.Errorf("%w: expected %d, got %d", apperrors.ErrPriceMismatch, snapshot.FinalTotal, req.TotalPrice)
	}
	return snapshot, nil
}

func (s *BookingServiceImpl) CreateBooking(ctx context.Context, req model.BookingRequest) (*model.BookingResponse, error) {
	seatIDs := uniqueSeats(req.SeatIDs)
	if len(seatIDs) == 0 {
		return nil, apperrors.ErrNoSeatsSelected
	}
	combos := mergeCombos(req.Combos)

	showing, err := s.showingRepository.FindByID(ctx, req.ShowingTimeID)
	if err != nil {
		return nil, err
	}

	// 1. 不存在的座位或套餐直接視為不可用
	items, missingSeats, missingCombos, err := s.loadItems(ctx, seatIDs, combos)
	if err != nil {
		return nil, err
	}
	if len(missingSeats) > 0 || len(missingCombos) > 0 {
		return items.unavailable(missingSeats, missingCombos), nil
	}

	// 2. 伺服器端計價
	snapshot, err := s.quote(ctx, req, items, seatIDs, combos)
	if err != nil {
		return nil, err
	}

	// 3. Redis 原子預留
	result, err := s.inventoryManager.Reserve(ctx, showing.ShowingTimeID, seatIDs, combos)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return items.unavailable(result.UnavailableSeatIDs, result.UnavailableComboIDs), nil
	}

	labels := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		labels = append(labels, items.seats[id].Label())
	}

	booking := &model.Booking{
		TicketID:          uuid.New(),
		RequestID:         uuid.NewString(),
		ShowingTimeID:     showing.ShowingTimeID,
		MovieName:         showing.MovieName,
		CinemaName:        showing.CinemaName,
		ShowingTime:       showing.DisplayTime(),
		Email:             req.Email,
		SeatIDs:           seatIDs,
		SeatLabels:        labels,
		Combos:            combos,
		CouponID:          req.CouponID,
		CouponDiscount:    snapshot.CouponDiscount,
		RankDiscount:      snapshot.RankDiscountAmount,
		LoyaltyPointsUsed: snapshot.LoyaltyPointsUsed,
		TotalPrice:        snapshot.FinalTotal,
		Status:            model.BookingStatusPending,
	}

	// 4. 送入隊列：ctx 跟隨請求的生命週期
	if err := s.bookingQueue.PublishBooking(ctx, booking); err != nil {
		logger.WithComponent("service").Error("failed to publish booking",
			zap.String("request_id", booking.RequestID), zap.Error(err))
		// 回滾預留：使用 context.Background() 確保一定會執行
		if rbErr := s.inventoryManager.Release(context.Background(), showing.ShowingTimeID, seatIDs, combos); rbErr != nil {
			logger.WithComponent("service").Error("failed to release reservation",
				zap.String("request_id", booking.RequestID), zap.Error(rbErr))
		}
		return nil, apperrors.ErrInternalServerError
	}

	ticketID := booking.TicketID.String()
	return &model.BookingResponse{
		Code:              model.BookingCodeSuccess,
		TicketID:          &ticketID,
		UnavailableSeats:  []model.UnavailableSeat{},
		UnavailableCombos: []model.UnavailableCombo{},
	}, nil
}

// IsPermanent 重試也無法成功的寫入錯誤
func IsPermanent(err error) bool {
	return errors.Is(err, apperrors.ErrInsufficientStock) ||
		errors.Is(err, apperrors.ErrInsufficientPoints) ||
		errors.Is(err, apperrors.ErrCouponNotFound) ||
		errors.Is(err, apperrors.ErrInvalidInput)
}

func (s *BookingServiceImpl) PersistBooking(ctx context.Context, booking *model.Booking) error {
	if !booking.Status.CanTransitionTo(model.BookingStatusConfirmed) {
		return fmt.Errorf("%w: booking status %s", apperrors.ErrInvalidInput, booking.Status)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// redelivery 時已寫入則略過
	exists, err := s.repository.ExistsByRequestID(ctx, tx, booking.RequestID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	record := *booking
	record.Status = model.BookingStatusConfirmed
	if _, err := s.repository.Create(ctx, tx, &record); err != nil {
		return err
	}

	for _, c := range booking.Combos {
		if err := s.comboRepository.DecrementStock(ctx, tx, c.ComboID, c.Quantity); err != nil {
			return err
		}
	}

	if err := s.customerRepository.DeductPoints(ctx, tx, booking.Email, booking.LoyaltyPointsUsed); err != nil {
		return err
	}

	if booking.CouponID != nil {
		if err := s.customerRepository.MarkCouponUsed(ctx, tx, *booking.CouponID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	// 事件發佈失敗不回滾已寫入的訂位
	if err := s.publisher.PublishBookingConfirmed(ctx, &record); err != nil {
		logger.WithComponent("service").Warn("failed to publish booking.confirmed",
			zap.String("ticket_id", record.TicketID.String()), zap.Error(err))
	}
	return nil
}

func (s *BookingServiceImpl) CancelBooking(ctx context.Context, booking *model.Booking) error {
	releaseErr := s.inventoryManager.Release(ctx, booking.ShowingTimeID, booking.SeatIDs, booking.Combos)
	if releaseErr != nil {
		releaseErr = fmt.Errorf("release reservation: %w", releaseErr)
	}
	recordErr := s.repository.CreateCancelled(ctx, booking)
	return errors.Join(releaseErr, recordErr)
}

func (s *BookingServiceImpl) GetBooking(ctx context.Context, ticketID string) (*model.Booking, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket id %q", apperrors.ErrInvalidInput, ticketID)
	}
	return s.repository.FindByTicketID(ctx, id)
}
