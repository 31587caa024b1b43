package repository

import (
	"context"
	"errors"
	"fmt"

	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Booking, error)

	// 無法寫入的訂位只留下 cancelled 紀錄，不含座位與套餐明細
	CreateCancelled(ctx context.Context, booking *model.Booking) error

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error)
	ExistsByRequestID(ctx context.Context, tx pgx.Tx, requestID string) (bool, error)
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

// Create 寫入訂位、座位與套餐明細；座位在同場次重複時回傳 ErrInsufficientStock
func (r *BookingRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (
			ticket_id, request_id, showing_time_id, movie_name, cinema_name, showing_time, email,
			coupon_id, coupon_discount, rank_discount, loyalty_points_used, total_price, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		booking.TicketID, booking.RequestID, booking.ShowingTimeID, booking.MovieName,
		booking.CinemaName, booking.ShowingTime, booking.Email, booking.CouponID,
		booking.CouponDiscount, booking.RankDiscount, booking.LoyaltyPointsUsed,
		booking.TotalPrice, booking.Status,
	).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	batch := &pgx.Batch{}
	for _, seatID := range booking.SeatIDs {
		batch.Queue(`INSERT INTO booking_seats (booking_id, showing_time_id, seat_id) VALUES ($1, $2, $3)`,
			booking.ID, booking.ShowingTimeID, seatID)
	}
	for _, combo := range booking.Combos {
		batch.Queue(`INSERT INTO booking_combos (booking_id, combo_id, quantity) VALUES ($1, $2, $3)`,
			booking.ID, combo.ComboID, combo.Quantity)
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return nil, apperrors.ErrInsufficientStock
			}
			return nil, fmt.Errorf("failed to create booking items: %w", err)
		}
	}

	return booking, nil
}

// CreateCancelled 同一 request_id 已有紀錄時不覆蓋
func (r *BookingRepositoryImpl) CreateCancelled(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			ticket_id, request_id, showing_time_id, movie_name, cinema_name, showing_time, email,
			coupon_discount, rank_discount, loyalty_points_used, total_price, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (request_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		booking.TicketID, booking.RequestID, booking.ShowingTimeID, booking.MovieName,
		booking.CinemaName, booking.ShowingTime, booking.Email, booking.CouponDiscount,
		booking.RankDiscount, booking.LoyaltyPointsUsed, booking.TotalPrice,
		model.BookingStatusCancelled,
	)
	if err != nil {
		return fmt.Errorf("failed to record cancelled booking: %w", err)
	}
	return nil
}

func (r *BookingRepositoryImpl) ExistsByRequestID(ctx context.Context, tx pgx.Tx, requestID string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE request_id = $1)`, requestID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *BookingRepositoryImpl) FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, ticket_id, request_id, showing_time_id, movie_name, cinema_name, showing_time,
		       email, coupon_id, coupon_discount, rank_discount, loyalty_points_used,
		       total_price, status, created_at, updated_at
		FROM bookings
		WHERE ticket_id = $1
	`

	var booking model.Booking
	err := r.pool.QueryRow(ctx, query, ticketID).Scan(
		&booking.ID,
		&booking.TicketID,
		&booking.RequestID,
		&booking.ShowingTimeID,
		&booking.MovieName,
		&booking.CinemaName,
		&booking.ShowingTime,
		&booking.Email,
		&booking.CouponID,
		&booking.CouponDiscount,
		&booking.RankDiscount,
		&booking.LoyaltyPointsUsed,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, &booking); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepositoryImpl) loadItems(ctx context.Context, booking *model.Booking) error {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.row_label, s.column_no
		FROM booking_seats bs
		JOIN seats s ON s.id = bs.seat_id
		WHERE bs.booking_id = $1
		ORDER BY s.row_label, s.column_no
	`, booking.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	booking.SeatIDs = make([]int, 0)
	booking.SeatLabels = make([]string, 0)
	for rows.Next() {
		var seat model.Seat
		if err := rows.Scan(&seat.ID, &seat.Row, &seat.Column); err != nil {
			return err
		}
		booking.SeatIDs = append(booking.SeatIDs, seat.ID)
		booking.SeatLabels = append(booking.SeatLabels, seat.Label())
	}
	if err := rows.Err(); err != nil {
		return err
	}

	comboRows, err := r.pool.Query(ctx, `
		SELECT combo_id, quantity
		FROM booking_combos
		WHERE booking_id = $1
		ORDER BY combo_id
	`, booking.ID)
	if err != nil {
		return err
	}
	defer comboRows.Close()

	booking.Combos = make([]model.BookingCombo, 0)
	for comboRows.Next() {
		var combo model.BookingCombo
		if err := comboRows.Scan(&combo.ComboID, &combo.Quantity); err != nil {
			return err
		}
		booking.Combos = append(booking.Combos, combo)
	}

	return comboRows.Err()
}
