package repository

import (
	"context"

	"go-gin-cinema-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SeatRepository interface {
	// 場次影廳的所有座位，Taken 依 booking_seats 判斷
	ListByShowing(ctx context.Context, showingID int) ([]*model.Seat, error)
	// 依 ID 查詢座位（不存在的 ID 不回傳）
	FindByIDs(ctx context.Context, ids []int) ([]*model.Seat, error)
}

type SeatRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSeatRepository(pool *pgxpool.Pool) SeatRepository {
	return &SeatRepositoryImpl{
		pool: pool,
	}
}

func (r *SeatRepositoryImpl) ListByShowing(ctx context.Context, showingID int) ([]*model.Seat, error) {
	query := `
		SELECT s.id, s.room_name, s.row_label, s.column_no, t.name, t.price,
		       EXISTS (
		           SELECT 1 FROM booking_seats bs
		           WHERE bs.showing_time_id = sh.id AND bs.seat_id = s.id
		       )
		FROM showings sh
		JOIN seats s ON s.room_name = sh.room_name
		JOIN seat_types t ON t.id = s.seat_type_id
		WHERE sh.id = $1
		ORDER BY s.row_label, s.column_no
	`

	rows, err := r.pool.Query(ctx, query, showingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeats(rows, true)
}

func (r *SeatRepositoryImpl) FindByIDs(ctx context.Context, ids []int) ([]*model.Seat, error) {
	if len(ids) == 0 {
		return []*model.Seat{}, nil
	}

	query := `
		SELECT s.id, s.room_name, s.row_label, s.column_no, t.name, t.price
		FROM seats s
		JOIN seat_types t ON t.id = s.seat_type_id
		WHERE s.id = ANY($1)
		ORDER BY s.row_label, s.column_no
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeats(rows, false)
}

func scanSeats(rows pgx.Rows, withTaken bool) ([]*model.Seat, error) {
	seats := make([]*model.Seat, 0)
	for rows.Next() {
		var seat model.Seat
		dest := []interface{}{
			&seat.ID,
			&seat.RoomName,
			&seat.Row,
			&seat.Column,
			&seat.SeatType.Name,
			&seat.SeatType.Price,
		}
		if withTaken {
			dest = append(dest, &seat.Taken)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
