package repository

import (
	"context"

	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ShowingRepository interface {
	List(ctx context.Context) ([]*model.Showing, error)
	FindByID(ctx context.Context, id int) (*model.Showing, error)
}

type ShowingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewShowingRepository(pool *pgxpool.Pool) ShowingRepository {
	return &ShowingRepositoryImpl{
		pool: pool,
	}
}

func (r *ShowingRepositoryImpl) List(ctx context.Context) ([]*model.Showing, error) {
	query := `
		SELECT id, movie_name, cinema_name, room_name, starts_at
		FROM showings
		ORDER BY starts_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showings := make([]*model.Showing, 0)
	for rows.Next() {
		var showing model.Showing
		err := rows.Scan(
			&showing.ShowingTimeID,
			&showing.MovieName,
			&showing.CinemaName,
			&showing.RoomName,
			&showing.StartsAt,
		)
		if err != nil {
			return nil, err
		}
		showings = append(showings, &showing)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return showings, nil
}

func (r *ShowingRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Showing, error) {
	query := `
		SELECT id, movie_name, cinema_name, room_name, starts_at
		FROM showings
		WHERE id = $1
	`

	var showing model.Showing
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&showing.ShowingTimeID,
		&showing.MovieName,
		&showing.CinemaName,
		&showing.RoomName,
		&showing.StartsAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrShowingNotFound
		}
		return nil, err
	}

	return &showing, nil
}
