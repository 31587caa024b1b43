package repository

import (
	"context"

	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ComboRepository interface {
	List(ctx context.Context) ([]*model.ComboItem, error)
	FindByID(ctx context.Context, id int) (*model.ComboItem, error)
	FindByIDs(ctx context.Context, ids []int) ([]*model.ComboItem, error)

	// Transaction methods
	DecrementStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error
}

type ComboRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewComboRepository(pool *pgxpool.Pool) ComboRepository {
	return &ComboRepositoryImpl{
		pool: pool,
	}
}

func (r *ComboRepositoryImpl) List(ctx context.Context) ([]*model.ComboItem, error) {
	query := `
		SELECT id, name, price, image_url, stock
		FROM combos
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCombos(rows)
}

func (r *ComboRepositoryImpl) FindByID(ctx context.Context, id int) (*model.ComboItem, error) {
	query := `
		SELECT id, name, price, image_url, stock
		FROM combos
		WHERE id = $1
	`

	var combo model.ComboItem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&combo.ComboID,
		&combo.Name,
		&combo.Price,
		&combo.ImageURL,
		&combo.Stock,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrComboNotFound
		}
		return nil, err
	}

	return &combo, nil
}

func (r *ComboRepositoryImpl) FindByIDs(ctx context.Context, ids []int) ([]*model.ComboItem, error) {
	if len(ids) == 0 {
		return []*model.ComboItem{}, nil
	}

	query := `
		SELECT id, name, price, image_url, stock
		FROM combos
		WHERE id = ANY($1)
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCombos(rows)
}

func (r *ComboRepositoryImpl) DecrementStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	query := `
		UPDATE combos
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`

	result, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInsufficientStock
	}

	return nil
}

func scanCombos(rows pgx.Rows) ([]*model.ComboItem, error) {
	combos := make([]*model.ComboItem, 0)
	for rows.Next() {
		var combo model.ComboItem
		err := rows.Scan(
			&combo.ComboID,
			&combo.Name,
			&combo.Price,
			&combo.ImageURL,
			&combo.Stock,
		)
		if err != nil {
			return nil, err
		}
		combos = append(combos, &combo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return combos, nil
}
