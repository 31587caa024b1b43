package repository

import (
	"context"
	"time"

	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository interface {
	// 會員與等級；沒有等級時 DiscountPercent 為 0
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	// 未使用且未過期的優惠券
	ListActiveCoupons(ctx context.Context, email string, now time.Time) ([]*model.Coupon, error)
	FindActiveCoupon(ctx context.Context, email string, couponID int, now time.Time) (*model.Coupon, error)

	// Transaction methods
	DeductPoints(ctx context.Context, tx pgx.Tx, email string, points int64) error
	MarkCouponUsed(ctx context.Context, tx pgx.Tx, couponID int) error
}

type CustomerRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &CustomerRepositoryImpl{
		pool: pool,
	}
}

func (r *CustomerRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `
		SELECT c.id, c.email, c.loyalty_points,
		       COALESCE(r.name, ''), COALESCE(r.discount_percent, 0)
		FROM customers c
		LEFT JOIN ranks r ON r.id = c.rank_id
		WHERE c.email = $1
	`

	var customer model.Customer
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&customer.ID,
		&customer.Email,
		&customer.LoyaltyPoints,
		&customer.Rank.Name,
		&customer.Rank.DiscountPercent,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, err
	}

	return &customer, nil
}

const activeCouponColumns = `
		SELECT cp.id, cp.code, cp.discount_amount, cp.expires_at
		FROM coupons cp
		JOIN customers c ON c.id = cp.customer_id
		WHERE c.email = $1
		  AND cp.used_at IS NULL
		  AND (cp.expires_at IS NULL OR cp.expires_at > $2)
`

func (r *CustomerRepositoryImpl) ListActiveCoupons(ctx context.Context, email string, now time.Time) ([]*model.Coupon, error) {
	query := activeCouponColumns + ` ORDER BY cp.id`

	rows, err := r.pool.Query(ctx, query, email, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coupons := make([]*model.Coupon, 0)
	for rows.Next() {
		var coupon model.Coupon
		err := rows.Scan(
			&coupon.CouponID,
			&coupon.Code,
			&coupon.DiscountAmount,
			&coupon.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, &coupon)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coupons, nil
}

func (r *CustomerRepositoryImpl) FindActiveCoupon(ctx context.Context, email string, couponID int, now time.Time) (*model.Coupon, error) {
	query := activeCouponColumns + ` AND cp.id = $3`

	var coupon model.Coupon
	err := r.pool.QueryRow(ctx, query, email, now, couponID).Scan(
		&coupon.CouponID,
		&coupon.Code,
		&coupon.DiscountAmount,
		&coupon.ExpiresAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCouponNotFound
		}
		return nil, err
	}

	return &coupon, nil
}

func (r *CustomerRepositoryImpl) DeductPoints(ctx context.Context, tx pgx.Tx, email string, points int64) error {
	if points <= 0 {
		return nil
	}

	query := `
		UPDATE customers
		SET loyalty_points = loyalty_points - $1
		WHERE email = $2 AND loyalty_points >= $1
	`

	result, err := tx.Exec(ctx, query, points, email)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInsufficientPoints
	}

	return nil
}

func (r *CustomerRepositoryImpl) MarkCouponUsed(ctx context.Context, tx pgx.Tx, couponID int) error {
	query := `
		UPDATE coupons
		SET used_at = $1
		WHERE id = $2 AND used_at IS NULL
	`

	result, err := tx.Exec(ctx, query, time.Now().UTC(), couponID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCouponNotFound
	}

	return nil
}
