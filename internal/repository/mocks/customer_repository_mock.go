package mocks

import (
	"context"
	"time"

	"go-gin-cinema-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type CustomerRepositoryMock struct {
	mock.Mock
}

func NewCustomerRepositoryMock() *CustomerRepositoryMock {
	return &CustomerRepositoryMock{}
}

func (m *CustomerRepositoryMock) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *CustomerRepositoryMock) ListActiveCoupons(ctx context.Context, email string, now time.Time) ([]*model.Coupon, error) {
	args := m.Called(ctx, email, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Coupon), args.Error(1)
}

func (m *CustomerRepositoryMock) FindActiveCoupon(ctx context.Context, email string, couponID int, now time.Time) (*model.Coupon, error) {
	args := m.Called(ctx, email, couponID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *CustomerRepositoryMock) DeductPoints(ctx context.Context, tx pgx.Tx, email string, points int64) error {
	args := m.Called(ctx, tx, email, points)
	return args.Error(0)
}

func (m *CustomerRepositoryMock) MarkCouponUsed(ctx context.Context, tx pgx.Tx, couponID int) error {
	args := m.Called(ctx, tx, couponID)
	return args.Error(0)
}
