package mocks

import (
	"context"

	"go-gin-cinema-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type BackendMock struct {
	mock.Mock
}

func NewBackendMock() *BackendMock {
	return &BackendMock{}
}

func (m *BackendMock) GetSeats(ctx context.Context, showingTimeID int) ([]model.SeatRow, error) {
	args := m.Called(ctx, showingTimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SeatRow), args.Error(1)
}

func (m *BackendMock) ListCombos(ctx context.Context) ([]model.ComboItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ComboItem), args.Error(1)
}

func (m *BackendMock) GetRank(ctx context.Context, email string) (model.Rank, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Rank), args.Error(1)
}

func (m *BackendMock) ListCoupons(ctx context.Context, email string) ([]model.Coupon, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *BackendMock) CreateBooking(ctx context.Context, req model.BookingRequest) (*model.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingResponse), args.Error(1)
}
