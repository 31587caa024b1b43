package mocks

import (
	"context"

	"go-gin-cinema-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type SeatServiceMock struct {
	mock.Mock
}

func NewSeatServiceMock() *SeatServiceMock {
	return &SeatServiceMock{}
}

func (m *SeatServiceMock) GetSeatMap(ctx context.Context, showingID int) ([]model.SeatRow, error) {
	args := m.Called(ctx, showingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SeatRow), args.Error(1)
}

func (m *SeatServiceMock) OpenShowing(ctx context.Context, showingID int) error {
	args := m.Called(ctx, showingID)
	return args.Error(0)
}

type ComboServiceMock struct {
	mock.Mock
}

func NewComboServiceMock() *ComboServiceMock {
	return &ComboServiceMock{}
}

func (m *ComboServiceMock) ListCombos(ctx context.Context) ([]*model.ComboItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ComboItem), args.Error(1)
}

func (m *ComboServiceMock) WarmUpStock(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type CustomerServiceMock struct {
	mock.Mock
}

func NewCustomerServiceMock() *CustomerServiceMock {
	return &CustomerServiceMock{}
}

func (m *CustomerServiceMock) GetRank(ctx context.Context, email string) (model.Rank, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Rank), args.Error(1)
}

func (m *CustomerServiceMock) ListCoupons(ctx context.Context, email string) ([]*model.Coupon, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Coupon), args.Error(1)
}

type BookingServiceMock struct {
	mock.Mock
}

func NewBookingServiceMock() *BookingServiceMock {
	return &BookingServiceMock{}
}

func (m *BookingServiceMock) CreateBooking(ctx context.Context, req model.BookingRequest) (*model.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingResponse), args.Error(1)
}

func (m *BookingServiceMock) PersistBooking(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingServiceMock) CancelBooking(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingServiceMock) GetBooking(ctx context.Context, ticketID string) (*model.Booking, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}
