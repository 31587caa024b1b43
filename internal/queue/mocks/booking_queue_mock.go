package mocks

import (
	"context"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/queue"

	"github.com/stretchr/testify/mock"
)

type BookingQueueMock struct {
	mock.Mock
}

func NewBookingQueueMock() *BookingQueueMock {
	return &BookingQueueMock{}
}

func (m *BookingQueueMock) PublishBooking(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingQueueMock) SubscribeBookings(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
