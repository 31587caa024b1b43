package mocks

import (
	"context"

	"go-gin-cinema-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type SinkMock struct {
	mock.Mock
}

func NewSinkMock() *SinkMock {
	return &SinkMock{}
}

func (m *SinkMock) CreateBooking(ctx context.Context, req model.BookingRequest) (*model.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingResponse), args.Error(1)
}
