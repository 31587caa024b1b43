package mocks

import (
	"context"

	"go-gin-cinema-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type PublisherMock struct {
	mock.Mock
}

func NewPublisherMock() *PublisherMock {
	return &PublisherMock{}
}

func (m *PublisherMock) PublishBookingConfirmed(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	return nil
}
