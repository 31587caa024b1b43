package mocks

import (
	"context"

	"go-gin-cinema-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type ShowingRepositoryMock struct {
	mock.Mock
}

func NewShowingRepositoryMock() *ShowingRepositoryMock {
	return &ShowingRepositoryMock{}
}

func (m *ShowingRepositoryMock) List(ctx context.Context) ([]*model.Showing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Showing), args.Error(1)
}

func (m *ShowingRepositoryMock) FindByID(ctx context.Context, id int) (*model.Showing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Showing), args.Error(1)
}
