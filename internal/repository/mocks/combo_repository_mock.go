package mocks

import (
	"context"

	"go-gin-cinema-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type ComboRepositoryMock struct {
	mock.Mock
}

func NewComboRepositoryMock() *ComboRepositoryMock {
	return &ComboRepositoryMock{}
}

func (m *ComboRepositoryMock) List(ctx context.Context) ([]*model.ComboItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ComboItem), args.Error(1)
}

func (m *ComboRepositoryMock) FindByID(ctx context.Context, id int) (*model.ComboItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ComboItem), args.Error(1)
}

func (m *ComboRepositoryMock) FindByIDs(ctx context.Context, ids []int) ([]*model.ComboItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ComboItem), args.Error(1)
}

func (m *ComboRepositoryMock) DecrementStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	args := m.Called(ctx, tx, id, quantity)
	return args.Error(0)
}
