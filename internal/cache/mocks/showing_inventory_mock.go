package mocks

import (
	"context"

	"go-gin-cinema-booking/internal/cache"
	"go-gin-cinema-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type ShowingInventoryManagerMock struct {
	mock.Mock
}

func NewShowingInventoryManagerMock() *ShowingInventoryManagerMock {
	return &ShowingInventoryManagerMock{}
}

func (m *ShowingInventoryManagerMock) WarmUpShowing(ctx context.Context, showingID int, seatIDs []int, taken map[int]bool) error {
	args := m.Called(ctx, showingID, seatIDs, taken)
	return args.Error(0)
}

func (m *ShowingInventoryManagerMock) WarmUpCombos(ctx context.Context, stock map[int]int) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *ShowingInventoryManagerMock) IsOpen(ctx context.Context, showingID int) (bool, error) {
	args := m.Called(ctx, showingID)
	return args.Bool(0), args.Error(1)
}

func (m *ShowingInventoryManagerMock) TakenSeats(ctx context.Context, showingID int) (map[int]bool, error) {
	args := m.Called(ctx, showingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]bool), args.Error(1)
}

func (m *ShowingInventoryManagerMock) ComboStock(ctx context.Context, comboID int) (int, error) {
	args := m.Called(ctx, comboID)
	return args.Int(0), args.Error(1)
}

func (m *ShowingInventoryManagerMock) Reserve(ctx context.Context, showingID int, seatIDs []int, combos []model.BookingCombo) (cache.ReserveResult, error) {
	args := m.Called(ctx, showingID, seatIDs, combos)
	return args.Get(0).(cache.ReserveResult), args.Error(1)
}

func (m *ShowingInventoryManagerMock) Release(ctx context.Context, showingID int, seatIDs []int, combos []model.BookingCombo) error {
	args := m.Called(ctx, showingID, seatIDs, combos)
	return args.Error(0)
}
