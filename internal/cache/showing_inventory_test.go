package cache_test

import (
	"context"
	"testing"

	"go-gin-cinema-booking/internal/cache"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/testutil"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInventory(t *testing.T) cache.ShowingInventoryManager {
	t.Helper()
	ctx := context.Background()
	inventory := cache.NewShowingInventoryManager(testutil.RedisOrSkip(t))

	require.NoError(t, inventory.WarmUpShowing(ctx, 7, []int{101, 102, 103, 104}, map[int]bool{103: true}))
	require.NoError(t, inventory.WarmUpCombos(ctx, map[int]int{1: 10, 2: 1}))
	return inventory
}

func verifyStock(t *testing.T, ctx context.Context, inventory cache.ShowingInventoryManager, comboID int, expected int) {
	t.Helper()
	stock, err := inventory.ComboStock(ctx, comboID)
	assert.NoError(t, err)
	assert.Equal(t, expected, stock)
}

func TestShowingInventory_WarmUp(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		inventory := setupInventory(t)

		open, err := inventory.IsOpen(ctx, 7)
		require.NoError(t, err)
		assert.True(t, open)

		taken, err := inventory.TakenSeats(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, map[int]bool{103: true}, taken)
		verifyStock(t, ctx, inventory, 1, 10)
	})

	t.Run("Failed - NotOpen", func(t *testing.T) {
		inventory := setupInventory(t)

		open, err := inventory.IsOpen(ctx, 8)
		require.NoError(t, err)
		assert.False(t, open)

		_, err = inventory.TakenSeats(ctx, 8)
		assert.ErrorIs(t, err, apperrors.ErrShowingNotOpen)

		_, err = inventory.ComboStock(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrComboNotFound)
	})
}

func TestShowingInventory_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		inventory := setupInventory(t)

		res, err := inventory.Reserve(ctx, 7, []int{101, 102}, []model.BookingCombo{{ComboID: 1, Quantity: 3}})

		require.NoError(t, err)
		assert.True(t, res.OK())
		taken, _ := inventory.TakenSeats(ctx, 7)
		assert.True(t, taken[101])
		assert.True(t, taken[102])
		verifyStock(t, ctx, inventory, 1, 7)
	})

	t.Run("Failed - unavailable items leave inventory untouched", func(t *testing.T) {
		inventory := setupInventory(t)

		res, err := inventory.Reserve(ctx, 7, []int{101, 103, 999}, []model.BookingCombo{
			{ComboID: 1, Quantity: 1},
			{ComboID: 2, Quantity: 2},
			{ComboID: 42, Quantity: 1},
		})

		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, []int{103, 999}, res.UnavailableSeatIDs)
		assert.Equal(t, []int{2, 42}, res.UnavailableComboIDs)

		taken, _ := inventory.TakenSeats(ctx, 7)
		assert.False(t, taken[101])
		verifyStock(t, ctx, inventory, 1, 10)
		verifyStock(t, ctx, inventory, 2, 1)
	})

	t.Run("Failed - second reservation of same seat", func(t *testing.T) {
		inventory := setupInventory(t)

		first, err := inventory.Reserve(ctx, 7, []int{104}, nil)
		require.NoError(t, err)
		assert.True(t, first.OK())

		second, err := inventory.Reserve(ctx, 7, []int{104}, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{104}, second.UnavailableSeatIDs)
	})

	t.Run("Failed - ErrShowingNotOpen", func(t *testing.T) {
		inventory := setupInventory(t)

		_, err := inventory.Reserve(ctx, 8, []int{101}, nil)

		assert.ErrorIs(t, err, apperrors.ErrShowingNotOpen)
	})
}

func TestShowingInventory_Release(t *testing.T) {
	ctx := context.Background()
	inventory := setupInventory(t)
	combos := []model.BookingCombo{{ComboID: 2, Quantity: 1}}

	res, err := inventory.Reserve(ctx, 7, []int{101}, combos)
	require.NoError(t, err)
	require.True(t, res.OK())
	verifyStock(t, ctx, inventory, 2, 0)

	require.NoError(t, inventory.Release(ctx, 7, []int{101, 555}, combos))

	taken, _ := inventory.TakenSeats(ctx, 7)
	assert.False(t, taken[101])
	assert.False(t, taken[555])
	verifyStock(t, ctx, inventory, 2, 1)
}
