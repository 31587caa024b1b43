package repository_test

import (
	"context"
	"testing"

	"go-gin-cinema-booking/internal/repository"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComboRepository_List(t *testing.T) {
	ctx := context.Background()
	db, _ := setupFixture(t)
	repo := repository.NewComboRepository(db)

	combos, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, combos, 2)
	assert.Equal(t, "Popcorn", combos[0].Name)
	assert.Equal(t, int64(45000), combos[0].Price)
	assert.Equal(t, 10, combos[0].Stock)
}

func TestComboRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	db, f := setupFixture(t)
	repo := repository.NewComboRepository(db)

	t.Run("Success", func(t *testing.T) {
		combo, err := repo.FindByID(ctx, f.ComboIDs[1])
		require.NoError(t, err)
		assert.Equal(t, "Cola", combo.Name)
	})

	t.Run("Failed - ErrComboNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 99999)
		assert.ErrorIs(t, err, apperrors.ErrComboNotFound)
	})

	t.Run("Success - FindByIDs skips unknown", func(t *testing.T) {
		combos, err := repo.FindByIDs(ctx, []int{f.ComboIDs[0], 99999})
		require.NoError(t, err)
		require.Len(t, combos, 1)
		assert.Equal(t, "Popcorn", combos[0].Name)
	})
}

func TestComboRepository_DecrementStock(t *testing.T) {
	ctx := context.Background()
	db, f := setupFixture(t)
	repo := repository.NewComboRepository(db)

	t.Run("Success", func(t *testing.T) {
		tx := setupTestWithTransaction(t, db)

		err := repo.DecrementStock(ctx, tx, f.ComboIDs[0], 3)

		require.NoError(t, err)
		var stock int
		require.NoError(t, tx.QueryRow(ctx, `SELECT stock FROM combos WHERE id = $1`, f.ComboIDs[0]).Scan(&stock))
		assert.Equal(t, 7, stock)
	})

	t.Run("Failed - ErrInsufficientStock", func(t *testing.T) {
		tx := setupTestWithTransaction(t, db)

		err := repo.DecrementStock(ctx, tx, f.ComboIDs[1], 2)

		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	})
}
