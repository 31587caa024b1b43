package repository_test

import (
	"context"
	"testing"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/repository"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowingRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	db, f := setupFixture(t)
	repo := repository.NewShowingRepository(db)

	t.Run("Success", func(t *testing.T) {
		showing, err := repo.FindByID(ctx, f.ShowingID)

		require.NoError(t, err)
		assert.Equal(t, "Dune", showing.MovieName)
		assert.Equal(t, "R1", showing.RoomName)
		assert.Equal(t, 19, showing.StartsAt.UTC().Hour())
	})

	t.Run("Failed - ErrShowingNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 99999)
		assert.ErrorIs(t, err, apperrors.ErrShowingNotFound)
	})
}

func TestSeatRepository_ListByShowing(t *testing.T) {
	ctx := context.Background()
	db, f := setupFixture(t)
	repo := repository.NewSeatRepository(db)

	_, err := db.Exec(ctx, `INSERT INTO bookings (ticket_id, request_id, showing_time_id, movie_name, cinema_name, email, total_price, status)
		VALUES (gen_random_uuid(), 'seed', $1, 'Dune', 'Galaxy', 'x@example.com', 0, 'confirmed')`, f.ShowingID)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `INSERT INTO booking_seats (booking_id, showing_time_id, seat_id) VALUES (1, $1, $2)`, f.ShowingID, f.SeatIDs[3])
	require.NoError(t, err)

	seats, err := repo.ListByShowing(ctx, f.ShowingID)

	require.NoError(t, err)
	require.Len(t, seats, 4)
	assert.Equal(t, "A1", seats[0].Label())
	assert.Equal(t, model.SeatTypeSweetBox, seats[0].SeatType.Name)
	assert.Equal(t, int64(120000), seats[0].SeatType.Price)
	assert.Equal(t, model.SeatTypeNormal, seats[3].SeatType.Name)
	assert.False(t, seats[0].Taken)
	assert.True(t, seats[3].Taken)
}

func TestSeatRepository_FindByIDs(t *testing.T) {
	ctx := context.Background()
	db, f := setupFixture(t)
	repo := repository.NewSeatRepository(db)

	seats, err := repo.FindByIDs(ctx, []int{f.SeatIDs[1], 99999})

	require.NoError(t, err)
	require.Len(t, seats, 1)
	assert.Equal(t, "A2", seats[0].Label())

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
