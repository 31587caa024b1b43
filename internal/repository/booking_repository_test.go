package repository_test

import (
	"context"
	"testing"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/repository"
	"go-gin-cinema-booking/internal/testutil"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(f testutil.Fixture, seatIDs ...int) *model.Booking {
	return &model.Booking{
		TicketID:      uuid.New(),
		RequestID:     uuid.NewString(),
		ShowingTimeID: f.ShowingID,
		MovieName:     "Dune",
		CinemaName:    "Galaxy Nguyen Du",
		ShowingTime:   "19:30 17/10/2026",
		Email:         f.Email,
		SeatIDs:       seatIDs,
		Combos:        []model.BookingCombo{{ComboID: f.ComboIDs[0], Quantity: 2}},
		TotalPrice:    112000,
		Status:        model.BookingStatusConfirmed,
	}
}

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()
	db, f := setupFixture(t)
	repo := repository.NewBookingRepository(db)

	t.Run("Success", func(t *testing.T) {
		tx := setupTestWithTransaction(t, db)
		booking := newTestBooking(f, f.SeatIDs[0], f.SeatIDs[1])

		created, err := repo.Create(ctx, tx, booking)

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.NotZero(t, created.CreatedAt)

		exists, err := repo.ExistsByRequestID(ctx, tx, booking.RequestID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Failed - seat already booked for showing", func(t *testing.T) {
		tx := setupTestWithTransaction(t, db)

		_, err := repo.Create(ctx, tx, newTestBooking(f, f.SeatIDs[2]))
		require.NoError(t, err)

		_, err = repo.Create(ctx, tx, newTestBooking(f, f.SeatIDs[2]))
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	})
}

func TestBookingRepository_FindByTicketID(t *testing.T) {
	ctx := context.Background()
	db, f := setupFixture(t)
	repo := repository.NewBookingRepository(db)

	t.Run("Success", func(t *testing.T) {
		tx, err := db.Begin(ctx)
		require.NoError(t, err)
		booking := newTestBooking(f, f.SeatIDs[1], f.SeatIDs[0])
		_, err = repo.Create(ctx, tx, booking)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		found, err := repo.FindByTicketID(ctx, booking.TicketID)

		require.NoError(t, err)
		assert.Equal(t, booking.RequestID, found.RequestID)
		assert.Equal(t, []string{"A1", "A2"}, found.SeatLabels)
		assert.Equal(t, []int{f.SeatIDs[0], f.SeatIDs[1]}, found.SeatIDs)
		assert.Equal(t, booking.Combos, found.Combos)
		assert.Equal(t, model.BookingStatusConfirmed, found.Status)
		assert.Nil(t, found.CouponID)
	})

	t.Run("Failed - ErrBookingNotFound", func(t *testing.T) {
		_, err := repo.FindByTicketID(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	})
}

func TestBookingRepository_CreateCancelled(t *testing.T) {
	ctx := context.Background()
	db, f := setupFixture(t)
	repo := repository.NewBookingRepository(db)
	booking := newTestBooking(f, f.SeatIDs[3])
	booking.Status = model.BookingStatusPending

	require.NoError(t, repo.CreateCancelled(ctx, booking))
	// redelivery 不重複寫入
	require.NoError(t, repo.CreateCancelled(ctx, booking))

	found, err := repo.FindByTicketID(ctx, booking.TicketID)

	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, found.Status)
	assert.Empty(t, found.SeatIDs)
	assert.Empty(t, found.Combos)
	assert.Equal(t, int64(112000), found.TotalPrice)

	// 座位未被佔用，之後仍可訂
	tx := setupTestWithTransaction(t, db)
	_, err = repo.Create(ctx, tx, newTestBooking(f, f.SeatIDs[3]))
	assert.NoError(t, err)
}
