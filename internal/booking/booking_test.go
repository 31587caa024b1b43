package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-gin-cinema-booking/internal/booking"
	"go-gin-cinema-booking/internal/booking/mocks"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/pricing"
	"go-gin-cinema-booking/internal/seatmap"
	"go-gin-cinema-booking/internal/selection"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testSelection(t *testing.T) selection.Selection {
	t.Helper()
	st := &model.SeatType{Name: model.SeatTypeNormal, Price: 50000}
	g := seatmap.BuildGrid([]model.SeatRow{{Row: "A", SeatColumns: []model.SeatColumn{
		{Column: 1, SeatID: 101, SeatType: st, Status: model.SeatStatusAvailable},
		{Column: 2, SeatID: 102, SeatType: st, Status: model.SeatStatusAvailable},
	}}}, []string{"A"}, 2)
	c := selection.New(g)
	c.ToggleAt("A", 1)
	c.ToggleAt("A", 2)
	sel, err := c.Proceed()
	require.NoError(t, err)
	return sel
}

func testParams(t *testing.T) booking.RequestParams {
	sel := testSelection(t)
	return booking.RequestParams{
		Showing: model.Showing{
			ShowingTimeID: 7,
			MovieName:     "Dune",
			CinemaName:    "Galaxy Nguyen Du",
			StartsAt:      time.Date(2026, 10, 17, 19, 30, 0, 0, time.UTC),
		},
		Email:     "an@example.com",
		Selection: sel,
		Combos:    []model.BookingCombo{{ComboID: 3, Quantity: 2}},
		Coupon:    &model.Coupon{CouponID: 9, Code: "WEEKEND", DiscountAmount: 20000},
		Pricing: pricing.Compute(pricing.Input{
			SeatSubtotal:        sel.Subtotal,
			ComboSubtotal:       50000,
			CouponDiscount:      20000,
			RankDiscountPercent: 10,
			LoyaltyPointsUsed:   5000,
		}),
	}
}

func TestNewRequest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		req, err := booking.NewRequest(testParams(t))

		require.NoError(t, err)
		assert.Equal(t, []int{101, 102}, req.SeatIDs)
		assert.Equal(t, 7, req.ShowingTimeID)
		assert.Equal(t, "19:30 17/10/2026", req.ShowingTime)
		require.NotNil(t, req.CouponID)
		assert.Equal(t, 9, *req.CouponID)
		assert.Equal(t, int64(100000), req.SeatSubtotal)
		assert.Equal(t, int64(13000), req.RankDiscount)
		assert.Equal(t, int64(112000), req.TotalPrice)
	})

	t.Run("Failed - ErrNoSeatsSelected", func(t *testing.T) {
		p := testParams(t)
		p.Selection = selection.Selection{}

		_, err := booking.NewRequest(p)

		assert.ErrorIs(t, err, apperrors.ErrNoSeatsSelected)
	})

	t.Run("Failed - ErrInvalidInput", func(t *testing.T) {
		p := testParams(t)
		p.Email = "not-an-email"

		_, err := booking.NewRequest(p)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - negative total", func(t *testing.T) {
		p := testParams(t)
		p.Pricing = pricing.Compute(pricing.Input{SeatSubtotal: 1000, LoyaltyPointsUsed: 5000})

		_, err := booking.NewRequest(p)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestClassify(t *testing.T) {
	t.Run("Success - confirmed", func(t *testing.T) {
		r := booking.Classify(&model.BookingResponse{Code: model.BookingCodeSuccess, TicketID: strPtr("T-1")}, nil)

		assert.Equal(t, booking.KindConfirmed, r.Kind)
		assert.Equal(t, "T-1", r.TicketID)
	})

	t.Run("Success - partial failure ignores ticket id", func(t *testing.T) {
		r := booking.Classify(&model.BookingResponse{
			Code:             model.BookingCodeSuccess,
			TicketID:         strPtr("T-1"),
			UnavailableSeats: []model.UnavailableSeat{{SeatID: 101, Row: "A", Column: 1}},
		}, nil)

		assert.Equal(t, booking.KindPartialFailure, r.Kind)
		assert.Empty(t, r.TicketID)
	})

	t.Run("Success - combos only partial failure", func(t *testing.T) {
		r := booking.Classify(&model.BookingResponse{
			Code:              model.BookingCodeSuccess,
			UnavailableCombos: []model.UnavailableCombo{{ComboID: 3, Name: "Popcorn"}},
		}, nil)

		assert.Equal(t, booking.KindPartialFailure, r.Kind)
	})

	t.Run("Failed - error code", func(t *testing.T) {
		r := booking.Classify(&model.BookingResponse{Code: model.BookingCodeError, Message: "boom"}, nil)

		assert.Equal(t, booking.KindFailed, r.Kind)
		assert.ErrorIs(t, r.Err, apperrors.ErrBookingRejected)
	})

	t.Run("Failed - transport error", func(t *testing.T) {
		netErr := errors.New("connection refused")
		r := booking.Classify(nil, netErr)

		assert.Equal(t, booking.KindFailed, r.Kind)
		assert.ErrorIs(t, r.Err, netErr)
	})

	t.Run("Failed - success without ticket", func(t *testing.T) {
		r := booking.Classify(&model.BookingResponse{Code: model.BookingCodeSuccess}, nil)

		assert.Equal(t, booking.KindFailed, r.Kind)
	})
}

type labeler struct{}

func (labeler) SeatLabel(seatID int) (string, bool) {
	if seatID == 205 {
		return "B5", true
	}
	return "", false
}

func (labeler) ComboName(comboID int) (string, bool) {
	if comboID == 4 {
		return "Cola", true
	}
	return "", false
}

func TestUnavailableMessage(t *testing.T) {
	seats := []model.UnavailableSeat{{SeatID: 101, Row: "A", Column: 1}, {SeatID: 205}, {SeatID: 999}}
	combos := []model.UnavailableCombo{{ComboID: 3, Name: "Popcorn"}, {ComboID: 4}}

	assert.Equal(t,
		"Seats no longer available: A1, B5, #999. Combos out of stock: Popcorn, Cola",
		booking.UnavailableMessage(seats, combos, labeler{}))
	assert.Equal(t, "Seats no longer available: A1", booking.UnavailableMessage(seats[:1], nil, nil))
	assert.Equal(t, "Combos out of stock: #4", booking.UnavailableMessage(nil, combos[1:], nil))
}

func TestSubmitter_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - confirmed is terminal", func(t *testing.T) {
		sink := mocks.NewSinkMock()
		s := booking.NewSubmitter(sink)
		req, err := booking.NewRequest(testParams(t))
		require.NoError(t, err)

		sink.On("CreateBooking", ctx, req).Return(&model.BookingResponse{Code: model.BookingCodeSuccess, TicketID: strPtr("T-9")}, nil).Once()

		r, err := s.Submit(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, booking.KindConfirmed, r.Kind)
		assert.Equal(t, booking.StateConfirmed, s.State())

		_, err = s.Submit(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrBookingAlreadyConfirmed)
		sink.AssertNumberOfCalls(t, "CreateBooking", 1)
	})

	t.Run("Success - retry after partial failure", func(t *testing.T) {
		sink := mocks.NewSinkMock()
		s := booking.NewSubmitter(sink)
		req, err := booking.NewRequest(testParams(t))
		require.NoError(t, err)

		sink.On("CreateBooking", ctx, req).Return(&model.BookingResponse{
			Code:             model.BookingCodeSuccess,
			UnavailableSeats: []model.UnavailableSeat{{SeatID: 101, Row: "A", Column: 1}},
		}, nil).Once()
		sink.On("CreateBooking", ctx, req).Return(nil, errors.New("timeout")).Once()

		r, err := s.Submit(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, booking.KindPartialFailure, r.Kind)
		assert.Equal(t, booking.StatePartialFailure, s.State())

		r, err = s.Submit(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, booking.KindFailed, r.Kind)
		assert.Equal(t, booking.StateFailed, s.State())
		sink.AssertExpectations(t)
	})

	t.Run("Failed - empty selection never reaches sink", func(t *testing.T) {
		sink := mocks.NewSinkMock()
		s := booking.NewSubmitter(sink)

		_, err := s.Submit(ctx, model.BookingRequest{})

		assert.ErrorIs(t, err, apperrors.ErrNoSeatsSelected)
		assert.Equal(t, booking.StateIdle, s.State())
		sink.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("Failed - ErrSubmissionInProgress", func(t *testing.T) {
		sink := mocks.NewSinkMock()
		s := booking.NewSubmitter(sink)
		req, err := booking.NewRequest(testParams(t))
		require.NoError(t, err)

		started := make(chan struct{})
		release := make(chan struct{})
		sink.On("CreateBooking", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				close(started)
				<-release
			}).
			Return(&model.BookingResponse{Code: model.BookingCodeSuccess, TicketID: strPtr("T-1")}, nil).Once()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Submit(ctx, req)
		}()
		<-started

		// 送出中再按一次
		for i := 0; i < 5; i++ {
			_, err := s.Submit(ctx, req)
			assert.ErrorIs(t, err, apperrors.ErrSubmissionInProgress)
		}
		assert.Equal(t, booking.StateSubmitting, s.State())

		close(release)
		wg.Wait()

		assert.Equal(t, booking.StateConfirmed, s.State())
		sink.AssertNumberOfCalls(t, "CreateBooking", 1)
	})
}
