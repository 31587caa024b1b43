package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-gin-cinema-booking/internal/client"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ session.Backend = (*client.Client)(nil)

func newTestServer(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return client.New(srv.URL, 2*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_GetSeats(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/showings/7/seats", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"row":"A","seatColumns":[
				{"column":1,"seatId":101,"seatType":{"name":"Sweet Box","price":120000},"status":"available"},
				{"column":2,"seatId":102,"seatType":null,"status":"empty"}]}]`))
		})

		rows, err := c.GetSeats(ctx, 7)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Len(t, rows[0].SeatColumns, 2)
		assert.True(t, rows[0].SeatColumns[0].SeatType.IsSweetBox())
		assert.Nil(t, rows[0].SeatColumns[1].SeatType)
	})

	t.Run("Failed - StatusError", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Showing not found"})
		})

		_, err := c.GetSeats(ctx, 7)

		var statusErr *client.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Equal(t, "Showing not found", statusErr.Message)
	})
}

func TestClient_Customer(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a+b@example.com", r.URL.Query().Get("email"))
		switch r.URL.Path {
		case "/api/v1/customers/rank":
			writeJSON(w, http.StatusOK, model.Rank{Name: "Gold", DiscountPercent: 10})
		case "/api/v1/customers/coupons":
			writeJSON(w, http.StatusOK, []model.Coupon{{CouponID: 1, Code: "X", DiscountAmount: 1000}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	rank, err := c.GetRank(ctx, "a+b@example.com")
	require.NoError(t, err)
	assert.Equal(t, 10, rank.DiscountPercent)

	coupons, err := c.ListCoupons(ctx, "a+b@example.com")
	require.NoError(t, err)
	assert.Len(t, coupons, 1)
}

func TestClient_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - partial failure is a response", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req model.BookingRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []int{101, 102}, req.SeatIDs)

			writeJSON(w, http.StatusOK, model.BookingResponse{
				Code:             model.BookingCodeSuccess,
				UnavailableSeats: []model.UnavailableSeat{{SeatID: 101, Row: "A", Column: 1}},
			})
		})

		resp, err := c.CreateBooking(ctx, model.BookingRequest{SeatIDs: []int{101, 102}})

		require.NoError(t, err)
		assert.Equal(t, model.BookingCodeSuccess, resp.Code)
		assert.Nil(t, resp.TicketID)
		assert.Len(t, resp.UnavailableSeats, 1)
	})

	t.Run("Failed - transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		c := client.New(srv.URL, time.Second)

		resp, err := c.CreateBooking(ctx, model.BookingRequest{SeatIDs: []int{1}})

		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("Failed - timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		t.Cleanup(srv.Close)
		c := client.New(srv.URL, 20*time.Millisecond)

		_, err := c.CreateBooking(ctx, model.BookingRequest{SeatIDs: []int{1}})

		assert.Error(t, err)
	})
}
