// Package client talks to the booking REST API on behalf of the kiosk.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/pkg/logger"

	"go.uber.org/zap"
)

// StatusError 伺服器回傳非 2xx
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("booking api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("booking api: status %d: %s", e.StatusCode, e.Message)
}

type BookingAPI interface {
	GetSeats(ctx context.Context, showingTimeID int) ([]model.SeatRow, error)
	ListCombos(ctx context.Context) ([]model.ComboItem, error)
	GetRank(ctx context.Context, email string) (model.Rank, error)
	ListCoupons(ctx context.Context, email string) ([]model.Coupon, error)
	CreateBooking(ctx context.Context, req model.BookingRequest) (*model.BookingResponse, error)
	GetBooking(ctx context.Context, ticketID string) (*model.Booking, error)
}

type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     logger.WithComponent("client"),
	}
}

func (c *Client) GetSeats(ctx context.Context, showingTimeID int) ([]model.SeatRow, error) {
	var rows []model.SeatRow
	path := "/api/v1/showings/" + strconv.Itoa(showingTimeID) + "/seats"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) ListCombos(ctx context.Context) ([]model.ComboItem, error) {
	var items []model.ComboItem
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/combos", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetRank(ctx context.Context, email string) (model.Rank, error) {
	var rank model.Rank
	path := "/api/v1/customers/rank?email=" + url.QueryEscape(email)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &rank); err != nil {
		return model.Rank{}, err
	}
	return rank, nil
}

func (c *Client) ListCoupons(ctx context.Context, email string) ([]model.Coupon, error) {
	var coupons []model.Coupon
	path := "/api/v1/customers/coupons?email=" + url.QueryEscape(email)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// CreateBooking posts the request. A partial failure comes back as a normal
// response; only transport errors and non-2xx statuses return an error.
func (c *Client) CreateBooking(ctx context.Context, req model.BookingRequest) (*model.BookingResponse, error) {
	var resp model.BookingResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/bookings", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetBooking(ctx context.Context, ticketID string) (*model.Booking, error) {
	var b model.Booking
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/bookings/"+url.PathEscape(ticketID), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &apiErr)
		c.log.Warn("unexpected status", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
