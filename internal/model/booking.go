package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus 訂位狀態類型
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid 驗證狀態是否有效
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	transitions := map[BookingStatus][]BookingStatus{
		BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
		BookingStatusConfirmed: {BookingStatusCancelled},
		BookingStatusCancelled: {},
	}

	for _, status := range transitions[s] {
		if status == target {
			return true
		}
	}
	return false
}

// BookingCombo 訂位中的套餐與數量
type BookingCombo struct {
	ComboID  int `json:"comboId" binding:"required,gt=0" validate:"required,gt=0"`
	Quantity int `json:"quantity" binding:"required,gt=0" validate:"required,gt=0"`
}

// BookingRequest 送出時組成的不可變訂位請求，折扣各自列出供伺服器稽核
type BookingRequest struct {
	ShowingTimeID int    `json:"showingTimeId" binding:"required,gt=0" validate:"required,gt=0"`
	MovieName     string `json:"movieName" binding:"required" validate:"required"`
	ShowingTime   string `json:"showingTime"`
	CinemaName    string `json:"cinemaName" binding:"required" validate:"required"`
	Email         string `json:"email" binding:"required,email" validate:"required,email"`

	SeatIDs []int          `json:"seatIds" binding:"required,min=1,dive,gt=0" validate:"required,min=1,dive,gt=0"`
	Combos  []BookingCombo `json:"combos" binding:"dive" validate:"dive"`

	CouponID          *int  `json:"couponId"`
	SeatSubtotal      int64 `json:"seatSubtotal" binding:"gte=0" validate:"gte=0"`
	ComboSubtotal     int64 `json:"comboSubtotal" binding:"gte=0" validate:"gte=0"`
	CouponDiscount    int64 `json:"couponDiscount" binding:"gte=0" validate:"gte=0"`
	RankDiscount      int64 `json:"rankDiscount" binding:"gte=0" validate:"gte=0"`
	LoyaltyPointsUsed int64 `json:"loyaltyPointsUsed" binding:"gte=0" validate:"gte=0"`
	TotalPrice        int64 `json:"totalPrice" binding:"gte=0" validate:"gte=0"`
}

const (
	BookingCodeSuccess = "success"
	BookingCodeError   = "error"
)

// UnavailableSeat 送出時已售出的座位
type UnavailableSeat struct {
	SeatID int    `json:"seatId"`
	Row    string `json:"row"`
	Column int    `json:"column"`
}

// UnavailableCombo 送出時已售完的套餐
type UnavailableCombo struct {
	ComboID int    `json:"comboId"`
	Name    string `json:"name"`
}

// BookingResponse 訂位結果；code 為 success 但帶有 unavailable 清單時代表部分失敗
type BookingResponse struct {
	Code              string             `json:"code"`
	TicketID          *string            `json:"ticketId"`
	UnavailableSeats  []UnavailableSeat  `json:"unavailableSeats"`
	UnavailableCombos []UnavailableCombo `json:"unavailableCombos"`
	Message           string             `json:"message,omitempty"`
}

// Booking 訂位模型
type Booking struct {
	ID                int            `json:"id" db:"id"`
	TicketID          uuid.UUID      `json:"ticket_id" db:"ticket_id"`
	RequestID         string         `json:"request_id" db:"request_id"`
	ShowingTimeID     int            `json:"showing_time_id" db:"showing_time_id"`
	MovieName         string         `json:"movie_name" db:"movie_name"`
	CinemaName        string         `json:"cinema_name" db:"cinema_name"`
	ShowingTime       string         `json:"showing_time" db:"showing_time"`
	Email             string         `json:"email" db:"email"`
	SeatIDs           []int          `json:"seat_ids" db:"-"`
	SeatLabels        []string       `json:"seat_labels" db:"-"`
	Combos            []BookingCombo `json:"combos" db:"-"`
	CouponID          *int           `json:"coupon_id,omitempty" db:"coupon_id"`
	CouponDiscount    int64          `json:"coupon_discount" db:"coupon_discount"`
	RankDiscount      int64          `json:"rank_discount" db:"rank_discount"`
	LoyaltyPointsUsed int64          `json:"loyalty_points_used" db:"loyalty_points_used"`
	TotalPrice        int64          `json:"total_price" db:"total_price"`
	Status            BookingStatus  `json:"status" db:"status"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}
