// Package booking assembles booking requests, submits them once per attempt
// and turns the server's answer into a tagged outcome.
package booking

import (
	"fmt"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/pricing"
	"go-gin-cinema-booking/internal/selection"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RequestParams 組成訂位請求所需的各階段結果
type RequestParams struct {
	Showing   model.Showing
	Email     string
	Selection selection.Selection
	Combos    []model.BookingCombo
	Coupon    *model.Coupon
	Pricing   pricing.Snapshot
}

// NewRequest builds the immutable request sent to the booking sink. Each
// discount component is reported separately so the server can audit it.
func NewRequest(p RequestParams) (model.BookingRequest, error) {
	if p.Selection.Len() == 0 {
		return model.BookingRequest{}, apperrors.ErrNoSeatsSelected
	}

	var couponID *int
	if p.Coupon != nil {
		id := p.Coupon.CouponID
		couponID = &id
	}

	req := model.BookingRequest{
		ShowingTimeID:     p.Showing.ShowingTimeID,
		MovieName:         p.Showing.MovieName,
		ShowingTime:       p.Showing.DisplayTime(),
		CinemaName:        p.Showing.CinemaName,
		Email:             p.Email,
		SeatIDs:           p.Selection.SeatIDs(),
		Combos:            append([]model.BookingCombo{}, p.Combos...),
		CouponID:          couponID,
		SeatSubtotal:      p.Pricing.SeatSubtotal,
		ComboSubtotal:     p.Pricing.ComboSubtotal,
		CouponDiscount:    p.Pricing.CouponDiscount,
		RankDiscount:      p.Pricing.RankDiscountAmount,
		LoyaltyPointsUsed: p.Pricing.LoyaltyPointsUsed,
		TotalPrice:        p.Pricing.FinalTotal,
	}

	if err := validate.Struct(req); err != nil {
		return model.BookingRequest{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return req, nil
}
