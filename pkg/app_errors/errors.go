package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")

	ErrShowingNotFound    = errors.New("showing not found")
	ErrSeatNotFound       = errors.New("seat not found")
	ErrComboNotFound      = errors.New("combo not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrShowingNotOpen     = errors.New("showing is not open for sale")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
	ErrPriceMismatch      = errors.New("price does not match server calculation")
	ErrBookingRejected    = errors.New("booking rejected")

	// client side
	ErrNoSeatsSelected         = errors.New("no seats selected")
	ErrSubmissionInProgress    = errors.New("booking submission already in progress")
	ErrBookingAlreadyConfirmed = errors.New("booking already confirmed")
	ErrScreenClosed            = errors.New("screen closed")
)
