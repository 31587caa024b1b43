package handler

import (
	"errors"
	"net/http"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/service"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"go-gin-cinema-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("bookings", h.CreateBooking)
		router.GET("bookings/:ticketId", h.GetBooking)
	}
}

// CreateBooking 部分失敗仍回 200，由 unavailable 清單表示
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req model.BookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.service.CreateBooking(c, req)
	if err != nil {
		h.handleBookingError(c, err, "CreateBooking")
		return
	}

	handleSuccess(c, resp, http.StatusOK)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.service.GetBooking(c, c.Param("ticketId"))
	if err != nil {
		h.handleBookingError(c, err, "GetBooking")
		return
	}

	handleSuccess(c, booking, http.StatusOK)
}

func (h *BookingHandler) handleBookingError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrShowingNotOpen):
		log.Warn("Showing not open")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Showing is not open for sale",
		})
	case errors.Is(err, apperrors.ErrPriceMismatch):
		log.Warn("Price mismatch")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Price has changed, please review your booking",
		})
	case errors.Is(err, apperrors.ErrInsufficientPoints):
		log.Warn("Insufficient loyalty points")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Insufficient loyalty points",
		})
	case errors.Is(err, apperrors.ErrCouponNotFound):
		log.Warn("Coupon not found")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Coupon is not valid",
		})
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrNoSeatsSelected):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	case errors.Is(err, apperrors.ErrShowingNotFound):
		log.Warn("Showing not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Showing not found",
		})
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
