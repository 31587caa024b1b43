package handler

import (
	"errors"
	"net/http"

	"go-gin-cinema-booking/internal/service"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"go-gin-cinema-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ShowingHandler struct {
	service service.SeatService
}

func NewShowingHandler(service service.SeatService) *ShowingHandler {
	return &ShowingHandler{service: service}
}

func (h *ShowingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("showings/:id/seats", h.GetSeats)
		router.POST("showings/:id/open", h.OpenShowing)
	}
}

func (h *ShowingHandler) GetSeats(c *gin.Context) {
	var uri showingURI
	if err := BindUri(c, &uri); err != nil {
		return
	}

	rows, err := h.service.GetSeatMap(c, uri.ID)
	if err != nil {
		h.handleShowingError(c, err, "GetSeats")
		return
	}

	handleSuccess(c, rows, http.StatusOK)
}

func (h *ShowingHandler) OpenShowing(c *gin.Context) {
	var uri showingURI
	if err := BindUri(c, &uri); err != nil {
		return
	}

	if err := h.service.OpenShowing(c, uri.ID); err != nil {
		h.handleShowingError(c, err, "OpenShowing")
		return
	}

	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *ShowingHandler) handleShowingError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrShowingNotFound):
		log.Warn("Showing not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Showing not found",
		})
	case errors.Is(err, apperrors.ErrSeatNotFound):
		log.Warn("Showing has no seats")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Showing has no seats",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
