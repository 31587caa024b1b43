package handler

import (
	"net/http"

	"go-gin-cinema-booking/internal/service"
	"go-gin-cinema-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler 套餐與會員資料（等級、優惠券）
type CatalogHandler struct {
	comboService    service.ComboService
	customerService service.CustomerService
}

func NewCatalogHandler(comboService service.ComboService, customerService service.CustomerService) *CatalogHandler {
	return &CatalogHandler{
		comboService:    comboService,
		customerService: customerService,
	}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("combos", h.GetCombos)
		router.GET("customers/rank", h.GetRank)
		router.GET("customers/coupons", h.GetCoupons)
	}
}

func (h *CatalogHandler) GetCombos(c *gin.Context) {
	combos, err := h.comboService.ListCombos(c)
	if err != nil {
		h.handleCatalogError(c, err, "GetCombos")
		return
	}
	handleSuccess(c, combos, http.StatusOK)
}

func (h *CatalogHandler) GetRank(c *gin.Context) {
	var query emailQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	rank, err := h.customerService.GetRank(c, query.Email)
	if err != nil {
		h.handleCatalogError(c, err, "GetRank")
		return
	}
	handleSuccess(c, rank, http.StatusOK)
}

func (h *CatalogHandler) GetCoupons(c *gin.Context) {
	var query emailQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	coupons, err := h.customerService.ListCoupons(c, query.Email)
	if err != nil {
		h.handleCatalogError(c, err, "GetCoupons")
		return
	}
	handleSuccess(c, coupons, http.StatusOK)
}

// 目錄查詢沒有可預期的業務錯誤
func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error, operation string) {
	logger.WithComponent("handler").Error("Unexpected error", zap.String("operation", operation), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
