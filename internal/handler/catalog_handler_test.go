package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-gin-cinema-booking/internal/handler"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCatalogTestRouter(combos *mocks.ComboServiceMock, customers *mocks.CustomerServiceMock) *gin.Engine {
	router := gin.New()
	handler.NewCatalogHandler(combos, customers).RegisterRoutes(router)
	return router
}

func TestGetCombos(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		combos := mocks.NewComboServiceMock()
		router := setupCatalogTestRouter(combos, mocks.NewCustomerServiceMock())
		combos.On("ListCombos", mock.Anything).Return([]*model.ComboItem{
			{ComboID: 1, Name: "Popcorn", Price: 45000, Stock: 3},
		}, nil).Once()

		req := httptest.NewRequest("GET", "/api/v1/combos", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"comboId":1,"name":"Popcorn","price":45000,"imageURL":""}]`, w.Body.String())
	})

	t.Run("Failed - ErrInternalServerError", func(t *testing.T) {
		combos := mocks.NewComboServiceMock()
		router := setupCatalogTestRouter(combos, mocks.NewCustomerServiceMock())
		combos.On("ListCombos", mock.Anything).Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest("GET", "/api/v1/combos", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetRankAndCoupons(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		customers := mocks.NewCustomerServiceMock()
		router := setupCatalogTestRouter(mocks.NewComboServiceMock(), customers)
		customers.On("GetRank", mock.Anything, "an@example.com").Return(model.Rank{Name: "Gold", DiscountPercent: 10}, nil).Once()
		customers.On("ListCoupons", mock.Anything, "an@example.com").Return([]*model.Coupon{{CouponID: 1, Code: "WELCOME", DiscountAmount: 20000}}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/customers/rank?email=an@example.com", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"name":"Gold","discountPercent":10}`, w.Body.String())

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/customers/coupons?email=an@example.com", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"WELCOME"`)

		customers.AssertExpectations(t)
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		customers := mocks.NewCustomerServiceMock()
		router := setupCatalogTestRouter(mocks.NewComboServiceMock(), customers)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/customers/rank?email=not-an-email", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		customers.AssertNotCalled(t, "GetRank", mock.Anything, mock.Anything)
	})
}
