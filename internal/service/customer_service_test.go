package service_test

import (
	"context"
	"testing"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/service"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_GetRank(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m := setupMock()
		svc := service.NewCustomerService(m.customers)
		m.customers.On("FindByEmail", ctx, "an@example.com").Return(&model.Customer{
			Email: "an@example.com",
			Rank:  model.Rank{Name: "Gold", DiscountPercent: 10},
		}, nil).Once()

		rank, err := svc.GetRank(ctx, "an@example.com")

		require.NoError(t, err)
		assert.Equal(t, 10, rank.DiscountPercent)
	})

	t.Run("Success - unknown customer has no discount", func(t *testing.T) {
		m := setupMock()
		svc := service.NewCustomerService(m.customers)
		m.customers.On("FindByEmail", ctx, "guest@example.com").Return(nil, apperrors.ErrCustomerNotFound).Once()

		rank, err := svc.GetRank(ctx, "guest@example.com")

		require.NoError(t, err)
		assert.Equal(t, model.Rank{}, rank)
	})
}

func TestCustomerService_ListCoupons(t *testing.T) {
	ctx := context.Background()
	m := setupMock()
	svc := service.NewCustomerService(m.customers)
	m.customers.On("ListActiveCoupons", ctx, "an@example.com", mock.AnythingOfType("time.Time")).
		Return([]*model.Coupon{{CouponID: 1, Code: "WELCOME", DiscountAmount: 20000}}, nil).Once()

	coupons, err := svc.ListCoupons(ctx, "an@example.com")

	require.NoError(t, err)
	assert.Len(t, coupons, 1)
	m.customers.AssertExpectations(t)
}

func TestComboService(t *testing.T) {
	ctx := context.Background()
	m := setupMock()
	svc := service.NewComboService(m.combos, m.inventory)

	combos := []*model.ComboItem{{ComboID: 1, Name: "Popcorn", Price: 25000, Stock: 10}, {ComboID: 2, Name: "Cola", Stock: 0}}
	m.combos.On("List", ctx).Return(combos, nil).Twice()
	m.inventory.On("WarmUpCombos", ctx, map[int]int{1: 10, 2: 0}).Return(nil).Once()

	list, err := svc.ListCombos(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.WarmUpStock(ctx))
	m.inventory.AssertExpectations(t)
}
