package service

import (
	"context"

	"go-gin-cinema-booking/internal/cache"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/repository"
)

type ComboService interface {
	ListCombos(ctx context.Context) ([]*model.ComboItem, error)
	// 預熱：將資料庫庫存載入 Redis
	WarmUpStock(ctx context.Context) error
}

type ComboServiceImpl struct {
	repository       repository.ComboRepository
	inventoryManager cache.ShowingInventoryManager
}

func NewComboService(repository repository.ComboRepository, inventoryManager cache.ShowingInventoryManager) ComboService {
	return &ComboServiceImpl{
		repository:       repository,
		inventoryManager: inventoryManager,
	}
}

func (s *ComboServiceImpl) ListCombos(ctx context.Context) ([]*model.ComboItem, error) {
	return s.repository.List(ctx)
}

func (s *ComboServiceImpl) WarmUpStock(ctx context.Context) error {
	combos, err := s.repository.List(ctx)
	if err != nil {
		return err
	}

	stock := make(map[int]int, len(combos))
	for _, c := range combos {
		stock[c.ComboID] = c.Stock
	}
	return s.inventoryManager.WarmUpCombos(ctx, stock)
}
