package service

import (
	"context"
	"errors"
	"time"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/repository"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
)

type CustomerService interface {
	// 非會員回傳 0% 的空等級
	GetRank(ctx context.Context, email string) (model.Rank, error)
	// 非會員回傳空清單
	ListCoupons(ctx context.Context, email string) ([]*model.Coupon, error)
}

type CustomerServiceImpl struct {
	repository repository.CustomerRepository
}

func NewCustomerService(repository repository.CustomerRepository) CustomerService {
	return &CustomerServiceImpl{repository: repository}
}

func (s *CustomerServiceImpl) GetRank(ctx context.Context, email string) (model.Rank, error) {
	customer, err := s.repository.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrCustomerNotFound) {
		return model.Rank{}, nil
	}
	if err != nil {
		return model.Rank{}, err
	}
	return customer.Rank, nil
}

func (s *CustomerServiceImpl) ListCoupons(ctx context.Context, email string) ([]*model.Coupon, error) {
	return s.repository.ListActiveCoupons(ctx, email, time.Now().UTC())
}
