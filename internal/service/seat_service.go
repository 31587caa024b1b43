package service

import (
	"context"

	"go-gin-cinema-booking/internal/cache"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/repository"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
)

type SeatService interface {
	// 場次座位圖；已開賣的場次以 Redis 狀態為準
	GetSeatMap(ctx context.Context, showingID int) ([]model.SeatRow, error)
	// 開賣：將座位狀態預熱到 Redis
	OpenShowing(ctx context.Context, showingID int) error
}

type SeatServiceImpl struct {
	showingRepository repository.ShowingRepository
	seatRepository    repository.SeatRepository
	inventoryManager  cache.ShowingInventoryManager
}

func NewSeatService(
	showingRepository repository.ShowingRepository,
	seatRepository repository.SeatRepository,
	inventoryManager cache.ShowingInventoryManager,
) SeatService {
	return &SeatServiceImpl{
		showingRepository: showingRepository,
		seatRepository:    seatRepository,
		inventoryManager:  inventoryManager,
	}
}

func (s *SeatServiceImpl) GetSeatMap(ctx context.Context, showingID int) ([]model.SeatRow, error) {
	if _, err := s.showingRepository.FindByID(ctx, showingID); err != nil {
		return nil, err
	}

	seats, err := s.seatRepository.ListByShowing(ctx, showingID)
	if err != nil {
		return nil, err
	}

	open, err := s.inventoryManager.IsOpen(ctx, showingID)
	if err != nil {
		return nil, err
	}
	if open {
		taken, err := s.inventoryManager.TakenSeats(ctx, showingID)
		if err != nil {
			return nil, err
		}
		for _, seat := range seats {
			seat.Taken = seat.Taken || taken[seat.ID]
		}
	}

	return groupRows(seats), nil
}

// groupRows 依排分組，保留資料庫的排序
func groupRows(seats []*model.Seat) []model.SeatRow {
	rows := make([]model.SeatRow, 0)
	index := make(map[string]int)

	for _, seat := range seats {
		i, ok := index[seat.Row]
		if !ok {
			i = len(rows)
			index[seat.Row] = i
			rows = append(rows, model.SeatRow{Row: seat.Row, SeatColumns: make([]model.SeatColumn, 0)})
		}

		status := model.SeatStatusAvailable
		if seat.Taken {
			status = model.SeatStatusTaken
		}
		seatType := seat.SeatType
		rows[i].SeatColumns = append(rows[i].SeatColumns, model.SeatColumn{
			Column:   seat.Column,
			SeatID:   seat.ID,
			SeatType: &seatType,
			Status:   status,
		})
	}
	return rows
}

func (s *SeatServiceImpl) OpenShowing(ctx context.Context, showingID int) error {
	if _, err := s.showingRepository.FindByID(ctx, showingID); err != nil {
		return err
	}

	seats, err := s.seatRepository.ListByShowing(ctx, showingID)
	if err != nil {
		return err
	}
	if len(seats) == 0 {
		return apperrors.ErrSeatNotFound
	}

	ids := make([]int, 0, len(seats))
	taken := make(map[int]bool)
	for _, seat := range seats {
		ids = append(ids, seat.ID)
		if seat.Taken {
			taken[seat.ID] = true
		}
	}

	return s.inventoryManager.WarmUpShowing(ctx, showingID, ids, taken)
}
