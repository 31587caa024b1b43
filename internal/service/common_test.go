package service_test

import (
	"time"

	cacheMocks "go-gin-cinema-booking/internal/cache/mocks"
	"go-gin-cinema-booking/internal/model"
	notifyMocks "go-gin-cinema-booking/internal/notify/mocks"
	queueMocks "go-gin-cinema-booking/internal/queue/mocks"
	repoMocks "go-gin-cinema-booking/internal/repository/mocks"
)

type bookingMocks struct {
	bookings  *repoMocks.BookingRepositoryMock
	showings  *repoMocks.ShowingRepositoryMock
	seats     *repoMocks.SeatRepositoryMock
	combos    *repoMocks.ComboRepositoryMock
	customers *repoMocks.CustomerRepositoryMock
	inventory *cacheMocks.ShowingInventoryManagerMock
	queue     *queueMocks.BookingQueueMock
	publisher *notifyMocks.PublisherMock
}

func setupMock() bookingMocks {
	return bookingMocks{
		bookings:  repoMocks.NewBookingRepositoryMock(),
		showings:  repoMocks.NewShowingRepositoryMock(),
		seats:     repoMocks.NewSeatRepositoryMock(),
		combos:    repoMocks.NewComboRepositoryMock(),
		customers: repoMocks.NewCustomerRepositoryMock(),
		inventory: cacheMocks.NewShowingInventoryManagerMock(),
		queue:     queueMocks.NewBookingQueueMock(),
		publisher: notifyMocks.NewPublisherMock(),
	}
}

func testShowing() *model.Showing {
	return &model.Showing{
		ShowingTimeID: 7,
		MovieName:     "Dune",
		CinemaName:    "Galaxy Nguyen Du",
		RoomName:      "R1",
		StartsAt:      time.Date(2026, 10, 17, 19, 30, 0, 0, time.UTC),
	}
}

func normalSeat(id int, row string, column int) *model.Seat {
	return &model.Seat{
		ID:       id,
		RoomName: "R1",
		Row:      row,
		Column:   column,
		SeatType: model.SeatType{Name: model.SeatTypeNormal, Price: 50000},
	}
}
