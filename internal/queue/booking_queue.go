package queue

import (
	"context"

	"go-gin-cinema-booking/internal/model"
)

type Delivery struct {
	Data *model.Booking
	Ack  func()
	Nack func(requeue bool)
}

type BookingQueue interface {
	// 發送已預留的訂位到隊列，由 worker 寫入資料庫
	PublishBooking(ctx context.Context, booking *model.Booking) error
	// 訂閱訂位隊列
	SubscribeBookings(ctx context.Context) (<-chan Delivery, error)
}

// MemoryBookingQueueImpl 單一程序內的隊列，重啟後未處理的訂位會遺失
type MemoryBookingQueueImpl struct {
	ch chan *model.Booking
}

func NewMemoryBookingQueue(bufferSize int) BookingQueue {
	return &MemoryBookingQueueImpl{
		ch: make(chan *model.Booking, bufferSize),
	}
}

func (q *MemoryBookingQueueImpl) PublishBooking(ctx context.Context, booking *model.Booking) error {
	select {
	case q.ch <- booking:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryBookingQueueImpl) SubscribeBookings(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case booking, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: booking,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							// 另開 goroutine 放回，避免 buffer 滿時卡住 worker
							go func() {
								select {
								case q.ch <- booking:
								case <-ctx.Done():
								}
							}()
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
