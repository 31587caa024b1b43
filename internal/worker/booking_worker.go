package worker

import (
	"context"

	"go-gin-cinema-booking/internal/queue"
	"go-gin-cinema-booking/internal/service"
	"go-gin-cinema-booking/pkg/logger"

	"go.uber.org/zap"
)

type BookingWorker interface {
	// 訂閱訂位隊列；ctx 結束時停止
	Start(ctx context.Context) error
	// 等待處理中的訊息完成
	Wait()
}

type BookingWorkerImpl struct {
	service service.BookingService
	queue   queue.BookingQueue
	done    chan struct{}
}

func NewBookingWorker(service service.BookingService, queue queue.BookingQueue) BookingWorker {
	return &BookingWorkerImpl{
		service: service,
		queue:   queue,
		done:    make(chan struct{}),
	}
}

func (w *BookingWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeBookings(ctx)
	if err != nil {
		close(w.done)
		return err
	}

	go func() {
		defer close(w.done)
		log := logger.WithComponent("worker")

		for msg := range msgs {
			booking := msg.Data
			err := w.service.PersistBooking(ctx, booking)

			switch {
			case err == nil:
				msg.Ack()
			case service.IsPermanent(err):
				// 重試也不會成功：釋放預留、記錄為 cancelled 後丟棄
				log.Error("booking rejected by database",
					zap.String("request_id", booking.RequestID), zap.Error(err))
				if cancelErr := w.service.CancelBooking(context.Background(), booking); cancelErr != nil {
					log.Error("failed to cancel booking",
						zap.String("request_id", booking.RequestID), zap.Error(cancelErr))
				}
				msg.Nack(false)
			default:
				// 資料庫暫時連不上，交回隊列重試
				log.Warn("persist failed, requeue",
					zap.String("request_id", booking.RequestID), zap.Error(err))
				msg.Nack(true)
			}
		}
	}()
	return nil
}

func (w *BookingWorkerImpl) Wait() {
	<-w.done
}
