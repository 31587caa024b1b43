// Package notify publishes booking events to RabbitMQ.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const DefaultQueue = "booking.confirmed"

// BookingConfirmedEvent 訂位寫入資料庫後發佈的事件
type BookingConfirmedEvent struct {
	TicketID      string    `json:"ticket_id"`
	ShowingTimeID int       `json:"showing_time_id"`
	MovieName     string    `json:"movie_name"`
	CinemaName    string    `json:"cinema_name"`
	ShowingTime   string    `json:"showing_time"`
	Email         string    `json:"email"`
	Seats         []string  `json:"seats"`
	TotalPrice    int64     `json:"total_price"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

func NewBookingConfirmedEvent(b *model.Booking, at time.Time) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		TicketID:      b.TicketID.String(),
		ShowingTimeID: b.ShowingTimeID,
		MovieName:     b.MovieName,
		CinemaName:    b.CinemaName,
		ShowingTime:   b.ShowingTime,
		Email:         b.Email,
		Seats:         b.SeatLabels,
		TotalPrice:    b.TotalPrice,
		ConfirmedAt:   at.UTC(),
	}
}

type Publisher interface {
	// 發佈 booking.confirmed；失敗只回傳錯誤，不影響已寫入的訂位
	PublishBookingConfirmed(ctx context.Context, booking *model.Booking) error
	Close() error
}

type AMQPPublisherImpl struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

// NewPublisher conn 為 nil 時回傳不發佈的實作
func NewPublisher(conn *amqp.Connection, queue string) Publisher {
	if conn == nil {
		return nopPublisher{}
	}
	if queue == "" {
		queue = DefaultQueue
	}
	return &AMQPPublisherImpl{
		conn:  conn,
		queue: queue,
		log:   logger.WithComponent("notify"),
	}
}

// channel 延遲建立；斷線後下一次發佈會重新開啟
func (p *AMQPPublisherImpl) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// durable：broker 重啟後訊息仍在
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", p.queue, err)
	}

	p.ch = ch
	return ch, nil
}

func (p *AMQPPublisherImpl) PublishBookingConfirmed(ctx context.Context, booking *model.Booking) error {
	body, err := json.Marshal(NewBookingConfirmedEvent(booking, time.Now()))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		p.log.Error("publish failed", zap.String("ticket_id", booking.TicketID.String()), zap.Error(err))
		return err
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    booking.TicketID.String(),
		Body:         body,
	})
	if err != nil {
		p.log.Error("publish failed", zap.String("ticket_id", booking.TicketID.String()), zap.Error(err))
		return err
	}

	p.log.Debug("booking.confirmed published", zap.String("ticket_id", booking.TicketID.String()))
	return nil
}

func (p *AMQPPublisherImpl) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}

type nopPublisher struct{}

func (nopPublisher) PublishBookingConfirmed(context.Context, *model.Booking) error { return nil }
func (nopPublisher) Close() error { return nil }
