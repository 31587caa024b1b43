package database

import (
	"fmt"

	"go-gin-cinema-booking/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

// InitAMQP 連線 RabbitMQ；URL 未設定時回傳 nil，不發佈訂位事件
func InitAMQP(cfg *config.AMQPConfig) (*amqp.Connection, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	return conn, nil
}
