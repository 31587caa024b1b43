package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Queue    QueueConfig
	AMQP     AMQPConfig
	Client   ClientConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// QueueConfig 訂位佇列設定；Driver 為 memory 或 redis
type QueueConfig struct {
	Driver     string
	BufferSize int
	ConsumerID string
}

// AMQPConfig booking.confirmed 事件發佈設定，URL 為空時不發佈
type AMQPConfig struct {
	URL   string
	Queue string
}

// ClientConfig 售票終端（kiosk）使用的設定
type ClientConfig struct {
	BaseURL       string
	Timeout       time.Duration
	RowLabels     []string
	ColumnsPerRow int
	StrictPairs   bool
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env 不存在時忽略
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Queue:    GetQueueConfig(),
		AMQP:     GetAMQPConfig(),
		Client:   GetClientConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
		MaxConns: 5,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Port: "0", GinMode: "test"},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Queue:    QueueConfig{Driver: "memory", BufferSize: 10},
		Client:   GetClientConfig(),
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnv("APP_PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "release"),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: getEnvInt("DB_MAX_CONNS", 25),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetQueueConfig() QueueConfig {
	return QueueConfig{
		Driver:     getEnv("BOOKING_QUEUE_DRIVER", "redis"),
		BufferSize: getEnvInt("BOOKING_QUEUE_BUFFER", 1000),
		ConsumerID: getEnv("BOOKING_QUEUE_CONSUMER_ID", ""),
	}
}

func GetAMQPConfig() AMQPConfig {
	return AMQPConfig{
		URL:   getEnv("RABBITMQ_URL", ""),
		Queue: getEnv("RABBITMQ_BOOKING_QUEUE", "booking.confirmed"),
	}
}

func GetClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:       strings.TrimRight(getEnv("BOOKING_API_URL", "http://localhost:8080"), "/"),
		Timeout:       getEnvDuration("BOOKING_API_TIMEOUT", 10*time.Second),
		RowLabels:     splitLabels(getEnv("ROOM_ROWS", "A,B,C,D,E,F,G,H,I,J")),
		ColumnsPerRow: getEnvInt("ROOM_COLUMNS", 14),
		StrictPairs:   getEnv("SWEETBOX_STRICT_PAIRS", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func splitLabels(s string) []string {
	labels := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}
