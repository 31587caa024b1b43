package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-cinema-booking/config"
	"go-gin-cinema-booking/internal/cache"
	"go-gin-cinema-booking/internal/database"
	"go-gin-cinema-booking/internal/handler"
	"go-gin-cinema-booking/internal/notify"
	"go-gin-cinema-booking/internal/queue"
	"go-gin-cinema-booking/internal/repository"
	"go-gin-cinema-booking/internal/service"
	"go-gin-cinema-booking/internal/worker"
	"go-gin-cinema-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	defer logger.L.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	amqpConn, err := database.InitAMQP(&cfg.AMQP)
	if err != nil {
		log.Fatalf("Failed to initialize rabbitmq: %v", err)
	}
	if amqpConn != nil {
		defer amqpConn.Close()
	}
	publisher := notify.NewPublisher(amqpConn, cfg.AMQP.Queue)
	defer publisher.Close()

	bookingQueue, err := newBookingQueue(&cfg.Queue, rdb)
	if err != nil {
		log.Fatalf("Failed to initialize booking queue: %v", err)
	}

	inventory := cache.NewShowingInventoryManager(rdb)

	showingRepo := repository.NewShowingRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	comboRepo := repository.NewComboRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	seatService := service.NewSeatService(showingRepo, seatRepo, inventory)
	comboService := service.NewComboService(comboRepo, inventory)
	customerService := service.NewCustomerService(customerRepo)
	bookingService := service.NewBookingService(pool, bookingRepo, showingRepo, seatRepo, comboRepo, customerRepo,
		inventory, bookingQueue, publisher)

	// 套餐庫存預熱
	if err := comboService.WarmUpStock(ctx); err != nil {
		log.Fatalf("Failed to warm up combo stock: %v", err)
	}

	bookingWorker := worker.NewBookingWorker(bookingService, bookingQueue)
	if err := bookingWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start booking worker: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	handler.NewShowingHandler(seatService).RegisterRoutes(router)
	handler.NewCatalogHandler(comboService, customerService).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.L.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.L.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L.Error("server shutdown failed", zap.Error(err))
	}
	bookingWorker.Wait()
}

func newBookingQueue(cfg *config.QueueConfig, rdb *redis.Client) (queue.BookingQueue, error) {
	if cfg.Driver == "memory" {
		return queue.NewMemoryBookingQueue(cfg.BufferSize), nil
	}
	return queue.NewRedisStreamBookingQueue(rdb, cfg.ConsumerID, nil)
}
