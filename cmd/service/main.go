// File: cmd/service/main.go
// @title        Inventory Hub API
// @version      1.0
// @description  商品庫存與使用者管理的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-hub/internal/cache"
	"inventory-hub/internal/config"
	"inventory-hub/internal/database"
	"inventory-hub/internal/events"
	"inventory-hub/internal/logging"
	"inventory-hub/internal/router"
	"inventory-hub/internal/service"
	"inventory-hub/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "inventory-hub/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// 每則事件送往 Kafka 的上限時間
const publishTimeout = 5 * time.Second

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	newWorkerPool   = worker.NewPool
	newPublisher    = func(brokers []string, topic string) events.Publisher {
		if len(brokers) == 0 {
			return events.NopPublisher{}
		}
		return events.NewKafkaPublisher(brokers, topic)
	}
	startServer = serveUntilSignal
	exitFunc    = os.Exit
)

// serveUntilSignal 收到 SIGINT/SIGTERM 後優雅關閉
func serveUntilSignal(e *echo.Echo, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	// DB_RESET=true 時先回滾全部再重建
	if cfg.ResetSchema {
		if err := rollbackFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("RollbackAll 失敗: %w", err)
		}
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	// AsyncPublisher.Close 會先排空 worker pool 再關閉 Kafka writer
	publisher := events.NewAsyncPublisher(
		newPublisher(cfg.KafkaBrokers, cfg.KafkaTopic),
		newWorkerPool(cfg.WorkerCount, publishTimeout),
		logger,
	)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("關閉 event publisher 失敗", "error", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())

	router.Setup(e, router.Deps{
		DB:          db,
		Cache:       rdb,
		Sessions:    service.NewSessions(rdb, cfg.JWTSecret, cfg.SessionTTL),
		Publisher:   publisher,
		RequireAuth: cfg.RequireAuth,
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	logger.Info("server starting", "addr", cfg.HTTPAddr, "require_auth", cfg.RequireAuth, "kafka", len(cfg.KafkaBrokers) > 0)
	return startServer(e, cfg.HTTPAddr)
}

func main() {
	if err := run(); err != nil {
		slog.Error("service exited", "error", err)
		exitFunc(1)
	}
}
