package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dancespiele/internal/api"
	"dancespiele/internal/bot"
	"dancespiele/internal/config"
	"dancespiele/internal/kraken"
	"dancespiele/internal/notify"
	"dancespiele/internal/repository"
	"dancespiele/internal/service"
	"dancespiele/internal/store"
	"dancespiele/internal/websocket"
	"dancespiele/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", utils.Err(err))
	}

	// Инициализация логгера
	logger := utils.InitGlobalLogger(utils.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	defer logger.Sync()

	// Инициализация базы данных (журнал операций)
	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database",
			utils.String("dsn", cfg.Database.DSNWithoutPassword()),
			utils.Err(err),
		)
	}
	defer db.Close()

	logger.Info("connected to database", utils.String("dsn", cfg.Database.DSNWithoutPassword()))

	// Redis: пороги прибыли и результаты celery задач
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.Fatal("failed to connect to redis", utils.String("addr", cfg.Redis.Addr), utils.Err(err))
	}
	cancelPing()

	logger.Info("connected to redis", utils.String("addr", cfg.Redis.Addr))

	kv := store.NewRedisKV(rdb)
	thresholdStore := store.NewThresholdStore(kv)
	taskResults := store.NewTaskResultStore(kv)

	// Клиент Kraken
	creds, err := kraken.LoadCredentials(cfg.Kraken.KeysPath, cfg.Kraken.Account, cfg.Security.EncryptionKey)
	if err != nil {
		logger.Fatal("failed to load kraken credentials",
			utils.String("path", cfg.Kraken.KeysPath),
			utils.String("account", cfg.Kraken.Account),
			utils.Err(err),
		)
	}

	krakenClient, err := kraken.NewClient(creds, kraken.ClientConfig{
		BaseURL:   cfg.Kraken.BaseURL,
		Timeout:   cfg.Kraken.Timeout,
		RateLimit: cfg.Engine.RateLimit,
		RateBurst: cfg.Engine.RateBurst,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create kraken client", utils.Err(err))
	}

	// Диспетчер уведомлений
	notifier, amqpConn, err := initNotifier(cfg, taskResults, logger)
	if err != nil {
		logger.Fatal("failed to init notifier", utils.String("mode", cfg.Notify.Mode), utils.Err(err))
	}
	if amqpConn != nil {
		defer amqpConn.Close()
	}

	logger.Info("notifier ready", utils.String("mode", cfg.Notify.Mode))

	// Репозиторий и сервисы
	eventRepo := repository.NewEventRepository(db)
	thresholdService := service.NewThresholdService(thresholdStore)
	eventService := service.NewEventService(eventRepo)

	// WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	// Движок защиты позиций
	engine := bot.New(
		krakenClient,
		thresholdStore,
		notifier,
		eventRepo,
		hub,
		cfg.Engine.PassInterval,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go engine.Run(ctx)

	// Настройка зависимостей для API
	deps := &api.Dependencies{
		ThresholdService: thresholdService,
		EventService:     eventService,
		Engine:           engine,
		Hub:              hub,
		APITokenHash:     cfg.Security.APITokenHash,
	}

	router := api.SetupRoutes(deps)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запуск сервера в отдельной горутине
	go func() {
		logger.Info("starting server", utils.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", utils.Err(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", utils.Err(err))
	}

	logger.Info("server exited")
}

// initDatabase создает подключение к базе данных журнала
func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// initNotifier создает диспетчер уведомлений по режиму из конфигурации.
// Для queue-режима возвращает AMQP соединение, чтобы main закрыл его
// при завершении.
func initNotifier(cfg *config.Config, taskResults *store.TaskResultStore, logger *utils.Logger) (notify.Notifier, *amqp.Connection, error) {
	switch cfg.Notify.Mode {
	case config.NotifyModeQueue:
		conn, err := amqp.Dial(cfg.Notify.AMQPURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to amqp broker: %w", err)
		}

		publisher, err := notify.NewAMQPPublisher(conn, cfg.Notify.QueueName)
		if err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("failed to create amqp publisher: %w", err)
		}

		notifier := notify.NewQueueNotifier(publisher, taskResults, cfg.Notify.QueueName, cfg.Notify.Recipient, logger)
		return notifier, conn, nil

	case config.NotifyModeMail:
		notifier := notify.NewMailNotifier(cfg.Notify.MailURL, cfg.Notify.JWTSecret, cfg.Notify.Recipient, cfg.Notify.Timeout, logger)
		return notifier, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown notify mode: %s", cfg.Notify.Mode)
	}
}
