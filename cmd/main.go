package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/api"
	"github.com/m04kA/ShareIt-BookingService/internal/config"
	bookingRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/ShareIt-BookingService/internal/infra/storage/database"
	itemRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/item"
	userRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/user"
	bookingsService "github.com/m04kA/ShareIt-BookingService/internal/service/bookings"
	itemBookingsService "github.com/m04kA/ShareIt-BookingService/internal/service/itembookings"
	itemsService "github.com/m04kA/ShareIt-BookingService/internal/service/items"
	usersService "github.com/m04kA/ShareIt-BookingService/internal/service/users"
	createBookingUC "github.com/m04kA/ShareIt-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/ShareIt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/ShareIt-BookingService/pkg/events"
	"github.com/m04kA/ShareIt-BookingService/pkg/logger"
	"github.com/m04kA/ShareIt-BookingService/pkg/metrics"
	"github.com/m04kA/ShareIt-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/ShareIt-BookingService/pkg/txmanager"
)

type publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("SHAREIT_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ShareIt-BookingService...")
	log.Info("Configuration loaded from %s", configPath)

	dialect, err := psqlbuilder.ParseDialect(cfg.Database.Driver)
	if err != nil {
		log.Fatal("Unsupported database driver: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	db, err := database.Open(startupCtx, dialect, cfg.Database.DSN(), database.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if dialect == psqlbuilder.SQLite {
		log.Info("Successfully connected to database (sqlite path=%s)", cfg.Database.Path)
	} else {
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	log.Debug("Connection pool: max_open=%d, max_idle=%d, lifetime=%ds",
		cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(startupCtx, db, dialect); err != nil {
			log.Fatal("Failed to apply schema: %v", err)
		}
		log.Info("Database schema is up to date")
	}

	// С nil коллектором обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	var txOpts []txmanager.Option
	if dialect == psqlbuilder.SQLite {
		txOpts = append(txOpts, txmanager.WithoutIsolation())
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB, txOpts...)

	// Публикация событий (если включена)
	var eventPublisher publisher = events.Noop{}
	if cfg.Events.Enabled {
		p, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		eventPublisher = p
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	}
	defer eventPublisher.Close()

	// Инициализируем репозитории
	qb := psqlbuilder.New(dialect)
	bookingRepository := bookingRepo.NewRepository(wrappedDB, qb)
	userRepository := userRepo.NewRepository(wrappedDB, qb)
	itemRepository := itemRepo.NewRepository(wrappedDB, qb)

	// Инициализируем сервисы
	bookingOpts := []bookingsService.Option{}
	if metricsCollector != nil {
		bookingOpts = append(bookingOpts, bookingsService.WithTransitionRecorder(metricsCollector))
	}
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userRepository,
		txMgr,
		eventPublisher,
		log,
		bookingOpts...,
	)
	itemBookingsSvc := itemBookingsService.NewService(bookingRepository, &itemBookingsService.RealTimeProvider{}, log)
	itemSvc := itemsService.NewService(itemRepository, userRepository, itemBookingsSvc, txMgr, log)
	userSvc := usersService.NewService(userRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		itemRepository,
		txMgr,
		eventPublisher,
		log,
		createBookingUC.WithOverlapCheck(cfg.Booking.ForbidOverlap),
	)

	// Настраиваем роутер
	r := api.NewRouter(api.Dependencies{
		CreateBooking: createBookingUseCase,
		Bookings:      bookingSvc,
		Users:         userSvc,
		Items:         itemSvc,
		AdminUserIDs:  cfg.Server.AdminUserIDs,
	}, log, api.MetricsOptions{
		Collector:   metricsCollector,
		ServiceName: cfg.Metrics.ServiceName,
		Path:        cfg.Metrics.Path,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
