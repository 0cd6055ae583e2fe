package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/salonhub/booking-engine/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/salonhub/booking-engine/internal/api/handlers/confirm_booking"
	selectSlotHandler "github.com/salonhub/booking-engine/internal/api/handlers/select_slot"
	"github.com/salonhub/booking-engine/internal/api/middleware"
	"github.com/salonhub/booking-engine/internal/config"
	"github.com/salonhub/booking-engine/internal/infra/sessionstore"
	bookingRepo "github.com/salonhub/booking-engine/internal/infra/storage/booking"
	catalogRepo "github.com/salonhub/booking-engine/internal/infra/storage/catalog"
	usageClient "github.com/salonhub/booking-engine/internal/integrations/usagetracker"
	availabilityService "github.com/salonhub/booking-engine/internal/service/availability"
	cancelBookingUC "github.com/salonhub/booking-engine/internal/usecase/cancel_booking"
	confirmBookingUC "github.com/salonhub/booking-engine/internal/usecase/confirm_booking"
	selectSlotUC "github.com/salonhub/booking-engine/internal/usecase/select_slot"
	"github.com/salonhub/booking-engine/pkg/bookingcode"
	"github.com/salonhub/booking-engine/pkg/logger"
	"github.com/salonhub/booking-engine/pkg/metrics"
	"github.com/salonhub/booking-engine/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting booking-engine...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к Redis (хранилище выбора слота)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционного клиента сервиса учёта квот
	usage := usageClient.NewClient(
		cfg.UsageTracker.URL,
		time.Duration(cfg.UsageTracker.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UsageTracker=%s timeout=%ds)",
		cfg.UsageTracker.URL, cfg.UsageTracker.Timeout)

	// Инициализируем репозитории и хранилище сессий
	bookingRepository := bookingRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	sessions := sessionstore.NewStore(redisClient)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(bookingRepository, catalogRepository, log)

	// Инициализируем use cases
	selectSlotUseCase := selectSlotUC.NewUseCase(
		sessions,
		availabilitySvc,
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		sessions,
		bookingRepository,
		catalogRepository,
		txMgr,
		bookingcode.NewGenerator(),
		cfg.Booking.RetryAttempts,
		time.Duration(cfg.Booking.RetryBaseDelay)*time.Millisecond,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingRepository, txMgr, log)

	// Инициализируем handlers
	var bookingMetrics confirmBookingHandler.BookingMetrics = confirmBookingHandler.NopMetrics{}
	if cfg.Metrics.Enabled {
		bookingMetrics = metricsCollector
	}

	selectSlot := selectSlotHandler.NewHandler(selectSlotUseCase, usage, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, bookingMetrics, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все операции требуют идентификатор клиента из диалогового пайплайна
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Выбор слота: консультативная проверка + сохранение выбора с TTL
	protected.HandleFunc("/slots/select", selectSlot.Handle).Methods(http.MethodPost)

	// Подтверждение бронирования: транзакционная фиксация выбранного слота
	protected.HandleFunc("/bookings/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования по коду: слот освобождается
	protected.HandleFunc("/bookings/cancel", cancelBooking.Handle).Methods(http.MethodPost)

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
