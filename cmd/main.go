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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/AgendaLite-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/AgendaLite-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/AgendaLite-BookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/AgendaLite-BookingService/internal/api/handlers/get_customer_bookings"
	getServiceSlotsHandler "github.com/m04kA/AgendaLite-BookingService/internal/api/handlers/get_service_slots"
	getServicesHandler "github.com/m04kA/AgendaLite-BookingService/internal/api/handlers/get_services"
	"github.com/m04kA/AgendaLite-BookingService/internal/api/middleware"
	"github.com/m04kA/AgendaLite-BookingService/internal/config"
	bookingRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/service"
	timeslotRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/timeslot"
	bookingsService "github.com/m04kA/AgendaLite-BookingService/internal/service/bookings"
	catalogService "github.com/m04kA/AgendaLite-BookingService/internal/service/catalog"
	cancelBookingUC "github.com/m04kA/AgendaLite-BookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/AgendaLite-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/AgendaLite-BookingService/pkg/dbmetrics"
	"github.com/m04kA/AgendaLite-BookingService/pkg/logger"
	"github.com/m04kA/AgendaLite-BookingService/pkg/metrics"
	"github.com/m04kA/AgendaLite-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/AgendaLite-BookingService/pkg/txmanager"
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

	log.Info("Starting AgendaLite-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

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

	// Инициализируем репозитории (с метриками или без)
	var (
		serviceRepository *serviceRepo.Repository
		slotRepository    *timeslotRepo.Repository
		bookingRepository *bookingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		slotRepository = timeslotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		serviceRepository = serviceRepo.NewRepository(db)
		slotRepository = timeslotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем read-сервисы
	catalogSvc := catalogService.NewService(
		serviceRepository,
		slotRepository,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		serviceRepository,
		log,
	)

	// Инициализируем use cases движка бронирований
	createBookingUseCase := createBookingUC.NewUseCase(
		serviceRepository,
		slotRepository,
		bookingRepository,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getServiceSlots := getServiceSlotsHandler.NewHandler(catalogSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Каталог услуг ---
	// Список активных услуг
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Доступные слоты услуги
	api.HandleFunc("/services/{serviceId}/slots", getServiceSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования клиентом
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	api.HandleFunc("/customers/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
