package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkConflictHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_conflict"
	createSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_slot"
	healthHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/health"
	listMySlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_my_slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	checkConflictUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_conflict"
	createSlotUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
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

	startedAt := time.Now()
	log.Info("Starting SMC-AvailabilityService...")

	location, err := cfg.Availability.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Availability.Timezone, err)
	}
	log.Info("Availability checks use timezone %s", location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var dbCollector dbmetrics.Collector
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
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

	// Обёртка без collector'а работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)

	// Шина событий: уведомления в лог и, если заданы брокеры, в Kafka
	observers := []events.Observer{events.NewLogObserver(log)}
	var kafkaObserver *events.KafkaObserver
	if brokers := cfg.Events.BrokerList(); len(brokers) > 0 {
		kafkaObserver = events.NewKafkaObserver(
			brokers,
			cfg.Events.Topic,
			time.Duration(cfg.Events.WriteTimeout)*time.Second,
		)
		observers = append(observers, kafkaObserver)
		log.Info("Kafka publishing enabled (brokers=%v, topic=%s)", brokers, cfg.Events.Topic)
	}
	eventBus := events.NewBus(cfg.Events.BufferSize, log, metricsCollector, observers...)
	eventBus.Start()

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		slotRepository,
		txMgr,
		eventBus,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createSlotUseCase := createSlotUC.NewUseCase(
		slotRepository,
		txMgr,
		eventBus,
		metricsCollector,
		log,
	)

	checkConflictUseCase := checkConflictUC.NewUseCase(
		slotRepository,
		location,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createSlot := createSlotHandler.NewHandler(createSlotUseCase, log)
	listMySlots := listMySlotsHandler.NewHandler(availabilitySvc, log)
	checkConflict := checkConflictHandler.NewHandler(checkConflictUseCase, location, log)
	deleteSlot := deleteSlotHandler.NewHandler(availabilitySvc, log)
	health := healthHandler.NewHandler(wrappedDB, startedAt, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("/availability").Subrouter()
	protected.Use(middleware.Auth)

	// Создание слота доступности
	protected.HandleFunc("", createSlot.Handle).Methods(http.MethodPost)

	// Свои слоты
	protected.HandleFunc("/me", listMySlots.Handle).Methods(http.MethodGet)

	// Проверка доступности другого пользователя
	protected.HandleFunc("/check/{userId}", checkConflict.Handle).Methods(http.MethodGet)

	// Удаление слота
	protected.HandleFunc("/{id}", deleteSlot.Handle).Methods(http.MethodDelete)

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

	// Доставляем оставшиеся события, затем закрываем Kafka writer
	var writers []io.Closer
	if kafkaObserver != nil {
		writers = append(writers, kafkaObserver)
	}
	if err := events.Shutdown(shutdownCtx, eventBus, log, writers...); err != nil {
		log.Error("Event bus closed with undelivered events: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
