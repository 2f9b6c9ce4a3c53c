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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createFieldHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/create_field"
	generateSlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/generate_slots"
	getCitySlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_city_slots"
	getFieldHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_field"
	getFieldSlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_field_slots"
	getMyFieldsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_my_fields"
	getMyReservationsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_my_reservations"
	getReservationHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_reservation"
	listCitiesHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/list_cities"
	reserveSlotHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/reserve_slot"
	searchFieldsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/search_fields"
	setDayPricingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/set_day_pricing"
	updateFieldHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/update_field"
	upsertSlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/upsert_slots"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/config"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/broker"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/cache"
	availabilityRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/availability"
	cityRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/city"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/migrations"
	reservationRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/identity"
	availabilityService "github.com/m04kA/SMC-FieldBookingService/internal/service/availability"
	fieldsService "github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	reservationsService "github.com/m04kA/SMC-FieldBookingService/internal/service/reservations"
	generateSlotsUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/generate_slots"
	reserveSlotUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/reserve_slot"
	searchFieldsUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/search_fields"
	setDayPricingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/set_day_pricing"
	upsertSlotsUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/upsert_slots"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/retry"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

// browseCache кэш публичного просмотра (Redis или Noop)
type browseCache interface {
	Get(ctx context.Context, namespace string, params interface{}, dest interface{}) (key string, hit bool, err error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}

// eventPublisher публикация доменных событий (RabbitMQ или Noop)
type eventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, v interface{}) error
	Close() error
}

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

	log.Info("Starting SMC-FieldBookingService...")

	// Метрики: nil-коллектор безопасен, все методы превращаются в no-op
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Apply(startupCtx, db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	retrier := retry.New(retry.Config{
		InitialInterval: time.Duration(cfg.Booking.RetryInitialInterval) * time.Millisecond,
		MaxInterval:     time.Duration(cfg.Booking.RetryMaxInterval) * time.Millisecond,
		MaxRetries:      cfg.Booking.RetryMaxAttempts,
	}, domain.IsRetryable)

	// Кэш поиска (Redis) - опционален
	var browse browseCache = cache.Noop{}
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(startupCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		browse = cache.NewBrowseCache(redisClient, cfg.Redis.Prefix, time.Duration(cfg.Redis.TTL)*time.Second, metricsCollector)
		log.Info("Browse cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Публикация событий (RabbitMQ) - опциональна
	var publisher eventPublisher = broker.Noop{}
	if cfg.RabbitMQ.Enabled {
		p, err := broker.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, metricsCollector)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = p
		log.Info("Event publishing enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// Провайдер идентификации
	var authenticator middleware.Authenticator
	switch cfg.Auth.Mode {
	case config.AuthModeRemote:
		authenticator = identity.NewClient(cfg.Auth.IdentityURL, cfg.Auth.APIKey,
			time.Duration(cfg.Auth.Timeout)*time.Second, log)
		log.Info("Remote identity provider: %s", cfg.Auth.IdentityURL)
	default:
		authenticator = identity.NewJWTVerifier(cfg.Auth.JWTSecret)
		log.Info("Local JWT verification enabled")
	}

	// Репозитории
	cityRepository := cityRepo.NewRepository(wrappedDB)
	fieldRepository := fieldRepo.NewRepository(wrappedDB)
	slotRepository := availabilityRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)

	// Сервисы
	fieldsSvc := fieldsService.NewService(
		fieldRepository,
		cityRepository,
		slotRepository,
		browse,
		publisher,
		metricsCollector,
		txMgr,
		log,
		cfg.Booking.DefaultWindowDays,
		cfg.Booking.MaxWindowDays,
	)
	availabilitySvc := availabilityService.NewService(
		slotRepository,
		fieldRepository,
		cityRepository,
		browse,
		log,
	)
	reservationsSvc := reservationsService.NewService(reservationRepository, log)

	// Use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		fieldRepository,
		slotRepository,
		txMgr,
		retrier,
		publisher,
		browse,
		metricsCollector,
		log,
		cfg.Booking.DefaultWindowDays,
		cfg.Booking.MaxWindowDays,
	)
	upsertSlotsUseCase := upsertSlotsUC.NewUseCase(
		fieldRepository,
		slotRepository,
		reservationRepository,
		txMgr,
		retrier,
		browse,
		log,
	)
	setDayPricingUseCase := setDayPricingUC.NewUseCase(
		fieldRepository,
		slotRepository,
		txMgr,
		retrier,
		browse,
		log,
	)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		reservationRepository,
		slotRepository,
		txMgr,
		publisher,
		browse,
		metricsCollector,
		log,
	)
	searchFieldsUseCase := searchFieldsUC.NewUseCase(fieldRepository, browse, log)

	// Handlers
	listCities := listCitiesHandler.NewHandler(fieldsSvc, log)
	getCitySlots := getCitySlotsHandler.NewHandler(availabilitySvc, log)
	searchFields := searchFieldsHandler.NewHandler(searchFieldsUseCase, log)
	getField := getFieldHandler.NewHandler(fieldsSvc, log)
	getFieldSlots := getFieldSlotsHandler.NewHandler(availabilitySvc, log)
	createField := createFieldHandler.NewHandler(fieldsSvc, log)
	updateField := updateFieldHandler.NewHandler(fieldsSvc, log)
	getMyFields := getMyFieldsHandler.NewHandler(fieldsSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	upsertSlots := upsertSlotsHandler.NewHandler(upsertSlotsUseCase, log)
	setDayPricing := setDayPricingHandler.NewHandler(setDayPricingUseCase, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getMyReservations := getMyReservationsHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/cities", listCities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cities/{cityId:[0-9]+}/slots", getCitySlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields", searchFields.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId:[0-9]+}", getField.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId:[0-9]+}/slots", getFieldSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authenticator, log))

	// --- Поля и слоты (владелец) ---
	protected.HandleFunc("/fields", createField.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/fields/{fieldId:[0-9]+}", updateField.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/me/fields", getMyFields.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/fields/{fieldId:[0-9]+}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/fields/{fieldId:[0-9]+}/slots", upsertSlots.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/fields/{fieldId:[0-9]+}/slots/pricing", setDayPricing.Handle).Methods(http.MethodPatch)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", reserveSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/reservations", getMyReservations.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
