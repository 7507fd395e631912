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
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelRequestHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/cancel_request"
	changeStatusHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/change_appointment_status"
	checkAvailabilityHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/check_resource_availability"
	createAppointmentHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_available_slots"
	getCatalogHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_catalog"
	getRequestStatusHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/get_request_status"
	listAppointmentsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_appointments"
	listRequestsHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/list_requests"
	promoteRequestHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/promote_request"
	rescheduleHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/reschedule_appointment"
	streamChangesHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/stream_changes"
	submitRequestHandler "github.com/m04kA/SMC-ClinicService/internal/api/handlers/submit_request"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/config"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/infra/notify"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/client"
	requestRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/request"
	resourceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/resource"
	serviceTypeRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/servicetype"
	appointmentsService "github.com/m04kA/SMC-ClinicService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-ClinicService/internal/service/catalog"
	requestsService "github.com/m04kA/SMC-ClinicService/internal/service/requests"
	changeStatusUC "github.com/m04kA/SMC-ClinicService/internal/usecase/change_appointment_status"
	checkAvailabilityUC "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
	createAppointmentUC "github.com/m04kA/SMC-ClinicService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
	promoteRequestUC "github.com/m04kA/SMC-ClinicService/internal/usecase/promote_request"
	rescheduleUC "github.com/m04kA/SMC-ClinicService/internal/usecase/reschedule_appointment"
	submitRequestUC "github.com/m04kA/SMC-ClinicService/internal/usecase/submit_request"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/metrics"
	"github.com/m04kA/SMC-ClinicService/pkg/tracing"
	"github.com/m04kA/SMC-ClinicService/pkg/txmanager"
)

const (
	configPath      = "config.toml"
	rateLimitPrefix = "clinic:ratelimit:requests"
	sseHeartbeat    = 25 * time.Second
)

// Источник и получатель уведомлений: Redis или заглушки, если Redis выключен
type (
	changePublisher interface {
		Publish(ctx context.Context, event domain.ChangeEvent)
	}
	changeSubscriber interface {
		Subscribe(ctx context.Context, collections []string, callback func(domain.ChangeEvent)) error
	}
)

func main() {
	if path := os.Getenv("CLINIC_CONFIG"); path != "" {
		run(path)
		return
	}
	run(configPath)
}

func run(path string) {
	// Загружаем конфигурацию
	cfg, err := config.Load(path)
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

	log.Info("Starting SMC-ClinicService...")
	log.Info("Configuration loaded from %s", path)

	settings, err := cfg.ScheduleSettings()
	if err != nil {
		log.Fatal("Invalid schedule settings: %v", err)
	}
	log.Info("Schedule: %s-%s (last slot %s), step=%dm, weekdays %d-%d, daily limit=%d, tz=%s",
		settings.OpeningTime, settings.ClosingTime, settings.LastSlotStart, settings.SlotStepMinutes,
		settings.WeekdayFrom, settings.WeekdayTo, settings.DailyRequestLimit, settings.Location)

	// Инициализируем метрики (если включены); nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Трассировка (OTLP); при выключенной ставятся только пропагаторы
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled (otlp=%s, ratio=%.2f)", cfg.Tracing.OTLPEndpoint, cfg.Tracing.SampleRatio)
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Канал уведомлений об изменениях
	var (
		redisClient *redis.Client
		publisher   changePublisher  = notify.NopPublisher{}
		subscriber  changeSubscriber = notify.NopSubscriber{}
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Уведомления не влияют на корректность записи, поэтому стартуем без них
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		publisher = notify.NewRedisPublisher(redisClient, cfg.Redis.ChannelPrefix, log)
		subscriber = notify.NewSubscriber(redisClient, cfg.Redis.ChannelPrefix, log)
		log.Info("Change notifications enabled (redis=%s, prefix=%s)", cfg.Redis.Addr, cfg.Redis.ChannelPrefix)
	} else {
		log.Info("Redis disabled: change notifications are not published")
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	requestRepository := requestRepo.NewRepository(wrappedDB)
	resourceRepository := resourceRepo.NewRepository(wrappedDB)
	serviceTypeRepository := serviceTypeRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, settings, log)
	requestsSvc := requestsService.NewService(requestRepository, publisher, settings, log)
	catalogSvc := catalogService.NewService(resourceRepository, serviceTypeRepository, settings, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		appointmentRepository,
		resourceRepository,
		serviceTypeRepository,
		settings,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		requestRepository,
		settings,
		metricsCollector,
		log,
	)

	submitRequestUseCase := submitRequestUC.NewUseCase(
		requestRepository,
		getAvailableSlotsUseCase,
		txMgr,
		publisher,
		settings,
		log,
	)

	promoteRequestUseCase := promoteRequestUC.NewUseCase(
		requestRepository,
		appointmentRepository,
		resourceRepository,
		clientRepository,
		checkAvailabilityUseCase,
		txMgr,
		publisher,
		settings,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		resourceRepository,
		serviceTypeRepository,
		clientRepository,
		checkAvailabilityUseCase,
		txMgr,
		publisher,
		settings,
		log,
	)

	changeStatusUseCase := changeStatusUC.NewUseCase(
		appointmentRepository,
		resourceRepository,
		checkAvailabilityUseCase,
		txMgr,
		publisher,
		settings,
		log,
	)

	rescheduleUseCase := rescheduleUC.NewUseCase(
		appointmentRepository,
		resourceRepository,
		serviceTypeRepository,
		checkAvailabilityUseCase,
		txMgr,
		publisher,
		settings,
		log,
	)

	// Инициализируем handlers
	loc := settings.Location

	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	submitRequest := submitRequestHandler.NewHandler(submitRequestUseCase, loc, log)
	getRequestStatus := getRequestStatusHandler.NewHandler(requestsSvc, log)
	getPublicCatalog := getCatalogHandler.NewHandler(catalogSvc, false, log)

	getStaffCatalog := getCatalogHandler.NewHandler(catalogSvc, true, log)
	listRequests := listRequestsHandler.NewHandler(requestsSvc, log)
	cancelRequest := cancelRequestHandler.NewHandler(requestsSvc, log)
	promoteRequest := promoteRequestHandler.NewHandler(promoteRequestUseCase, loc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, loc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, loc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	changeStatus := changeStatusHandler.NewHandler(changeStatusUseCase, loc, log)
	reschedule := rescheduleHandler.NewHandler(rescheduleUseCase, loc, log)
	streamChanges := streamChangesHandler.NewHandler(subscriber, sseHeartbeat, log)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.Leeway)*time.Second, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Подача заявки (с ограничением частоты, если включено)
	var submit http.Handler = http.HandlerFunc(submitRequest.Handle)
	if cfg.RateLimit.Enabled {
		proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
		}
		counter := middleware.NewRedisWindowCounter(redisClient, time.Duration(cfg.RateLimit.Window)*time.Second)
		limiter := middleware.NewRateLimit(counter, cfg.RateLimit.Requests, rateLimitPrefix, cfg.RateLimit.FailOpen, proxies, log)
		submit = limiter.Middleware(submit)
		log.Info("Rate limit on public requests: %d per %ds (fail_open=%t)",
			cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.FailOpen)
	}
	api.Handle("/requests", submit).Methods(http.MethodPost)

	// Статус заявки по номеру
	api.HandleFunc("/requests/by-reference/{reference}", getRequestStatus.Handle).Methods(http.MethodGet)

	// Услуги, ресурсы и часы работы
	api.HandleFunc("/catalog", getPublicCatalog.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT сотрудника)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// --- Справочник для сотрудников (включая неактивные ресурсы) ---
	protected.HandleFunc("/resources", getStaffCatalog.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/resources/{id}/availability-check", checkAvailability.Handle).Methods(http.MethodGet)

	// --- Заявки ---
	protected.HandleFunc("/requests", listRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/requests/{id}/cancel", cancelRequest.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/requests/{id}/promote", promoteRequest.Handle).Methods(http.MethodPost)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/status", changeStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}/schedule", reschedule.Handle).Methods(http.MethodPut)

	// --- Поток изменений (SSE) ---
	protected.HandleFunc("/changes", streamChanges.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := newHTTPServer(addr, otelhttp.NewHandler(r, cfg.Metrics.ServiceName), cfg.Server)

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

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
