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

	cancelSessionHandler "github.com/kruglovd/CB-SchedulingService/internal/api/handlers/cancel_session"
	createSessionHandler "github.com/kruglovd/CB-SchedulingService/internal/api/handlers/create_session"
	getAvailabilityHandler "github.com/kruglovd/CB-SchedulingService/internal/api/handlers/get_availability"
	getClientSessionsHandler "github.com/kruglovd/CB-SchedulingService/internal/api/handlers/get_client_sessions"
	getConsultantSessionsHandler "github.com/kruglovd/CB-SchedulingService/internal/api/handlers/get_consultant_sessions"
	getScheduleConfigHandler "github.com/kruglovd/CB-SchedulingService/internal/api/handlers/get_schedule_config"
	getSessionHandler "github.com/kruglovd/CB-SchedulingService/internal/api/handlers/get_session"
	updateAvailabilityHandler "github.com/kruglovd/CB-SchedulingService/internal/api/handlers/update_availability"
	"github.com/kruglovd/CB-SchedulingService/internal/api/middleware"
	"github.com/kruglovd/CB-SchedulingService/internal/config"
	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	availabilityCache "github.com/kruglovd/CB-SchedulingService/internal/infra/cache/availability"
	availabilityRepo "github.com/kruglovd/CB-SchedulingService/internal/infra/storage/availability"
	cancellationRepo "github.com/kruglovd/CB-SchedulingService/internal/infra/storage/cancellation"
	sessionRepo "github.com/kruglovd/CB-SchedulingService/internal/infra/storage/session"
	directoryClient "github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
	notifierClient "github.com/kruglovd/CB-SchedulingService/internal/integrations/notifier"
	scheduleService "github.com/kruglovd/CB-SchedulingService/internal/service/schedule"
	sessionsService "github.com/kruglovd/CB-SchedulingService/internal/service/sessions"
	cancelSessionUC "github.com/kruglovd/CB-SchedulingService/internal/usecase/cancel_session"
	replaceOverridesUC "github.com/kruglovd/CB-SchedulingService/internal/usecase/replace_overrides"
	reserveSessionUC "github.com/kruglovd/CB-SchedulingService/internal/usecase/reserve_session"
	resolveDayUC "github.com/kruglovd/CB-SchedulingService/internal/usecase/resolve_day"
	"github.com/kruglovd/CB-SchedulingService/pkg/dbmetrics"
	"github.com/kruglovd/CB-SchedulingService/pkg/logger"
	"github.com/kruglovd/CB-SchedulingService/pkg/metrics"
	"github.com/kruglovd/CB-SchedulingService/pkg/simpletxmanager"
	"github.com/kruglovd/CB-SchedulingService/pkg/txmanager"
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

	log.Info("Starting CB-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Валидируем рабочее расписание на старте: сервис с кривой сеткой не живет
	scheduleCfg, err := cfg.Schedule.ToDomain()
	if err != nil {
		log.Fatal("Invalid schedule configuration: %v", err)
	}
	log.Info("Schedule: %s-%s, slot %d min, closed on %s",
		scheduleCfg.OpenTime, scheduleCfg.CloseTime, scheduleCfg.SlotDurationMinutes, scheduleCfg.ClosedWeekday)

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

	// Инициализируем интеграционных клиентов
	directory := directoryClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	notify := notifierClient.NewClient(
		cfg.Notifications.URL,
		time.Duration(cfg.Notifications.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Directory=%s timeout=%ds, Notifications=%s timeout=%ds)",
		cfg.Directory.URL, cfg.Directory.Timeout, cfg.Notifications.URL, cfg.Notifications.Timeout)

	// Кеш доступности (Redis, опционально)
	type dayCache interface {
		GetDay(ctx context.Context, consultantID int64, date time.Time) ([]domain.ResolvedSlot, bool)
		SetDay(ctx context.Context, consultantID int64, date time.Time, slots []domain.ResolvedSlot)
		InvalidateDay(ctx context.Context, consultantID int64, date time.Time)
		Close() error
	}
	var cache dayCache
	if cfg.Cache.Enabled {
		cache = availabilityCache.New(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB, cfg.Cache.TTL(), log)
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
	} else {
		cache = availabilityCache.NewNoop()
		log.Info("Availability cache disabled")
	}
	defer cache.Close()

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		sessionRepository      *sessionRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		cancellationRepository *cancellationRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		cancellationRepository = cancellationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		cancellationRepository = cancellationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	resolver := scheduleService.NewService(scheduleCfg, sessionRepository, availabilityRepository, log)
	sessionsSvc := sessionsService.NewService(sessionRepository, directory, log)

	// Инициализируем use cases
	reserveSessionUseCase := reserveSessionUC.NewUseCase(
		sessionRepository,
		resolver,
		directory,
		notify,
		cache,
		txMgr,
		log,
	)

	cancelSessionUseCase := cancelSessionUC.NewUseCase(
		sessionRepository,
		cancellationRepository,
		notify,
		cache,
		txMgr,
		time.Local,
		log,
	)

	resolveDayUseCase := resolveDayUC.NewUseCase(
		resolver,
		directory,
		cache,
		log,
	)

	replaceOverridesUseCase := replaceOverridesUC.NewUseCase(
		availabilityRepository,
		sessionRepository,
		resolver,
		directory,
		cache,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(resolveDayUseCase, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(replaceOverridesUseCase, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(resolver, log)
	createSession := createSessionHandler.NewHandler(reserveSessionUseCase, log)
	cancelSession := cancelSessionHandler.NewHandler(cancelSessionUseCase, log)
	getSession := getSessionHandler.NewHandler(sessionsSvc, log)
	getClientSessions := getClientSessionsHandler.NewHandler(sessionsSvc, log)
	getConsultantSessions := getConsultantSessionsHandler.NewHandler(sessionsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Статус слотов дня консультанта
	api.HandleFunc("/consultants/{consultantId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Рабочее расписание
	api.HandleFunc("/consultants/{consultantId}/schedule-config",
		getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Сессии ---
	// Резервирование слота
	protected.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)

	// Получение сессии по ID
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Отмена сессии с расчетом возврата
	protected.HandleFunc("/sessions/{sessionId}/cancel", cancelSession.Handle).Methods(http.MethodPost)

	// История сессий клиента
	protected.HandleFunc("/users/{userId}/sessions", getClientSessions.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для консультантов) ---
	// Журнал сессий консультанта
	protected.HandleFunc("/consultants/{consultantId}/sessions", getConsultantSessions.Handle).Methods(http.MethodGet)

	// Замена оверрайдов доступности на дату
	protected.HandleFunc("/consultants/{consultantId}/availability", updateAvailability.Handle).Methods(http.MethodPut)

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
