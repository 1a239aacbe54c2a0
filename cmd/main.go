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

	approveExceptionHandler "github.com/salonbw/SBW-SchedulingService/internal/api/handlers/approve_exception"
	checkConflictsHandler "github.com/salonbw/SBW-SchedulingService/internal/api/handlers/check_conflicts"
	createExceptionHandler "github.com/salonbw/SBW-SchedulingService/internal/api/handlers/create_exception"
	createTimeBlockHandler "github.com/salonbw/SBW-SchedulingService/internal/api/handlers/create_time_block"
	deleteTimeBlockHandler "github.com/salonbw/SBW-SchedulingService/internal/api/handlers/delete_time_block"
	getAvailabilityHandler "github.com/salonbw/SBW-SchedulingService/internal/api/handlers/get_availability"
	processMessagesHandler "github.com/salonbw/SBW-SchedulingService/internal/api/handlers/process_messages"
	rescheduleHandler "github.com/salonbw/SBW-SchedulingService/internal/api/handlers/reschedule_appointment"
	updateStatusHandler "github.com/salonbw/SBW-SchedulingService/internal/api/handlers/update_appointment_status"
	updateTimeBlockHandler "github.com/salonbw/SBW-SchedulingService/internal/api/handlers/update_time_block"
	"github.com/salonbw/SBW-SchedulingService/internal/api/middleware"
	"github.com/salonbw/SBW-SchedulingService/internal/config"
	appointmentRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/appointment"
	messageRuleRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/messagerule"
	timeblockRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/timeblock"
	timetableRepo "github.com/salonbw/SBW-SchedulingService/internal/infra/storage/timetable"
	catalogServiceClient "github.com/salonbw/SBW-SchedulingService/internal/integrations/catalogservice"
	notifierClient "github.com/salonbw/SBW-SchedulingService/internal/integrations/notifier"
	staffServiceClient "github.com/salonbw/SBW-SchedulingService/internal/integrations/staffservice"
	appointmentsService "github.com/salonbw/SBW-SchedulingService/internal/service/appointments"
	timeblocksService "github.com/salonbw/SBW-SchedulingService/internal/service/timeblocks"
	timetablesService "github.com/salonbw/SBW-SchedulingService/internal/service/timetables"
	checkConflictsUC "github.com/salonbw/SBW-SchedulingService/internal/usecase/check_conflicts"
	getAvailabilityUC "github.com/salonbw/SBW-SchedulingService/internal/usecase/get_availability"
	processMessagesUC "github.com/salonbw/SBW-SchedulingService/internal/usecase/process_messages"
	rescheduleUC "github.com/salonbw/SBW-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/salonbw/SBW-SchedulingService/pkg/dbmetrics"
	"github.com/salonbw/SBW-SchedulingService/pkg/logger"
	"github.com/salonbw/SBW-SchedulingService/pkg/metrics"
	"github.com/salonbw/SBW-SchedulingService/pkg/simpletxmanager"
	"github.com/salonbw/SBW-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SBW-SchedulingService...")
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

	// Инициализируем интеграционных клиентов
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s, CatalogService=%s, Notifier=%s)",
		cfg.StaffService.URL, cfg.CatalogService.URL, cfg.Notifier.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		timetableRepository   *timetableRepo.Repository
		timeblockRepository   *timeblockRepo.Repository
		messageRuleRepository *messageRuleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		timetableRepository = timetableRepo.NewRepository(wrappedDB)
		timeblockRepository = timeblockRepo.NewRepository(wrappedDB)
		messageRuleRepository = messageRuleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		timetableRepository = timetableRepo.NewRepository(db)
		timeblockRepository = timeblockRepo.NewRepository(db)
		messageRuleRepository = messageRuleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)
	timeblockSvc := timeblocksService.NewService(timeblockRepository, log)
	timetableSvc := timetablesService.NewService(timetableRepository, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		appointmentRepository,
		timetableRepository,
		timeblockRepository,
		staffClient,
		log,
	)
	checkConflictsUseCase := checkConflictsUC.NewUseCase(
		appointmentRepository,
		timetableRepository,
		timeblockRepository,
		log,
	)
	rescheduleUseCase := rescheduleUC.NewUseCase(
		appointmentRepository,
		timetableRepository,
		timeblockRepository,
		catalogClient,
		staffClient,
		txMgr,
		log,
	)
	processMessagesUseCase := processMessagesUC.NewUseCase(
		appointmentRepository,
		messageRuleRepository,
		notifyClient,
		staffClient,
		catalogClient,
		txMgr,
		log,
	)

	if cfg.Metrics.Enabled {
		checkConflictsUseCase = checkConflictsUseCase.WithMetrics(metricsCollector)
		rescheduleUseCase = rescheduleUseCase.WithMetrics(metricsCollector)
		processMessagesUseCase = processMessagesUseCase.WithMetrics(metricsCollector)
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	checkConflicts := checkConflictsHandler.NewHandler(checkConflictsUseCase, log)
	reschedule := rescheduleHandler.NewHandler(rescheduleUseCase, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentSvc, log)
	createTimeBlock := createTimeBlockHandler.NewHandler(timeblockSvc, log)
	updateTimeBlock := updateTimeBlockHandler.NewHandler(timeblockSvc, log)
	deleteTimeBlock := deleteTimeBlockHandler.NewHandler(timeblockSvc, log)
	createException := createExceptionHandler.NewHandler(timetableSvc, log)
	approveException := approveExceptionHandler.NewHandler(timetableSvc, log)
	processMessages := processMessagesHandler.NewHandler(processMessagesUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность сотрудника на дату
	api.HandleFunc("/employees/{employeeId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Проверка интервала-кандидата на конфликты
	api.HandleFunc("/employees/{employeeId}/conflicts",
		checkConflicts.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Визиты ---
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", reschedule.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// --- Блокировки времени ---
	protected.HandleFunc("/time-blocks", createTimeBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/time-blocks/{timeBlockId}", updateTimeBlock.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/time-blocks/{timeBlockId}", deleteTimeBlock.Handle).Methods(http.MethodDelete)

	// --- Исключения из графика ---
	protected.HandleFunc("/timetables/{timetableId}/exceptions", createException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/timetables/exceptions/{exceptionId}/approve", approveException.Handle).Methods(http.MethodPatch)

	// --- Автоматические сообщения ---
	protected.HandleFunc("/automatic-messages/process", processMessages.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/automatic-messages/{ruleId}/process", processMessages.Handle).Methods(http.MethodPost)

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
