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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approveAppointmentHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/approve_appointment"
	cancelAppointmentHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/get_appointment"
	getAvailableDatesHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/get_available_slots"
	getEquipmentAppointmentsHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/get_equipment_appointments"
	getScheduleConfigHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/get_schedule_config"
	getUserAppointmentsHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/get_user_appointments"
	listEquipmentHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/list_equipment"
	manageScheduleHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/manage_schedule"
	updateAppointmentHandler "github.com/hubtracker/scheduling-service/internal/api/handlers/update_appointment"
	"github.com/hubtracker/scheduling-service/internal/api/middleware"
	"github.com/hubtracker/scheduling-service/internal/config"
	appointmentRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/appointment"
	equipmentRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/equipment"
	scheduleRepo "github.com/hubtracker/scheduling-service/internal/infra/storage/schedule"
	mailerClient "github.com/hubtracker/scheduling-service/internal/integrations/mailer"
	userDirectoryClient "github.com/hubtracker/scheduling-service/internal/integrations/userdirectory"
	appointmentsService "github.com/hubtracker/scheduling-service/internal/service/appointments"
	scheduleService "github.com/hubtracker/scheduling-service/internal/service/schedule"
	createAppointmentUC "github.com/hubtracker/scheduling-service/internal/usecase/create_appointment"
	getAvailableDatesUC "github.com/hubtracker/scheduling-service/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/hubtracker/scheduling-service/internal/usecase/get_available_slots"
	"github.com/hubtracker/scheduling-service/pkg/dbmetrics"
	"github.com/hubtracker/scheduling-service/pkg/localtime"
	"github.com/hubtracker/scheduling-service/pkg/logger"
	"github.com/hubtracker/scheduling-service/pkg/metrics"
	"github.com/hubtracker/scheduling-service/pkg/simpletxmanager"
	"github.com/hubtracker/scheduling-service/pkg/txmanager"
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

	log.Info("Starting HubTracker-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Конвертер времени: все заявки хранятся в UTC, API работает в часовом
	// поясе организации
	converter, err := localtime.NewConverter(cfg.Scheduling.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Organization timezone: %s", cfg.Scheduling.Timezone)

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

	// Применяем миграции
	if cfg.Database.MigrationsDir != "" {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set migration dialect: %v", err)
		}
		if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied from %s", cfg.Database.MigrationsDir)
	}

	// Инициализируем интеграционных клиентов
	userClient := userDirectoryClient.NewClient(
		cfg.UserDirectory.URL,
		time.Duration(cfg.UserDirectory.Timeout)*time.Second,
		log,
	)
	mailClient := mailerClient.NewClient(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		cfg.SMTP.Enabled,
		log,
	)
	log.Info("Integration clients initialized (UserDirectory=%s timeout=%ds, SMTP enabled=%v)",
		cfg.UserDirectory.URL, cfg.UserDirectory.Timeout, cfg.SMTP.Enabled)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		equipmentRepository   *equipmentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		equipmentRepository = equipmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		equipmentRepository = equipmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		scheduleRepository,
		txMgr,
		converter,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		converter,
		log,
	)

	// Инициализируем use cases
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		equipmentRepository,
		scheduleRepository,
		converter,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		equipmentRepository,
		scheduleRepository,
		converter,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		equipmentRepository,
		scheduleRepository,
		userClient,
		mailClient,
		txMgr,
		converter,
		log,
	)

	// Инициализируем handlers
	listEquipment := listEquipmentHandler.NewHandler(equipmentRepository, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getEquipmentAppointments := getEquipmentAppointmentsHandler.NewHandler(appointmentsSvc, converter, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	approveAppointment := approveAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	manageSchedule := manageScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список оборудования
	api.HandleFunc("/equipment", listEquipment.Handle).Methods(http.MethodGet)

	// Текущая конфигурация расписания
	api.HandleFunc("/schedule/config", getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Доступность ---
	// Доступные даты для оборудования
	protected.HandleFunc("/equipment/{equipmentId}/available-dates",
		getAvailableDates.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату (режим зависит от параметра start_time)
	protected.HandleFunc("/equipment/{equipmentId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Заявки ---
	// Создание заявки
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение заявки по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена заявки
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История заявок пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют роль admin)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin(log))

	// --- Управление заявками ---
	admin.HandleFunc("/equipment/{equipmentId}/appointments",
		getEquipmentAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/approve",
		approveAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}",
		updateAppointment.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{appointmentId}",
		deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Управление расписанием ---
	admin.HandleFunc("/schedule/hours/{dayOfWeek}",
		manageSchedule.HandleUpsertHours).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/hours/{dayOfWeek}",
		manageSchedule.HandleDeleteHours).Methods(http.MethodDelete)
	admin.HandleFunc("/schedule/blocked-dates",
		manageSchedule.HandleAddBlockedDate).Methods(http.MethodPost)
	admin.HandleFunc("/schedule/blocked-dates/{blockedDateId}",
		manageSchedule.HandleRemoveBlockedDate).Methods(http.MethodDelete)
	admin.HandleFunc("/schedule/policy",
		manageSchedule.HandleUpdatePolicy).Methods(http.MethodPut)

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
