package main

import (
	"context"
	"database/sql"
	"flag"
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

	barberScheduleHandler "github.com/m04kA/barberflow/internal/api/handlers/barber_schedule"
	checkIntervalHandler "github.com/m04kA/barberflow/internal/api/handlers/check_interval"
	createBookingHandler "github.com/m04kA/barberflow/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/barberflow/internal/api/handlers/delete_booking"
	editBookingHandler "github.com/m04kA/barberflow/internal/api/handlers/edit_booking"
	getAvailableSlotsHandler "github.com/m04kA/barberflow/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/barberflow/internal/api/handlers/get_booking"
	getCalendarEventsHandler "github.com/m04kA/barberflow/internal/api/handlers/get_calendar_events"
	getDashboardHandler "github.com/m04kA/barberflow/internal/api/handlers/get_dashboard"
	getMonthBookingsHandler "github.com/m04kA/barberflow/internal/api/handlers/get_month_bookings"
	getStatisticsHandler "github.com/m04kA/barberflow/internal/api/handlers/get_statistics"
	listBarbersHandler "github.com/m04kA/barberflow/internal/api/handlers/list_barbers"
	listServicesHandler "github.com/m04kA/barberflow/internal/api/handlers/list_services"
	loginHandler "github.com/m04kA/barberflow/internal/api/handlers/login"
	manageServicesHandler "github.com/m04kA/barberflow/internal/api/handlers/manage_services"
	rescheduleBookingHandler "github.com/m04kA/barberflow/internal/api/handlers/reschedule_booking"
	staffUsersHandler "github.com/m04kA/barberflow/internal/api/handlers/staff_users"
	updateBookingStatusHandler "github.com/m04kA/barberflow/internal/api/handlers/update_booking_status"
	"github.com/m04kA/barberflow/internal/api/middleware"
	"github.com/m04kA/barberflow/internal/config"
	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/infra/loginguard"
	bookingRepo "github.com/m04kA/barberflow/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/barberflow/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/barberflow/internal/infra/storage/service"
	userRepo "github.com/m04kA/barberflow/internal/infra/storage/user"
	"github.com/m04kA/barberflow/internal/integrations/events"
	authService "github.com/m04kA/barberflow/internal/service/auth"
	availabilityService "github.com/m04kA/barberflow/internal/service/availability"
	bookingsService "github.com/m04kA/barberflow/internal/service/bookings"
	catalogService "github.com/m04kA/barberflow/internal/service/catalog"
	scheduleService "github.com/m04kA/barberflow/internal/service/schedule"
	staffService "github.com/m04kA/barberflow/internal/service/staff"
	createBookingUC "github.com/m04kA/barberflow/internal/usecase/create_booking"
	editBookingUC "github.com/m04kA/barberflow/internal/usecase/edit_booking"
	getAvailableSlotsUC "github.com/m04kA/barberflow/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/barberflow/internal/usecase/reschedule_booking"
	"github.com/m04kA/barberflow/pkg/dbmetrics"
	"github.com/m04kA/barberflow/pkg/logger"
	"github.com/m04kA/barberflow/pkg/metrics"
	"github.com/m04kA/barberflow/pkg/simpletxmanager"
	"github.com/m04kA/barberflow/pkg/txmanager"
)

// bookingPublisher издатель событий бронирований (Kafka или no-op)
type bookingPublisher interface {
	Publish(ctx context.Context, event *events.BookingEvent) error
	Close() error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting BarberFlow...")
	log.Info("Configuration loaded from %s", *configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Salon timezone: %s", location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Репозитории и менеджер транзакций (с метриками или без)
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	scheduleRepository := scheduleRepo.NewRepository(executor)
	userRepository := userRepo.NewRepository(executor)
	serviceRepository := serviceRepo.NewRepository(executor)

	// Учет неудачных входов: Redis, если настроен, иначе память процесса
	policy := loginguard.Policy{
		MaxAttempts: cfg.Login.MaxAttempts,
		BlockFor:    time.Duration(cfg.Login.BlockMinutes) * time.Minute,
	}

	var guard authService.LoginGuard
	var rdb *redis.Client

	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		guard = loginguard.NewRedisGuard(rdb, policy, cfg.Login.KeyPrefix)
		log.Info("Login guard: redis at %s (max_attempts=%d, block=%dm)",
			cfg.Redis.Addr, cfg.Login.MaxAttempts, cfg.Login.BlockMinutes)
	} else {
		guard = loginguard.NewMemoryGuard(policy)
		log.Warn("Login guard: redis disabled, failed attempts are kept in memory of this instance")
	}

	// События бронирований
	var publisher bookingPublisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		publisher = events.NewPublisher(
			cfg.Events.Brokers,
			cfg.Events.Topic,
			time.Duration(cfg.Events.Timeout)*time.Second,
			log,
		)
		log.Info("Booking events enabled (brokers=%s, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		scheduleRepository,
		bookingRepository,
		availabilityService.Config{StrictClosingTime: cfg.Booking.StrictClosingTime},
		log,
	)
	catalogSvc := catalogService.NewService(userRepository, serviceRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, catalogSvc, log)
	authSvc := authService.NewService(userRepository, guard, log)
	staffSvc := staffService.NewService(userRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userRepository,
		serviceRepository,
		publisher,
		txMgr,
		location,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogSvc,
		availabilitySvc,
		getAvailableSlotsUC.Settings{
			DefaultIntervalMinutes:        cfg.Booking.DefaultIntervalMinutes,
			DefaultServiceDurationMinutes: cfg.Booking.DefaultServiceDurationMinutes,
			MaxIntervalMinutes:            cfg.Booking.MaxIntervalMinutes,
			Location:                      location,
		},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogSvc,
		availabilitySvc,
		txMgr,
		publisher,
		metricsCollector,
		location,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		txMgr,
		publisher,
		metricsCollector,
		location,
		log,
	)

	editBookingUseCase := editBookingUC.NewUseCase(
		bookingRepository,
		catalogSvc,
		availabilitySvc,
		txMgr,
		publisher,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем handlers
	listBarbers := listBarbersHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	login := loginHandler.NewHandler(authSvc, log)

	getCalendarEvents := getCalendarEventsHandler.NewHandler(bookingSvc, location, log)
	getMonthBookings := getMonthBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, location, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	checkInterval := checkIntervalHandler.NewHandler(availabilitySvc, location, log)
	getDashboard := getDashboardHandler.NewHandler(bookingSvc, log)
	barberSchedule := barberScheduleHandler.NewHandler(scheduleSvc, log)
	editBooking := editBookingHandler.NewHandler(editBookingUseCase, log)
	staffUsers := staffUsersHandler.NewHandler(staffSvc, log)
	manageServices := manageServicesHandler.NewHandler(catalogSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	clientIPResolver, err := middleware.NewClientIPResolver(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal("Invalid server.trusted_proxies: %v", err)
	}

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(clientIPResolver.Middleware)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Ограничение частоты для публичных записей и входа
	limited := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		defer limiter.Stop()
		limited = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limit enabled: %d req/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/barbers", listBarbers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Свободные слоты барбера на дату
	api.HandleFunc("/barbers/{barberId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования клиентом
	api.Handle("/bookings", limited(createBooking.Handle)).Methods(http.MethodPost)

	// Вход в админ-панель
	api.Handle("/auth/login", limited(login.Handle)).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-ID header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(userRepository, log))

	managers := middleware.RequireRoles(domain.RoleAdmin, domain.RoleReceptionist)
	admins := middleware.RequireRoles(domain.RoleAdmin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getCalendarEvents.Handle).Methods(http.MethodGet)
	admin.Handle("/bookings",
		managers(http.HandlerFunc(createBooking.HandleStaff))).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/calendar", getMonthBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	admin.Handle("/bookings/{bookingId:[0-9]+}/status",
		managers(http.HandlerFunc(updateBookingStatus.Handle))).Methods(http.MethodPatch)
	admin.Handle("/bookings/{bookingId:[0-9]+}/datetime",
		managers(http.HandlerFunc(rescheduleBooking.Handle))).Methods(http.MethodPatch)
	admin.Handle("/bookings/{bookingId:[0-9]+}",
		managers(http.HandlerFunc(deleteBooking.Handle))).Methods(http.MethodDelete)
	admin.Handle("/bookings/{bookingId:[0-9]+}",
		managers(http.HandlerFunc(editBooking.Handle))).Methods(http.MethodPut)

	// --- Dashboard и статистика ---
	admin.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)
	admin.Handle("/statistics", admins(http.HandlerFunc(getStatistics.Handle))).Methods(http.MethodGet)

	// --- Сотрудники ---
	admin.Handle("/users", admins(http.HandlerFunc(staffUsers.List))).Methods(http.MethodGet)
	admin.Handle("/users", admins(http.HandlerFunc(staffUsers.Create))).Methods(http.MethodPost)
	admin.Handle("/users/{userId:[0-9]+}", admins(http.HandlerFunc(staffUsers.Update))).Methods(http.MethodPut)
	admin.Handle("/users/{userId:[0-9]+}", admins(http.HandlerFunc(staffUsers.Delete))).Methods(http.MethodDelete)

	// --- Услуги ---
	admin.Handle("/services", admins(http.HandlerFunc(manageServices.List))).Methods(http.MethodGet)
	admin.Handle("/services", admins(http.HandlerFunc(manageServices.Create))).Methods(http.MethodPost)
	admin.Handle("/services/{serviceId:[0-9]+}", admins(http.HandlerFunc(manageServices.Update))).Methods(http.MethodPut)
	admin.Handle("/services/{serviceId:[0-9]+}", admins(http.HandlerFunc(manageServices.Delete))).Methods(http.MethodDelete)

	// --- Барберы: проверка интервала, расписание, отпуск ---
	admin.HandleFunc("/barbers/{barberId}/interval-availability", checkInterval.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/barbers/{barberId}/schedule", barberSchedule.Get).Methods(http.MethodGet)
	admin.Handle("/barbers/{barberId}/schedule/{day}",
		admins(http.HandlerFunc(barberSchedule.PutDay))).Methods(http.MethodPut)
	admin.Handle("/barbers/{barberId}/vacation",
		admins(http.HandlerFunc(barberSchedule.PutVacation))).Methods(http.MethodPut)
	admin.Handle("/barbers/{barberId}/vacation",
		admins(http.HandlerFunc(barberSchedule.DeleteVacation))).Methods(http.MethodDelete)

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

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
