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

	bookingSessionHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/booking_session"
	exportConfirmationHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/export_confirmation"
	formatPhoneHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/format_phone"
	getDayAvailabilityHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/get_day_availability"
	getMonthCalendarHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/get_month_calendar"
	listServicesHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/list_services"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/config"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingWizard/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingWizard/internal/infra/storage/memory"
	catalogClient "github.com/m04kA/SMC-BookingWizard/internal/integrations/catalog"
	exportService "github.com/m04kA/SMC-BookingWizard/internal/service/export"
	sessionsService "github.com/m04kA/SMC-BookingWizard/internal/service/sessions"
	"github.com/m04kA/SMC-BookingWizard/internal/usecase/availability"
	"github.com/m04kA/SMC-BookingWizard/internal/usecase/booking_wizard"
	finalizeBookingUC "github.com/m04kA/SMC-BookingWizard/internal/usecase/finalize_booking"
	"github.com/m04kA/SMC-BookingWizard/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
	"github.com/m04kA/SMC-BookingWizard/pkg/metrics"
	"github.com/m04kA/SMC-BookingWizard/pkg/txmanager"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// reservationStore хранилище бронирований: PostgreSQL или память процесса
type reservationStore interface {
	availability.ReservationSource
	finalizeBookingUC.BookingRepository
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
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

	log.Info("Starting SMC-BookingWizard...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		recorder         booking_wizard.Recorder
		gauge            sessionsService.SessionGauge
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		recorder = metricsCollector
		gauge = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище бронирований
	var (
		store reservationStore
		txMgr finalizeBookingUC.TransactionManager
	)

	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// С nil metrics обёртка работает как обычный *sql.DB
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		store = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		seed, err := reservationsFromConfig(cfg.Availability.Reservations)
		if err != nil {
			log.Fatal("Failed to parse reservations: %v", err)
		}
		store = memory.NewStore(seed)
		txMgr = memory.NewTxManager()
		log.Warn("Database disabled, bookings are kept in memory (seeded reservations: %d)", len(seed))
	}

	// Каталог услуг
	static := catalogClient.NewStatic(servicesFromConfig(cfg.Catalog.Services))
	var catalog interface {
		sessionsService.Catalog
		listServicesHandler.Catalog
	} = static
	if cfg.Catalog.URL != "" {
		client := catalogClient.NewClient(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second, log)
		catalog = catalogClient.NewFallback(client, static, log)
		log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)
	}

	// Правила доступности
	policy, err := policyFromConfig(cfg.Availability)
	if err != nil {
		log.Fatal("Failed to build availability policy: %v", err)
	}
	engine := availability.NewEngine(policy, store, nil, log)
	log.Info("Availability policy: slots=%d, excluded_weekdays=%v, blackout_dates=%d",
		len(policy.SlotGrid), policy.ExcludedWeekdays, len(policy.BlackoutDates))

	// Инициализируем use cases и сервисы
	finalizeBookingUseCase := finalizeBookingUC.NewUseCase(
		store,
		engine,
		txMgr,
		nil,
		log,
		time.Duration(cfg.Wizard.FinalizeDelayMs)*time.Millisecond,
	)

	sessionsSvc := sessionsService.NewService(
		catalog,
		engine,
		finalizeBookingUseCase,
		recorder,
		gauge,
		nil,
		log,
		sessionsService.Config{
			TTL:             time.Duration(cfg.Wizard.SessionTTL) * time.Minute,
			FinalizeTimeout: time.Duration(cfg.Wizard.FinalizeTimeout) * time.Second,
		},
	)

	exportSvc := exportService.NewService(exportService.Config{
		SalonName:      cfg.Contact.SalonName,
		Location:       cfg.Contact.Location,
		WhatsAppNumber: cfg.Contact.WhatsAppNumber,
	})

	// Очистка простаивающих сессий
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Wizard.SessionTTL > 0 {
		go sessionsSvc.Run(sweepCtx, time.Duration(cfg.Wizard.SweepInterval)*time.Second)
		log.Info("Session sweeper started (ttl=%dm, interval=%ds)", cfg.Wizard.SessionTTL, cfg.Wizard.SweepInterval)
	}

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalog, log)
	getMonthCalendar := getMonthCalendarHandler.NewHandler(engine, log)
	getDayAvailability := getDayAvailabilityHandler.NewHandler(engine, log)
	formatPhone := formatPhoneHandler.NewHandler(log)
	bookingSession := bookingSessionHandler.NewHandler(sessionsSvc, log)
	exportConfirmation := exportConfirmationHandler.NewHandler(sessionsSvc, exportSvc, log)

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

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			TrustForwardedFor: cfg.RateLimit.TrustForwardedFor,
			IdleTTL:           time.Duration(cfg.RateLimit.IdleTTL) * time.Second,
		}, log)
		api.Use(limiter.Middleware())
		if cfg.RateLimit.IdleTTL > 0 {
			go limiter.Run(sweepCtx, time.Duration(cfg.RateLimit.CleanupInterval)*time.Second)
		}
		log.Info("Rate limiter enabled (rps=%.1f, burst=%d, trust_forwarded_for=%t)",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustForwardedFor)
	}

	// ============================================================
	// СПРАВОЧНЫЕ ДАННЫЕ
	// ============================================================

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar/{year}/{month}", getMonthCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getDayAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/phone/format", formatPhone.Handle).Methods(http.MethodGet)

	// ============================================================
	// МАСТЕР БРОНИРОВАНИЯ
	// ============================================================

	api.HandleFunc("/sessions", bookingSession.Start).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", bookingSession.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", bookingSession.Delete).Methods(http.MethodDelete)

	// Шаг 1 -> 2
	api.HandleFunc("/sessions/{sessionId}/service", bookingSession.SelectService).Methods(http.MethodPost)
	// Шаг 2 -> 3
	api.HandleFunc("/sessions/{sessionId}/date", bookingSession.SelectDate).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/time", bookingSession.SelectTime).Methods(http.MethodPost)
	// Шаг 3 -> 4
	api.HandleFunc("/sessions/{sessionId}/details", bookingSession.SubmitDetails).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/errors/{field}", bookingSession.ClearFieldError).Methods(http.MethodDelete)

	api.HandleFunc("/sessions/{sessionId}/back", bookingSession.GoBack).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/new", bookingSession.StartNewBooking).Methods(http.MethodPost)

	// --- Подтверждение ---
	api.HandleFunc("/sessions/{sessionId}/confirmation/calendar.ics", exportConfirmation.ICS).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}/confirmation/links", exportConfirmation.Links).Methods(http.MethodGet)

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

	stopSweep()
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully (active sessions: %d)", sessionsSvc.Count())
}

func servicesFromConfig(in []config.ServiceConfig) []domain.Service {
	out := make([]domain.Service, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Service{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
			Category:        s.Category,
		})
	}
	return out
}

func policyFromConfig(in config.AvailabilityConfig) (availability.Policy, error) {
	periods := make([]availability.Period, 0, len(in.Periods))
	for _, p := range in.Periods {
		periods = append(periods, availability.Period{
			Open:  types.TimeString(p.Open),
			Close: types.TimeString(p.Close),
		})
	}

	grid, err := availability.BuildSlotGrid(periods, in.SlotStepMinutes)
	if err != nil {
		return availability.Policy{}, err
	}
	weekdays, err := in.Weekdays()
	if err != nil {
		return availability.Policy{}, err
	}
	blackouts, err := in.Blackouts()
	if err != nil {
		return availability.Policy{}, err
	}

	return availability.Policy{
		ExcludedWeekdays: weekdays,
		BlackoutDates:    blackouts,
		SlotGrid:         grid,
	}, nil
}

func reservationsFromConfig(in []config.ReservationConfig) ([]memory.Reservation, error) {
	out := make([]memory.Reservation, 0, len(in))
	for _, r := range in {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, fmt.Errorf("reservation date %q: %w", r.Date, err)
		}
		slots := make([]types.TimeString, 0, len(r.Slots))
		for _, s := range r.Slots {
			slot, err := types.NewTimeStringFromString(s)
			if err != nil {
				return nil, fmt.Errorf("reservation %s: %w", r.Date, err)
			}
			slots = append(slots, slot)
		}
		out = append(out, memory.Reservation{Date: date, Slots: slots})
	}
	return out, nil
}
