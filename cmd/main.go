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

	acceptBookingRequestHandler "github.com/m04kA/companion-booking/internal/api/handlers/accept_booking_request"
	addFavoriteHandler "github.com/m04kA/companion-booking/internal/api/handlers/add_favorite"
	cancelBookingHandler "github.com/m04kA/companion-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/companion-booking/internal/api/handlers/create_booking"
	createBookingRequestHandler "github.com/m04kA/companion-booking/internal/api/handlers/create_booking_request"
	createSlotHandler "github.com/m04kA/companion-booking/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/companion-booking/internal/api/handlers/delete_slot"
	getApplicationHandler "github.com/m04kA/companion-booking/internal/api/handlers/get_application"
	getAvailableSlotsHandler "github.com/m04kA/companion-booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/companion-booking/internal/api/handlers/get_booking"
	getBookingRequestHandler "github.com/m04kA/companion-booking/internal/api/handlers/get_booking_request"
	getCompanionSlotsHandler "github.com/m04kA/companion-booking/internal/api/handlers/get_companion_slots"
	getMeHandler "github.com/m04kA/companion-booking/internal/api/handlers/get_me"
	getVerificationHandler "github.com/m04kA/companion-booking/internal/api/handlers/get_verification"
	listApplicationsHandler "github.com/m04kA/companion-booking/internal/api/handlers/list_applications"
	listBookingRequestsHandler "github.com/m04kA/companion-booking/internal/api/handlers/list_booking_requests"
	listBookingsHandler "github.com/m04kA/companion-booking/internal/api/handlers/list_bookings"
	listCompanionsHandler "github.com/m04kA/companion-booking/internal/api/handlers/list_companions"
	listFavoritesHandler "github.com/m04kA/companion-booking/internal/api/handlers/list_favorites"
	listMySlotsHandler "github.com/m04kA/companion-booking/internal/api/handlers/list_my_slots"
	listServicesHandler "github.com/m04kA/companion-booking/internal/api/handlers/list_services"
	listVerificationsHandler "github.com/m04kA/companion-booking/internal/api/handlers/list_verifications"
	pendingApprovalsHandler "github.com/m04kA/companion-booking/internal/api/handlers/pending_approvals"
	rejectBookingRequestHandler "github.com/m04kA/companion-booking/internal/api/handlers/reject_booking_request"
	removeFavoriteHandler "github.com/m04kA/companion-booking/internal/api/handlers/remove_favorite"
	reviewApplicationHandler "github.com/m04kA/companion-booking/internal/api/handlers/review_application"
	reviewVerificationHandler "github.com/m04kA/companion-booking/internal/api/handlers/review_verification"
	submitApplicationHandler "github.com/m04kA/companion-booking/internal/api/handlers/submit_application"
	submitVerificationHandler "github.com/m04kA/companion-booking/internal/api/handlers/submit_verification"
	switchActiveRoleHandler "github.com/m04kA/companion-booking/internal/api/handlers/switch_active_role"
	updateBookingStatusHandler "github.com/m04kA/companion-booking/internal/api/handlers/update_booking_status"
	updateSlotHandler "github.com/m04kA/companion-booking/internal/api/handlers/update_slot"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/auth"
	"github.com/m04kA/companion-booking/internal/config"
	"github.com/m04kA/companion-booking/internal/domain"
	accountRepo "github.com/m04kA/companion-booking/internal/infra/storage/account"
	applicationRepo "github.com/m04kA/companion-booking/internal/infra/storage/application"
	bookingRepo "github.com/m04kA/companion-booking/internal/infra/storage/booking"
	bookingRequestRepo "github.com/m04kA/companion-booking/internal/infra/storage/bookingrequest"
	favoriteRepo "github.com/m04kA/companion-booking/internal/infra/storage/favorite"
	slotRepo "github.com/m04kA/companion-booking/internal/infra/storage/slot"
	verificationRepo "github.com/m04kA/companion-booking/internal/infra/storage/verification"
	"github.com/m04kA/companion-booking/internal/integrations/notifier"
	accessService "github.com/m04kA/companion-booking/internal/service/access"
	accountsService "github.com/m04kA/companion-booking/internal/service/accounts"
	availabilityService "github.com/m04kA/companion-booking/internal/service/availability"
	bookingRequestsService "github.com/m04kA/companion-booking/internal/service/bookingrequests"
	bookingsService "github.com/m04kA/companion-booking/internal/service/bookings"
	catalogService "github.com/m04kA/companion-booking/internal/service/catalog"
	favoritesService "github.com/m04kA/companion-booking/internal/service/favorites"
	verificationService "github.com/m04kA/companion-booking/internal/service/verification"
	acceptBookingRequestUC "github.com/m04kA/companion-booking/internal/usecase/accept_booking_request"
	createBookingUC "github.com/m04kA/companion-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/companion-booking/internal/usecase/get_available_slots"
	"github.com/m04kA/companion-booking/pkg/dbmetrics"
	"github.com/m04kA/companion-booking/pkg/logger"
	"github.com/m04kA/companion-booking/pkg/metrics"
	"github.com/m04kA/companion-booking/pkg/txmanager"
)

const rateLimiterIdle = 10 * time.Minute

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

	log.Info("Starting companion-booking...")
	log.Info("Configuration loaded from config.toml")

	catalog, err := domain.NewServiceCatalog(cfg.Catalog.Services)
	if err != nil {
		log.Fatal("Invalid service catalog: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	bookingMetrics := metrics.NewBookingRecorder(metricsCollector)

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

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	accountRepository := accountRepo.NewRepository(wrappedDB)
	verificationRepository := verificationRepo.NewRepository(wrappedDB)
	applicationRepository := applicationRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	bookingRequestRepository := bookingRequestRepo.NewRepository(wrappedDB)
	favoriteRepository := favoriteRepo.NewRepository(wrappedDB)

	// Нотификатор: RabbitMQ или запись событий в лог
	var publisher notifier.Publisher = notifier.NewLogPublisher(log)
	if cfg.Notifier.Enabled {
		rabbit, err := notifier.NewRabbitPublisher(cfg.Notifier.URL, cfg.Notifier.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to notifier: %v", err)
		}
		defer rabbit.Close()
		publisher = rabbit
		log.Info("Notifier connected (exchange=%s)", cfg.Notifier.Exchange)
	}
	dispatcher := notifier.NewDispatcher(publisher, bookingMetrics, log)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TTL())

	// Инициализируем сервисы
	access := accessService.NewResolver(accountRepository, verificationRepository, applicationRepository, log)

	accountsSvc := accountsService.NewService(accountRepository, tokens, txMgr, log)
	verificationSvc := verificationService.NewService(
		verificationRepository,
		applicationRepository,
		accountRepository,
		access,
		catalog,
		auth.HashSecret,
		dispatcher,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.NewService(slotRepository, access, txMgr, log)
	catalogSvc := catalogService.NewService(catalog, applicationRepository, slotRepository, access, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		bookingRequestRepository,
		access,
		dispatcher,
		bookingMetrics,
		txMgr,
		log,
	)
	bookingRequestSvc := bookingRequestsService.NewService(bookingRequestRepository, access, dispatcher, txMgr, log)
	favoriteSvc := favoritesService.NewService(favoriteRepository, accountRepository, access, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		access,
		dispatcher,
		bookingMetrics,
		txMgr,
		cfg.Booking.PlatformFeePercent,
		log,
	)
	acceptBookingRequestUseCase := acceptBookingRequestUC.NewUseCase(
		bookingRequestRepository,
		createBookingUseCase,
		access,
		dispatcher,
		bookingMetrics,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		slotRepository,
		access,
		log,
	)

	// Инициализируем handlers
	getMe := getMeHandler.NewHandler(accountsSvc, log)
	switchActiveRole := switchActiveRoleHandler.NewHandler(accountsSvc, log)

	submitVerification := submitVerificationHandler.NewHandler(verificationSvc, log)
	getVerification := getVerificationHandler.NewHandler(verificationSvc, log)
	submitApplication := submitApplicationHandler.NewHandler(verificationSvc, log)
	getApplication := getApplicationHandler.NewHandler(verificationSvc, log)
	listVerifications := listVerificationsHandler.NewHandler(verificationSvc, log)
	reviewVerification := reviewVerificationHandler.NewHandler(verificationSvc, log)
	listApplications := listApplicationsHandler.NewHandler(verificationSvc, log)
	reviewApplication := reviewApplicationHandler.NewHandler(verificationSvc, log)

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listCompanions := listCompanionsHandler.NewHandler(catalogSvc, log)
	getCompanionSlots := getCompanionSlotsHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)

	listMySlots := listMySlotsHandler.NewHandler(availabilitySvc, log)
	createSlot := createSlotHandler.NewHandler(availabilitySvc, log)
	updateSlot := updateSlotHandler.NewHandler(availabilitySvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(availabilitySvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	pendingApprovals := pendingApprovalsHandler.NewHandler(bookingSvc, log)

	createBookingRequest := createBookingRequestHandler.NewHandler(bookingRequestSvc, log)
	listBookingRequests := listBookingRequestsHandler.NewHandler(bookingRequestSvc, log)
	getBookingRequest := getBookingRequestHandler.NewHandler(bookingRequestSvc, log)
	acceptBookingRequest := acceptBookingRequestHandler.NewHandler(acceptBookingRequestUseCase, log)
	rejectBookingRequest := rejectBookingRequestHandler.NewHandler(bookingRequestSvc, log)

	addFavorite := addFavoriteHandler.NewHandler(favoriteSvc, log)
	removeFavorite := removeFavoriteHandler.NewHandler(favoriteSvc, log)
	listFavorites := listFavoritesHandler.NewHandler(favoriteSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Лимит на создание бронирований и запросов, ключ - аккаунт
	limited := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		limited = func(h http.HandlerFunc) http.Handler { return limiter.Limit(h) }

		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					limiter.Cleanup(rateLimiterIdle)
				case <-stopMetricsCh:
					return
				}
			}
		}()
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	// --- Аккаунт ---
	protected.HandleFunc("/me", getMe.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/active-role", switchActiveRole.Handle).Methods(http.MethodPost)

	// --- Верификация клиента и заявка компаньона ---
	protected.HandleFunc("/me/verification", getVerification.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/verification", submitVerification.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/me/companion-application", getApplication.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/companion-application", submitApplication.Handle).Methods(http.MethodPut)

	// --- Администрирование ---
	protected.HandleFunc("/admin/verifications", listVerifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/verifications/{accountId}/review", reviewVerification.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/applications", listApplications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/applications/{applicationId}/review", reviewApplication.Handle).Methods(http.MethodPost)

	// --- Каталог компаньонов ---
	protected.HandleFunc("/companions", listCompanions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companions/{companionId}/slots", getCompanionSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companions/{companionId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Расписание компаньона ---
	protected.HandleFunc("/companion/slots", listMySlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companion/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/companion/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/companion/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/companion/pending-approvals", pendingApprovals.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.Handle("/bookings", limited(createBooking.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Запросы на бронирование ---
	protected.Handle("/booking-requests", limited(createBookingRequest.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/booking-requests", listBookingRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/booking-requests/{requestId}", getBookingRequest.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/booking-requests/{requestId}/accept", acceptBookingRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-requests/{requestId}/reject", rejectBookingRequest.Handle).Methods(http.MethodPost)

	// --- Избранное ---
	protected.HandleFunc("/favorites", listFavorites.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/favorites/{companionId}", addFavorite.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/favorites/{companionId}", removeFavorite.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор статистики пула и очистку лимитера
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
