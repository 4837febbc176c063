package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	batchSlotsHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/batch_slots"
	createReservationHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/create_reservation"
	getAdminSlotsHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/get_admin_slots"
	getConfigHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/get_config"
	getReservationHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/get_reservation"
	getReservationsHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/get_reservations"
	getSlotsHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/get_slots"
	getStatsHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/get_stats"
	saveQuoteHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/save_quote"
	signInHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/sign_in"
	signOutHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/sign_out"
	suggestQuoteHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/suggest_quote"
	toggleSlotHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/toggle_slot"
	updateReservationStatusHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/update_reservation_status"
	uploadPhotosHandler "github.com/m04kA/HappyStay-BookingService/internal/api/handlers/upload_photos"
	"github.com/m04kA/HappyStay-BookingService/internal/api/middleware"
	"github.com/m04kA/HappyStay-BookingService/internal/config"
	"github.com/m04kA/HappyStay-BookingService/internal/datalayer/local"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/auth"
	photoStore "github.com/m04kA/HappyStay-BookingService/internal/infra/storage/photos"
	"github.com/m04kA/HappyStay-BookingService/internal/integrations/quotewebhook"
	adminService "github.com/m04kA/HappyStay-BookingService/internal/service/admin"
	photosService "github.com/m04kA/HappyStay-BookingService/internal/service/photos"
	"github.com/m04kA/HappyStay-BookingService/internal/service/schema"
	createReservationUC "github.com/m04kA/HappyStay-BookingService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/HappyStay-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/HappyStay-BookingService/pkg/logger"
	"github.com/m04kA/HappyStay-BookingService/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config.toml")
	resetLocal := flag.Bool("reset-local-data", false, "wipe the local backend store and exit")
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

	log.Info("Starting HappyStay-BookingService...")
	log.Info("Configuration loaded from %s (backend=%s)", *configPath, cfg.Backend.Mode)

	schedule, err := cfg.Booking.Schedule()
	if err != nil {
		log.Fatal("Invalid booking schedule: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище фото общее для обоих режимов
	photos, err := photoStore.NewStore(cfg.Uploads.Dir, cfg.Uploads.PublicBaseURL, cfg.Uploads.ThumbnailSize, log)
	if err != nil {
		log.Fatal("Failed to initialize photo store: %v", err)
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	dl, err := newDataLayer(startCtx, backendDeps{
		cfg:      cfg,
		schedule: schedule,
		photos:   photos,
		tokens:   tokens,
		metrics:  metricsCollector,
		stopCh:   stopMetricsCh,
		log:      log,
	})
	cancelStart()
	if err != nil {
		log.Fatal("Failed to initialize data layer: %v", err)
	}
	defer func() {
		if err := dl.Close(); err != nil {
			log.Error("Failed to close data layer: %v", err)
		}
	}()

	if *resetLocal {
		localBackend, ok := dl.(*local.Backend)
		if !ok {
			log.Fatal("-reset-local-data works only with backend.mode=%s", config.BackendLocal)
		}
		if err := localBackend.ResetData(context.Background()); err != nil {
			log.Fatal("Failed to reset local data: %v", err)
		}
		log.Info("Local data reset")
		return
	}

	// Инициализируем интеграционных клиентов
	quoteNotifier := quotewebhook.NewClient(
		cfg.Webhook.QuoteURL,
		time.Duration(cfg.Webhook.Timeout)*time.Second,
		log,
	)
	if quoteNotifier.Enabled() {
		log.Info("Quote webhook enabled (timeout=%ds)", cfg.Webhook.Timeout)
	} else {
		log.Warn("Quote webhook is not configured, quotes will be saved without notification")
	}

	// Инициализируем сервисы
	adminSvc := adminService.NewService(dl, schedule, quoteNotifier, metricsCollector, log)
	photosSvc := photosService.NewService(dl, photosService.Limits{
		MaxPhotos:   cfg.Booking.MaxPhotos,
		MaxFileSize: cfg.Booking.MaxPhotoSize(),
	}, metricsCollector, log)

	validator := schema.New(schedule, schema.Limits{
		MinPhotos:       cfg.Booking.MinPhotos,
		MaxPhotos:       cfg.Booking.MaxPhotos,
		AllowedServices: cfg.Booking.AllowedServices,
	})

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		dl,
		validator,
		createReservationUC.CartLimits{
			MaxItems:        cfg.Booking.MaxCartItems,
			AllowedServices: cfg.Booking.AllowedServices,
		},
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(dl, schedule, log)

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	uploadPhotos := uploadPhotosHandler.NewHandler(photosSvc, cfg.Booking.MaxPhotoSize(), cfg.Booking.MaxPhotos, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getConfig := getConfigHandler.NewHandler(publicConfig(cfg))

	signIn := signInHandler.NewHandler(dl, log)
	signOut := signOutHandler.NewHandler(dl, log)
	getAdminSlots := getAdminSlotsHandler.NewHandler(adminSvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(adminSvc, log)
	blockAll := batchSlotsHandler.NewHandler(adminSvc, batchSlotsHandler.BlockAll, log)
	unblockAll := batchSlotsHandler.NewHandler(adminSvc, batchSlotsHandler.UnblockAll, log)
	getReservations := getReservationsHandler.NewHandler(adminSvc, log)
	getReservation := getReservationHandler.NewHandler(adminSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(adminSvc, log)
	suggestQuote := suggestQuoteHandler.NewHandler(adminSvc, log)
	saveQuote := saveQuoteHandler.NewHandler(adminSvc, log)
	getStats := getStatsHandler.NewHandler(adminSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check: проверяет слой данных
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
		defer cancel()
		if err := dl.Ping(ctx); err != nil {
			log.Error("GET /health - Data layer is unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "service indisponible")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": cfg.Backend.Mode})
	}).Methods(http.MethodGet)

	// Загруженные фото
	uploadsPrefix := strings.TrimRight(cfg.Uploads.PublicBaseURL, "/") + "/"
	if strings.HasPrefix(uploadsPrefix, "/") {
		r.PathPrefix(uploadsPrefix).Handler(
			http.StripPrefix(uploadsPrefix, http.FileServer(http.Dir(cfg.Uploads.Dir))),
		).Methods(http.MethodGet)
	}

	// Ограничение частоты для публичных POST
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Limit(h) }
		log.Info("Rate limit enabled: %d req/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (форма бронирования)
	// ============================================================

	api.HandleFunc("/config", getConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	api.Handle("/photos", limit(uploadPhotos.Handle)).Methods(http.MethodPost)
	api.Handle("/reservations", limit(createReservation.Handle)).Methods(http.MethodPost)
	api.Handle("/admin/session", limit(signIn.Handle)).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("/admin").Subrouter()
	protected.Use(middleware.Auth(dl))

	protected.HandleFunc("/session", signOut.Handle).Methods(http.MethodDelete)

	// --- Слоты ---
	protected.HandleFunc("/slots", getAdminSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/block-all", blockAll.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/unblock-all", unblockAll.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}", toggleSlot.Handle).Methods(http.MethodPatch)

	// --- Резервации ---
	protected.HandleFunc("/reservations", getReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Сметы ---
	protected.HandleFunc("/reservations/{id}/quotes/suggestion", suggestQuote.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}/quotes", saveQuote.Handle).Methods(http.MethodPost)

	// --- Статистика ---
	protected.HandleFunc("/stats", getStats.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер; CORS оборачивает роутер целиком, чтобы отвечать на preflight
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.CORS.AllowedOrigins)(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	log.Info("Server stopped gracefully")
}

// publicConfig настройки формы для клиента
func publicConfig(cfg *config.Config) getConfigHandler.ConfigResponse {
	return getConfigHandler.ConfigResponse{
		TimeSlots:          cfg.Booking.TimeSlots,
		SlotCapacity:       cfg.Booking.SlotCapacity,
		DayOff:             cfg.Booking.DayOff,
		Timezone:           cfg.Booking.Timezone,
		Services:           cfg.Booking.AllowedServices,
		MaxCartItems:       cfg.Booking.MaxCartItems,
		MinPhotos:          cfg.Booking.MinPhotos,
		MaxPhotos:          cfg.Booking.MaxPhotos,
		MaxPhotoSize:       cfg.Booking.MaxPhotoSize(),
		AcceptedPhotoTypes: domain.AcceptedPhotoTypes,
	}
}
