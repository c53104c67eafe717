package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelier/internal/api"
	"hotelier/internal/auth"
	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/events"
	"hotelier/internal/logging"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/service"
	sessionpkg "hotelier/internal/session"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	bootstrapAdmins(db, cfg.Admins, &logger)

	sessionStore := initSessionStore(cfg, &logger)
	ttl := time.Duration(cfg.Session.TTLSeconds) * time.Second
	tokens := auth.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, ttl)
	sessions := sessionpkg.NewManager(db, tokens, sessionStore, ttl, &logger)

	eventBus := events.NewEventBus()
	subscribeEventLog(eventBus, &logger)

	services := api.Services{
		Sessions:    sessions,
		Profiles:    service.NewProfileService(db, &logger),
		Rooms:       service.NewRoomService(db, &logger),
		Bookings:    service.NewBookingService(db, eventBus, 365, &logger),
		Maintenance: service.NewMaintenanceService(db, eventBus, &logger),
		Menu:        service.NewMenuService(db, &logger),
		Orders:      service.NewOrderService(db, eventBus, &logger),
		Analytics:   service.NewAnalyticsService(db, cfg.Exports.Path, &logger),
	}
	server := api.NewServer(cfg, services, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, &logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("server stopped")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// bootstrapAdmins promotes the configured emails. Profiles that have not
// signed up yet are skipped; they get guest on signup and can be promoted
// after restart.
func bootstrapAdmins(db *database.DB, admins []string, logger *zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, email := range admins {
		if err := db.SetProfileRole(ctx, email, models.RoleAdmin); err != nil {
			logger.Warn().Err(err).Str("email", email).Msg("admin bootstrap skipped")
			continue
		}
		logger.Info().Str("email", email).Msg("admin role granted")
	}
}

// initSessionStore wires Redis when configured, with an in-memory fallback
// so sign-in keeps working through a Redis outage.
func initSessionStore(cfg *config.Config, logger *zerolog.Logger) sessionpkg.Store {
	memory := sessionpkg.NewMemoryStore()
	if cfg.Redis.Address == "" {
		logger.Info().Msg("redis not configured, using in-memory sessions")
		return memory
	}

	client := sessionpkg.NewRedisClient(cfg.Redis)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := sessionpkg.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable at startup, failover store engaged")
	} else {
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	}

	return sessionpkg.NewFailoverStore(sessionpkg.NewRedisStore(client), memory, logger)
}

func subscribeEventLog(bus *events.EventBus, logger *zerolog.Logger) {
	handler := func(event *events.Event) error {
		logger.Info().Str("event_type", event.Type).RawJSON("payload", event.Payload).Msg("domain event")
		return nil
	}
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingApproved,
		events.EventBookingRejected,
		events.EventOrderCreated,
		events.EventOrderStatusChanged,
		events.EventMaintenanceOpened,
		events.EventMaintenanceUpdated,
	} {
		bus.Subscribe(eventType, handler)
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
