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

	"alugaki/internal/api"
	"alugaki/internal/config"
	"alugaki/internal/database"
	"alugaki/internal/domain"
	"alugaki/internal/events"
	"alugaki/internal/export"
	"alugaki/internal/logging"
	"alugaki/internal/metrics"
	"alugaki/internal/models"
	"alugaki/internal/repository"
	"alugaki/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
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
		defer (func() { _ = closer.Close() })()
	}

	users, items, chats, err := loadSeed(cfg, logger)
	if err != nil {
		return err
	}

	repo := repository.NewMarketplace(users, items, chats)

	sessions, sessionCloser, err := buildSessionStore(cfg, logger)
	if err != nil {
		return err
	}
	if sessionCloser != nil {
		defer (func() { _ = sessionCloser.Close() })()
	}

	bus := events.NewEventBus()
	subscribeEventLog(bus, logger)

	latency := cfg.Mock.Latency()
	itemService := service.NewItemService(repo, bus, latency, logger)
	chatService := service.NewChatService(repo, itemService, bus, latency, logger)
	userService := service.NewUserService(repo, sessions, bus, latency, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Restore a previously persisted session, if any.
	if user, err := userService.Restore(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to restore session")
	} else if user != nil {
		logger.Info().Str("user_id", user.ID).Msg("session restored")
	}

	startMetrics(ctx, cfg, logger)

	reporter := export.NewReporter(cfg.Exports.Path)
	httpServer := api.NewHTTPServer(cfg.API, itemService, chatService, userService, reporter, logger)

	if !cfg.API.Enabled {
		logger.Warn().Msg("API is disabled in config, but starting API application. Check your config.")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}
	logger.Info().Msg("shutdown complete")
	return nil
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, logger, closer, nil
}

// seedFile mirrors the config seed section for standalone seed files.
type seedFile struct {
	Users []models.User `yaml:"users"`
	Items []models.Item `yaml:"items"`
}

// loadSeed picks the dataset in priority order: SEED_PATH file, config seed
// section, built-in demo data.
func loadSeed(cfg *config.Config, logger *zerolog.Logger) ([]models.User, []models.Item, []*models.Chat, error) {
	if path := os.Getenv("SEED_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("read seed file: %w", err)
		}
		var seed seedFile
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return nil, nil, nil, fmt.Errorf("parse seed file: %w", err)
		}
		if err := config.ValidateSeedUsers(seed.Users); err != nil {
			return nil, nil, nil, err
		}
		if err := config.ValidateSeedItems(seed.Items); err != nil {
			return nil, nil, nil, err
		}
		logger.Info().Str("path", path).Int("users", len(seed.Users)).Int("items", len(seed.Items)).Msg("seed loaded from file")
		return seed.Users, seed.Items, nil, nil
	}

	if len(cfg.Users) > 0 || len(cfg.Items) > 0 {
		return cfg.Users, cfg.Items, nil, nil
	}

	logger.Info().Msg("using built-in demo seed")
	return repository.SeedUsers(), repository.SeedItems(), repository.SeedChats(), nil
}

func buildSessionStore(cfg *config.Config, logger *zerolog.Logger) (domain.SessionStore, io.Closer, error) {
	switch cfg.Session.Backend {
	case "redis":
		client := repository.NewRedisClient(cfg.Redis)
		primary := repository.NewRedisSessionStore(client, cfg.Session.Key, cfg.Session.TTL())
		store := repository.NewFailoverSessionStore(primary, repository.NewMemorySessionStore(), logger)
		return store, client, nil
	case "memory":
		return repository.NewMemorySessionStore(), nil, nil
	default:
		db, err := database.NewSessionDB(cfg.Session.Path, cfg.Session.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("init session db: %w", err)
		}
		logger.Info().Str("path", cfg.Session.Path).Msg("session database initialized")
		return db, db, nil
	}
}

func subscribeEventLog(bus *events.EventBus, logger *zerolog.Logger) {
	handler := func(event *events.Event) error {
		logger.Debug().
			Str("event_id", event.ID).
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("domain event")
		return nil
	}
	for _, eventType := range []string{
		events.EventItemCreated,
		events.EventChatCreated,
		events.EventMessageSent,
		events.EventUserRegistered,
		events.EventUserLoggedIn,
		events.EventUserLoggedOut,
	} {
		bus.Subscribe(eventType, handler)
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("metrics listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}
