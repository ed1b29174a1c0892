package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/philosophy-quiz/internal/cache"
	"github.com/SAP-F-2025/philosophy-quiz/internal/config"
	"github.com/SAP-F-2025/philosophy-quiz/internal/events"
	"github.com/SAP-F-2025/philosophy-quiz/internal/handlers"
	"github.com/SAP-F-2025/philosophy-quiz/internal/repositories"
	"github.com/SAP-F-2025/philosophy-quiz/internal/repositories/file"
	"github.com/SAP-F-2025/philosophy-quiz/internal/repositories/postgres"
	"github.com/SAP-F-2025/philosophy-quiz/internal/services"
	"github.com/SAP-F-2025/philosophy-quiz/internal/utils"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
	"github.com/SAP-F-2025/philosophy-quiz/pkg"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	sessionIdleTimeout = 2 * time.Hour
	expiryInterval     = 5 * time.Minute
	shutdownTimeout    = 10 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.ContentSource == "postgres" || cfg.ThemeStore == "redis" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			fatal(logger, "Failed to connect to redis", err)
		}
		defer redisClient.Close()
	}

	repo, err := newTopicRepository(cfg, redisClient, slogger)
	if err != nil {
		fatal(logger, "Failed to open content source", err, "source", cfg.ContentSource)
	}

	v := validator.New()
	serviceLogger := func(component string) *services.ServiceLogger {
		return services.NewServiceLogger(slogger, services.LogConfig{Service: "philosophy-quiz", Component: component})
	}

	content := services.NewContentService(repo, v, serviceLogger("content"))
	report, err := content.Load(ctx)
	if err != nil {
		fatal(logger, "Failed to load content", err)
	}
	logger.Info("Content loaded", "topics", len(report.Loaded), "rejected", len(report.Rejected))

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event publisher, falling back to mock")
		publisher = events.NewMockEventPublisher(slogger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.LogError(err, "Failed to close event publisher")
		}
	}()
	if wp, ok := publisher.(*events.WatermillEventPublisher); ok && cfg.Events.Publisher == "gochannel" {
		messages, err := wp.Subscribe(ctx)
		if err != nil {
			fatal(logger, "Failed to subscribe to quiz events", err)
		}
		go events.LogEvents(messages, slogger.With("component", "events"))
	}

	themeStore := cache.NewMemoryCache()
	if cfg.ThemeStore == "redis" {
		themeStore = cache.NewRedisCache(redisClient, slogger)
	}

	quiz := services.NewQuizService(content, publisher, v, serviceLogger("quiz"))
	theme := services.NewThemeService(themeStore, v, serviceLogger("theme"))

	go expireIdleSessions(ctx, quiz, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger), utils.ContextLogger(logger))

	cookies := handlers.NewClientCookies(cfg.SessionSecret, cfg.IsProduction())
	handlers.NewHandlerManager(content, quiz, theme, cookies, v, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Quiz server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "Server failed", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.LogError(err, "Graceful shutdown failed")
	}
}

func newTopicRepository(cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) (repositories.TopicRepository, error) {
	switch cfg.ContentSource {
	case "postgres":
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewTopicPostgreSQL(db, cache.NewRedisCache(redisClient, logger), logger), nil
	default:
		return file.NewTopicFile(cfg.ContentPath), nil
	}
}

func expireIdleSessions(ctx context.Context, quiz services.QuizService, logger utils.Logger) {
	ticker := time.NewTicker(expiryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := quiz.ExpireIdle(ctx, sessionIdleTimeout); n > 0 {
				logger.Info("Expired idle sessions", "count", n)
			}
		}
	}
}

func fatal(logger utils.Logger, msg string, err error, args ...any) {
	logger.LogError(err, msg, args...)
	os.Exit(1)
}
