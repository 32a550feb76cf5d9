package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"legends-bot/internal/bot"
	"legends-bot/internal/config"
	"legends-bot/internal/container"
	"legends-bot/internal/handler"
	"legends-bot/internal/middleware"
	"legends-bot/pkg/logger"
)

// Resources holds all resources that need cleanup
type Resources struct {
	container *container.Container
	server    *http.Server
	stopBot   context.CancelFunc
	log       *logger.Logger
	mu        sync.Mutex
	closed    bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	// Stop accepting new HTTP requests first
	if r.server != nil {
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	// Stop the long-polling loop
	if r.stopBot != nil {
		r.stopBot()
		r.log.Info("Bot update loop stopped")
	}

	if r.container != nil {
		r.container.Close()
		r.log.Info("Connections closed")
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.HTTPPort,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting legends-bot")

	ctx := context.Background()

	c, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	// Telegram side
	states := bot.NewStateStore(c.GetRedisClient())
	app, err := bot.New(cfg.BotToken, states, bot.Services{
		Registration: c.GetRegistrationService(),
		Teams:        c.GetTeamService(),
		Tracks:       c.GetTrackService(),
		Slots:        c.GetSlotService(),
		Characters:   c.GetCharacterService(),
		Feedback:     c.GetFeedbackService(),
		Media:        c.GetMediaService(),
	}, log.Logger)
	if err != nil {
		c.Close()
		log.WithError(err).Fatal("Failed to create bot")
	}

	router := setupRouter(c)

	server := &http.Server{
		Addr:           ":" + cfg.HTTPPort,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	botCtx, stopBot := context.WithCancel(ctx)

	resources := &Resources{
		container: c,
		server:    server,
		stopBot:   stopBot,
		log:       log,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	botErrChan := make(chan error, 1)
	go func() {
		if err := app.Run(botCtx); err != nil && err != context.Canceled {
			log.WithError(err).Error("Bot error occurred")
			botErrChan <- err
		}
	}()

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	case err := <-botErrChan:
		log.WithError(err).Error("Bot failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container) *chi.Mux {
	cfg := c.GetConfig()
	log := c.GetLogger()

	r := chi.NewRouter()

	r.Use(middleware.CORS(middleware.DefaultCORSConfig(), log))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	healthHandler := handler.NewHealthHandler(c)
	adminHandler := handler.NewAdminHandler(c)

	r.Get("/health", healthHandler.Check)

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/auth", adminHandler.Auth)

		// Organizer endpoints, bearer token required
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.AdminJWTSecret, log))

			r.Get("/teams", adminHandler.ListTeams)
			r.Get("/slots", adminHandler.ListSlots)
			r.Post("/media", adminHandler.RegisterMedia)
		})
	})

	return r
}
