package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/cache"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/config"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/discord"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/handler"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/repository"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/service"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/worker"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/pkg/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
	pool   *worker.Pool
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	var discordOpts []discord.Option
	if cfg.Discord.BaseURL != "" {
		discordOpts = append(discordOpts, discord.WithBaseURL(cfg.Discord.BaseURL))
	}
	provider := discord.NewClient(
		cfg.Discord.ApplicationID,
		cfg.Discord.ApplicationSecret,
		cfg.Discord.RedirectURL,
		cfg.Discord.Timeout,
		discordOpts...,
	)

	profileService := service.NewProfileService(repos.User, repos.Credit, repos.Invite, repos.Redeem)
	sessions := cache.NewSessionCache(profileService)
	authService := service.NewAuthService(repos.User, provider, sessions, infra.Logger())

	pool := worker.NewPool(cfg.Worker.PoolSize, cfg.Worker.QueueSize, infra.Logger())
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	redirectHandler := handler.NewRedirectHandler(authService, pool, cfg.Discord.AuthURL, infra.Logger())
	profileHandler := handler.NewProfileHandler(sessions, infra.Logger())

	router := gin.Default()
	router.Use(otelgin.Middleware("nitro4friends-backend"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, sessions, rateLimiter, redirectHandler, profileHandler, healthChecker, infra)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
		pool:   pool,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	sessions cache.SessionCache,
	rateLimiter *service.RateLimiter,
	redirectHandler *handler.RedirectHandler,
	profileHandler *handler.ProfileHandler,
	healthChecker *HealthChecker,
	infra Infrastructure,
) {
	router.GET("/", handler.Index)
	router.GET("/metrics", observability.PrometheusHandler(infra.MetricsHandler()))
	router.GET("/health", healthChecker.Handler)

	redirect := router.Group("/redirect")
	{
		redirect.GET("",
			handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow, handler.IPBasedKey),
			redirectHandler.Callback,
		)
		redirect.GET("/@me",
			handler.AuthMiddleware(sessions, infra.Logger()),
			profileHandler.GetMe,
		)
	}
}

func (a *App) Run(ctx context.Context) error {
	a.pool.Start()

	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop accepting requests first, then drain the worker pool so
	// in-flight login continuations finish their writes.
	if err := a.server.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("Server shutdown failed", zap.Error(err))
	}
	a.pool.Stop()

	if err := a.infra.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
