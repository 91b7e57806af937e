// Package main is the entrypoint for the CampusHub API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/cache"
	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/handler"
	"github.com/campushub/campushub/internal/metrics"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/mlsync"
	"github.com/campushub/campushub/internal/recommend"
	"github.com/campushub/campushub/internal/repository"
	"github.com/campushub/campushub/internal/server"
	"github.com/campushub/campushub/internal/service"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Session tokens
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Metrics
	metricsRecorder := metrics.NewInMemory()

	// Retrain notifier runs in the background and coalesces triggers.
	retrain := mlsync.NewNotifier(cfg.RetrainURL(), logger, metricsRecorder)
	retrain.Start()

	// Initialize services
	userService := service.NewUserService(repo, tokens)
	eventService := service.NewEventService(repo, retrain, metricsRecorder)
	orgService := service.NewOrganizationService(repo)
	groupService := service.NewGroupService(repo, cacheClient, logger)

	// Recommendation engine
	modelClient := recommend.NewClient(cfg.RecommendURL(), cfg.MLRequestTimeout)
	engine := recommend.NewEngine(repo, repo, modelClient, logger, metricsRecorder, recommend.Options{
		ContentLimit: cfg.RecommendContentLimit,
		ModelCount:   cfg.RecommendModelCount,
	})

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)
	authHandler := handler.NewAuthHandler(userService, logger)
	eventHandler := handler.NewEventHandler(eventService, engine, logger)
	orgHandler := handler.NewOrganizationHandler(orgService, logger)
	groupHandler := handler.NewGroupHandler(groupService, logger)

	// Setup router
	r := setupRouter(routerDeps{
		root:    h,
		health:  healthHandler,
		metrics: metricsHandler,
		auth:    authHandler,
		events:  eventHandler,
		orgs:    orgHandler,
		groups:  groupHandler,
		tokens:  tokens,
		cache:   cacheClient,
		cfg:     cfg,
		logger:  logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("retrain notifier", retrain.Shutdown)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"ml_service_url", cfg.MLServiceURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	root    *handler.Handler
	health  *handler.HealthHandler
	metrics *handler.MetricsHandler
	auth    *handler.AuthHandler
	events  *handler.EventHandler
	orgs    *handler.OrganizationHandler
	groups  *handler.GroupHandler
	tokens  *auth.TokenManager
	cache   *cache.Cache
	cfg     *config.Config
	logger  *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      deps.cfg.IsDevelopment(),
		MaxRequestBodySize: deps.cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	if origins := deps.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	// Root info endpoint
	r.Get("/", deps.root.Hello)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger: deps.logger,
		Tokens: deps.tokens,
	}

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:      deps.logger,
		Cache:       deps.cache,
		UserEnabled: deps.cfg.RateLimitAPIEnabled,
		UserRPM:     deps.cfg.RateLimitAPIRPM,
		UserBurst:   deps.cfg.RateLimitAPIBurst,
		IPEnabled:   deps.cfg.RateLimitAuthEnabled,
		IPRPM:       deps.cfg.RateLimitAuthRPM,
		IPBurst:     deps.cfg.RateLimitAuthBurst,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Account endpoints (no session required, IP rate limited)
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimitIP(rateLimitCfg))
			r.Post("/signup", deps.auth.Signup)
			r.Post("/login", deps.auth.Login)
		})

		// Everything else requires a session
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Use(middleware.RateLimitUser(rateLimitCfg))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", deps.auth.Me)
				r.Put("/me", deps.auth.UpdateProfile)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", deps.events.List)
				r.Post("/", deps.events.Create)
				// Registered before /{eventId} so the literal wins.
				r.Get("/recommendations", deps.events.Recommendations)
				r.Get("/{eventId}", deps.events.Get)
				r.Put("/{eventId}", deps.events.Update)
				r.Delete("/{eventId}", deps.events.Delete)
				r.Post("/{eventId}/register", deps.events.Register)
				r.Post("/{eventId}/withdraw", deps.events.Withdraw)
			})

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/", deps.orgs.List)
				r.Post("/", deps.orgs.Create)
				r.Get("/{organizationId}", deps.orgs.Get)
				r.Put("/{organizationId}", deps.orgs.Update)
				r.Delete("/{organizationId}", deps.orgs.Delete)
			})

			r.Route("/groups", func(r chi.Router) {
				r.Get("/", deps.groups.List)
				r.Post("/", deps.groups.Create)
				r.Get("/{groupId}", deps.groups.Get)
				r.Post("/{groupId}/join", deps.groups.Join)
				r.Post("/{groupId}/leave", deps.groups.Leave)
				r.Get("/{groupId}/messages", deps.groups.Messages)
				r.Post("/{groupId}/messages", deps.groups.Post)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.root.NotFound)
	r.MethodNotAllowed(deps.root.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
