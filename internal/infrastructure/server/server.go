// Package server wires configuration, the pipeline, and the HTTP API
// into a runnable service.
package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sitelens/sitelens/internal/ai"
	apihttp "github.com/sitelens/sitelens/internal/api/http"
	"github.com/sitelens/sitelens/internal/api/middleware"
	"github.com/sitelens/sitelens/internal/cache"
	"github.com/sitelens/sitelens/internal/infrastructure/config"
	"github.com/sitelens/sitelens/internal/infrastructure/monitoring"
	"github.com/sitelens/sitelens/internal/infrastructure/tracing"
	"github.com/sitelens/sitelens/internal/logging"
	"github.com/sitelens/sitelens/internal/pipeline"
	"github.com/sitelens/sitelens/internal/render"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router   *gin.Engine
	renderer render.Renderer
	store    cache.Store
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// New creates a server from configuration.
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing sitelens",
		zap.String("port", cfg.Server.Port),
		zap.String("render_engine", cfg.Render.Engine),
		zap.String("ai_endpoint", cfg.AI.Endpoint),
	)

	metrics := monitoring.NewMetrics()

	tracer := tracing.New("sitelens", logger.Logger)

	renderer, err := newRenderer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	model := ai.NewResilient(ai.NewClient(ai.Config{
		Endpoint: cfg.AI.Endpoint,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		Format:   cfg.AI.Format,
		Timeout:  cfg.AI.Timeout(),
	}), logger.Named("ai"))
	if cfg.AI.Endpoint == "" {
		logger.Warn("No AI endpoint configured, analyze requests will fail")
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		renderer.Close()
		return nil, fmt.Errorf("create cache: %w", err)
	}
	silent := cache.NewSilent(store, logger.Named("cache"))

	orchestrator := pipeline.New(renderer, model, silent, logger.Named("pipeline"), metrics, cfg.Cache.TTL())

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.RequestID())
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(orchestrator, logger.Named("http"), metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	router.POST("/analyze", handlers.Analyze)

	router.GET("/page/html", handlers.PageHTML)
	router.GET("/page/structure", handlers.PageStructure)
	router.GET("/page/screenshot", handlers.PageScreenshot)

	router.DELETE("/cache/:operation", handlers.PurgeCache)

	router.GET("/metrics", metrics.Handler())

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		renderer: renderer,
		store:    store,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close releases the renderer and cache connections.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if s.renderer != nil {
		if err := s.renderer.Close(); err != nil {
			s.logger.Error("Failed to close renderer", zap.Error(err))
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("Failed to close cache", zap.Error(err))
		}
	}
	s.metrics.Close()

	s.logger.Sync()
	return nil
}

func newRenderer(cfg *config.Config) (render.Renderer, error) {
	switch cfg.Render.Engine {
	case "chrome":
		return render.NewChrome(render.ChromeConfig{
			Timeout:   cfg.Render.RenderTimeout(),
			UserAgent: cfg.Render.UserAgent,
			ExecPath:  cfg.Render.ChromePath,
		}), nil
	case "static":
		return render.NewStatic(cfg.Render.RenderTimeout(), cfg.Render.UserAgent), nil
	default:
		return nil, fmt.Errorf("unknown render engine: %s", cfg.Render.Engine)
	}
}

func newStore(cfg *config.Config, logger *logging.Logger) (cache.Store, error) {
	if !cfg.Cache.Enabled {
		logger.Info("Caching disabled")
		return nil, nil
	}
	if cfg.Cache.RedisAddress != "" {
		store, err := cache.NewRedis(cache.RedisConfig{
			Address:  cfg.Cache.RedisAddress,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to redis", zap.String("addr", cfg.Cache.RedisAddress))
		return store, nil
	}
	logger.Info("Using in-memory cache")
	return cache.NewMemory(), nil
}
