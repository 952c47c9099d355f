package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tagnology/embed-go/internal/cache"
	"github.com/tagnology/embed-go/internal/http"
	"github.com/tagnology/embed-go/internal/infrastructure/config"
	"github.com/tagnology/embed-go/internal/infrastructure/logging"
	"github.com/tagnology/embed-go/internal/infrastructure/monitoring"
	"github.com/tagnology/embed-go/internal/manifest"
	"github.com/tagnology/embed-go/internal/ws"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	cache   *cache.Manager
	client  *manifest.Client
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Logging.Level
		l, err := logging.New(logCfg)
		if err != nil {
			return nil, err
		}
		logger = l
	}

	logger.Info("Initializing embed widget server",
		zap.String("port", cfg.Server.Port),
		zap.String("endpoint", cfg.Embed.Endpoint),
		zap.String("platform", cfg.Embed.Platform),
	)

	metrics := monitoring.NewMetrics()

	client := manifest.NewClient(manifest.ClientConfig{
		Endpoint:          cfg.Embed.Endpoint,
		Timeout:           cfg.Embed.Timeout,
		RequestsPerSecond: float64(cfg.RateLimit.RequestsPerSecond),
	}, logger.Named("manifest")).WithMetrics(metrics)

	cacheManager := cache.NewManager(client, cfg.Embed.Platform, logger.Named("cache")).
		WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	handlers := http.NewHandlers(cacheManager)
	wsHandler := ws.NewHandler(logger.Named("ws"), metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Widget resolution
	router.GET("/widgets", handlers.GetWidgets)
	router.GET("/widgets/slots", handlers.GetSlots)
	router.GET("/product/resolve", handlers.ResolveProduct)

	// Cache management
	router.POST("/cache/clear", handlers.ClearCache)
	router.GET("/stats", handlers.Stats)

	// WebSocket bridge
	router.GET("/bridge", wsHandler.HandleConnection)

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		cache:   cacheManager,
		client:  client,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.cache.Clear()
	s.logger.Sync()
	return nil
}
