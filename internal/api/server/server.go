// Package server assembles the HTTP server from the gin engine, the
// middleware chain and the v1 routes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/anashammo/whisper-ui/docs"
	"github.com/anashammo/whisper-ui/internal/api/middleware"
	"github.com/anashammo/whisper-ui/internal/api/v1/handlers"
	"github.com/anashammo/whisper-ui/internal/api/v1/routes"
	"github.com/anashammo/whisper-ui/internal/app/usecase"
)

// Config holds the HTTP listener settings.
type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

// DefaultConfig listens on all interfaces, port 8080, release mode.
func DefaultConfig() Config {
	return Config{
		Host: "0.0.0.0",
		Port: 8080,
		Mode: gin.ReleaseMode,
	}
}

// Server wraps the gin engine and its http.Server.
type Server struct {
	engine *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// New builds the router with the full middleware chain and all routes
// registered. The model stater and the gatherer may be nil.
func New(config Config, service *usecase.Service, stater handlers.ModelStater, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if config.Host == "" {
		config.Host = "0.0.0.0"
	}
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.StructuredLogging(logger))
	engine.Use(middleware.ErrorHandler(logger))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	engine.GET("/health", handlers.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "whisper-ui",
			"docs":    "/swagger/index.html",
			"health":  "/health",
			"metrics": "/metrics",
		})
	})

	routes.Register(engine, service, stater, logger)

	return &Server{
		engine: engine,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
			// Uploads and synchronous transcription take a while.
			ReadTimeout:  5 * time.Minute,
			WriteTimeout: 15 * time.Minute,
			IdleTimeout:  2 * time.Minute,
		},
		logger: logger,
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until the context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.server.Shutdown(ctx)
}
