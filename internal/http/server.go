// Package http wires the gin router, middleware and servers that expose the field
// encryption and record endpoints.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/fieldcrypt/internal/config"
	fieldHTTP "github.com/allisson/fieldcrypt/internal/field/http"
	"github.com/allisson/fieldcrypt/internal/metrics"
	recordHTTP "github.com/allisson/fieldcrypt/internal/record/http"
)

// readinessTimeout bounds the database ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// Server is the public API server.
type Server struct {
	db          *sql.DB
	server      *http.Server
	router      *gin.Engine
	rateLimiter *ipRateLimiter
	logger      *slog.Logger
}

// NewServer creates a Server bound to host:port. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and routes.
//
// Routes:
//   - GET  /health, GET /ready
//   - POST /v1/fields/:entity/encrypt, POST /v1/fields/:entity/decrypt
//   - POST /v1/documents/hash, GET /v1/policy
//   - POST /v1/records/:entity, GET /v1/records/id/:id, POST /v1/records/:entity/search
//
// The /v1 group is rate limited per client IP when enabled. metricsProvider may be nil.
func (s *Server) SetupRouter(
	cfg *config.Config,
	fieldHandler *fieldHTTP.FieldHandler,
	recordHandler *recordHTTP.RecordHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		s.rateLimiter = newIPRateLimiter(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger)
		v1.Use(s.rateLimiter.Middleware())
	}

	fields := v1.Group("/fields")
	fields.POST("/:entity/encrypt", fieldHandler.EncryptHandler)
	fields.POST("/:entity/decrypt", fieldHandler.DecryptHandler)

	v1.POST("/documents/hash", fieldHandler.HashDocumentHandler)
	v1.GET("/policy", fieldHandler.PolicyHandler)

	records := v1.Group("/records")
	records.POST("/:entity", recordHandler.StoreHandler)
	records.POST("/:entity/search", recordHandler.SearchHandler)
	records.GET("/id/:id", recordHandler.GetHandler)

	s.router = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. A nil return means a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server and the rate limiter cleanup loop.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.rateLimiter != nil {
		s.rateLimiter.Close()
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
