// Package http wires the Gin router, the API server and the metrics server.
package http

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/passvault/internal/config"
	"github.com/allisson/passvault/internal/httputil"
	"github.com/allisson/passvault/internal/metrics"
	policyHTTP "github.com/allisson/passvault/internal/policy/http"
	userHTTP "github.com/allisson/passvault/internal/user/http"
	vaultHTTP "github.com/allisson/passvault/internal/vault/http"
)

const readinessTimeout = 2 * time.Second

var errRouterNotConfigured = errors.New("router not configured")

// Server is the public API server.
type Server struct {
	listener
	db     *sql.DB
	router *gin.Engine
}

// NewServer creates a Server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		listener: newListener("http server", host, port, logger),
		db:       db,
	}
}

// SetupRouter registers every route. Vault routes sit behind authMiddleware;
// registration, login and the password policy routes are public.
// metricsProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	userHandler *userHTTP.UserHandler,
	recordHandler *vaultHTTP.RecordHandler,
	policyHandler *policyHTTP.PolicyHandler,
	authMiddleware gin.HandlerFunc,
	metricsProvider *metrics.Provider,
) {
	// The logger wraps Recovery so a recovered panic is logged as a 500.
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	router.Use(gin.Recovery())

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httputil.ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		})
	})

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		v1.POST("/register", userHandler.RegisterHandler)
		v1.POST("/login", userHandler.LoginHandler)

		v1.POST("/generate-password", policyHandler.GenerateHandler)
		v1.POST("/check-strength", policyHandler.CheckStrengthHandler)

		passwords := v1.Group("/passwords", authMiddleware)
		{
			passwords.GET("", recordHandler.ListHandler)
			passwords.POST("", recordHandler.AddHandler)
			passwords.GET("/:id", recordHandler.GetHandler)
			passwords.PUT("/:id", recordHandler.UpdateHandler)
		}
	}

	s.router = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errRouterNotConfigured
	}
	return s.serve(s.router)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only while the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	if database != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": database},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": database},
	})
}
