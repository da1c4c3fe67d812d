package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/passvault/internal/metrics"
)

// MetricsServer exposes /metrics on its own port, apart from the public API.
type MetricsServer struct {
	listener
	handler http.Handler
}

// NewMetricsServer creates a MetricsServer. A nil provider serves nothing.
// Scrapes are not request-logged.
func NewMetricsServer(host string, port int, logger *slog.Logger, provider *metrics.Provider) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery())
	if provider != nil {
		router.GET("/metrics", gin.WrapH(provider.Handler()))
	}

	return &MetricsServer{
		listener: newListener("metrics server", host, port, logger),
		handler:  router,
	}
}

func (s *MetricsServer) GetHandler() http.Handler {
	return s.handler
}

func (s *MetricsServer) Start(ctx context.Context) error {
	return s.serve(s.handler)
}
