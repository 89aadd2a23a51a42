// Package http exposes the solver service as a REST API on gin.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/chemsolver/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/chemsolver/internal/interfaces/http/handlers"
	"github.com/turtacn/chemsolver/internal/interfaces/http/middleware"
	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

// RouterConfig aggregates the handlers and middleware dependencies of the
// route tree. Nil handlers leave their routes unregistered.
type RouterConfig struct {
	SolveHandler   *handlers.SolveHandler
	CatalogHandler *handlers.CatalogHandler
	JobHandler     *handlers.JobHandler
	HealthHandler  *handlers.HealthHandler

	// CORS is applied when non-nil and it lists at least one origin.
	CORS *middleware.CORSConfig
	// RateLimiter is applied to /api/v1 when non-nil.
	RateLimiter middleware.RateLimiter

	Logger         logging.Logger
	Metrics        *metrics.AppMetrics
	MetricsHandler http.Handler
	MetricsPath    string
}

// NewRouter builds the engine. The global chain is recovery, request ID,
// logging, metrics, CORS, locale; /api/v1 adds rate limiting.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	r.Use(middleware.Metrics(cfg.Metrics))
	if cfg.CORS != nil && len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	r.Use(middleware.Locale())

	r.NoRoute(func(c *gin.Context) {
		abort(c, http.StatusNotFound, errors.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		abort(c, http.StatusMethodNotAllowed, errors.ErrCodeBadRequest, "method not allowed")
	})

	if h := cfg.HealthHandler; h != nil {
		r.GET("/healthz", h.Liveness)
		r.GET("/readyz", h.Readiness)
	}
	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api/v1")
	if cfg.RateLimiter != nil {
		api.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	registerSolveRoutes(api, cfg.SolveHandler)
	registerCatalogRoutes(api, cfg.CatalogHandler)
	registerJobRoutes(api, cfg.JobHandler)

	return r
}

func registerSolveRoutes(g *gin.RouterGroup, h *handlers.SolveHandler) {
	if h == nil {
		return
	}
	g.POST("/solve", h.Solve)
	g.POST("/solve/batch", h.SolveBatch)
}

func registerCatalogRoutes(g *gin.RouterGroup, h *handlers.CatalogHandler) {
	if h == nil {
		return
	}
	g.GET("/elements", h.ListElements)
	g.GET("/elements/summary", h.Summary)
	g.GET("/elements/:symbol", h.GetElement)
	g.GET("/bonds", h.Bond)
}

func registerJobRoutes(g *gin.RouterGroup, h *handlers.JobHandler) {
	if h == nil {
		return
	}
	g.POST("/jobs", h.Submit)
}

func abort(c *gin.Context, status int, code errors.ErrorCode, msg string) {
	c.AbortWithStatusJSON(status, handlers.APIResponse{
		Success:   false,
		Error:     &chemistry.ErrorView{Code: code.String(), Message: msg},
		RequestID: middleware.GetRequestID(c),
	})
}

//Personal.AI order the ending
