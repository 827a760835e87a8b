package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/comitanigiacomo/kanso-history/internal/adapters/handler/http/middleware"
)

// HealthCheck reports whether one backing service is reachable.
type HealthCheck func(ctx context.Context) error

type RouterDependencies struct {
	AuthHandler    *AuthHandler
	HistoryHandler *HistoryHandler
	StatsHandler   *StatsHandler

	// Tokens is nil in single-owner mode; requests then belong to
	// middleware.LocalOwnerID and the auth routes are not mounted.
	Tokens middleware.TokenValidator

	RateLimiter  *middleware.RateLimiter
	HealthChecks map[string]HealthCheck
	StartTime    time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.MetricsMiddleware())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}

	router.GET("/health", func(c *gin.Context) {
		statusCode := http.StatusOK
		body := gin.H{
			"status": "ok",
			"uptime": time.Since(deps.StartTime).String(),
		}

		for name, check := range deps.HealthChecks {
			if err := check(c.Request.Context()); err != nil {
				body[name] = "unreachable"
				body["status"] = "degraded"
				statusCode = http.StatusServiceUnavailable
				continue
			}
			body[name] = "connected"
		}

		c.JSON(statusCode, body)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	if deps.Tokens != nil {
		if deps.AuthHandler != nil {
			deps.AuthHandler.RegisterRoutes(apiV1)
		}
		protected.Use(middleware.AuthMiddleware(deps.Tokens))
	} else {
		protected.Use(middleware.LocalOwnerMiddleware(middleware.LocalOwnerID))
	}
	{
		deps.HistoryHandler.RegisterRoutes(protected)
		deps.StatsHandler.RegisterRoutes(protected)
	}

	return router
}
