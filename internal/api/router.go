package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerkit/money/internal/config"
)

// NewRouter wires the middleware chain and routes.
func NewRouter(cfg *config.Config, h *Handler) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())
	r.Use(RateLimitMiddleware(&cfg.Server.RateLimit))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:      string(ErrorCodeNotFound),
			Message:   "route not found",
			RequestID: requestID(c),
		})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
			Code:      string(ErrorCodeMethodNotAllowed),
			Message:   "method not allowed",
			RequestID: requestID(c),
		})
	})

	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	{
		v1.GET("/locales", h.Locales)
		v1.POST("/checkout", h.Checkout)
		v1.POST("/format", h.Format)
		v1.POST("/parse", h.Parse)
		v1.POST("/divide", h.Divide)
	}

	return r
}
