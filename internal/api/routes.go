package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"enrichprj/internal/logger"
)

// NewRouter wires the catalog endpoints. mode "prod" switches gin to
// release mode.
func NewRouter(h *Handler, mode string) *gin.Engine {
	if mode == "prod" || mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(h.Log))

	router.GET("/healthz", h.Health)

	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.GET("/:id/features", h.ListFeatures)
	}
	return router
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
