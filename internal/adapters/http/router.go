package http

import (
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hsdfat8/kitcheck/internal/domain/ports"
	"github.com/hsdfat8/kitcheck/internal/logger"
	"github.com/hsdfat8/kitcheck/internal/observability"
)

// ginLogger returns a gin.HandlerFunc (middleware) that logs requests using our observability logger
func ginLogger() gin.HandlerFunc {
	log := observability.New("gin-http", "")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		fields := []interface{}{
			"status", statusCode,
			"method", c.Request.Method,
			"path", path,
			"ip", c.ClientIP(),
			"latency_ms", latency.Milliseconds(),
		}

		if query != "" {
			fields = append(fields, "query", query)
		}

		if errorMessage != "" {
			fields = append(fields, "error", errorMessage)
		}

		if statusCode >= 500 {
			log.Errorw("HTTP request error", fields...)
		} else if statusCode >= 400 {
			log.Warnw("HTTP request warning", fields...)
		} else {
			log.Infow("HTTP request", fields...)
		}
	}
}

// ginRecovery returns a gin.HandlerFunc (middleware) that recovers from panics and logs using our observability logger
func ginRecovery() gin.HandlerFunc {
	log := observability.New("gin-recovery", "")

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Errorw("Panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"ip", c.ClientIP(),
					"stack", string(debug.Stack()),
				)

				c.AbortWithStatusJSON(500, ProblemDetails{
					Type:   "about:blank",
					Title:  "Internal Server Error",
					Status: 500,
				})
			}
		}()
		c.Next()
	}
}

// RouterOptions configures optional routes
type RouterOptions struct {
	Database    ports.DatabaseAdapter // reported by /health when set
	MetricsPath string                // Prometheus endpoint; empty disables it
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(kitService ports.KitService, opts RouterOptions) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Recovery must be first
	router.Use(ginRecovery())
	router.Use(ginLogger())

	handler := NewHandler(kitService, opts.Database)

	api := router.Group("/api/v1")
	{
		api.POST("/validate", handler.Validate)

		api.GET("/kits", handler.ListKits)
		api.POST("/kits", handler.CreateKit)
		api.GET("/kits/:id", handler.GetKit)
		api.DELETE("/kits/:id", handler.DeleteKit)
		api.GET("/kits/:id/warnings", handler.GetKitWarnings)
		api.GET("/kits/:id/dismissals", handler.ListDismissals)
		api.POST("/kits/:id/dismissals", handler.DismissWarning)
		api.DELETE("/kits/:id/dismissals/:itemId/:type", handler.RestoreWarning)

		api.GET("/equipment", handler.ListEquipment)
		api.POST("/equipment", handler.UpsertEquipment)
		api.GET("/equipment/:id", handler.GetEquipment)
		api.DELETE("/equipment/:id", handler.DeleteEquipment)
		api.GET("/equipment/:id/suggestions", handler.GetSuggestions)

		api.GET("/adapters", handler.ListAdapters)
	}

	router.GET("/health", handler.HealthCheck)

	if opts.MetricsPath != "" {
		router.GET(opts.MetricsPath, gin.WrapH(logger.MetricsHandler()))
	}

	return router
}
