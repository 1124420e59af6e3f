package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/iso6709/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether a dependency such as the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the gin engine serving the conversion API together with
// the health and metrics endpoints. A nil pinger makes the health check
// always succeed.
func NewRouter(
	log *slog.Logger,
	converter *service.Converter,
	gatherer prometheus.Gatherer,
	pinger Pinger,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log), corsMiddleware(allowedOrigins))

	handler := &Handler{log: log, converter: converter}

	router.GET("/healthz", healthCheck(log, pinger))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	v1.GET("/point-locations", handler.PointLocation)
	v1.GET("/coordinates", handler.Coordinate)

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}

	return cors.New(config)
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		log.DebugContext(c.Request.Context(), "Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(startTime).String(),
		)
	}
}

func healthCheck(log *slog.Logger, pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log.DebugContext(ctx, "Performing health checks...")

		status, body := http.StatusOK, "OK"
		if pinger != nil {
			if err := pinger.Ping(ctx); err != nil {
				log.WarnContext(ctx, "Database ping failed", "error", err)
				status, body = http.StatusServiceUnavailable, "DB ping failed"
			}
		}

		c.String(status, body)
		log.DebugContext(ctx, "Health checks completed", "status", status)
	}
}
