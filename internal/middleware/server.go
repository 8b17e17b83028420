package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/metrics"
	"financeflow_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags the request context with an id, reusing a
// client supplied X-Request-ID when it looks sane.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log := logger.FromContext(c.Request.Context())
		fields := []any{
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"size_bytes", c.Writer.Size(),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Errorw("HTTP server error", fields...)
		case status >= 400:
			log.Warnw("HTTP client error", fields...)
		default:
			log.Infow("HTTP request", fields...)
		}
	}
}

// MetricsMiddleware records request counts and latencies per route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// CORSMiddleware allows the listed origins; "*" allows any.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, listed := allowed[origin]
			switch {
			case allowAll:
				// Wildcard responses never carry credentials.
				c.Header("Access-Control-Allow-Origin", "*")
			case listed:
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Credentials", "true")
			}
			if allowAll || listed {
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				c.Header("Access-Control-Expose-Headers", RequestIDHeader)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// DBMiddleware puts the pool (or a transaction already carried by the request
// context) into the gin context, bound to the request context.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		tx, ok := ctx.Value(contextkeys.DBContextKey).(*gorm.DB)
		if !ok || tx == nil {
			tx = db
		}

		c.Set(string(contextkeys.DBContextKey), tx.WithContext(ctx))
		c.Next()
	}
}

// dbFrom returns the db set by DBMiddleware, or nil.
func dbFrom(c *gin.Context) *gorm.DB {
	val, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		return nil
	}
	db, _ := val.(*gorm.DB)
	return db
}
