package routes

import (
	"context"
	"net/http"
	"sort"
	"time"

	"financeflow_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// HealthChecks maps a dependency name to its ping.
type HealthChecks map[string]func(ctx context.Context) error

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler pings every dependency; any failure makes the answer 503.
func HealthHandler(checks HealthChecks) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.CtxWithError(ctx, "health check failed", err, "dependency", name)
				resp.Checks[name] = "down"
				resp.Status = "degraded"
				continue
			}
			resp.Checks[name] = "up"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
	}
}
