package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handlers) Health(c *gin.Context) {
	if h.tracker == nil {
		responder{c}.err(http.StatusServiceUnavailable, "UNHEALTHY: missing run tracker", nil)
		return
	}

	s := h.tracker.Snapshot()
	payload := gin.H{
		"ok":         s.OK,
		"engine":     s.Engine,
		"phase":      string(s.Phase),
		"updated_at": s.UpdatedAt.Format(time.RFC3339),
	}
	if s.OK {
		responder{c}.ok(
			fmt.Sprintf("OK: %s %s (updated %s)", s.Engine, s.Phase, s.UpdatedAt.Format(time.RFC3339)),
			payload,
		)
		return
	}

	if h.log != nil {
		h.log.Debugw("Health requested after failure", "phase", s.Phase, "error", s.Err)
	}
	responder{c}.err(http.StatusServiceUnavailable,
		fmt.Sprintf("UNHEALTHY: %s failed in %s: %s (updated %s)", s.Engine, s.Phase, s.Err, s.UpdatedAt.Format(time.RFC3339)),
		payload)
}

// Metrics serves the default prometheus registry.
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
