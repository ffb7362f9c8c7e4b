package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lost-woods/crush/src/status"
)

type Handlers struct {
	tracker *status.Tracker
	log     *zap.SugaredLogger
}

func NewHandlers(t *status.Tracker, log *zap.SugaredLogger) *Handlers {
	return &Handlers{tracker: t, log: log}
}

func APIKeyFromEnv() string { return os.Getenv("API_KEY") }

func CheckHeader(headerName, expectedValue string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Auth disabled if not configured
		if expectedValue == "" {
			c.Next()
			return
		}

		if c.GetHeader(headerName) != expectedValue {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
