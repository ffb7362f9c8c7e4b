package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type responder struct{ c *gin.Context }

func (r responder) wantsJSON() bool {
	accept := strings.ToLower(r.c.GetHeader("Accept"))
	return strings.Contains(accept, "application/json")
}

func (r responder) err(status int, msg string, payload gin.H) {
	if r.wantsJSON() {
		out := gin.H{"error": msg}
		for k, v := range payload {
			out[k] = v
		}
		r.c.JSON(status, out)
		return
	}
	r.c.String(status, msg)
}

func (r responder) ok(text string, payload gin.H) {
	if r.wantsJSON() {
		r.c.JSON(http.StatusOK, payload)
		return
	}
	r.c.String(http.StatusOK, text)
}
