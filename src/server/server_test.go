package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lost-woods/crush/src/status"
)

func TestServer_Routes(t *testing.T) {
	t.Setenv("API_KEY", "")
	tr := status.New()
	tr.Set("philox4x32_10", status.PhaseWrite)
	s := New("127.0.0.1:0", tr, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "philox4x32_10 write")

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestServer_APIKey(t *testing.T) {
	t.Setenv("API_KEY", "k")
	s := New("127.0.0.1:0", status.New(), zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServer_StartShutdown(t *testing.T) {
	s := New("127.0.0.1:0", status.New(), zap.NewNop().Sugar())
	require.NoError(t, s.Start())
	assert.NoError(t, s.Shutdown(time.Second))
}

func TestServer_CORSPreflight(t *testing.T) {
	t.Setenv("API_KEY", "k")
	s := New("127.0.0.1:0", status.New(), zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "X-API-KEY")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), "x-api-key")
	assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("X-API-KEY", "k")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
