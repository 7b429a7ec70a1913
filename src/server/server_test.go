package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fileproc-eval/task-coordinator-service/src/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewServer tests component wiring from configuration
func TestNewServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &mocks.MockConfig{
		OutputDir:               t.TempDir(),
		ProbeTimeout:            time.Second,
		DispatchTimeout:         5 * time.Second,
		MaxConcurrentDispatches: 4,
	}

	srv := NewServer(cfg)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.Registry())
	assert.NotNil(t, srv.Engine())
	assert.Equal(t, 0, srv.Registry().Len())
}

// TestServer_Routes tests that the wired engine serves the coordinator routes
func TestServer_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(&mocks.MockConfig{OutputDir: t.TempDir()})

	t.Run("Home", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
