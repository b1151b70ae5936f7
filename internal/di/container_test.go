package di

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"recall-notes-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitializeContainer(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "console"

	container, err := InitializeContainer(cfg)
	require.NoError(t, err)
	require.NotNil(t, container.Router)
	assert.NotNil(t, container.Metrics)
	assert.Same(t, cfg, container.Config)

	w := httptest.NewRecorder()
	container.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	container.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInitializeContainerWithoutMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = false

	container, err := InitializeContainer(cfg)
	require.NoError(t, err)
	assert.Nil(t, container.Metrics)

	w := httptest.NewRecorder()
	container.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplyConfigChangesLogLevel(t *testing.T) {
	cfg := config.Default()
	container, err := InitializeContainer(cfg)
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, container.LogLevel.Level())

	reloaded := config.Default()
	reloaded.Logging.Level = "debug"
	container.ApplyConfig(reloaded)

	assert.Equal(t, zapcore.DebugLevel, container.LogLevel.Level())
	assert.True(t, container.Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestProvideAtomicLevelFallsBackToInfo(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "loud"
	assert.Equal(t, zapcore.InfoLevel, ProvideAtomicLevel(cfg).Level())
}
