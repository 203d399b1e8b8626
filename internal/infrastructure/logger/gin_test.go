package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestRequestLogger(t *testing.T) {
	t.Run("successful request logs at info", func(t *testing.T) {
		log, logs := newObserved()
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(RequestLogger(log))
		router.GET("/japaCount/me", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/japaCount/me", nil))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
		assert.Equal(t, "request completed", entry.Message)

		fields := entry.ContextMap()
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/japaCount/me", fields["path"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	})

	t.Run("client error logs at warn", func(t *testing.T) {
		log, logs := newObserved()
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(RequestLogger(log))
		router.POST("/favourites/toggle", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/favourites/toggle", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("server error logs at error", func(t *testing.T) {
		log, logs := newObserved()
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(RequestLogger(log))
		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	})

	t.Run("query string is recorded when present", func(t *testing.T) {
		log, logs := newObserved()
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(RequestLogger(log))
		router.GET("/chapters", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chapters?lang=en", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "lang=en", logs.All()[0].ContextMap()["query"])
	})
}

func TestRecovery(t *testing.T) {
	log, logs := newObserved()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "panic recovered", entry.Message)
	assert.Equal(t, "boom", entry.ContextMap()["panic"])
}
