package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gita/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieFromRecorder(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestCookieWriter_WriteProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := NewCookieWriter(config.CookieConfig{Name: "session", Path: "/"}, true)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	w.Write(c, "tok", time.Now().Add(time.Hour))

	ck := cookieFromRecorder(t, rec, "session")
	assert.Equal(t, "tok", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
	assert.Greater(t, ck.MaxAge, 0)
}

func TestCookieWriter_WriteDevelopment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := NewCookieWriter(config.CookieConfig{Name: "session", Path: "/"}, false)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	w.Write(c, "tok", time.Now().Add(time.Hour))

	ck := cookieFromRecorder(t, rec, "session")
	assert.False(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
}

func TestCookieWriter_Clear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := NewCookieWriter(config.CookieConfig{Name: "session", Path: "/"}, false)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	w.Clear(c)

	ck := cookieFromRecorder(t, rec, "session")
	assert.Empty(t, ck.Value)
	assert.Equal(t, -1, ck.MaxAge)
}

func TestCookieWriter_Read(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := NewCookieWriter(config.CookieConfig{Name: "session", Path: "/"}, false)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "tok"})
	c.Request = req

	require.Equal(t, "tok", w.Read(c))

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, w.Read(c2))
}
