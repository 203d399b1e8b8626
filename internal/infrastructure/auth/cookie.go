package auth

import (
	"net/http"
	"time"

	"github.com/gita/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
)

// CookieWriter writes and clears the session cookie. Cross-site frontends
// need SameSite=None with Secure, which browsers only accept over HTTPS,
// so the policy follows the environment.
type CookieWriter struct {
	name       string
	domain     string
	path       string
	production bool
}

// NewCookieWriter creates a cookie writer for the given environment
func NewCookieWriter(cookie config.CookieConfig, production bool) *CookieWriter {
	return &CookieWriter{
		name:       cookie.Name,
		domain:     cookie.Domain,
		path:       cookie.Path,
		production: production,
	}
}

// Name returns the session cookie name
func (w *CookieWriter) Name() string {
	return w.name
}

// Write sets the session cookie on the response
func (w *CookieWriter) Write(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     w.name,
		Value:    token,
		Domain:   w.domain,
		Path:     w.path,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   w.production,
		SameSite: w.sameSite(),
	})
}

// Clear expires the session cookie immediately
func (w *CookieWriter) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     w.name,
		Value:    "",
		Domain:   w.domain,
		Path:     w.path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   w.production,
		SameSite: w.sameSite(),
	})
}

// Read returns the session token from the request cookie, or empty string
func (w *CookieWriter) Read(c *gin.Context) string {
	token, err := c.Cookie(w.name)
	if err != nil {
		return ""
	}
	return token
}

func (w *CookieWriter) sameSite() http.SameSite {
	if w.production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
