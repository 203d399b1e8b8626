package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gita/backend/internal/domain/identity"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/gita/backend/internal/infrastructure/auth"
	"github.com/gita/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys for the authenticated user
const (
	CurrentUserKey   = "current_user"
	CurrentUserIDKey = "current_user_id"
)

// SessionMiddleware resolves the session cookie into a user. The hard
// variant rejects unauthenticated requests; the soft variant lets them
// through with no user attached.
type SessionMiddleware struct {
	cookies  *auth.CookieWriter
	sessions *auth.SessionService
	users    identity.UserRepository
	logger   *zap.Logger
}

// NewSessionMiddleware creates a session middleware
func NewSessionMiddleware(cookies *auth.CookieWriter, sessions *auth.SessionService, users identity.UserRepository, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{cookies: cookies, sessions: sessions, users: users, logger: logger}
}

// Require aborts with 401 unless the request carries a valid session
// cookie resolving to an existing user
func (m *SessionMiddleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.cookies.Read(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Not authenticated"))
			return
		}

		claims, err := m.sessions.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid token"))
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid token"))
			return
		}

		user, err := m.users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("User not found"))
				return
			}
			m.logger.Error("Failed to resolve session user", zap.String("user_id", userID.String()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Server error"))
			return
		}

		c.Set(CurrentUserKey, user)
		c.Set(CurrentUserIDKey, user.ID)
		c.Next()
	}
}

// Optional resolves the session when present but never rejects the
// request. Handlers see a nil user for anonymous callers.
func (m *SessionMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.cookies.Read(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.sessions.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			c.Next()
			return
		}

		user, err := m.users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Set(CurrentUserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the context, or nil
func CurrentUser(c *gin.Context) *identity.User {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*identity.User)
	if !ok {
		return nil
	}
	return user
}
