package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gita/backend/internal/domain/identity"
	"github.com/gita/backend/internal/infrastructure/auth"
	"github.com/gita/backend/internal/infrastructure/config"
	"github.com/gita/backend/internal/infrastructure/mail"
	"github.com/gita/backend/internal/interfaces/http/middleware"
	"github.com/gita/backend/internal/interfaces/http/router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementJapaCount(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(int64), args.Error(1)
}

// MockOTPRepository is a mock implementation of identity.OTPRepository
type MockOTPRepository struct {
	mock.Mock
}

func (m *MockOTPRepository) Create(ctx context.Context, otp *identity.OTPRecord) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockOTPRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.OTPRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.OTPRecord), args.Error(1)
}

func (m *MockOTPRepository) FindLatestByTarget(ctx context.Context, target string) (*identity.OTPRecord, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.OTPRecord), args.Error(1)
}

func (m *MockOTPRepository) Update(ctx context.Context, otp *identity.OTPRecord) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockOTPRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSender is a mock implementation of mail.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// testSessions builds the session plumbing shared by handler tests.
func testSessions(users identity.UserRepository) (*middleware.SessionMiddleware, *auth.SessionService, *auth.CookieWriter) {
	sessions := auth.NewSessionService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "gita-backend",
	})
	cookies := auth.NewCookieWriter(config.CookieConfig{Name: "session", Path: "/"}, false)
	return middleware.NewSessionMiddleware(cookies, sessions, users, zap.NewNop()), sessions, cookies
}

// newTestEngine registers the given handlers on a bare engine.
func newTestEngine(registrars ...router.RouteRegistrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	r := router.NewRouter(engine)
	for _, registrar := range registrars {
		r.Register(registrar)
	}
	r.Setup()
	return engine
}

// perform sends a JSON request, optionally with a session cookie.
func perform(t *testing.T, engine *gin.Engine, method, path string, body any, sessionToken string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: sessionToken})
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// loginToken mints a session token and primes the user repo to resolve it.
func loginToken(t *testing.T, sessions *auth.SessionService, users *MockUserRepository, user *identity.User) string {
	t.Helper()
	token, _, err := sessions.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	return token
}
