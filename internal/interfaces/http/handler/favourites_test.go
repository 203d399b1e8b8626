package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	appreading "github.com/gita/backend/internal/application/reading"
	"github.com/gita/backend/internal/domain/identity"
	"github.com/gita/backend/internal/domain/reading"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockFavouriteRepository is a mock implementation of reading.FavouriteRepository
type MockFavouriteRepository struct {
	mock.Mock
}

func (m *MockFavouriteRepository) Find(ctx context.Context, userID uuid.UUID, chapter, verse int) (*reading.Favourite, error) {
	args := m.Called(ctx, userID, chapter, verse)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reading.Favourite), args.Error(1)
}

func (m *MockFavouriteRepository) Create(ctx context.Context, favourite *reading.Favourite) error {
	args := m.Called(ctx, favourite)
	return args.Error(0)
}

func (m *MockFavouriteRepository) Delete(ctx context.Context, userID uuid.UUID, chapter, verse int) error {
	args := m.Called(ctx, userID, chapter, verse)
	return args.Error(0)
}

func (m *MockFavouriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]reading.Favourite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reading.Favourite), args.Error(1)
}

type favouriteFixture struct {
	engine *gin.Engine
	repo   *MockFavouriteRepository
	token  string
	user   *identity.User
}

func newFavouriteFixture(t *testing.T) *favouriteFixture {
	t.Helper()

	repo := new(MockFavouriteRepository)
	userRepo := new(MockUserRepository)
	sessionMW, sessions, _ := testSessions(userRepo)

	service := appreading.NewFavouriteService(repo, zap.NewNop())
	handler := NewFavouriteHandler(service, sessionMW)

	user := identity.NewUser("arjuna@example.com")
	token := loginToken(t, sessions, userRepo, user)

	return &favouriteFixture{
		engine: newTestEngine(handler),
		repo:   repo,
		token:  token,
		user:   user,
	}
}

func TestFavouriteHandler_Toggle(t *testing.T) {
	t.Run("absent verse becomes a favourite", func(t *testing.T) {
		f := newFavouriteFixture(t)

		f.repo.On("Find", mock.Anything, f.user.ID, 2, 47).Return(nil, shared.ErrNotFound)
		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		w := perform(t, f.engine, http.MethodPost, "/favourites/toggle", map[string]int{
			"chapter": 2, "verse": 47,
		}, f.token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"favourite":true}`, w.Body.String())
	})

	t.Run("present verse is removed", func(t *testing.T) {
		f := newFavouriteFixture(t)

		existing := reading.NewFavourite(f.user.ID, 2, 47)
		f.repo.On("Find", mock.Anything, f.user.ID, 2, 47).Return(existing, nil)
		f.repo.On("Delete", mock.Anything, f.user.ID, 2, 47).Return(nil)

		w := perform(t, f.engine, http.MethodPost, "/favourites/toggle", map[string]int{
			"chapter": 2, "verse": 47,
		}, f.token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"favourite":false}`, w.Body.String())
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		f := newFavouriteFixture(t)

		w := perform(t, f.engine, http.MethodPost, "/favourites/toggle", map[string]int{"chapter": 2}, f.token)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"ok":false,"message":"Missing chapter or verse"}`, w.Body.String())
	})

	t.Run("requires authentication", func(t *testing.T) {
		f := newFavouriteFixture(t)

		w := perform(t, f.engine, http.MethodPost, "/favourites/toggle", map[string]int{
			"chapter": 2, "verse": 47,
		}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFavouriteHandler_List(t *testing.T) {
	t.Run("lists saved verses", func(t *testing.T) {
		f := newFavouriteFixture(t)

		f.repo.On("ListByUser", mock.Anything, f.user.ID).Return([]reading.Favourite{
			*reading.NewFavourite(f.user.ID, 2, 47),
		}, nil)

		w := perform(t, f.engine, http.MethodGet, "/favourites/me", nil, f.token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"chapter":2`)
		assert.Contains(t, w.Body.String(), `"verse":47`)
	})

	t.Run("empty list renders as an array", func(t *testing.T) {
		f := newFavouriteFixture(t)

		f.repo.On("ListByUser", mock.Anything, f.user.ID).Return([]reading.Favourite{}, nil)

		w := perform(t, f.engine, http.MethodGet, "/favourites/me", nil, f.token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"favourites":[]}`, w.Body.String())
	})
}
