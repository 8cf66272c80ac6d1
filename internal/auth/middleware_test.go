package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"ketotrack/internal/model"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *mockStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *mockStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *mockStore) MirrorAPIKey(ctx context.Context, key string, userID uint) error {
	args := m.Called(ctx, key, userID)
	return args.Error(0)
}

func (m *mockStore) LookupAPIKey(ctx context.Context, key string) (uint, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(uint), args.Bool(1)
}

func (m *mockStore) EvictAPIKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) Create(ctx context.Context, token *model.APIToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepo) FindByKey(ctx context.Context, key string) (*model.APIToken, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APIToken), args.Error(1)
}

func (m *mockTokenRepo) FindByUserID(ctx context.Context, userID uint) (*model.APIToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APIToken), args.Error(1)
}

func (m *mockTokenRepo) List(ctx context.Context) ([]model.APIToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.APIToken), args.Error(1)
}

func (m *mockTokenRepo) Replace(ctx context.Context, userID uint, newKey string, rotatedAt time.Time) (string, error) {
	args := m.Called(ctx, userID, newKey, rotatedAt)
	return args.String(0), args.Error(1)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id uint) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func runMiddleware(t *testing.T, req *http.Request, store *mockStore, tokens *mockTokenRepo, profiles *mockProfileRepo) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := APITokenMiddleware(store, tokens, profiles)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, c, err
}

func TestAPITokenMiddleware_HeaderToken(t *testing.T) {
	store := new(mockStore)
	profiles := new(mockProfileRepo)
	store.On("LookupAPIKey", mock.Anything, "abc123").Return(uint(1), true)
	profiles.On("FindByUserID", mock.Anything, uint(1)).Return(&model.Profile{ID: 42, UserID: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token abc123")

	rec, c, err := runMiddleware(t, req, store, new(mockTokenRepo), profiles)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(1), c.Get(ContextUserID))
	assert.Equal(t, uint(42), c.Get(ContextProfileID))
}

func TestAPITokenMiddleware_QueryParamFallback(t *testing.T) {
	store := new(mockStore)
	profiles := new(mockProfileRepo)
	store.On("LookupAPIKey", mock.Anything, "abc123").Return(uint(1), true)
	profiles.On("FindByUserID", mock.Anything, uint(1)).Return(&model.Profile{ID: 42, UserID: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/?token=abc123", nil)

	rec, _, err := runMiddleware(t, req, store, new(mockTokenRepo), profiles)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPITokenMiddleware_CacheMissFallsBackToDatabase(t *testing.T) {
	store := new(mockStore)
	tokens := new(mockTokenRepo)
	profiles := new(mockProfileRepo)
	store.On("LookupAPIKey", mock.Anything, "abc123").Return(uint(0), false)
	tokens.On("FindByKey", mock.Anything, "abc123").Return(&model.APIToken{UserID: 1, Key: "abc123"}, nil)
	store.On("MirrorAPIKey", mock.Anything, "abc123", uint(1)).Return(nil)
	profiles.On("FindByUserID", mock.Anything, uint(1)).Return(&model.Profile{ID: 42, UserID: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token abc123")

	rec, _, err := runMiddleware(t, req, store, tokens, profiles)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	store.AssertCalled(t, "MirrorAPIKey", mock.Anything, "abc123", uint(1))
}

func TestAPITokenMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(req *http.Request, store *mockStore, tokens *mockTokenRepo, profiles *mockProfileRepo)
	}{
		{
			name:  "missing token",
			setup: func(_ *http.Request, _ *mockStore, _ *mockTokenRepo, _ *mockProfileRepo) {},
		},
		{
			name: "unknown token",
			setup: func(req *http.Request, store *mockStore, tokens *mockTokenRepo, _ *mockProfileRepo) {
				req.Header.Set(echo.HeaderAuthorization, "Token bogus")
				store.On("LookupAPIKey", mock.Anything, "bogus").Return(uint(0), false)
				tokens.On("FindByKey", mock.Anything, "bogus").Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name: "wrong scheme ignored",
			setup: func(req *http.Request, _ *mockStore, _ *mockTokenRepo, _ *mockProfileRepo) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer abc123")
			},
		},
		{
			name: "token without profile",
			setup: func(req *http.Request, store *mockStore, _ *mockTokenRepo, profiles *mockProfileRepo) {
				req.Header.Set(echo.HeaderAuthorization, "Token abc123")
				store.On("LookupAPIKey", mock.Anything, "abc123").Return(uint(1), true)
				profiles.On("FindByUserID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockStore)
			tokens := new(mockTokenRepo)
			profiles := new(mockProfileRepo)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req, store, tokens, profiles)

			_, _, err := runMiddleware(t, req, store, tokens, profiles)

			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		})
	}
}
