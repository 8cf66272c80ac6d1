package service

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"

	"ketotrack/internal/model"
	"ketotrack/internal/nutrition"
	"ketotrack/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockProfileRepository is a mock implementation of repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uint) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, entry *model.ProductEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, entry *model.ProductEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*model.ProductEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductEntry), args.Error(1)
}

func (m *MockProductRepository) ListByProfile(ctx context.Context, profileID uint, nameFilter string) ([]model.ProductEntry, error) {
	args := m.Called(ctx, profileID, nameFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductEntry), args.Error(1)
}

func (m *MockProductRepository) ListByDate(ctx context.Context, profileID uint, date time.Time) ([]model.ProductEntry, error) {
	args := m.Called(ctx, profileID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductEntry), args.Error(1)
}

func (m *MockProductRepository) ListByDateRange(ctx context.Context, profileID uint, start, end time.Time) ([]model.ProductEntry, error) {
	args := m.Called(ctx, profileID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductEntry), args.Error(1)
}

func (m *MockProductRepository) SumByDate(ctx context.Context, profileID uint, date time.Time) (repository.DayTotals, error) {
	args := m.Called(ctx, profileID, date)
	return args.Get(0).(repository.DayTotals), args.Error(1)
}

func (m *MockProductRepository) SumByDateRange(ctx context.Context, profileID uint, start, end time.Time) ([]repository.DayTotals, error) {
	args := m.Called(ctx, profileID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DayTotals), args.Error(1)
}

func (m *MockProductRepository) ExistsInRange(ctx context.Context, profileID uint, start, end time.Time) (bool, error) {
	args := m.Called(ctx, profileID, start, end)
	return args.Bool(0), args.Error(1)
}

// MockTokenRepository is a mock implementation of repository.TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token *model.APIToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) FindByKey(ctx context.Context, key string) (*model.APIToken, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APIToken), args.Error(1)
}

func (m *MockTokenRepository) FindByUserID(ctx context.Context, userID uint) (*model.APIToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APIToken), args.Error(1)
}

func (m *MockTokenRepository) List(ctx context.Context) ([]model.APIToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.APIToken), args.Error(1)
}

func (m *MockTokenRepository) Replace(ctx context.Context, userID uint, newKey string, rotatedAt time.Time) (string, error) {
	args := m.Called(ctx, userID, newKey, rotatedAt)
	return args.String(0), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) MirrorAPIKey(ctx context.Context, key string, userID uint) error {
	args := m.Called(ctx, key, userID)
	return args.Error(0)
}

func (m *MockTokenStore) LookupAPIKey(ctx context.Context, key string) (uint, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(uint), args.Bool(1)
}

func (m *MockTokenStore) EvictAPIKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockEnqueuer is a mock implementation of Enqueuer.
type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

// stubNutrition returns fixed macros and records the last lookup.
type stubNutrition struct {
	result   nutrition.Nutrients
	err      error
	lastName string
	lastGram uint
}

func (s *stubNutrition) Lookup(_ context.Context, name string, grams uint) (nutrition.Nutrients, error) {
	s.lastName = name
	s.lastGram = grams
	if s.err != nil {
		return nutrition.Nutrients{}, s.err
	}
	return s.result, nil
}
