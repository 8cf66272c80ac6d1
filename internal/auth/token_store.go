package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"ketotrack/internal/cache"
)

const (
	refreshTokenKeyPrefix = "refresh_token:"
	apiTokenKeyPrefix     = "api_token:"
)

// apiTokenTTL bounds how long a mirrored API key survives in Redis without
// a database round trip refreshing it. Rotation deletes the mirror
// explicitly, so the TTL only covers keys orphaned by out-of-band changes.
const apiTokenTTL = 24 * time.Hour

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID uint, email string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
	MirrorAPIKey(ctx context.Context, key string, userID uint) error
	LookupAPIKey(ctx context.Context, key string) (userID uint, ok bool)
	EvictAPIKey(ctx context.Context, key string) error
}

// TokenStore handles storage and retrieval of tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	data := map[string]interface{}{
		"user_id": userID,
		"email":   email,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}

	key := refreshTokenKeyPrefix + tokenID
	return s.cache.Set(ctx, key, payload, ttl)
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (userID uint, email string, err error) {
	key := refreshTokenKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return 0, "", fmt.Errorf("refresh token not found")
	}

	var tokenData map[string]interface{}
	if err := json.Unmarshal(data, &tokenData); err != nil {
		return 0, "", fmt.Errorf("unmarshal token data: %w", err)
	}

	uid, ok := tokenData["user_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("invalid user_id in token data")
	}
	userID = uint(uid)

	email, ok = tokenData["email"].(string)
	if !ok {
		return 0, "", fmt.Errorf("invalid email in token data")
	}

	return userID, email, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	key := refreshTokenKeyPrefix + tokenID
	return s.cache.Delete(ctx, key)
}

// MirrorAPIKey caches an API key to user mapping for fast auth lookups.
func (s *TokenStore) MirrorAPIKey(ctx context.Context, key string, userID uint) error {
	return s.cache.Set(ctx, apiTokenKeyPrefix+key, []byte(strconv.FormatUint(uint64(userID), 10)), apiTokenTTL)
}

// LookupAPIKey resolves an API key to its owner via Redis. A miss is not
// an authentication failure; the caller falls back to the database.
func (s *TokenStore) LookupAPIKey(ctx context.Context, key string) (uint, bool) {
	data, err := s.cache.Get(ctx, apiTokenKeyPrefix+key)
	if err != nil || data == nil {
		return 0, false
	}
	userID, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// EvictAPIKey drops a mirrored API key, used when a token is rotated.
func (s *TokenStore) EvictAPIKey(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, apiTokenKeyPrefix+key)
}
