package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ketotrack/internal/model"
)

// TokenRepository defines persistence operations for API tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *model.APIToken) error
	FindByKey(ctx context.Context, key string) (*model.APIToken, error)
	FindByUserID(ctx context.Context, userID uint) (*model.APIToken, error)
	List(ctx context.Context) ([]model.APIToken, error)
	// Replace swaps the stored key for a user inside a transaction so the
	// old credential never coexists with the new one.
	Replace(ctx context.Context, userID uint, newKey string, rotatedAt time.Time) (oldKey string, err error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository builds a GORM-backed repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.APIToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) FindByKey(ctx context.Context, key string) (*model.APIToken, error) {
	var token model.APIToken
	if err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) FindByUserID(ctx context.Context, userID uint) (*model.APIToken, error) {
	var token model.APIToken
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) List(ctx context.Context) ([]model.APIToken, error) {
	var tokens []model.APIToken
	if err := r.db.WithContext(ctx).Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *tokenRepository) Replace(ctx context.Context, userID uint, newKey string, rotatedAt time.Time) (string, error) {
	var oldKey string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var token model.APIToken
		if err := tx.Where("user_id = ?", userID).First(&token).Error; err != nil {
			return err
		}
		oldKey = token.Key
		return tx.Model(&model.APIToken{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"key":        newKey,
				"rotated_at": rotatedAt,
			}).Error
	})
	if err != nil {
		return "", err
	}
	return oldKey, nil
}
