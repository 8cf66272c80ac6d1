package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"ketotrack/internal/auth"
	"ketotrack/internal/repository"
)

// TokenRotationHandler replaces every user's API token with a freshly
// generated value and evicts the old Redis mirrors. Running it twice simply
// rotates twice; there is no duplicate-run guard and none is needed.
type TokenRotationHandler struct {
	tokens repository.TokenRepository
	store  auth.TokenStoreInterface
	logger *logrus.Logger
}

// NewTokenRotationHandler wires the handler.
func NewTokenRotationHandler(tokens repository.TokenRepository, store auth.TokenStoreInterface, logger *logrus.Logger) *TokenRotationHandler {
	return &TokenRotationHandler{tokens: tokens, store: store, logger: logger}
}

// ProcessTask implements asynq.Handler.
func (h *TokenRotationHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	tokens, err := h.tokens.List(ctx)
	if err != nil {
		return fmt.Errorf("list tokens: %w", err)
	}

	now := time.Now().UTC()
	rotated, failed := 0, 0
	for _, token := range tokens {
		newKey, err := auth.GenerateAPIKey()
		if err != nil {
			h.logger.WithError(err).WithField("user_id", token.UserID).Error("generate key")
			failed++
			continue
		}

		oldKey, err := h.tokens.Replace(ctx, token.UserID, newKey, now)
		if err != nil {
			h.logger.WithError(err).WithField("user_id", token.UserID).Error("replace token")
			failed++
			continue
		}

		// The old credential must stop authenticating immediately.
		_ = h.store.EvictAPIKey(ctx, oldKey)
		_ = h.store.MirrorAPIKey(ctx, newKey, token.UserID)
		rotated++
	}

	h.logger.WithFields(logrus.Fields{"rotated": rotated, "failed": failed}).Info("token rotation run complete")
	if failed > 0 {
		// Re-running is safe: already-rotated users just rotate again.
		return fmt.Errorf("token rotation: %d of %d rotations failed", failed, len(tokens))
	}
	return nil
}
