package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ketotrack/internal/repository"
)

// Context keys set by APITokenMiddleware for downstream handlers.
const (
	ContextUserID    = "user_id"
	ContextProfileID = "profile_id"
)

const tokenScheme = "Token"

// APITokenMiddleware authenticates requests against the rotating opaque API
// token. The credential is read from "Authorization: Token <key>" or, as a
// fallback, the "token" query parameter. Lookups hit the Redis mirror first
// and fall back to the database, re-priming the mirror on a hit.
func APITokenMiddleware(store TokenStoreInterface, tokens repository.TokenRepository, profiles repository.ProfileRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := extractKey(c)
			if key == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing API token")
			}

			ctx := c.Request().Context()

			userID, ok := store.LookupAPIKey(ctx, key)
			if !ok {
				token, err := tokens.FindByKey(ctx, key)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid API token")
				}
				userID = token.UserID
				_ = store.MirrorAPIKey(ctx, key, userID)
			}

			profile, err := profiles.FindByUserID(ctx, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "no profile for token")
			}

			c.Set(ContextUserID, userID)
			c.Set(ContextProfileID, profile.ID)
			return next(c)
		}
	}
}

func extractKey(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == tokenScheme {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.QueryParam("token")
}
