package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"inventory-hub/internal/logging"
	"inventory-hub/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// SessionValidator 由 *service.Sessions 實作
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*service.CustomClaims, error)
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireSession 要求 Bearer token 且 Redis 中仍有對應 session
func RequireSession(v SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}
			ctx := c.Request().Context()
			claims, err := v.Validate(ctx, token)
			if err != nil {
				if errors.Is(err, service.ErrNoSession) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
				}
				logging.FromContext(ctx).Error("session lookup failed", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}
