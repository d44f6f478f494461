package middleware // middleware provides reusable request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medinova/health-claims-api/internal/auth"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's user id and session id into the request context.
// The provided secret must match the one used when issuing tokens.
// Handlers behind this middleware read the values via `c.Get("user_id")`
// and `c.Get("session_id")`.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := auth.DecodeToken(secret, raw, true, false)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}

			c.Set("user_id", claims.UserID)
			c.Set("session_id", claims.SessionID)
			return next(c)
		}
	}
}
