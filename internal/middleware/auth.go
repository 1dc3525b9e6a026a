package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's id
	UserIDKey contextKey = "user_id"

	// UserIDHeader is set by the auth gateway in front of this service.
	// Session issuance and token validation happen there, not here.
	UserIDHeader = "X-User-ID"
)

// GatewayAuthMiddleware resolves the authenticated user from the gateway
// header
type GatewayAuthMiddleware struct{}

// NewGatewayAuthMiddleware creates a new GatewayAuthMiddleware
func NewGatewayAuthMiddleware() *GatewayAuthMiddleware {
	return &GatewayAuthMiddleware{}
}

// Authenticate returns an Echo middleware that requires a valid user id
// header
func (m *GatewayAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(UserIDHeader)
			if raw == "" {
				return unauthorizedError(c, "Missing user identity")
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				return unauthorizedError(c, "Invalid user identity")
			}

			c.Set(string(UserIDKey), userID)
			return next(c)
		}
	}
}

// GetUserID returns the authenticated user's id from the request context, or
// uuid.Nil when the request is unauthenticated
func GetUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(string(UserIDKey)).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
