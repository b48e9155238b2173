package http

import (
	"crypto/subtle"
	"strings"

	"mongo-gateway/internal/shared/contextkeys"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// AuthMiddleware guards routes with a static bearer-token allowlist.
type AuthMiddleware struct {
	tokens []string
}

// NewAuthMiddleware creates middleware for the given allowlist.
func NewAuthMiddleware(tokens []string) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// CORS middleware with the headers the gateway's browser-adjacent clients need.
func (m *AuthMiddleware) CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	})
}

// RequestID middleware tags every request with an X-Request-ID.
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		Generator:  uuid.NewString,
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// RequireToken returns middleware that requires a bearer token from the
// allowlist. Both a missing and an unknown token answer 401.
func (m *AuthMiddleware) RequireToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := m.extractToken(c)
		if err != nil || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "unauthorized",
				"message": "Authorization token required",
			})
		}

		if !m.allowed(token) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "unauthorized",
				"message": "Invalid token",
			})
		}

		return c.Next()
	}
}

// allowed checks the token against the allowlist in constant time per entry.
func (m *AuthMiddleware) allowed(token string) bool {
	match := false
	for _, candidate := range m.tokens {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) == 1 {
			match = true
		}
	}
	return match
}

// extractToken extracts the bearer token from the Authorization header.
func (m *AuthMiddleware) extractToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimPrefix(authHeader, "Bearer "), nil
		}
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "No authentication token found")
}
