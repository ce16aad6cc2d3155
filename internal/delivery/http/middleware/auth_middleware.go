package middleware

import (
	"errors"
	"strings"

	"eventsphere/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxRoleKey = "role"

// AdminMiddleware guards the aggregation control endpoints. Tokens are
// issued elsewhere; only HS256 tokens carrying role=admin pass.
type AdminMiddleware struct {
	jwt jwt.Verifier
}

func NewAdminMiddleware(verifier jwt.Verifier) *AdminMiddleware {
	return &AdminMiddleware{jwt: verifier}
}

func (m *AdminMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.Role != jwt.RoleAdmin {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}

		c.Locals(CtxRoleKey, claims.Role)

		return c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
