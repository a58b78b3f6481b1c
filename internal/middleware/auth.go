package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ipatlas/geotrace/internal/config"
	"github.com/ipatlas/geotrace/internal/dto"
	"github.com/ipatlas/geotrace/internal/principal"
	"github.com/ipatlas/geotrace/internal/services"
)

// Protected verifies the bearer token's signature and expiry. A request with
// no Authorization header at all gets 401; a header that is present but
// carries a malformed, badly signed or expired token gets 403.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if c.Get(fiber.HeaderAuthorization) == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Access token required",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid or expired token",
			})
		},
	})
}

// RequirePrincipal resolves the verified token's subject against the users
// table and attaches the resulting principal to the request. The store is
// re-checked on every call; nothing about user existence is cached across
// requests.
func RequirePrincipal(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := subjectFromToken(c)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid or expired token",
			})
		}

		p, err := authService.ResolvePrincipal(userID)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid or expired token",
			})
		}

		principal.Set(c, p)
		return c.Next()
	}
}

func subjectFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
