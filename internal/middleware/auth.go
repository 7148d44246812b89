package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNoToken      = errors.New("invalid token in context")
	ErrInvalidClaim = errors.New("invalid claims")
	ErrMissingSub   = errors.New("missing sub claim")
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// GetUserID extracts the caller's UUID from the "sub" claim set by JWTProtected.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := claimsOf(c)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return uuid.Nil, ErrMissingSub
	}
	return uuid.Parse(sub)
}

func claimsOf(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaim
	}
	return claims, nil
}
