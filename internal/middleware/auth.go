// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"strings"

	"sentinel/internal/models"
	"sentinel/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const claimsKey = "claims"

// OperatorAuth validates an HS256 bearer token signed with secret and stores
// the operator claims in the request locals.
func OperatorAuth(secret string, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("auth")
	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return utils.Unauthorized(c, "missing authorization header")
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.Unauthorized(c, "invalid authorization format")
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &models.OperatorClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			log.Debug("token rejected", zap.Error(err))
			return utils.Unauthorized(c, "invalid token")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequirePermission rejects callers whose claims lack permission. It must run
// after OperatorAuth.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := Claims(c)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		if !claims.HasPermission(permission) {
			return utils.Forbidden(c, "Insufficient permissions")
		}
		return c.Next()
	}
}

// Claims returns the operator claims stored by OperatorAuth.
func Claims(c *fiber.Ctx) (*models.OperatorClaims, bool) {
	claims, ok := c.Locals(claimsKey).(*models.OperatorClaims)
	return claims, ok
}
