// Package middleware provides HTTP middleware for authentication and
// role gating.
package middleware

import (
	"strings"

	"kahera/internal/models"
	"kahera/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Auth validates the bearer token and stores the claims in the request
// context under "claims".
func Auth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	_, claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals("claims", claims)
	return c.Next()
}

// RequireRoles allows only the listed roles through. Mirrors the route
// groups of the web app: viewer reads, staff records cash-in/out, admin
// does everything.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return utils.Unauthorized(c, "invalid claims")
		}
		if !allowed[claims.Role] {
			return utils.Forbidden(c, "insufficient role")
		}
		return c.Next()
	}
}

// RequirePin gates endpoints behind a verified PIN. Admins obtain a
// pin-verified token via POST /api/pin/verify.
func RequirePin(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.PinVerified {
		return utils.Forbidden(c, "pin verification required")
	}
	return c.Next()
}

// Admin is shorthand for the admin-only route group.
func Admin() fiber.Handler {
	return RequireRoles(models.RoleAdmin)
}

// Recorder covers roles allowed to create cash-in/cash-out entries.
func Recorder() fiber.Handler {
	return RequireRoles(models.RoleAdmin, models.RoleStaff)
}
