package models

import "github.com/golang-jwt/jwt/v5"

type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`

	// PinVerified is set on tokens minted after a successful PIN check and
	// gates the sensitive admin endpoints.
	PinVerified bool `json:"pin_verified,omitempty"`
}

// IsAdmin reports whether the role has full control (adjustments, capital
// moves, sessions, settings, exports, users).
func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
