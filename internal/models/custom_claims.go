package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CustomClaims carries the identity fields the API reads on every request,
// on top of the registered JWT claims. Email and Role are set on access
// tokens only; refresh tokens stay minimal.
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
}

// ParseUserID returns the subject user ID as a UUID
func (c *CustomClaims) ParseUserID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}
