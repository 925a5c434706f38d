package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the authenticated account identity.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}
