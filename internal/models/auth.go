package models

import "github.com/golang-jwt/jwt/v5"

// RegisterRequest holds the registration payload. The admin code is compared
// server-side against the configured activation secret; isAdmin alone never
// grants the role.
type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	ClassName string `json:"className" validate:"required,class_name"`
	IsAdmin   bool   `json:"isAdmin"`
	AdminCode string `json:"adminCode"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the issued token together with the safe user record.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID    string   `json:"userId"`
	Role      UserRole `json:"role"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	ClassName string   `json:"className"`
	jwt.RegisteredClaims
}
