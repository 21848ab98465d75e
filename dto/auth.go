package dto

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/taskboard-api/models"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SignUpInput represents registration data
type SignUpInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// SignInInput represents login credentials
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload represents the response after authentication
type AuthPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
