package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are the JWT claims issued to the shelter admin.
type AdminClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}
