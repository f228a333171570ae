package types

import "github.com/golang-jwt/jwt/v5"

// Claims carried by bearer tokens issued by the auth provider. The subject
// holds the user's id.
type Claims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}
