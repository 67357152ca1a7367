package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes for out-of-band tokens. Access and refresh tokens carry no
// purpose; a purpose-tagged token must never pass as a session token.
const (
	PurposeVerify = "verify"
	PurposeReset  = "reset"
)

// AppClaims are the signed claims used across every token class. Name is set
// on access tokens so authenticated requests need no user lookup; Purpose is
// set on verification/reset tokens only.
type AppClaims struct {
	Name    string `json:"name,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT signs an HS256 token for userID with the given expiry.
// name and purpose may be empty depending on the token class; jti is set
// only on refresh tokens (it feeds the revocation denylist).
func GenerateJWT(userID, name, purpose, jti, secret, issuer string, expiryDuration time.Duration) (string, error) {
	now := time.Now()
	claims := AppClaims{
		Name:    name,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string and validates its signature and
// standard claims against the given secret. Signature, shape and expiry
// failures all surface as an error; callers must not distinguish them.
func ParseAndValidateJWT(tokenString string, secretKey string) (*AppClaims, error) {
	claims := &AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
