// Package service contains the business logic of the short-link core: code
// generation, link lifecycle, resolution, click recording, analytics, the
// audit trail and the principal directory.
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenExp is the lifetime of issued tokens.
const TokenExp = time.Hour * 24 * 30

// Claims carries the principal id. Everything else about the principal (role,
// quota, active flag) is read from the directory on every request so revoking
// an account takes effect immediately, not at token expiry.
type Claims struct {
	jwt.RegisteredClaims
	PrincipalID string `json:"principal_id"`
}

// Auth verifies the tokens the identity provider hands to clients and, for
// tests and local setups, can mint them itself.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// BuildToken signs a token for the given principal id.
func (a *Auth) BuildToken(principalID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExp)),
		},
		PrincipalID: principalID,
	})
	return token.SignedString(a.secret)
}

// ParseToken verifies the signature and returns the claims.
func (a *Auth) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
