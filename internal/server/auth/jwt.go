// Package auth issues and verifies the HS256 access tokens handed out by
// POST /login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the operator's role. The
// username travels in the subject.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateToken signs a token for username valid for validityDuration.
func GenerateToken(username, role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Role: role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired; anything else that fails verification
// yields an error wrapping common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
