package fakeapi

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are carried by access tokens. Generation ties a token to the
// server's current generation so Expire can invalidate every issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	Generation int64  `json:"gen"`
}

func GenerateToken(c Claims, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(validity))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secretKey)
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired, anything else that fails common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
