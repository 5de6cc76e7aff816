// Package jwtmw はAPIのBearer認証に使うJWTの発行と検証を提供します。
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// generator はHS256で署名したトークンを発行します。
type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed JWT whose subject is the user ID.
func (g *generator) GenerateToken(userID, email string) (string, error) {
	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, userClaims{RegisteredClaims: claims, Email: email})
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// userClaims は標準クレームにメールアドレスを加えたものです。
type userClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}
