// Package auth holds the JWT token helpers. No route requires a token yet;
// the types exist for a future login flow and are covered by tests.
package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type TokenData struct {
	Email string `json:"email"`
}

var ErrInvalidToken = errors.New("invalid token")

func jwtSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("your-secret-key-change-in-production")
}

// GenerateToken issues an HS256 bearer token for the given user.
func GenerateToken(userID int, email string, ttl time.Duration) (Token, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(ttl).Unix(),
	})

	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Token{AccessToken: signed, TokenType: "bearer"}, nil
}

// ParseToken validates a token string and returns the identity it carries.
func ParseToken(tokenString string) (TokenData, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return TokenData{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenData{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return TokenData{}, ErrInvalidToken
	}

	return TokenData{Email: email}, nil
}
