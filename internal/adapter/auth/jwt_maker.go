package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTMaker signs HS256 tokens carrying the customer id as subject.
type JWTMaker struct {
	secret   []byte
	duration time.Duration
}

func NewJWTMaker(secret string, duration time.Duration) (*JWTMaker, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if duration <= 0 {
		return nil, errors.New("token duration must be positive")
	}
	return &JWTMaker{secret: []byte(secret), duration: duration}, nil
}

func (m *JWTMaker) CreateToken(customerID int64) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": customerID,
		"iat": now.Unix(),
		"exp": now.Add(m.duration).Unix(),
	})
	return t.SignedString(m.secret)
}

func (m *JWTMaker) VerifyToken(token string) (int64, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("token subject is not a customer id")
	}
	return int64(sub), nil
}
