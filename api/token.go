package api

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type JWTClaims struct {
	Username string `json:"un"`
	jwt.RegisteredClaims
}

// TokenManager signs and checks the HS256 admin tokens handed out by /login
type TokenManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenManager(secretKey string, ttlHours int) (*TokenManager, error) {
	if secretKey == "" {
		return nil, errors.New("token secret is empty")
	}
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &TokenManager{
		secretKey: []byte(secretKey),
		ttl:       time.Duration(ttlHours) * time.Hour,
		now:       time.Now,
	}, nil
}

// CreateToken returns a signed token for username and its expiry
func (tm *TokenManager) CreateToken(username string) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)

	claims := &JWTClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// CheckToken verifies requestToken and returns the username it was issued to
func (tm *TokenManager) CheckToken(requestToken string) (string, error) {
	claims := JWTClaims{}
	_, err := jwt.ParseWithClaims(requestToken, &claims, func(_ *jwt.Token) (any, error) {
		return tm.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(tm.now))
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}
