package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service issues and verifies the bearer tokens that gate quiz operations.
type Service struct{ hmac []byte }

func NewService(secret string) *Service { return &Service{hmac: []byte(secret)} }

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

const tokenLifetime = 24 * time.Hour

func (s *Service) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "quizmint",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.hmac)
}

func (s *Service) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.hmac, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return c, nil
}
