package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user profile inside the token alongside the registered
// subject, issue and expiry claims.
type Claims struct {
	FirstName string `json:"fnm"`
	LastName  string `json:"lnm"`
	Email     string `json:"eml"`
	jwt.RegisteredClaims
}

// TokenService mints and validates the HS256 bearer tokens gating write
// requests.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Mint signs a token for an authenticated user, valid from now for the
// configured TTL.
func (s *TokenService) Mint(userID, firstName, lastName, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks signature and expiry. Any failure, including a token
// without an exp claim, is a validation error.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token validation: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token validation: invalid token")
	}
	return claims, nil
}
