// Package auth implements issuing and verification of access tokens.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "inkwell-api"
	audience = "inkwell-client"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, malformed payload, wrong issuer/audience, or expiry.
// Callers must not distinguish between the causes.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and verifies signed, time-limited bearer tokens.
// Tokens are stateless; rotating the secret invalidates all outstanding
// tokens, and there is no revocation list.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a TokenService with the given signing secret and
// token lifetime.
func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Issue creates a signed JWT carrying the user's identity.
func (s *TokenService) Issue(userID uint) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(s.lifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the token signature, expiry, issuer and audience, and
// returns the user ID carried in the subject claim. Any failure yields
// ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	if iss, issOk := claims["iss"].(string); !issOk || iss != issuer {
		return 0, ErrInvalidToken
	}
	if aud, audOk := claims["aud"].(string); !audOk || aud != audience {
		return 0, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
