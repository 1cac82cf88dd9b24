package packd

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid is returned for any malformed, expired, or
// wrong-signature bearer token.
var ErrTokenInvalid = errors.New("packd: invalid token")

// IssueToken signs a short-lived HS256 bearer token for subject (an
// editor instance ID) using the config's secret, valid for TokenTTL.
func IssueToken(cfg Config, subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("packd: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks a bearer token's signature and expiry, returning the
// subject it was issued for.
func VerifyToken(cfg Config, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrTokenInvalid, t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims.Subject, nil
}
