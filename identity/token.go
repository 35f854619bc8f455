package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the verified facts about a caller extracted from its bearer
// token: who they are and which plan tier they are on.
type Claims struct {
	UserID string
	Plan   string
}

// Premium reports whether the caller is on the premium plan.
func (c *Claims) Premium() bool {
	return c.Plan == "premium"
}

// Actor is a fully resolved caller: verified claims plus the free-tier
// usage counter loaded from the identity provider's private metadata.
type Actor struct {
	Claims
	FreeUsage int
}

// TokenVerifier validates a bearer token issued by the identity provider.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

type sessionClaims struct {
	Plan string `json:"plan"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a TokenVerifier that checks HS256 session tokens
// against the identity provider's shared verification key.
func NewTokenVerifier(secret string) TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	plan := claims.Plan
	if plan == "" {
		plan = "free"
	}
	return &Claims{UserID: claims.Subject, Plan: plan}, nil
}
