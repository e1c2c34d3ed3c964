// Package token issues and verifies the signed bearer tokens that carry
// identity and tenant claims between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/noteplane/noteplane/internal/model"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrTokenInvalid covers signature mismatch, malformed structure and
	// any other verification failure that is not an expiry.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired indicates a well-formed, correctly signed token whose
	// expiry has passed. Callers may react differently (e.g. prompt
	// re-login) but must not expose the distinction to unauthenticated
	// clients.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the identity claim set embedded in every token.
type Claims struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	TenantID   string `json:"tenant_id"`
	TenantSlug string `json:"tenant_slug"`
	jwtlib.RegisteredClaims
}

// Service signs and verifies self-contained HS256 tokens with a symmetric
// secret held only by this service. It has no side effects beyond a clock
// read.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service. A non-positive ttl falls back to
// DefaultTTL.
func NewService(secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given user and tenant, expiring at
// issue-time + the configured TTL.
func (s *Service) Issue(user *model.User, tenant *model.Tenant) (string, error) {
	return s.IssueWithTTL(user, tenant, s.ttl)
}

// IssueWithTTL signs a token with an explicit lifetime.
func (s *Service) IssueWithTTL(user *model.User, tenant *model.Tenant, ttl time.Duration) (string, error) {
	now := NowTimeFunc()
	claims := Claims{
		Email:      user.Email,
		Role:       user.Role,
		TenantID:   tenant.ID,
		TenantSlug: tenant.Slug,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token string.
// It rejects on signature mismatch, malformed structure, wrong signing
// algorithm, a missing expiry claim and expiry. Expiry is returned as
// ErrTokenExpired; every other failure collapses to the opaque
// ErrTokenInvalid.
func (s *Service) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwtlib.ParseWithClaims(raw, claims,
		func(t *jwtlib.Token) (any, error) { return s.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid || claims.Subject == "" || claims.TenantID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
