package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noteplane/noteplane/internal/model"
)

func testSubject() (*model.User, *model.Tenant) {
	tenant := &model.Tenant{
		ID:           "tenant-acme",
		Slug:         "acme",
		Name:         "Acme Corporation",
		Subscription: model.TierFree,
	}
	user := &model.User{
		ID:       "user-1",
		Email:    "admin@acme.test",
		Role:     model.RoleAdmin,
		TenantID: tenant.ID,
	}
	return user, tenant
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)
	user, tenant := testSubject()

	raw, err := svc.Issue(user, tenant)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, model.RoleAdmin, claims.Role)
	require.Equal(t, tenant.ID, claims.TenantID)
	require.Equal(t, tenant.Slug, claims.TenantSlug)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)
	user, tenant := testSubject()

	issued := time.Now()
	NowTimeFunc = func() time.Time { return issued }
	defer func() { NowTimeFunc = time.Now }()

	raw, err := svc.IssueWithTTL(user, tenant, time.Minute)
	require.NoError(t, err)

	// Still valid just before expiry.
	NowTimeFunc = func() time.Time { return issued.Add(30 * time.Second) }
	_, err = svc.Verify(raw)
	require.NoError(t, err)

	// Past expiry the failure must be the distinct expired kind.
	NowTimeFunc = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.Verify(raw)
	require.True(t, errors.Is(err, ErrTokenExpired))
}

func TestVerifyRejectsInvalid(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)
	other := NewService([]byte("other-secret"), time.Hour)
	user, tenant := testSubject()

	valid, err := svc.Issue(user, tenant)
	require.NoError(t, err)

	tampered := valid[:len(valid)-4] + "AAAA"

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"truncated", strings.Split(valid, ".")[0]},
		{"tampered_signature", tampered},
		{"wrong_secret", mustIssue(t, other, user, tenant)},
		{"missing_expiry", issueWithoutExpiry(t, []byte("test-secret"), user, tenant)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Verify(test.raw)
			require.True(t, errors.Is(err, ErrTokenInvalid), "got %v", err)
		})
	}
}

func mustIssue(t *testing.T, svc *Service, user *model.User, tenant *model.Tenant) string {
	t.Helper()
	raw, err := svc.Issue(user, tenant)
	require.NoError(t, err)
	return raw
}

// issueWithoutExpiry signs an otherwise well-formed token that omits the
// exp claim. Verification must refuse it rather than treat it as eternal.
func issueWithoutExpiry(t *testing.T, secret []byte, user *model.User, tenant *model.Tenant) string {
	t.Helper()
	claims := Claims{
		Email:      user.Email,
		Role:       user.Role,
		TenantID:   tenant.ID,
		TenantSlug: tenant.Slug,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:  user.ID,
			IssuedAt: jwtlib.NewNumericDate(time.Now()),
		},
	}
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return raw
}
