package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/noteplane/noteplane/internal/auth"
	"github.com/noteplane/noteplane/internal/metrics"
	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/repository"
)

// dummyHash is compared against when the email is unknown, so login takes
// roughly the same time whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CredentialStore is the subset of the repository the auth service needs.
type CredentialStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetTenantByID(ctx context.Context, id string) (*model.Tenant, error)
}

// TokenIssuer signs bearer tokens for authenticated subjects.
type TokenIssuer interface {
	Issue(user *model.User, tenant *model.Tenant) (string, error)
}

// AuthService handles credential verification and session issuance.
type AuthService struct {
	store   CredentialStore
	tokens  TokenIssuer
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(store CredentialStore, tokens TokenIssuer, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{store: store, tokens: tokens, metrics: recorder}
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  model.PublicProfile
}

// Login verifies the email/password pair and issues a bearer token carrying
// the user's identity and tenant claims. Unknown emails and wrong passwords
// both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn a hash comparison so the miss is not observably faster.
			_ = auth.VerifyPassword(password, dummyHash)
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	tenant, err := s.store.GetTenantByID(ctx, user.TenantID)
	if err != nil {
		return nil, fmt.Errorf("lookup tenant: %w", err)
	}

	token, err := s.tokens.Issue(user, tenant)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLoginSuccess()
	return &LoginResult{
		Token: token,
		User:  user.ToProfile(tenant),
	}, nil
}
