// Package memstore provides an in-memory store implementing the same
// contracts as the PostgreSQL repository. It backs unit and end-to-end
// tests that must not depend on a live database.
//
// Semantics mirror the real repository: tenant predicates are part of
// every note lookup, and the admit-and-create sequence runs under a lock
// so concurrent creates for one tenant serialize exactly as the SQL
// transaction does.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/repository"
)

// Store is an in-memory implementation of the repository contracts.
type Store struct {
	mu      sync.Mutex
	tenants map[string]*model.Tenant
	users   map[string]*model.User
	notes   map[string]*model.Note
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		tenants: make(map[string]*model.Tenant),
		users:   make(map[string]*model.User),
		notes:   make(map[string]*model.Note),
	}
}

// AddTenant seeds a tenant.
func (s *Store) AddTenant(tenant *model.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *tenant
	s.tenants[tenant.ID] = &cp
}

// AddUser seeds a user.
func (s *Store) AddUser(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *user
	s.users[user.ID] = &cp
}

// RemoveUser deletes a user, simulating account deactivation after token
// issuance.
func (s *Store) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// NoteCount reports the number of notes held by a tenant.
func (s *Store) NoteCount(tenantID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countNotesLocked(tenantID)
}

// GetUserByEmail implements the credential store contract.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// GetTenantByID returns a tenant by ID.
func (s *Store) GetTenantByID(ctx context.Context, id string) (*model.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenant, ok := s.tenants[id]
	if !ok {
		return nil, repository.ErrTenantNotFound
	}
	cp := *tenant
	return &cp, nil
}

// GetUserWithTenant implements the subject resolver contract used by the
// auth middleware.
func (s *Store) GetUserWithTenant(ctx context.Context, id string) (*model.User, *model.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil, repository.ErrUserNotFound
	}
	tenant, ok := s.tenants[user.TenantID]
	if !ok {
		return nil, nil, repository.ErrUserNotFound
	}
	userCp := *user
	tenantCp := *tenant
	return &userCp, &tenantCp, nil
}

// UpgradeTenantToPro sets the tenant's tier to pro, idempotently.
func (s *Store) UpgradeTenantToPro(ctx context.Context, id string) (*model.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenant, ok := s.tenants[id]
	if !ok {
		return nil, repository.ErrTenantNotFound
	}
	tenant.Subscription = model.TierPro
	cp := *tenant
	return &cp, nil
}

// CreateNoteWithinQuota admits and inserts a note under the tenant's plan
// limit in one critical section.
func (s *Store) CreateNoteWithinQuota(ctx context.Context, note *model.Note) (*model.Admission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant, ok := s.tenants[note.TenantID]
	if !ok {
		return nil, repository.ErrTenantNotFound
	}

	count := s.countNotesLocked(note.TenantID)

	admission := &model.Admission{Allowed: true, CurrentCount: count, Limit: tenant.NoteLimit()}
	if admission.Limit >= 0 {
		admission.Allowed = count < admission.Limit
	}

	if !admission.Allowed {
		return admission, nil
	}

	cp := *note
	s.notes[note.ID] = &cp
	return admission, nil
}

// GetNoteByID returns a note only when it belongs to the given tenant.
func (s *Store) GetNoteByID(ctx context.Context, tenantID, id string) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[id]
	if !ok || note.TenantID != tenantID {
		return nil, repository.ErrNoteNotFound
	}
	cp := s.withAuthorLocked(note)
	return &cp, nil
}

// ListNotesByTenant returns the tenant's notes, newest first.
func (s *Store) ListNotesByTenant(ctx context.Context, tenantID string) ([]*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := make([]*model.Note, 0)
	for _, note := range s.notes {
		if note.TenantID == tenantID {
			cp := s.withAuthorLocked(note)
			notes = append(notes, &cp)
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		}
		return notes[i].ID > notes[j].ID
	})

	return notes, nil
}

// UpdateNote mutates a note only when the tenant predicate matches.
func (s *Store) UpdateNote(ctx context.Context, tenantID, id, title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[id]
	if !ok || note.TenantID != tenantID {
		return repository.ErrNoteNotFound
	}
	note.Title = title
	note.Content = content
	note.UpdatedAt = time.Now().UTC()
	return nil
}

// DeleteNote removes a note only when the tenant predicate matches.
func (s *Store) DeleteNote(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[id]
	if !ok || note.TenantID != tenantID {
		return repository.ErrNoteNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *Store) countNotesLocked(tenantID string) int {
	count := 0
	for _, note := range s.notes {
		if note.TenantID == tenantID {
			count++
		}
	}
	return count
}

func (s *Store) withAuthorLocked(note *model.Note) model.Note {
	cp := *note
	if author, ok := s.users[note.UserID]; ok {
		cp.AuthorEmail = author.Email
		cp.AuthorRole = author.Role
	}
	return cp
}
