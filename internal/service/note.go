package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/noteplane/noteplane/internal/metrics"
	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/repository"
)

// NoteStore is the subset of the repository the note service needs.
// Implementations must enforce the tenant predicate inside each query and
// serialize same-tenant admission/insert pairs.
type NoteStore interface {
	CreateNoteWithinQuota(ctx context.Context, note *model.Note) (*model.Admission, error)
	GetNoteByID(ctx context.Context, tenantID, id string) (*model.Note, error)
	ListNotesByTenant(ctx context.Context, tenantID string) ([]*model.Note, error)
	UpdateNote(ctx context.Context, tenantID, id, title, content string) error
	DeleteNote(ctx context.Context, tenantID, id string) error
}

// NoteService handles note operations. The tenant identifier is always
// taken from the authenticated context, never from client-supplied input.
type NoteService struct {
	store   NoteStore
	metrics metrics.Recorder
}

// NewNoteService creates a new NoteService.
func NewNoteService(store NoteStore, recorder metrics.Recorder) *NoteService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &NoteService{store: store, metrics: recorder}
}

// List returns all notes for the authenticated tenant, newest first.
func (s *NoteService) List(ctx context.Context, actor *model.AuthContext) ([]*model.Note, error) {
	notes, err := s.store.ListNotesByTenant(ctx, actor.TenantID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Get returns a note by ID within the authenticated tenant. A note owned by
// another tenant yields the same ErrNoteNotFound as a missing one.
func (s *NoteService) Get(ctx context.Context, actor *model.AuthContext, id string) (*model.Note, error) {
	note, err := s.store.GetNoteByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

// Create admits the note under the tenant's plan limit and inserts it in
// one atomic operation. On rejection it returns a QuotaExceededError
// carrying the observed count and the limit.
func (s *NoteService) Create(ctx context.Context, actor *model.AuthContext, title, content string) (*model.Note, error) {
	now := time.Now().UTC()
	note := &model.Note{
		ID:        ulid.Make().String(),
		TenantID:  actor.TenantID,
		UserID:    actor.UserID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,

		AuthorEmail: actor.Email,
		AuthorRole:  actor.Role,
	}

	admission, err := s.store.CreateNoteWithinQuota(ctx, note)
	if err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("create note: %w", err)
	}

	if !admission.Allowed {
		s.metrics.IncQuotaDenied()
		return nil, &QuotaExceededError{
			CurrentCount: admission.CurrentCount,
			Limit:        admission.Limit,
		}
	}

	s.metrics.IncNoteCreated()
	return note, nil
}

// Update rewrites a note's title and content. The mutation itself carries
// the tenant predicate, so there is no window between check and act.
func (s *NoteService) Update(ctx context.Context, actor *model.AuthContext, id, title, content string) (*model.Note, error) {
	err := s.store.UpdateNote(ctx, actor.TenantID, id, title, content)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}

	s.metrics.IncNoteUpdated()
	return s.Get(ctx, actor, id)
}

// Delete removes a note as a single tenant-scoped conditional mutation.
func (s *NoteService) Delete(ctx context.Context, actor *model.AuthContext, id string) error {
	err := s.store.DeleteNote(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("delete note: %w", err)
	}
	s.metrics.IncNoteDeleted()
	return nil
}
