package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noteplane/noteplane/internal/audit"
	"github.com/noteplane/noteplane/internal/auth"
	"github.com/noteplane/noteplane/internal/handler/dto"
	"github.com/noteplane/noteplane/internal/middleware"
	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/service"
)

// NoteHandler handles HTTP requests for note operations.
// Every operation runs behind the auth middleware; the tenant scope comes
// from the auth context, never from the request.
type NoteHandler struct {
	svc    *service.NoteService
	logger *slog.Logger
	audit  audit.Sink
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(svc *service.NoteService, logger *slog.Logger, sink audit.Sink) *NoteHandler {
	if sink == nil {
		sink = audit.NoopSink{}
	}
	return &NoteHandler{svc: svc, logger: logger, audit: sink}
}

// recordAudit emits a fire-and-forget audit event for a note mutation.
func (h *NoteHandler) recordAudit(r *http.Request, actor *model.AuthContext, action, noteID string) {
	now := time.Now()
	h.audit.Record(audit.EventPayload{
		TenantID:   actor.TenantID,
		ActorID:    actor.UserID,
		Action:     action,
		TargetID:   noteID,
		ActorHash:  audit.HashClientIP(r.RemoteAddr, now),
		OccurredAt: now.UnixMilli(),
	})
}

// List handles GET /api/notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustAuthFromContext(r.Context())

	notes, err := h.svc.List(r.Context(), actor)
	if err != nil {
		writeServiceError(w, h.logger, middleware.GetRequestID(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"notes": dto.ToNoteResponses(notes),
	})
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustAuthFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "note ID is required", nil)
		return
	}

	note, err := h.svc.Get(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, h.logger, middleware.GetRequestID(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"note": dto.ToNoteResponse(note)})
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustAuthFromContext(r.Context())

	var req dto.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "title and content are required", nil)
		return
	}

	note, err := h.svc.Create(r.Context(), actor, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, h.logger, middleware.GetRequestID(r.Context()), err)
		return
	}

	h.logger.Info("note created",
		slog.String("note_id", note.ID),
		slog.String("tenant_id", note.TenantID),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)
	h.recordAudit(r, actor, audit.ActionNoteCreated, note.ID)

	writeJSON(w, http.StatusCreated, map[string]any{"note": dto.ToNoteResponse(note)})
}

// Update handles PUT /api/notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustAuthFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "note ID is required", nil)
		return
	}

	var req dto.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "title and content are required", nil)
		return
	}

	note, err := h.svc.Update(r.Context(), actor, id, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, h.logger, middleware.GetRequestID(r.Context()), err)
		return
	}

	h.recordAudit(r, actor, audit.ActionNoteUpdated, note.ID)
	writeJSON(w, http.StatusOK, map[string]any{"note": dto.ToNoteResponse(note)})
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustAuthFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "note ID is required", nil)
		return
	}

	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, h.logger, middleware.GetRequestID(r.Context()), err)
		return
	}

	h.logger.Info("note deleted",
		slog.String("note_id", id),
		slog.String("tenant_id", actor.TenantID),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)
	h.recordAudit(r, actor, audit.ActionNoteDeleted, id)

	writeJSON(w, http.StatusOK, map[string]string{"message": "note deleted successfully"})
}
