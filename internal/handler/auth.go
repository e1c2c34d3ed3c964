package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/noteplane/noteplane/internal/audit"
	"github.com/noteplane/noteplane/internal/handler/dto"
	"github.com/noteplane/noteplane/internal/middleware"
	"github.com/noteplane/noteplane/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
	audit  audit.Sink
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger, sink audit.Sink) *AuthHandler {
	if sink == nil {
		sink = audit.NoopSink{}
	}
	return &AuthHandler{svc: svc, logger: logger, audit: sink}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, middleware.GetRequestID(r.Context()), err)
		return
	}

	h.logger.Info("login successful",
		slog.String("user_id", result.User.ID),
		slog.String("tenant_slug", result.User.Tenant.Slug),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	now := time.Now()
	h.audit.Record(audit.EventPayload{
		TenantID:   result.User.Tenant.ID,
		ActorID:    result.User.ID,
		Action:     audit.ActionLogin,
		ActorHash:  audit.HashClientIP(r.RemoteAddr, now),
		OccurredAt: now.UnixMilli(),
	})

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  result.User,
	})
}
