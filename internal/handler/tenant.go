package handler

import (
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

// TenantHandler handles tenant subscription endpoints.
type TenantHandler struct {
	svc    *service.SubscriptionService
	logger *slog.Logger
	audit  audit.Sink
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(svc *service.SubscriptionService, logger *slog.Logger, sink audit.Sink) *TenantHandler {
	if sink == nil {
		sink = audit.NoopSink{}
	}
	return &TenantHandler{svc: svc, logger: logger, audit: sink}
}

// Upgrade handles POST /api/tenants/{slug}/upgrade.
func (h *TenantHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustAuthFromContext(r.Context())

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "tenant slug is required", nil)
		return
	}

	tenant, err := h.svc.Upgrade(r.Context(), actor, slug)
	if err != nil {
		writeServiceError(w, h.logger, middleware.GetRequestID(r.Context()), err)
		return
	}

	h.logger.Info("subscription upgraded",
		slog.String("tenant_id", tenant.ID),
		slog.String("tenant_slug", tenant.Slug),
		slog.String("actor_id", actor.UserID),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	now := time.Now()
	h.audit.Record(audit.EventPayload{
		TenantID:   tenant.ID,
		ActorID:    actor.UserID,
		Action:     audit.ActionTenantUpgraded,
		ActorHash:  audit.HashClientIP(r.RemoteAddr, now),
		OccurredAt: now.UnixMilli(),
	})

	writeJSON(w, http.StatusOK, dto.UpgradeResponse{
		Message: "subscription upgraded successfully",
		Tenant: model.TenantProfile{
			ID:           tenant.ID,
			Slug:         tenant.Slug,
			Name:         tenant.Name,
			Subscription: tenant.Subscription,
		},
	})
}
