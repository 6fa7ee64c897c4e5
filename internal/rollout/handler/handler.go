package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"switchyard/internal/rollout/models"
	"switchyard/pkg/platform/httputil"
	"switchyard/pkg/requestcontext"
)

// Service defines the configuration operations the handler depends on.
type Service interface {
	Rollout(ctx context.Context) models.RolloutConfig
	Eligibility(ctx context.Context) models.EligibilityConfig
	SetEnabled(ctx context.Context, enabled bool) error
	SetPercentage(ctx context.Context, percentage int) error
	SetPublishResults(ctx context.Context, publish bool) error
	SetCriteriaValidationActive(ctx context.Context, active bool) error
	SetMultipleCriteriaEnabled(ctx context.Context, enabled bool) error
	SetAllowedSubjectTypes(ctx context.Context, types []string) error
	SetAllowedAllowlistIDs(ctx context.Context, ids []string) error
	SetAllowedRegions(ctx context.Context, regions []string) error
}

// Handler wires rollout configuration endpoints to the rollout service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a rollout handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterAdmin mounts the configuration endpoints on the router. Callers
// are expected to guard the router with admin auth middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/rollout", h.HandleGetRollout)
	r.Put("/admin/rollout", h.HandleUpdateRollout)
	r.Get("/admin/rollout/eligibility", h.HandleGetEligibility)
	r.Put("/admin/rollout/eligibility", h.HandleUpdateEligibility)
}

// HandleGetRollout handles GET /admin/rollout.
func (h *Handler) HandleGetRollout(w http.ResponseWriter, r *http.Request) {
	cfg := h.service.Rollout(r.Context())
	httputil.WriteJSON(w, http.StatusOK, FromRolloutConfig(cfg))
}

// HandleUpdateRollout handles PUT /admin/rollout. Absent fields are left
// untouched so operators can flip one knob at a time.
func (h *Handler) HandleUpdateRollout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UpdateRolloutRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if req.Enabled != nil {
		if err := h.service.SetEnabled(ctx, *req.Enabled); err != nil {
			h.writeUpdateError(w, ctx, requestID, "enabled", err)
			return
		}
	}
	if req.Percentage != nil {
		if err := h.service.SetPercentage(ctx, *req.Percentage); err != nil {
			h.writeUpdateError(w, ctx, requestID, "percentage", err)
			return
		}
	}
	if req.PublishResults != nil {
		if err := h.service.SetPublishResults(ctx, *req.PublishResults); err != nil {
			h.writeUpdateError(w, ctx, requestID, "publish_results", err)
			return
		}
	}

	h.logger.InfoContext(ctx, "rollout config updated",
		"request_id", requestID,
		"admin", requestcontext.AdminSubject(ctx),
	)

	httputil.WriteJSON(w, http.StatusOK, FromRolloutConfig(h.service.Rollout(ctx)))
}

// HandleGetEligibility handles GET /admin/rollout/eligibility.
func (h *Handler) HandleGetEligibility(w http.ResponseWriter, r *http.Request) {
	cfg := h.service.Eligibility(r.Context())
	httputil.WriteJSON(w, http.StatusOK, FromEligibilityConfig(cfg))
}

// HandleUpdateEligibility handles PUT /admin/rollout/eligibility.
func (h *Handler) HandleUpdateEligibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UpdateEligibilityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if req.CriteriaValidationActive != nil {
		if err := h.service.SetCriteriaValidationActive(ctx, *req.CriteriaValidationActive); err != nil {
			h.writeUpdateError(w, ctx, requestID, "criteria_validation_active", err)
			return
		}
	}
	if req.MultipleCriteriaEnabled != nil {
		if err := h.service.SetMultipleCriteriaEnabled(ctx, *req.MultipleCriteriaEnabled); err != nil {
			h.writeUpdateError(w, ctx, requestID, "multiple_criteria_enabled", err)
			return
		}
	}
	if req.AllowedSubjectTypes != nil {
		if err := h.service.SetAllowedSubjectTypes(ctx, req.AllowedSubjectTypes); err != nil {
			h.writeUpdateError(w, ctx, requestID, "allowed_subject_types", err)
			return
		}
	}
	if req.AllowedAllowlistIDs != nil {
		if err := h.service.SetAllowedAllowlistIDs(ctx, req.AllowedAllowlistIDs); err != nil {
			h.writeUpdateError(w, ctx, requestID, "allowed_allowlist_ids", err)
			return
		}
	}
	if req.AllowedRegions != nil {
		if err := h.service.SetAllowedRegions(ctx, req.AllowedRegions); err != nil {
			h.writeUpdateError(w, ctx, requestID, "allowed_regions", err)
			return
		}
	}

	h.logger.InfoContext(ctx, "eligibility config updated",
		"request_id", requestID,
		"admin", requestcontext.AdminSubject(ctx),
	)

	httputil.WriteJSON(w, http.StatusOK, FromEligibilityConfig(h.service.Eligibility(ctx)))
}

func (h *Handler) writeUpdateError(w http.ResponseWriter, ctx context.Context, requestID, field string, err error) {
	h.logger.WarnContext(ctx, "config update failed",
		"request_id", requestID,
		"field", field,
		"error", err,
	)
	httputil.WriteError(w, err)
}
