package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"switchyard/internal/cpf/service"
	"switchyard/pkg/platform/httputil"
	"switchyard/pkg/requestcontext"
)

// Service defines the formatting operation the handler depends on.
type Service interface {
	Format(ctx context.Context, in service.FormatInput) (service.FormatResult, error)
}

// Handler exposes the CPF formatting demo endpoint.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a CPF handler with its dependencies.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: svc,
		logger:  logger,
	}
}

// Register mounts the formatting endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/cpf/format", h.HandleFormat)
}

// HandleFormat handles POST /cpf/format.
func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[FormatRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Format(ctx, req.ToInput())
	if err != nil {
		h.logger.WarnContext(ctx, "cpf format failed",
			"request_id", requestID,
			"subject_id", req.SubjectID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
