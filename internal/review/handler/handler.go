package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawboard/internal/platform/metrics"
	"pawboard/internal/platform/middleware"
	"pawboard/internal/review/models"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/httputil"
	"pawboard/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the review operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, ownerID id.UserID, req models.CreateReviewRequest) (*models.Review, error)
	Get(ctx context.Context, reviewID id.ReviewID) (*models.Review, error)
	List(ctx context.Context) ([]*models.Review, error)
	Update(ctx context.Context, requesterID id.UserID, reviewID id.ReviewID, patch models.ReviewPatch) (*models.Review, error)
	Delete(ctx context.Context, requesterID id.UserID, reviewID id.ReviewID) error
}

// Handler wires review endpoints to the review service.
type Handler struct {
	service   Service
	validator middleware.TokenValidator
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New constructs a review handler with its dependencies.
func New(service Service, validator middleware.TokenValidator, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
		logger:    logger,
		metrics:   m,
	}
}

// Register mounts review endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/reviews", h.handleList)
	r.Get("/reviews/{reviewID}", h.handleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(h.validator, h.metrics, h.logger))
		pr.Post("/reviews", h.handleCreate)
		pr.Patch("/reviews/{reviewID}", h.handleUpdate)
		pr.Delete("/reviews/{reviewID}", h.handleDelete)
	})
}

// handleCreate handles POST /reviews.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid review create body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	review, err := h.service.Create(ctx, requestcontext.UserID(ctx), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, review)
}

// handleList handles GET /reviews.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// handleGet handles GET /reviews/{reviewID}.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reviewID, err := id.ParseReviewID(chi.URLParam(r, "reviewID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	review, err := h.service.Get(r.Context(), reviewID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, review)
}

// handleUpdate handles PATCH /reviews/{reviewID}.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviewID, err := id.ParseReviewID(chi.URLParam(r, "reviewID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var patch models.ReviewPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.WarnContext(ctx, "invalid review patch body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	review, err := h.service.Update(ctx, requestcontext.UserID(ctx), reviewID, patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, review)
}

// handleDelete handles DELETE /reviews/{reviewID}.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviewID, err := id.ParseReviewID(chi.URLParam(r, "reviewID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, requestcontext.UserID(ctx), reviewID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
