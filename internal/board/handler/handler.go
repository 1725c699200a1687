package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawboard/internal/board/models"
	"pawboard/internal/platform/metrics"
	"pawboard/internal/platform/middleware"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/httputil"
	"pawboard/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the board operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, ownerID id.UserID, req models.CreateBoardRequest) (*models.Board, error)
	Get(ctx context.Context, boardID id.BoardID) (*models.Board, error)
	List(ctx context.Context) ([]*models.Board, error)
	Update(ctx context.Context, requesterID id.UserID, boardID id.BoardID, patch models.BoardPatch) (*models.Board, error)
	Delete(ctx context.Context, requesterID id.UserID, boardID id.BoardID) error
}

// Handler wires board endpoints to the board service.
type Handler struct {
	service   Service
	validator middleware.TokenValidator
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New constructs a board handler with its dependencies.
func New(service Service, validator middleware.TokenValidator, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
		logger:    logger,
		metrics:   m,
	}
}

// Register mounts board endpoints on the router. Reads are public,
// mutations sit behind the auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/boards", h.handleList)
	r.Get("/boards/{boardID}", h.handleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(h.validator, h.metrics, h.logger))
		pr.Post("/boards", h.handleCreate)
		pr.Patch("/boards/{boardID}", h.handleUpdate)
		pr.Delete("/boards/{boardID}", h.handleDelete)
	})
}

// handleCreate handles POST /boards. The owner is always the verified
// requester; any owner field in the body is ignored.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid board create body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	board, err := h.service.Create(ctx, requestcontext.UserID(ctx), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, board)
}

// handleList handles GET /boards.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	boards, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if boards == nil {
		boards = []*models.Board{}
	}
	httputil.WriteJSON(w, http.StatusOK, boards)
}

// handleGet handles GET /boards/{boardID}. A malformed id is rejected as
// invalid input, which is a different failure from a well-formed id that
// matches nothing.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	boardID, err := id.ParseBoardID(chi.URLParam(r, "boardID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	board, err := h.service.Get(r.Context(), boardID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, board)
}

// handleUpdate handles PATCH /boards/{boardID}.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	boardID, err := id.ParseBoardID(chi.URLParam(r, "boardID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var patch models.BoardPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.WarnContext(ctx, "invalid board patch body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	board, err := h.service.Update(ctx, requestcontext.UserID(ctx), boardID, patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, board)
}

// handleDelete handles DELETE /boards/{boardID}.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	boardID, err := id.ParseBoardID(chi.URLParam(r, "boardID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, requestcontext.UserID(ctx), boardID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
