package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawboard/internal/auth/models"
	"pawboard/internal/platform/metrics"
	"pawboard/internal/platform/middleware"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/httputil"
	"pawboard/pkg/platform/sentinel"
	"pawboard/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,TokenIssuer

// Service defines the account operations the HTTP layer depends on.
type Service interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error)
	LogIn(ctx context.Context, email, password string) (models.LogInResult, error)
	GetUser(ctx context.Context, userID id.UserID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID id.UserID, patch models.ProfilePatch) (*models.User, error)
	Withdraw(ctx context.Context, userID id.UserID) error
	CheckNickname(ctx context.Context, nickname string) (bool, error)
}

// TokenIssuer mints a session token for a verified identity.
type TokenIssuer interface {
	Issue(userID id.UserID, email, role string) (string, error)
}

// Handler wires account endpoints to the auth service. Token minting
// lives here, at the boundary: the service only ever deals in verified
// credentials and accounts.
type Handler struct {
	service   Service
	tokens    TokenIssuer
	validator middleware.TokenValidator
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New constructs an auth handler with its dependencies.
func New(service Service, tokens TokenIssuer, validator middleware.TokenValidator, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:   service,
		tokens:    tokens,
		validator: validator,
		logger:    logger,
		metrics:   m,
	}
}

// Register mounts account endpoints on the router. Signup, login, and the
// nickname pre-check are public; everything else requires a valid token.
func (h *Handler) Register(r chi.Router) {
	r.Post("/signup", h.handleSignUp)
	r.Post("/login", h.handleLogIn)
	r.Get("/users/check-nickname/{nickname}", h.handleCheckNickname)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(h.validator, h.metrics, h.logger))
		pr.Get("/users/check-token", h.handleCheckToken)
		pr.Get("/users/me", h.handleGetMe)
		pr.Patch("/users/me", h.handleUpdateMe)
		pr.Delete("/users/me", h.handleDeleteMe)
	})
}

type logInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logInResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type checkNicknameResponse struct {
	IsDuplicate bool `json:"is_duplicate"`
}

type checkTokenResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id"`
}

// handleSignUp handles POST /signup. The contract pins duplicate email
// and duplicate nickname to 400 responses with distinguishable reason
// codes, so the default conflict mapping is overridden here.
func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid signup request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, err := h.service.SignUp(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrEmailTaken):
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error:            "email_taken",
				ErrorDescription: "email already registered",
			})
		case errors.Is(err, sentinel.ErrNicknameTaken):
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error:            "nickname_taken",
				ErrorDescription: "nickname already taken",
			})
		default:
			h.logger.WarnContext(ctx, "signup failed",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
		}
		return
	}

	h.logger.InfoContext(ctx, "user signed up",
		"request_id", requestID,
		"user_id", user.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, user)
}

// handleLogIn handles POST /login. Credential failures are 401 with the
// classified reason; only malformed requests and infrastructure errors
// take other statuses.
func (h *Handler) handleLogIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req logInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid login request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.service.LogIn(ctx, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !result.Success() {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
			Error: string(result.Failure),
		})
		return
	}

	token, err := h.tokens.Issue(result.User.ID, result.User.Email, result.User.Role.String())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token",
			"request_id", requestID,
			"user_id", result.User.ID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to issue token"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, logInResponse{
		Token:  token,
		UserID: result.User.ID.String(),
	})
}

// handleCheckNickname handles GET /users/check-nickname/{nickname}.
func (h *Handler) handleCheckNickname(w http.ResponseWriter, r *http.Request) {
	taken, err := h.service.CheckNickname(r.Context(), chi.URLParam(r, "nickname"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, checkNicknameResponse{IsDuplicate: taken})
}

// handleCheckToken handles GET /users/check-token. Reaching this handler
// means RequireAuth already verified the token; it only reports back the
// verified identity.
func (h *Handler) handleCheckToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, checkTokenResponse{Valid: true, UserID: userID.String()})
}

// handleGetMe handles GET /users/me.
func (h *Handler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

// handleUpdateMe handles PATCH /users/me. The patch type has no
// credential fields, so a password in the body is silently ignored rather
// than applied.
func (h *Handler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var patch models.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.WarnContext(ctx, "invalid profile patch body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, err := h.service.UpdateProfile(ctx, userID, patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

// handleDeleteMe handles DELETE /users/me.
func (h *Handler) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.service.Withdraw(ctx, userID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "user withdrew",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
	)
	w.WriteHeader(http.StatusNoContent)
}

// identity pulls the verified user from context. A miss means the route
// was mounted without RequireAuth, which is a wiring bug, not a client
// error.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		h.logger.ErrorContext(ctx, "identity missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return id.UserID{}, false
	}
	return userID, true
}
