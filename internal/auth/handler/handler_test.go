package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pawboard/internal/auth/handler/mocks"
	"pawboard/internal/auth/models"
	"pawboard/internal/jwttoken"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/sentinel"
	"pawboard/pkg/requestcontext"
)

type AuthHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockService
	mockIssuer  *mocks.MockTokenIssuer
	tokens      *jwttoken.Service
	handler     *Handler
	router      chi.Router
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.ctrl)
	s.mockIssuer = mocks.NewMockTokenIssuer(s.ctrl)
	s.tokens = jwttoken.NewService("test-signing-key", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.handler = New(s.mockService, s.mockIssuer, jwttoken.NewServiceAdapter(s.tokens), logger, nil)
	s.router = chi.NewRouter()
	s.handler.Register(s.router)
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerSuite) decodeBody(w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *AuthHandlerSuite) TestSignUp_Created() {
	userID := id.UserID(uuid.New())
	s.mockService.EXPECT().SignUp(gomock.Any(), models.SignUpRequest{
		Email:    "owner@example.com",
		Password: "hunter2!",
		Nickname: "mochi",
	}).Return(&models.User{
		ID:       userID,
		Email:    "owner@example.com",
		Nickname: "mochi",
		Role:     models.RoleUser,
	}, nil)

	w := s.postJSON("/signup", map[string]string{
		"email":    "owner@example.com",
		"password": "hunter2!",
		"nickname": "mochi",
	})

	s.Equal(http.StatusCreated, w.Code)
	resp := s.decodeBody(w)
	s.Equal(userID.String(), resp["id"])
	s.Equal("owner@example.com", resp["email"])
	s.NotContains(w.Body.String(), "password")
}

func (s *AuthHandlerSuite) TestSignUp_DuplicatesAre400WithReason() {
	s.Run("email taken", func() {
		s.mockService.EXPECT().SignUp(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.Wrap(sentinel.ErrEmailTaken, dErrors.CodeConflict, "email already registered"))

		w := s.postJSON("/signup", map[string]string{"email": "dup@example.com", "password": "x", "nickname": "a"})

		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("email_taken", s.decodeBody(w)["error"])
	})

	s.Run("nickname taken", func() {
		s.mockService.EXPECT().SignUp(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.Wrap(sentinel.ErrNicknameTaken, dErrors.CodeConflict, "nickname already taken"))

		w := s.postJSON("/signup", map[string]string{"email": "new@example.com", "password": "x", "nickname": "dup"})

		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("nickname_taken", s.decodeBody(w)["error"])
	})
}

func (s *AuthHandlerSuite) TestSignUp_ValidationAndBadBody() {
	s.Run("service validation error", func() {
		s.mockService.EXPECT().SignUp(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "email is required"))

		w := s.postJSON("/signup", map[string]string{"password": "x", "nickname": "a"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *AuthHandlerSuite) TestLogIn_Success() {
	userID := id.UserID(uuid.New())
	user := &models.User{ID: userID, Email: "owner@example.com", Role: models.RoleUser}

	s.mockService.EXPECT().LogIn(gomock.Any(), "owner@example.com", "hunter2!").
		Return(models.LogInResult{User: user}, nil)
	s.mockIssuer.EXPECT().Issue(userID, "owner@example.com", "user").
		Return("signed.jwt.token", nil)

	w := s.postJSON("/login", map[string]string{"email": "owner@example.com", "password": "hunter2!"})

	s.Equal(http.StatusOK, w.Code)
	resp := s.decodeBody(w)
	s.Equal("signed.jwt.token", resp["token"])
	s.Equal(userID.String(), resp["user_id"])
}

func (s *AuthHandlerSuite) TestLogIn_FailureReasons() {
	cases := []struct {
		name    string
		failure models.LogInFailure
	}{
		{"unknown email", models.LogInFailureEmailNotFound},
		{"wrong password", models.LogInFailurePasswordMismatch},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().LogIn(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(models.LogInResult{Failure: tc.failure}, nil)

			w := s.postJSON("/login", map[string]string{"email": "a@b.com", "password": "x"})

			s.Equal(http.StatusUnauthorized, w.Code)
			s.Equal(string(tc.failure), s.decodeBody(w)["error"])
		})
	}
}

func (s *AuthHandlerSuite) TestLogIn_IssuerFailureIsInternal() {
	user := &models.User{ID: id.UserID(uuid.New()), Email: "owner@example.com", Role: models.RoleUser}
	s.mockService.EXPECT().LogIn(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.LogInResult{User: user}, nil)
	s.mockIssuer.EXPECT().Issue(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("key failure"))

	w := s.postJSON("/login", map[string]string{"email": "owner@example.com", "password": "x"})

	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "key failure")
}

func (s *AuthHandlerSuite) TestCheckNickname() {
	s.mockService.EXPECT().CheckNickname(gomock.Any(), "mochi").Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/check-nickname/mochi", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, s.decodeBody(w)["is_duplicate"])
}

// Protected routes reject missing, malformed, and expired tokens with the
// same generic 401 before the handler runs.
func (s *AuthHandlerSuite) TestProtectedRoutes_Unauthorized() {
	expired, err := jwttoken.NewService("test-signing-key", -time.Minute).
		Issue(id.UserID(uuid.New()), "a@b.com", "user")
	s.Require().NoError(err)
	wrongKey, err := jwttoken.NewService("other-key", time.Hour).
		Issue(id.UserID(uuid.New()), "a@b.com", "user")
	s.Require().NoError(err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer garbage"},
		{"expired token", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)

			s.Equal(http.StatusUnauthorized, w.Code)
			s.Equal("unauthorized", s.decodeBody(w)["error"])
		})
	}
}

// End to end through the router: a real token flows through RequireAuth
// and the handler sees the verified identity.
func (s *AuthHandlerSuite) TestGetMe_WithRealToken() {
	userID := id.UserID(uuid.New())
	token, err := s.tokens.Issue(userID, "owner@example.com", "user")
	s.Require().NoError(err)

	s.mockService.EXPECT().GetUser(gomock.Any(), userID).
		Return(&models.User{ID: userID, Email: "owner@example.com", Nickname: "mochi"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("mochi", s.decodeBody(w)["nickname"])
}

func (s *AuthHandlerSuite) TestCheckToken() {
	userID := id.UserID(uuid.New())
	token, err := s.tokens.Issue(userID, "owner@example.com", "user")
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/users/check-token", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	resp := s.decodeBody(w)
	s.Equal(true, resp["valid"])
	s.Equal(userID.String(), resp["user_id"])
}

// A valid token whose account has been withdrawn is a 404, never an
// implicit success.
func (s *AuthHandlerSuite) TestGetMe_AccountGone() {
	userID := id.UserID(uuid.New())
	token, err := s.tokens.Issue(userID, "gone@example.com", "user")
	s.Require().NoError(err)

	s.mockService.EXPECT().GetUser(gomock.Any(), userID).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "user not found"))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *AuthHandlerSuite) TestUpdateMe() {
	userID := id.UserID(uuid.New())
	nickname := "tofu"

	s.mockService.EXPECT().UpdateProfile(gomock.Any(), userID, models.ProfilePatch{Nickname: &nickname}).
		Return(&models.User{ID: userID, Nickname: nickname}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader([]byte(`{"nickname":"tofu","password":"sneaky"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(requestcontext.WithIdentity(req.Context(), requestcontext.AuthIdentity{UserID: userID}))
	w := httptest.NewRecorder()
	s.handler.handleUpdateMe(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("tofu", s.decodeBody(w)["nickname"])
}

func (s *AuthHandlerSuite) TestDeleteMe() {
	userID := id.UserID(uuid.New())
	s.mockService.EXPECT().Withdraw(gomock.Any(), userID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/users/me", nil)
	req = req.WithContext(requestcontext.WithIdentity(req.Context(), requestcontext.AuthIdentity{UserID: userID}))
	w := httptest.NewRecorder()
	s.handler.handleDeleteMe(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(w.Body.String())
}

func (s *AuthHandlerSuite) TestProtectedHandler_MissingIdentityIsInternal() {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	s.handler.handleGetMe(w, req.WithContext(context.Background()))

	s.Equal(http.StatusInternalServerError, w.Code)
}
