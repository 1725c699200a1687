package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawboard/pkg/requestcontext"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestID(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = requestcontext.RequestID(r.Context())
		assert.False(t, requestcontext.Now(r.Context()).IsZero())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, captured)

	// Each request gets its own id.
	previous := captured
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEqual(t, previous, captured)
}

func TestRecovery(t *testing.T) {
	handler := Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())
}

func TestContentTypeJSON(t *testing.T) {
	ok := false
	handler := ContentTypeJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		ok = true
	}))

	t.Run("rejects non-json mutations", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Content-Type", "text/xml")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.False(t, ok)
	})

	t.Run("allows json mutations", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, ok)
	})

	t.Run("ignores reads", func(t *testing.T) {
		ok = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Content-Type", "text/html")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, ok)
	})
}

type staticValidator struct {
	claims *TokenClaims
	err    error
}

func (v staticValidator) ValidateToken(string) (*TokenClaims, error) {
	return v.claims, v.err
}

func TestRequireAuth_GenericBody(t *testing.T) {
	handler := RequireAuth(staticValidator{err: assert.AnError}, nil, discardLogger())(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run on auth failure")
		}))

	headers := []string{"", "Bearer ", "Bearer bad", "Token abc"}
	var bodies []string
	for _, header := range headers {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		bodies = append(bodies, w.Body.String())
	}

	// Every failure mode yields the identical body: no token oracle.
	for _, body := range bodies[1:] {
		assert.Equal(t, bodies[0], body)
	}
}

func TestRequireAuth_InjectsIdentity(t *testing.T) {
	claims := &TokenClaims{Email: "owner@example.com", Role: "user"}
	var identity requestcontext.AuthIdentity
	handler := RequireAuth(staticValidator{claims: claims}, nil, discardLogger())(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			identity, _ = requestcontext.Identity(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "owner@example.com", identity.Email)
	assert.Equal(t, "user", identity.Role)
}
