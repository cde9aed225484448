package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cyber-kittens/internal/platform/apperr"
	"cyber-kittens/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.Claims), args.Error(1)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer   abc "))
	assert.Equal(t, "", BearerToken(""))
	assert.Equal(t, "", BearerToken("abc"))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken("Bearer "))
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid token reaches handler with claims", func(t *testing.T) {
		v := new(mockVerifier)
		v.On("Verify", mock.Anything, "good").Return(auth.Claims{UserID: "user-1", Username: "alice"}, nil)

		called := false
		h := RequireAuth(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			c, ok := GetClaims(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "user-1", c.UserID)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/kittens/x", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
		v.AssertExpectations(t)
	})

	t.Run("missing or malformed header never calls verifier", func(t *testing.T) {
		for _, header := range []string{"", "Bearer", "Token abc", "justatoken"} {
			v := new(mockVerifier)
			h := RequireAuth(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatalf("handler must not run for header %q", header)
			}))

			req := httptest.NewRequest(http.MethodGet, "/kittens/x", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
			v.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
		}
	})

	t.Run("verifier failure is 401", func(t *testing.T) {
		v := new(mockVerifier)
		v.On("Verify", mock.Anything, "bad").Return(auth.Claims{}, errors.New("signature is invalid"))

		h := RequireAuth(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UnauthenticatedError")
	})
}

func TestAuthenticate_NilVerifier(t *testing.T) {
	_, err := Authenticate(context.Background(), nil, "Bearer x")
	assert.Equal(t, apperr.KindPreconditionFailed, apperr.KindOf(err))
}

func TestAuthenticate_EmptyUserID(t *testing.T) {
	v := new(mockVerifier)
	v.On("Verify", mock.Anything, "t").Return(auth.Claims{}, nil)

	_, err := Authenticate(context.Background(), v, "Bearer t")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}
