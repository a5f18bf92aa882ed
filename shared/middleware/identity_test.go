package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub-dev/coursehub/shared/domain"
)

func TestIdentity(t *testing.T) {
	var captured *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetUserFromContext(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := Identity()(next)

	t.Run("FullIdentity", func(t *testing.T) {
		captured = nil
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-User-Id", "42")
		req.Header.Set("X-User-Name", "alice")
		req.Header.Set("X-User-Avatar", "https://cdn.example.com/a.png")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, captured)
		assert.Equal(t, domain.UserId(42), captured.Id)
		assert.Equal(t, "alice", captured.Username)
		assert.Equal(t, "https://cdn.example.com/a.png", captured.Avatar)
	})

	t.Run("NoIdentityPassesThrough", func(t *testing.T) {
		captured = &domain.User{}
		req := httptest.NewRequest("GET", "/", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, captured)
	})

	t.Run("MalformedId", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-User-Id", "abc")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetUserFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, GetUserFromContext(req))
}
