package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"prize_pool/internal/model"
	"prize_pool/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func protected(t *testing.T) http.Handler {
	return Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(strconv.Itoa(id)))
	}))
}

func TestAuth_ValidToken(t *testing.T) {
	accessToken, err := token.GenerateAccessToken(&model.User{ID: 42}, secret, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/pools/1", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()

	protected(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())
}

func TestAuth_Rejects(t *testing.T) {
	expired, err := token.GenerateAccessToken(&model.User{ID: 42}, secret, -time.Minute)
	require.NoError(t, err)
	foreign, err := token.GenerateAccessToken(&model.User{ID: 42}, []byte("other"), time.Minute)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"no header":    "",
		"no bearer":    "Token abc",
		"empty bearer": "Bearer ",
		"garbage":      "Bearer not-a-jwt",
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + foreign,
	} {
		req := httptest.NewRequest(http.MethodGet, "/pools/1", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		protected(t).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestUserIDFromContext_Missing(t *testing.T) {
	_, ok := UserIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
