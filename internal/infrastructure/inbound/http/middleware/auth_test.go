package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devlog-post-service/internal/infrastructure/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuth_ParseToken(t *testing.T) {
	auth := NewJWTAuth("secret", logger.New("test"))

	sign := func(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name    string
		token   string
		want    int64
		wantErr bool
	}{
		{name: "numeric id", token: sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"id": 12}), want: 12},
		{name: "string id", token: sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"id": "12"}), want: 12},
		{name: "zero id", token: sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"id": 0}), wantErr: true},
		{name: "fractional id", token: sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"id": 1.5}), wantErr: true},
		{name: "missing id", token: sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{}), wantErr: true},
		{name: "wrong key", token: sign(jwt.SigningMethodHS256, []byte("nope"), jwt.MapClaims{"id": 12}), wantErr: true},
		{name: "other hmac", token: sign(jwt.SigningMethodHS512, []byte("secret"), jwt.MapClaims{"id": 12}), wantErr: true},
		{name: "expired", token: sign(jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"id": 12, "exp": time.Now().Add(-time.Hour).Unix()}), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.ParseToken(tt.token)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWTAuth_RequireAuth(t *testing.T) {
	auth := NewJWTAuth("secret", logger.New("test"))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 5}).SignedString([]byte("secret"))
	require.NoError(t, err)

	var seen int64
	handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(5), seen)
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := UserIDFromContext(WithUserID(context.Background(), 9))
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)
}
