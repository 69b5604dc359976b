package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/studio-payroll/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(ja *jwtauth.JWTAuth, seen *string) http.Handler {
	return jwtauth.Verifier(ja)(AuthRequired(ja)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = ActorID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))
}

func TestAuthRequired_AcceptsAccessToken(t *testing.T) {
	svc := jwt.NewJWTService("secret", "1h")
	token, _, err := svc.GenerateAccessToken("user-42", "finance@example.com")
	require.NoError(t, err)

	var seen string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(svc.JWTAuth(), &seen).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-42", seen)
}

func TestAuthRequired_Rejects(t *testing.T) {
	svc := jwt.NewJWTService("secret", "1h")
	ja := svc.JWTAuth()

	_, refreshLike, err := ja.Encode(map[string]interface{}{"user_id": "user-42", "type": "refresh"})
	require.NoError(t, err)
	_, noUser, err := ja.Encode(map[string]interface{}{"type": "access"})
	require.NoError(t, err)
	foreign, _, err := jwt.NewJWTService("other", "1h").GenerateAccessToken("user-42", "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong token type", "Bearer " + refreshLike},
		{"no user id", "Bearer " + noUser},
		{"foreign signature", "Bearer " + foreign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected(ja, &seen).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Empty(t, seen)
		})
	}
}
