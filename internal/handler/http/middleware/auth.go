package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/studio-payroll/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

var ErrInvalidToken = errors.New("invalid access token")

type actorKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the token's user_id on the context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, ErrInvalidToken.Error())
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.Unauthorized(w, ErrInvalidToken.Error())
				return
			}
			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.Unauthorized(w, ErrInvalidToken.Error())
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// ActorID returns the authenticated user id, or "" outside AuthRequired.
func ActorID(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}

// WithActorID is used by tests that bypass token verification.
func WithActorID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}
