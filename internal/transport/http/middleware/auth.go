package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/phonebook-app/accounts-service/internal/application/account"
	"github.com/phonebook-app/accounts-service/internal/domain"
)

type TokenVerifier interface {
	VerifySessionToken(token string) (account.SessionClaims, error)
}

// UserResolver is the minimal repository surface the guard needs: a session
// is only honored while the claimed account still exists.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (domain.User, bool, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth verifies Authorization: Bearer <session_token>, resolves the claimed
// account, and injects the identity into the request context. It fails
// closed: every failure mode is a uniform unauthorized response.
func Auth(verifier TokenVerifier, users UserResolver, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				writeErr(w, r, domain.ErrUnauthorized())
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeErr(w, r, domain.ErrUnauthorized())
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				writeErr(w, r, domain.ErrUnauthorized())
				return
			}

			claims, err := verifier.VerifySessionToken(raw)
			if err != nil || strings.TrimSpace(claims.UserID) == "" {
				writeErr(w, r, domain.ErrUnauthorized())
				return
			}

			// Deleting an account invalidates its tokens implicitly; the
			// existence check is the only revocation mechanism.
			if _, found, err := users.FindByID(r.Context(), claims.UserID); err != nil || !found {
				writeErr(w, r, domain.ErrUnauthorized())
				return
			}

			ctx := WithUser(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
