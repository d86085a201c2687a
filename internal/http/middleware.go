package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/adi-0104/Qkart/internal/domain"
	"github.com/adi-0104/Qkart/internal/repository"
)

type ctxKey int

const userKey ctxKey = iota

// UserLoader resolves the caller's account from the X-User-Email
// header set by the trusted upstream auth layer and injects it into
// the request context. Authentication itself happens upstream; an
// unknown or missing identity is a 401 here.
func UserLoader(users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := r.Header.Get("X-User-Email")
			if email == "" {
				respondError(w, http.StatusUnauthorized, "missing user identity")
				return
			}

			user, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					respondError(w, http.StatusUnauthorized, "unknown user")
					return
				}
				respondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFromContext(ctx context.Context) *domain.UserAccount {
	if user, ok := ctx.Value(userKey).(*domain.UserAccount); ok {
		return user
	}
	return nil
}
