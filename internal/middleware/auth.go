package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/identity"
)

// Auth authenticates requests with bearer tokens from the identity
// provider and attaches the resolved local user to the request context.
type Auth struct {
	verifier *identity.Verifier
	syncer   *identity.Syncer
	logger   *slog.Logger
}

// NewAuth creates the auth middleware.
func NewAuth(verifier *identity.Verifier, syncer *identity.Syncer, logger *slog.Logger) *Auth {
	return &Auth{verifier: verifier, syncer: syncer, logger: logger}
}

// RequireAuth rejects requests without a valid bearer token. Valid
// tokens get their provider account mirrored into a local user row,
// which then rides the request context.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			writeAuthError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.NewContextWithUser(r.Context(), user)))
	})
}

// RequireRole rejects authenticated users that lack the given role.
// Admins pass every role check.
func (a *Auth) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := domain.UserFromContext(r.Context())
			if !ok {
				writeAuthError(w, domain.Unauthorized("auth.role", "authentication required"))
				return
			}
			if user.Role != role && !user.IsAdmin() {
				writeAuthError(w, domain.Forbidden("auth.role", fmt.Sprintf("%s role required", role)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) authenticate(r *http.Request) (*domain.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, domain.Unauthorized("auth", "authentication required")
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, domain.Unauthorized("auth", "authorization header must be a bearer token")
	}

	claims, err := a.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := a.syncer.Resolve(r.Context(), claims)
	if err != nil {
		a.logger.Error("failed to sync user", "subject", claims.Subject, "error", err)
		return nil, domain.Internal(err, "auth", "failed to resolve user")
	}
	return user, nil
}

func writeAuthError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	switch domain.ErrorCode(err) {
	case domain.EFORBIDDEN:
		status = http.StatusForbidden
	case domain.EINTERNAL:
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"code":%q,"message":%q}}`, domain.ErrorCode(err), domain.ErrorMessage(err))
}
