package api

import (
	"log/slog"
	"net/http"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	logger *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{logger: logger}
}

// Me handles GET /api/v1/me. The auth middleware already synced the
// provider profile, so the context user is current.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}
