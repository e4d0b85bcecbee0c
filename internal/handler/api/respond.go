package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// validate checks request payload structs against their field tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps a domain error to its HTTP status and standard body.
// Internal errors are logged with their cause; the client only sees a
// generic message.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := domain.ErrorCode(err)
	if code == domain.EINTERNAL {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	var body errorBody
	body.Error.Code = code
	body.Error.Message = domain.ErrorMessage(err)
	WriteJSON(w, StatusFromCode(code), body)
}

// StatusFromCode translates a domain error code to an HTTP status.
func StatusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into dst and validates it.
func DecodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err != nil {
		return domain.Invalid("api.decode", "request body too large or unreadable")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.Invalid("api.decode", "invalid JSON in request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return domain.Errorf(domain.EINVALID, "api.decode", "invalid field %s: failed %s validation", f.Field(), f.Tag())
		}
		return domain.Invalid("api.decode", "invalid request body")
	}
	return nil
}

// PathUUID parses the named path parameter as a UUID.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.EINVALID, "api.path", "invalid %s: must be a UUID", name)
	}
	return id, nil
}

// CurrentUser pulls the authenticated user off the request context.
// Routes behind RequireAuth always have one; the error covers misuse.
func CurrentUser(r *http.Request) (*domain.User, error) {
	user, ok := domain.UserFromContext(r.Context())
	if !ok {
		return nil, domain.Unauthorized("api.user", "authentication required")
	}
	return user, nil
}
