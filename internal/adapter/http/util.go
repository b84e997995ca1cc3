package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pokedex/internal/app"
	"pokedex/internal/token"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSuccess wraps payload in the success envelope.
func writeSuccess(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeError emits the failure envelope, optionally with per-field details.
func writeError(w http.ResponseWriter, status int, msg string, details []app.FieldError) {
	body := map[string]any{"success": false, "error": msg}
	if len(details) > 0 {
		body["details"] = details
	}
	writeJSON(w, status, body)
}

// writeServiceError maps the application error taxonomy onto HTTP statuses
// and the JSON envelope. Unexpected errors surface detail only in
// development mode.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var verr *app.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "invalid input", verr.Fields)
	case app.IsConflict(err), errors.Is(err, app.ErrFavoriteNotFound), errors.Is(err, app.ErrWrongPassword):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case isAuthError(err):
		writeError(w, http.StatusUnauthorized, err.Error(), nil)
	default:
		msg := "internal server error"
		if s.dev {
			msg = fmt.Sprintf("internal server error: %v", err)
		}
		writeError(w, http.StatusInternalServerError, msg, nil)
	}
}

func isAuthError(err error) bool {
	return errors.Is(err, app.ErrInvalidCredentials) ||
		errors.Is(err, app.ErrMissingAuthHeader) ||
		errors.Is(err, app.ErrInvalidAuthHeader) ||
		errors.Is(err, app.ErrUserNotFound) ||
		errors.Is(err, token.ErrInvalid) ||
		errors.Is(err, token.ErrExpired) ||
		errors.Is(err, token.ErrNotYetValid)
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
