package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"cobro/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps domain sentinels to HTTP status codes. Unknown errors
// surface as 500 with a generic message so storage details stay internal.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, core.ErrMissingFields),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrPasswordMismatch),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidRange):
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	case errors.Is(err, core.ErrEmailTaken):
		status = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, core.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		msg = err.Error()
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	default:
		slog.ErrorContext(r.Context(), "request failed", "error", err,
			"method", r.Method, "path", r.URL.Path)
	}

	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// requireSession loads the active session or answers 401.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (core.Session, bool) {
	session, ok, err := s.sessions.Current(r.Context())
	if err != nil {
		writeError(w, r, err)
		return core.Session{}, false
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return core.Session{}, false
	}
	return session, true
}
