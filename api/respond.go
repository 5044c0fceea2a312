package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"glasslink/application"
	"glasslink/auth"
	"glasslink/category"
	"glasslink/job"
	"glasslink/message"
	"glasslink/quote"
	"glasslink/tradesperson"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError maps a domain error onto the HTTP surface. Internal details
// never reach the client; unknown errors are logged and reported opaquely.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, job.ErrNotOwner),
		errors.Is(err, tradesperson.ErrForbidden),
		errors.Is(err, message.ErrNotParticipant):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not authorized"})
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, job.ErrNotFound),
		errors.Is(err, tradesperson.ErrNotFound),
		errors.Is(err, category.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, auth.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email already registered"})
	case errors.Is(err, tradesperson.ErrProfileExists):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "tradesperson profile already exists"})
	case errors.Is(err, application.ErrDuplicate):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "already applied to this job"})
	case errors.Is(err, job.ErrHasDependents):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "job has quotes, applications or messages"})
	case errors.Is(err, quote.ErrJobNotFound),
		errors.Is(err, application.ErrJobNotFound),
		errors.Is(err, message.ErrJobNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "job not found"})
	case errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case isValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.Error("internal error", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// isValidation reports whether err is a plain field-validation error from a
// service. Those are all unwrapped fmt.Errorf values; anything carrying a
// wrapped cause is treated as internal.
func isValidation(err error) bool {
	return errors.Unwrap(err) == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
