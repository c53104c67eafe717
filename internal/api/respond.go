package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotelier/internal/database"
	"hotelier/internal/service"
	"hotelier/internal/session"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps domain sentinels onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials),
		errors.Is(err, session.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrRoomUnavailable),
		errors.Is(err, database.ErrActiveBookingExists),
		errors.Is(err, database.ErrRoomUnderMaintenance),
		errors.Is(err, database.ErrInvalidTransition),
		errors.Is(err, database.ErrConcurrentModification),
		errors.Is(err, database.ErrNoActiveStay),
		errors.Is(err, database.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, database.ErrPastDate),
		errors.Is(err, database.ErrDateOrder),
		errors.Is(err, database.ErrDateTooFar),
		errors.Is(err, database.ErrCapacityExceeded),
		errors.Is(err, database.ErrEmptyOrder),
		errors.Is(err, database.ErrMenuItemUnavailable),
		errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
