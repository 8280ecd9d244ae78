package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"ad-rewards/internal/core/domain"
)

// lockRetryAfter is the Retry-After hint, in seconds, for lock timeouts.
const lockRetryAfter = 1

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps domain errors onto status codes. Unexpected errors are
// logged and reported without detail.
func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrConditionUnsatisfied):
		http.Error(w, "join condition not satisfied", http.StatusConflict)
	case errors.Is(err, domain.ErrCapacityExhausted):
		http.Error(w, "no slots left", http.StatusConflict)
	case errors.Is(err, domain.ErrLockTimeout):
		w.Header().Set("Retry-After", strconv.Itoa(lockRetryAfter))
		http.Error(w, "campaign busy, retry later", http.StatusServiceUnavailable)
	default:
		h.logger.Error(op+" error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// userID reads the caller from UserIDHeader.
func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
