package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/shramba/internal/location"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// writeError maps an error from the core to a client-facing status:
// not-found to 404, validation failures to 400, conflicts to 409 and
// everything else to 500 with the detail kept out of the response.
func writeError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError

	switch {
	case errors.Is(err, location.ErrItemNotFound),
		errors.Is(err, location.ErrContainerNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, location.ErrSelfReference),
		errors.Is(err, location.ErrCycleDetected):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &verr):
		jsonError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, location.ErrConflict),
		errors.Is(err, store.ErrNotEmpty),
		errors.Is(err, store.ErrTypeInUse):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
