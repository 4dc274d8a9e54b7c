package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KretovDmitry/fallback-shortener/internal/errs"
)

type errorResponse struct {
	Error string `json:"error"`
}

// jsonError writes err as a JSON body. Only invalid input and unknown
// codes are reported to the client as is; anything else is logged and
// hidden behind a generic message.
func (h *Handler) jsonError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		h.writeError(w, r, http.StatusBadRequest, message)
	case errors.Is(err, errs.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, message)
	default:
		h.logger.With(r.Context()).Errorf("%s: %v", message, err)
		h.writeError(w, r, http.StatusInternalServerError,
			http.StatusText(http.StatusInternalServerError))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, code int, message string) {
	h.writeJSON(w, r, code, errorResponse{Error: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.With(r.Context()).Errorf("failed to encode response: %v", err)
	}
}
