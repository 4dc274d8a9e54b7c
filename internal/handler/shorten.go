package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/KretovDmitry/fallback-shortener/internal/errs"
)

type (
	shortenRequest struct {
		LongURL *string `json:"long_url"`
	}

	shortenResponse struct {
		ShortURL    string `json:"short_url"`
		Code        string `json:"code"`
		OriginalURL string `json:"original_url"`
	}
)

// maxBodySize bounds the shorten request body.
const maxBodySize = 1 << 20

// Shorten creates a short link for a long URL.
//
// Request:
//
//	POST /shorten
//	Content-Type: application/json
//	{
//	    "long_url": "example.com"
//	}
//
// Response:
//
//	HTTP/1.1 200 OK
//	Content-Type: application/json
//	{
//	    "short_url": "http://localhost:8080/aB3dE9",
//	    "code": "aB3dE9",
//	    "original_url": "https://example.com"
//	}
func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	var payload shortenRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&payload)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, r, http.StatusRequestEntityTooLarge, "request body is too large")
			return
		}
		h.jsonError(w, r, "invalid JSON body",
			fmt.Errorf("%w: %w", errs.ErrInvalidInput, err))
		return
	}

	if payload.LongURL == nil {
		h.jsonError(w, r, "missing 'long_url' in request", errs.ErrInvalidInput)
		return
	}

	m, err := h.service.Create(r.Context(), *payload.LongURL)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidInput) {
			h.jsonError(w, r, err.Error(), err)
			return
		}
		h.jsonError(w, r, "failed to shorten url", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, shortenResponse{
		ShortURL:    h.baseURL + "/" + m.ShortCode,
		Code:        m.ShortCode,
		OriginalURL: m.OriginalURL,
	})
}
