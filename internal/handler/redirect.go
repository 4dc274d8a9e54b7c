package handler

import (
	"errors"
	"net/http"

	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/KretovDmitry/fallback-shortener/internal/shortcode"
	"github.com/go-chi/chi/v5"
)

// Redirect serves a redirect to the original URL based on the short code.
//
//	GET /{code}
//
//	HTTP/1.1 302 Found
//	Location: https://example.com
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	// codes outside the alphabet were never issued
	if !shortcode.Valid(code) {
		h.jsonError(w, r, "link not found", errs.ErrNotFound)
		return
	}

	originalURL, err := h.service.Resolve(r.Context(), code)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			h.jsonError(w, r, "link not found", err)
			return
		}
		h.jsonError(w, r, "failed to resolve "+code, err)
		return
	}

	http.Redirect(w, r, originalURL, http.StatusFound)
}
