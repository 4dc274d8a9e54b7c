package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/go-chi/chi/v5"
)

// Index serves the front page.
// A missing page is reported as a server error.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(h.staticDir, "index.html")
	if _, err := os.Stat(name); err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "HTML file not found: "+err.Error())
		return
	}
	http.ServeFile(w, r, name)
}

// Static serves the files of the static directory.
func (h *Handler) Static(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if rel == "" {
		h.jsonError(w, r, "file not found", errs.ErrNotFound)
		return
	}

	name := filepath.Join(h.staticDir, filepath.FromSlash(rel))
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			h.logger.With(r.Context()).Warnf("stat %q: %v", name, err)
		}
		h.jsonError(w, r, "file not found", errs.ErrNotFound)
		return
	}

	http.ServeFile(w, r, name)
}
