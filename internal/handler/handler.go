// Package handler serves the HTTP surface of the shortener.
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KretovDmitry/fallback-shortener/internal/config"
	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/KretovDmitry/fallback-shortener/internal/logger"
	"github.com/KretovDmitry/fallback-shortener/internal/middleware/accesslog"
	"github.com/KretovDmitry/fallback-shortener/internal/middleware/unzip"
	"github.com/KretovDmitry/fallback-shortener/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nanmu42/gzip"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate mockgen -source=handler.go -destination=../../mocks/handler.go -package=mocks -mock_names=Service=MockService

// Service is what the handlers need from the mapping service.
type Service interface {
	Create(ctx context.Context, raw string) (*models.URLMapping, error)
	Resolve(ctx context.Context, code string) (string, error)
	Stats(ctx context.Context) models.Stats
	Total() int
	StorageMode() string
}

// Handler holds the dependencies of every endpoint.
type Handler struct {
	service Service
	// baseURL prefixes the returned short links.
	baseURL string
	// staticDir holds index.html and the static assets.
	staticDir string
	// version is reported by the info endpoint.
	version  string
	gatherer prometheus.Gatherer
	logger   logger.Logger
}

// New constructs a new handler, ensuring that the dependencies are valid values.
func New(
	service Service,
	config *config.Config,
	gatherer prometheus.Gatherer,
	logger logger.Logger,
	version string,
) (*Handler, error) {
	if service == nil {
		return nil, fmt.Errorf("%w: service", errs.ErrNilDependency)
	}
	if config == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	if gatherer == nil {
		return nil, fmt.Errorf("%w: gatherer", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	if version == "" {
		version = "1.0"
	}

	return &Handler{
		service:   service,
		baseURL:   config.Server.BaseURL,
		staticDir: config.StaticDir,
		version:   version,
		gatherer:  gatherer,
		logger:    logger,
	}, nil
}

// Register mounts every endpoint on r and returns it.
func (h *Handler) Register(r chi.Router) http.Handler {
	r.Use(middleware.RealIP)
	r.Use(accesslog.Handler(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(gzip.DefaultHandler().WrapHandler)

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	r.Get("/", h.Index)
	r.Get("/static/*", h.Static)
	r.Get("/health", h.Health)
	r.Get("/stats", h.GetStats)
	r.Get("/info", h.Info)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	r.With(unzip.Handler(h.logger)).Post("/shorten", h.Shorten)
	r.Get("/{code}", h.Redirect)

	return r
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.jsonError(w, r, "not found: "+r.URL.Path, errs.ErrNotFound)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed: "+r.Method)
}
