package handler

import (
	"net/http"

	"github.com/KretovDmitry/fallback-shortener/internal/models"
)

type (
	healthResponse struct {
		Status     string `json:"status"`
		TotalLinks int    `json:"total_links"`
		Storage    string `json:"storage"`
	}

	statsResponse struct {
		TotalLinks  int             `json:"total_links"`
		LatestLinks models.Mappings `json:"latest_links"`
	}

	infoResponse struct {
		Version     string    `json:"version"`
		Description string    `json:"description"`
		Endpoints   endpoints `json:"endpoints"`
	}

	endpoints struct {
		Shorten  string `json:"shorten"`
		Redirect string `json:"redirect"`
		Stats    string `json:"stats"`
		Health   string `json:"health"`
		Metrics  string `json:"metrics"`
	}
)

// Health reports liveness, the number of links and the storage in use.
//
//	GET /health
//
//	{"status": "ok", "total_links": 3, "storage": "database"}
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:     "ok",
		TotalLinks: h.service.Total(),
		Storage:    h.service.StorageMode(),
	})
}

// GetStats reveals the number of links and the latest ones, oldest first.
//
//	GET /stats
//
//	{"total_links": 2, "latest_links": {"aB3dE9": "https://a", "Zx81Qp": "https://b"}}
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.service.Stats(r.Context())
	h.writeJSON(w, r, http.StatusOK, statsResponse{
		TotalLinks:  stats.Total,
		LatestLinks: stats.Latest,
	})
}

// Info describes the service and its endpoints.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, infoResponse{
		Version:     h.version,
		Description: "URL Shortener Service",
		Endpoints: endpoints{
			Shorten:  "POST /shorten",
			Redirect: "GET /{code}",
			Stats:    "GET /stats",
			Health:   "GET /health",
			Metrics:  "GET /metrics",
		},
	})
}
