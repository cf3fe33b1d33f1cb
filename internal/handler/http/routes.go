package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withIdentity)

	router.Group(func(r chi.Router) {
		r.Get("/api/content/version", h.getContentVersion)
		r.Post("/api/content/sync", h.syncContent)
		r.Get("/api/content/stories", h.getStoriesByCategory)
		r.Get("/api/content/stories/{storyID}", h.getStory)
		r.Get("/api/assets/url", h.getAssetURL)
		r.Post("/api/assets/batch-urls", h.getBatchAssetURLs)
	})

	// content-management write path
	router.Group(func(r chi.Router) {
		r.Put("/api/admin/stories", h.saveStory)
		r.Delete("/api/admin/stories/{storyID}", h.deleteStory)
	})

	if h.registry != nil {
		router.Get("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}).ServeHTTP)
	}

	return router
}
