package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

func (h *Handler) saveStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var story models.Story
	if err := json.NewDecoder(r.Body).Decode(&story); err != nil {
		log.Error().Str("func", "*Handler.saveStory").Err(err).Msg("error decoding story body")
		writeError(w, r, "malformed story body", http.StatusBadRequest)
		return
	}

	tenant := utils.GetTenantFromContext(ctx)

	saved, err := h.services.Catalog.SaveStory(ctx, tenant, story)
	if err != nil {
		log.Error().Str("func", "*Handler.saveStory").Err(err).Msg("error saving story")
		writeError(w, r, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) getStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	storyID := chi.URLParam(r, "storyID")
	tenant := utils.GetTenantFromContext(ctx)

	story, err := h.services.Catalog.GetStory(ctx, tenant, storyID)
	if err != nil {
		log.Error().Str("func", "*Handler.getStory").Str("story_id", storyID).Err(err).Msg("error getting story")
		writeError(w, r, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, story, http.StatusOK)
}

func (h *Handler) getStoriesByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, r, "category query parameter is required", http.StatusBadRequest)
		return
	}

	tenant := utils.GetTenantFromContext(ctx)

	stories, err := h.services.Catalog.GetStoriesByCategory(ctx, tenant, category)
	if err != nil {
		log.Error().Str("func", "*Handler.getStoriesByCategory").Str("category", category).Err(err).Msg("error getting stories")
		writeError(w, r, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, stories, http.StatusOK)
}

func (h *Handler) deleteStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	storyID := chi.URLParam(r, "storyID")
	tenant := utils.GetTenantFromContext(ctx)

	if err := h.services.Catalog.DeleteStory(ctx, tenant, storyID); err != nil {
		log.Error().Str("func", "*Handler.deleteStory").Str("story_id", storyID).Err(err).Msg("error deleting story")
		writeError(w, r, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
