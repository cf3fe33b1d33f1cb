package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

func (h *Handler) getAssetURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	path := r.URL.Query().Get("path")

	signed, err := h.services.Assets.IssueURL(ctx, path)
	if err != nil {
		log.Error().Str("func", "*Handler.getAssetURL").Str("path", path).Err(err).Msg("error issuing signed url")
		writeError(w, r, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, signed, http.StatusOK)
}

func (h *Handler) getBatchAssetURLs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.BatchURLsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Error().Str("func", "*Handler.getBatchAssetURLs").Err(err).Msg("error decoding batch-urls request")
		writeError(w, r, "malformed batch-urls request body", http.StatusBadRequest)
		return
	}

	response, err := h.services.Assets.IssueBatch(ctx, request)
	if err != nil {
		log.Error().Str("func", "*Handler.getBatchAssetURLs").Err(err).Msg("error issuing batch urls")
		writeError(w, r, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
