package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

func (h *Handler) syncContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Error().Str("func", "*Handler.syncContent").Err(err).Msg("error decoding sync request")
		writeError(w, r, "malformed sync request body", http.StatusBadRequest)
		return
	}
	if err := request.Validate(); err != nil {
		log.Error().Str("func", "*Handler.syncContent").Err(err).Msg("invalid sync request")
		writeError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	tenant := utils.GetTenantFromContext(ctx)

	response, err := h.services.Sync.HandleSync(ctx, tenant, request)
	if err != nil {
		log.Error().Str("func", "*Handler.syncContent").Err(err).Msg("error computing content delta")
		writeError(w, r, "error computing content delta", statusFromError(err))
		return
	}

	// Version match means the client already mirrors the catalog.
	if request.ClientVersion == response.ServerVersion {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
