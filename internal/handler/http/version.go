package http

import (
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
)

func (h *Handler) getContentVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenant := utils.GetTenantFromContext(ctx)

	probe, err := h.services.Version.GetVersionProbe(ctx, tenant)
	if err != nil {
		log.Error().Str("func", "*Handler.getContentVersion").Err(err).Msg("error getting catalog version")
		writeError(w, r, "error getting catalog version", statusFromError(err))
		return
	}

	utils.WriteJSON(w, probe, http.StatusOK)
}
