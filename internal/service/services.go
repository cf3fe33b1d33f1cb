package service

import (
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/metrics"
	"github.com/MKhiriev/go-story-sync/internal/store"
)

// Services bundles the server-side services behind one constructor.
type Services struct {
	Sync    SyncService
	Assets  AssetService
	Version VersionService
	Catalog CatalogService
}

func NewServices(st *store.Store, issuer URLIssuer, m *metrics.Metrics, log *logger.Logger) *Services {
	return &Services{
		Sync:    NewSyncService(st.Versions, st.Stories, issuer, m, log),
		Assets:  NewAssetService(issuer, log),
		Version: NewVersionService(st.Versions, log),
		Catalog: NewCatalogService(st.Versions, st.Stories, log),
	}
}
