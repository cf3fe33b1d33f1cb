package adapter

import (
	"context"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerGateway is the client's view of the sync server.
type ServerGateway interface {
	// GetVersionProbe fetches the cheap catalog version probe.
	GetVersionProbe(ctx context.Context) (models.VersionProbe, error)

	// Sync posts the client's checksum snapshot and returns the delta.
	// upToDate is true when the server answered 204 No Content; the
	// response value is zero in that case.
	Sync(ctx context.Context, req models.SyncRequest) (resp models.SyncResponse, upToDate bool, err error)

	// BatchURLs requests signed URLs for up to models.MaxBatchPaths
	// asset paths.
	BatchURLs(ctx context.Context, req models.BatchURLsRequest) (models.BatchURLsResponse, error)
}
