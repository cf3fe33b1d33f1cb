package service

import (
	"context"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
)

// ClientSyncService reconciles the local cache against the server.
type ClientSyncService interface {
	// Sync runs one reconciliation round. Concurrent calls coalesce
	// into a single round; every caller receives the same result.
	Sync(ctx context.Context) (models.SyncResult, error)

	// State reports the orchestrator's current position.
	State() models.SyncState
}

// ContentService serves story reads from the local cache, online or not.
type ContentService interface {
	GetStories(ctx context.Context) ([]models.Story, error)
	GetStory(ctx context.Context, storyID string) (models.Story, error)
	GetStoriesByCategory(ctx context.Context, category string) ([]models.Story, error)
	GetAssetURL(ctx context.Context, path string) (models.SignedURL, error)
}

// ClientServices bundles the client-side services.
type ClientServices struct {
	Sync    ClientSyncService
	Content ContentService
}

func NewClientServices(gateway adapter.ServerGateway, cache store.CacheStore, log *logger.Logger) *ClientServices {
	return &ClientServices{
		Sync:    NewSyncOrchestrator(gateway, cache, log),
		Content: NewContentService(gateway, cache, log),
	}
}
