package store

import (
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/metrics"
)

// Store bundles the server-side repositories behind one constructor.
type Store struct {
	Versions VersionStore
	Stories  StoryRepository
}

func NewStore(db *DB, m *metrics.Metrics, log *logger.Logger) *Store {
	return &Store{
		Versions: NewVersionStore(db, m, log),
		Stories:  NewStoryRepository(db, log),
	}
}
