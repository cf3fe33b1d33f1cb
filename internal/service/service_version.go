package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
)

type versionService struct {
	versions store.VersionStore
	logger   *logger.Logger
}

// NewVersionService constructs the version probe service.
func NewVersionService(versions store.VersionStore, log *logger.Logger) VersionService {
	return &versionService{versions: versions, logger: log}
}

func (s *versionService) GetVersionProbe(ctx context.Context, tenant string) (models.VersionProbe, error) {
	cur, err := s.versions.GetCurrent(ctx, tenant)
	if errors.Is(err, store.ErrNotFound) {
		return models.VersionProbe{}, nil
	}
	if err != nil {
		return models.VersionProbe{}, fmt.Errorf("failed to load catalog version: %w", err)
	}

	return cur.Probe(), nil
}
