package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
)

type contentService struct {
	gateway adapter.ServerGateway
	cache   store.CacheStore
	logger  *logger.Logger
}

// NewContentService constructs the cache-backed content reader.
func NewContentService(gateway adapter.ServerGateway, cache store.CacheStore, log *logger.Logger) ContentService {
	return &contentService{gateway: gateway, cache: cache, logger: log}
}

func (s *contentService) GetStories(ctx context.Context) ([]models.Story, error) {
	return s.cache.GetAll(ctx)
}

func (s *contentService) GetStory(ctx context.Context, storyID string) (models.Story, error) {
	story, err := s.cache.GetByID(ctx, storyID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Story{}, fmt.Errorf("%w: %s", ErrStoryNotFound, storyID)
	}
	return story, err
}

func (s *contentService) GetStoriesByCategory(ctx context.Context, category string) ([]models.Story, error) {
	return s.cache.GetByCategory(ctx, category)
}

// GetAssetURL serves a cached signed URL when a valid one exists, and
// falls back to requesting a fresh one from the server. Offline with an
// expired cache entry the asset is simply unavailable.
func (s *contentService) GetAssetURL(ctx context.Context, path string) (models.SignedURL, error) {
	now := time.Now().UTC()

	cached, err := s.cache.GetAssetURL(ctx, path, now)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.SignedURL{}, err
	}

	resp, err := s.gateway.BatchURLs(ctx, models.BatchURLsRequest{Paths: []string{path}})
	if err != nil {
		return models.SignedURL{}, fmt.Errorf("no valid signed url for %s: %w", path, err)
	}
	url := resp.URLs[path]
	if url == nil {
		return models.SignedURL{}, fmt.Errorf("no valid signed url for %s", path)
	}

	signed := models.SignedURL{Path: path, URL: *url, ExpiresAt: now.Add(assetURLLifetime)}
	if err = s.cache.SaveAssetURLs(ctx, []models.SignedURL{signed}); err != nil {
		logger.FromContext(ctx).Warn().
			Str("func", "contentService.GetAssetURL").
			Str("path", path).
			Err(err).
			Msg("failed to cache signed url")
	}

	return signed, nil
}
