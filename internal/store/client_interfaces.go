// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/cache_store_mock.go -package=mock

// CacheStore is the client-side story cache. It is the single source of
// truth for reads on the client: sync reconciles it against the server and
// every content read is served from it, online or offline.
type CacheStore interface {
	GetAll(ctx context.Context) ([]models.Story, error)
	GetByID(ctx context.Context, storyID string) (models.Story, error)
	GetByCategory(ctx context.Context, category string) ([]models.Story, error)

	// UpsertMany inserts or replaces the given stories. Stories already
	// cached but absent from the slice are left untouched.
	UpsertMany(ctx context.Context, stories []models.Story) error

	// RemoveMany drops the given stories from the cache. Unknown ids are
	// ignored.
	RemoveMany(ctx context.Context, storyIDs []string) error

	GetMetadata(ctx context.Context) (models.CacheMetadata, error)
	SetMetadata(ctx context.Context, meta models.CacheMetadata) error

	SaveAssetURLs(ctx context.Context, urls []models.SignedURL) error
	GetAssetURL(ctx context.Context, path string, now time.Time) (models.SignedURL, error)

	// Clear wipes stories, metadata, and asset URLs.
	Clear(ctx context.Context) error
}
