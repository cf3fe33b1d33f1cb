// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService computes catalog deltas for clients.
type SyncService interface {
	// HandleSync compares the client's checksum snapshot against the
	// current catalog and returns the changed stories plus the full
	// server checksum map. An up-to-date client gets a response with
	// zero stories and ServerVersion equal to its ClientVersion.
	HandleSync(ctx context.Context, tenant string, req models.SyncRequest) (models.SyncResponse, error)
}

// AssetService issues signed asset URLs.
type AssetService interface {
	IssueURL(ctx context.Context, path string) (models.SignedURL, error)

	// IssueBatch signs up to models.MaxBatchPaths paths. Individual
	// failures map to a nil URL for that path; only an oversized batch
	// fails as a whole.
	IssueBatch(ctx context.Context, req models.BatchURLsRequest) (models.BatchURLsResponse, error)
}

// VersionService serves the cheap catalog version probe.
type VersionService interface {
	GetVersionProbe(ctx context.Context, tenant string) (models.VersionProbe, error)
}

// CatalogService is the content-management surface: writes keep story
// payloads, story checksums, and the catalog version in step; reads serve
// the stored payloads back.
type CatalogService interface {
	SaveStory(ctx context.Context, tenant string, story models.Story) (models.Story, error)
	DeleteStory(ctx context.Context, tenant, storyID string) error
	GetStory(ctx context.Context, tenant, storyID string) (models.Story, error)
	GetStoriesByCategory(ctx context.Context, tenant, category string) ([]models.Story, error)
}
