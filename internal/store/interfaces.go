// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VersionStore is the authoritative keeper of the per-tenant catalog
// version snapshot. Mutating operations serialize through optimistic
// compare-and-swap on the version counter: the version strictly increases
// on every successful mutation and concurrent callers never observe a
// decrease or a duplicate value.
type VersionStore interface {
	// GetCurrent returns the current catalog snapshot for the tenant.
	// Returns ErrNotFound when the tenant has no catalog yet; callers
	// treat that as version 0 with empty checksums.
	GetCurrent(ctx context.Context, tenant string) (models.CatalogVersion, error)

	// RecordChange upserts one story checksum, bumps the version, and
	// returns the new snapshot.
	RecordChange(ctx context.Context, tenant, storyID, checksum string) (models.CatalogVersion, error)

	// RecordRemoval drops one story checksum, bumps the version, and
	// returns the new snapshot. Removing an absent entry still bumps the
	// version so the mutation is observable.
	RecordRemoval(ctx context.Context, tenant, storyID string) (models.CatalogVersion, error)
}

// StoryRepository stores full story payloads on the server side.
type StoryRepository interface {
	GetByID(ctx context.Context, tenant, storyID string) (models.Story, error)
	GetByIDs(ctx context.Context, tenant string, storyIDs []string) ([]models.Story, error)
	GetAllAvailable(ctx context.Context, tenant string) ([]models.Story, error)
	GetByCategory(ctx context.Context, tenant, category string) ([]models.Story, error)
	Save(ctx context.Context, tenant string, story models.Story) error
	Delete(ctx context.Context, tenant, storyID string) error
}
