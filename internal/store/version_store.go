// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/metrics"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/cenkalti/backoff/v4"
)

// maxCASRetries bounds how many optimistic-lock losses one mutation may
// absorb before the conflict is surfaced to the caller.
const maxCASRetries = 5

type versionStore struct {
	*DB
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewVersionStore constructs the Postgres-backed VersionStore. metrics may
// be nil.
func NewVersionStore(db *DB, m *metrics.Metrics, log *logger.Logger) VersionStore {
	return &versionStore{DB: db, metrics: m, logger: log}
}

func (v *versionStore) GetCurrent(ctx context.Context, tenant string) (models.CatalogVersion, error) {
	log := logger.FromContext(ctx)

	var (
		cur     models.CatalogVersion
		rawSums []byte
	)
	row := v.DB.QueryRowContext(ctx, getCatalogVersion, tenant)
	err := row.Scan(&cur.Version, &cur.LastUpdated, &rawSums, &cur.TotalStories)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CatalogVersion{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "versionStore.GetCurrent").
			Str("tenant", tenant).
			Msg("failed to query catalog version")
		return models.CatalogVersion{}, fmt.Errorf("failed to query catalog version: %w", err)
	}

	if err = json.Unmarshal(rawSums, &cur.Checksums); err != nil {
		return models.CatalogVersion{}, fmt.Errorf("failed to decode checksum map: %w", err)
	}
	if cur.Checksums == nil {
		cur.Checksums = make(map[string]string)
	}

	return cur, nil
}

func (v *versionStore) RecordChange(ctx context.Context, tenant, storyID, checksum string) (models.CatalogVersion, error) {
	return v.mutate(ctx, tenant, func(sums map[string]string) {
		sums[storyID] = checksum
	})
}

func (v *versionStore) RecordRemoval(ctx context.Context, tenant, storyID string) (models.CatalogVersion, error) {
	return v.mutate(ctx, tenant, func(sums map[string]string) {
		delete(sums, storyID)
	})
}

// mutate runs one read-modify-CAS-write cycle, retrying lost races with
// exponential backoff. Only ErrVersionConflict is retried; every other
// failure aborts immediately.
func (v *versionStore) mutate(ctx context.Context, tenant string, apply func(map[string]string)) (models.CatalogVersion, error) {
	log := logger.FromContext(ctx)

	var next models.CatalogVersion

	operation := func() error {
		cur, err := v.GetCurrent(ctx, tenant)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return backoff.Permanent(err)
		}
		if errors.Is(err, ErrNotFound) {
			cur = models.CatalogVersion{Checksums: make(map[string]string)}
		}

		sums := make(map[string]string, len(cur.Checksums)+1)
		for id, sum := range cur.Checksums {
			sums[id] = sum
		}
		apply(sums)

		rawSums, err := json.Marshal(sums)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to encode checksum map: %w", err))
		}

		candidate := models.CatalogVersion{
			Version:      cur.Version + 1,
			LastUpdated:  time.Now().UTC(),
			Checksums:    sums,
			TotalStories: len(sums),
		}

		if cur.Version == 0 {
			_, err = v.DB.ExecContext(ctx, insertCatalogVersion,
				tenant, candidate.Version, rawSums, candidate.TotalStories)
			if isUniqueViolation(err) {
				v.metrics.RecordVersionConflict()
				return ErrVersionConflict
			}
			if err != nil {
				return backoff.Permanent(fmt.Errorf("failed to insert catalog version: %w", err))
			}
			next = candidate
			return nil
		}

		res, err := v.DB.ExecContext(ctx, updateCatalogVersion,
			tenant, cur.Version, candidate.Version, rawSums, candidate.TotalStories)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to update catalog version: %w", err))
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read affected rows: %w", err))
		}
		if affected == 0 {
			// Someone else advanced the version first; reread and retry.
			v.metrics.RecordVersionConflict()
			return ErrVersionConflict
		}

		next = candidate
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxCASRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		log.Err(err).
			Str("func", "versionStore.mutate").
			Str("tenant", tenant).
			Msg("catalog mutation failed")
		return models.CatalogVersion{}, fmt.Errorf("catalog mutation for tenant %s: %w", tenant, err)
	}

	v.metrics.RecordCatalogVersion(next.Version)
	return next, nil
}
