// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
)

// assetURLLifetime is how long a cached signed URL is trusted locally.
// The server issues 30-minute URLs; caching slightly shorter keeps a
// stale-URL window from opening at the boundary.
const assetURLLifetime = 25 * time.Minute

// syncCall is one in-flight sync round shared by coalesced callers.
type syncCall struct {
	done   chan struct{}
	result models.SyncResult
	err    error
}

// SyncOrchestrator drives the client reconciliation loop: probe the server
// version, fetch the delta, merge it into the cache, refresh asset URLs.
// An unreachable server degrades to serving cached content.
type SyncOrchestrator struct {
	gateway adapter.ServerGateway
	cache   store.CacheStore
	logger  *logger.Logger

	mu       sync.Mutex
	inflight *syncCall
	state    models.SyncState

	// OnProgress, when set, is invoked on every state transition.
	OnProgress func(models.SyncState)
}

func NewSyncOrchestrator(gateway adapter.ServerGateway, cache store.CacheStore, log *logger.Logger) *SyncOrchestrator {
	return &SyncOrchestrator{
		gateway: gateway,
		cache:   cache,
		logger:  log,
		state:   models.SyncIdle,
	}
}

func (o *SyncOrchestrator) State() models.SyncState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *SyncOrchestrator) setState(s models.SyncState) {
	o.mu.Lock()
	o.state = s
	hook := o.OnProgress
	o.mu.Unlock()

	if hook != nil {
		hook(s)
	}
}

// Sync runs one reconciliation round. If a round is already running the
// caller joins it instead of starting a second one.
func (o *SyncOrchestrator) Sync(ctx context.Context) (models.SyncResult, error) {
	o.mu.Lock()
	if call := o.inflight; call != nil {
		o.mu.Unlock()
		select {
		case <-call.done:
			return call.result, call.err
		case <-ctx.Done():
			return models.SyncResult{}, ctx.Err()
		}
	}

	call := &syncCall{done: make(chan struct{})}
	o.inflight = call
	o.mu.Unlock()

	call.result, call.err = o.run(ctx)
	close(call.done)

	o.mu.Lock()
	o.inflight = nil
	o.mu.Unlock()

	return call.result, call.err
}

func (o *SyncOrchestrator) run(ctx context.Context) (models.SyncResult, error) {
	log := logger.FromContext(ctx)
	o.setState(models.SyncChecking)

	meta, err := o.cache.GetMetadata(ctx)
	if errors.Is(err, store.ErrNotFound) {
		meta = models.CacheMetadata{Checksums: make(map[string]string)}
	} else if err != nil {
		o.setState(models.SyncFailed)
		return models.SyncResult{Success: false, State: models.SyncFailed, Errors: []string{err.Error()}}, err
	}

	probe, err := o.gateway.GetVersionProbe(ctx)
	if errors.Is(err, adapter.ErrUnavailable) {
		// Offline is a degraded success: cached content stays readable.
		log.Warn().Str("func", "SyncOrchestrator.run").Err(err).Msg("server unreachable, serving cached content")
		o.setState(models.SyncOffline)
		return models.SyncResult{Success: true, FromCache: true, State: models.SyncOffline}, nil
	}
	if err != nil {
		o.setState(models.SyncFailed)
		return models.SyncResult{Success: false, State: models.SyncFailed, Errors: []string{err.Error()}}, err
	}

	if probe.Version == meta.Version {
		log.Debug().Str("func", "SyncOrchestrator.run").Int64("version", meta.Version).Msg("cache is current")
		o.setState(models.SyncComplete)
		return models.SyncResult{Success: true, FromCache: true, State: models.SyncComplete}, nil
	}

	o.setState(models.SyncSyncing)

	resp, upToDate, err := o.gateway.Sync(ctx, models.SyncRequest{
		ClientVersion:     meta.Version,
		ClientChecksums:   meta.Checksums,
		LastSyncTimestamp: meta.LastSyncTimestamp,
	})
	if errors.Is(err, adapter.ErrUnavailable) {
		o.setState(models.SyncOffline)
		return models.SyncResult{Success: true, FromCache: true, State: models.SyncOffline}, nil
	}
	if err != nil {
		o.setState(models.SyncFailed)
		return models.SyncResult{Success: false, State: models.SyncFailed, Errors: []string{err.Error()}}, err
	}
	if upToDate {
		o.setState(models.SyncComplete)
		return models.SyncResult{Success: true, FromCache: true, State: models.SyncComplete}, nil
	}

	result, err := o.merge(ctx, meta, resp)
	if err != nil {
		o.setState(models.SyncFailed)
		return result, err
	}

	// Asset URL refresh is independent of the story merge: a failure
	// here lands in result.Errors without undoing the sync.
	if refreshErr := o.refreshAssetURLs(ctx, resp.Stories); refreshErr != nil {
		log.Warn().Str("func", "SyncOrchestrator.run").Err(refreshErr).Msg("asset url refresh failed")
		result.Errors = append(result.Errors, refreshErr.Error())
	}

	o.setState(models.SyncComplete)
	log.Info().
		Str("func", "SyncOrchestrator.run").
		Int64("version", resp.ServerVersion).
		Int("updated", result.UpdatedCount).
		Msg("sync completed")

	return result, nil
}

// merge applies the delta to the cache: upsert changed stories, remove the
// ones whose checksums vanished from the server map, then persist the new
// metadata snapshot.
func (o *SyncOrchestrator) merge(ctx context.Context, meta models.CacheMetadata, resp models.SyncResponse) (models.SyncResult, error) {
	if err := o.cache.UpsertMany(ctx, resp.Stories); err != nil {
		return models.SyncResult{Success: false, State: models.SyncFailed, Errors: []string{err.Error()}},
			fmt.Errorf("failed to merge changed stories: %w", err)
	}

	var deleted []string
	for id := range meta.Checksums {
		if _, ok := resp.Checksums[id]; !ok {
			deleted = append(deleted, id)
		}
	}
	if err := o.cache.RemoveMany(ctx, deleted); err != nil {
		return models.SyncResult{Success: false, State: models.SyncFailed, Errors: []string{err.Error()}},
			fmt.Errorf("failed to remove deleted stories: %w", err)
	}

	newMeta := models.CacheMetadata{
		Version:           resp.ServerVersion,
		LastSyncTimestamp: time.Now().UTC(),
		Checksums:         resp.Checksums,
	}
	if err := o.cache.SetMetadata(ctx, newMeta); err != nil {
		return models.SyncResult{Success: false, State: models.SyncFailed, Errors: []string{err.Error()}},
			fmt.Errorf("failed to persist cache metadata: %w", err)
	}

	return models.SyncResult{
		Success:      true,
		UpdatedCount: len(resp.Stories),
		State:        models.SyncComplete,
	}, nil
}

// refreshAssetURLs fetches fresh signed URLs for every asset referenced by
// the changed stories, in batches the server accepts.
func (o *SyncOrchestrator) refreshAssetURLs(ctx context.Context, stories []models.Story) error {
	var paths []string
	for i := range stories {
		paths = append(paths, stories[i].AssetPaths()...)
	}
	if len(paths) == 0 {
		return nil
	}

	expiresAt := time.Now().Add(assetURLLifetime).UTC()

	for start := 0; start < len(paths); start += models.MaxBatchPaths {
		end := min(start+models.MaxBatchPaths, len(paths))

		resp, err := o.gateway.BatchURLs(ctx, models.BatchURLsRequest{Paths: paths[start:end]})
		if err != nil {
			return fmt.Errorf("failed to fetch signed urls: %w", err)
		}

		var urls []models.SignedURL
		for path, url := range resp.URLs {
			if url == nil {
				continue
			}
			urls = append(urls, models.SignedURL{Path: path, URL: *url, ExpiresAt: expiresAt})
		}
		if err = o.cache.SaveAssetURLs(ctx, urls); err != nil {
			return fmt.Errorf("failed to cache signed urls: %w", err)
		}
	}

	return nil
}
