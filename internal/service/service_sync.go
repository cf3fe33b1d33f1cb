// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/metrics"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
)

// signConcurrency bounds the number of stories whose assets are signed in
// parallel while building one sync response.
const signConcurrency = 8

// URLIssuer is the slice of the signed-URL issuer the sync path needs.
type URLIssuer interface {
	Issue(ctx context.Context, path string) (models.SignedURL, error)
}

type syncService struct {
	versions store.VersionStore
	stories  store.StoryRepository
	issuer   URLIssuer
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// NewSyncService constructs the delta-sync service. metrics may be nil.
func NewSyncService(versions store.VersionStore, stories store.StoryRepository, issuer URLIssuer, m *metrics.Metrics, log *logger.Logger) SyncService {
	return &syncService{
		versions: versions,
		stories:  stories,
		issuer:   issuer,
		metrics:  m,
		logger:   log,
	}
}

func (s *syncService) HandleSync(ctx context.Context, tenant string, req models.SyncRequest) (models.SyncResponse, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	resp, err := s.handleSync(ctx, tenant, req)
	s.metrics.RecordSync(err == nil, len(resp.Stories), time.Since(start))
	if err != nil {
		return models.SyncResponse{}, err
	}

	log.Info().
		Str("func", "syncService.HandleSync").
		Int64("client_version", req.ClientVersion).
		Int64("server_version", resp.ServerVersion).
		Int("updated", resp.UpdatedCount).
		Msg("sync round completed")

	return resp, nil
}

func (s *syncService) handleSync(ctx context.Context, tenant string, req models.SyncRequest) (models.SyncResponse, error) {
	cur, err := s.versions.GetCurrent(ctx, tenant)
	if errors.Is(err, store.ErrNotFound) {
		// Empty catalog: version 0, nothing to send. A client with
		// cached stories will drop them all via the empty checksum map.
		return models.SyncResponse{
			Stories:   []models.Story{},
			Checksums: map[string]string{},
		}, nil
	}
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("failed to load catalog version: %w", err)
	}

	resp := models.SyncResponse{
		ServerVersion: cur.Version,
		Stories:       []models.Story{},
		Checksums:     cur.Checksums,
		TotalStories:  cur.TotalStories,
		LastUpdated:   cur.LastUpdated,
	}

	// Version match means the client already mirrors this snapshot.
	if req.ClientVersion == cur.Version {
		return resp, nil
	}

	var stories []models.Story
	if len(req.ClientChecksums) == 0 {
		// Bootstrap: an empty client snapshot needs the whole catalog, so
		// skip the diff and load it in one query.
		stories, err = s.stories.GetAllAvailable(ctx, tenant)
		if err != nil {
			return models.SyncResponse{}, fmt.Errorf("failed to load catalog stories: %w", err)
		}
	} else {
		changed, _ := Diff(cur.Checksums, req.ClientChecksums)
		if len(changed) == 0 {
			// Deletions only; the checksum map alone carries them.
			return resp, nil
		}

		stories, err = s.stories.GetByIDs(ctx, tenant, changed)
		if err != nil {
			return models.SyncResponse{}, fmt.Errorf("failed to load changed stories: %w", err)
		}
	}

	s.attachSignedURLs(ctx, stories)

	resp.Stories = stories
	resp.UpdatedCount = len(stories)

	return resp, nil
}

// attachSignedURLs fills in signed asset URLs for every story in place.
// Signing failures degrade that one asset (its URL stays empty) instead of
// failing the sync round.
func (s *syncService) attachSignedURLs(ctx context.Context, stories []models.Story) {
	log := logger.FromContext(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(signConcurrency)

	for i := range stories {
		story := &stories[i]
		g.Go(func() error {
			sign := func(path string) string {
				if path == "" {
					return ""
				}
				signed, err := s.issuer.Issue(ctx, path)
				if err != nil {
					log.Warn().
						Str("func", "syncService.attachSignedURLs").
						Str("story_id", story.ID).
						Str("path", path).
						Err(err).
						Msg("failed to sign asset url")
					return ""
				}
				return signed.URL
			}

			story.CoverImageURL = sign(story.CoverImage)
			for j := range story.Pages {
				page := &story.Pages[j]
				page.ImageURL = sign(page.ImagePath)
				page.AudioURL = sign(page.AudioPath)
			}
			return nil
		})
	}

	_ = g.Wait()
}
