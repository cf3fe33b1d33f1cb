// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
)

// SyncJob periodically reconciles the local cache against the server.
// An immediate round runs on startup so a freshly launched client does not
// wait a full interval for content.
type SyncJob struct {
	sync     service.ClientSyncService
	interval time.Duration
	logger   *logger.Logger

	ctx context.Context
}

func NewSyncJob(ctx context.Context, sync service.ClientSyncService, interval time.Duration, log *logger.Logger) *SyncJob {
	return &SyncJob{
		sync:     sync,
		interval: interval,
		logger:   log,
		ctx:      ctx,
	}
}

func (j *SyncJob) Run() {
	go j.loop()
}

func (j *SyncJob) loop() {
	j.runOnce()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.ctx.Done():
			j.logger.Info().Str("func", "SyncJob.loop").Msg("sync job stopped")
			return
		case <-ticker.C:
			j.runOnce()
		}
	}
}

func (j *SyncJob) runOnce() {
	result, err := j.sync.Sync(j.ctx)
	if err != nil {
		j.logger.Error().Str("func", "SyncJob.runOnce").Err(err).Msg("scheduled sync failed")
		return
	}

	j.logger.Info().
		Str("func", "SyncJob.runOnce").
		Str("state", result.State.String()).
		Int("updated", result.UpdatedCount).
		Bool("from_cache", result.FromCache).
		Msg("scheduled sync finished")
}
