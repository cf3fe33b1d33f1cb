// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Run()
}

// countingSyncService counts Sync invocations.
type countingSyncService struct {
	calls atomic.Int64
}

func (c *countingSyncService) Sync(context.Context) (models.SyncResult, error) {
	c.calls.Add(1)
	return models.SyncResult{Success: true, State: models.SyncComplete}, nil
}

func (c *countingSyncService) State() models.SyncState {
	return models.SyncIdle
}

func TestSyncJob_RunsImmediatelyAndOnTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sync := &countingSyncService{}
	job := NewSyncJob(ctx, sync, 20*time.Millisecond, logger.Nop())
	job.Run()

	deadline := time.After(time.Second)
	for sync.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 sync rounds, got %d", sync.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSyncJob_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	sync := &countingSyncService{}
	job := NewSyncJob(ctx, sync, 10*time.Millisecond, logger.Nop())
	job.Run()

	// Let the startup round land, then stop.
	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)

	after := sync.calls.Load()
	time.Sleep(50 * time.Millisecond)

	if sync.calls.Load() != after {
		t.Errorf("sync job kept running after cancel: %d -> %d", after, sync.calls.Load())
	}
}
