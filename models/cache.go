// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// CacheMetadata is the client-persisted record of the last successful sync.
// After any successful sync Checksums equals the server's checksum snapshot
// at Version exactly. That mirror is the basis for the next diff.
type CacheMetadata struct {
	// Version is the catalog version of the last successful sync.
	Version int64 `json:"version"`

	// LastSyncTimestamp is when the last successful sync completed.
	LastSyncTimestamp time.Time `json:"lastSyncTimestamp"`

	// Checksums mirrors the server checksum map as of Version.
	Checksums map[string]string `json:"storyChecksums"`
}

// SyncState is the client sync orchestrator's state-machine position.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncChecking
	SyncSyncing
	SyncComplete
	SyncFailed
	SyncOffline
)

// String implements fmt.Stringer.
func (s SyncState) String() string {
	switch s {
	case SyncIdle:
		return "idle"
	case SyncChecking:
		return "checking"
	case SyncSyncing:
		return "syncing"
	case SyncComplete:
		return "complete"
	case SyncFailed:
		return "failed"
	case SyncOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// SyncResult reports the outcome of one sync round. Serving cached content
// while offline is a degraded success, not a failure: Success is true and
// FromCache is true. Errors collects non-fatal problems (e.g. the asset URL
// refresh failed while the story sync succeeded).
type SyncResult struct {
	Success      bool      `json:"success"`
	UpdatedCount int       `json:"updatedCount"`
	FromCache    bool      `json:"fromCache"`
	Errors       []string  `json:"errors,omitempty"`
	State        SyncState `json:"-"`
}
