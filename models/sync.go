// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"time"
)

// MaxChecksumEntries caps the size of the client checksum map accepted in a
// single sync request.
const MaxChecksumEntries = 500

// ErrInvalidRequest marks a sync request that failed boundary validation.
// Handlers map it to 400; it is never propagated inward as a nil map.
var ErrInvalidRequest = errors.New("invalid sync request")

// SyncRequest is sent by the client to initiate a delta-sync round.
// The client provides its last known catalog version and the checksum of
// every story it has cached, so the server can return only the stories
// that changed since then. Immutable once constructed.
type SyncRequest struct {
	// ClientVersion is the catalog version recorded after the client's
	// last successful sync. Zero means the client has never synced.
	ClientVersion int64 `json:"clientVersion"`

	// ClientChecksums maps story ID to checksum for every cached story.
	// An empty map requests a full sync.
	ClientChecksums map[string]string `json:"storyChecksums"`

	// LastSyncTimestamp is when the client last completed a sync.
	LastSyncTimestamp time.Time `json:"lastSyncTimestamp,omitempty"`
}

// Validate normalizes and checks the request at the boundary. A nil
// checksum map is replaced by an empty one so that downstream code never
// sees nil; an oversized map is rejected.
func (r *SyncRequest) Validate() error {
	if r.ClientVersion < 0 {
		return fmt.Errorf("%w: clientVersion must not be negative", ErrInvalidRequest)
	}
	if r.ClientChecksums == nil {
		r.ClientChecksums = make(map[string]string)
	}
	if len(r.ClientChecksums) > MaxChecksumEntries {
		return fmt.Errorf("%w: storyChecksums cannot exceed %d entries", ErrInvalidRequest, MaxChecksumEntries)
	}
	return nil
}

// SyncResponse carries the delta between the client's cached state and the
// current catalog. Stories holds only changed or new items; Checksums holds
// the checksum of EVERY live story so the client can detect deletions by
// set difference against its own cache, on this round or a later one.
type SyncResponse struct {
	// ServerVersion is the catalog version this response was built from.
	ServerVersion int64 `json:"serverVersion"`

	// Stories is the list of changed or new stories, with signed asset
	// URLs already attached.
	Stories []Story `json:"stories"`

	// Checksums is the complete current story-id → checksum map.
	Checksums map[string]string `json:"storyChecksums"`

	// TotalStories is the number of live stories in the catalog.
	TotalStories int `json:"totalStories"`

	// UpdatedCount is len(Stories).
	UpdatedCount int `json:"updatedCount"`

	// LastUpdated is the catalog's last mutation time.
	LastUpdated time.Time `json:"lastUpdated"`
}
