// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// CatalogVersion is the authoritative server-side snapshot of the content
// catalog. Version increases monotonically on every catalog mutation and
// Checksums always reflects exactly the current live catalog: no stale
// entries, no missing live stories. The snapshot is rewritten atomically
// whenever any story is added, changed, or removed.
type CatalogVersion struct {
	// Version is the monotonically increasing catalog counter.
	Version int64 `json:"version"`

	// LastUpdated is the time of the last catalog mutation.
	LastUpdated time.Time `json:"lastUpdated"`

	// Checksums maps story ID to its current checksum for every live
	// story in the catalog.
	Checksums map[string]string `json:"storyChecksums"`

	// TotalStories is len(Checksums), kept denormalized for cheap probes.
	TotalStories int `json:"totalStories"`
}

// VersionProbe is the lightweight payload of the version endpoint. It
// deliberately omits the checksum map so that polling clients can check
// staleness without transferring the full catalog state.
type VersionProbe struct {
	Version      int64     `json:"version"`
	LastUpdated  time.Time `json:"lastUpdated"`
	TotalStories int       `json:"totalStories"`
}

// Probe derives the cheap version probe from a full catalog snapshot.
func (c CatalogVersion) Probe() VersionProbe {
	return VersionProbe{
		Version:      c.Version,
		LastUpdated:  c.LastUpdated,
		TotalStories: c.TotalStories,
	}
}
