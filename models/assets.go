// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MaxBatchPaths caps the number of asset paths accepted by a single
// batch-urls request. Keeps response times bounded and prevents abuse.
const MaxBatchPaths = 100

// SignedURL is a time-limited read-only URL to one binary object in the
// content bucket.
type SignedURL struct {
	Path      string    `json:"path"`
	URL       string    `json:"signedUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// BatchURLsRequest asks for signed URLs for several asset paths at once,
// reducing N round trips to ceil(N/MaxBatchPaths).
type BatchURLsRequest struct {
	Paths []string `json:"paths"`
}

// BatchURLsResponse maps each requested path to its signed URL, or to nil
// when signing that one path failed. A multi-path request never fails as a
// whole because of one bad path.
type BatchURLsResponse struct {
	URLs map[string]*string `json:"urls"`
}
