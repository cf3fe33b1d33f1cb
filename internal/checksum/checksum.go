// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package checksum computes the change-detection fingerprint of a story.
//
// The checksum is a SHA-256 hex digest over an ordered concatenation of the
// story's semantically significant fields. It is deterministic across
// process restarts, which is all delta sync needs: clients never recompute
// checksums, they only compare the strings they received byte-for-byte.
// It is NOT an integrity proof over binary assets, and because the fields
// are concatenated without delimiters a crafted collision is theoretically
// possible; that approximation is accepted.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-story-sync/models"
)

// Compute returns the checksum of a story over its significant fields:
// id, title, category, description, version, and for each page its id,
// text, and page number, in page order. Pure function, total over any
// story value; callers are responsible for validating that ID is set.
func Compute(story models.Story) string {
	var content strings.Builder
	content.WriteString(story.ID)
	content.WriteString(story.Title)
	content.WriteString(story.Category)
	content.WriteString(story.Description)
	content.WriteString(strconv.FormatInt(story.Version, 10))

	for _, page := range story.Pages {
		content.WriteString(page.ID)
		content.WriteString(page.Text)
		content.WriteString(strconv.Itoa(page.PageNumber))
	}

	sum := sha256.Sum256([]byte(content.String()))
	return hex.EncodeToString(sum[:])
}
