// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Story is a single catalog content item. Stories are server-authoritative:
// they are created and updated by the content-management process and are
// read-only for clients. Removal from the catalog is modeled as absence:
// a story row may linger in storage, but once its checksum disappears from
// the current CatalogVersion it no longer exists for clients.
type Story struct {
	// ID is the stable string identifier of the story. It never changes
	// across versions of the same story.
	ID string `json:"id"`

	// Title is the display title of the story.
	Title string `json:"title"`

	// Category groups stories for browsing (e.g. "bedtime", "adventure").
	Category string `json:"category"`

	// Description is an optional longer summary shown in story lists.
	Description string `json:"description,omitempty"`

	// AgeRange is a free-form audience hint (e.g. "3-5").
	AgeRange string `json:"ageRange,omitempty"`

	// Duration is the estimated reading time in minutes.
	Duration int `json:"duration,omitempty"`

	// CoverImage is the storage path of the cover image asset.
	CoverImage string `json:"coverImage,omitempty"`

	// CoverImageURL is the time-limited signed URL for CoverImage,
	// filled in by the server when the story is delivered.
	CoverImageURL string `json:"coverImageUrl,omitempty"`

	// Available marks whether the story is published to clients.
	Available bool `json:"isAvailable"`

	// Pages is the ordered page list. Page order is significant and is
	// part of the story checksum.
	Pages []StoryPage `json:"pages,omitempty"`

	// Version is a per-story mutable counter bumped by the content
	// management process on every edit.
	Version int64 `json:"version"`

	// Checksum is the change-detection fingerprint over the story's
	// significant fields. It is derived, never set by hand.
	Checksum string `json:"checksum,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// StoryPage is one page of a story. ImagePath and AudioPath are storage
// paths inside the content bucket; ImageURL and AudioURL are time-limited
// signed URLs filled in by the server when the story is delivered through
// a sync response. A missing URL with a present path means signing failed
// for that one asset and the client should retry later.
type StoryPage struct {
	ID         string `json:"id"`
	PageNumber int    `json:"pageNumber"`
	Text       string `json:"text"`

	ImagePath string `json:"imagePath,omitempty"`
	AudioPath string `json:"audioPath,omitempty"`

	ImageURL string `json:"imageUrl,omitempty"`
	AudioURL string `json:"audioUrl,omitempty"`
}

// AssetPaths returns every storage path referenced by the story, cover
// image first, then page assets in page order. Empty paths are skipped.
func (s *Story) AssetPaths() []string {
	paths := make([]string, 0, 1+2*len(s.Pages))
	if s.CoverImage != "" {
		paths = append(paths, s.CoverImage)
	}
	for _, p := range s.Pages {
		if p.ImagePath != "" {
			paths = append(paths, p.ImagePath)
		}
		if p.AudioPath != "" {
			paths = append(paths, p.AudioPath)
		}
	}
	return paths
}
