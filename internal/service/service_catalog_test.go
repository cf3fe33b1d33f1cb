package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_SaveStory(t *testing.T) {
	t.Run("published story lands in the catalog", func(t *testing.T) {
		versions := &fakeVersionStore{current: models.CatalogVersion{Checksums: map[string]string{}}}
		repo := &fakeStoryRepository{}
		svc := NewCatalogService(versions, repo, logger.Nop())

		saved, err := svc.SaveStory(context.Background(), "default", models.Story{
			ID:        "story-1",
			Title:     "The Lighthouse",
			Available: true,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), saved.Version)
		assert.NotEmpty(t, saved.Checksum)
		assert.False(t, saved.UpdatedAt.IsZero())

		require.Len(t, repo.saved, 1)
		assert.Equal(t, saved.Checksum, versions.current.Checksums["story-1"])
		assert.Equal(t, int64(1), versions.current.Version)
	})

	t.Run("edit changes the checksum and bumps both versions", func(t *testing.T) {
		versions := &fakeVersionStore{current: models.CatalogVersion{Checksums: map[string]string{}}}
		repo := &fakeStoryRepository{}
		svc := NewCatalogService(versions, repo, logger.Nop())

		first, err := svc.SaveStory(context.Background(), "default", models.Story{ID: "story-1", Title: "Draft", Available: true})
		require.NoError(t, err)

		first.Title = "Final"
		second, err := svc.SaveStory(context.Background(), "default", first)
		require.NoError(t, err)

		assert.Equal(t, int64(2), second.Version)
		assert.NotEqual(t, first.Checksum, second.Checksum)
		assert.Equal(t, int64(2), versions.current.Version)
	})

	t.Run("unpublishing removes the story from the catalog", func(t *testing.T) {
		versions := &fakeVersionStore{current: models.CatalogVersion{
			Version:   3,
			Checksums: map[string]string{"story-1": "aaa"},
		}}
		repo := &fakeStoryRepository{}
		svc := NewCatalogService(versions, repo, logger.Nop())

		_, err := svc.SaveStory(context.Background(), "default", models.Story{ID: "story-1", Available: false})
		require.NoError(t, err)

		assert.NotContains(t, versions.current.Checksums, "story-1")
		assert.Equal(t, int64(4), versions.current.Version)
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		svc := NewCatalogService(&fakeVersionStore{}, &fakeStoryRepository{}, logger.Nop())

		_, err := svc.SaveStory(context.Background(), "default", models.Story{Title: "No ID"})
		assert.ErrorIs(t, err, models.ErrInvalidRequest)
	})
}

func TestCatalogService_GetStory(t *testing.T) {
	repo := &fakeStoryRepository{stories: map[string]models.Story{
		"story-1": {ID: "story-1", Title: "The Lighthouse"},
	}}
	svc := NewCatalogService(&fakeVersionStore{}, repo, logger.Nop())

	got, err := svc.GetStory(context.Background(), "default", "story-1")
	require.NoError(t, err)
	assert.Equal(t, "The Lighthouse", got.Title)

	_, err = svc.GetStory(context.Background(), "default", "story-404")
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestCatalogService_GetStoriesByCategory(t *testing.T) {
	repo := &fakeStoryRepository{stories: map[string]models.Story{
		"story-1": {ID: "story-1", Category: "bedtime"},
		"story-2": {ID: "story-2", Category: "adventure"},
	}}
	svc := NewCatalogService(&fakeVersionStore{}, repo, logger.Nop())

	stories, err := svc.GetStoriesByCategory(context.Background(), "default", "bedtime")
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "story-1", stories[0].ID)

	empty, err := svc.GetStoriesByCategory(context.Background(), "default", "space")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCatalogService_DeleteStory(t *testing.T) {
	t.Run("delete drops payload and catalog entry", func(t *testing.T) {
		versions := &fakeVersionStore{current: models.CatalogVersion{
			Version:   5,
			Checksums: map[string]string{"story-1": "aaa"},
		}}
		repo := &fakeStoryRepository{stories: map[string]models.Story{"story-1": {ID: "story-1"}}}
		svc := NewCatalogService(versions, repo, logger.Nop())

		require.NoError(t, svc.DeleteStory(context.Background(), "default", "story-1"))

		assert.Equal(t, []string{"story-1"}, repo.deleted)
		assert.NotContains(t, versions.current.Checksums, "story-1")
		assert.Equal(t, int64(6), versions.current.Version)
	})

	t.Run("missing story is ErrStoryNotFound", func(t *testing.T) {
		svc := NewCatalogService(&fakeVersionStore{}, &fakeStoryRepository{}, logger.Nop())

		err := svc.DeleteStory(context.Background(), "default", "story-404")
		assert.ErrorIs(t, err, ErrStoryNotFound)
	})
}
