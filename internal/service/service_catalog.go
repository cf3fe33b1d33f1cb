package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/checksum"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
)

type catalogService struct {
	versions store.VersionStore
	stories  store.StoryRepository
	logger   *logger.Logger
}

// NewCatalogService constructs the content-management write path.
func NewCatalogService(versions store.VersionStore, stories store.StoryRepository, log *logger.Logger) CatalogService {
	return &catalogService{versions: versions, stories: stories, logger: log}
}

// SaveStory persists the story, derives its checksum, and records the
// change in the catalog version. The stored payload and the catalog
// checksum map are written from the same derived checksum so clients never
// observe them out of step.
func (s *catalogService) SaveStory(ctx context.Context, tenant string, story models.Story) (models.Story, error) {
	if story.ID == "" {
		return models.Story{}, fmt.Errorf("%w: story id is required", models.ErrInvalidRequest)
	}

	now := time.Now().UTC()
	if story.CreatedAt.IsZero() {
		story.CreatedAt = now
	}
	story.UpdatedAt = now
	story.Version++
	story.Checksum = checksum.Compute(story)

	if err := s.stories.Save(ctx, tenant, story); err != nil {
		return models.Story{}, fmt.Errorf("failed to save story %s: %w", story.ID, err)
	}

	if story.Available {
		if _, err := s.versions.RecordChange(ctx, tenant, story.ID, story.Checksum); err != nil {
			return models.Story{}, fmt.Errorf("failed to record catalog change for %s: %w", story.ID, err)
		}
	} else {
		// Unpublished stories disappear from the catalog; clients drop
		// them like deletions.
		if _, err := s.versions.RecordRemoval(ctx, tenant, story.ID); err != nil {
			return models.Story{}, fmt.Errorf("failed to record catalog removal for %s: %w", story.ID, err)
		}
	}

	logger.FromContext(ctx).Info().
		Str("func", "catalogService.SaveStory").
		Str("story_id", story.ID).
		Int64("story_version", story.Version).
		Bool("available", story.Available).
		Msg("story saved")

	return story, nil
}

func (s *catalogService) GetStory(ctx context.Context, tenant, storyID string) (models.Story, error) {
	story, err := s.stories.GetByID(ctx, tenant, storyID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Story{}, fmt.Errorf("%w: %s", ErrStoryNotFound, storyID)
	}
	if err != nil {
		return models.Story{}, fmt.Errorf("failed to get story %s: %w", storyID, err)
	}

	return story, nil
}

func (s *catalogService) GetStoriesByCategory(ctx context.Context, tenant, category string) ([]models.Story, error) {
	stories, err := s.stories.GetByCategory(ctx, tenant, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get stories in category %s: %w", category, err)
	}
	if stories == nil {
		stories = []models.Story{}
	}

	return stories, nil
}

func (s *catalogService) DeleteStory(ctx context.Context, tenant, storyID string) error {
	err := s.stories.Delete(ctx, tenant, storyID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrStoryNotFound, storyID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete story %s: %w", storyID, err)
	}

	if _, err = s.versions.RecordRemoval(ctx, tenant, storyID); err != nil {
		return fmt.Errorf("failed to record catalog removal for %s: %w", storyID, err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "catalogService.DeleteStory").
		Str("story_id", storyID).
		Msg("story deleted")

	return nil
}
