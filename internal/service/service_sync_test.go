package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVersionStore serves a fixed catalog snapshot.
type fakeVersionStore struct {
	current models.CatalogVersion
	err     error
}

func (f *fakeVersionStore) GetCurrent(context.Context, string) (models.CatalogVersion, error) {
	if f.err != nil {
		return models.CatalogVersion{}, f.err
	}
	return f.current, nil
}

func (f *fakeVersionStore) RecordChange(_ context.Context, _, storyID, checksum string) (models.CatalogVersion, error) {
	if f.current.Checksums == nil {
		f.current.Checksums = make(map[string]string)
	}
	f.current.Checksums[storyID] = checksum
	f.current.Version++
	f.current.TotalStories = len(f.current.Checksums)
	return f.current, nil
}

func (f *fakeVersionStore) RecordRemoval(_ context.Context, _, storyID string) (models.CatalogVersion, error) {
	delete(f.current.Checksums, storyID)
	f.current.Version++
	f.current.TotalStories = len(f.current.Checksums)
	return f.current, nil
}

// fakeStoryRepository serves stories from an in-memory map.
type fakeStoryRepository struct {
	stories map[string]models.Story
	saved   []models.Story
	deleted []string
	err     error
}

func (f *fakeStoryRepository) GetByID(_ context.Context, _, storyID string) (models.Story, error) {
	story, ok := f.stories[storyID]
	if !ok {
		return models.Story{}, store.ErrNotFound
	}
	return story, nil
}

func (f *fakeStoryRepository) GetByIDs(_ context.Context, _ string, storyIDs []string) ([]models.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Story
	for _, id := range storyIDs {
		if story, ok := f.stories[id]; ok {
			out = append(out, story)
		}
	}
	return out, nil
}

func (f *fakeStoryRepository) GetAllAvailable(context.Context, string) ([]models.Story, error) {
	var out []models.Story
	for _, story := range f.stories {
		out = append(out, story)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStoryRepository) GetByCategory(_ context.Context, _, category string) ([]models.Story, error) {
	var out []models.Story
	for _, story := range f.stories {
		if story.Category == category {
			out = append(out, story)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStoryRepository) Save(_ context.Context, _ string, story models.Story) error {
	if f.stories == nil {
		f.stories = make(map[string]models.Story)
	}
	f.stories[story.ID] = story
	f.saved = append(f.saved, story)
	return nil
}

func (f *fakeStoryRepository) Delete(_ context.Context, _, storyID string) error {
	if _, ok := f.stories[storyID]; !ok {
		return store.ErrNotFound
	}
	delete(f.stories, storyID)
	f.deleted = append(f.deleted, storyID)
	return nil
}

// fakeIssuer signs every valid path as "signed:<path>".
type fakeIssuer struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *fakeIssuer) Issue(_ context.Context, path string) (models.SignedURL, error) {
	f.mu.Lock()
	f.paths = append(f.paths, path)
	f.mu.Unlock()
	if f.err != nil {
		return models.SignedURL{}, f.err
	}
	return models.SignedURL{Path: path, URL: "signed:" + path, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func TestSyncService_HandleSync(t *testing.T) {
	catalog := models.CatalogVersion{
		Version:     5,
		LastUpdated: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
		Checksums: map[string]string{
			"story-1": "aaa",
			"story-2": "bbb-new",
			"story-3": "ccc",
		},
		TotalStories: 3,
	}
	repo := &fakeStoryRepository{stories: map[string]models.Story{
		"story-1": {ID: "story-1", Title: "One"},
		"story-2": {
			ID:         "story-2",
			Title:      "Two",
			CoverImage: "stories/story-2/cover.jpg",
			Pages: []models.StoryPage{
				{ID: "p1", PageNumber: 1, Text: "...", ImagePath: "images/story-2/p1.jpg", AudioPath: "audio/story-2/p1.mp3"},
			},
		},
		"story-3": {ID: "story-3", Title: "Three"},
	}}

	newService := func(issuer URLIssuer) SyncService {
		return NewSyncService(&fakeVersionStore{current: catalog}, repo, issuer, nil, logger.Nop())
	}

	t.Run("up-to-date client gets an empty delta", func(t *testing.T) {
		svc := newService(&fakeIssuer{})

		resp, err := svc.HandleSync(context.Background(), "default", models.SyncRequest{
			ClientVersion:   5,
			ClientChecksums: catalog.Checksums,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(5), resp.ServerVersion)
		assert.Empty(t, resp.Stories)
		assert.Zero(t, resp.UpdatedCount)
		assert.Equal(t, catalog.Checksums, resp.Checksums)
	})

	t.Run("stale client gets changed stories and the full checksum map", func(t *testing.T) {
		issuer := &fakeIssuer{}
		svc := newService(issuer)

		// Client has story-1 current, story-2 stale, story-9 deleted,
		// and has never seen story-3.
		resp, err := svc.HandleSync(context.Background(), "default", models.SyncRequest{
			ClientVersion: 3,
			ClientChecksums: map[string]string{
				"story-1": "aaa",
				"story-2": "bbb-old",
				"story-9": "zzz",
			},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(5), resp.ServerVersion)
		require.Len(t, resp.Stories, 2)
		assert.Equal(t, "story-2", resp.Stories[0].ID)
		assert.Equal(t, "story-3", resp.Stories[1].ID)
		assert.Equal(t, 2, resp.UpdatedCount)
		assert.Equal(t, 3, resp.TotalStories)

		// story-9 is absent from the checksum map: that is the deletion
		// signal.
		assert.NotContains(t, resp.Checksums, "story-9")
		assert.Len(t, resp.Checksums, 3)
	})

	t.Run("changed stories carry signed asset urls", func(t *testing.T) {
		issuer := &fakeIssuer{}
		svc := newService(issuer)

		resp, err := svc.HandleSync(context.Background(), "default", models.SyncRequest{
			ClientVersion:   3,
			ClientChecksums: map[string]string{"story-1": "aaa", "story-3": "ccc"},
		})
		require.NoError(t, err)

		require.Len(t, resp.Stories, 1)
		story := resp.Stories[0]
		assert.Equal(t, "signed:stories/story-2/cover.jpg", story.CoverImageURL)
		require.Len(t, story.Pages, 1)
		assert.Equal(t, "signed:images/story-2/p1.jpg", story.Pages[0].ImageURL)
		assert.Equal(t, "signed:audio/story-2/p1.mp3", story.Pages[0].AudioURL)
	})

	t.Run("signing failure degrades the asset, not the sync", func(t *testing.T) {
		issuer := &fakeIssuer{err: errors.New("signer down")}
		svc := newService(issuer)

		resp, err := svc.HandleSync(context.Background(), "default", models.SyncRequest{
			ClientVersion:   3,
			ClientChecksums: map[string]string{"story-1": "aaa", "story-3": "ccc"},
		})
		require.NoError(t, err)

		require.Len(t, resp.Stories, 1)
		story := resp.Stories[0]
		assert.Equal(t, "stories/story-2/cover.jpg", story.CoverImage)
		assert.Empty(t, story.CoverImageURL)
		assert.Empty(t, story.Pages[0].ImageURL)
	})

	t.Run("empty client snapshot gets the whole catalog", func(t *testing.T) {
		svc := newService(&fakeIssuer{})

		resp, err := svc.HandleSync(context.Background(), "default", models.SyncRequest{
			ClientVersion:   0,
			ClientChecksums: map[string]string{},
		})
		require.NoError(t, err)

		require.Len(t, resp.Stories, 3)
		assert.Equal(t, "story-1", resp.Stories[0].ID)
		assert.Equal(t, "story-3", resp.Stories[2].ID)
		assert.Equal(t, 3, resp.UpdatedCount)
	})

	t.Run("empty catalog responds with version zero", func(t *testing.T) {
		svc := NewSyncService(&fakeVersionStore{err: store.ErrNotFound}, repo, &fakeIssuer{}, nil, logger.Nop())

		resp, err := svc.HandleSync(context.Background(), "default", models.SyncRequest{
			ClientVersion:   2,
			ClientChecksums: map[string]string{"story-1": "aaa"},
		})
		require.NoError(t, err)

		assert.Zero(t, resp.ServerVersion)
		assert.Empty(t, resp.Stories)
		assert.Empty(t, resp.Checksums)
	})

	t.Run("version store failure fails the sync", func(t *testing.T) {
		svc := NewSyncService(&fakeVersionStore{err: errors.New("db down")}, repo, &fakeIssuer{}, nil, logger.Nop())

		_, err := svc.HandleSync(context.Background(), "default", models.SyncRequest{})
		assert.Error(t, err)
	})
}
