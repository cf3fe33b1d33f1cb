package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

type cacheStore struct {
	*ClientDB
	logger *logger.Logger
}

// NewCacheStore constructs the SQLite-backed client cache.
func NewCacheStore(db *ClientDB, log *logger.Logger) CacheStore {
	return &cacheStore{ClientDB: db, logger: log}
}

func (c *cacheStore) GetAll(ctx context.Context) ([]models.Story, error) {
	return c.queryStories(ctx, getAllCachedStories)
}

func (c *cacheStore) GetByID(ctx context.Context, storyID string) (models.Story, error) {
	var raw []byte
	err := c.ClientDB.QueryRowContext(ctx, getCachedStory, storyID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Story{}, ErrNotFound
	}
	if err != nil {
		return models.Story{}, fmt.Errorf("failed to query cached story %s: %w", storyID, err)
	}

	return decodeStory(raw)
}

func (c *cacheStore) GetByCategory(ctx context.Context, category string) ([]models.Story, error) {
	return c.queryStories(ctx, getCachedStoriesByCategory, category)
}

func (c *cacheStore) UpsertMany(ctx context.Context, stories []models.Story) error {
	if len(stories) == 0 {
		return nil
	}

	return c.inTx(ctx, func(tx *sql.Tx) error {
		for _, story := range stories {
			raw, err := json.Marshal(story)
			if err != nil {
				return fmt.Errorf("failed to encode story %s: %w", story.ID, err)
			}
			if _, err = tx.ExecContext(ctx, upsertCachedStory, story.ID, story.Category, raw, story.UpdatedAt); err != nil {
				return fmt.Errorf("failed to upsert story %s: %w", story.ID, err)
			}
		}
		return nil
	})
}

func (c *cacheStore) RemoveMany(ctx context.Context, storyIDs []string) error {
	if len(storyIDs) == 0 {
		return nil
	}

	return c.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range storyIDs {
			if _, err := tx.ExecContext(ctx, removeCachedStory, id); err != nil {
				return fmt.Errorf("failed to remove story %s: %w", id, err)
			}
		}
		return nil
	})
}

func (c *cacheStore) GetMetadata(ctx context.Context) (models.CacheMetadata, error) {
	var (
		meta     models.CacheMetadata
		lastSync sql.NullTime
		rawSums  []byte
	)
	err := c.ClientDB.QueryRowContext(ctx, getCacheMetadata).Scan(&meta.Version, &lastSync, &rawSums)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CacheMetadata{Checksums: make(map[string]string)}, ErrNotFound
	}
	if err != nil {
		return models.CacheMetadata{}, fmt.Errorf("failed to query cache metadata: %w", err)
	}

	if lastSync.Valid {
		meta.LastSyncTimestamp = lastSync.Time
	}
	if err = json.Unmarshal(rawSums, &meta.Checksums); err != nil {
		return models.CacheMetadata{}, fmt.Errorf("failed to decode cached checksum map: %w", err)
	}
	if meta.Checksums == nil {
		meta.Checksums = make(map[string]string)
	}

	return meta, nil
}

func (c *cacheStore) SetMetadata(ctx context.Context, meta models.CacheMetadata) error {
	rawSums, err := json.Marshal(meta.Checksums)
	if err != nil {
		return fmt.Errorf("failed to encode cached checksum map: %w", err)
	}

	if _, err = c.ClientDB.ExecContext(ctx, setCacheMetadata, meta.Version, meta.LastSyncTimestamp, rawSums); err != nil {
		return fmt.Errorf("failed to save cache metadata: %w", err)
	}

	return nil
}

func (c *cacheStore) SaveAssetURLs(ctx context.Context, urls []models.SignedURL) error {
	if len(urls) == 0 {
		return nil
	}

	return c.inTx(ctx, func(tx *sql.Tx) error {
		for _, u := range urls {
			if _, err := tx.ExecContext(ctx, upsertAssetURL, u.Path, u.URL, u.ExpiresAt); err != nil {
				return fmt.Errorf("failed to save asset url for %s: %w", u.Path, err)
			}
		}
		return nil
	})
}

func (c *cacheStore) GetAssetURL(ctx context.Context, path string, now time.Time) (models.SignedURL, error) {
	signed := models.SignedURL{Path: path}
	err := c.ClientDB.QueryRowContext(ctx, getAssetURL, path, now).Scan(&signed.URL, &signed.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SignedURL{}, ErrNotFound
	}
	if err != nil {
		return models.SignedURL{}, fmt.Errorf("failed to query asset url for %s: %w", path, err)
	}

	return signed, nil
}

func (c *cacheStore) Clear(ctx context.Context) error {
	return c.inTx(ctx, func(tx *sql.Tx) error {
		for _, query := range []string{clearStories, clearMetadata, clearAssetURLs} {
			if _, err := tx.ExecContext(ctx, query); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		return nil
	})
}

func (c *cacheStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.ClientDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.logger.Err(rbErr).Str("func", "cacheStore.inTx").Msg("rollback failed")
		}
		return err
	}

	return tx.Commit()
}

func (c *cacheStore) queryStories(ctx context.Context, query string, args ...any) ([]models.Story, error) {
	rows, err := c.ClientDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached stories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stories []models.Story
	for rows.Next() {
		var raw []byte
		if err = rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan cached story row: %w", err)
		}

		story, err := decodeStory(raw)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached story rows: %w", err)
	}

	return stories, nil
}
