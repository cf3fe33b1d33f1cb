package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

type storyRepository struct {
	*DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewStoryRepository constructs the Postgres-backed StoryRepository.
func NewStoryRepository(db *DB, log *logger.Logger) StoryRepository {
	return &storyRepository{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  log,
	}
}

func (r *storyRepository) GetByID(ctx context.Context, tenant, storyID string) (models.Story, error) {
	query, args, err := r.builder.
		Select("payload").
		From("stories").
		Where(sq.Eq{"tenant_id": tenant, "id": storyID}).
		ToSql()
	if err != nil {
		return models.Story{}, fmt.Errorf("failed to build story query: %w", err)
	}

	var raw []byte
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Story{}, ErrNotFound
	}
	if err != nil {
		return models.Story{}, fmt.Errorf("failed to query story %s: %w", storyID, err)
	}

	return decodeStory(raw)
}

func (r *storyRepository) GetByIDs(ctx context.Context, tenant string, storyIDs []string) ([]models.Story, error) {
	if len(storyIDs) == 0 {
		return nil, nil
	}

	query, args, err := r.builder.
		Select("payload").
		From("stories").
		Where(sq.Eq{"tenant_id": tenant, "id": storyIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stories query: %w", err)
	}

	return r.queryStories(ctx, query, args...)
}

func (r *storyRepository) GetAllAvailable(ctx context.Context, tenant string) ([]models.Story, error) {
	query, args, err := r.builder.
		Select("payload").
		From("stories").
		Where(sq.Eq{"tenant_id": tenant, "available": true}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stories query: %w", err)
	}

	return r.queryStories(ctx, query, args...)
}

func (r *storyRepository) GetByCategory(ctx context.Context, tenant, category string) ([]models.Story, error) {
	query, args, err := r.builder.
		Select("payload").
		From("stories").
		Where(sq.Eq{"tenant_id": tenant, "available": true, "category": category}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stories query: %w", err)
	}

	return r.queryStories(ctx, query, args...)
}

func (r *storyRepository) Save(ctx context.Context, tenant string, story models.Story) error {
	raw, err := json.Marshal(story)
	if err != nil {
		return fmt.Errorf("failed to encode story %s: %w", story.ID, err)
	}

	query, args, err := r.builder.
		Insert("stories").
		Columns("tenant_id", "id", "category", "available", "checksum", "payload", "updated_at").
		Values(tenant, story.ID, story.Category, story.Available, story.Checksum, raw, story.UpdatedAt).
		Suffix(`ON CONFLICT (tenant_id, id) DO UPDATE
			SET category = EXCLUDED.category,
			    available = EXCLUDED.available,
			    checksum = EXCLUDED.checksum,
			    payload = EXCLUDED.payload,
			    updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build story upsert: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "storyRepository.Save").
			Str("story_id", story.ID).
			Msg("failed to save story")
		return fmt.Errorf("failed to save story %s: %w", story.ID, err)
	}

	return nil
}

func (r *storyRepository) Delete(ctx context.Context, tenant, storyID string) error {
	query, args, err := r.builder.
		Delete("stories").
		Where(sq.Eq{"tenant_id": tenant, "id": storyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build story delete: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete story %s: %w", storyID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *storyRepository) queryStories(ctx context.Context, query string, args ...any) ([]models.Story, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stories []models.Story
	for rows.Next() {
		var raw []byte
		if err = rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan story row: %w", err)
		}

		story, err := decodeStory(raw)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate story rows: %w", err)
	}

	return stories, nil
}

func decodeStory(raw []byte) (models.Story, error) {
	var story models.Story
	if err := json.Unmarshal(raw, &story); err != nil {
		return models.Story{}, fmt.Errorf("failed to decode story payload: %w", err)
	}

	return story, nil
}
