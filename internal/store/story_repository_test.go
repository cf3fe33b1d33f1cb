package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoryRepositoryMock(t *testing.T) (StoryRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db := &DB{DB: conn, logger: logger.Nop()}

	return NewStoryRepository(db, logger.Nop()), mock
}

func storyPayloadRows(t *testing.T, stories ...models.Story) *sqlmock.Rows {
	t.Helper()

	rows := sqlmock.NewRows([]string{"payload"})
	for _, story := range stories {
		raw, err := json.Marshal(story)
		require.NoError(t, err)
		rows.AddRow(raw)
	}

	return rows
}

func TestStoryRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newStoryRepositoryMock(t)
		want := models.Story{ID: "story-1", Title: "The Lighthouse", Category: "bedtime", Version: 2}

		// squirrel emits Eq predicates in sorted key order: id before
		// tenant_id.
		mock.ExpectQuery(`SELECT payload FROM stories WHERE`).
			WithArgs("story-1", "default").
			WillReturnRows(storyPayloadRows(t, want))

		got, err := repo.GetByID(context.Background(), "default", "story-1")
		require.NoError(t, err)

		assert.Equal(t, want, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing story is ErrNotFound", func(t *testing.T) {
		repo, mock := newStoryRepositoryMock(t)

		mock.ExpectQuery(`SELECT payload FROM stories WHERE`).
			WithArgs("story-404", "default").
			WillReturnRows(sqlmock.NewRows([]string{"payload"}))

		_, err := repo.GetByID(context.Background(), "default", "story-404")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStoryRepository_GetByIDs(t *testing.T) {
	t.Run("returns matching stories", func(t *testing.T) {
		repo, mock := newStoryRepositoryMock(t)
		first := models.Story{ID: "story-1", Title: "One"}
		second := models.Story{ID: "story-2", Title: "Two"}

		mock.ExpectQuery(`SELECT payload FROM stories WHERE`).
			WithArgs("story-1", "story-2", "default").
			WillReturnRows(storyPayloadRows(t, first, second))

		got, err := repo.GetByIDs(context.Background(), "default", []string{"story-1", "story-2"})
		require.NoError(t, err)

		assert.Equal(t, []models.Story{first, second}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty id list skips the database", func(t *testing.T) {
		repo, mock := newStoryRepositoryMock(t)

		got, err := repo.GetByIDs(context.Background(), "default", nil)
		require.NoError(t, err)

		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStoryRepository_Save(t *testing.T) {
	repo, mock := newStoryRepositoryMock(t)
	story := models.Story{ID: "story-1", Title: "The Lighthouse", Category: "bedtime", Available: true, Checksum: "aaa"}

	mock.ExpectExec(`INSERT INTO stories`).
		WithArgs("default", story.ID, story.Category, story.Available, story.Checksum, sqlmock.AnyArg(), story.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), "default", story)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoryRepository_Delete(t *testing.T) {
	t.Run("deletes existing story", func(t *testing.T) {
		repo, mock := newStoryRepositoryMock(t)

		mock.ExpectExec(`DELETE FROM stories WHERE`).
			WithArgs("story-1", "default").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), "default", "story-1")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing story is ErrNotFound", func(t *testing.T) {
		repo, mock := newStoryRepositoryMock(t)

		mock.ExpectExec(`DELETE FROM stories WHERE`).
			WithArgs("story-404", "default").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "default", "story-404")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
