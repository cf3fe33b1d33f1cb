package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyIssuer fails a fixed subset of paths.
type flakyIssuer struct {
	fakeIssuer
	failing map[string]bool
}

func (f *flakyIssuer) Issue(ctx context.Context, path string) (models.SignedURL, error) {
	if f.failing[path] {
		return models.SignedURL{}, errors.New("signing failed")
	}
	return f.fakeIssuer.Issue(ctx, path)
}

func TestAssetService_IssueBatch(t *testing.T) {
	t.Run("signs every path", func(t *testing.T) {
		svc := NewAssetService(&fakeIssuer{}, logger.Nop())

		resp, err := svc.IssueBatch(context.Background(), models.BatchURLsRequest{
			Paths: []string{"stories/a.jpg", "audio/b.mp3"},
		})
		require.NoError(t, err)

		require.Len(t, resp.URLs, 2)
		require.NotNil(t, resp.URLs["stories/a.jpg"])
		assert.Equal(t, "signed:stories/a.jpg", *resp.URLs["stories/a.jpg"])
		require.NotNil(t, resp.URLs["audio/b.mp3"])
		assert.Equal(t, "signed:audio/b.mp3", *resp.URLs["audio/b.mp3"])
	})

	t.Run("one failed path does not sink the batch", func(t *testing.T) {
		svc := NewAssetService(&flakyIssuer{failing: map[string]bool{"audio/bad.mp3": true}}, logger.Nop())

		resp, err := svc.IssueBatch(context.Background(), models.BatchURLsRequest{
			Paths: []string{"stories/a.jpg", "audio/bad.mp3"},
		})
		require.NoError(t, err)

		require.NotNil(t, resp.URLs["stories/a.jpg"])
		assert.Nil(t, resp.URLs["audio/bad.mp3"])
	})

	t.Run("oversized batch is rejected", func(t *testing.T) {
		svc := NewAssetService(&fakeIssuer{}, logger.Nop())

		paths := make([]string, models.MaxBatchPaths+1)
		for i := range paths {
			paths[i] = fmt.Sprintf("stories/%d.jpg", i)
		}

		_, err := svc.IssueBatch(context.Background(), models.BatchURLsRequest{Paths: paths})
		assert.ErrorIs(t, err, ErrTooManyPaths)
	})
}
