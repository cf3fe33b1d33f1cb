package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/internal/signer"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAssetService validates paths like the real issuer and signs the rest.
type fakeAssetService struct{}

func (fakeAssetService) IssueURL(_ context.Context, path string) (models.SignedURL, error) {
	if err := signer.ValidatePath(path); err != nil {
		return models.SignedURL{}, err
	}
	return models.SignedURL{
		Path:      path,
		URL:       "signed:" + path,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}, nil
}

func (f fakeAssetService) IssueBatch(ctx context.Context, req models.BatchURLsRequest) (models.BatchURLsResponse, error) {
	if len(req.Paths) > models.MaxBatchPaths {
		return models.BatchURLsResponse{}, service.ErrTooManyPaths
	}

	resp := models.BatchURLsResponse{URLs: make(map[string]*string, len(req.Paths))}
	for _, path := range req.Paths {
		signed, err := f.IssueURL(ctx, path)
		if err != nil {
			resp.URLs[path] = nil
			continue
		}
		resp.URLs[path] = &signed.URL
	}
	return resp, nil
}

func TestHandler_GetAssetURL(t *testing.T) {
	h := newTestHandler(&service.Services{Assets: fakeAssetService{}})
	router := h.Init()

	t.Run("valid path is signed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/assets/url?path=stories/story-1/cover.jpg", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var signed models.SignedURL
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signed))
		assert.Equal(t, "signed:stories/story-1/cover.jpg", signed.URL)
	})

	t.Run("traversal path is 400", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/assets/url?path=../../etc/passwd", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing path is 400", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/assets/url", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetBatchAssetURLs(t *testing.T) {
	h := newTestHandler(&service.Services{Assets: fakeAssetService{}})
	router := h.Init()

	t.Run("mixed batch signs the good paths", func(t *testing.T) {
		body, err := json.Marshal(models.BatchURLsRequest{
			Paths: []string{"stories/a.jpg", "/etc/passwd"},
		})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodPost, "/api/assets/batch-urls", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp models.BatchURLsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.URLs["stories/a.jpg"])
		assert.Equal(t, "signed:stories/a.jpg", *resp.URLs["stories/a.jpg"])
		assert.Nil(t, resp.URLs["/etc/passwd"])
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/assets/batch-urls", bytes.NewReader([]byte("nope")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
