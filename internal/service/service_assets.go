package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

type assetService struct {
	issuer URLIssuer
	logger *logger.Logger
}

// NewAssetService constructs the signed-URL service.
func NewAssetService(issuer URLIssuer, log *logger.Logger) AssetService {
	return &assetService{issuer: issuer, logger: log}
}

func (s *assetService) IssueURL(ctx context.Context, path string) (models.SignedURL, error) {
	return s.issuer.Issue(ctx, path)
}

// IssueBatch signs each path independently. A failed path maps to nil in
// the response so one bad path never sinks the rest of the batch.
func (s *assetService) IssueBatch(ctx context.Context, req models.BatchURLsRequest) (models.BatchURLsResponse, error) {
	if len(req.Paths) > models.MaxBatchPaths {
		return models.BatchURLsResponse{}, fmt.Errorf("%w: %d > %d", ErrTooManyPaths, len(req.Paths), models.MaxBatchPaths)
	}

	log := logger.FromContext(ctx)
	urls := make([]*string, len(req.Paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(signConcurrency)

	for i, path := range req.Paths {
		i, path := i, path
		g.Go(func() error {
			signed, err := s.issuer.Issue(ctx, path)
			if err != nil {
				log.Warn().
					Str("func", "assetService.IssueBatch").
					Str("path", path).
					Err(err).
					Msg("failed to sign asset url")
				return nil
			}
			urls[i] = &signed.URL
			return nil
		})
	}
	_ = g.Wait()

	resp := models.BatchURLsResponse{URLs: make(map[string]*string, len(req.Paths))}
	for i, path := range req.Paths {
		resp.URLs[path] = urls[i]
	}

	return resp, nil
}
