// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

const (
	versionEndpoint   = "/api/content/version"
	syncEndpoint      = "/api/content/sync"
	batchURLsEndpoint = "/api/assets/batch-urls"
)

// HTTPGateway talks to the sync server over HTTP with JSON bodies.
type HTTPGateway struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPGateway constructs the gateway from the adapter config. The
// identity token, when present, is attached to every request.
func NewHTTPGateway(cfg config.ClientAdapter, log *logger.Logger) *HTTPGateway {
	client := resty.New().
		SetBaseURL(normalizeBaseURL(cfg.HTTPAddress)).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Content-Type", "application/json")

	if cfg.IdentityToken != "" {
		client.SetAuthToken(cfg.IdentityToken)
	}

	return &HTTPGateway{client: client, logger: log}
}

func (g *HTTPGateway) GetVersionProbe(ctx context.Context) (models.VersionProbe, error) {
	var probe models.VersionProbe

	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&probe).
		Get(versionEndpoint)
	if err != nil {
		return models.VersionProbe{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionProbe{}, err
	}

	return probe, nil
}

func (g *HTTPGateway) Sync(ctx context.Context, req models.SyncRequest) (models.SyncResponse, bool, error) {
	var delta models.SyncResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&delta).
		Post(syncEndpoint)
	if err != nil {
		return models.SyncResponse{}, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNoContent {
		return models.SyncResponse{}, true, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncResponse{}, false, err
	}

	return delta, false, nil
}

func (g *HTTPGateway) BatchURLs(ctx context.Context, req models.BatchURLsRequest) (models.BatchURLsResponse, error) {
	var urls models.BatchURLsResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&urls).
		Post(batchURLsEndpoint)
	if err != nil {
		return models.BatchURLsResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BatchURLsResponse{}, err
	}

	return urls, nil
}

// mapHTTPError converts non-2xx responses to the adapter sentinels.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.TrimSpace(string(resp.Body())))
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}

// normalizeBaseURL ensures the configured address carries a scheme.
func normalizeBaseURL(address string) string {
	if strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://") {
		return strings.TrimRight(address, "/")
	}

	return "http://" + strings.TrimRight(address, "/")
}
