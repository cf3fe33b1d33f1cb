package signer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/metrics"
	"github.com/MKhiriev/go-story-sync/models"
)

var (
	// ErrInvalidPath is returned for asset paths that fail validation.
	// The path never reaches the signing backend.
	ErrInvalidPath = errors.New("invalid asset path")

	// ErrSigningFailed is returned when the signing backend rejects a
	// valid path.
	ErrSigningFailed = errors.New("failed to sign url")
)

// allowedPrefixes is the whitelist of asset roots signable by clients.
var allowedPrefixes = []string{"stories/", "audio/", "images/", "thumbnails/"}

// Issuer validates asset paths and issues signed URLs through a URLSigner.
type Issuer struct {
	signer  URLSigner
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewIssuer constructs an Issuer. A non-positive ttl falls back to 30
// minutes. metrics may be nil.
func NewIssuer(s URLSigner, ttl time.Duration, m *metrics.Metrics, log *logger.Logger) *Issuer {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &Issuer{signer: s, ttl: ttl, metrics: m, logger: log}
}

// TTL reports the lifetime applied to issued URLs.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue validates the path and returns a signed URL with its expiry.
// Validation failures are reported before the signing backend is called.
func (i *Issuer) Issue(ctx context.Context, path string) (models.SignedURL, error) {
	start := time.Now()

	if err := ValidatePath(path); err != nil {
		i.metrics.RecordSign(false, time.Since(start))
		return models.SignedURL{}, err
	}

	url, err := i.signer.SignURL(ctx, path, i.ttl)
	if err != nil {
		i.metrics.RecordSign(false, time.Since(start))
		logger.FromContext(ctx).Err(err).
			Str("func", "Issuer.Issue").
			Str("path", path).
			Msg("signing backend failed")
		return models.SignedURL{}, fmt.Errorf("%w: %s", ErrSigningFailed, path)
	}

	i.metrics.RecordSign(true, time.Since(start))

	return models.SignedURL{
		Path:      path,
		URL:       url,
		ExpiresAt: time.Now().Add(i.ttl).UTC(),
	}, nil
}

// ValidatePath rejects traversal sequences, absolute paths, embedded null
// bytes (raw, percent-encoded, and double-encoded), and paths outside the
// allowed asset roots.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("%w: traversal sequence in %q", ErrInvalidPath, path)
	}
	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: absolute path %q", ErrInvalidPath, path)
	}
	lower := strings.ToLower(path)
	if strings.ContainsRune(path, '\x00') ||
		strings.Contains(lower, "%00") ||
		strings.Contains(lower, "%2500") {
		return fmt.Errorf("%w: null byte in %q", ErrInvalidPath, path)
	}

	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return nil
		}
	}

	return fmt.Errorf("%w: %q is outside the allowed asset roots", ErrInvalidPath, path)
}
