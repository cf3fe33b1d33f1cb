package signer

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/signer_mock.go -package=mock

// URLSigner produces a time-limited URL for one asset path. Implementations
// talk to whatever serves the assets (a CDN, an object store, a local HMAC
// scheme); the issuer on top of them owns validation and policy.
type URLSigner interface {
	SignURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}
