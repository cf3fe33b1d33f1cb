package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Version is the app version reported by the client.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the gateway base address the client talks to.
	HTTPAddress string
	// RequestTimeout is the timeout for outbound client requests; on
	// expiry the client falls back to its cache.
	RequestTimeout time.Duration
	// IdentityToken is the opaque caller-identity token attached to
	// every outbound request.
	IdentityToken string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// CachePath is the SQLite file path of the local content cache.
	CachePath string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync job runs.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			IdentityToken:  cfg.Adapter.IdentityToken,
		},
		Storage: ClientStorage{
			CachePath: cfg.Storage.Cache.Path,
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
		},
	}

	return clientCfg, clientCfg.validate()
}

// GetServerConfig loads the merged configuration and enforces the fields
// the gateway server requires.
func GetServerConfig() (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validateServer()
}
