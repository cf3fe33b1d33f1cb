package config

import (
	"fmt"
	"time"
)

// Defaults applied when neither env, flags, nor the JSON file set a value.
const (
	defaultRequestTimeout = 30 * time.Second
	defaultURLTTL         = 30 * time.Minute
	defaultSyncInterval   = 5 * time.Minute
	defaultCachePath      = "story-cache.db"
)

// applyDefaults fills zero-valued optional fields after merging all sources.
func (c *StructuredConfig) applyDefaults() {
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.Adapter.RequestTimeout <= 0 {
		c.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if c.Signer.URLTTL <= 0 {
		c.Signer.URLTTL = defaultURLTTL
	}
	if c.Workers.SyncInterval <= 0 {
		c.Workers.SyncInterval = defaultSyncInterval
	}
	if c.Storage.Cache.Path == "" {
		c.Storage.Cache.Path = defaultCachePath
	}
}

// validate checks cross-field invariants that hold for any runtime role.
// Role-specific required fields (DSN for the server, adapter address for
// the client) are enforced by the role-specific accessors so the same
// merged config can serve both binaries.
func (c *StructuredConfig) validate() error {
	if c.Signer.URLTTL < time.Minute {
		return fmt.Errorf("%w: url ttl %s is below the 1m floor", ErrInvalidSignerConfigs, c.Signer.URLTTL)
	}
	return nil
}

// validateServer enforces the fields the gateway server cannot run without.
func (c *StructuredConfig) validateServer() error {
	if c.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: server address is required", ErrInvalidServerConfigs)
	}
	if c.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: catalog database DSN is required", ErrInvalidStorageConfigs)
	}
	if c.Signer.SecretKey == "" {
		return fmt.Errorf("%w: signer secret key is required", ErrInvalidSignerConfigs)
	}
	if c.Signer.BaseURL == "" {
		return fmt.Errorf("%w: signer base URL is required", ErrInvalidSignerConfigs)
	}
	return nil
}

// validateClient enforces the fields the sync client cannot run without.
func (c *ClientConfig) validate() error {
	if c.Adapter.HTTPAddress == "" {
		return fmt.Errorf("%w: adapter address is required", ErrInvalidAdapterConfigs)
	}
	if c.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}
	if c.Storage.CachePath == "" {
		return fmt.Errorf("%w: cache path is required", ErrInvalidStorageConfigs)
	}
	if c.Workers.SyncInterval <= 0 {
		return fmt.Errorf("%w: sync interval must be positive", ErrInvalidWorkerConfigs)
	}
	return nil
}
