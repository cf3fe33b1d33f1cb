package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSON(t, `{
		"app": {"version": "2.0.0", "token_sign_key": "k"},
		"signer": {"base_url": "https://assets.example.com", "secret_key": "s", "url_ttl": "45m"},
		"storage": {"db": {"dsn": "postgres://localhost/stories"}, "cache": {"path": "/tmp/cache.db"}},
		"server": {"http_address": "0.0.0.0:8080", "request_timeout": "20s"},
		"adapter": {"http_address": "gw:8080", "request_timeout": "10s", "identity_token": "tok"},
		"workers": {"sync_interval": "10m"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "https://assets.example.com", cfg.Signer.BaseURL)
	assert.Equal(t, 45*time.Minute, cfg.Signer.URLTTL)
	assert.Equal(t, "postgres://localhost/stories", cfg.Storage.DB.DSN)
	assert.Equal(t, "/tmp/cache.db", cfg.Storage.Cache.Path)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "gw:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "tok", cfg.Adapter.IdentityToken)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/no/such/file.json")
	assert.Error(t, err)
}

func TestParseJSON_MalformedFile(t *testing.T) {
	path := writeTempJSON(t, `{not json`)
	_, err := parseJSON(path)
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string form", input: `"90s"`, want: 90 * time.Second},
		{name: "numeric nanoseconds", input: `1000000000`, want: time.Second},
		{name: "garbage string", input: `"ninety"`, wantErr: true},
		{name: "wrong type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}
