package signer

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSigner records calls and returns a canned URL or error.
type fakeSigner struct {
	calls []string
	url   string
	err   error
}

func (f *fakeSigner) SignURL(_ context.Context, path string, _ time.Duration) (string, error) {
	f.calls = append(f.calls, path)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "story asset", path: "stories/story-1/cover.jpg"},
		{name: "audio asset", path: "audio/story-1/page1.mp3"},
		{name: "image asset", path: "images/banner.png"},
		{name: "thumbnail asset", path: "thumbnails/story-1.jpg"},
		{name: "empty", path: "", wantErr: true},
		{name: "traversal", path: "../../etc/passwd", wantErr: true},
		{name: "traversal inside allowed root", path: "stories/../secrets.txt", wantErr: true},
		{name: "absolute", path: "/etc/passwd", wantErr: true},
		{name: "raw null byte", path: "stories/a\x00.jpg", wantErr: true},
		{name: "encoded null byte", path: "stories/a%00.jpg", wantErr: true},
		{name: "double-encoded null byte", path: "stories/a%2500.jpg", wantErr: true},
		{name: "outside allowed roots", path: "config/app.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIssuer_Issue(t *testing.T) {
	t.Run("valid path is signed", func(t *testing.T) {
		fake := &fakeSigner{url: "https://cdn.example.com/stories/story-1/cover.jpg?sig=abc"}
		issuer := NewIssuer(fake, 15*time.Minute, nil, logger.Nop())

		got, err := issuer.Issue(context.Background(), "stories/story-1/cover.jpg")
		require.NoError(t, err)

		assert.Equal(t, "stories/story-1/cover.jpg", got.Path)
		assert.Equal(t, fake.url, got.URL)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), got.ExpiresAt, 5*time.Second)
		assert.Equal(t, []string{"stories/story-1/cover.jpg"}, fake.calls)
	})

	t.Run("invalid path never reaches the backend", func(t *testing.T) {
		fake := &fakeSigner{url: "https://cdn.example.com/x"}
		issuer := NewIssuer(fake, 15*time.Minute, nil, logger.Nop())

		for _, path := range []string{"../../etc/passwd", "/etc/passwd"} {
			_, err := issuer.Issue(context.Background(), path)
			assert.ErrorIs(t, err, ErrInvalidPath)
		}
		assert.Empty(t, fake.calls)
	})

	t.Run("backend failure maps to ErrSigningFailed", func(t *testing.T) {
		fake := &fakeSigner{err: errors.New("backend down")}
		issuer := NewIssuer(fake, 15*time.Minute, nil, logger.Nop())

		_, err := issuer.Issue(context.Background(), "stories/story-1/cover.jpg")
		assert.ErrorIs(t, err, ErrSigningFailed)
	})

	t.Run("non-positive ttl falls back to the default", func(t *testing.T) {
		issuer := NewIssuer(&fakeSigner{}, 0, nil, logger.Nop())
		assert.Equal(t, 30*time.Minute, issuer.TTL())
	})
}

func TestHMACSigner_SignURL(t *testing.T) {
	signer := NewHMACSigner("https://cdn.example.com/", "test-secret")

	signed, err := signer.SignURL(context.Background(), "stories/story-1/cover.jpg", 10*time.Minute)
	require.NoError(t, err)

	parsed, err := url.Parse(signed)
	require.NoError(t, err)

	assert.Equal(t, "/stories/story-1/cover.jpg", parsed.Path)
	assert.NotEmpty(t, parsed.Query().Get("sig"))

	expires, err := strconv.ParseInt(parsed.Query().Get("expires"), 10, 64)
	require.NoError(t, err)
	assert.Greater(t, expires, time.Now().Unix())

	t.Run("signature depends on the path", func(t *testing.T) {
		other, err := signer.SignURL(context.Background(), "stories/story-2/cover.jpg", 10*time.Minute)
		require.NoError(t, err)

		otherParsed, err := url.Parse(other)
		require.NoError(t, err)
		assert.NotEqual(t, parsed.Query().Get("sig"), otherParsed.Query().Get("sig"))
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		_, err := NewHMACSigner("https://cdn.example.com", "").SignURL(context.Background(), "stories/x.jpg", time.Minute)
		assert.Error(t, err)
	})
}
