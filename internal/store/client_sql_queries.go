package store

const cacheSchema = `
CREATE TABLE IF NOT EXISTS stories (
	id         TEXT PRIMARY KEY,
	category   TEXT NOT NULL DEFAULT '',
	payload    BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cache_metadata (
	id             INTEGER PRIMARY KEY CHECK (id = 1),
	version        INTEGER NOT NULL DEFAULT 0,
	last_sync      TIMESTAMP,
	checksums      BLOB NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS asset_urls (
	path       TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	expires_at TIMESTAMP NOT NULL
);
`

const (
	getAllCachedStories = `SELECT payload FROM stories ORDER BY id;`

	getCachedStory = `SELECT payload FROM stories WHERE id = ?;`

	getCachedStoriesByCategory = `SELECT payload FROM stories WHERE category = ? ORDER BY id;`

	upsertCachedStory = `INSERT INTO stories (id, category, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			category = excluded.category,
			payload = excluded.payload,
			updated_at = excluded.updated_at;`

	removeCachedStory = `DELETE FROM stories WHERE id = ?;`

	getCacheMetadata = `SELECT version, last_sync, checksums FROM cache_metadata WHERE id = 1;`

	setCacheMetadata = `INSERT INTO cache_metadata (id, version, last_sync, checksums)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			version = excluded.version,
			last_sync = excluded.last_sync,
			checksums = excluded.checksums;`

	upsertAssetURL = `INSERT INTO asset_urls (path, url, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET
			url = excluded.url,
			expires_at = excluded.expires_at;`

	getAssetURL = `SELECT url, expires_at FROM asset_urls WHERE path = ? AND expires_at > ?;`

	clearStories   = `DELETE FROM stories;`
	clearMetadata  = `DELETE FROM cache_metadata;`
	clearAssetURLs = `DELETE FROM asset_urls;`
)
