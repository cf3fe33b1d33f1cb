package store

const (
	getCatalogVersion = `SELECT version, last_updated, checksums, total_stories
		FROM catalog_versions
		WHERE tenant_id = $1;`

	insertCatalogVersion = `INSERT INTO catalog_versions (tenant_id, version, last_updated, checksums, total_stories)
		VALUES ($1, $2, NOW(), $3, $4);`

	// CAS update: the WHERE clause on version makes concurrent writers
	// mutually exclusive, the loser affects zero rows.
	updateCatalogVersion = `UPDATE catalog_versions
		SET version = $3, last_updated = NOW(), checksums = $4, total_stories = $5
		WHERE tenant_id = $1 AND version = $2;`
)
