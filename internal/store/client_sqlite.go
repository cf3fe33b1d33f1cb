package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

// ClientDB wraps the local SQLite cache connection.
type ClientDB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens (creating if necessary) the local cache database
// and applies the cache schema.
func NewConnectSQLite(ctx context.Context, path string, log *logger.Logger) (*ClientDB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error occured during cache database connection")
		return nil, fmt.Errorf("error occured during cache database connection: %w", err)
	}

	// SQLite serializes writers; a single connection avoids busy errors.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error connecting cache database (ping): %w", err)
	}

	if _, err = conn.ExecContext(ctx, cacheSchema); err != nil {
		return nil, fmt.Errorf("failed to apply cache schema: %w", err)
	}
	log.Info().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to cache database successfully")

	return &ClientDB{DB: conn, logger: log}, nil
}
