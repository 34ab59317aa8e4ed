// Package sqlite provides the durable stores behind the archive and the
// ratings ladder. Live matches never touch this database; only sealed
// snapshots and win/loss tallies land here.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS archives (
	match_id    TEXT PRIMARY KEY,
	snapshot    TEXT NOT NULL,
	archived_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_archives_archived_at ON archives(archived_at);

CREATE TABLE IF NOT EXISTS standings (
	handle TEXT PRIMARY KEY,
	wins   INTEGER NOT NULL DEFAULT 0,
	losses INTEGER NOT NULL DEFAULT 0
);
`

// Store wraps a sql.DB shared by the archive and rating repositories.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
