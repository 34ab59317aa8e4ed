package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"beadloom/application/ports"
	"beadloom/domain/core/aggregates"
	pkgerrors "beadloom/pkg/errors"
	"beadloom/pkg/utils"
)

// ArchiveRepository stores sealed match snapshots as JSON rows.
type ArchiveRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewArchiveRepository creates a SQLite-backed archive
func NewArchiveRepository(store *Store, logger *zap.Logger) ports.ArchiveRepository {
	return &ArchiveRepository{store: store, logger: logger}
}

// Archive stores (or replaces) a snapshot
func (r *ArchiveRepository) Archive(ctx context.Context, snapshot *aggregates.MatchSnapshot) error {
	if snapshot == nil {
		return pkgerrors.NewValidationError("snapshot is required")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return pkgerrors.NewArchiveStoreError("encode", err)
	}

	_, err = r.store.conn.ExecContext(ctx,
		`INSERT INTO archives (match_id, snapshot, archived_at) VALUES (?, ?, ?)
		 ON CONFLICT(match_id) DO UPDATE SET snapshot = excluded.snapshot, archived_at = excluded.archived_at`,
		snapshot.ID, string(payload), utils.NowMillis())
	if err != nil {
		return pkgerrors.NewArchiveStoreError("insert", err)
	}

	r.logger.Info("match archived", zap.String("matchId", snapshot.ID))
	return nil
}

// Load retrieves an archived snapshot
func (r *ArchiveRepository) Load(ctx context.Context, id string) (*aggregates.MatchSnapshot, error) {
	var payload string
	err := r.store.conn.QueryRowContext(ctx,
		`SELECT snapshot FROM archives WHERE match_id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, pkgerrors.NewMatchNotFound(id)
	}
	if err != nil {
		return nil, pkgerrors.NewArchiveStoreError("select", err)
	}

	var snapshot aggregates.MatchSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, pkgerrors.NewArchiveStoreError("decode", err)
	}
	return &snapshot, nil
}

// ListIDs pages through archived match ids, newest first
func (r *ArchiveRepository) ListIDs(ctx context.Context, limit, offset int) ([]string, int, error) {
	var total int
	if err := r.store.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM archives`).Scan(&total); err != nil {
		return nil, 0, pkgerrors.NewArchiveStoreError("count", err)
	}

	rows, err := r.store.conn.QueryContext(ctx,
		`SELECT match_id FROM archives ORDER BY archived_at DESC, match_id ASC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, 0, pkgerrors.NewArchiveStoreError("select", err)
	}
	defer rows.Close()

	ids := make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, 0, pkgerrors.NewArchiveStoreError("scan", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, pkgerrors.NewArchiveStoreError("iterate", err)
	}
	return ids, total, nil
}
