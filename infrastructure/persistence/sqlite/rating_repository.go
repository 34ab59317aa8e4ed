package sqlite

import (
	"context"

	"go.uber.org/zap"

	"beadloom/application/ports"
	pkgerrors "beadloom/pkg/errors"
)

// RatingRepository keeps the win/loss ladder.
type RatingRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewRatingRepository creates a SQLite-backed ladder
func NewRatingRepository(store *Store, logger *zap.Logger) ports.RatingRepository {
	return &RatingRepository{store: store, logger: logger}
}

// RecordResult increments a handle's win or loss count
func (r *RatingRepository) RecordResult(ctx context.Context, handle string, won bool) error {
	if handle == "" {
		return pkgerrors.NewValidationError("handle is required")
	}

	wins, losses := 0, 1
	if won {
		wins, losses = 1, 0
	}

	_, err := r.store.conn.ExecContext(ctx,
		`INSERT INTO standings (handle, wins, losses) VALUES (?, ?, ?)
		 ON CONFLICT(handle) DO UPDATE SET wins = wins + excluded.wins, losses = losses + excluded.losses`,
		handle, wins, losses)
	if err != nil {
		return pkgerrors.NewRatingStoreError("upsert", err)
	}

	r.logger.Debug("result recorded", zap.String("handle", handle), zap.Bool("won", won))
	return nil
}

// Standings pages through the ladder ordered by wins desc, handle asc
func (r *RatingRepository) Standings(ctx context.Context, limit, offset int) ([]ports.Standing, int, error) {
	var total int
	if err := r.store.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM standings`).Scan(&total); err != nil {
		return nil, 0, pkgerrors.NewRatingStoreError("count", err)
	}

	rows, err := r.store.conn.QueryContext(ctx,
		`SELECT handle, wins, losses FROM standings ORDER BY wins DESC, handle ASC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, 0, pkgerrors.NewRatingStoreError("select", err)
	}
	defer rows.Close()

	standings := make([]ports.Standing, 0, limit)
	for rows.Next() {
		var s ports.Standing
		if err := rows.Scan(&s.Handle, &s.Wins, &s.Losses); err != nil {
			return nil, 0, pkgerrors.NewRatingStoreError("scan", err)
		}
		standings = append(standings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, pkgerrors.NewRatingStoreError("iterate", err)
	}
	return standings, total, nil
}
