// Package memory holds the in-process stores for live matches. A live match
// stays resident until it is archived or deleted; durability is the archive's
// job, not this package's.
package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"beadloom/application/ports"
	"beadloom/domain/core/aggregates"
	pkgerrors "beadloom/pkg/errors"
	"beadloom/pkg/observability"
)

// MatchRepository keeps live matches in memory, keyed by id.
type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]*aggregates.Match
	order   []string
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewMatchRepository creates an empty match store
func NewMatchRepository(metrics *observability.Metrics, logger *zap.Logger) ports.MatchRepository {
	return &MatchRepository{
		matches: make(map[string]*aggregates.Match),
		metrics: metrics,
		logger:  logger,
	}
}

// Save stores a deep copy of the match so later mutations through the
// aggregate do not leak into the store.
func (r *MatchRepository) Save(ctx context.Context, match *aggregates.Match) error {
	if match == nil {
		return pkgerrors.NewValidationError("match is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := match.ID()
	if _, exists := r.matches[id]; !exists {
		r.order = append(r.order, id)
		if r.metrics != nil {
			r.metrics.MatchesActive.Inc()
		}
	}
	r.matches[id] = match.Clone()

	r.logger.Debug("match saved", zap.String("matchId", id))
	return nil
}

// GetByID returns a deep copy of the stored match
func (r *MatchRepository) GetByID(ctx context.Context, id string) (*aggregates.Match, error) {
	r.mu.RLock()
	match, exists := r.matches[id]
	r.mu.RUnlock()

	if !exists {
		return nil, pkgerrors.NewMatchNotFound(id)
	}
	return match.Clone(), nil
}

// Delete removes a match from the store
func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[id]; !exists {
		return pkgerrors.NewMatchNotFound(id)
	}
	delete(r.matches, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.metrics != nil {
		r.metrics.MatchesActive.Dec()
	}

	r.logger.Debug("match deleted", zap.String("matchId", id))
	return nil
}

// ListIDs returns live match ids in creation order
func (r *MatchRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids, nil
}
