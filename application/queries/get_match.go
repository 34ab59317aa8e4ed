package queries

import (
	"context"
	"errors"

	"beadloom/application/ports"
	"beadloom/domain/core/aggregates"
)

// GetMatchQuery fetches one match's full state.
type GetMatchQuery struct {
	MatchID string
}

// Validate validates the GetMatchQuery.
func (q GetMatchQuery) Validate() error {
	if q.MatchID == "" {
		return errors.New("match id is required")
	}
	return nil
}

// GetMatchHandler handles GetMatchQuery.
type GetMatchHandler struct {
	matches ports.MatchRepository
}

// NewGetMatchHandler creates a new handler instance.
func NewGetMatchHandler(matches ports.MatchRepository) *GetMatchHandler {
	return &GetMatchHandler{matches: matches}
}

// Handle returns the current snapshot.
func (h *GetMatchHandler) Handle(ctx context.Context, q GetMatchQuery) (*aggregates.MatchSnapshot, error) {
	match, err := h.matches.GetByID(ctx, q.MatchID)
	if err != nil {
		return nil, err
	}
	return match.Snapshot(), nil
}
