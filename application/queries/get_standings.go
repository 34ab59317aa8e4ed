package queries

import (
	"context"
	"errors"

	"beadloom/application/ports"
)

// GetStandingsQuery pages through the ratings ladder.
type GetStandingsQuery struct {
	Page     int
	PageSize int
}

// Validate validates the GetStandingsQuery.
func (q GetStandingsQuery) Validate() error {
	if q.Page < 1 {
		return errors.New("page must be at least 1")
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		return errors.New("page size must be between 1 and 100")
	}
	return nil
}

// StandingsResult is one ladder page plus the overall count.
type StandingsResult struct {
	Standings []ports.Standing `json:"standings"`
	Total     int              `json:"total"`
	Page      int              `json:"page"`
	PageSize  int              `json:"pageSize"`
}

// GetStandingsHandler handles GetStandingsQuery.
type GetStandingsHandler struct {
	ratings ports.RatingRepository
}

// NewGetStandingsHandler creates a new handler instance.
func NewGetStandingsHandler(ratings ports.RatingRepository) *GetStandingsHandler {
	return &GetStandingsHandler{ratings: ratings}
}

// Handle returns the requested ladder page.
func (h *GetStandingsHandler) Handle(ctx context.Context, q GetStandingsQuery) (*StandingsResult, error) {
	offset := (q.Page - 1) * q.PageSize
	standings, total, err := h.ratings.Standings(ctx, q.PageSize, offset)
	if err != nil {
		return nil, err
	}
	if standings == nil {
		standings = []ports.Standing{}
	}
	return &StandingsResult{
		Standings: standings,
		Total:     total,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}, nil
}
