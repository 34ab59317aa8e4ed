package queries

import (
	"context"
	"errors"

	"beadloom/application/ports"
	"beadloom/domain/judgment"
)

// GetInsightsQuery surfaces the text-aware diagnostics for a match: the
// content-tier heuristics, per-node lift, and any contradictory edges. These
// never move the sealed totals; they tell players where the prose is weak.
type GetInsightsQuery struct {
	MatchID string
}

// Validate validates the GetInsightsQuery.
func (q GetInsightsQuery) Validate() error {
	if q.MatchID == "" {
		return errors.New("match id is required")
	}
	return nil
}

// InsightsResult is the diagnostics bundle.
type InsightsResult struct {
	MatchID            string                             `json:"matchId"`
	Content            map[string]judgment.ContentScores  `json:"content"`
	Lift               map[string]float64                 `json:"lift"`
	ContradictoryEdges []string                           `json:"contradictoryEdges"`
}

// GetInsightsHandler handles GetInsightsQuery.
type GetInsightsHandler struct {
	matches ports.MatchRepository
}

// NewGetInsightsHandler creates a new handler instance.
func NewGetInsightsHandler(matches ports.MatchRepository) *GetInsightsHandler {
	return &GetInsightsHandler{matches: matches}
}

// Handle computes the diagnostics over an immutable copy.
func (h *GetInsightsHandler) Handle(ctx context.Context, q GetInsightsQuery) (*InsightsResult, error) {
	match, err := h.matches.GetByID(ctx, q.MatchID)
	if err != nil {
		return nil, err
	}
	state := match.Clone()
	cfg := state.Config()

	graph := judgment.GraphFromMatch(state)
	limits := judgment.SearchLimits{MaxDepth: cfg.SearchMaxDepth, MaxVisits: cfg.SearchMaxVisits}

	return &InsightsResult{
		MatchID:            state.ID(),
		Content:            judgment.ContentScoresFor(state),
		Lift:               judgment.ComputeLift(graph, limits),
		ContradictoryEdges: judgment.ContradictoryEdges(state),
	}, nil
}
