package queries

import (
	"context"
	"errors"
	"fmt"

	"beadloom/application/ports"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/replay"
)

// ExportMatchQuery produces a downloadable match log. The export is the full
// snapshot; replaying its move log over the rewound state reproduces it.
type ExportMatchQuery struct {
	MatchID string

	// VerifyReplay additionally replays the log before exporting and fails
	// the export if the reconstruction diverges from the live state.
	VerifyReplay bool
}

// Validate validates the ExportMatchQuery.
func (q ExportMatchQuery) Validate() error {
	if q.MatchID == "" {
		return errors.New("match id is required")
	}
	return nil
}

// ExportMatchResult is the log plus its download filename.
type ExportMatchResult struct {
	Filename string
	Snapshot *aggregates.MatchSnapshot
}

// ExportMatchHandler handles ExportMatchQuery.
type ExportMatchHandler struct {
	matches ports.MatchRepository
}

// NewExportMatchHandler creates a new handler instance.
func NewExportMatchHandler(matches ports.MatchRepository) *ExportMatchHandler {
	return &ExportMatchHandler{matches: matches}
}

// Handle exports the match log.
func (h *ExportMatchHandler) Handle(ctx context.Context, q ExportMatchQuery) (*ExportMatchResult, error) {
	match, err := h.matches.GetByID(ctx, q.MatchID)
	if err != nil {
		return nil, err
	}
	if q.VerifyReplay {
		if err := replay.Verify(match); err != nil {
			return nil, err
		}
	}
	return &ExportMatchResult{
		Filename: fmt.Sprintf("match-%s.json", match.ID()),
		Snapshot: match.Snapshot(),
	}, nil
}
