package commands

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"beadloom/application/ports"
	"beadloom/domain/core/entities"
	"beadloom/domain/judgment"
	pkgerrors "beadloom/pkg/errors"
	"beadloom/pkg/utils"
)

// SealConcordCommand closes a match with a cathedral built from the
// strongest path on the board.
type SealConcordCommand struct {
	MatchID string `json:"matchId" validate:"required"`
}

// Validate implements the command contract.
func (c SealConcordCommand) Validate() error {
	if c.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	return nil
}

// SealConcordHandler handles SealConcordCommand.
type SealConcordHandler struct {
	matches   ports.MatchRepository
	locks     ports.MatchLocker
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewSealConcordHandler creates a new handler instance.
func NewSealConcordHandler(matches ports.MatchRepository, locks ports.MatchLocker, publisher ports.EventPublisher, logger *zap.Logger) *SealConcordHandler {
	return &SealConcordHandler{matches: matches, locks: locks, publisher: publisher, logger: logger}
}

// Handle computes the top lift path and raises a cathedral whose content is
// the path's bead titles joined with arrows. An empty board has no path to
// seal and is rejected.
func (h *SealConcordHandler) Handle(ctx context.Context, cmd SealConcordCommand) (*entities.Cathedral, error) {
	release := h.locks.Acquire(cmd.MatchID)
	defer release()

	match, err := h.matches.GetByID(ctx, cmd.MatchID)
	if err != nil {
		return nil, err
	}

	cfg := match.Config()
	graph := judgment.GraphFromMatch(match)
	limits := judgment.SearchLimits{MaxDepth: cfg.SearchMaxDepth, MaxVisits: cfg.SearchMaxVisits}
	paths := judgment.FindStrongestPaths(graph, 1, limits)
	if len(paths) == 0 || len(paths[0].Nodes) == 0 {
		return nil, pkgerrors.NewNoConcordPath(cmd.MatchID)
	}
	path := paths[0].Nodes

	labels := make([]string, 0, len(path))
	for _, beadID := range path {
		labels = append(labels, concordLabel(match, beadID))
	}

	cathedral := &entities.Cathedral{
		ID:         shortID(8),
		Content:    strings.Join(labels, " → "),
		References: path,
	}
	match.RaiseCathedral(cathedral, utils.NowMillis())

	if err := h.matches.Save(ctx, match); err != nil {
		return nil, err
	}
	match.MarkEventsAsCommitted()

	h.publisher.Publish(cmd.MatchID, ports.FrameStateUpdate, match.Snapshot())
	h.logger.Info("concord sealed",
		zap.String("match_id", cmd.MatchID),
		zap.Int("path_length", len(path)))
	return match.Cathedral(), nil
}

func concordLabel(match matchReader, beadID string) string {
	b, ok := match.Bead(beadID)
	if !ok {
		return beadID
	}
	if title := strings.TrimSpace(b.Content().Title()); title != "" {
		return title
	}
	if body := strings.TrimSpace(b.Content().Body()); body != "" {
		return body
	}
	return beadID
}

// matchReader is the slice of the aggregate concordLabel needs.
type matchReader interface {
	Bead(id string) (*entities.Bead, bool)
}
