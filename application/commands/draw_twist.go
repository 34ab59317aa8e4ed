package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"beadloom/application/ports"
	"beadloom/domain/core/entities"
	"beadloom/pkg/utils"
)

// DrawTwistCommand activates the next twist card in the match deck.
type DrawTwistCommand struct {
	MatchID string `json:"matchId" validate:"required"`
}

// Validate implements the command contract.
func (c DrawTwistCommand) Validate() error {
	if c.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	return nil
}

// DrawTwistHandler handles DrawTwistCommand.
type DrawTwistHandler struct {
	matches   ports.MatchRepository
	locks     ports.MatchLocker
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewDrawTwistHandler creates a new handler instance.
func NewDrawTwistHandler(matches ports.MatchRepository, locks ports.MatchLocker, publisher ports.EventPublisher, logger *zap.Logger) *DrawTwistHandler {
	return &DrawTwistHandler{matches: matches, locks: locks, publisher: publisher, logger: logger}
}

// Handle draws the next card. The deck is ordered and finite; an exhausted
// deck is a client error, not a reshuffle.
func (h *DrawTwistHandler) Handle(ctx context.Context, cmd DrawTwistCommand) (*entities.Twist, error) {
	release := h.locks.Acquire(cmd.MatchID)
	defer release()

	match, err := h.matches.GetByID(ctx, cmd.MatchID)
	if err != nil {
		return nil, err
	}

	twist, err := match.DrawTwist(utils.NowMillis())
	if err != nil {
		return nil, err
	}
	if err := h.matches.Save(ctx, match); err != nil {
		return nil, err
	}
	match.MarkEventsAsCommitted()

	h.publisher.Publish(cmd.MatchID, ports.FrameStateUpdate, match.Snapshot())
	h.logger.Info("twist drawn",
		zap.String("match_id", cmd.MatchID),
		zap.String("twist_id", twist.ID),
		zap.String("name", twist.Name))
	return twist, nil
}
