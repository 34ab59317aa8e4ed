package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"beadloom/application/ports"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	"beadloom/pkg/sanitize"
	"beadloom/pkg/utils"
)

// JoinMatchCommand seats a player in an open match.
type JoinMatchCommand struct {
	MatchID string `json:"matchId" validate:"required"`
	Handle  string `json:"handle" validate:"max=64"`

	// PlayerID is minted by the caller when it needs to know the seat id
	// up front; left empty, the handler mints one.
	PlayerID string `json:"playerId,omitempty"`
}

// Validate implements the command contract.
func (c JoinMatchCommand) Validate() error {
	if c.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	return nil
}

// JoinMatchResult is the seated player plus the refreshed match state.
type JoinMatchResult struct {
	Player aggregates.PlayerSnapshot `json:"player"`
	State  *aggregates.MatchSnapshot `json:"state"`
}

// JoinMatchHandler handles JoinMatchCommand.
type JoinMatchHandler struct {
	matches   ports.MatchRepository
	locks     ports.MatchLocker
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewJoinMatchHandler creates a new handler instance.
func NewJoinMatchHandler(matches ports.MatchRepository, locks ports.MatchLocker, publisher ports.EventPublisher, logger *zap.Logger) *JoinMatchHandler {
	return &JoinMatchHandler{matches: matches, locks: locks, publisher: publisher, logger: logger}
}

// Handle seats the player, sanitizing the handle and defaulting it to
// "PlayerN" when absent, then broadcasts the refreshed state.
func (h *JoinMatchHandler) Handle(ctx context.Context, cmd JoinMatchCommand) (*JoinMatchResult, error) {
	release := h.locks.Acquire(cmd.MatchID)
	defer release()

	match, err := h.matches.GetByID(ctx, cmd.MatchID)
	if err != nil {
		return nil, err
	}

	handle := sanitize.Markdown(cmd.Handle)
	if handle == "" {
		handle = fmt.Sprintf("Player%d", len(match.Players())+1)
	}

	playerID := cmd.PlayerID
	if playerID == "" {
		playerID = shortID(6)
	}

	player, err := entities.NewPlayerWithConfig(playerID, handle, match.Config())
	if err != nil {
		return nil, err
	}
	if err := match.Join(player, utils.NowMillis()); err != nil {
		return nil, err
	}
	if err := h.matches.Save(ctx, match); err != nil {
		return nil, err
	}

	snapshot := match.Snapshot()
	h.publisher.Publish(cmd.MatchID, ports.FrameStateUpdate, snapshot)
	h.logger.Info("player joined",
		zap.String("match_id", cmd.MatchID),
		zap.String("player_id", player.ID()),
		zap.String("handle", handle))

	return &JoinMatchResult{
		Player: aggregates.PlayerSnapshot{
			ID:        player.ID(),
			Handle:    player.Handle(),
			Resources: player.Ledger(),
		},
		State: snapshot,
	}, nil
}
