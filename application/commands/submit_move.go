package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"beadloom/application/ports"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	"beadloom/domain/core/validators"
	"beadloom/pkg/common"
	pkgerrors "beadloom/pkg/errors"
	"beadloom/pkg/observability"
)

// SubmitMoveCommand plays one move in a match. The move arrives exactly as
// the client sent it; normalization and validation happen here.
type SubmitMoveCommand struct {
	MatchID string
	Move    *entities.Move
}

// Validate implements the command contract.
func (c SubmitMoveCommand) Validate() error {
	if c.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if c.Move == nil {
		return fmt.Errorf("move is required")
	}
	return nil
}

// SubmitMoveHandler handles SubmitMoveCommand. It is the only writer of
// board state: sanitize, validate, apply, persist, broadcast.
type SubmitMoveHandler struct {
	matches   ports.MatchRepository
	locks     ports.MatchLocker
	publisher ports.EventPublisher
	validator *validators.MoveValidator
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewSubmitMoveHandler creates a new handler instance.
func NewSubmitMoveHandler(
	matches ports.MatchRepository,
	locks ports.MatchLocker,
	publisher ports.EventPublisher,
	validator *validators.MoveValidator,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *SubmitMoveHandler {
	return &SubmitMoveHandler{
		matches:   matches,
		locks:     locks,
		publisher: publisher,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle plays the move. A rejected move returns a MOVE_REJECTED error whose
// message is the exact validator reason; accepted moves come back with the
// refreshed snapshot.
func (h *SubmitMoveHandler) Handle(ctx context.Context, cmd SubmitMoveCommand) (*aggregates.MatchSnapshot, error) {
	start := time.Now()
	release := h.locks.Acquire(cmd.MatchID)
	defer release()

	match, err := h.matches.GetByID(ctx, cmd.MatchID)
	if err != nil {
		return nil, err
	}

	requestID, _ := common.GetRequestID(ctx)

	move := cmd.Move
	if result := h.validator.Validate(move, match); !result.OK {
		h.metrics.RecordMove(string(move.Type()), "rejected", time.Since(start))
		h.logger.Info("move rejected",
			zap.String("match_id", cmd.MatchID),
			zap.String("move_id", move.ID()),
			zap.String("type", string(move.Type())),
			zap.String("reason", result.Err),
			zap.String("request_id", requestID))
		return nil, pkgerrors.NewMoveRejected(result.Err)
	}

	move.MarkValid()
	match.ApplyWithResources(move)
	if err := h.matches.Save(ctx, match); err != nil {
		return nil, err
	}
	match.MarkEventsAsCommitted()

	snapshot := match.Snapshot()
	h.publisher.Publish(cmd.MatchID, ports.FrameMoveAccepted, move)
	h.publisher.Publish(cmd.MatchID, ports.FrameStateUpdate, snapshot)

	h.metrics.RecordMove(string(move.Type()), "accepted", time.Since(start))
	h.logger.Info("move accepted",
		zap.String("match_id", cmd.MatchID),
		zap.String("move_id", move.ID()),
		zap.String("player_id", move.PlayerID()),
		zap.String("type", string(move.Type())),
		zap.String("request_id", requestID))

	return snapshot, nil
}
