package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"beadloom/application/ports"
)

// RecordRatingCommand records one match result on the ladder.
type RecordRatingCommand struct {
	Winner string   `json:"winner" validate:"required,max=64"`
	Losers []string `json:"losers" validate:"dive,max=64"`
}

// Validate implements the command contract.
func (c RecordRatingCommand) Validate() error {
	if c.Winner == "" {
		return fmt.Errorf("winner handle is required")
	}
	for _, l := range c.Losers {
		if l == c.Winner {
			return fmt.Errorf("winner cannot also lose")
		}
	}
	return nil
}

// RecordRatingHandler handles RecordRatingCommand.
type RecordRatingHandler struct {
	ratings ports.RatingRepository
	logger  *zap.Logger
}

// NewRecordRatingHandler creates a new handler instance.
func NewRecordRatingHandler(ratings ports.RatingRepository, logger *zap.Logger) *RecordRatingHandler {
	return &RecordRatingHandler{ratings: ratings, logger: logger}
}

// Handle writes the result to the ladder.
func (h *RecordRatingHandler) Handle(ctx context.Context, cmd RecordRatingCommand) error {
	if err := h.ratings.RecordResult(ctx, cmd.Winner, true); err != nil {
		return err
	}
	for _, loser := range cmd.Losers {
		if err := h.ratings.RecordResult(ctx, loser, false); err != nil {
			return err
		}
	}
	h.logger.Info("rating recorded",
		zap.String("winner", cmd.Winner),
		zap.Int("losers", len(cmd.Losers)))
	return nil
}
