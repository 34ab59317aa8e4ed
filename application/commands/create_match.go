package commands

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"beadloom/application/ports"
	"beadloom/domain/config"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	"beadloom/pkg/utils"
)

// CreateMatchCommand opens a new match.
type CreateMatchCommand struct {
	// ID is optional; a fresh short id is minted when empty
	ID string `json:"id"`
}

// Validate implements the command contract.
func (c CreateMatchCommand) Validate() error {
	return nil
}

// CreateMatchHandler handles CreateMatchCommand.
type CreateMatchHandler struct {
	matches ports.MatchRepository
	cfg     *config.DomainConfig
	logger  *zap.Logger
}

// NewCreateMatchHandler creates a new handler instance.
func NewCreateMatchHandler(matches ports.MatchRepository, cfg *config.DomainConfig, logger *zap.Logger) *CreateMatchHandler {
	return &CreateMatchHandler{matches: matches, cfg: cfg, logger: logger}
}

// Handle opens the match with the standard seed draw and persists it.
func (h *CreateMatchHandler) Handle(ctx context.Context, cmd CreateMatchCommand) (*aggregates.MatchSnapshot, error) {
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		id = shortID(8)
	}

	match, err := aggregates.NewMatchWithConfig(id, entities.SampleSeeds(), utils.NowMillis(), h.cfg)
	if err != nil {
		return nil, err
	}
	if err := h.matches.Save(ctx, match); err != nil {
		return nil, err
	}

	h.logger.Info("match created", zap.String("match_id", id))
	return match.Snapshot(), nil
}

// shortID returns the first n characters of a fresh UUID.
func shortID(n int) string {
	id := uuid.New().String()
	if n < len(id) {
		return id[:n]
	}
	return id
}
