package queries

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"beadloom/application/ports"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/judgment"
	"beadloom/pkg/observability"
)

// JudgeMatchQuery runs the judgment pipeline over a match. Judging reads the
// board without mutating it, so it lives on the query side; the scroll is
// still broadcast, archived and rated as side effects of asking.
type JudgeMatchQuery struct {
	MatchID string

	// RecordOutcome archives the judged board and writes the result to the
	// ratings ladder.
	RecordOutcome bool
}

// Validate validates the JudgeMatchQuery.
func (q JudgeMatchQuery) Validate() error {
	if q.MatchID == "" {
		return errors.New("match id is required")
	}
	return nil
}

// JudgeMatchHandler handles JudgeMatchQuery.
type JudgeMatchHandler struct {
	matches   ports.MatchRepository
	archive   ports.ArchiveRepository
	ratings   ports.RatingRepository
	publisher ports.EventPublisher
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewJudgeMatchHandler creates a new handler instance.
func NewJudgeMatchHandler(
	matches ports.MatchRepository,
	archive ports.ArchiveRepository,
	ratings ports.RatingRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *JudgeMatchHandler {
	return &JudgeMatchHandler{
		matches:   matches,
		archive:   archive,
		ratings:   ratings,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle seals a scroll over an immutable copy of the board and broadcasts
// it. Archive or ladder failures after a successful judgment are logged and
// surfaced, never silently dropped.
func (h *JudgeMatchHandler) Handle(ctx context.Context, q JudgeMatchQuery) (*judgment.JudgmentScroll, error) {
	match, err := h.matches.GetByID(ctx, q.MatchID)
	if err != nil {
		return nil, err
	}

	scroll := judgment.Judge(match.Clone())
	h.metrics.JudgmentsTotal.Inc()
	h.publisher.Publish(q.MatchID, ports.FrameJudgment, scroll)
	h.logger.Info("judgment sealed",
		zap.String("match_id", q.MatchID),
		zap.String("winner", scroll.Winner))

	if q.RecordOutcome {
		if err := h.recordOutcome(ctx, match, scroll); err != nil {
			return nil, err
		}
	}
	return scroll, nil
}

func (h *JudgeMatchHandler) recordOutcome(ctx context.Context, match *aggregates.Match, scroll *judgment.JudgmentScroll) error {
	if err := h.archive.Archive(ctx, match.Snapshot()); err != nil {
		h.logger.Error("archive failed", zap.String("match_id", match.ID()), zap.Error(err))
		return err
	}
	if scroll.Winner == "" {
		return nil
	}
	for _, p := range match.Players() {
		if err := h.ratings.RecordResult(ctx, p.Handle(), p.ID() == scroll.Winner); err != nil {
			h.logger.Error("rating update failed", zap.String("handle", p.Handle()), zap.Error(err))
			return err
		}
	}
	return nil
}
