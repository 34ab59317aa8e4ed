package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"beadloom/application/commands"
	"beadloom/application/commands/bus"
	"beadloom/application/queries"
	querybus "beadloom/application/queries/bus"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	"beadloom/pkg/common"
	pkgerrors "beadloom/pkg/errors"
	"beadloom/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; bead content tops out well below this.
const maxBodyBytes = 1 << 20

// MatchHandler handles match-related HTTP requests
type MatchHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *MatchHandler {
	return &MatchHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errors,
		logger:     logger,
	}
}

// JoinMatchRequest represents the request body for joining a match
type JoinMatchRequest struct {
	Handle string `json:"handle" validate:"omitempty,max=64"`
}

// CreateMatch handles POST /match
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	matchID := uuid.New().String()[:8]

	if err := h.commandBus.Send(r.Context(), commands.CreateMatchCommand{ID: matchID}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	snapshot, err := h.askMatch(r, matchID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, snapshot)
}

// GetMatch handles GET /match/{matchId}
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.askMatch(r, chi.URLParam(r, "matchId"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, snapshot)
}

// JoinMatch handles POST /match/{matchId}/join
func (h *MatchHandler) JoinMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	var req JoinMatchRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	playerID := uuid.New().String()[:6]
	cmd := commands.JoinMatchCommand{MatchID: matchID, Handle: req.Handle, PlayerID: playerID}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	snapshot, err := h.askMatch(r, matchID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	for _, p := range snapshot.Players {
		if p.ID == playerID {
			common.RespondJSON(w, http.StatusOK, commands.JoinMatchResult{Player: p, State: snapshot})
			return
		}
	}
	h.errors.Handle(w, r, pkgerrors.NewInternalError(fmt.Sprintf("joined player %s missing from state", playerID)))
}

// SubmitMove handles POST /match/{matchId}/move
func (h *MatchHandler) SubmitMove(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	var move entities.Move
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&move); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid move body: "+err.Error()))
		return
	}

	ctx := common.EnrichContext(r.Context(), matchID, chimiddleware.GetReqID(r.Context()))
	cmd := commands.SubmitMoveCommand{MatchID: matchID, Move: &move}
	if err := h.commandBus.Send(ctx, cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	snapshot, err := h.askMatch(r, matchID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, snapshot)
}

// DrawTwist handles POST /match/{matchId}/twist
func (h *MatchHandler) DrawTwist(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	if err := h.commandBus.Send(r.Context(), commands.DrawTwistCommand{MatchID: matchID}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	snapshot, err := h.askMatch(r, matchID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"twist": snapshot.Twist,
		"state": snapshot,
	})
}

// SealConcord handles POST /match/{matchId}/concord
func (h *MatchHandler) SealConcord(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	if err := h.commandBus.Send(r.Context(), commands.SealConcordCommand{MatchID: matchID}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	snapshot, err := h.askMatch(r, matchID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"cathedral": snapshot.Cathedral,
	})
}

// JudgeMatch handles POST /match/{matchId}/judge
func (h *MatchHandler) JudgeMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	result, err := h.queryBus.Ask(r.Context(), queries.JudgeMatchQuery{MatchID: matchID, RecordOutcome: true})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetLog handles GET /match/{matchId}/log
func (h *MatchHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	snapshot, err := h.askMatch(r, matchID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=match-%s.json", matchID))
	common.RespondJSON(w, http.StatusOK, snapshot)
}

// ExportMatch handles GET /match/{matchId}/export. The export is replay
// verified before it is handed out.
func (h *MatchHandler) ExportMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	result, err := h.queryBus.Ask(r.Context(), queries.ExportMatchQuery{MatchID: matchID, VerifyReplay: true})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	export, ok := result.(*queries.ExportMatchResult)
	if !ok {
		h.errors.Handle(w, r, pkgerrors.NewInternalError("unexpected export result type"))
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename))
	common.RespondJSON(w, http.StatusOK, export.Snapshot)
}

// GetInsights handles GET /match/{matchId}/insights
func (h *MatchHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	result, err := h.queryBus.Ask(r.Context(), queries.GetInsightsQuery{MatchID: matchID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// askMatch fetches the current snapshot through the query bus
func (h *MatchHandler) askMatch(r *http.Request, matchID string) (*aggregates.MatchSnapshot, error) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetMatchQuery{MatchID: matchID})
	if err != nil {
		return nil, err
	}
	snapshot, ok := result.(*aggregates.MatchSnapshot)
	if !ok {
		return nil, pkgerrors.NewInternalError("unexpected match result type")
	}
	return snapshot, nil
}
