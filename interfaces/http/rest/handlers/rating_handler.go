package handlers

import (
	"net/http"

	"beadloom/application/commands"
	"beadloom/application/commands/bus"
	"beadloom/application/queries"
	querybus "beadloom/application/queries/bus"
	"beadloom/pkg/common"
	pkgerrors "beadloom/pkg/errors"
	"beadloom/pkg/utils"

	"go.uber.org/zap"
)

// RatingHandler handles ladder-related HTTP requests
type RatingHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *RatingHandler {
	return &RatingHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errors,
		logger:     logger,
	}
}

// RecordResultRequest represents the request body for recording a result
type RecordResultRequest struct {
	Winner string   `json:"winner" validate:"required,max=64"`
	Losers []string `json:"losers" validate:"omitempty,max=8,dive,max=64"`
}

// GetStandings handles GET /ratings
func (h *RatingHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractPaginationParams(r)

	result, err := h.queryBus.Ask(r.Context(), queries.GetStandingsQuery{
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	standings, ok := result.(*queries.StandingsResult)
	if !ok {
		h.errors.Handle(w, r, pkgerrors.NewInternalError("unexpected standings result type"))
		return
	}

	common.RespondWithMeta(w, http.StatusOK, standings.Standings, &common.MetaInfo{
		Pagination: common.BuildPaginationMeta(standings.Page, standings.PageSize, standings.Total),
	})
}

// RecordResult handles POST /ratings
func (h *RatingHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var req RecordResultRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	cmd := commands.RecordRatingCommand{Winner: req.Winner, Losers: req.Losers}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]bool{"recorded": true})
}
