package errors

import "fmt"

// Error codes for match and ladder operations. Handlers and clients key off
// these, so they are part of the API surface.
const (
	CodeMatchNotFound  = "MATCH_NOT_FOUND"
	CodeMatchFull      = "MATCH_FULL"
	CodePlayerNotFound = "PLAYER_NOT_FOUND"
	CodeMoveRejected   = "MOVE_REJECTED"
	CodeNoTwistLeft    = "NO_TWIST_LEFT"
	CodeNoConcordPath  = "NO_CONCORD_PATH"
	CodeRatingStore    = "RATING_STORE"
	CodeArchiveStore   = "ARCHIVE_STORE"
)

// NewMatchNotFound reports a missing match id.
func NewMatchNotFound(matchID string) *AppError {
	return NewNotFoundError("match").
		WithCode(CodeMatchNotFound).
		WithDetails(map[string]interface{}{"matchId": matchID})
}

// NewMatchFull reports a join attempt against a full match.
func NewMatchFull(matchID string) *AppError {
	return NewConflictError("Match full").
		WithCode(CodeMatchFull).
		WithDetails(map[string]interface{}{"matchId": matchID})
}

// NewPlayerNotFound reports a move by an unknown player.
func NewPlayerNotFound(playerID string) *AppError {
	return NewNotFoundError("player").
		WithCode(CodePlayerNotFound).
		WithDetails(map[string]interface{}{"playerId": playerID})
}

// NewMoveRejected carries a validator rejection reason. The message is the
// raw reason string so clients can match on it.
func NewMoveRejected(reason string) *AppError {
	return NewValidationError(reason).WithCode(CodeMoveRejected)
}

// NewNoTwistLeft reports an exhausted twist deck.
func NewNoTwistLeft(matchID string) *AppError {
	return NewConflictError("twist deck exhausted").
		WithCode(CodeNoTwistLeft).
		WithDetails(map[string]interface{}{"matchId": matchID})
}

// NewNoConcordPath reports a concord attempt on a board with no path.
func NewNoConcordPath(matchID string) *AppError {
	return NewValidationError("no path to raise").
		WithCode(CodeNoConcordPath).
		WithDetails(map[string]interface{}{"matchId": matchID})
}

// NewRatingStoreError wraps a ladder persistence failure.
func NewRatingStoreError(op string, err error) *AppError {
	return NewDatabaseError(fmt.Sprintf("ratings %s", op), err).WithCode(CodeRatingStore)
}

// NewArchiveStoreError wraps a match archive persistence failure.
func NewArchiveStoreError(op string, err error) *AppError {
	return NewDatabaseError(fmt.Sprintf("archive %s", op), err).WithCode(CodeArchiveStore)
}
