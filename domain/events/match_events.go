package events

import (
	"time"

	"beadloom/domain/core/entities"
)

// Match Events

// MatchCreated is raised when a new match is opened
type MatchCreated struct {
	BaseEvent
	MatchID string `json:"match_id"`
}

// NewMatchCreated creates a MatchCreated event
func NewMatchCreated(matchID string, timestamp time.Time) MatchCreated {
	return MatchCreated{
		BaseEvent: BaseEvent{
			AggregateID: matchID,
			EventType:   "match.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		MatchID: matchID,
	}
}

// PlayerJoined is raised when a player takes a seat
type PlayerJoined struct {
	BaseEvent
	MatchID  string `json:"match_id"`
	PlayerID string `json:"player_id"`
	Handle   string `json:"handle"`
}

// NewPlayerJoined creates a PlayerJoined event
func NewPlayerJoined(matchID, playerID, handle string, timestamp time.Time) PlayerJoined {
	return PlayerJoined{
		BaseEvent: BaseEvent{
			AggregateID: matchID,
			EventType:   "match.player_joined",
			Timestamp:   timestamp,
			Version:     1,
		},
		MatchID:  matchID,
		PlayerID: playerID,
		Handle:   handle,
	}
}

// MoveAccepted is raised when a validated move is applied
type MoveAccepted struct {
	BaseEvent
	MatchID  string            `json:"match_id"`
	MoveID   string            `json:"move_id"`
	PlayerID string            `json:"player_id"`
	MoveType entities.MoveType `json:"move_type"`
}

// NewMoveAccepted creates a MoveAccepted event
func NewMoveAccepted(matchID, moveID, playerID string, moveType entities.MoveType, timestamp time.Time) MoveAccepted {
	return MoveAccepted{
		BaseEvent: BaseEvent{
			AggregateID: matchID,
			EventType:   "match.move_accepted",
			Timestamp:   timestamp,
			Version:     1,
		},
		MatchID:  matchID,
		MoveID:   moveID,
		PlayerID: playerID,
		MoveType: moveType,
	}
}

// TwistDrawn is raised when the next constraint card is turned over
type TwistDrawn struct {
	BaseEvent
	MatchID string `json:"match_id"`
	TwistID string `json:"twist_id"`
	Name    string `json:"name"`
}

// NewTwistDrawn creates a TwistDrawn event
func NewTwistDrawn(matchID, twistID, name string, timestamp time.Time) TwistDrawn {
	return TwistDrawn{
		BaseEvent: BaseEvent{
			AggregateID: matchID,
			EventType:   "match.twist_drawn",
			Timestamp:   timestamp,
			Version:     1,
		},
		MatchID: matchID,
		TwistID: twistID,
		Name:    name,
	}
}

// CathedralRaised is raised when a concord closes the match board
type CathedralRaised struct {
	BaseEvent
	MatchID     string `json:"match_id"`
	CathedralID string `json:"cathedral_id"`
}

// NewCathedralRaised creates a CathedralRaised event
func NewCathedralRaised(matchID, cathedralID string, timestamp time.Time) CathedralRaised {
	return CathedralRaised{
		BaseEvent: BaseEvent{
			AggregateID: matchID,
			EventType:   "match.cathedral_raised",
			Timestamp:   timestamp,
			Version:     1,
		},
		MatchID:     matchID,
		CathedralID: cathedralID,
	}
}

// JudgmentSealed is raised when a judgment scroll is produced
type JudgmentSealed struct {
	BaseEvent
	MatchID string `json:"match_id"`
	Winner  string `json:"winner"`
}

// NewJudgmentSealed creates a JudgmentSealed event
func NewJudgmentSealed(matchID, winner string, timestamp time.Time) JudgmentSealed {
	return JudgmentSealed{
		BaseEvent: BaseEvent{
			AggregateID: matchID,
			EventType:   "match.judgment_sealed",
			Timestamp:   timestamp,
			Version:     1,
		},
		MatchID: matchID,
		Winner:  winner,
	}
}
