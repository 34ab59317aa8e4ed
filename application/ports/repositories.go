package ports

import (
	"context"

	"beadloom/domain/core/aggregates"
)

// MatchRepository persists live matches. The application layer depends on
// this port only; the in-memory store behind it is an implementation detail.
type MatchRepository interface {
	// Save persists a match (create or update)
	Save(ctx context.Context, match *aggregates.Match) error

	// GetByID retrieves a match by id
	GetByID(ctx context.Context, id string) (*aggregates.Match, error)

	// Delete removes a match
	Delete(ctx context.Context, id string) error

	// ListIDs returns the ids of all live matches in creation order
	ListIDs(ctx context.Context) ([]string, error)
}

// ArchiveRepository stores finished-match snapshots durably.
type ArchiveRepository interface {
	// Archive stores (or replaces) a snapshot
	Archive(ctx context.Context, snapshot *aggregates.MatchSnapshot) error

	// Load retrieves an archived snapshot
	Load(ctx context.Context, id string) (*aggregates.MatchSnapshot, error)

	// ListIDs pages through archived match ids, newest first, returning the
	// page and the total count
	ListIDs(ctx context.Context, limit, offset int) ([]string, int, error)
}

// Standing is one row of the ratings ladder.
type Standing struct {
	Handle string `json:"handle"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// RatingRepository maintains the win/loss ladder.
type RatingRepository interface {
	// RecordResult increments a handle's win or loss count
	RecordResult(ctx context.Context, handle string, won bool) error

	// Standings pages through the ladder ordered by wins desc, handle asc,
	// returning the page and the total number of rated handles
	Standings(ctx context.Context, limit, offset int) ([]Standing, int, error)
}

// EventPublisher pushes frames to everyone watching a match. Implementations
// must not block the caller; a slow subscriber is the publisher's problem.
type EventPublisher interface {
	Publish(matchID string, frameType string, payload interface{})
}

// Frame types pushed over the wire.
const (
	FrameStateUpdate  = "state:update"
	FrameMoveAccepted = "move:accepted"
	FrameJudgment     = "end:judgment"
)

// MatchLocker serializes mutations per match. The core aggregate assumes
// at most one in-flight mutation per match id.
type MatchLocker interface {
	// Acquire blocks until the match lock is held and returns the release
	Acquire(matchID string) (release func())
}
