// Package replay reconstructs match state by folding the recorded move log
// over a rewound initial state. Final state is a pure function of the
// initial state and the log, so an exported match can be rebuilt anywhere
// and checked against the original.
package replay

import (
	"bytes"
	"encoding/json"
	"fmt"

	"beadloom/domain/config"
	"beadloom/domain/core/aggregates"
	pkgerrors "beadloom/pkg/errors"
)

// Rebuild replays a match's own move log over its rewound initial state and
// returns the reconstruction. The input aggregate is not mutated.
func Rebuild(m *aggregates.Match) *aggregates.Match {
	fresh := m.Rewound()
	for _, mv := range m.Moves() {
		fresh.ApplyWithResources(mv)
	}
	fresh.MarkEventsAsCommitted()
	return fresh
}

// FromLog rebuilds a match from an exported snapshot, trusting only its
// seating and move log: the board is rewound and replayed rather than taken
// from the snapshot's collections.
func FromLog(s *aggregates.MatchSnapshot, cfg *config.DomainConfig) (*aggregates.Match, error) {
	m, err := aggregates.FromSnapshotWithConfig(s, cfg)
	if err != nil {
		return nil, err
	}
	return Rebuild(m), nil
}

// Verify replays the match and checks that the reconstruction matches the
// live state. A mismatch means a move mutated state outside the applicator.
func Verify(m *aggregates.Match) error {
	want, err := normalizedSnapshot(m)
	if err != nil {
		return err
	}
	got, err := normalizedSnapshot(Rebuild(m))
	if err != nil {
		return err
	}
	if !bytes.Equal(want, got) {
		return pkgerrors.NewInternalError(fmt.Sprintf("replay mismatch for match %s", m.ID()))
	}
	return nil
}

// normalizedSnapshot serializes a snapshot with updatedAt cleared. Joins and
// twist draws stamp updatedAt without appending to the move log, so the raw
// timestamp is the one field a faithful replay cannot reproduce.
func normalizedSnapshot(m *aggregates.Match) ([]byte, error) {
	s := m.Snapshot()
	s.UpdatedAt = 0
	data, err := json.Marshal(s)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "snapshot serialization failed")
	}
	return data, nil
}
