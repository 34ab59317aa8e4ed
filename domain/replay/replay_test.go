package replay

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beadloom/domain/config"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	"beadloom/domain/core/valueobjects"
)

func playedMatch(t *testing.T) *aggregates.Match {
	t.Helper()
	cfg := config.DefaultDomainConfig()
	m, err := aggregates.NewMatchWithConfig("replay01", entities.SampleSeeds(), 100, cfg)
	require.NoError(t, err)

	p1, err := entities.NewPlayerWithConfig("p1", "Ada", cfg)
	require.NoError(t, err)
	p2, err := entities.NewPlayerWithConfig("p2", "Blaise", cfg)
	require.NoError(t, err)
	require.NoError(t, m.Join(p1, 100))
	require.NoError(t, m.Join(p2, 110))

	seq := 0
	cast := func(playerID, beadID, body string) {
		seq++
		mv, err := entities.NewMove(fmt.Sprintf("mv%d", seq), playerID, entities.MoveCast, entities.CastPayload{
			Bead: entities.BeadDraft{
				ID:         beadID,
				Content:    body,
				Modality:   valueobjects.ModalityText,
				Complexity: 2,
			},
		}, int64(200+seq), 0)
		require.NoError(t, err)
		m.ApplyWithResources(mv)
	}
	bind := func(playerID, edgeID, from, to string) {
		seq++
		mv, err := entities.NewMove(fmt.Sprintf("mv%d", seq), playerID, entities.MoveBind, entities.LinkPayload{
			EdgeID:        edgeID,
			From:          from,
			To:            to,
			Justification: "The motif carries over. It strengthens both.",
		}, int64(200+seq), 0)
		require.NoError(t, err)
		m.ApplyWithResources(mv)
	}

	cast("p1", "b1", "a first figure")
	cast("p2", "b2", "a reply in kind")
	cast("p1", "b3", "a development")
	bind("p2", "e1", "b1", "b2")
	bind("p1", "e2", "b2", "b3")
	m.MarkEventsAsCommitted()
	return m
}

func TestRebuildReproducesBoard(t *testing.T) {
	m := playedMatch(t)
	rebuilt := Rebuild(m)

	assert.Equal(t, m.BeadCount(), rebuilt.BeadCount())
	assert.Equal(t, m.EdgeCount(), rebuilt.EdgeCount())
	assert.Equal(t, len(m.Moves()), len(rebuilt.Moves()))
	assert.Equal(t, m.CurrentPlayerID(), rebuilt.CurrentPlayerID())

	for i, p := range m.Players() {
		assert.Equal(t, p.Ledger(), rebuilt.Players()[i].Ledger(), p.ID())
	}
}

func TestRebuildDoesNotMutateSource(t *testing.T) {
	m := playedMatch(t)
	beads := m.BeadCount()
	moves := len(m.Moves())

	Rebuild(m)
	assert.Equal(t, beads, m.BeadCount())
	assert.Equal(t, moves, len(m.Moves()))
	assert.Empty(t, m.GetUncommittedEvents())
}

func TestVerifyCleanLog(t *testing.T) {
	assert.NoError(t, Verify(playedMatch(t)))
}

func TestVerifyEmptyMatch(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	m, err := aggregates.NewMatchWithConfig("fresh01", entities.SampleSeeds(), 5, cfg)
	require.NoError(t, err)

	assert.NoError(t, Verify(m))
}

func TestFromLogRoundTrip(t *testing.T) {
	m := playedMatch(t)
	data, err := json.Marshal(m.Snapshot())
	require.NoError(t, err)

	var snap aggregates.MatchSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	rebuilt, err := FromLog(&snap, config.DefaultDomainConfig())
	require.NoError(t, err)

	want, err := json.Marshal(m.Snapshot())
	require.NoError(t, err)
	got, err := json.Marshal(rebuilt.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestReplayConsumesWildCorrectly(t *testing.T) {
	m := playedMatch(t)

	// p1 spent 2 insight on casts and 1 restraint on a bind
	p1, ok := m.Player("p1")
	require.True(t, ok)
	assert.Equal(t, 3, p1.Ledger().Insight)
	assert.Equal(t, 1, p1.Ledger().Restraint)
	assert.True(t, p1.Ledger().WildAvailable)

	rebuilt := Rebuild(m)
	r1, ok := rebuilt.Player("p1")
	require.True(t, ok)
	assert.Equal(t, p1.Ledger(), r1.Ledger())
}
