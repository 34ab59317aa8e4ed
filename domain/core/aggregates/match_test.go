package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beadloom/domain/core/entities"
	pkgerrors "beadloom/pkg/errors"
)

func seatedMatch(t *testing.T) *Match {
	t.Helper()
	m, err := NewMatch("m1", entities.SampleSeeds(), 1000)
	require.NoError(t, err)
	for i, id := range []string{"p1", "p2"} {
		p, err := entities.NewPlayer(id, "Player"+id)
		require.NoError(t, err)
		require.NoError(t, m.Join(p, 1000+int64(i)))
	}
	return m
}

func castMove(t *testing.T, id, playerID, beadID, title string, ts int64) *entities.Move {
	t.Helper()
	mv, err := entities.NewMove(id, playerID, entities.MoveCast, entities.CastPayload{
		Bead: entities.BeadDraft{
			ID:         beadID,
			Title:      title,
			Content:    "A steady motif, stated plainly.",
			Modality:   "text",
			Complexity: 1,
		},
	}, ts, 0)
	require.NoError(t, err)
	mv.MarkValid()
	return mv
}

func bindMove(t *testing.T, id, playerID, from, to string, ts int64) *entities.Move {
	t.Helper()
	mv, err := entities.NewMove(id, playerID, entities.MoveBind, entities.LinkPayload{
		From:          from,
		To:            to,
		Justification: "These two motifs rhyme. The echo is deliberate.",
	}, ts, 0)
	require.NoError(t, err)
	mv.MarkValid()
	return mv
}

func TestNewMatchStartsInSeedDraw(t *testing.T) {
	m, err := NewMatch("m1", entities.SampleSeeds(), 1000)
	require.NoError(t, err)

	assert.Equal(t, PhaseSeedDraw, m.Phase())
	assert.Equal(t, 1, m.Round())
	assert.Empty(t, m.CurrentPlayerID())
	assert.Len(t, m.Seeds(), 3)
}

func TestNewMatchRejectsEmptyID(t *testing.T) {
	_, err := NewMatch("", nil, 1000)
	assert.Error(t, err)
}

func TestJoinOpensPlayOnLastSeat(t *testing.T) {
	m, err := NewMatch("m1", entities.SampleSeeds(), 1000)
	require.NoError(t, err)

	p1, _ := entities.NewPlayer("p1", "Ada")
	require.NoError(t, m.Join(p1, 1001))
	assert.Equal(t, PhaseSeedDraw, m.Phase())
	assert.Empty(t, m.CurrentPlayerID())

	p2, _ := entities.NewPlayer("p2", "Blaise")
	require.NoError(t, m.Join(p2, 1002))
	assert.Equal(t, PhasePlay, m.Phase())
	assert.Equal(t, "p1", m.CurrentPlayerID())
}

func TestJoinRefusesOverflowAndDuplicates(t *testing.T) {
	m := seatedMatch(t)

	p3, _ := entities.NewPlayer("p3", "Carl")
	err := m.Join(p3, 2000)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConflict(err))

	dup, _ := entities.NewPlayer("p1", "Imposter")
	assert.Error(t, m.Join(dup, 2000))
}

func TestApplyCastAdmitsBeadAndRotatesTurn(t *testing.T) {
	m := seatedMatch(t)

	m.ApplyWithResources(castMove(t, "mv1", "p1", "b1", "Fugue", 2000))

	assert.Equal(t, 1, m.BeadCount())
	assert.Equal(t, "p2", m.CurrentPlayerID())
	assert.Len(t, m.Moves(), 1)

	p1, ok := m.Player("p1")
	require.True(t, ok)
	assert.Equal(t, 4, p1.Ledger().Insight)

	m.ApplyWithResources(castMove(t, "mv2", "p2", "b2", "Canon", 2001))
	assert.Equal(t, "p1", m.CurrentPlayerID())
}

func TestApplyBindDeductsRestraint(t *testing.T) {
	m := seatedMatch(t)
	m.ApplyWithResources(castMove(t, "mv1", "p1", "b1", "Fugue", 2000))
	m.ApplyWithResources(castMove(t, "mv2", "p2", "b2", "Canon", 2001))

	m.ApplyWithResources(bindMove(t, "mv3", "p1", "b1", "b2", 2002))

	assert.Equal(t, 1, m.EdgeCount())
	edge, ok := m.Edge("mv3")
	require.True(t, ok)
	assert.Equal(t, "b1", edge.From)
	assert.Equal(t, "b2", edge.To)

	p1, _ := m.Player("p1")
	assert.Equal(t, 1, p1.Ledger().Restraint)
}

func TestPruneBeadCascadesEdges(t *testing.T) {
	m := seatedMatch(t)
	m.ApplyWithResources(castMove(t, "mv1", "p1", "b1", "Fugue", 2000))
	m.ApplyWithResources(castMove(t, "mv2", "p2", "b2", "Canon", 2001))
	m.ApplyWithResources(bindMove(t, "mv3", "p1", "b1", "b2", 2002))

	prune, err := entities.NewMove("mv4", "p2", entities.MovePrune,
		entities.PrunePayload{BeadID: "b1"}, 2003, 0)
	require.NoError(t, err)
	prune.MarkValid()
	m.ApplyWithResources(prune)

	assert.Equal(t, 1, m.BeadCount())
	assert.Equal(t, 0, m.EdgeCount())
	require.NoError(t, m.Validate())
}

func TestDrawTwistExhaustsDeck(t *testing.T) {
	m := seatedMatch(t)
	require.Nil(t, m.Twist())

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		tw, err := m.DrawTwist(3000 + int64(i))
		require.NoError(t, err)
		assert.False(t, seen[tw.ID])
		seen[tw.ID] = true
		assert.Equal(t, tw.ID, m.Twist().ID)
	}

	_, err := m.DrawTwist(4000)
	require.Error(t, err)
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNoTwistLeft, appErr.Code)
}

func TestCloneIsolatesPlayers(t *testing.T) {
	m := seatedMatch(t)
	m.ApplyWithResources(castMove(t, "mv1", "p1", "b1", "Fugue", 2000))

	cp := m.Clone()
	assert.Empty(t, cp.GetUncommittedEvents())

	cp.ApplyWithResources(castMove(t, "mv2", "p2", "b2", "Canon", 2001))

	assert.Equal(t, 1, m.BeadCount())
	assert.Equal(t, 2, cp.BeadCount())

	orig, _ := m.Player("p2")
	copied, _ := cp.Player("p2")
	assert.Equal(t, 5, orig.Ledger().Insight)
	assert.Equal(t, 4, copied.Ledger().Insight)
}

func TestRewoundReplaysToSameState(t *testing.T) {
	m := seatedMatch(t)
	m.ApplyWithResources(castMove(t, "mv1", "p1", "b1", "Fugue", 2000))
	m.ApplyWithResources(castMove(t, "mv2", "p2", "b2", "Canon", 2001))
	m.ApplyWithResources(bindMove(t, "mv3", "p1", "b1", "b2", 2002))

	rw := m.Rewound()
	assert.Equal(t, 0, rw.BeadCount())
	assert.Equal(t, 0, rw.EdgeCount())
	assert.Empty(t, rw.Moves())
	assert.Equal(t, PhasePlay, rw.Phase())
	assert.Equal(t, "p1", rw.CurrentPlayerID())

	for _, mv := range m.Moves() {
		rw.ApplyWithResources(mv)
	}

	assert.Equal(t, m.BeadCount(), rw.BeadCount())
	assert.Equal(t, m.EdgeCount(), rw.EdgeCount())
	assert.Equal(t, m.CurrentPlayerID(), rw.CurrentPlayerID())
	p1, _ := m.Player("p1")
	rp1, _ := rw.Player("p1")
	assert.Equal(t, p1.Ledger(), rp1.Ledger())
}

func TestValidateCatchesDanglingEdge(t *testing.T) {
	m := seatedMatch(t)
	m.ApplyWithResources(castMove(t, "mv1", "p1", "b1", "Fugue", 2000))
	m.ApplyWithResources(castMove(t, "mv2", "p2", "b2", "Canon", 2001))
	m.ApplyWithResources(bindMove(t, "mv3", "p1", "b1", "b2", 2002))
	require.NoError(t, m.Validate())

	// reach in and break the invariant the way a buggy store would
	delete(m.beads, "b2")
	m.beadOrder = m.beadOrder[:1]
	assert.Error(t, m.Validate())
}

func TestSnapshotRoundTripsThroughJSON(t *testing.T) {
	m := seatedMatch(t)
	m.ApplyWithResources(castMove(t, "mv1", "p1", "b1", "Fugue", 2000))

	snap := m.Snapshot()
	assert.Equal(t, "m1", snap.ID)
	assert.Equal(t, PhasePlay, snap.Phase)
	assert.Len(t, snap.Players, 2)
	assert.Contains(t, snap.Beads, "b1")
	assert.Equal(t, []string{"b1"}, snap.BeadOrder)
	assert.Equal(t, "p2", snap.CurrentPlayerID)
}
