package judgment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beadloom/domain/config"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	"beadloom/domain/core/valueobjects"
)

// twoPlayerMatch seats Ada and Blaise and leaves the board empty.
func twoPlayerMatch(t *testing.T) *aggregates.Match {
	t.Helper()
	cfg := config.DefaultDomainConfig()
	m, err := aggregates.NewMatchWithConfig("m1", entities.SampleSeeds(), 0, cfg)
	require.NoError(t, err)

	p1, err := entities.NewPlayerWithConfig("p1", "Ada", cfg)
	require.NoError(t, err)
	p2, err := entities.NewPlayerWithConfig("p2", "Blaise", cfg)
	require.NoError(t, err)
	require.NoError(t, m.Join(p1, 0))
	require.NoError(t, m.Join(p2, 0))
	return m
}

var testMoveSeq int

func castBead(t *testing.T, m *aggregates.Match, playerID, beadID, title, body string) {
	t.Helper()
	testMoveSeq++
	mv, err := entities.NewMove(fmt.Sprintf("mv%d", testMoveSeq), playerID, entities.MoveCast, entities.CastPayload{
		Bead: entities.BeadDraft{
			ID:         beadID,
			Title:      title,
			Content:    body,
			Modality:   valueobjects.ModalityText,
			Complexity: 1,
		},
	}, int64(testMoveSeq), 0)
	require.NoError(t, err)
	m.Apply(mv)
}

func bindBeads(t *testing.T, m *aggregates.Match, playerID, edgeID, from, to, justification string) {
	t.Helper()
	testMoveSeq++
	mv, err := entities.NewMove(fmt.Sprintf("mv%d", testMoveSeq), playerID, entities.MoveBind, entities.LinkPayload{
		EdgeID:        edgeID,
		From:          from,
		To:            to,
		Justification: justification,
	}, int64(testMoveSeq), 0)
	require.NoError(t, err)
	m.Apply(mv)
}

// referenceBoard is the fixed scenario the scoring pipeline is pinned to:
// Ada casts b1 and b2, Blaise casts b3, then b1->b3, b2->b3 and b1->b2 are
// bound in that order.
func referenceBoard(t *testing.T) *aggregates.Match {
	t.Helper()
	m := twoPlayerMatch(t)
	castBead(t, m, "p1", "b1", "Fugue", "a first figure")
	castBead(t, m, "p1", "b2", "Canon", "a second figure")
	castBead(t, m, "p2", "b3", "Chorale", "a closing figure")
	bindBeads(t, m, "p1", "e1", "b1", "b3", "The figure returns. It resolves.")
	bindBeads(t, m, "p1", "e2", "b2", "b3", "The canon lands. It resolves.")
	bindBeads(t, m, "p1", "e3", "b1", "b2", "One voice follows. Another answers.")
	return m
}

func TestJudgeReferenceTotals(t *testing.T) {
	scroll := Judge(referenceBoard(t))

	assert.Equal(t, "p1", scroll.Winner)
	require.Contains(t, scroll.Scores, "p1")
	require.Contains(t, scroll.Scores, "p2")
	assert.InDelta(t, 0.6774576540013667, scroll.Scores["p1"].Total, 1e-9)
	assert.InDelta(t, 0.6612243230363666, scroll.Scores["p2"].Total, 1e-9)
}

func TestJudgeIsDeterministic(t *testing.T) {
	m := referenceBoard(t)
	first := Judge(m)
	second := Judge(m)
	assert.Equal(t, first, second)
}

func TestJudgeScorecardShape(t *testing.T) {
	scroll := Judge(referenceBoard(t))

	s := scroll.Scores["p1"]
	assert.InDelta(t, s.Total,
		s.Contributions.Resonance+s.Contributions.Novelty+s.Contributions.Integrity+
			s.Contributions.Aesthetics+s.Contributions.Resilience, 1e-12)
	assert.InDelta(t, WeightResonance*s.Resonance, s.Contributions.Resonance, 1e-12)
	assert.Equal(t, 1.0, s.Resonance)
}

func TestJudgeStrongPaths(t *testing.T) {
	scroll := Judge(referenceBoard(t))

	require.Len(t, scroll.StrongPaths, 3)
	assert.Equal(t, []string{"b1", "b2", "b3"}, scroll.StrongPaths[0].Nodes)
	assert.Equal(t, "weight 3.00", scroll.StrongPaths[0].Why)
}

func TestJudgeFragileEdges(t *testing.T) {
	scroll := Judge(referenceBoard(t))

	assert.Equal(t, []string{"e2", "e3"}, scroll.FragileEdges)
}

func TestJudgeWeakSpots(t *testing.T) {
	m := referenceBoard(t)
	castBead(t, m, "p2", "b4", "Stray", "an unconnected thought")

	scroll := Judge(m)
	assert.Equal(t, []string{"b4"}, scroll.WeakSpots)
}

func TestJudgeDialogue(t *testing.T) {
	scroll := Judge(referenceBoard(t))

	d := scroll.Dialogue
	assert.Equal(t, "Magister Ludi", d.Magister)
	require.Len(t, d.Turns, len(JudgmentAxes)+len(scroll.StrongPaths)+1)

	first := d.Turns[0]
	assert.Equal(t, "axis-insight", first.Kind)
	assert.Equal(t, AxisResonance, first.Axis)
	require.Len(t, first.Ranking, 2)
	assert.Contains(t, first.Insight, "Ada")

	story := d.Turns[len(JudgmentAxes)]
	assert.Equal(t, "path-story", story.Kind)
	require.NotNil(t, story.PathIndex)
	assert.Equal(t, 0, *story.PathIndex)
	assert.Contains(t, story.Story, "Fugue (b1)")

	closing := d.Turns[len(d.Turns)-1]
	assert.Equal(t, "closing", closing.Kind)
	assert.Contains(t, closing.Reflection, "Ada")
}

func TestJudgeEmptyBoard(t *testing.T) {
	scroll := Judge(twoPlayerMatch(t))

	// first seated player wins the tie on an untouched board
	assert.Equal(t, "p1", scroll.Winner)
	assert.Equal(t, scroll.Scores["p1"].Total, scroll.Scores["p2"].Total)
	assert.Empty(t, scroll.StrongPaths)
	assert.Empty(t, scroll.WeakSpots)
	assert.Empty(t, scroll.FragileEdges)
	assert.Equal(t, 1.0, scroll.Scores["p1"].Resilience)
}

func TestSliceFor(t *testing.T) {
	m := referenceBoard(t)

	p1 := SliceFor(m, "p1")
	assert.Equal(t, BoardSlice{BeadCount: 2, EdgeCount: 3}, p1)
	p2 := SliceFor(m, "p2")
	assert.Equal(t, BoardSlice{BeadCount: 1, EdgeCount: 2}, p2)
}
