package judgment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beadloom/domain/core/entities"
	"beadloom/domain/core/valueobjects"
)

func testBead(t *testing.T, id, owner string, complexity int) *entities.Bead {
	t.Helper()
	content, err := valueobjects.NewBeadContent("", "about "+id)
	require.NoError(t, err)
	return entities.ReconstructBead(id, owner, valueobjects.ModalityText, content, complexity, "", 0)
}

func testEdge(t *testing.T, id, from, to string) *entities.Edge {
	t.Helper()
	e, err := entities.NewEdge(id, from, to, valueobjects.RelationAnalogy, "because")
	require.NoError(t, err)
	return e
}

func TestGraphAdjacency(t *testing.T) {
	g := NewGraphState()
	for _, id := range []string{"a", "b", "c"} {
		g.AddBead(testBead(t, id, "p", 1))
	}
	g.AddEdge(testEdge(t, "e1", "a", "b"))
	g.AddEdge(testEdge(t, "e2", "b", "c"))
	g.AddEdge(testEdge(t, "e3", "a", "c"))

	assert.ElementsMatch(t, []string{"b", "c"}, g.Neighbors("a"))
	assert.Equal(t, 2, g.Degree("b"))

	g.RemoveEdge("e3")
	assert.Equal(t, []string{"b"}, g.Neighbors("a"))
	_, ok := g.Edge("e3")
	assert.False(t, ok)
	assert.Len(t, g.EdgeList(), 2)
}

func TestGraphNeighborsIgnoreDirection(t *testing.T) {
	g := NewGraphState()
	g.AddBead(testBead(t, "a", "p", 1))
	g.AddBead(testBead(t, "b", "p", 1))
	g.AddEdge(testEdge(t, "e1", "b", "a"))

	assert.Equal(t, []string{"b"}, g.Neighbors("a"))
	assert.Equal(t, []string{"a"}, g.Neighbors("b"))
}

func TestGraphNodeWeight(t *testing.T) {
	g := NewGraphState()
	g.AddBead(testBead(t, "a", "p", 4))

	assert.Equal(t, 4.0, g.NodeWeight("a"))
	assert.Equal(t, 0.0, g.NodeWeight("ghost"))
}

func TestGraphNodeOrderStable(t *testing.T) {
	g := NewGraphState()
	for _, id := range []string{"c", "a", "b"} {
		g.AddBead(testBead(t, id, "p", 1))
	}
	assert.Equal(t, []string{"c", "a", "b"}, g.Nodes())

	// re-adding keeps the original slot
	g.AddBead(testBead(t, "a", "p", 2))
	assert.Equal(t, []string{"c", "a", "b"}, g.Nodes())
	assert.Equal(t, 2.0, g.NodeWeight("a"))
}
