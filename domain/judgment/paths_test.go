package judgment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beadloom/domain/core/entities"
)

func chainGraph(t *testing.T, complexities map[string]int, edges [][3]string) *GraphState {
	t.Helper()
	g := NewGraphState()
	for _, id := range []string{"a", "b", "c", "d"} {
		if c, ok := complexities[id]; ok {
			g.AddBead(testBead(t, id, "p", c))
		}
	}
	for _, e := range edges {
		g.AddEdge(testEdge(t, e[0], e[1], e[2]))
	}
	return g
}

func TestFindStrongestPathsHeaviestFirst(t *testing.T) {
	g := chainGraph(t,
		map[string]int{"a": 1, "b": 2, "c": 3},
		[][3]string{{"e1", "a", "b"}, {"e2", "b", "c"}},
	)

	paths := FindStrongestPaths(g, 2, SearchLimits{})
	require.Len(t, paths, 2)
	assert.Equal(t, "abc", strings.Join(paths[0].Nodes, ""))
	assert.Equal(t, 6.0, paths[0].Weight)
	assert.Greater(t, paths[0].Weight, paths[1].Weight)
	require.Len(t, paths[0].Steps, 2)
	assert.Equal(t, "e1", paths[0].Steps[0].EdgeID)
}

func TestFindStrongestPathsCountsSingleNodes(t *testing.T) {
	g := chainGraph(t,
		map[string]int{"a": 1, "b": 1, "c": 1, "d": 5},
		[][3]string{{"e1", "a", "b"}, {"e2", "b", "c"}},
	)

	paths := FindStrongestPaths(g, 1, SearchLimits{})
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"d"}, paths[0].Nodes)
	assert.Equal(t, 5.0, paths[0].Weight)
}

func TestFindStrongestPathsTerminatesOnCycles(t *testing.T) {
	g := chainGraph(t,
		map[string]int{"a": 1, "b": 1},
		[][3]string{{"e1", "a", "b"}, {"e2", "b", "a"}},
	)

	paths := FindStrongestPaths(g, 10, SearchLimits{})
	require.NotEmpty(t, paths)
	assert.Equal(t, 2.0, paths[0].Weight)
	for _, p := range paths {
		seen := map[string]bool{}
		for _, n := range p.Nodes {
			assert.False(t, seen[n], "node repeated in path")
			seen[n] = true
		}
	}
}

func TestFindStrongestPathsHonorsDepthLimit(t *testing.T) {
	g := chainGraph(t,
		map[string]int{"a": 1, "b": 1, "c": 1},
		[][3]string{{"e1", "a", "b"}, {"e2", "b", "c"}},
	)

	paths := FindStrongestPaths(g, 10, SearchLimits{MaxDepth: 1})
	require.NotEmpty(t, paths)
	for _, p := range paths {
		assert.Len(t, p.Nodes, 1)
	}
}

func TestFindStrongestPathsHonorsVisitBudget(t *testing.T) {
	g := chainGraph(t,
		map[string]int{"a": 1, "b": 1, "c": 1},
		[][3]string{{"e1", "a", "b"}, {"e2", "b", "c"}, {"e3", "a", "c"}},
	)

	paths := FindStrongestPaths(g, 100, SearchLimits{MaxVisits: 2})
	// best-so-far, never an error
	require.NotEmpty(t, paths)
	assert.LessOrEqual(t, len(paths), 2)
}

func TestLongestPathFrom(t *testing.T) {
	g := chainGraph(t,
		map[string]int{"a": 1, "b": 1, "c": 1},
		[][3]string{{"e1", "a", "b"}, {"e2", "b", "c"}, {"e3", "a", "c"}},
	)

	assert.Equal(t, []string{"a", "b", "c"}, LongestPathFrom(g, "a", SearchLimits{}))
	assert.Equal(t, []string{"c"}, LongestPathFrom(g, "c", SearchLimits{}))
	assert.Nil(t, LongestPathFrom(g, "ghost", SearchLimits{}))
}

func TestMaxWeightedPathFrom(t *testing.T) {
	g := chainGraph(t,
		map[string]int{"a": 1, "b": 1, "c": 1},
		[][3]string{{"e1", "a", "b"}, {"e2", "b", "c"}, {"e3", "a", "c"}},
	)
	weights := map[string]float64{"e1": 2, "e2": 5, "e3": 1}
	weightFn := func(e *entities.Edge) float64 { return weights[e.ID] }

	path, weight := MaxWeightedPathFrom(g, "a", weightFn, SearchLimits{})
	assert.Equal(t, []string{"a", "b", "c"}, path)
	assert.Equal(t, 7.0, weight)
}

func TestComputeLiftNormalizes(t *testing.T) {
	g := chainGraph(t,
		map[string]int{"a": 1, "b": 1, "c": 1},
		[][3]string{{"e1", "a", "b"}, {"e2", "b", "c"}},
	)

	lift := ComputeLift(g, SearchLimits{})
	assert.InDelta(t, 0.75, lift["a"], 1e-12)
	assert.InDelta(t, 1.0, lift["b"], 1e-12)
	assert.InDelta(t, 0.75, lift["c"], 1e-12)
}

func TestComputeLiftEmptyGraph(t *testing.T) {
	assert.Empty(t, ComputeLift(NewGraphState(), SearchLimits{}))
}
