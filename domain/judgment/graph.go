// Package judgment scores a finished (or in-progress) match: path search over
// the bead graph, Monte Carlo resilience probing, per-axis scorers, and the
// aggregator that seals a JudgmentScroll.
package judgment

import (
	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
)

// GraphState is a read-model of the board tuned for traversal: beads and
// edges by id plus outbound/inbound adjacency lists of edge ids. Insertion
// order is tracked so every traversal is deterministic.
type GraphState struct {
	beads    map[string]*entities.Bead
	edges    map[string]*entities.Edge
	outbound map[string][]string
	inbound  map[string][]string

	nodeOrder []string
	edgeOrder []string
}

// NewGraphState returns an empty graph.
func NewGraphState() *GraphState {
	return &GraphState{
		beads:    make(map[string]*entities.Bead),
		edges:    make(map[string]*entities.Edge),
		outbound: make(map[string][]string),
		inbound:  make(map[string][]string),
	}
}

// GraphFromMatch projects the aggregate's board into a GraphState.
func GraphFromMatch(m *aggregates.Match) *GraphState {
	g := NewGraphState()
	for _, b := range m.Beads() {
		g.AddBead(b)
	}
	for _, e := range m.Edges() {
		g.AddEdge(e)
	}
	return g
}

// AddBead registers a node. Re-adding an id replaces the bead but keeps its
// original position in the node order.
func (g *GraphState) AddBead(b *entities.Bead) {
	if _, ok := g.beads[b.ID()]; !ok {
		g.nodeOrder = append(g.nodeOrder, b.ID())
	}
	g.beads[b.ID()] = b
}

// AddEdge registers a directed edge and extends the adjacency lists. Unknown
// endpoints are tolerated; traversal simply never reaches them.
func (g *GraphState) AddEdge(e *entities.Edge) {
	if _, ok := g.edges[e.ID]; !ok {
		g.edgeOrder = append(g.edgeOrder, e.ID)
		g.outbound[e.From] = append(g.outbound[e.From], e.ID)
		g.inbound[e.To] = append(g.inbound[e.To], e.ID)
	}
	g.edges[e.ID] = e
}

// RemoveEdge drops an edge and its adjacency entries. Unknown ids are a no-op.
func (g *GraphState) RemoveEdge(id string) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	delete(g.edges, id)
	g.edgeOrder = removeID(g.edgeOrder, id)
	g.outbound[e.From] = removeID(g.outbound[e.From], id)
	g.inbound[e.To] = removeID(g.inbound[e.To], id)
}

// Bead looks up a node by id.
func (g *GraphState) Bead(id string) (*entities.Bead, bool) {
	b, ok := g.beads[id]
	return b, ok
}

// Edge looks up an edge by id.
func (g *GraphState) Edge(id string) (*entities.Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// Nodes returns node ids in insertion order.
func (g *GraphState) Nodes() []string {
	return append([]string(nil), g.nodeOrder...)
}

// EdgeList returns edges in insertion order.
func (g *GraphState) EdgeList() []*entities.Edge {
	out := make([]*entities.Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		out = append(out, g.edges[id])
	}
	return out
}

// Outbound returns the edges leaving a node, in insertion order.
func (g *GraphState) Outbound(id string) []*entities.Edge {
	ids := g.outbound[id]
	out := make([]*entities.Edge, 0, len(ids))
	for _, eid := range ids {
		if e, ok := g.edges[eid]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Degree counts edges incident to the node in either direction.
func (g *GraphState) Degree(id string) int {
	return len(g.outbound[id]) + len(g.inbound[id])
}

// Neighbors returns the nodes adjacent to id through any edge, ignoring
// direction, each listed once in order of first appearance.
func (g *GraphState) Neighbors(id string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, eid := range g.outbound[id] {
		if e, ok := g.edges[eid]; ok && !seen[e.To] {
			seen[e.To] = true
			out = append(out, e.To)
		}
	}
	for _, eid := range g.inbound[id] {
		if e, ok := g.edges[eid]; ok && !seen[e.From] {
			seen[e.From] = true
			out = append(out, e.From)
		}
	}
	return out
}

// NodeWeight is the traversal weight of a node. Beads carry their complexity;
// unknown ids weigh nothing.
func (g *GraphState) NodeWeight(id string) float64 {
	if b, ok := g.beads[id]; ok {
		return float64(b.Complexity())
	}
	return 0
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
