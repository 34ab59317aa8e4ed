package judgment

import (
	"math"
	"sort"

	"beadloom/domain/core/entities"
)

// PathStep records one edge traversed along a path.
type PathStep struct {
	From   string `json:"from"`
	To     string `json:"to"`
	EdgeID string `json:"edgeId"`
}

// PathWeight is a simple path and its accumulated node weight.
type PathWeight struct {
	Nodes  []string   `json:"nodes"`
	Weight float64    `json:"weight"`
	Steps  []PathStep `json:"steps,omitempty"`
}

// SearchLimits bounds path enumeration. Zero values mean unbounded. Hitting a
// limit never fails the search; it returns the best paths found so far.
type SearchLimits struct {
	MaxDepth  int
	MaxVisits int
}

// FindStrongestPaths enumerates simple paths from every node and returns the
// topN heaviest. Every prefix of a walk counts as a candidate path, single
// nodes included, so a lone heavy bead can outrank a long chain of light
// ones. Ties keep discovery order.
func FindStrongestPaths(g *GraphState, topN int, limits SearchLimits) []PathWeight {
	results := enumeratePaths(g, limits)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Weight > results[j].Weight
	})
	if topN >= 0 && len(results) > topN {
		results = results[:topN]
	}
	return results
}

// LongestPathFrom returns the simple path from start visiting the most nodes.
// The first path found wins ties, so results are stable for a given board.
func LongestPathFrom(g *GraphState, start string, limits SearchLimits) []string {
	var best []string
	walkFrom(g, start, limits, func(path []string, _ []PathStep, _ float64) {
		if len(path) > len(best) {
			best = append(best[:0:0], path...)
		}
	})
	return best
}

// MaxWeightedPathFrom returns the simple path from start maximizing the sum
// of weightFn over its edges, together with that sum.
func MaxWeightedPathFrom(g *GraphState, start string, weightFn func(*entities.Edge) float64, limits SearchLimits) ([]string, float64) {
	var best []string
	bestWeight := math.Inf(-1)
	walkFrom(g, start, limits, func(path []string, steps []PathStep, _ float64) {
		w := 0.0
		for _, s := range steps {
			if e, ok := g.Edge(s.EdgeID); ok {
				w += weightFn(e)
			}
		}
		if w > bestWeight {
			bestWeight = w
			best = append(best[:0:0], path...)
		}
	})
	if best == nil {
		return nil, 0
	}
	return best, bestWeight
}

// ComputeLift measures how much weight flows through each node: the sum of
// the weights of every enumerated path containing it, normalized so the most
// central node scores 1.
func ComputeLift(g *GraphState, limits SearchLimits) map[string]float64 {
	lift := make(map[string]float64)
	for _, p := range enumeratePaths(g, limits) {
		for _, id := range p.Nodes {
			lift[id] += p.Weight
		}
	}
	max := 0.0
	for _, v := range lift {
		if v > max {
			max = v
		}
	}
	if max > 0 {
		for id := range lift {
			lift[id] /= max
		}
	}
	return lift
}

func enumeratePaths(g *GraphState, limits SearchLimits) []PathWeight {
	var results []PathWeight
	budget := newSearchBudget(limits)
	for _, start := range g.nodeOrder {
		if budget.spent() {
			break
		}
		walkBudgeted(g, start, budget, func(path []string, steps []PathStep, weight float64) {
			results = append(results, PathWeight{
				Nodes:  append([]string(nil), path...),
				Weight: weight,
				Steps:  append([]PathStep(nil), steps...),
			})
		})
	}
	return results
}

// walkFrom runs a single depth-first walk with a fresh budget, invoking
// record for every simple path rooted at start (prefixes included).
func walkFrom(g *GraphState, start string, limits SearchLimits, record func([]string, []PathStep, float64)) {
	if _, ok := g.beads[start]; !ok {
		return
	}
	walkBudgeted(g, start, newSearchBudget(limits), record)
}

type searchBudget struct {
	maxDepth  int
	maxVisits int
	visits    int
}

func newSearchBudget(limits SearchLimits) *searchBudget {
	b := &searchBudget{maxDepth: limits.MaxDepth, maxVisits: limits.MaxVisits}
	if b.maxDepth <= 0 {
		b.maxDepth = math.MaxInt
	}
	if b.maxVisits <= 0 {
		b.maxVisits = math.MaxInt
	}
	return b
}

func (b *searchBudget) spent() bool { return b.visits >= b.maxVisits }

type searchFrame struct {
	node string
	next int
}

// walkBudgeted is an iterative depth-first walk. record fires when a frame is
// popped, i.e. once all of its children have been explored, so leaves report
// before their ancestors. Node weight is added on entry; cycles are cut with
// the visited set.
func walkBudgeted(g *GraphState, start string, budget *searchBudget, record func([]string, []PathStep, float64)) {
	if budget.spent() {
		return
	}
	stack := []searchFrame{{node: start}}
	visited := map[string]bool{start: true}
	path := []string{start}
	var steps []PathStep
	weight := g.NodeWeight(start)
	budget.visits++

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		out := g.outbound[f.node]
		descended := false
		for f.next < len(out) {
			e, ok := g.edges[out[f.next]]
			f.next++
			if !ok || visited[e.To] {
				continue
			}
			if len(path) >= budget.maxDepth || budget.spent() {
				continue
			}
			visited[e.To] = true
			path = append(path, e.To)
			steps = append(steps, PathStep{From: e.From, To: e.To, EdgeID: e.ID})
			weight += g.NodeWeight(e.To)
			budget.visits++
			stack = append(stack, searchFrame{node: e.To})
			descended = true
			break
		}
		if descended {
			continue
		}
		record(path, steps, weight)
		weight -= g.NodeWeight(f.node)
		delete(visited, f.node)
		path = path[:len(path)-1]
		if len(steps) > 0 {
			steps = steps[:len(steps)-1]
		}
		stack = stack[:len(stack)-1]
	}
}
