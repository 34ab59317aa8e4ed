package judgment

import (
	"sort"

	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	"beadloom/pkg/random"
)

// ResilienceResult carries per-player resilience scores and the edges whose
// perturbation hurt the board most.
type ResilienceResult struct {
	Scores    map[string]float64
	WeakSpots []string
}

// EvaluateResilience probes the board with random edge perturbations. Each
// trial picks a uniform random edge and either deletes it or reverses its
// direction, then measures how far every player's structural aggregate falls
// from the unperturbed baseline. A player's score is clamp01(1 - meanDrop).
// Weak spots are the top edges by cumulative drop across all players and
// trials. The caller supplies the random stream, so identical seeds over
// identical boards produce identical results. A board without edges scores 1
// for everyone.
func EvaluateResilience(m *aggregates.Match, trials int, rng *random.Mulberry32) ResilienceResult {
	players := m.Players()
	edges := m.Edges()

	scores := make(map[string]float64, len(players))
	if len(edges) == 0 {
		for _, p := range players {
			scores[p.ID()] = 1
		}
		return ResilienceResult{Scores: scores}
	}

	owner := make(map[string]string, m.BeadCount())
	for _, b := range m.Beads() {
		owner[b.ID()] = b.OwnerID()
	}

	baseline := make(map[string]float64, len(players))
	for _, p := range players {
		baseline[p.ID()] = structuralAggregate(sliceFor(p.ID(), owner, edges))
	}

	drops := make(map[string]float64, len(players))
	impact := make(map[string]float64)
	var impactOrder []string

	for i := 0; i < trials; i++ {
		target := edges[rng.Intn(len(edges))]
		perturbed := perturbEdges(edges, target, rng.Bool(0.5))
		for _, p := range players {
			after := structuralAggregate(sliceFor(p.ID(), owner, perturbed))
			drop := baseline[p.ID()] - after
			if drop < 0 {
				drop = 0
			}
			drops[p.ID()] += drop
			if _, seen := impact[target.ID]; !seen {
				impactOrder = append(impactOrder, target.ID)
			}
			impact[target.ID] += drop
		}
	}

	for _, p := range players {
		score := 1 - drops[p.ID()]/float64(trials)
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		scores[p.ID()] = score
	}

	sort.SliceStable(impactOrder, func(i, j int) bool {
		return impact[impactOrder[i]] > impact[impactOrder[j]]
	})
	weakCount := m.Config().WeakEdgeCount
	if weakCount <= 0 {
		weakCount = 3
	}
	if len(impactOrder) > weakCount {
		impactOrder = impactOrder[:weakCount]
	}

	return ResilienceResult{Scores: scores, WeakSpots: impactOrder}
}

// perturbEdges returns a copy of edges with target removed or reversed.
func perturbEdges(edges []*entities.Edge, target *entities.Edge, remove bool) []*entities.Edge {
	out := make([]*entities.Edge, 0, len(edges))
	for _, e := range edges {
		switch {
		case e.ID != target.ID:
			out = append(out, e)
		case remove:
		default:
			out = append(out, e.Reversed())
		}
	}
	return out
}
